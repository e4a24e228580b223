package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/bgtasks/internal/api/shared"
	"github.com/phrazzld/bgtasks/internal/redact"
)

// MessageInternalError is the only text a client sees for a recovered panic.
const MessageInternalError = "Internal server error"

// NewRecoverer converts handler panics into a JSON 500 response, following
// chi's middleware.Recoverer except for the body it writes.
// http.ErrAbortHandler is re-panicked so the server can abort the connection.
// When the handler already sent headers, or the connection is being
// upgraded, the panic is only logged.
func NewRecoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("handler panicked",
					"trace_id", shared.GetTraceID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"panic", redact.String(fmt.Sprint(rec)),
					"stack", redact.String(string(debug.Stack())))

				if ww.Status() != 0 || r.Header.Get("Connection") == "Upgrade" {
					return
				}
				shared.RespondWithJSON(ww, r, http.StatusInternalServerError,
					shared.ErrorResponse{Error: MessageInternalError, TraceID: shared.GetTraceID(r.Context())})
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

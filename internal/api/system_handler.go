package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/bgtasks/internal/api/shared"
	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/phrazzld/bgtasks/internal/sampledata"
)

// Version is reported by the service description endpoint.
const Version = "1.0.0"

// MaxSlowIterations bounds a single /api/slow request.
const MaxSlowIterations = 100_000_000

// SystemHandler serves the endpoints that are not about posts.
type SystemHandler struct {
	clock   clock.Clock
	started time.Time
	logger  *slog.Logger
}

// NewSystemHandler creates a SystemHandler; uptime is measured from now.
func NewSystemHandler(clk clock.Clock, logger *slog.Logger) *SystemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SystemHandler{
		clock:   clk,
		started: clk.Now(),
		logger:  logger.With("component", "system_handler"),
	}
}

// Root handles GET / with a description of the service.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ServiceInfo{
		Message: "Background processing sample API",
		Version: Version,
		Endpoints: map[string]string{
			"posts":  "/api/posts",
			"health": "/api/health",
			"slow":   "/api/slow",
		},
	})
}

// Health handles GET /api/health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: h.clock.Now().UTC(),
		Uptime:    h.clock.Now().Sub(h.started).Seconds(),
	})
}

// Slow handles GET /api/slow?iterations=N, running a CPU-bound loop on the
// request goroutine.
func (h *SystemHandler) Slow(w http.ResponseWriter, r *http.Request) {
	iterations, err := shared.QueryInt(r, "iterations", sampledata.DefaultSlowIterations)
	if err != nil || iterations < 0 || iterations > MaxSlowIterations {
		shared.RespondWithError(w, r, http.StatusBadRequest, "iterations must be an integer between 0 and 100000000")
		return
	}

	h.logger.Info("slow computation started", "iterations", iterations)

	result, err := sampledata.Slow(r.Context(), iterations)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SlowResponse{
		Result:     sampledata.FormatResult(result),
		Iterations: iterations,
		Timestamp:  h.clock.Now().UTC(),
	})
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, MessageRouteNotFound)
}

// MethodNotAllowed answers known routes used with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}

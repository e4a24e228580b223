package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/bgtasks/internal/api/shared"
	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/phrazzld/bgtasks/internal/domain"
	"github.com/phrazzld/bgtasks/internal/sampledata"
)

// DefaultListDelay is the artificial latency of the list endpoint, which
// makes the loading state observable to clients.
const DefaultListDelay = 500 * time.Millisecond

// PostsHandler handles the /api/posts endpoints.
type PostsHandler struct {
	store  sampledata.PostStore
	clock  clock.Clock
	delay  time.Duration
	logger *slog.Logger
}

// NewPostsHandler creates a new PostsHandler. A zero delay disables the
// artificial latency of ListPosts.
func NewPostsHandler(
	store sampledata.PostStore,
	clk clock.Clock,
	delay time.Duration,
	logger *slog.Logger,
) *PostsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostsHandler{
		store:  store,
		clock:  clk,
		delay:  delay,
		logger: logger.With("component", "posts_handler"),
	}
}

// ListPosts handles GET /api/posts?limit=&userId=.
func (h *PostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := shared.QueryInt(r, "limit", 0)
	if err != nil || limit < 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	userID, err := shared.QueryInt(r, "userId", 0)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "userId must be an integer")
		return
	}

	// An explicit limit=0 yields an empty list; only an absent or empty
	// parameter means "no limit".
	filter := sampledata.Filter{
		UserID:  userID,
		Limit:   limit,
		Limited: r.URL.Query().Get("limit") != "",
	}

	posts, err := h.store.List(r.Context(), filter)
	if err != nil {
		h.respondWithStoreError(w, r, err)
		return
	}

	if err := h.wait(r.Context()); err != nil {
		h.logger.Debug("client left during list delay", "error", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, posts)
}

// GetPost handles GET /api/posts/{id}.
func (h *PostsHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, GetSafeErrorMessage(domain.ErrNotFound))
		return
	}

	post, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.respondWithStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// CreatePost handles POST /api/posts.
func (h *PostsHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(domain.ErrValidation))
		return
	}

	post, err := h.store.Create(r.Context(), domain.Post{
		Title:  req.Title,
		Body:   req.Body,
		UserID: req.UserID,
	})
	if err != nil {
		h.respondWithStoreError(w, r, err)
		return
	}

	h.logger.Info("post created", "post_id", post.ID, "user_id", post.UserID)
	shared.RespondWithJSON(w, r, http.StatusCreated, post)
}

func (h *PostsHandler) respondWithStoreError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// wait blocks for the configured delay or until ctx ends.
func (h *PostsHandler) wait(ctx context.Context) error {
	if h.delay <= 0 {
		return nil
	}

	elapsed := make(chan struct{})
	t := h.clock.AfterFunc(h.delay, func() { close(elapsed) })
	defer t.Stop()

	select {
	case <-elapsed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

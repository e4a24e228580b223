// Package fetch implements the fetch controller, which owns the request
// lifecycle of the "load posts" operation.
//
// Concurrent FetchPosts calls are neither cancelled nor serialised. The
// items reflect whichever request resolves last, which is not necessarily
// the one issued last, and the first request to resolve clears Loading even
// while another is still in flight.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/phrazzld/bgtasks/internal/domain"
)

// Notification messages emitted on completion.
const (
	MessageFetchSucceeded = "Posts fetched successfully"
	MessageFetchFailed    = "Failed to fetch posts"
)

// PostsSource reads the posts collection from an external service.
type PostsSource interface {
	// ListPosts returns every post. Implementations wrap failures with
	// domain.ErrNetwork, domain.ErrUnexpectedStatus or domain.ErrDecode.
	ListPosts(ctx context.Context) ([]domain.Post, error)
}

// Notifier receives outcome notifications.
type Notifier interface {
	Add(message string, kind domain.NotificationKind) domain.Notification
}

// Controller owns the fetch state slice.
type Controller struct {
	mu       sync.Mutex
	source   PostsSource
	notifier Notifier
	clock    clock.Clock
	logger   *slog.Logger

	state domain.FetchState
}

// New creates a fetch controller with an empty item list.
func New(source PostsSource, notifier Notifier, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		source:   source,
		notifier: notifier,
		clock:    clk,
		logger:   logger.With("component", "fetch_controller"),
		state:    domain.FetchState{Items: []domain.Post{}},
	}
}

// FetchPosts issues one read against the posts source and blocks until it
// resolves. On failure the previous items are kept, Error is set and the
// wrapped error is returned. Loading is cleared in every outcome, including
// a panicking notifier.
func (c *Controller) FetchPosts(ctx context.Context) error {
	c.mu.Lock()
	c.state.Loading = true
	c.state.Error = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.state.Loading = false
		c.mu.Unlock()
	}()

	c.logger.Debug("fetching posts")
	posts, err := c.source.ListPosts(ctx)
	if err != nil {
		c.mu.Lock()
		c.state.Error = err.Error()
		c.mu.Unlock()

		c.logger.Error("failed to fetch posts", "error", err)
		c.notifier.Add(MessageFetchFailed, domain.NotificationError)
		return fmt.Errorf("fetch posts: %w", err)
	}

	items := make([]domain.Post, len(posts))
	copy(items, posts)
	now := c.clock.Now()

	c.mu.Lock()
	c.state.Items = items
	c.state.LastFetchedAt = &now
	c.mu.Unlock()

	c.logger.Info("posts fetched", "count", len(items))
	c.notifier.Add(MessageFetchSucceeded, domain.NotificationSuccess)
	return nil
}

// State returns a copy of the fetch state.
func (c *Controller) State() domain.FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Count returns the number of items without copying them.
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.state.Items)
}

// Latest returns up to n items from the head of the list, in source order.
func (c *Controller) Latest(n int) []domain.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n > len(c.state.Items) {
		n = len(c.state.Items)
	}
	out := make([]domain.Post, n)
	copy(out, c.state.Items[:n])
	return out
}

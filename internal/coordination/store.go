package coordination

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/phrazzld/bgtasks/internal/domain"
	"github.com/phrazzld/bgtasks/internal/events"
	"github.com/phrazzld/bgtasks/internal/fetch"
	"github.com/phrazzld/bgtasks/internal/notify"
	"github.com/phrazzld/bgtasks/internal/timer"
	"github.com/phrazzld/bgtasks/internal/worker"
)

// ErrClosed is returned by commands issued after Close.
var ErrClosed = errors.New("store is closed")

// LatestPostsLimit is the maximum number of posts returned by LatestPosts.
const LatestPostsLimit = 5

// DefaultPage is the page tag a new store starts on.
const DefaultPage = "home"

// Config holds tunables for the store's controllers. Zero values select
// each controller's default.
type Config struct {
	TimerInterval   time.Duration
	NotificationTTL time.Duration
}

// Dependencies are the collaborators a Store is built from.
type Dependencies struct {
	// Clock drives the timer ticks and notification expiry. Required.
	Clock clock.Clock

	// Posts is the source read by FetchPosts. Required.
	Posts fetch.PostsSource

	// Spawner creates execution contexts for DispatchWorker.
	// If nil, FibSum runs on goroutine-backed contexts.
	Spawner worker.Spawner

	// Emitter receives notification lifecycle events. Optional.
	Emitter events.EventEmitter

	// Logger is used by every controller. Required.
	Logger *slog.Logger
}

// Store aggregates the background controllers.
type Store struct {
	timer         *timer.Controller
	fetch         *fetch.Controller
	worker        *worker.Dispatcher
	notifications *notify.Center
	logger        *slog.Logger

	mu          sync.RWMutex
	currentPage string
	closed      bool
}

// New wires the controllers together.
func New(cfg Config, deps Dependencies) (*Store, error) {
	if deps.Clock == nil {
		return nil, fmt.Errorf("clock cannot be nil")
	}
	if deps.Posts == nil {
		return nil, fmt.Errorf("posts source cannot be nil")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	center := notify.New(deps.Clock, notify.Config{TTL: cfg.NotificationTTL}, deps.Emitter, deps.Logger)

	s := &Store{
		notifications: center,
		timer:         timer.New(deps.Clock, cfg.TimerInterval, deps.Logger),
		fetch:         fetch.New(deps.Posts, center, deps.Clock, deps.Logger),
		worker:        worker.NewDispatcher(deps.Spawner, center, deps.Clock, deps.Logger),
		logger:        deps.Logger.With("component", "coordination_store"),
		currentPage:   DefaultPage,
	}
	s.logger.Debug("store initialized")
	return s, nil
}

// Close cancels the timer's repeating action and every pending notification
// expiry. In-flight fetches and computations are not cancelled; their
// outcomes still land in their slices. Close is idempotent.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.timer.Stop()
	s.notifications.Close()
	s.logger.Info("store closed")
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// StartTimer starts the timer. Starting a running timer is a no-op.
func (s *Store) StartTimer() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.timer.Start()
	return nil
}

// StopTimer stops the timer. Stopping an idle timer is a no-op.
func (s *Store) StopTimer() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.timer.Stop()
	return nil
}

// ResetTimer stops the timer and clears its counter.
func (s *Store) ResetTimer() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.timer.Reset()
	return nil
}

// FetchPosts loads posts from the posts source, blocking until the request
// resolves. Run it on its own goroutine for fire-and-forget behaviour.
func (s *Store) FetchPosts(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.fetch.FetchPosts(ctx)
}

// DispatchWorker offloads a computation over input. It returns
// worker.ErrBusy while a computation is in flight.
func (s *Store) DispatchWorker(input int) (*worker.Handle, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.worker.Dispatch(input)
}

// AddNotification queues a notification. An empty kind means info.
func (s *Store) AddNotification(message string, kind domain.NotificationKind) (domain.Notification, error) {
	if err := s.checkOpen(); err != nil {
		return domain.Notification{}, err
	}
	return s.notifications.Add(message, kind), nil
}

// RemoveNotification removes a notification by id. Unknown ids are a no-op.
func (s *Store) RemoveNotification(id int64) bool {
	return s.notifications.Remove(id)
}

// SetCurrentPage records the page the front-end is showing.
func (s *Store) SetCurrentPage(page string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPage = page
}

// CurrentPage returns the page tag.
func (s *Store) CurrentPage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

// Timer returns the timer slice.
func (s *Store) Timer() domain.TimerState {
	return s.timer.State()
}

// FormattedTimer returns the timer count as MM:SS.
func (s *Store) FormattedTimer() string {
	return s.timer.Formatted()
}

// Fetch returns the fetch slice.
func (s *Store) Fetch() domain.FetchState {
	return s.fetch.State()
}

// PostsCount returns the number of fetched posts.
func (s *Store) PostsCount() int {
	return s.fetch.Count()
}

// LatestPosts returns the first LatestPostsLimit posts in source order.
func (s *Store) LatestPosts() []domain.Post {
	return s.fetch.Latest(LatestPostsLimit)
}

// Worker returns the worker slice.
func (s *Store) Worker() domain.WorkerState {
	return s.worker.State()
}

// Notifications returns the queue, most recent first.
func (s *Store) Notifications() []domain.Notification {
	return s.notifications.List()
}

// NotificationCount returns the queue length.
func (s *Store) NotificationCount() int {
	return s.notifications.Len()
}

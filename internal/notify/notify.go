// Package notify implements the notification center: an ordered queue of
// ephemeral notices shared by every background controller.
//
// Entries are kept most-recent-first and each one owns an expiry timer that
// removes it after the configured lifetime. The queue has no length bound;
// a producer faster than the expiry rate grows it without limit.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/phrazzld/bgtasks/internal/domain"
	"github.com/phrazzld/bgtasks/internal/events"
)

// DefaultTTL is how long a notification stays queued unless removed earlier.
const DefaultTTL = 5 * time.Second

// Config holds configuration options for the notification center
type Config struct {
	// TTL is the lifetime of each notification.
	// If zero or negative, DefaultTTL is used.
	TTL time.Duration
}

// Center owns the notification queue.
type Center struct {
	mu      sync.Mutex
	clock   clock.Clock
	ttl     time.Duration
	emitter events.EventEmitter
	logger  *slog.Logger

	lastID  int64
	entries []entry
	closed  bool
}

type entry struct {
	notification domain.Notification
	expiry       clock.Timer
}

// New creates a notification center. emitter may be nil.
func New(clk clock.Clock, cfg Config, emitter events.EventEmitter, logger *slog.Logger) *Center {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		clock:   clk,
		ttl:     ttl,
		emitter: emitter,
		logger:  logger.With("component", "notification_center"),
	}
}

// Add queues a notification at the head and schedules its expiry.
// An empty kind is treated as info. After Close the notification is
// returned but not queued.
func (c *Center) Add(message string, kind domain.NotificationKind) domain.Notification {
	if kind == "" {
		kind = domain.NotificationInfo
	}

	c.mu.Lock()
	now := c.clock.Now()
	n := domain.Notification{
		ID:        c.nextID(now),
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
	}
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("notification dropped after close", "notification_id", n.ID, "kind", kind)
		return n
	}

	id := n.ID
	e := entry{
		notification: n,
		expiry:       c.clock.AfterFunc(c.ttl, func() { c.expire(id) }),
	}
	c.entries = append([]entry{e}, c.entries...)
	queueLen := len(c.entries)
	c.mu.Unlock()

	c.logger.Debug("notification added",
		"notification_id", id,
		"kind", kind,
		"queue_len", queueLen)
	c.emit(events.TypeNotificationAdded, n)
	return n
}

// Remove deletes the notification with the given id and cancels its expiry.
// It reports whether an entry was removed; unknown ids are a no-op.
func (c *Center) Remove(id int64) bool {
	n, ok := c.take(id, true)
	if !ok {
		return false
	}
	c.emit(events.TypeNotificationRemoved, n)
	return true
}

// List returns a copy of the queue, most recent first.
func (c *Center) List() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Notification, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.notification
	}
	return out
}

// Len returns the number of queued notifications.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close cancels every pending expiry. Queued entries stay readable.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for _, e := range c.entries {
		e.expiry.Stop()
	}
	c.logger.Debug("notification center closed", "queue_len", len(c.entries))
}

func (c *Center) expire(id int64) {
	n, ok := c.take(id, false)
	if !ok {
		return
	}
	c.logger.Debug("notification expired", "notification_id", id)
	c.emit(events.TypeNotificationExpired, n)
}

// take removes id from the queue. stopTimer is false when called from the
// expiry callback itself.
func (c *Center) take(id int64, stopTimer bool) (domain.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.entries {
		if e.notification.ID != id {
			continue
		}
		if stopTimer {
			e.expiry.Stop()
		}
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
		return e.notification, true
	}
	return domain.Notification{}, false
}

// nextID derives an id from the clock in milliseconds, bumped past the last
// issued id so calls within the same millisecond never collide.
func (c *Center) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

func (c *Center) emit(eventType string, n domain.Notification) {
	if c.emitter == nil {
		return
	}
	event, err := events.NewEventAt(eventType, n, c.clock.Now())
	if err != nil {
		c.logger.Error("failed to build notification event", "error", err, "event_type", eventType)
		return
	}
	if err := c.emitter.EmitEvent(context.Background(), event); err != nil {
		c.logger.Warn("notification event handler failed",
			"error", err,
			"event_type", eventType,
			"notification_id", n.ID)
	}
}

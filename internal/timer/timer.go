// Package timer implements the timer controller: a counter advanced once
// per interval by a repeating scheduled action.
package timer

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/phrazzld/bgtasks/internal/domain"
)

// DefaultInterval is the period of the counting action.
const DefaultInterval = time.Second

// Controller owns the timer state slice. At most one repeating action is
// registered at any time.
type Controller struct {
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger

	state  domain.TimerState
	ticker clock.Timer
	// generation identifies the current run; ticks from an earlier run
	// that raced a Stop are dropped.
	generation uint64
}

// New creates a stopped timer controller. A non-positive interval falls
// back to DefaultInterval.
func New(clk clock.Clock, interval time.Duration, logger *slog.Logger) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Controller{
		clock:    clk,
		interval: interval,
		logger:   logger.With("component", "timer_controller"),
	}
}

// Start begins counting. Calling Start while running is a no-op and
// reports false.
func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Running {
		c.logger.Debug("timer already running, start ignored", "count", c.state.Count)
		return false
	}

	now := c.clock.Now()
	c.state.Running = true
	c.state.StartedAt = &now
	c.generation++
	gen := c.generation
	c.ticker = c.clock.Every(c.interval, func() { c.tick(gen) })

	c.logger.Info("timer started", "count", c.state.Count, "interval", c.interval)
	return true
}

// Stop cancels the repeating action. It reports false if the timer was not
// running.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.stopLocked() {
		return false
	}
	c.logger.Info("timer stopped", "count", c.state.Count)
	return true
}

// Reset stops the timer and clears the counter and start time.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.state.Count = 0
	c.state.StartedAt = nil
	c.logger.Info("timer reset")
}

// State returns a copy of the timer state.
func (c *Controller) State() domain.TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Formatted renders the counter as MM:SS.
func (c *Controller) Formatted() string {
	c.mu.Lock()
	count := c.state.Count
	c.mu.Unlock()
	return FormatElapsed(count)
}

func (c *Controller) stopLocked() bool {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	if !c.state.Running {
		return false
	}
	c.state.Running = false
	c.generation++
	return true
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Running || gen != c.generation {
		return
	}
	c.state.Count++
}

// FormatElapsed renders a number of seconds as zero-padded MM:SS. Minutes
// are not capped at 59, so 6000 seconds renders as "100:00".
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

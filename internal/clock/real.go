package clock

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Real is a Clock backed by wall-clock time. Repeating actions are entries
// of a private cron scheduler; one-shot actions use time.AfterFunc.
type Real struct {
	cron      *cron.Cron
	closeOnce sync.Once
}

// NewReal creates a Real clock and starts its scheduler.
// Close must be called to release the scheduler goroutine.
func NewReal() *Real {
	c := cron.New()
	c.Start()
	return &Real{cron: c}
}

// Now returns the current wall-clock time.
func (r *Real) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f once after d.
func (r *Real) AfterFunc(d time.Duration, f func()) Timer {
	return &stdTimer{t: time.AfterFunc(d, f)}
}

// Every registers f as a cron entry firing once per period.
func (r *Real) Every(period time.Duration, f func()) Timer {
	if period <= 0 {
		period = time.Second
	}
	id := r.cron.Schedule(fixedInterval(period), cron.FuncJob(f))
	return &cronTimer{cron: r.cron, id: id}
}

// Close stops the scheduler and waits for running entries to return.
func (r *Real) Close() {
	r.closeOnce.Do(func() {
		<-r.cron.Stop().Done()
	})
}

// fixedInterval is a cron.Schedule that fires exactly one period after the
// previous activation. cron.Every rounds to whole seconds and aligns to
// second boundaries, which would shorten the first tick.
type fixedInterval time.Duration

func (i fixedInterval) Next(t time.Time) time.Time {
	return t.Add(time.Duration(i))
}

type stdTimer struct {
	t *time.Timer
}

func (s *stdTimer) Stop() bool {
	return s.t.Stop()
}

type cronTimer struct {
	cron    *cron.Cron
	id      cron.EntryID
	stopped atomic.Bool
}

func (c *cronTimer) Stop() bool {
	if !c.stopped.CompareAndSwap(false, true) {
		return false
	}
	c.cron.Remove(c.id)
	return true
}

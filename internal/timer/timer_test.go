package timer

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestController() (*Controller, *clock.Manual) {
	clk := clock.NewManual(epoch)
	return New(clk, DefaultInterval, setupTestLogger()), clk
}

func TestController_StartStopCountsTicks(t *testing.T) {
	for _, k := range []int{0, 1, 7, 125} {
		c, clk := newTestController()

		require.True(t, c.Start())
		clk.Advance(time.Duration(k) * time.Second)
		require.True(t, c.Stop())

		state := c.State()
		assert.Equal(t, k, state.Count)
		assert.False(t, state.Running)
		require.NotNil(t, state.StartedAt)
		assert.Equal(t, epoch, *state.StartedAt)

		clk.Advance(10 * time.Second)
		assert.Equal(t, k, c.State().Count, "count must not move after stop")
		assert.Equal(t, 0, clk.Pending())
	}
}

func TestController_StartIsIdempotent(t *testing.T) {
	c, clk := newTestController()

	require.True(t, c.Start())
	clk.Advance(500 * time.Millisecond)
	assert.False(t, c.Start(), "second start must be a no-op")
	assert.Equal(t, 1, clk.Pending(), "only one repeating action may be registered")

	clk.Advance(4500 * time.Millisecond)
	assert.Equal(t, 5, c.State().Count, "counting must not double up")
	require.NotNil(t, c.State().StartedAt)
	assert.Equal(t, epoch, *c.State().StartedAt, "start time keeps the first start")
}

func TestController_StopWhenIdle(t *testing.T) {
	c, clk := newTestController()

	c.Start()
	clk.Advance(3 * time.Second)
	c.Stop()
	before := c.State()

	assert.False(t, c.Stop())
	assert.Equal(t, before, c.State())
}

func TestController_Resume(t *testing.T) {
	c, clk := newTestController()

	c.Start()
	clk.Advance(2 * time.Second)
	c.Stop()
	clk.Advance(time.Second)
	c.Start()
	clk.Advance(3 * time.Second)

	state := c.State()
	assert.Equal(t, 5, state.Count, "count continues across stop/start")
	require.NotNil(t, state.StartedAt)
	assert.Equal(t, epoch.Add(3*time.Second), *state.StartedAt)
}

func TestController_Reset(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Controller, clk *clock.Manual)
	}{
		{name: "fresh", setup: func(*Controller, *clock.Manual) {}},
		{name: "running", setup: func(c *Controller, clk *clock.Manual) {
			c.Start()
			clk.Advance(42 * time.Second)
		}},
		{name: "stopped", setup: func(c *Controller, clk *clock.Manual) {
			c.Start()
			clk.Advance(7 * time.Second)
			c.Stop()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clk := newTestController()
			tt.setup(c, clk)

			c.Reset()

			state := c.State()
			assert.Equal(t, 0, state.Count)
			assert.False(t, state.Running)
			assert.Nil(t, state.StartedAt)
			assert.Equal(t, 0, clk.Pending())

			clk.Advance(5 * time.Second)
			assert.Equal(t, 0, c.State().Count)
		})
	}
}

func TestController_StaleTickIsDropped(t *testing.T) {
	c, _ := newTestController()

	c.Start()
	c.mu.Lock()
	staleGen := c.generation
	c.mu.Unlock()

	c.Stop()
	c.Start()

	// A tick from the first run that fires after the restart must not count.
	c.tick(staleGen)
	assert.Equal(t, 0, c.State().Count)
}

func TestController_StateIsCopy(t *testing.T) {
	c, _ := newTestController()
	c.Start()

	state := c.State()
	*state.StartedAt = epoch.Add(time.Hour)

	assert.Equal(t, epoch, *c.State().StartedAt)
}

func TestController_ConcurrentTicksAndStops(t *testing.T) {
	c, clk := newTestController()
	c.Start()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			clk.Advance(time.Second)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			c.Stop()
			c.Start()
		}
	}()
	wg.Wait()

	c.Stop()
	state := c.State()
	assert.False(t, state.Running)
	assert.LessOrEqual(t, state.Count, 100)
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{125, "02:05"},
		{3599, "59:59"},
		{6000, "100:00"},
		{-3, "00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestController_Formatted(t *testing.T) {
	c, clk := newTestController()
	c.Start()
	clk.Advance(125 * time.Second)
	assert.Equal(t, "02:05", c.Formatted())
}

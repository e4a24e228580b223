package worker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/phrazzld/bgtasks/internal/clock"
)

var (
	// ErrContextBusy is returned when a second request is posted to an
	// execution context.
	ErrContextBusy = errors.New("execution context already received its input")

	// ErrContextTerminated is returned when posting to a terminated context.
	ErrContextTerminated = errors.New("execution context terminated")
)

// Request is the single input message posted to an execution context.
type Request struct {
	Input int `json:"input"`
}

// Response is the single terminal message of an execution context. A
// non-empty Error marks a failure, in which case Input and Result are zero.
type Response struct {
	Input     int       `json:"input"`
	Result    int64     `json:"result"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Context is an isolated execution context. It shares no memory with the
// dispatcher; the only interaction is one Post and one Response.
type Context interface {
	// Post delivers the input message.
	Post(req Request) error

	// Messages yields the terminal response, then closes. A channel that
	// closes without a value means the context died without replying.
	Messages() <-chan Response

	// Terminate tears the context down. It is safe to call more than once.
	Terminate()
}

// Spawner creates a fresh execution context for one dispatch.
type Spawner func() Context

// GoroutineSpawner returns a Spawner whose contexts evaluate compute on a
// dedicated goroutine. Panics inside compute are reported as error responses.
func GoroutineSpawner(compute Computation, clk clock.Clock) Spawner {
	return func() Context {
		return newGoroutineContext(compute, clk)
	}
}

type goroutineContext struct {
	compute Computation
	clock   clock.Clock

	in   chan Request
	out  chan Response
	quit chan struct{}
	once sync.Once
}

func newGoroutineContext(compute Computation, clk clock.Clock) *goroutineContext {
	c := &goroutineContext{
		compute: compute,
		clock:   clk,
		in:      make(chan Request, 1),
		out:     make(chan Response, 1),
		quit:    make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *goroutineContext) Post(req Request) error {
	select {
	case <-c.quit:
		return ErrContextTerminated
	default:
	}

	select {
	case c.in <- req:
		return nil
	default:
		return ErrContextBusy
	}
}

func (c *goroutineContext) Messages() <-chan Response {
	return c.out
}

func (c *goroutineContext) Terminate() {
	c.once.Do(func() { close(c.quit) })
}

func (c *goroutineContext) run() {
	defer close(c.out)

	select {
	case req := <-c.in:
		// out is buffered, so replying never blocks on a terminated reader.
		c.out <- c.handle(req)
	case <-c.quit:
	}
}

func (c *goroutineContext) handle(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = Response{
				Error:     fmt.Sprintf("computation panicked: %v", r),
				Timestamp: c.clock.Now(),
			}
		}
	}()

	result, err := c.compute(req.Input)
	if err != nil {
		return Response{Error: err.Error(), Timestamp: c.clock.Now()}
	}
	return Response{Input: req.Input, Result: result, Timestamp: c.clock.Now()}
}

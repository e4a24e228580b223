package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/phrazzld/bgtasks/internal/domain"
)

// ErrBusy is returned by Dispatch while a computation is in flight.
var ErrBusy = errors.New("worker is already running")

// DefaultInput is the input value reported before the first dispatch.
const DefaultInput = 1000

// Notification messages emitted on completion.
const (
	MessageCompleted = "Computation completed"
	MessageFailed    = "Computation failed"
)

// Notifier receives outcome notifications.
type Notifier interface {
	Add(message string, kind domain.NotificationKind) domain.Notification
}

// Dispatcher owns the worker state slice and runs at most one dispatch at a
// time.
type Dispatcher struct {
	mu       sync.Mutex
	spawn    Spawner
	notifier Notifier
	clock    clock.Clock
	logger   *slog.Logger

	state domain.WorkerState
}

// NewDispatcher creates an idle dispatcher. A nil spawn runs FibSum on
// goroutine-backed contexts.
func NewDispatcher(spawn Spawner, notifier Notifier, clk clock.Clock, logger *slog.Logger) *Dispatcher {
	if spawn == nil {
		spawn = GoroutineSpawner(FibSum, clk)
	}
	return &Dispatcher{
		spawn:    spawn,
		notifier: notifier,
		clock:    clk,
		logger:   logger.With("component", "worker_dispatcher"),
		state:    domain.WorkerState{Input: DefaultInput},
	}
}

// Dispatch starts a computation over input and returns immediately with a
// handle for its outcome. It returns ErrBusy if a dispatch is in flight.
func (d *Dispatcher) Dispatch(input int) (*Handle, error) {
	d.mu.Lock()
	if d.state.Running {
		jobID := d.state.JobID
		d.mu.Unlock()
		d.logger.Warn("dispatch rejected, worker busy", "job_id", jobID, "input", input)
		return nil, ErrBusy
	}
	jobID := uuid.New()
	d.state = domain.WorkerState{
		Running: true,
		Input:   input,
		JobID:   jobID,
	}
	d.mu.Unlock()

	logger := d.logger.With("job_id", jobID, "input", input)
	h := newHandle(jobID, input)

	ec := d.spawn()
	if err := ec.Post(Request{Input: input}); err != nil {
		// A terminated context closes its message channel without a reply,
		// which await reports as a failure.
		logger.Error("failed to post input to execution context", "error", err)
		ec.Terminate()
	}

	logger.Info("computation dispatched")
	go d.await(ec, h, logger)
	return h, nil
}

// State returns a copy of the worker state.
func (d *Dispatcher) State() domain.WorkerState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Clone()
}

func (d *Dispatcher) await(ec Context, h *Handle, logger *slog.Logger) {
	defer ec.Terminate()

	resp, ok := <-ec.Messages()
	if !ok {
		resp = Response{
			Error:     "execution context exited without a result",
			Timestamp: d.clock.Now(),
		}
	}
	d.complete(h, resp, logger)
}

func (d *Dispatcher) complete(h *Handle, resp Response, logger *slog.Logger) {
	var (
		result *domain.WorkerResult
		err    error
	)
	if resp.Error != "" {
		err = fmt.Errorf("%w: %s", domain.ErrWorkerFailed, resp.Error)
	} else {
		result = &domain.WorkerResult{
			Input:     resp.Input,
			Result:    resp.Result,
			Timestamp: resp.Timestamp,
		}
	}

	d.mu.Lock()
	d.state.Running = false
	if result != nil {
		r := *result
		d.state.Result = &r
	}
	d.mu.Unlock()

	defer h.resolve(result, err)

	if err != nil {
		logger.Error("computation failed", "error", err)
		d.notifier.Add(MessageFailed, domain.NotificationError)
		return
	}
	logger.Info("computation completed", "result", result.Result)
	d.notifier.Add(MessageCompleted, domain.NotificationSuccess)
}

// Handle is a future for the terminal outcome of one dispatch.
type Handle struct {
	JobID uuid.UUID
	Input int

	done   chan struct{}
	result *domain.WorkerResult
	err    error
}

func newHandle(jobID uuid.UUID, input int) *Handle {
	return &Handle{JobID: jobID, Input: input, done: make(chan struct{})}
}

// Done is closed once the dispatch has reached its terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the dispatch resolves or ctx is done. Giving up on ctx
// does not stop the computation.
func (h *Handle) Wait(ctx context.Context) (domain.WorkerResult, error) {
	select {
	case <-h.done:
		if h.err != nil {
			return domain.WorkerResult{}, h.err
		}
		return *h.result, nil
	case <-ctx.Done():
		return domain.WorkerResult{}, ctx.Err()
	}
}

func (h *Handle) resolve(result *domain.WorkerResult, err error) {
	h.result = result
	h.err = err
	close(h.done)
}

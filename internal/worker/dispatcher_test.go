package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/phrazzld/bgtasks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sent struct {
	message string
	kind    domain.NotificationKind
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sent
}

func (n *recordingNotifier) Add(message string, kind domain.NotificationKind) domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sent{message, kind})
	return domain.Notification{Message: message, Kind: kind}
}

func (n *recordingNotifier) all() []sent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sent(nil), n.sent...)
}

func waitHandle(t *testing.T, h *Handle) (domain.WorkerResult, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := h.Wait(ctx)
	require.False(t, errors.Is(err, context.DeadlineExceeded), "dispatch did not resolve")
	return res, err
}

// fakeContext is a scripted execution context.
type fakeContext struct {
	postErr    error
	out        chan Response
	posted     []Request
	terminated int
	mu         sync.Mutex
}

func newFakeContext() *fakeContext {
	return &fakeContext{out: make(chan Response, 1)}
}

func (f *fakeContext) Post(req Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, req)
	return f.postErr
}

func (f *fakeContext) Messages() <-chan Response { return f.out }

func (f *fakeContext) Terminate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terminated++
	if f.terminated == 1 && f.postErr != nil {
		close(f.out)
	}
}

func (f *fakeContext) terminations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.terminated
}

func TestDispatcher_InitialState(t *testing.T) {
	d := NewDispatcher(nil, &recordingNotifier{}, clock.NewManual(epoch), setupTestLogger())

	state := d.State()
	assert.False(t, state.Running)
	assert.Equal(t, DefaultInput, state.Input)
	assert.Nil(t, state.Result)
	assert.Equal(t, uuid.Nil, state.JobID)
}

func TestDispatcher_Success(t *testing.T) {
	notifier := &recordingNotifier{}
	d := NewDispatcher(nil, notifier, clock.NewManual(epoch), setupTestLogger())

	h, err := d.Dispatch(5)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, h.JobID)
	assert.Equal(t, 5, h.Input)

	res, err := waitHandle(t, h)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkerResult{Input: 5, Result: 7, Timestamp: epoch}, res)

	state := d.State()
	assert.False(t, state.Running)
	assert.Equal(t, 5, state.Input)
	assert.Equal(t, h.JobID, state.JobID)
	require.NotNil(t, state.Result)
	assert.Equal(t, int64(7), state.Result.Result)
	assert.Equal(t, []sent{{MessageCompleted, domain.NotificationSuccess}}, notifier.all())
}

func TestDispatcher_WrapAtTwenty(t *testing.T) {
	d := NewDispatcher(nil, &recordingNotifier{}, clock.NewManual(epoch), setupTestLogger())

	h, err := d.Dispatch(25)
	require.NoError(t, err)
	res, err := waitHandle(t, h)
	require.NoError(t, err)
	assert.Equal(t, int64(10952), res.Result)
}

func TestDispatcher_RejectsWhileRunning(t *testing.T) {
	release := make(chan struct{})
	compute := func(input int) (int64, error) {
		<-release
		return FibSum(input)
	}
	notifier := &recordingNotifier{}
	d := NewDispatcher(GoroutineSpawner(compute, clock.NewManual(epoch)), notifier, clock.NewManual(epoch), setupTestLogger())

	h, err := d.Dispatch(5)
	require.NoError(t, err)
	assert.True(t, d.State().Running)
	assert.Nil(t, d.State().Result, "result is cleared on dispatch")

	_, err = d.Dispatch(6)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 5, d.State().Input, "a rejected dispatch leaves state untouched")

	close(release)
	_, err = waitHandle(t, h)
	require.NoError(t, err)

	// Idle again: a new dispatch is accepted and clears the previous result.
	h2, err := d.Dispatch(1)
	require.NoError(t, err)
	res, err := waitHandle(t, h2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Result)
	assert.Len(t, notifier.all(), 2)
}

func TestDispatcher_ErrorMessage(t *testing.T) {
	notifier := &recordingNotifier{}
	d := NewDispatcher(nil, notifier, clock.NewManual(epoch), setupTestLogger())

	h, err := d.Dispatch(-1)
	require.NoError(t, err)

	_, err = waitHandle(t, h)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWorkerFailed)
	assert.Contains(t, err.Error(), ErrNegativeInput.Error())

	state := d.State()
	assert.False(t, state.Running)
	assert.Nil(t, state.Result)
	assert.Equal(t, []sent{{MessageFailed, domain.NotificationError}}, notifier.all())
}

func TestDispatcher_ContextTornDownAfterReply(t *testing.T) {
	fc := newFakeContext()
	d := NewDispatcher(func() Context { return fc }, &recordingNotifier{}, clock.NewManual(epoch), setupTestLogger())

	h, err := d.Dispatch(3)
	require.NoError(t, err)
	fc.out <- Response{Input: 3, Result: 2, Timestamp: epoch}

	res, err := waitHandle(t, h)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Result)
	assert.Equal(t, []Request{{Input: 3}}, fc.posted)
	assert.Eventually(t, func() bool { return fc.terminations() == 1 }, time.Second, time.Millisecond)
}

func TestDispatcher_ContextExitsWithoutReply(t *testing.T) {
	fc := newFakeContext()
	notifier := &recordingNotifier{}
	d := NewDispatcher(func() Context { return fc }, notifier, clock.NewManual(epoch), setupTestLogger())

	h, err := d.Dispatch(3)
	require.NoError(t, err)
	close(fc.out)

	_, err = waitHandle(t, h)
	assert.ErrorIs(t, err, domain.ErrWorkerFailed)
	assert.False(t, d.State().Running)
	assert.Equal(t, []sent{{MessageFailed, domain.NotificationError}}, notifier.all())
}

func TestDispatcher_PostFailure(t *testing.T) {
	fc := newFakeContext()
	fc.postErr = ErrContextTerminated
	d := NewDispatcher(func() Context { return fc }, &recordingNotifier{}, clock.NewManual(epoch), setupTestLogger())

	h, err := d.Dispatch(3)
	require.NoError(t, err)

	_, err = waitHandle(t, h)
	assert.ErrorIs(t, err, domain.ErrWorkerFailed)
	assert.False(t, d.State().Running)
}

func TestHandle_WaitHonoursContext(t *testing.T) {
	h := newHandle(uuid.New(), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	select {
	case <-h.Done():
		t.Fatal("handle must not resolve on caller cancellation")
	default:
	}
}

package worker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/phrazzld/bgtasks/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

func receive(t *testing.T, ec Context) (Response, bool) {
	t.Helper()
	select {
	case resp, ok := <-ec.Messages():
		return resp, ok
	case <-time.After(2 * time.Second):
		t.Fatal("execution context did not reply")
		return Response{}, false
	}
}

func TestGoroutineContext_Success(t *testing.T) {
	ec := GoroutineSpawner(FibSum, clock.NewManual(epoch))()
	defer ec.Terminate()

	require.NoError(t, ec.Post(Request{Input: 5}))
	resp, ok := receive(t, ec)
	require.True(t, ok)
	assert.Equal(t, Response{Input: 5, Result: 7, Timestamp: epoch}, resp)

	_, ok = receive(t, ec)
	assert.False(t, ok, "exactly one message per context")
}

func TestGoroutineContext_ErrorResponse(t *testing.T) {
	ec := GoroutineSpawner(FibSum, clock.NewManual(epoch))()
	defer ec.Terminate()

	require.NoError(t, ec.Post(Request{Input: -3}))
	resp, ok := receive(t, ec)
	require.True(t, ok)
	assert.Contains(t, resp.Error, ErrNegativeInput.Error())
	assert.Zero(t, resp.Result)
	assert.Equal(t, epoch, resp.Timestamp)
}

func TestGoroutineContext_PanicBecomesError(t *testing.T) {
	compute := func(int) (int64, error) { panic("boom") }
	ec := GoroutineSpawner(compute, clock.NewManual(epoch))()
	defer ec.Terminate()

	require.NoError(t, ec.Post(Request{Input: 1}))
	resp, ok := receive(t, ec)
	require.True(t, ok)
	assert.Equal(t, "computation panicked: boom", resp.Error)
}

func TestGoroutineContext_TerminateBeforePost(t *testing.T) {
	ec := GoroutineSpawner(FibSum, clock.NewManual(epoch))()
	ec.Terminate()
	ec.Terminate()

	assert.ErrorIs(t, ec.Post(Request{Input: 1}), ErrContextTerminated)
	_, ok := receive(t, ec)
	assert.False(t, ok, "terminated context closes without a reply")
}

func TestResponse_JSONShape(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{
			name: "zero input success keeps every field",
			resp: Response{Input: 0, Result: 0, Timestamp: epoch},
			want: `{"input":0,"result":0,"timestamp":"2025-04-01T12:00:00Z"}`,
		},
		{
			name: "success",
			resp: Response{Input: 5, Result: 7, Timestamp: epoch},
			want: `{"input":5,"result":7,"timestamp":"2025-04-01T12:00:00Z"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.resp)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

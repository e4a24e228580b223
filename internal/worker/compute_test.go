package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFib(t *testing.T) {
	want := []int64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55}
	for n, w := range want {
		assert.Equal(t, w, fib(n), "fib(%d)", n)
	}
	assert.Equal(t, int64(4181), fib(19))
}

func TestFibSum(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  int64
	}{
		{name: "zero", input: 0, want: 0},
		{name: "one", input: 1, want: 0},
		{name: "five", input: 5, want: 7}, // 0+1+1+2+3
		{name: "one full cycle", input: 20, want: 10945},
		{name: "wraps at twenty", input: 25, want: 10945 + 7},
		{name: "default input", input: 1000, want: 50 * 10945},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FibSum(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFibSum_Wrap(t *testing.T) {
	base, err := FibSum(20)
	require.NoError(t, err)

	// Term 20 uses fib(0), term 21 uses fib(1), term 22 uses fib(2).
	for i, extra := range []int64{0, 1, 1} {
		got, err := FibSum(21 + i)
		require.NoError(t, err)
		prev, err := FibSum(20 + i)
		require.NoError(t, err)
		assert.Equal(t, extra, got-prev, "term %d", 20+i)
	}
	assert.Equal(t, int64(10945), base)
}

func TestFibSum_NegativeInput(t *testing.T) {
	_, err := FibSum(-1)
	assert.ErrorIs(t, err, ErrNegativeInput)
}

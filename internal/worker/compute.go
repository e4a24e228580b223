package worker

import (
	"errors"
	"fmt"
)

// ErrNegativeInput is reported by FibSum for inputs below zero.
var ErrNegativeInput = errors.New("input must not be negative")

// fibWrap bounds the per-term cost of FibSum.
const fibWrap = 20

// Computation is the pure function an execution context evaluates.
type Computation func(input int) (int64, error)

// FibSum returns the sum of fib(i mod 20) for i in [0, input), using the
// naive recursive Fibonacci so that cost grows linearly with input.
func FibSum(input int) (int64, error) {
	if input < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeInput, input)
	}
	var sum int64
	for i := 0; i < input; i++ {
		sum += fib(i % fibWrap)
	}
	return sum, nil
}

func fib(n int) int64 {
	if n <= 1 {
		return int64(n)
	}
	return fib(n-1) + fib(n-2)
}

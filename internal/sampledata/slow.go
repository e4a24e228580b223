package sampledata

import (
	"context"
	"math"
	"strconv"
)

// DefaultSlowIterations is used by the slow endpoint when no count is given.
const DefaultSlowIterations = 1_000_000

// checkEvery bounds how often Slow polls its context.
const checkEvery = 1 << 16

// Slow runs the deliberately CPU-bound loop Σ sqrt(i)·sin(i) for i in
// [0, iterations). It stops early with ctx.Err() when the context ends.
func Slow(ctx context.Context, iterations int) (float64, error) {
	var result float64
	for i := 0; i < iterations; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		f := float64(i)
		result += math.Sqrt(f) * math.Sin(f)
	}
	return result, nil
}

// FormatResult renders a slow result with two decimals, as the service
// reports it.
func FormatResult(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

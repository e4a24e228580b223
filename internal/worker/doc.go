// Package worker implements the worker dispatcher and the isolated execution
// context it offloads computations to.
//
// A dispatch spawns one execution context, posts a single Request and waits
// for exactly one terminal Response. The context is torn down afterwards and
// never reused. There is no cancellation: once dispatched, a computation runs
// to completion or failure.
package worker

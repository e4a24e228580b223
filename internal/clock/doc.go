// Package clock abstracts time for the background controllers.
//
// Every scheduled action is returned as a Timer token owned by its caller,
// so repeating ticks and one-shot expiries can be cancelled explicitly.
// Real schedules work on wall-clock time; Manual is an explicit tick source
// that only moves when a test advances it.
package clock

package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimerState is the state slice owned by the timer controller.
type TimerState struct {
	Running   bool       `json:"isRunning"`
	Count     int        `json:"count"`
	StartedAt *time.Time `json:"startTime"`
}

// FetchState is the state slice owned by the fetch controller.
// An empty Error means the last request did not fail.
type FetchState struct {
	Items         []Post     `json:"posts"`
	Loading       bool       `json:"loading"`
	Error         string     `json:"error,omitempty"`
	LastFetchedAt *time.Time `json:"lastFetched"`
}

// WorkerResult is the success payload of an offloaded computation.
type WorkerResult struct {
	Input     int       `json:"input"`
	Result    int64     `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// WorkerState is the state slice owned by the worker dispatcher.
type WorkerState struct {
	Running bool          `json:"isRunning"`
	Input   int           `json:"input"`
	Result  *WorkerResult `json:"result"`
	JobID   uuid.UUID     `json:"jobId"`
}

// Clone returns a deep copy of the fetch state so callers cannot alias the
// controller's item slice.
func (s FetchState) Clone() FetchState {
	out := s
	if s.Items != nil {
		out.Items = make([]Post, len(s.Items))
		copy(out.Items, s.Items)
	}
	if s.LastFetchedAt != nil {
		t := *s.LastFetchedAt
		out.LastFetchedAt = &t
	}
	return out
}

// Clone returns a deep copy of the timer state.
func (s TimerState) Clone() TimerState {
	out := s
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	return out
}

// Clone returns a deep copy of the worker state.
func (s WorkerState) Clone() WorkerState {
	out := s
	if s.Result != nil {
		r := *s.Result
		out.Result = &r
	}
	return out
}

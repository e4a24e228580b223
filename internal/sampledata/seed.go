package sampledata

import "github.com/phrazzld/bgtasks/internal/domain"

// SeedPosts returns a fresh copy of the standard data set.
func SeedPosts() []domain.Post {
	return []domain.Post{
		{
			ID:     1,
			Title:  "Learning background processing",
			Body:   "Asynchronous work, timers, API calls, shared state and offloaded computation in one place.",
			UserID: 1,
		},
		{
			ID:     2,
			Title:  "Asynchronous calls",
			Body:   "How requests are issued without blocking the caller and how their results come back.",
			UserID: 1,
		},
		{
			ID:     3,
			Title:  "Timers",
			Body:   "Periodic and delayed actions, and how to cancel them cleanly.",
			UserID: 1,
		},
		{
			ID:     4,
			Title:  "API communication",
			Body:   "Talking to an external HTTP service and handling its failures.",
			UserID: 1,
		},
		{
			ID:     5,
			Title:  "State management",
			Body:   "Keeping shared state consistent when several activities update it.",
			UserID: 1,
		},
		{
			ID:     6,
			Title:  "Offloaded workers",
			Body:   "Running heavy computation away from the coordinating thread.",
			UserID: 1,
		},
	}
}

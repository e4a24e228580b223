// Package domain contains the core entities shared by the background
// controllers: posts, notifications and the per-controller state slices.
// It has no dependencies on scheduling, transport or storage.
package domain

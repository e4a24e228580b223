package api

import "time"

// CreatePostRequest is the body of POST /api/posts.
// Title and body are required; a missing userId defaults to 1.
type CreatePostRequest struct {
	Title  string `json:"title"  validate:"required"`
	Body   string `json:"body"   validate:"required"`
	UserID int    `json:"userId" validate:"gte=0"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	// Uptime is the process uptime in seconds.
	Uptime float64 `json:"uptime"`
}

// SlowResponse is the body of GET /api/slow.
type SlowResponse struct {
	Result     string    `json:"result"`
	Iterations int       `json:"iterations"`
	Timestamp  time.Time `json:"timestamp"`
}

// ServiceInfo is the body of GET /.
type ServiceInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

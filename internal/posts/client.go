// Package posts is an HTTP client for the sample-data service. Client
// satisfies fetch.PostsSource.
package posts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/bgtasks/internal/domain"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read for diagnostics.
const maxErrorBody = 4 << 10

// ListOptions filters GET /api/posts. Zero values mean "no filter".
type ListOptions struct {
	Limit  int
	UserID int
}

// CreateRequest is the body of POST /api/posts.
type CreateRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId,omitempty"`
}

// Health is the body of GET /api/health.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// SlowResult is the body of GET /api/slow.
type SlowResult struct {
	Result     string    `json:"result"`
	Iterations int       `json:"iterations"`
	Timestamp  time.Time `json:"timestamp"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client talks to the sample-data service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "posts_client"),
	}
}

// ListPosts returns every post.
func (c *Client) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return c.ListPostsFiltered(ctx, ListOptions{})
}

// ListPostsFiltered returns posts matching opts.
func (c *Client) ListPostsFiltered(ctx context.Context, opts ListOptions) ([]domain.Post, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.UserID > 0 {
		q.Set("userId", strconv.Itoa(opts.UserID))
	}

	var posts []domain.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", q, nil, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

// GetPost returns one post. A missing post yields domain.ErrNotFound.
func (c *Client) GetPost(ctx context.Context, id int) (domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+strconv.Itoa(id), nil, nil, &post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// CreatePost creates a post. Missing fields yield domain.ErrValidation.
func (c *Client) CreatePost(ctx context.Context, req CreateRequest) (domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", nil, req, &post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// Health queries the service health endpoint.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, nil, &h); err != nil {
		return Health{}, err
	}
	return h, nil
}

// Slow runs the service's CPU-bound endpoint.
func (c *Client) Slow(ctx context.Context, iterations int) (SlowResult, error) {
	q := url.Values{}
	if iterations > 0 {
		q.Set("iterations", strconv.Itoa(iterations))
	}
	var res SlowResult
	if err := c.do(ctx, http.MethodGet, "/api/slow", q, nil, &res); err != nil {
		return SlowResult{}, err
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrNetwork, method, path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("failed to close response body", "error", cerr)
		}
	}()

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(method, path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrDecode, method, path, err)
	}
	return nil
}

func statusError(method, path string, resp *http.Response) error {
	detail := http.StatusText(resp.StatusCode)
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
		detail = eb.Error
	}

	err := fmt.Errorf("%w: %s %s returned %d: %s",
		domain.ErrUnexpectedStatus, method, path, resp.StatusCode, detail)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	default:
		return err
	}
}

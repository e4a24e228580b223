package sampledata

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/bgtasks/internal/domain"
)

// PostStore defines the persistence operations of the sample-data service.
type PostStore interface {
	// List returns posts in insertion order, filtered by the given options.
	List(ctx context.Context, filter Filter) ([]domain.Post, error)

	// GetByID returns the post with the given id.
	// Returns an error wrapping domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id int) (domain.Post, error)

	// Create validates and appends a post, assigning the next sequential id.
	// A zero UserID defaults to 1.
	Create(ctx context.Context, post domain.Post) (domain.Post, error)
}

// Filter narrows a List call. The zero value returns every post.
type Filter struct {
	// UserID keeps only posts authored by this user; zero disables it.
	UserID int
	// Limit keeps at most this many posts after the user filter. It applies
	// only when Limited is set, so a limit of zero yields no posts.
	Limit   int
	Limited bool
}

// DefaultUserID is assigned to created posts that carry no author.
const DefaultUserID = 1

// MemoryPostStore implements PostStore on a mutex-guarded slice.
type MemoryPostStore struct {
	mu    sync.RWMutex
	posts []domain.Post
}

var _ PostStore = (*MemoryPostStore)(nil)

// NewMemoryPostStore creates a store pre-loaded with the given posts.
// Pass SeedPosts() for the standard data set.
func NewMemoryPostStore(seed []domain.Post) *MemoryPostStore {
	posts := make([]domain.Post, len(seed))
	copy(posts, seed)
	return &MemoryPostStore{posts: posts}
}

// List implements PostStore.
func (s *MemoryPostStore) List(ctx context.Context, filter Filter) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if filter.UserID != 0 && p.UserID != filter.UserID {
			continue
		}
		out = append(out, p)
	}
	if filter.Limited && len(out) > filter.Limit {
		out = out[:max(filter.Limit, 0)]
	}
	return out, nil
}

// GetByID implements PostStore.
func (s *MemoryPostStore) GetByID(ctx context.Context, id int) (domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return domain.Post{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Post{}, fmt.Errorf("post %d: %w", id, domain.ErrNotFound)
}

// Create implements PostStore.
// Ids follow the original service: the new id is the current length plus one.
func (s *MemoryPostStore) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return domain.Post{}, err
	}
	if err := post.Validate(); err != nil {
		return domain.Post{}, err
	}
	if post.UserID == 0 {
		post.UserID = DefaultUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = len(s.posts) + 1
	s.posts = append(s.posts, post)
	return post, nil
}

// Len returns the number of stored posts.
func (s *MemoryPostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

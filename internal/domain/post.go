package domain

import (
	"fmt"
	"strings"
)

// Post is the opaque payload served by the sample-data source.
// The controllers never mutate it.
type Post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// Validate checks that a post carries the fields required for creation.
func (p Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(p.Body) == "" {
		return fmt.Errorf("%w: body is required", ErrValidation)
	}
	return nil
}

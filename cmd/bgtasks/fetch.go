package main

import (
	"context"

	"github.com/phrazzld/bgtasks/internal/domain"
	"github.com/phrazzld/bgtasks/internal/posts"
	"github.com/spf13/cobra"
)

// filteredSource applies list filters to every fetch.
type filteredSource struct {
	client *posts.Client
	opts   posts.ListOptions
}

func (s filteredSource) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.client.ListPostsFiltered(ctx, s.opts)
}

func newFetchCmd(c *cli) *cobra.Command {
	var opts posts.ListOptions

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch posts through the store and print the fetch slice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, release, err := c.newStore(filteredSource{client: c.client, opts: opts})
			if err != nil {
				return err
			}
			defer release()

			fetchErr := store.FetchPosts(cmd.Context())
			if err := c.printJSON(struct {
				Fetch       domain.FetchState `json:"apiData"`
				PostsCount  int               `json:"postsCount"`
				LatestPosts []domain.Post     `json:"latestPosts"`
			}{
				Fetch:       store.Fetch(),
				PostsCount:  store.PostsCount(),
				LatestPosts: store.LatestPosts(),
			}); err != nil {
				return err
			}
			return fetchErr
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "return at most this many posts")
	cmd.Flags().IntVar(&opts.UserID, "user-id", 0, "only posts by this user")
	return cmd
}

package main

import (
	"fmt"
	"strconv"

	"github.com/phrazzld/bgtasks/internal/posts"
	"github.com/spf13/cobra"
)

func newPostCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Single-post operations against the sample-data service",
		RunE: func(*cobra.Command, []string) error {
			return ErrMissingSubcommand
		},
	}
	cmd.AddCommand(newPostCreateCmd(c), newPostGetCmd(c))
	return cmd
}

func newPostCreateCmd(c *cli) *cobra.Command {
	var req posts.CreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			post, err := c.client.CreatePost(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.printJSON(post)
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "post title (required)")
	cmd.Flags().StringVar(&req.Body, "body", "", "post body (required)")
	cmd.Flags().IntVar(&req.UserID, "user-id", 0, "author id (defaults to 1 on the server)")
	return cmd
}

func newPostGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q: %w", args[0], err)
			}
			post, err := c.client.GetPost(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.printJSON(post)
		},
	}
}

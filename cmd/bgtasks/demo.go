package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newDemoCmd(c *cli) *cobra.Command {
	var (
		input int
		hold  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Start the timer, fetch posts and run a computation concurrently, then print a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("input") {
				input = c.cfg.Worker.DefaultInput
			}

			store, release, err := c.newStore(c.client)
			if err != nil {
				return err
			}
			defer release()

			if err := store.StartTimer(); err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				// Failures are reported through the fetch slice and a notification.
				_ = store.FetchPosts(ctx)
				return nil
			})
			g.Go(func() error {
				handle, err := store.DispatchWorker(input)
				if err != nil {
					return err
				}
				_, _ = handle.Wait(ctx)
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}

			if hold > 0 {
				select {
				case <-time.After(hold):
				case <-cmd.Context().Done():
				}
			}

			if err := store.StopTimer(); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "elapsed %s\n", store.FormattedTimer())
			return c.printJSON(store.Snapshot())
		},
	}

	cmd.Flags().IntVar(&input, "input", 0, "worker input (defaults to worker.default_input)")
	cmd.Flags().DurationVar(&hold, "hold", 0, "keep the timer running this long after both tasks finish")
	return cmd
}

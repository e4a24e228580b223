package main

import (
	"github.com/phrazzld/bgtasks/internal/sampledata"
	"github.com/spf13/cobra"
)

func newHealthCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the sample-data service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := c.client.Health(cmd.Context())
			if err != nil {
				return err
			}
			return c.printJSON(h)
		},
	}
}

func newSlowCmd(c *cli) *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "slow",
		Short: "Run the server-side slow computation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.client.Slow(cmd.Context(), iterations)
			if err != nil {
				return err
			}
			return c.printJSON(res)
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", sampledata.DefaultSlowIterations, "loop iterations")
	return cmd
}

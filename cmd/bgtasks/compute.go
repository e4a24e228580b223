package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newComputeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "compute [n]",
		Short: "Run the offloaded Fibonacci-sum computation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := c.cfg.Worker.DefaultInput
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid input %q: %w", args[0], err)
				}
				input = n
			}

			store, release, err := c.newStore(c.client)
			if err != nil {
				return err
			}
			defer release()

			handle, err := store.DispatchWorker(input)
			if err != nil {
				return err
			}
			result, err := handle.Wait(cmd.Context())
			if err != nil {
				return err
			}
			return c.printJSON(result)
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMoviesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "movies <user>",
		Short: "Show a user's stored collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			payload, err := client.Movies(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, payload)
			}
			if payload.Count == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No films stored for %s.\n", args[0])
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(movieHeaders, movieRows(payload.Movies), movieAligns))
			fmt.Fprintf(cmd.OutOrStdout(), "%d films\n", payload.Count)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

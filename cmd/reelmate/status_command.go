package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			status, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, status)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server:   running (pid %d, version %s)\n", status.PID, status.Version)
			fmt.Fprintf(out, "Store:    %s\n", status.StorePath)
			fmt.Fprintf(out, "Users:    %d\n", status.UserCount)
			if status.StartedAt != "" {
				fmt.Fprintf(out, "Started:  %s\n", status.StartedAt)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

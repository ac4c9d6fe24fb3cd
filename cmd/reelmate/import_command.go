package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "import <user> <export.csv>",
		Short: "Import a Letterboxd CSV export for a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, path := args[0], args[1]

			var export io.Reader
			if path == "-" {
				export = cmd.InOrStdin()
			} else {
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open export: %w", err)
				}
				defer file.Close()
				export = file
			}

			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			started := time.Now()
			summary, err := client.Import(cmd.Context(), userID, export)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d films for %s in %s\n",
				summary.Total, userID, time.Since(started).Round(time.Second))
			fmt.Fprintf(out, "  matched on TMDB:  %d\n", summary.Matched)
			fmt.Fprintf(out, "  without a match:  %d\n", summary.Unmatched)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelmate/internal/api"
	"reelmate/internal/movies"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var full bool

	cmd := &cobra.Command{
		Use:   "compare <user> <friend>",
		Short: "Compare two stored collections",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			payload, err := client.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, payload)
			}

			renderComparison(cmd, payload, full)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	cmd.Flags().BoolVar(&full, "full", false, "List every title in each bucket")
	return cmd
}

func renderComparison(cmd *cobra.Command, payload api.CompareResponse, full bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%d films) vs %s (%d films)\n",
		payload.UserID, payload.UserTotal, payload.FriendID, payload.FriendTotal)
	fmt.Fprintf(out, "Similarity: %d%%\n", payload.SimilarityPercent)
	fmt.Fprintf(out, "  both watched:       %d\n", payload.CommonCount)
	fmt.Fprintf(out, "  only %s:  %d\n", payload.UserID, len(payload.UserOnly))
	fmt.Fprintf(out, "  only %s:  %d\n", payload.FriendID, len(payload.FriendOnly))

	if !full {
		return
	}
	sections := []struct {
		label   string
		records []string
	}{
		{"Both watched", titles(payload.Common)},
		{"Only " + payload.UserID, titles(payload.UserOnly)},
		{"Only " + payload.FriendID, titles(payload.FriendOnly)},
	}
	for _, section := range sections {
		if len(section.records) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s:\n", section.label)
		for _, title := range section.records {
			fmt.Fprintf(out, "  %s\n", title)
		}
	}
}

func titles(records []movies.Record) []string {
	labels := make([]string, 0, len(records))
	for _, rec := range records {
		label := rec.Title
		if rec.Year != nil {
			label = fmt.Sprintf("%s (%d)", rec.Title, *rec.Year)
		}
		labels = append(labels, label)
	}
	return labels
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUsersCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users with stored collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			payload, err := client.Users(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, payload)
			}
			if len(payload.Users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users stored yet.")
				return nil
			}

			rows := make([][]string, 0, len(payload.Users))
			for _, user := range payload.Users {
				rows = append(rows, []string{
					user.UserID,
					user.DisplayName,
					user.Email,
					strconv.Itoa(user.MovieCount),
					user.UpdatedAt,
				})
			}
			headers := []string{"User", "Name", "Email", "Films", "Updated"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

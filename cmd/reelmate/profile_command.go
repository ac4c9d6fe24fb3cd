package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reelmate/internal/api"
)

func newProfileCommand(ctx *commandContext) *cobra.Command {
	var displayName string
	var email string
	var photoURL string

	cmd := &cobra.Command{
		Use:   "profile <user>",
		Short: "Update a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if displayName == "" && email == "" && photoURL == "" {
				return errors.New("nothing to update: pass --name, --email, or --photo")
			}
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			user, err := client.SaveProfile(cmd.Context(), args[0], api.ProfileRequest{
				DisplayName: displayName,
				Email:       email,
				PhotoURL:    photoURL,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated profile for %s\n", user.UserID)
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&photoURL, "photo", "", "Avatar URL")
	return cmd
}

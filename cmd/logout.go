// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"tql/cli/internal/keychain"
	"tql/cli/internal/render"

	"github.com/spf13/cobra"
)

// logoutCmd removes the stored API token from the OS keychain.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved API token",
	Long: `The logout command deletes the API token stored by 'tql login' from the OS
keychain. Tokens passed with --token or TQL_TOKEN are not affected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			return fmt.Errorf("open keychain: %w", err)
		}
		if err := km.ClearToken(); err != nil {
			return fmt.Errorf("remove token: %w", err)
		}
		render.New(cmd.OutOrStdout()).Info("saved token removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

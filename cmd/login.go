// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"tql/cli/internal/config"
	"tql/cli/internal/keychain"
	"tql/cli/internal/logging"
	"tql/cli/internal/render"
	"tql/cli/internal/terminal"

	"github.com/spf13/cobra"
)

// loginCmd stores an API token in the OS keychain after checking it works.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Save an API token in the OS keychain",
	Long: `The login command asks for a Trickest API token, verifies it by listing the
datasets of the configured solution and stores it in the OS keychain.

When --base-url or --solution are given they are also written to the config
file so later runs do not need them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		closeLog, err := setupLogging(cfg)
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}
		defer func() { _ = closeLog() }()

		if err := cfg.Validate(); err != nil {
			return err
		}

		out := render.New(cmd.OutOrStdout())
		token := strings.TrimSpace(globalFlags.token)
		if token == "" {
			token = strings.TrimSpace(os.Getenv(config.EnvToken))
		}
		in := terminal.NewPrompter(os.Stdin, cmd.OutOrStdout(), nil)
		if token == "" {
			token, err = in.ReadSecret("API token: ")
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}
		}
		if token == "" {
			return errors.New("empty token")
		}

		stop := func() {}
		if busy := busyFunc(in.Interactive(), cmd.OutOrStdout()); busy != nil {
			stop = busy("Verifying token")
		}
		list, err := newClient(cfg, token).ListDatasets(cmd.Context())
		stop()
		if err != nil {
			return errors.New(logging.PresentError("token check failed", err))
		}

		km, err := keychain.GetManager()
		if err != nil {
			return fmt.Errorf("open keychain: %w", err)
		}
		if err := km.SaveToken(token); err != nil {
			return fmt.Errorf("save token: %w", err)
		}

		if cmd.Flags().Changed("base-url") || cmd.Flags().Changed("solution") {
			if err := saveConnection(cfg); err != nil {
				return err
			}
		}

		out.Info(fmt.Sprintf("token saved; solution %s has %d datasets", cfg.SolutionID, len(list)))
		return nil
	},
}

// saveConnection writes the service location to the config file, keeping any
// other settings already stored there.
func saveConnection(cfg config.Config) error {
	stored, err := config.Load()
	if err != nil {
		return err
	}
	stored.BaseURL = cfg.BaseURL
	stored.SolutionID = cfg.SolutionID
	if err := config.Save(stored); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

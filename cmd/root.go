// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for tql.
// The root command runs the interactive query shell; subcommands cover one-shot
// listing and querying plus storing the API token in the OS keychain.
package cmd

import (
	"fmt"
	"os"

	"tql/cli/internal/dataset"
	"tql/cli/internal/logging"
	"tql/cli/internal/render"
	"tql/cli/internal/session"
	"tql/cli/internal/terminal"

	"github.com/spf13/cobra"
)

var (
	showVersion  bool
	shellDataset string
)

// rootCmd starts the interactive shell when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "tql",
	Short: "Interactive query shell for Trickest datasets",
	Long: `tql lists the datasets of a Trickest solution, lets you pick one and then
runs filter queries against it, one page at a time.

Type a filter expression at the prompt (or * for everything) to see a table of
results. Commands start with a colon; type ? for the full list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, logging.PresentError("", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.Flags().StringVarP(&shellDataset, "dataset", "d", "", "Start on this dataset id instead of choosing one")
	bindGlobalFlags(rootCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	if showVersion {
		printVersion(cmd.OutOrStdout())
		return nil
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	out := render.New(cmd.OutOrStdout())
	in := terminal.NewPrompter(os.Stdin, cmd.OutOrStdout(), session.Commands)
	busy := busyFunc(in.Interactive(), cmd.OutOrStdout())
	restore := restoreCursorOnInterrupt()
	defer restore()

	out.Banner(Version, a.cfg.BaseURL)

	sel := session.NewSelector(a.api, out, in)
	sel.Busy = busy

	var ds *dataset.Dataset
	if shellDataset != "" {
		ds = &dataset.Dataset{ID: shellDataset}
	} else {
		ds, err = sel.Choose(ctx)
		if err != nil {
			return fmt.Errorf("list datasets: %w", err)
		}
		if ds == nil {
			out.Info("bye")
			return nil
		}
	}

	out.Active(ds.DisplayName())
	out.Help(session.HelpText)

	ctrl := session.NewController(a.api, out, sel, session.New(*ds, a.cfg.DefaultLimit))
	ctrl.Busy = busy
	if err := ctrl.Run(ctx, in); err != nil {
		return err
	}
	out.Info("bye")
	return nil
}

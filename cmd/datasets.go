// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"tql/cli/internal/render"

	"github.com/spf13/cobra"
)

var datasetsJSON bool

// datasetsCmd lists the solution's datasets without entering the shell.
var datasetsCmd = &cobra.Command{
	Use:     "datasets",
	Aliases: []string{"ls"},
	Short:   "List the datasets of the configured solution",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.api.ListDatasets(cmd.Context())
		if err != nil {
			return err
		}

		out := render.New(cmd.OutOrStdout())
		if datasetsJSON {
			rows := make([]map[string]any, 0, len(list))
			for _, d := range list {
				row := map[string]any{"id": d.ID, "name": d.Name}
				if d.Rows != nil {
					row["rows"] = *d.Rows
				}
				rows = append(rows, row)
			}
			out.JSON(rows)
			return nil
		}
		if len(list) == 0 {
			out.Info("no datasets")
			return nil
		}
		out.Datasets(list)
		return nil
	},
}

func init() {
	datasetsCmd.Flags().BoolVar(&datasetsJSON, "json", false, "Print datasets as JSON")
	rootCmd.AddCommand(datasetsCmd)
}

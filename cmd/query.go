// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"strings"

	"tql/cli/internal/dataset"
	"tql/cli/internal/render"
	"tql/cli/internal/shape"

	"github.com/spf13/cobra"
)

var queryFlags struct {
	dataset string
	offset  int
	json    bool
	jq      string
}

// queryCmd runs a single filter query and prints one page of results.
var queryCmd = &cobra.Command{
	Use:   "query [filter]",
	Short: "Run one filter query against a dataset",
	Long: `Run one filter query and print the page as a table.

The filter is passed to the service unchanged. Omit it, or pass *, to fetch
records without filtering. --json prints the raw response and --jq applies a jq
expression to it.`,
	Example: `  tql query --dataset 3f2a... 'port != 80 AND ip LIKE "10.10.%"'
  tql query -d 3f2a... --jq '.results[].host' '*'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(queryFlags.dataset) == "" {
			return errors.New("--dataset is required")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		limit := a.cfg.DefaultLimit
		filter := ""
		if len(args) == 1 && args[0] != "*" {
			filter = args[0]
		}

		env, err := a.api.Query(cmd.Context(), dataset.Query{
			DatasetID: queryFlags.dataset,
			Filter:    filter,
			Offset:    max(0, queryFlags.offset),
			Limit:     limit,
		})
		if err != nil {
			return err
		}

		out := render.New(cmd.OutOrStdout())
		switch {
		case queryFlags.jq != "":
			results, err := shape.Project(env.Raw(), queryFlags.jq)
			if err != nil {
				return err
			}
			for _, v := range results {
				out.JSON(v)
			}
		case queryFlags.json:
			out.JSON(env.Raw())
		default:
			records := env.Records()
			if len(records) == 0 {
				out.Info("no data")
				out.JSON(env.Raw())
				return nil
			}
			cols := shape.InferColumns(records)
			out.Table(cols, shape.Rows(records, cols, shape.DefaultCellWidth))
		}
		return nil
	},
}

func init() {
	f := queryCmd.Flags()
	f.StringVarP(&queryFlags.dataset, "dataset", "d", "", "Dataset id to query")
	f.IntVar(&queryFlags.offset, "offset", 0, "Number of records to skip")
	f.BoolVar(&queryFlags.json, "json", false, "Print the raw JSON response")
	f.StringVar(&queryFlags.jq, "jq", "", "jq expression applied to the raw response")
	rootCmd.AddCommand(queryCmd)
}

// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tql/cli/internal/auth"
	"tql/cli/internal/config"
	"tql/cli/internal/dataset"
	"tql/cli/internal/logging"
	"tql/cli/internal/xdg"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every command that talks to the dataset service.
var globalFlags struct {
	baseURL  string
	solution string
	token    string
	limit    int
	verbose  bool
	logFile  string
}

func bindGlobalFlags(c *cobra.Command) {
	f := c.PersistentFlags()
	f.StringVar(&globalFlags.baseURL, "base-url", "", "Dataset service base URL (env "+config.EnvBaseURL+")")
	f.StringVar(&globalFlags.solution, "solution", "", "Solution id owning the datasets (env "+config.EnvSolutionID+")")
	f.StringVar(&globalFlags.token, "token", "", "API token (env "+config.EnvToken+", default: OS keychain)")
	f.IntVar(&globalFlags.limit, "limit", 0, "Rows per page (default from config, 50)")
	f.BoolVarP(&globalFlags.verbose, "verbose", "v", false, "Log debug details to the log file")
	f.StringVar(&globalFlags.logFile, "log-file", "", "Log file path (env "+config.EnvLogFile+")")
}

// loadConfig resolves settings with precedence flag > env > config file > defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(os.Getenv)

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = globalFlags.baseURL
	}
	if flags.Changed("solution") {
		cfg.SolutionID = globalFlags.solution
	}
	if flags.Changed("limit") {
		cfg.DefaultLimit = globalFlags.limit
	}
	if flags.Changed("log-file") {
		cfg.LogFile = globalFlags.logFile
	}
	if globalFlags.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// setupLogging routes slog to the rotating log file so the shell output stays clean.
func setupLogging(cfg config.Config) (func() error, error) {
	lc := logging.DefaultConfig()
	lc.Level = cfg.LogLevel
	lc.FilePath = cfg.LogFile
	if lc.FilePath == "" {
		dir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		lc.FilePath = filepath.Join(dir, "tql.log")
	}
	return logging.Setup(lc)
}

// app bundles what a service-backed command needs.
type app struct {
	cfg      config.Config
	api      dataset.API
	closeLog func() error
}

// newApp loads config, starts logging, resolves the token and builds the client.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	a := &app{cfg: cfg, closeLog: closeLog}

	if err := cfg.Validate(); err != nil {
		a.Close()
		return nil, err
	}
	token, src, err := auth.ResolveToken(globalFlags.token)
	if err != nil {
		a.Close()
		return nil, err
	}
	slog.Debug("starting", "command", cmd.Name(), "base_url", cfg.BaseURL, "solution", cfg.SolutionID, "token_source", string(src))

	a.api = newClient(cfg, token)
	return a, nil
}

func newClient(cfg config.Config, token string) dataset.API {
	return dataset.New(dataset.Config{
		BaseURL:    cfg.BaseURL,
		SolutionID: cfg.SolutionID,
		Token:      token,
		AuthScheme: cfg.AuthScheme,
		Timeout:    cfg.Timeout,
		UserAgent:  "tql-cli/" + Version,
	})
}

// Close flushes the log file.
func (a *app) Close() {
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

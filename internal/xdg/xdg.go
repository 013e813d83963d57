// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg provides helpers to resolve XDG Base Directory paths for tql.
// It implements the XDG Base Directory specification for determining appropriate
// locations for configuration files and log files on Unix-like systems.
//
// The package handles fallback to traditional locations when XDG environment
// variables are not set and ensures private permissions on created directories.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "tql"

// ConfigDir returns the XDG config directory for tql.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/tql when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return resolve("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for tql.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/tql when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return resolve("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func resolve(envKey, homeRel string) (string, error) {
	base := os.Getenv(envKey)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}

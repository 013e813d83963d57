// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the tql CLI application.
// It provides an interactive query shell for datasets hosted by the Trickest solution API.
package main

import (
	"tql/cli/cmd"
)

// main is the entry point for the tql CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}

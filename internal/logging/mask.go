// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides structured logging setup and utilities for secure logging
// and error presentation. It includes functions for masking API tokens in log messages
// and formatting errors for user-friendly display while protecting credentials.
//
// The package helps ensure that the dataset service token is not accidentally exposed
// in logs or error messages shown to users.
package logging

import (
	"regexp"
)

var (
	reAuthHeader = regexp.MustCompile(`(?i)\b(token|bearer)(\s+)([A-Za-z0-9._-]{8,})`)
	reToken      = regexp.MustCompile(`(?i)(token=|access_token=)([^\s&;]+)`)
	reAPIKey     = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s&;]+)`)
	rePassword   = regexp.MustCompile(`(?i)(password=)([^\s&;]+)`)
)

// Mask replaces sensitive values in the input string with "***".
func Mask(s string) string {
	out := s
	out = reAuthHeader.ReplaceAllString(out, "$1$2***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	out = rePassword.ReplaceAllString(out, "$1***")
	return out
}

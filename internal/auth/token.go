// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth resolves the credential used to call the dataset service.
// The token is never written to the config file: it comes from a flag, the
// environment, or the OS keychain where 'tql login' stores it.
package auth

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"tql/cli/internal/config"
	"tql/cli/internal/keychain"
)

// ErrNoToken is returned when no token could be found anywhere.
var ErrNoToken = errors.New("no API token configured; run 'tql login' or set " + config.EnvToken)

// TokenStore is the subset of the keychain manager auth depends on.
type TokenStore interface {
	LoadToken() (string, error)
}

// Source names where a resolved token came from.
type Source string

const (
	SourceFlag     Source = "flag"
	SourceEnv      Source = "env"
	SourceKeychain Source = "keychain"
)

// ResolveToken returns the token with precedence flag > TQL_TOKEN > keychain.
func ResolveToken(flagValue string) (string, Source, error) {
	return resolve(flagValue, os.Getenv, func() (TokenStore, error) {
		return keychain.GetManager()
	})
}

func resolve(flagValue string, getenv func(string) string, store func() (TokenStore, error)) (string, Source, error) {
	if t := strings.TrimSpace(flagValue); t != "" {
		return t, SourceFlag, nil
	}
	if t := strings.TrimSpace(getenv(config.EnvToken)); t != "" {
		return t, SourceEnv, nil
	}

	ts, err := store()
	if err != nil {
		slog.Debug("keychain unavailable", "error", err)
		return "", "", ErrNoToken
	}
	t, err := ts.LoadToken()
	if err != nil {
		if !errors.Is(err, keychain.ErrNotFound) {
			slog.Debug("keychain token lookup failed", "error", err)
		}
		return "", "", ErrNoToken
	}
	return t, SourceKeychain, nil
}

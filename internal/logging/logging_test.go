// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestSetupWritesMaskedFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "tql.log")
	cfg := DefaultConfig()
	cfg.Level = "debug"
	cfg.FilePath = path

	cleanup, err := Setup(cfg)
	require.NoError(t, err)

	slog.Debug("request", "auth", "Token 0123456789abcdef")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Token ***")
	assert.NotContains(t, string(data), "0123456789abcdef")
}

func TestPresentError(t *testing.T) {
	assert.Equal(t, "", PresentError("query failed", nil))
	assert.Equal(t, "query failed: bad token=***", PresentError("query failed", errors.New("bad token=secret")))
	assert.Equal(t, "boom", PresentError("", errors.New("boom")))
}

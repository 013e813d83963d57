// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"results": [{"ip": "10.0.0.1", "port": 80}, {"ip": "10.0.0.2", "port": 443}]}`))
	require.NoError(t, err)

	got, err := Project(env.Raw(), ".results[].ip")
	require.NoError(t, err)
	assert.Equal(t, []any{"10.0.0.1", "10.0.0.2"}, got)

	got, err = Project(env.Raw(), ".results | length")
	require.NoError(t, err)
	assert.Equal(t, []any{2}, got)

	got, err = Project(env.Raw(), `.results[] | select(.ip == "10.0.0.2") | .ip`)
	require.NoError(t, err)
	assert.Equal(t, []any{"10.0.0.2"}, got)
}

func TestProjectInvalidExpression(t *testing.T) {
	_, err := Project(map[string]any{}, ".name[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestProjectRuntimeError(t *testing.T) {
	_, err := Project(map[string]any{"a": "text"}, ".a.b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an object")
}

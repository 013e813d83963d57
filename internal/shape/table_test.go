// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shape

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRows(t *testing.T) {
	records := []Record{
		{"ip": "10.0.0.1", "port": json.Number("443"), "title": strings.Repeat("t", 60)},
		{"ip": "10.0.0.2", "title": nil},
	}
	cols := InferColumns(records)
	assert.Equal(t, []string{"ip", "port", "title"}, cols)

	got := Rows(records, cols, DefaultCellWidth)
	assert.Equal(t, [][]string{
		{"10.0.0.1", "443", strings.Repeat("t", 37) + "..."},
		{"10.0.0.2", "", "null"},
	}, got)
}

func TestRowsEmpty(t *testing.T) {
	got := Rows(nil, []string{"ip"}, DefaultCellWidth)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dataset

import (
	"encoding/json"
	"strconv"
	"strings"

	"tql/cli/internal/shape"
)

// shortIDLen is how much of an id stands in for a missing name.
const shortIDLen = 8

// Dataset describes one dataset of the solution. It is built from service
// responses only and never modified.
type Dataset struct {
	ID   string
	Name string
	// Rows is the row count reported by the service, nil when absent.
	Rows *int64
}

// DisplayName returns the name, or a short prefix of the id when the service sent none.
func (d Dataset) DisplayName() string {
	if strings.TrimSpace(d.Name) != "" {
		return d.Name
	}
	if len(d.ID) > shortIDLen {
		return d.ID[:shortIDLen]
	}
	return d.ID
}

// RowsText returns the row count for display, or "" when unknown.
func (d Dataset) RowsText() string {
	if d.Rows == nil {
		return ""
	}
	return strconv.FormatInt(*d.Rows, 10)
}

// FromRecords converts listing records to datasets, skipping records without an id.
func FromRecords(records []shape.Record) []Dataset {
	out := make([]Dataset, 0, len(records))
	for _, r := range records {
		id := scalarString(r["id"])
		if id == "" {
			continue
		}
		d := Dataset{ID: id, Name: scalarString(r["name"])}
		for _, k := range []string{"rows", "row_count", "count"} {
			if n, ok := toInt64(r[k]); ok {
				d.Rows = &n
				break
			}
		}
		out = append(out, d)
	}
	return out
}

// scalarString extracts a string from a string or number value.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
	case float64:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

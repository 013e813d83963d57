// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shape

import "sort"

// MaxColumns caps the number of columns shown in a result table.
const MaxColumns = 10

// PreferredFields are shown first, in this order, whenever a result set contains them.
var PreferredFields = []string{
	"url", "host", "ip", "port", "scheme",
	"status_code", "title", "final_url",
	"webserver", "content_type",
}

// FieldNames returns the sorted union of field names across records.
func FieldNames(records []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// InferColumns picks at most MaxColumns field names to display for records.
// Preferred fields present in the result come first in PreferredFields order,
// followed by the remaining names in lexicographic order. Fields beyond the cap
// are not shown.
func InferColumns(records []Record) []string {
	names := FieldNames(records)
	if len(names) == 0 {
		return []string{}
	}

	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	out := make([]string, 0, MaxColumns)
	used := make(map[string]bool, MaxColumns)
	for _, f := range PreferredFields {
		if len(out) == MaxColumns {
			return out
		}
		if present[f] {
			out = append(out, f)
			used[f] = true
		}
	}
	for _, n := range names {
		if len(out) == MaxColumns {
			break
		}
		if !used[n] {
			out = append(out, n)
		}
	}
	return out
}

// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shape

// Rows formats records into table cells for the given columns.
// A column missing from a record renders as an empty cell.
func Rows(records []Record, columns []string, width int) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			v, ok := r[c]
			if !ok {
				continue
			}
			row[i] = FormatCell(v, width)
		}
		rows = append(rows, row)
	}
	return rows
}

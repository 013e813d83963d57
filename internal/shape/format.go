// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultCellWidth is the widest a table cell may be before truncation.
	DefaultCellWidth = 40
	// DefaultExcerptLen bounds error body excerpts.
	DefaultExcerptLen = 300
	// Ellipsis marks truncated text.
	Ellipsis = "..."
)

var (
	reTag        = regexp.MustCompile(`<[^>]+>`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// FormatCell renders any decoded JSON value as display text no wider than width.
// Objects and arrays are shown as compact JSON, nil as "null".
func FormatCell(v any, width int) string {
	return Truncate(Display(v), width)
}

// Display returns the natural text form of a decoded JSON value.
func Display(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any, []any:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(t); err != nil {
			return fmt.Sprintf("%v", t)
		}
		return strings.TrimRight(buf.String(), "\n")
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Truncate shortens s to at most width characters, replacing the tail with
// Ellipsis. Strings that already fit are returned unchanged.
func Truncate(s string, width int) string {
	if width < 0 {
		width = 0
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= len(Ellipsis) {
		return string(r[:width])
	}
	return string(r[:width-len(Ellipsis)]) + Ellipsis
}

// SanitizeText prepares a response body for display in an error message: markup
// tags are dropped, whitespace runs collapse to one space and the result is
// truncated to maxLen.
func SanitizeText(text string, maxLen int) string {
	text = reTag.ReplaceAllString(text, " ")
	text = reWhitespace.ReplaceAllString(text, " ")
	return Truncate(strings.TrimSpace(text), maxLen)
}

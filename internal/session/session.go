// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the interactive shell state and the loop that turns
// prompt lines into dataset queries.
package session

import "tql/cli/internal/dataset"

// FieldSampleSize is how many records :fields samples to discover field names.
// It does not follow the session limit.
const FieldSampleSize = 10

// Session is the shell's local state. Limit is always positive and Offset is
// never negative.
type Session struct {
	DatasetID   string
	DatasetName string
	Limit       int
	Offset      int
	Raw         bool
}

// New starts a session on ds at offset zero.
func New(ds dataset.Dataset, limit int) Session {
	if limit <= 0 {
		limit = 1
	}
	return Session{DatasetID: ds.ID, DatasetName: ds.DisplayName(), Limit: limit}
}

// Prompt is the prompt shown while this session is active.
func (s Session) Prompt() string {
	return "tql[" + s.DatasetName + "]> "
}

// next advances by one page.
func (s Session) next() Session {
	s.Offset += s.Limit
	return s
}

// prev moves back one page, stopping at zero.
func (s Session) prev() Session {
	s.Offset = max(0, s.Offset-s.Limit)
	return s
}

func (s Session) withDataset(ds dataset.Dataset) Session {
	s.DatasetID = ds.ID
	s.DatasetName = ds.DisplayName()
	s.Offset = 0
	return s
}

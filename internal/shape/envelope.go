// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package shape turns heterogeneous JSON responses from the dataset service into
// a bounded, human-scannable view: it unwraps record lists from response envelopes,
// picks a stable column set and formats individual cells.
package shape

import (
	"bytes"
	"encoding/json"
)

// Record is a single result row: field name to arbitrary JSON value.
type Record = map[string]any

// EnvelopeKeys lists the wrapper keys a response may carry its records under,
// in the order they are checked.
var EnvelopeKeys = []string{"results", "items", "data", "datasets"}

// Envelope is a decoded service response. The service returns either a bare list of
// records or an object wrapping the list under one of EnvelopeKeys; Envelope resolves
// that once so callers never inspect the raw shape themselves.
type Envelope struct {
	raw     any
	key     string
	records []Record
}

// DecodeEnvelope parses a response body. Numbers are kept as json.Number so that
// large identifiers and counts print exactly as the service sent them.
func DecodeEnvelope(data []byte) (Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Envelope{}, err
	}
	return NewEnvelope(raw), nil
}

// NewEnvelope wraps an already decoded JSON value.
func NewEnvelope(raw any) Envelope {
	key, list := unwrap(raw)
	return Envelope{raw: raw, key: key, records: toRecords(list)}
}

// Raw returns the decoded response exactly as received.
func (e Envelope) Raw() any { return e.raw }

// Records returns the records carried by the envelope; never nil.
func (e Envelope) Records() []Record { return e.records }

// Key reports which wrapper key held the records; empty for a bare list or no match.
func (e Envelope) Key() string { return e.key }


// ExtractRecords returns the records of an arbitrary decoded response: the first
// EnvelopeKeys entry holding a list wins, then a bare list, otherwise nothing.
// Elements that are not JSON objects are skipped.
func ExtractRecords(v any) []Record {
	_, list := unwrap(v)
	return toRecords(list)
}

func unwrap(v any) (string, []any) {
	switch t := v.(type) {
	case []any:
		return "", t
	case map[string]any:
		for _, k := range EnvelopeKeys {
			if list, ok := t[k].([]any); ok {
				return k, list
			}
		}
	}
	return "", nil
}

func toRecords(list []any) []Record {
	out := make([]Record, 0, len(list))
	for _, item := range list {
		if r, ok := item.(map[string]any); ok {
			out = append(out, r)
		}
	}
	return out
}

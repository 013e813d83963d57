// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"fmt"
	"io"

	"tql/cli/internal/dataset"
	"tql/cli/internal/shape"
)

type fakeAPI struct {
	datasets []dataset.Dataset
	listErr  error

	// respond builds the envelope for a query; nil answers with an empty list.
	respond  func(q dataset.Query) (any, error)
	queries  []dataset.Query
	listCall int
}

func (f *fakeAPI) ListDatasets(context.Context) ([]dataset.Dataset, error) {
	f.listCall++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.datasets, nil
}

func (f *fakeAPI) Query(_ context.Context, q dataset.Query) (shape.Envelope, error) {
	f.queries = append(f.queries, q)
	if f.respond == nil {
		return shape.NewEnvelope([]any{}), nil
	}
	raw, err := f.respond(q)
	if err != nil {
		return shape.Envelope{}, err
	}
	return shape.NewEnvelope(raw), nil
}

func (f *fakeAPI) lastQuery() dataset.Query {
	return f.queries[len(f.queries)-1]
}

type event struct {
	kind string
	text string
	cols []string
	rows [][]string
	v    any
}

type fakeOutput struct {
	events []event
}

func (o *fakeOutput) Info(msg string)  { o.events = append(o.events, event{kind: "info", text: msg}) }
func (o *fakeOutput) Error(msg string) { o.events = append(o.events, event{kind: "error", text: msg}) }
func (o *fakeOutput) Help(text string) { o.events = append(o.events, event{kind: "help", text: text}) }
func (o *fakeOutput) Rule(label string) {
	o.events = append(o.events, event{kind: "rule", text: label})
}
func (o *fakeOutput) Table(cols []string, rows [][]string) {
	o.events = append(o.events, event{kind: "table", cols: cols, rows: rows})
}
func (o *fakeOutput) JSON(v any) { o.events = append(o.events, event{kind: "json", v: v}) }
func (o *fakeOutput) List(title string, items []string) {
	o.events = append(o.events, event{kind: "list", text: title, cols: items})
}
func (o *fakeOutput) Datasets(ds []dataset.Dataset) {
	o.events = append(o.events, event{kind: "datasets", text: fmt.Sprint(len(ds))})
}

func (o *fakeOutput) kinds() []string {
	out := make([]string, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.kind)
	}
	return out
}

func (o *fakeOutput) last() event {
	if len(o.events) == 0 {
		return event{}
	}
	return o.events[len(o.events)-1]
}

func (o *fakeOutput) reset() { o.events = nil }

// scriptReader replays lines and then reports io.EOF.
type scriptReader struct {
	lines   []string
	prompts []string
}

func (r *scriptReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

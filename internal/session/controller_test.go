// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"testing"

	"tql/cli/internal/dataset"
	terrors "tql/cli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hosts = dataset.Dataset{ID: "11111111-aaaa", Name: "hosts"}

func newTestController(api *fakeAPI, lines ...string) (*Controller, *fakeOutput, *scriptReader) {
	out := &fakeOutput{}
	in := &scriptReader{lines: lines}
	sel := NewSelector(api, out, in)
	return NewController(api, out, sel, New(hosts, 50)), out, in
}

func rowsOf(recs ...map[string]any) []any {
	out := make([]any, 0, len(recs))
	for _, r := range recs {
		out = append(out, r)
	}
	return out
}

func TestLimit(t *testing.T) {
	api := &fakeAPI{}
	c, out, _ := newTestController(api)

	for _, n := range []string{"1", "20", "500"} {
		c.Dispatch(context.Background(), ":limit "+n)
		c.Dispatch(context.Background(), "*")
		assert.Equal(t, n, strconv.Itoa(api.lastQuery().Limit))
	}

	out.reset()
	for _, bad := range []string{":limit abc", ":limit 1.5", ":limit", ":limit 0", ":limit -3"} {
		c.Dispatch(context.Background(), bad)
		assert.Equal(t, "error", out.last().kind, bad)
		assert.Equal(t, 500, c.Session().Limit, bad)
	}
}

func TestLimitTakesFirstWord(t *testing.T) {
	api := &fakeAPI{}
	c, out, _ := newTestController(api)
	c.Dispatch(context.Background(), ":limit 5 extra")
	assert.Equal(t, 5, c.Session().Limit)
	assert.Equal(t, "limit = 5", out.last().text)

	c.Dispatch(context.Background(), ":offset 30 rows")
	assert.Equal(t, 30, c.Session().Offset)

	c.Dispatch(context.Background(), ":limit x 5")
	assert.Equal(t, "error", out.last().kind)
	assert.Equal(t, 5, c.Session().Limit)
}

func TestFailureLogsKindAndStatus(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	api := &fakeAPI{respond: func(dataset.Query) (any, error) {
		return nil, terrors.Service(502, "bad gateway")
	}}
	c, _, _ := newTestController(api)
	c.Dispatch(context.Background(), "*")

	assert.Contains(t, buf.String(), "kind=service_failed")
	assert.Contains(t, buf.String(), "status=502")
}

func TestLimitReportsParseError(t *testing.T) {
	c, out, _ := newTestController(&fakeAPI{})
	c.Dispatch(context.Background(), ":limit ten")
	assert.Contains(t, out.last().text, "must be an integer")
}

func TestOffset(t *testing.T) {
	api := &fakeAPI{}
	c, out, _ := newTestController(api)

	c.Dispatch(context.Background(), ":offset 120")
	assert.Equal(t, 120, c.Session().Offset)
	assert.Equal(t, "offset = 120", out.last().text)

	c.Dispatch(context.Background(), ":offset x")
	assert.Equal(t, "error", out.last().kind)
	assert.Equal(t, 120, c.Session().Offset)

	c.Dispatch(context.Background(), ":offset -5")
	assert.Equal(t, 0, c.Session().Offset)
}

func TestPrevNeverNegative(t *testing.T) {
	tests := []struct{ offset, limit, want int }{
		{10, 50, 0},
		{0, 50, 0},
		{50, 50, 0},
		{120, 50, 70},
		{3, 1, 2},
	}
	for _, tt := range tests {
		c, _, _ := newTestController(&fakeAPI{})
		c.state.Offset = tt.offset
		c.state.Limit = tt.limit
		c.Dispatch(context.Background(), ":prev")
		assert.Equal(t, tt.want, c.Session().Offset)
		assert.GreaterOrEqual(t, c.Session().Offset, 0)
	}
}

func TestNextThenPrevRestoresOffset(t *testing.T) {
	for _, start := range []int{0, 7, 50, 1000} {
		c, _, _ := newTestController(&fakeAPI{})
		c.state.Offset = start
		c.Dispatch(context.Background(), ":next")
		assert.Equal(t, start+50, c.Session().Offset)
		c.Dispatch(context.Background(), ":prev")
		assert.Equal(t, start, c.Session().Offset)
	}
}

func TestQueryStarUsesEmptyFilterAtCurrentPage(t *testing.T) {
	api := &fakeAPI{}
	c, _, _ := newTestController(api)
	c.Dispatch(context.Background(), ":offset 100")
	c.Dispatch(context.Background(), ":limit 25")
	c.Dispatch(context.Background(), "*")

	require.Len(t, api.queries, 1)
	assert.Equal(t, dataset.Query{DatasetID: hosts.ID, Filter: "", Offset: 100, Limit: 25}, api.queries[0])
}

func TestQueryFilterPassedVerbatim(t *testing.T) {
	api := &fakeAPI{}
	c, _, _ := newTestController(api)
	filter := `port != 80 AND ip LIKE "10.10.%"`
	c.Dispatch(context.Background(), filter)
	assert.Equal(t, filter, api.lastQuery().Filter)
}

func TestQueryRendersTable(t *testing.T) {
	api := &fakeAPI{respond: func(dataset.Query) (any, error) {
		return map[string]any{"results": rowsOf(
			map[string]any{"ip": "10.0.0.1", "port": 80.0},
			map[string]any{"ip": "10.0.0.2", "title": "x"},
		)}, nil
	}}
	c, out, _ := newTestController(api)
	c.Dispatch(context.Background(), "*")

	require.Equal(t, []string{"table"}, out.kinds())
	tbl := out.last()
	assert.Equal(t, []string{"ip", "port", "title"}, tbl.cols)
	assert.Equal(t, [][]string{{"10.0.0.1", "80", ""}, {"10.0.0.2", "", "x"}}, tbl.rows)
}

func TestQueryRawModeAppendsEnvelope(t *testing.T) {
	body := []any{map[string]any{"ip": "1.1.1.1"}}
	api := &fakeAPI{respond: func(dataset.Query) (any, error) { return body, nil }}
	c, out, _ := newTestController(api)

	c.Dispatch(context.Background(), ":raw")
	assert.True(t, c.Session().Raw)
	out.reset()

	c.Dispatch(context.Background(), "*")
	assert.Equal(t, []string{"table", "rule", "json"}, out.kinds())
	assert.Equal(t, body, out.last().v)

	c.Dispatch(context.Background(), ":raw")
	assert.False(t, c.Session().Raw)
}

func TestQueryEmptyResultPrintsEnvelope(t *testing.T) {
	body := map[string]any{"results": []any{}, "total": 0.0}
	api := &fakeAPI{respond: func(dataset.Query) (any, error) { return body, nil }}
	c, out, _ := newTestController(api)

	c.Dispatch(context.Background(), "ip = 1")
	assert.Equal(t, []string{"info", "json"}, out.kinds())
	assert.Equal(t, "no data", out.events[0].text)
	assert.Equal(t, body, out.last().v)
}

func TestJSONPrintsEnvelopeRegardlessOfRawMode(t *testing.T) {
	body := map[string]any{"results": rowsOf(map[string]any{"a": 1.0})}
	api := &fakeAPI{respond: func(dataset.Query) (any, error) { return body, nil }}

	for _, raw := range []bool{false, true} {
		c, out, _ := newTestController(api)
		c.state.Raw = raw
		c.Dispatch(context.Background(), ":json *")

		assert.Equal(t, []string{"json"}, out.kinds())
		assert.Equal(t, body, out.last().v)
		assert.Equal(t, "", api.lastQuery().Filter)
	}
}

func TestServiceErrorLeavesStateUnchanged(t *testing.T) {
	api := &fakeAPI{respond: func(dataset.Query) (any, error) {
		return nil, terrors.Service(500, "Server Error (500)")
	}}
	c, out, in := newTestController(api)
	c.Dispatch(context.Background(), ":limit 10")
	c.Dispatch(context.Background(), ":next")
	before := c.Session()

	for _, line := range []string{"*", ":json *", ":fields"} {
		out.reset()
		quit := c.Dispatch(context.Background(), line)
		assert.False(t, quit)
		assert.Equal(t, []string{"error"}, out.kinds(), line)
		assert.Contains(t, out.last().text, "HTTP 500")
		assert.Equal(t, before, c.Session())
	}

	// the loop keeps prompting after a failure
	in.lines = []string{"*", "q"}
	require.NoError(t, c.Run(context.Background(), in))
	assert.Empty(t, in.lines)
}

func TestFields(t *testing.T) {
	api := &fakeAPI{respond: func(dataset.Query) (any, error) {
		return map[string]any{"data": rowsOf(
			map[string]any{"ip": 1.0, "status_code": 200.0},
			map[string]any{"host": "a", "Status": "x"},
		)}, nil
	}}
	c, out, _ := newTestController(api)
	c.state.Offset = 300
	c.state.Limit = 5

	c.Dispatch(context.Background(), ":fields")
	assert.Equal(t, dataset.Query{DatasetID: hosts.ID, Offset: 0, Limit: FieldSampleSize}, api.lastQuery())
	assert.Equal(t, []string{"Status", "host", "ip", "status_code"}, out.last().cols)

	c.Dispatch(context.Background(), ":fields STATUS")
	assert.Equal(t, []string{"Status", "status_code"}, out.last().cols)

	assert.Equal(t, 300, c.Session().Offset)
	assert.Equal(t, 5, c.Session().Limit)
}

func TestFieldsEmptySample(t *testing.T) {
	c, out, _ := newTestController(&fakeAPI{})
	c.Dispatch(context.Background(), ":fields ip")
	assert.Equal(t, []string{"info"}, out.kinds())
	assert.Equal(t, "no data", out.last().text)
}

func TestDatasetSwitch(t *testing.T) {
	other := dataset.Dataset{ID: "22222222-bbbb-cccc"}
	api := &fakeAPI{datasets: []dataset.Dataset{hosts, other}}
	c, out, _ := newTestController(api, "9", "x", "2")
	c.state.Offset = 200

	c.Dispatch(context.Background(), ":dataset")

	s := c.Session()
	assert.Equal(t, other.ID, s.DatasetID)
	assert.Equal(t, "22222222", s.DatasetName)
	assert.Equal(t, 0, s.Offset)
	assert.Equal(t, 50, s.Limit)
	assert.Equal(t, []string{"datasets", "error", "error", "info"}, out.kinds())
	assert.Equal(t, "tql[22222222]> ", s.Prompt())
}

func TestDatasetCancelKeepsState(t *testing.T) {
	api := &fakeAPI{datasets: []dataset.Dataset{hosts, {ID: "other"}}}
	c, _, _ := newTestController(api, "q")
	c.state.Offset = 200
	before := c.Session()

	c.Dispatch(context.Background(), ":dataset")
	assert.Equal(t, before, c.Session())
}

func TestDatasetListingFailureReported(t *testing.T) {
	api := &fakeAPI{listErr: terrors.Service(401, "Invalid token.")}
	c, out, _ := newTestController(api)
	before := c.Session()

	c.Dispatch(context.Background(), ":dataset")
	assert.Equal(t, "error", out.last().kind)
	assert.Contains(t, out.last().text, "HTTP 401")
	assert.Equal(t, before, c.Session())
}

func TestHelpAndQuit(t *testing.T) {
	c, out, _ := newTestController(&fakeAPI{})
	assert.False(t, c.Dispatch(context.Background(), "?"))
	assert.Equal(t, HelpText, out.last().text)
	assert.False(t, c.Dispatch(context.Background(), ""))
	assert.True(t, c.Dispatch(context.Background(), ":quit"))
}

func TestRunStopsOnQuitAndEOF(t *testing.T) {
	api := &fakeAPI{}
	c, _, in := newTestController(api, "*", "quit", "*")
	require.NoError(t, c.Run(context.Background(), in))
	assert.Len(t, api.queries, 1)
	assert.Equal(t, []string{"*"}, in.lines)
	assert.Equal(t, "tql[hosts]> ", in.prompts[0])

	c2, _, in2 := newTestController(api, ":next")
	require.NoError(t, c2.Run(context.Background(), in2))
	assert.Equal(t, 50, c2.Session().Offset)
}

type failingReader struct{}

func (failingReader) ReadLine(string) (string, error) { return "", errors.New("tty gone") }

func TestRunReturnsReaderError(t *testing.T) {
	c, _, _ := newTestController(&fakeAPI{})
	err := c.Run(context.Background(), failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestBusyHookWrapsRemoteCalls(t *testing.T) {
	var started, stopped int
	c, _, _ := newTestController(&fakeAPI{})
	c.Busy = func(string) func() {
		started++
		return func() { stopped++ }
	}
	c.Dispatch(context.Background(), "*")
	c.Dispatch(context.Background(), ":next")
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, stopped)
}

// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"tql/cli/internal/dataset"
	terrors "tql/cli/internal/errors"
	"tql/cli/internal/logging"
	"tql/cli/internal/shape"
)

// Output is where the shell writes everything it shows the user.
type Output interface {
	Info(msg string)
	Error(msg string)
	Help(text string)
	Table(columns []string, rows [][]string)
	JSON(v any)
	List(title string, items []string)
	Datasets(ds []dataset.Dataset)
	Rule(label string)
}

// LineReader supplies one line of input per call. io.EOF means the input is
// exhausted or the user interrupted it.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// BusyFunc shows progress around a remote call and returns a func that ends it.
type BusyFunc func(label string) (stop func())

type handlerFunc func(ctx context.Context, cmd Command) (quit bool)

// Controller runs the read-dispatch loop over one Session.
type Controller struct {
	api      dataset.API
	out      Output
	selector *Selector
	state    Session
	handlers map[Kind]handlerFunc

	// Busy is optional.
	Busy BusyFunc
}

// NewController builds a Controller for an already chosen dataset.
func NewController(api dataset.API, out Output, selector *Selector, s Session) *Controller {
	c := &Controller{api: api, out: out, selector: selector, state: s}
	c.handlers = map[Kind]handlerFunc{
		None:    func(context.Context, Command) bool { return false },
		Quit:    func(context.Context, Command) bool { return true },
		Help:    c.help,
		Limit:   c.limit,
		Offset:  c.offset,
		Next:    c.next,
		Prev:    c.prev,
		Raw:     c.raw,
		Dataset: c.dataset,
		Fields:  c.fields,
		JSON:    c.json,
		Query:   c.query,
	}
	return c
}

// Session returns a copy of the current state.
func (c *Controller) Session() Session { return c.state }

// Run reads and dispatches lines until a quit command or end of input.
func (c *Controller) Run(ctx context.Context, in LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, err := in.ReadLine(c.state.Prompt())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if c.Dispatch(ctx, line) {
			return nil
		}
	}
}

// Dispatch evaluates one prompt line and reports whether the shell should exit.
// Failures are reported through Output and leave the session unchanged.
func (c *Controller) Dispatch(ctx context.Context, line string) bool {
	cmd := Parse(line)
	if cmd.Kind != None {
		slog.Debug("dispatch", "command", cmd.Kind.String(), "dataset", c.state.DatasetID, "offset", c.state.Offset, "limit", c.state.Limit)
	}
	return c.handlers[cmd.Kind](ctx, cmd)
}

func (c *Controller) help(context.Context, Command) bool {
	c.out.Help(HelpText)
	return false
}

func (c *Controller) limit(_ context.Context, cmd Command) bool {
	n, err := parseInt(":limit", cmd.Arg)
	if err == nil && n <= 0 {
		err = terrors.New(terrors.InvalidArgument, ":limit must be a positive integer")
	}
	if err != nil {
		c.out.Error(err.Error())
		return false
	}
	c.state.Limit = n
	c.out.Info(fmt.Sprintf("limit = %d", n))
	return false
}

func (c *Controller) offset(_ context.Context, cmd Command) bool {
	n, err := parseInt(":offset", cmd.Arg)
	if err != nil {
		c.out.Error(err.Error())
		return false
	}
	c.state.Offset = max(0, n)
	c.out.Info(fmt.Sprintf("offset = %d", c.state.Offset))
	return false
}

func (c *Controller) next(context.Context, Command) bool {
	c.state = c.state.next()
	c.out.Info(fmt.Sprintf("offset = %d", c.state.Offset))
	return false
}

func (c *Controller) prev(context.Context, Command) bool {
	c.state = c.state.prev()
	c.out.Info(fmt.Sprintf("offset = %d", c.state.Offset))
	return false
}

func (c *Controller) raw(context.Context, Command) bool {
	c.state.Raw = !c.state.Raw
	c.out.Info(fmt.Sprintf("raw = %t", c.state.Raw))
	return false
}

func (c *Controller) dataset(ctx context.Context, _ Command) bool {
	if c.selector == nil {
		c.out.Error("dataset selection is not available")
		return false
	}
	ds, err := c.selector.Choose(ctx)
	if err != nil {
		c.fail("list datasets", err)
		return false
	}
	if ds == nil {
		c.out.Info("dataset unchanged")
		return false
	}
	c.state = c.state.withDataset(*ds)
	c.out.Info("dataset: " + c.state.DatasetName)
	return false
}

func (c *Controller) fields(ctx context.Context, cmd Command) bool {
	env, err := c.run(ctx, dataset.Query{DatasetID: c.state.DatasetID, Offset: 0, Limit: FieldSampleSize})
	if err != nil {
		c.fail("", err)
		return false
	}
	names := shape.FieldNames(env.Records())
	if len(names) == 0 {
		c.out.Info("no data")
		return false
	}

	if cmd.Arg == "" {
		c.out.List("fields", names)
		return false
	}
	kw := strings.ToLower(cmd.Arg)
	matched := make([]string, 0, len(names))
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), kw) {
			matched = append(matched, n)
		}
	}
	c.out.List(fmt.Sprintf("fields matching %q", cmd.Arg), matched)
	return false
}

func (c *Controller) json(ctx context.Context, cmd Command) bool {
	env, err := c.run(ctx, c.page(cmd.Arg))
	if err != nil {
		c.fail("", err)
		return false
	}
	c.out.JSON(env.Raw())
	return false
}

func (c *Controller) query(ctx context.Context, cmd Command) bool {
	env, err := c.run(ctx, c.page(cmd.Arg))
	if err != nil {
		c.fail("", err)
		return false
	}

	records := env.Records()
	if len(records) == 0 {
		c.out.Info("no data")
		c.out.JSON(env.Raw())
		return false
	}

	cols := shape.InferColumns(records)
	c.out.Table(cols, shape.Rows(records, cols, shape.DefaultCellWidth))

	if c.state.Raw {
		c.out.Rule("RAW")
		c.out.JSON(env.Raw())
	}
	return false
}

// page builds a query for filter at the current offset and limit.
func (c *Controller) page(filter string) dataset.Query {
	return dataset.Query{
		DatasetID: c.state.DatasetID,
		Filter:    filter,
		Offset:    c.state.Offset,
		Limit:     c.state.Limit,
	}
}

func (c *Controller) run(ctx context.Context, q dataset.Query) (shape.Envelope, error) {
	stop := busy(c.Busy, "querying")
	defer stop()
	return c.api.Query(ctx, q)
}

// fail reports a failed remote call inline.
func (c *Controller) fail(prefix string, err error) {
	slog.Debug("command failed", "kind", string(terrors.KindOf(err)), "status", terrors.StatusOf(err), "error", err)
	c.out.Error(logging.PresentError(prefix, err))
}

func busy(fn BusyFunc, label string) func() {
	if fn == nil {
		return func() {}
	}
	return fn(label)
}

func parseInt(name, arg string) (int, error) {
	if arg == "" {
		return 0, terrors.New(terrors.InvalidArgument, name+" needs a number")
	}
	// Only the first word counts: ":limit 20 rows" sets 20.
	arg = strings.Fields(arg)[0]
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, terrors.New(terrors.InvalidArgument, fmt.Sprintf("%s must be an integer, got %q", name, arg))
	}
	return n, nil
}

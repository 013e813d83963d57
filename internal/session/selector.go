// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tql/cli/internal/dataset"
)

// SelectPrompt is shown while waiting for a dataset number.
const SelectPrompt = "dataset # (q to cancel)> "

// Selector lists datasets and asks the user to pick one.
type Selector struct {
	api dataset.API
	out Output
	in  LineReader

	// Busy is optional.
	Busy BusyFunc
}

func NewSelector(api dataset.API, out Output, in LineReader) *Selector {
	return &Selector{api: api, out: out, in: in}
}

// Choose returns the picked dataset, or nil when the user cancels, input ends
// or there is nothing to pick from. A listing failure is returned as an error.
func (s *Selector) Choose(ctx context.Context) (*dataset.Dataset, error) {
	stop := busy(s.Busy, "loading datasets")
	list, err := s.api.ListDatasets(ctx)
	stop()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		s.out.Info("no datasets")
		return nil, nil
	}

	s.out.Datasets(list)
	for {
		line, err := s.in.ReadLine(SelectPrompt)
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		choice := strings.ToLower(strings.TrimSpace(line))
		switch choice {
		case "q", "quit", "exit":
			return nil, nil
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(list) {
			s.out.Error(fmt.Sprintf("invalid choice %q, enter 1-%d", line, len(list)))
			continue
		}
		ds := list[n-1]
		return &ds, nil
	}
}

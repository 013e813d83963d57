// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shape

import (
	"fmt"

	"github.com/itchyny/gojq"
)

// Project runs a jq expression against a raw envelope and collects every value it
// produces. It is a purely local view of data already returned by the service; the
// filter sent to the service is not affected.
func Project(raw any, expression string) ([]any, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	values := make([]any, 0)
	iter := code.Run(raw)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			if halt, ok := err.(*gojq.HaltError); ok && halt.Value() == nil {
				break
			}
			return values, fmt.Errorf("jq: %w", err)
		}
		values = append(values, v)
	}
	return values, nil
}

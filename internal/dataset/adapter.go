// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dataset provides the client for the remote dataset service.
// It defines the API contract the shell depends on (listing datasets and querying one)
// and an HTTP implementation over the service's two read-only endpoints.
package dataset

import (
	"context"

	"tql/cli/internal/shape"
)

// API defines dataset service operations the CLI depends on.
// Implementations may call the real HTTP endpoints or provide fakes for tests.
type API interface {
	// ListDatasets returns the datasets of the configured solution; never nil on success.
	ListDatasets(ctx context.Context) ([]Dataset, error)
	// Query runs a filter against one dataset and returns the response envelope.
	// An empty filter returns all rows subject to offset and limit.
	Query(ctx context.Context, q Query) (shape.Envelope, error)
}

// Query describes a single page request against a dataset.
type Query struct {
	DatasetID string
	Filter    string
	Offset    int
	Limit     int
}

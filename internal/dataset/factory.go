// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dataset

import (
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoints are the public solution API paths; {solution} is replaced
// with the configured solution id.
var DefaultEndpoints = Endpoints{
	Datasets: "/solutions/v1/public/solution/{solution}/dataset",
	View:     "/solutions/v1/public/solution/{solution}/view",
}

// Endpoints contains REST API path templates.
type Endpoints struct {
	Datasets string
	View     string
}

func (e Endpoints) expand(path, solution string) string {
	return strings.ReplaceAll(path, "{solution}", solution)
}

// Config is the fixed configuration of a client. It is copied at construction
// and never changes afterwards.
type Config struct {
	BaseURL    string
	SolutionID string
	Token      string
	// AuthScheme prefixes the token in the Authorization header, e.g. "Token" or "Bearer".
	AuthScheme string
	Timeout    time.Duration
	Endpoints  Endpoints
	UserAgent  string
}

// New creates a dataset API implementation over HTTP.
func New(cfg Config) API {
	return newHTTP(cfg, nil)
}

// NewWithClient is like New but uses the given http.Client; its Timeout is
// replaced by cfg.Timeout when that is set.
func NewWithClient(cfg Config, client *http.Client) API {
	return newHTTP(cfg, client)
}

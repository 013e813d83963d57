// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	terrors "tql/cli/internal/errors"
	"tql/cli/internal/httperrors"
	"tql/cli/internal/shape"
)

// defaultTimeout bounds every request when the config does not set one.
const defaultTimeout = 60 * time.Second

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 64 << 20

// HTTP implements API over the dataset service REST endpoints.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "https://api.trickest.io")
	baseURL string
	// cfg is the immutable client configuration
	cfg Config
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// newHTTP creates a new HTTP client from cfg. A nil client gets a fresh one;
// a non-nil client is copied so the caller's value is left untouched.
func newHTTP(cfg Config, client *http.Client) *HTTP {
	if cfg.Endpoints == (Endpoints{}) {
		cfg.Endpoints = DefaultEndpoints
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Token"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "tql-cli"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &http.Client{}
	if client != nil {
		copied := *client
		c = &copied
	}
	c.Timeout = timeout

	return &HTTP{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		cfg:     cfg,
		client:  c,
	}
}

// ListDatasets calls GET {datasets} and returns the solution's datasets.
func (h *HTTP) ListDatasets(ctx context.Context) ([]Dataset, error) {
	params := url.Values{}
	params.Set("solution", h.cfg.SolutionID)

	env, err := h.get(ctx, h.cfg.Endpoints.Datasets, params)
	if err != nil {
		return nil, err
	}

	// A bare list and a wrapped list both resolve through the envelope; anything
	// else yields no datasets rather than an error.
	return FromRecords(env.Records()), nil
}

// Query calls GET {view} with dataset_id, q, offset and limit.
func (h *HTTP) Query(ctx context.Context, q Query) (shape.Envelope, error) {
	params := url.Values{}
	params.Set("dataset_id", q.DatasetID)
	params.Set("q", q.Filter)
	params.Set("offset", strconv.Itoa(q.Offset))
	params.Set("limit", strconv.Itoa(q.Limit))

	return h.get(ctx, h.cfg.Endpoints.View, params)
}

// get performs one GET request and decodes the JSON envelope. It never retries.
func (h *HTTP) get(ctx context.Context, pathTemplate string, params url.Values) (shape.Envelope, error) {
	endpoint := h.baseURL + h.cfg.Endpoints.expand(pathTemplate, url.PathEscape(h.cfg.SolutionID))
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return shape.Envelope{}, terrors.Wrap(terrors.TransportFailed, "build request", err)
	}
	h.setStandardHeaders(req)

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		slog.Debug("dataset request failed", "method", req.Method, "url", endpoint, "duration", time.Since(start), "error", err)
		host := httperrors.ExtractHostFromURL(h.baseURL)
		return shape.Envelope{}, terrors.Wrap(terrors.TransportFailed, httperrors.Describe(err, host), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	slog.Debug("dataset request", "method", req.Method, "url", endpoint, "status", resp.StatusCode, "bytes", len(body), "duration", time.Since(start))
	if err != nil {
		return shape.Envelope{}, terrors.Wrap(terrors.TransportFailed, "read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return shape.Envelope{}, terrors.Service(resp.StatusCode, shape.SanitizeText(string(body), shape.DefaultExcerptLen))
	}

	env, err := shape.DecodeEnvelope(body)
	if err != nil {
		return shape.Envelope{}, terrors.Wrap(terrors.DecodeFailed,
			fmt.Sprintf("invalid JSON from service: %s", shape.SanitizeText(string(body), 80)), err)
	}
	slog.Debug("dataset response", "envelope_key", env.Key(), "records", len(env.Records()))
	return env, nil
}

// setStandardHeaders applies the credential and content negotiation headers.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	if h.cfg.Token != "" {
		req.Header.Set("Authorization", h.cfg.AuthScheme+" "+h.cfg.Token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.cfg.UserAgent)
}

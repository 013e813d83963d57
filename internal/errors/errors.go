// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so a failed remote call or a mistyped command argument
// can be reported inline without aborting the shell.
//
// The package supports wrapping underlying errors while maintaining error kind information,
// making it easier to handle different types of failures appropriately.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// ServiceFailed indicates the dataset service answered with a non-2xx status.
	ServiceFailed Kind = "service_failed"
	// TransportFailed indicates the request never produced a response (network, timeout, TLS).
	TransportFailed Kind = "transport_failed"
	// DecodeFailed indicates the response body was not valid JSON.
	DecodeFailed Kind = "decode_failed"
	// InvalidArgument indicates a command argument could not be parsed.
	InvalidArgument Kind = "invalid_argument"
)

// E wraps an error with kind and human-friendly message.
// Status carries the HTTP status code for ServiceFailed errors and is zero otherwise.
type E struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *E) Error() string {
	if e.Kind == ServiceFailed {
		return fmt.Sprintf("HTTP %d | %s", e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Service builds a ServiceFailed error for a non-2xx response.
func Service(status int, excerpt string) *E {
	return &E{Kind: ServiceFailed, Status: status, Message: excerpt}
}

// KindOf returns the kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *E
	if stderrors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *E
		want string
	}{
		{
			name: "service error shows status and excerpt",
			err:  Service(500, "internal error"),
			want: "HTTP 500 | internal error",
		},
		{
			name: "wrapped transport error",
			err:  Wrap(TransportFailed, "request timed out", fmt.Errorf("context deadline exceeded")),
			want: "request timed out: context deadline exceeded",
		},
		{
			name: "plain invalid argument",
			err:  New(InvalidArgument, "limit must be a positive integer"),
			want: "limit must be a positive integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindAndStatusThroughWrapping(t *testing.T) {
	err := fmt.Errorf("list datasets: %w", Service(403, "forbidden"))

	if got := KindOf(err); got != ServiceFailed {
		t.Errorf("KindOf() = %q, want %q", got, ServiceFailed)
	}
	if got := StatusOf(err); got != 403 {
		t.Errorf("StatusOf() = %d, want 403", got)
	}
	if got := KindOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}

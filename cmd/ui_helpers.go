// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io"
	"os"
	"os/signal"

	"atomicgo.dev/cursor"

	"tql/cli/internal/render"
	"tql/cli/internal/session"
)

// busyFunc returns a spinner hook for remote calls, or nil when output is not
// interactive so piped output stays free of control sequences.
func busyFunc(interactive bool, w io.Writer) session.BusyFunc {
	if !interactive {
		return nil
	}
	return func(label string) func() {
		return render.StartSpinner(w, label+"...")
	}
}

// restoreCursorOnInterrupt makes sure an interrupt during a remote call does not
// leave the terminal with a hidden cursor. The returned func stops watching.
func restoreCursorOnInterrupt() func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	done := make(chan struct{})
	go func() {
		select {
		case <-ch:
			cursor.Show()
			os.Exit(130)
		case <-done:
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}

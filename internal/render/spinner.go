// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package render

import (
	"fmt"
	"io"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/mattn/go-runewidth"
)

// SpinnerFrames are the animation frames used by StartSpinner.
var SpinnerFrames = []string{"|", "/", "-", "\\"}

const spinnerInterval = 100 * time.Millisecond

// StartSpinner shows an inline spinner followed by text on the current line of w
// until the returned func is called. Stopping clears the line and restores the cursor.
func StartSpinner(w io.Writer, text string) func() {
	return startInlineSpinner(w, text, SpinnerFrames, spinnerInterval)
}

func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	cursor.Hide()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
			select {
			case <-stop:
				fmt.Fprintf(w, "\r%*s\r", runewidth.StringWidth(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			cursor.Show()
		})
	}
}

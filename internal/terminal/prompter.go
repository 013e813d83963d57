// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal provides line input for the shell: an editing line reader
// when stdin is a terminal and a plain line scanner otherwise.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads one line per prompt. It returns io.EOF when input ends or
// the user presses Ctrl-C or Ctrl-D.
type Prompter struct {
	out io.Writer

	fd      int
	term    *term.Terminal
	scanner *bufio.Scanner
}

// NewPrompter reads from in and echoes prompts to out. When in is a terminal
// the line editor is used, with Tab completing the given words.
func NewPrompter(in io.Reader, out io.Writer, completions []string) *Prompter {
	p := &Prompter{out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.term = term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{in, out}, "")
		p.term.AutoCompleteCallback = completer(completions)
		return p
	}
	p.scanner = bufio.NewScanner(in)
	p.scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return p
}

// Interactive reports whether input comes from a terminal.
func (p *Prompter) Interactive() bool { return p.term != nil }

// ReadLine shows prompt and returns the trimmed line the user entered.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	if p.term == nil {
		fmt.Fprint(p.out, prompt)
		return p.scan()
	}

	state, err := term.MakeRaw(p.fd)
	if err != nil {
		return "", fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(p.fd, state) }()

	p.term.SetPrompt(prompt)
	line, err := p.term.ReadLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret shows prompt and reads a line without echoing it.
func (p *Prompter) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if p.term == nil {
		return p.scan()
	}
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (p *Prompter) scan() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// completer completes the word under the cursor when Tab is pressed and the
// prefix matches exactly one of words.
func completer(words []string) func(line string, pos int, key rune) (string, int, bool) {
	return func(line string, pos int, key rune) (string, int, bool) {
		if key != '\t' || pos != len(line) || strings.ContainsAny(line, " \t") {
			return "", 0, false
		}
		var match string
		for _, w := range words {
			if strings.HasPrefix(w, line) {
				if match != "" {
					return "", 0, false
				}
				match = w
			}
		}
		if match == "" || match == line {
			return "", 0, false
		}
		return match + " ", len(match) + 1, true
	}
}

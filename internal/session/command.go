// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import "strings"

// Kind identifies what a line typed at the prompt asks for.
type Kind int

const (
	// None is an empty line; the shell just prompts again.
	None Kind = iota
	Quit
	Help
	Limit
	Offset
	Next
	Prev
	Raw
	Dataset
	Fields
	JSON
	// Query is any line that matches no command; the line is the filter.
	Query
)

var kindNames = map[Kind]string{
	None:    "none",
	Quit:    "quit",
	Help:    "help",
	Limit:   "limit",
	Offset:  "offset",
	Next:    "next",
	Prev:    "prev",
	Raw:     "raw",
	Dataset: "dataset",
	Fields:  "fields",
	JSON:    "json",
	Query:   "query",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Command is one parsed prompt line. Arg holds the command argument, or the
// filter expression for Query and JSON.
type Command struct {
	Kind Kind
	Arg  string
}

var (
	quitTokens = map[string]bool{"q": true, "quit": true, "exit": true, ":q": true, ":quit": true, ":exit": true}
	helpTokens = map[string]bool{"help": true, ":help": true, "?": true}
)

// Commands lists the colon commands the shell understands, for completion.
var Commands = []string{":limit", ":offset", ":next", ":prev", ":raw", ":dataset", ":fields", ":json", ":help", ":quit"}

// Parse turns a raw input line into a Command. Rules are checked in a fixed
// order and the first match wins.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)

	switch {
	case line == "":
		return Command{Kind: None}
	case quitTokens[lower]:
		return Command{Kind: Quit}
	case helpTokens[lower]:
		return Command{Kind: Help}
	}

	if arg, ok := withArg(line, ":limit"); ok {
		return Command{Kind: Limit, Arg: arg}
	}
	if arg, ok := withArg(line, ":offset"); ok {
		return Command{Kind: Offset, Arg: arg}
	}

	switch line {
	case ":next":
		return Command{Kind: Next}
	case ":prev":
		return Command{Kind: Prev}
	case ":raw":
		return Command{Kind: Raw}
	case ":dataset":
		return Command{Kind: Dataset}
	}

	if arg, ok := withArg(line, ":fields"); ok {
		return Command{Kind: Fields, Arg: arg}
	}
	if arg, ok := withArg(line, ":json"); ok {
		return Command{Kind: JSON, Arg: normalizeFilter(arg)}
	}

	q := normalizeFilter(line)
	q = strings.TrimPrefix(q, ": ")
	return Command{Kind: Query, Arg: q}
}

// withArg matches name exactly or name followed by whitespace and an argument.
func withArg(line, name string) (string, bool) {
	if line == name {
		return "", true
	}
	rest, ok := strings.CutPrefix(line, name)
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// normalizeFilter maps the match-everything token to the empty filter.
func normalizeFilter(q string) string {
	if q == "*" {
		return ""
	}
	return q
}

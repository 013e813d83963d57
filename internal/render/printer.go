// Copyright (c) 2025 tql authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package render draws shell output with pterm: result tables, raw JSON,
// status lines and the help panel.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"tql/cli/internal/dataset"
)

// Printer writes all shell output to a single writer.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, pterm.Info.Sprint(msg))
}

func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, pterm.Error.Sprint(msg))
}

// Help prints text inside a titled box.
func (p *Printer) Help(text string) {
	title := pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Help")
	fmt.Fprintln(p.w, pterm.DefaultBox.WithTitle(title).WithPadding(1).Sprint(text))
}

// Table prints a boxed table with a leading 1-based row number column.
func (p *Printer) Table(columns []string, rows [][]string) {
	header := append([]string{"#"}, columns...)
	data := pterm.TableData{header}
	for i, r := range rows {
		data = append(data, append([]string{strconv.Itoa(i + 1)}, r...))
	}
	p.table(data)
}

// Datasets prints the numbered dataset listing used by the selector.
func (p *Printer) Datasets(ds []dataset.Dataset) {
	data := pterm.TableData{{"#", "id", "name", "rows"}}
	for i, d := range ds {
		data = append(data, []string{strconv.Itoa(i + 1), d.ID, d.Name, d.RowsText()})
	}
	fmt.Fprintln(p.w, pterm.NewStyle(pterm.FgLightCyan, pterm.Bold).Sprint("Datasets"))
	p.table(data)
}

func (p *Printer) table(data pterm.TableData) {
	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		p.Error(fmt.Sprintf("render table: %v", err))
		return
	}
	fmt.Fprintln(p.w, out)
}

// JSON prints v indented. HTML characters and non-ASCII text are kept as is.
func (p *Printer) JSON(v any) {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		p.Error(fmt.Sprintf("render json: %v", err))
	}
}

// List prints a title followed by one bullet per item.
func (p *Printer) List(title string, items []string) {
	fmt.Fprintln(p.w, pterm.Info.Sprint(title+":"))
	if len(items) == 0 {
		fmt.Fprintln(p.w, "  (none)")
		return
	}
	bullets := make([]pterm.BulletListItem, 0, len(items))
	for _, s := range items {
		bullets = append(bullets, pterm.BulletListItem{Level: 0, Text: s})
	}
	out, err := pterm.DefaultBulletList.WithItems(bullets).Srender()
	if err != nil {
		p.Error(fmt.Sprintf("render list: %v", err))
		return
	}
	fmt.Fprint(p.w, out)
}

// Rule prints a plain separator line.
func (p *Printer) Rule(label string) {
	fmt.Fprintf(p.w, "--- %s ---\n", label)
}

// Banner prints the startup box.
func (p *Printer) Banner(version, baseURL string) {
	title := pterm.NewStyle(pterm.FgMagenta, pterm.Bold).Sprint("tql " + version)
	body := fmt.Sprintf("Interactive query shell for Trickest datasets\n%s", baseURL)
	fmt.Fprintln(p.w, pterm.DefaultBox.WithTitle(title).WithPadding(1).Sprint(body))
}

// Active announces the dataset a session starts on.
func (p *Printer) Active(name string) {
	fmt.Fprintln(p.w, pterm.Success.Sprint("dataset: "+name))
}

// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output renders command results as tables or JSON on the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Format selects how a command renders its result.
type Format string

const (
	OutputTable Format = "table"
	OutputJSON  Format = "json"
)

// OutputOptions carries the per-command output flag.
type OutputOptions struct {
	format       string
	defaultValue Format
	resolved     Format
}

// AddOutputFlags registers the --output flag with the given default.
func (o *OutputOptions) AddOutputFlags(cmd *cobra.Command, def Format) {
	o.defaultValue = def
	cmd.Flags().StringVarP(&o.format, "output", "o", string(def), "Output format (table, json)")
}

// Resolve validates the chosen format.
func (o *OutputOptions) Resolve() error {
	switch Format(o.format) {
	case OutputTable, OutputJSON:
		o.resolved = Format(o.format)
	case "":
		o.resolved = o.defaultValue
	default:
		return fmt.Errorf("unknown output format %q (choose table or json)", o.format)
	}
	return nil
}

// Is reports whether the resolved format matches.
func (o *OutputOptions) Is(f Format) bool {
	return o.resolved == f
}

// JSON writes v to stdout as indented JSON.
func JSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Table accumulates rows and renders them aligned, with a colored header.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one row. Values beyond the header count are dropped.
func (t *Table) AddRow(values ...string) {
	if len(values) > len(t.headers) {
		values = values[:len(t.headers)]
	}
	t.rows = append(t.rows, values)
}

// Render writes the table to stdout.
func (t *Table) Render() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	header := color.New(color.Bold)
	for i, h := range t.headers {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, header.Sprint(h))
	}
	fmt.Fprintln(w)
	for _, row := range t.rows {
		for i, v := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, v)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

// Success prints a green status line.
func Success(format string, args ...any) {
	color.New(color.FgGreen).Printf(format+"\n", args...)
}

// Warn prints a yellow status line to stderr.
func Warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(os.Stderr, format+"\n", args...)
}

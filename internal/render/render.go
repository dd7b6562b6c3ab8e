// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     render
// Description: Output renderers for tokenized arguments and history entries
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/msto63/cmdline/foundation/cmdline"
	mdwerror "github.com/msto63/cmdline/foundation/core/error"
	"github.com/msto63/cmdline/internal/history/store"
	"github.com/msto63/cmdline/internal/tui"
)

// Format names an output format
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatPlain Format = "plain"
)

// Renderer writes arguments and history entries in one output format
type Renderer interface {
	Arguments(w io.Writer, args cmdline.Arguments) error
	Entries(w io.Writer, entries []*store.Entry) error
	Entry(w io.Writer, entry *store.Entry) error
}

// ParseFormat parses a format name (case-insensitive)
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatTable, FormatJSON, FormatYAML, FormatPlain:
		return f, nil
	}
	return "", mdwerror.Newf("unknown output format %q", name).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("render.ParseFormat").
		WithDetail("format", name)
}

// New returns the renderer for the named format
func New(name string) (Renderer, error) {
	format, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return jsonRenderer{}, nil
	case FormatYAML:
		return yamlRenderer{}, nil
	case FormatPlain:
		return plainRenderer{}, nil
	default:
		return tableRenderer{}, nil
	}
}

// ============================================================================
// JSON
// ============================================================================

type jsonRenderer struct{}

func (jsonRenderer) Arguments(w io.Writer, args cmdline.Arguments) error {
	if args == nil {
		args = cmdline.Arguments{}
	}
	return writeJSON(w, args)
}

func (jsonRenderer) Entries(w io.Writer, entries []*store.Entry) error {
	if entries == nil {
		entries = []*store.Entry{}
	}
	return writeJSON(w, entries)
}

func (jsonRenderer) Entry(w io.Writer, entry *store.Entry) error {
	return writeJSON(w, entry)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return mdwerror.Wrap(err, "failed to write JSON").WithOperation("render.JSON")
	}
	return nil
}

// ============================================================================
// YAML
// ============================================================================

type yamlRenderer struct{}

func (yamlRenderer) Arguments(w io.Writer, args cmdline.Arguments) error {
	if args == nil {
		args = cmdline.Arguments{}
	}
	return writeYAML(w, args)
}

func (yamlRenderer) Entries(w io.Writer, entries []*store.Entry) error {
	if entries == nil {
		entries = []*store.Entry{}
	}
	return writeYAML(w, entries)
}

func (yamlRenderer) Entry(w io.Writer, entry *store.Entry) error {
	return writeYAML(w, entry)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return mdwerror.Wrap(err, "failed to write YAML").WithOperation("render.YAML")
	}
	return enc.Close()
}

// ============================================================================
// Plain
// ============================================================================

// plainRenderer writes one record per line in command line form
type plainRenderer struct{}

func (plainRenderer) Arguments(w io.Writer, args cmdline.Arguments) error {
	for _, a := range args {
		if _, err := fmt.Fprintln(w, a.String()); err != nil {
			return err
		}
	}
	return nil
}

func (plainRenderer) Entries(w io.Writer, entries []*store.Entry) error {
	for _, e := range entries {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.ID, e.Timestamp.Local().Format(time.RFC3339), e.Source, e.CommandLine)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r plainRenderer) Entry(w io.Writer, entry *store.Entry) error {
	if _, err := fmt.Fprintln(w, entry.CommandLine); err != nil {
		return err
	}
	return r.Arguments(w, entry.Arguments)
}

// ============================================================================
// Table
// ============================================================================

type tableRenderer struct{}

func (tableRenderer) Arguments(w io.Writer, args cmdline.Arguments) error {
	_, err := fmt.Fprintln(w, ArgumentTable(args))
	return err
}

func (tableRenderer) Entries(w io.Writer, entries []*store.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, tui.SubtitleStyle.Render("(keine Einträge)"))
		return err
	}

	t := newTable("ID", "ZEIT", "QUELLE", "ARGS", "KOMMANDOZEILE")
	for _, e := range entries {
		t.Row(
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			string(e.Source),
			fmt.Sprintf("%d", len(e.Arguments)),
			e.CommandLine,
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func (tableRenderer) Entry(w io.Writer, entry *store.Entry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", tui.TitleStyle.Render("ID:"), entry.ID)
	fmt.Fprintf(&b, "%s %s\n", tui.TitleStyle.Render("Zeit:"), entry.Timestamp.Local().Format(time.RFC3339))
	fmt.Fprintf(&b, "%s %s\n", tui.TitleStyle.Render("Quelle:"), entry.Source)
	fmt.Fprintf(&b, "%s %s\n", tui.TitleStyle.Render("Kommandozeile:"), entry.CommandLine)
	fmt.Fprintf(&b, "%s  %s\n",
		tui.RenderToggle("erweitert", entry.Options.ExtendedArguments),
		tui.RenderToggle("erstes verwerfen", entry.Options.DiscardFirstToken))
	b.WriteString(ArgumentTable(entry.Arguments))

	_, err := fmt.Fprintln(w, b.String())
	return err
}

// ArgumentTable renders arguments as a bordered table
func ArgumentTable(args cmdline.Arguments) string {
	if len(args) == 0 {
		return tui.SubtitleStyle.Render("(keine Argumente)")
	}

	t := newTable("#", "TYP", "WERT", "ERWEITERT")
	for i, a := range args {
		kind := tui.ValueStyle.Render("Argument")
		if a.IsFlag() {
			kind = tui.FlagStyle.Render("Flag")
		}

		ext := "-"
		if v, ok := a.Extended(); ok {
			ext = tui.ExtendedStyle.Render(fmt.Sprintf("%q", v))
		}

		t.Row(fmt.Sprintf("%d", i+1), kind, fmt.Sprintf("%q", a.Value()), ext)
	}
	return t.Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tui.TableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tui.TableHeaderStyle
			}
			return tui.TableCellStyle
		})
}

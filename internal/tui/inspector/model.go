// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     inspector
// Description: Bubbletea model that tokenizes the input line on every keystroke
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package inspector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/cmdline/foundation/cmdline"
	mdwerror "github.com/msto63/cmdline/foundation/core/error"
	"github.com/msto63/cmdline/internal/history/store"
	"github.com/msto63/cmdline/internal/render"
	"github.com/msto63/cmdline/internal/tui"
	"github.com/msto63/cmdline/pkg/core/version"
)

const (
	headerHeight = 6 // title, input box, toggles
	footerHeight = 3 // status bar, help
	frameHeight  = 2 // border around the argument table
)

// Config holds inspector configuration
type Config struct {
	Options  cmdline.Options
	Recorder *store.Recorder
	Initial  string
}

// Model is the Bubbletea model for the inspector
type Model struct {
	width  int
	height int

	input    textinput.Model
	viewport viewport.Model

	opts     cmdline.Options
	args     cmdline.Arguments
	recorder *store.Recorder

	status string
	err    error
}

// New creates an inspector model
func New(cfg Config) Model {
	input := textinput.New()
	input.Placeholder = `copy -mode:read "C:\Program Files" /q`
	input.Prompt = "> "
	input.CharLimit = 0
	input.SetValue(cfg.Initial)
	input.Focus()

	m := Model{
		width:    80,
		height:   24,
		input:    input,
		viewport: viewport.New(76, 24-headerHeight-footerHeight-frameHeight),
		opts:     cfg.Options,
		recorder: cfg.Recorder,
	}
	m.reparse()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+e":
			m.opts.ExtendedArguments = !m.opts.ExtendedArguments
			m.reparse()
			return m, nil

		case "ctrl+f":
			m.opts.DiscardFirstToken = !m.opts.DiscardFirstToken
			m.reparse()
			return m, nil

		case "enter":
			return m, m.record()

		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		if m.input.Value() != before {
			m.status = ""
			m.err = nil
			m.reparse()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight-frameHeight, 1)
		m.reparse()

	case recordedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
		} else {
			m.err = nil
			m.status = "Gespeichert: " + msg.entry.ID
		}

	default:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reparse tokenizes the current input and refreshes the viewport
func (m *Model) reparse() {
	m.args = cmdline.Parse(m.input.Value(), m.opts)
	m.viewport.SetContent(render.ArgumentTable(m.args))
}

// record writes the current line to history
func (m Model) record() tea.Cmd {
	if m.recorder == nil {
		return func() tea.Msg {
			return recordedMsg{err: mdwerror.New("Verlauf ist deaktiviert").
				WithCode(mdwerror.CodeServiceUnavailable).
				WithOperation("inspector.Record")}
		}
	}

	line, opts, args := m.input.Value(), m.opts, m.args
	recorder := m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entry, err := recorder.Record(ctx, store.SourceTUI, line, opts, args)
		return recordedMsg{entry: entry, err: err}
	}
}

// Arguments returns the arguments of the current input
func (m Model) Arguments() cmdline.Arguments {
	return m.args
}

// Options returns the current tokenizer options
func (m Model) Options() cmdline.Options {
	return m.opts
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(tui.RenderTitle(fmt.Sprintf("cmdline Inspector v%s", version.Inspector)))
	b.WriteString("\n")
	b.WriteString(tui.InputStyle.Width(max(m.width-4, 20)).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderToggles())
	b.WriteString("\n\n")
	// Width excludes the border but includes the padding
	b.WriteString(tui.BoxStyle.Width(m.viewport.Width + 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(tui.RenderHelp("ctrl+e: erweitert • ctrl+f: erstes verwerfen • enter: speichern • esc: beenden"))

	return b.String()
}

func (m Model) renderToggles() string {
	return tui.RenderToggle("Erweiterte Argumente", m.opts.ExtendedArguments) + "   " +
		tui.RenderToggle("Erstes Token verwerfen", m.opts.DiscardFirstToken)
}

func (m Model) renderStatusBar() string {
	flags := len(m.args.Flags())
	text := fmt.Sprintf("%d Argumente, davon %d Flags", len(m.args), flags)
	if m.status != "" {
		text += " | " + m.status
	}
	bar := tui.StatusBarStyle.Render(text)
	if m.err != nil {
		bar += " " + tui.RenderError(m.err.Error())
	}
	return bar
}

// Run starts the inspector TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

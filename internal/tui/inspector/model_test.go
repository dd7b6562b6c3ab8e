// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     inspector
// Description: Tests for the inspector model
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package inspector

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/cmdline/internal/history/store"
)

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(m Model, key tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(Model), cmd
}

func TestModel_ParsesOnKeystroke(t *testing.T) {
	m := New(Config{})
	if len(m.Arguments()) != 0 {
		t.Fatalf("initial arguments = %s, want none", m.Arguments())
	}

	m = typeText(m, `copy "a b" -q`)

	want := []string{"copy", "a b", "q"}
	got := m.Arguments().Values()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Values() = %v, want %v", got, want)
	}
	if !m.Arguments().HasFlagArgument("q", false) {
		t.Error("q should be a flag")
	}
}

func TestModel_Toggles(t *testing.T) {
	m := New(Config{Initial: "prog -mode:read"})

	if len(m.Arguments()) != 3 {
		t.Fatalf("extended off: got %s, want 3 records", m.Arguments())
	}

	m, _ = press(m, tea.KeyCtrlE)
	if !m.Options().ExtendedArguments {
		t.Fatal("ctrl+e should enable extended arguments")
	}
	if len(m.Arguments()) != 2 {
		t.Fatalf("extended on: got %s, want 2 records", m.Arguments())
	}
	if ext, ok := m.Arguments()[1].Extended(); !ok || ext != "read" {
		t.Errorf("Extended() = (%q, %v), want (read, true)", ext, ok)
	}

	m, _ = press(m, tea.KeyCtrlF)
	if !m.Options().DiscardFirstToken {
		t.Fatal("ctrl+f should enable discard first token")
	}
	if len(m.Arguments()) != 1 || m.Arguments()[0].Value() != "mode" {
		t.Errorf("discard on: got %s, want [-mode:read]", m.Arguments())
	}

	m, _ = press(m, tea.KeyCtrlE)
	if m.Options().ExtendedArguments {
		t.Error("second ctrl+e should disable extended arguments")
	}
}

func TestModel_RecordOnEnter(t *testing.T) {
	history := store.NewMemoryHistoryStore()
	m := New(Config{Recorder: store.NewRecorder(history, 10), Initial: "dir /s"})

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("enter should return a record command")
	}

	next, _ := m.Update(cmd())
	m = next.(Model)

	entries, err := history.List(context.Background(), store.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 || entries[0].CommandLine != "dir /s" || entries[0].Source != store.SourceTUI {
		t.Fatalf("recorded entries = %+v", entries)
	}
	if !strings.Contains(m.View(), "Gespeichert") {
		t.Error("status bar should confirm the record")
	}
}

func TestModel_RecordWithoutHistory(t *testing.T) {
	m := New(Config{Initial: "x"})

	m, cmd := press(m, tea.KeyEnter)
	next, _ := m.Update(cmd())
	m = next.(Model)

	if m.err == nil {
		t.Error("recording without history should report an error")
	}
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := press(New(Config{}), key)
		if cmd == nil {
			t.Fatalf("%v: expected quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: expected tea.QuitMsg", key)
		}
	}
}

func TestModel_ViewAndResize(t *testing.T) {
	m := New(Config{Initial: `-a "b c"`})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"Inspector", "Erweiterte Argumente", "2 Argumente, davon 1 Flags", `"b c"`} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_ArgumentFrame(t *testing.T) {
	tests := []struct {
		width  int
		height int
	}{
		{80, 24},
		{120, 40},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.width, tt.height), func(t *testing.T) {
			m := New(Config{Initial: "copy /y a b"})
			next, _ := m.Update(tea.WindowSizeMsg{Width: tt.width, Height: tt.height})
			m = next.(Model)

			if want := tt.height - headerHeight - footerHeight - frameHeight; m.viewport.Height != want {
				t.Errorf("viewport height = %d, want %d", m.viewport.Height, want)
			}

			// One rounded box for the frame, one for the argument table
			view := m.View()
			if n := strings.Count(view, "╭"); n != 2 {
				t.Errorf("View() has %d rounded boxes, want frame and table", n)
			}
			for i, line := range strings.Split(view, "\n") {
				if w := lipgloss.Width(line); w > tt.width {
					t.Errorf("line %d is %d cells wide, terminal has %d", i, w, tt.width)
				}
			}
		})
	}
}

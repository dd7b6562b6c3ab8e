// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     store
// Description: Tests for the SQLite and in-memory history stores
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/msto63/cmdline/foundation/cmdline"
	mdwerror "github.com/msto63/cmdline/foundation/core/error"
)

// forEachStore runs fn against a fresh SQLite store and a fresh memory store
func forEachStore(t *testing.T, fn func(t *testing.T, s HistoryStore)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "history.db")
		s, err := NewSQLiteHistoryStore(path)
		if err != nil {
			t.Fatalf("NewSQLiteHistoryStore() error = %v", err)
		}
		defer s.Close()
		fn(t, s)
	})

	t.Run("memory", func(t *testing.T) {
		s := NewMemoryHistoryStore()
		defer s.Close()
		fn(t, s)
	})
}

func newEntry(line string, opts cmdline.Options, source Source, ts time.Time) *Entry {
	return &Entry{
		Timestamp:   ts,
		Source:      source,
		CommandLine: line,
		Options:     opts,
		Arguments:   cmdline.Parse(line, opts),
	}
}

func TestRecordAndGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, s HistoryStore) {
		ctx := context.Background()
		opts := cmdline.Options{ExtendedArguments: true}
		entry := newEntry(`-mode:read "two words" -k:"a b"`, opts, SourceREPL, time.Time{})

		if err := s.Record(ctx, entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if entry.ID == "" {
			t.Fatal("Record() should assign an ID")
		}
		if entry.Timestamp.IsZero() {
			t.Fatal("Record() should assign a timestamp")
		}

		got, err := s.Get(ctx, entry.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.CommandLine != entry.CommandLine {
			t.Errorf("CommandLine = %q, want %q", got.CommandLine, entry.CommandLine)
		}
		if got.Source != SourceREPL {
			t.Errorf("Source = %q, want %q", got.Source, SourceREPL)
		}
		if got.Options != opts {
			t.Errorf("Options = %+v, want %+v", got.Options, opts)
		}
		if got.Arguments.String() != entry.Arguments.String() {
			t.Errorf("Arguments = %s, want %s", got.Arguments, entry.Arguments)
		}
		ext, ok := got.Arguments[2].Extended()
		if !ok || ext != "a b" {
			t.Errorf("Arguments[2].Extended() = (%q, %v), want (\"a b\", true)", ext, ok)
		}
	})
}

func TestGet_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s HistoryStore) {
		_, err := s.Get(context.Background(), "does-not-exist")
		if err == nil {
			t.Fatal("Get() expected error")
		}
		if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
			t.Errorf("Get() code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeNotFound)
		}
	})
}

func TestList(t *testing.T) {
	forEachStore(t, func(t *testing.T, s HistoryStore) {
		ctx := context.Background()
		base := time.Now().Add(-time.Hour)
		lines := []struct {
			line   string
			source Source
		}{
			{"copy a b", SourceCLI},
			{"move -f a b", SourceHTTP},
			{"copy 50%_done", SourceCLI},
			{"del /q c", SourceREPL},
		}
		for i, l := range lines {
			e := newEntry(l.line, cmdline.Options{}, l.source, base.Add(time.Duration(i)*time.Minute))
			if err := s.Record(ctx, e); err != nil {
				t.Fatalf("Record(%q) error = %v", l.line, err)
			}
		}

		tests := []struct {
			name   string
			filter Filter
			want   []string
		}{
			{"all newest first", Filter{}, []string{"del /q c", "copy 50%_done", "move -f a b", "copy a b"}},
			{"by source", Filter{Source: SourceCLI}, []string{"copy 50%_done", "copy a b"}},
			{"contains", Filter{Contains: "copy"}, []string{"copy 50%_done", "copy a b"}},
			{"contains wildcard literal", Filter{Contains: "%_"}, []string{"copy 50%_done"}},
			{"limit", Filter{Limit: 2}, []string{"del /q c", "copy 50%_done"}},
			{"offset", Filter{Offset: 3}, []string{"copy a b"}},
			{"limit and offset", Filter{Limit: 1, Offset: 1}, []string{"copy 50%_done"}},
			{"offset past end", Filter{Offset: 10}, nil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := s.List(ctx, tt.filter)
				if err != nil {
					t.Fatalf("List() error = %v", err)
				}
				if len(got) != len(tt.want) {
					t.Fatalf("List() returned %d entries, want %d", len(got), len(tt.want))
				}
				for i, e := range got {
					if e.CommandLine != tt.want[i] {
						t.Errorf("List()[%d] = %q, want %q", i, e.CommandLine, tt.want[i])
					}
				}
			})
		}
	})
}

func TestPrune(t *testing.T) {
	forEachStore(t, func(t *testing.T, s HistoryStore) {
		ctx := context.Background()
		old := newEntry("old", cmdline.Options{}, SourceCLI, time.Now().Add(-48*time.Hour))
		recent := newEntry("recent", cmdline.Options{}, SourceCLI, time.Now())
		for _, e := range []*Entry{old, recent} {
			if err := s.Record(ctx, e); err != nil {
				t.Fatalf("Record() error = %v", err)
			}
		}

		removed, err := s.Prune(ctx, 24*time.Hour)
		if err != nil {
			t.Fatalf("Prune() error = %v", err)
		}
		if removed != 1 {
			t.Errorf("Prune() removed %d, want 1", removed)
		}
		if _, err := s.Get(ctx, recent.ID); err != nil {
			t.Errorf("recent entry should survive: %v", err)
		}
		if _, err := s.Get(ctx, old.ID); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
			t.Errorf("old entry should be gone, got %v", err)
		}
	})
}

func TestTrim(t *testing.T) {
	forEachStore(t, func(t *testing.T, s HistoryStore) {
		ctx := context.Background()
		base := time.Now().Add(-time.Hour)
		for i, line := range []string{"one", "two", "three", "four", "five"} {
			e := newEntry(line, cmdline.Options{}, SourceCLI, base.Add(time.Duration(i)*time.Second))
			if err := s.Record(ctx, e); err != nil {
				t.Fatalf("Record() error = %v", err)
			}
		}

		if removed, err := s.Trim(ctx, 0); err != nil || removed != 0 {
			t.Errorf("Trim(0) = (%d, %v), want (0, nil)", removed, err)
		}

		removed, err := s.Trim(ctx, 2)
		if err != nil {
			t.Fatalf("Trim() error = %v", err)
		}
		if removed != 3 {
			t.Errorf("Trim() removed %d, want 3", removed)
		}

		got, err := s.List(ctx, Filter{})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 2 || got[0].CommandLine != "five" || got[1].CommandLine != "four" {
			t.Errorf("Trim() kept wrong entries: %+v", got)
		}
	})
}

func TestClearAndCount(t *testing.T) {
	forEachStore(t, func(t *testing.T, s HistoryStore) {
		ctx := context.Background()
		for _, line := range []string{"a", "b", "c"} {
			if err := s.Record(ctx, newEntry(line, cmdline.Options{}, SourceTUI, time.Time{})); err != nil {
				t.Fatalf("Record() error = %v", err)
			}
		}

		n, err := s.Count(ctx)
		if err != nil || n != 3 {
			t.Fatalf("Count() = (%d, %v), want (3, nil)", n, err)
		}

		removed, err := s.Clear(ctx)
		if err != nil || removed != 3 {
			t.Fatalf("Clear() = (%d, %v), want (3, nil)", removed, err)
		}

		n, err = s.Count(ctx)
		if err != nil || n != 0 {
			t.Errorf("Count() after Clear = (%d, %v), want (0, nil)", n, err)
		}
	})
}

func TestSQLiteHistoryStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := NewSQLiteHistoryStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteHistoryStore() error = %v", err)
	}
	entry := newEntry("persist me", cmdline.Options{DiscardFirstToken: true}, SourceCLI, time.Time{})
	if err := s.Record(ctx, entry); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteHistoryStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if !got.Options.DiscardFirstToken {
		t.Error("Options.DiscardFirstToken not persisted")
	}
	if len(got.Arguments) != 1 || got.Arguments[0].Value() != "me" {
		t.Errorf("Arguments = %s, want [me]", got.Arguments)
	}
}

// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     store
// Description: Recorder writes tokenizer runs and keeps the history bounded
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package store

import (
	"context"

	"github.com/msto63/cmdline/foundation/cmdline"
)

// Recorder records tokenizer runs into a HistoryStore and trims the store
// to MaxEntries after each write. A nil Recorder records nothing.
type Recorder struct {
	store      HistoryStore
	maxEntries int
}

// NewRecorder creates a recorder. A nil store yields a nil recorder.
func NewRecorder(s HistoryStore, maxEntries int) *Recorder {
	if s == nil {
		return nil
	}
	return &Recorder{store: s, maxEntries: maxEntries}
}

// Store returns the underlying store
func (r *Recorder) Store() HistoryStore {
	if r == nil {
		return nil
	}
	return r.store
}

// Record stores one run and returns the stored entry
func (r *Recorder) Record(ctx context.Context, source Source, commandLine string, opts cmdline.Options, args cmdline.Arguments) (*Entry, error) {
	if r == nil {
		return nil, nil
	}

	entry := &Entry{
		Source:      source,
		CommandLine: commandLine,
		Options:     opts,
		Arguments:   args,
	}
	if err := r.store.Record(ctx, entry); err != nil {
		return nil, err
	}

	if r.maxEntries > 0 {
		if _, err := r.store.Trim(ctx, r.maxEntries); err != nil {
			return entry, err
		}
	}
	return entry, nil
}

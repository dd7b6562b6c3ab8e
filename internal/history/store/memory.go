// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     store
// Description: In-memory history store for tests and --no-history runs
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryHistoryStore is an in-memory implementation of HistoryStore
type MemoryHistoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryHistoryStore creates an empty in-memory store
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{
		entries: make([]*Entry, 0),
	}
}

// Record stores a copy of the entry
func (s *MemoryHistoryStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)
	stored := *entry
	s.entries = append(s.entries, &stored)
	return nil
}

// Get returns the entry with the given ID
func (s *MemoryHistoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			found := *e
			return &found, nil
		}
	}
	return nil, notFound(id)
}

// List returns entries matching filter, newest first
func (s *MemoryHistoryStore) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Entry
	for _, e := range s.newestFirst() {
		if filter.Source != "" && e.Source != filter.Source {
			continue
		}
		if filter.Contains != "" && !strings.Contains(e.CommandLine, filter.Contains) {
			continue
		}
		found := *e
		results = append(results, &found)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(results) {
			return nil, nil
		}
		results = results[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(results) {
		results = results[:filter.Limit]
	}

	return results, nil
}

// Count returns the number of stored entries
func (s *MemoryHistoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Prune removes entries older than the specified duration
func (s *MemoryHistoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	kept := s.entries[:0]
	var removed int64
	for _, e := range s.entries {
		if e.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed, nil
}

// Trim keeps only the newest maxEntries entries
func (s *MemoryHistoryStore) Trim(ctx context.Context, maxEntries int) (int64, error) {
	if maxEntries <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) <= maxEntries {
		return 0, nil
	}

	newest := s.newestFirst()[:maxEntries]
	removed := int64(len(s.entries) - maxEntries)

	// restore insertion order
	for i, j := 0, len(newest)-1; i < j; i, j = i+1, j-1 {
		newest[i], newest[j] = newest[j], newest[i]
	}
	s.entries = newest
	return removed, nil
}

// Clear removes all entries
func (s *MemoryHistoryStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.entries))
	s.entries = make([]*Entry, 0)
	return n, nil
}

// Close is a no-op
func (s *MemoryHistoryStore) Close() error {
	return nil
}

// newestFirst returns the entries sorted by timestamp descending; ties keep
// the later insertion first. The caller must hold the lock.
func (s *MemoryHistoryStore) newestFirst() []*Entry {
	sorted := make([]*Entry, len(s.entries))
	for i, e := range s.entries {
		sorted[len(s.entries)-1-i] = e
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return sorted
}

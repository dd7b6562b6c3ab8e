// ============================================================================
// cmdline - Command Line Tokenizer Toolkit
// ============================================================================
//
// Package:     store
// Description: Persistent history of tokenized command lines
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/cmdline/foundation/cmdline"
	mdwerror "github.com/msto63/cmdline/foundation/core/error"
)

// Source identifies where a command line was tokenized
type Source string

const (
	SourceCLI       Source = "cli"
	SourceREPL      Source = "repl"
	SourceTUI       Source = "tui"
	SourceHTTP      Source = "http"
	SourceWebSocket Source = "ws"
	SourceGRPC      Source = "grpc"
)

// Entry is one recorded tokenizer run
type Entry struct {
	ID          string            `json:"id" yaml:"id"`
	Timestamp   time.Time         `json:"timestamp" yaml:"timestamp"`
	Source      Source            `json:"source" yaml:"source"`
	CommandLine string            `json:"command_line" yaml:"command_line"`
	Options     cmdline.Options   `json:"options" yaml:"options"`
	Arguments   cmdline.Arguments `json:"arguments" yaml:"arguments"`
}

// Filter defines criteria for listing entries
type Filter struct {
	Source   Source
	Contains string
	Limit    int
	Offset   int
}

// HistoryStore is the interface for history persistence
type HistoryStore interface {
	Record(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, error)
	Count(ctx context.Context) (int, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Trim(ctx context.Context, maxEntries int) (int64, error)
	Clear(ctx context.Context) (int64, error)
	Close() error
}

// SQLiteHistoryStore implements HistoryStore using SQLite
type SQLiteHistoryStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteHistoryStore opens or creates the history database at path
func NewSQLiteHistoryStore(path string) (*SQLiteHistoryStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dbError(err, "failed to create directory", "history.Open").WithDetail("path", dir)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database", "history.Open").WithDetail("path", path)
	}

	s := &SQLiteHistoryStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "history.Open").WithDetail("path", path)
	}

	return s, nil
}

// initSchema creates the necessary tables
func (s *SQLiteHistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		source TEXT NOT NULL,
		command_line TEXT NOT NULL,
		extended INTEGER NOT NULL DEFAULT 0,
		discard_first INTEGER NOT NULL DEFAULT 0,
		arguments TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp);
	CREATE INDEX IF NOT EXISTS idx_history_source ON history(source);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores an entry, assigning ID and timestamp when unset
func (s *SQLiteHistoryStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)

	argsJSON, err := json.Marshal(entry.Arguments)
	if err != nil {
		return mdwerror.Wrap(err, "failed to encode arguments").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("history.Record")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history (id, timestamp, source, command_line, extended, discard_first, arguments)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp, string(entry.Source), entry.CommandLine,
		entry.Options.ExtendedArguments, entry.Options.DiscardFirstToken, string(argsJSON))
	if err != nil {
		return dbError(err, "failed to record entry", "history.Record").WithDetail("id", entry.ID)
	}

	return nil
}

// Get returns the entry with the given ID
func (s *SQLiteHistoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, source, command_line, extended, discard_first, arguments
		FROM history WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, dbError(err, "failed to read entry", "history.Get").WithDetail("id", id)
	}
	return entry, nil
}

// List returns entries matching filter, newest first
func (s *SQLiteHistoryStore) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, source, command_line, extended, discard_first, arguments FROM history WHERE 1=1`
	var args []interface{}

	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, string(filter.Source))
	}
	if filter.Contains != "" {
		query += ` AND command_line LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(filter.Contains)+"%")
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query history", "history.List")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan entry", "history.List")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to iterate history", "history.List")
	}

	return entries, nil
}

// Count returns the number of stored entries
func (s *SQLiteHistoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, dbError(err, "failed to count entries", "history.Count")
	}
	return n, nil
}

// Prune removes entries older than the specified duration
func (s *SQLiteHistoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()

	result, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, dbError(err, "failed to prune history", "history.Prune")
	}
	return result.RowsAffected()
}

// Trim keeps only the newest maxEntries entries. A non-positive limit keeps everything.
func (s *SQLiteHistoryStore) Trim(ctx context.Context, maxEntries int) (int64, error) {
	if maxEntries <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY timestamp DESC, rowid DESC LIMIT ?
		)
	`, maxEntries)
	if err != nil {
		return 0, dbError(err, "failed to trim history", "history.Trim").WithDetail("max_entries", maxEntries)
	}
	return result.RowsAffected()
}

// Clear removes all entries
func (s *SQLiteHistoryStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, dbError(err, "failed to clear history", "history.Clear")
	}
	return result.RowsAffected()
}

// Close closes the database connection
func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry    Entry
		source   string
		argsJSON string
	)

	err := row.Scan(&entry.ID, &entry.Timestamp, &source, &entry.CommandLine,
		&entry.Options.ExtendedArguments, &entry.Options.DiscardFirstToken, &argsJSON)
	if err != nil {
		return nil, err
	}

	entry.Source = Source(source)
	entry.Arguments = cmdline.Arguments{}
	if argsJSON != "" {
		if err := json.Unmarshal([]byte(argsJSON), &entry.Arguments); err != nil {
			return nil, err
		}
	}

	return &entry, nil
}

// prepare assigns defaults before an entry is stored
func prepare(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC()
	if entry.Source == "" {
		entry.Source = SourceCLI
	}
	if entry.Arguments == nil {
		entry.Arguments = cmdline.Arguments{}
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func dbError(err error, message, operation string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation(operation)
}

func notFound(id string) *mdwerror.Error {
	return mdwerror.Newf("history entry %q not found", id).
		WithCode(mdwerror.CodeNotFound).
		WithOperation("history.Get").
		WithDetail("id", id)
}

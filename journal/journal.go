// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: journal/journal.go
// Summary: SQLite-backed diagnostics journal.
//
// Persists interpreter diagnostics for later review with:
//   - Async batch writes so the interpreter never waits on disk
//   - Optional recording of informational entries
//   - Per-category counts and most-recent queries

package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelvt/vt"
)

// ErrClosed is returned by queries made after Close.
var ErrClosed = errors.New("journal is closed")

// Record is one stored diagnostic.
type Record struct {
	ID       int64
	Time     time.Time
	Category vt.Category
	IsError  bool
	Details  string
}

// Config holds configuration for the journal.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// IncludeInfo also records informational entries (text, csi, ...).
	// Default: false
	IncludeInfo bool

	// BatchSize is the number of entries to accumulate before flushing.
	// Default: 100
	BatchSize int

	// BatchTimeout is how long to wait before flushing a partial batch.
	// Default: 2s
	BatchTimeout time.Duration

	// ChannelBuffer is the size of the async write channel. Entries are
	// dropped when it is full.
	// Default: 4096
	ChannelBuffer int
}

// DefaultConfig returns the journal defaults for dbPath.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:        dbPath,
		BatchSize:     100,
		BatchTimeout:  2 * time.Second,
		ChannelBuffer: 4096,
	}
}

// Journal is a vt.Diagnostics sink writing to SQLite.
type Journal struct {
	config Config
	db     *sql.DB

	batchChan chan Record
	stopCh    chan struct{}
	doneCh    chan struct{}
	flushCh   chan chan struct{}

	closed  atomic.Bool
	dropped atomic.Int64

	mu        sync.RWMutex
	closeOnce sync.Once
}

var _ vt.Diagnostics = (*Journal)(nil)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS diagnostics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp INTEGER NOT NULL,       -- UnixNano
    is_error INTEGER NOT NULL DEFAULT 0,
    category TEXT NOT NULL,
    details TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_diagnostics_category ON diagnostics(category);
`

// Open creates or opens a journal at dbPath with default settings.
func Open(dbPath string) (*Journal, error) {
	return OpenWithConfig(DefaultConfig(dbPath))
}

// OpenWithConfig creates or opens a journal with custom configuration.
func OpenWithConfig(config Config) (*Journal, error) {
	def := DefaultConfig(config.DBPath)
	if config.BatchSize <= 0 {
		config.BatchSize = def.BatchSize
	}
	if config.BatchTimeout <= 0 {
		config.BatchTimeout = def.BatchTimeout
	}
	if config.ChannelBuffer <= 0 {
		config.ChannelBuffer = def.ChannelBuffer
	}

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := config.DBPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}

	j := &Journal{
		config:    config,
		db:        db,
		batchChan: make(chan Record, config.ChannelBuffer),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		flushCh:   make(chan chan struct{}),
	}
	go j.batchWriter()
	return j, nil
}

// checkSchemaVersion records the schema version on a fresh database and
// rejects databases written by a newer layout.
func checkSchemaVersion(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
		if err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case current > schemaVersion:
		return fmt.Errorf("journal schema version %d is newer than supported version %d", current, schemaVersion)
	}
	return nil
}

// Log records an informational entry when IncludeInfo is set.
func (j *Journal) Log(c vt.Category, details ...any) {
	if !j.config.IncludeInfo {
		return
	}
	j.enqueue(c, false, details)
}

// Error records a diagnostic.
func (j *Journal) Error(c vt.Category, details ...any) {
	j.enqueue(c, true, details)
}

func (j *Journal) enqueue(c vt.Category, isError bool, details []any) {
	if j.closed.Load() {
		return
	}
	rec := Record{
		Time:     time.Now(),
		Category: c,
		IsError:  isError,
		Details:  vt.FormatDetails(details...),
	}
	select {
	case j.batchChan <- rec:
	default:
		j.dropped.Add(1)
	}
}

// Dropped returns how many entries were discarded because the queue was full.
func (j *Journal) Dropped() int64 {
	return j.dropped.Load()
}

// batchWriter runs in a background goroutine, batching entries and flushing periodically.
func (j *Journal) batchWriter() {
	defer close(j.doneCh)

	batch := make([]Record, 0, j.config.BatchSize)
	timer := time.NewTimer(j.config.BatchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		j.writeBatch(batch)
		batch = batch[:0]
	}
	drain := func() {
		for {
			select {
			case rec := <-j.batchChan:
				batch = append(batch, rec)
			default:
				return
			}
		}
	}

	for {
		select {
		case rec := <-j.batchChan:
			batch = append(batch, rec)
			if len(batch) >= j.config.BatchSize {
				flush()
				timer.Reset(j.config.BatchTimeout)
			}

		case <-timer.C:
			flush()
			timer.Reset(j.config.BatchTimeout)

		case done := <-j.flushCh:
			drain()
			flush()
			close(done)

		case <-j.stopCh:
			drain()
			flush()
			return
		}
	}
}

// writeBatch stores a batch in a single transaction.
func (j *Journal) writeBatch(batch []Record) {
	j.mu.Lock()
	defer j.mu.Unlock()

	tx, err := j.db.Begin()
	if err != nil {
		log.Printf("Journal: failed to begin transaction: %v", err)
		return
	}
	stmt, err := tx.Prepare("INSERT INTO diagnostics (timestamp, is_error, category, details) VALUES (?, ?, ?, ?)")
	if err != nil {
		log.Printf("Journal: failed to prepare statement: %v", err)
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, rec := range batch {
		isErr := 0
		if rec.IsError {
			isErr = 1
		}
		if _, err := stmt.Exec(rec.Time.UnixNano(), isErr, string(rec.Category), rec.Details); err != nil {
			log.Printf("Journal: failed to insert %s entry: %v", rec.Category, err)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("Journal: failed to commit batch: %v", err)
	}
}

// Flush blocks until all queued entries are written.
func (j *Journal) Flush() error {
	if j.closed.Load() {
		return ErrClosed
	}
	done := make(chan struct{})
	select {
	case j.flushCh <- done:
	case <-j.doneCh:
		return ErrClosed
	}
	<-done
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Record, error) {
	if j.closed.Load() {
		return nil, ErrClosed
	}
	if limit <= 0 {
		return nil, nil
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	rows, err := j.db.Query(
		"SELECT id, timestamp, is_error, category, details FROM diagnostics ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent diagnostics: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec      Record
			ts       int64
			isErr    int
			category string
		)
		if err := rows.Scan(&rec.ID, &ts, &isErr, &category, &rec.Details); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		rec.Time = time.Unix(0, ts)
		rec.IsError = isErr == 1
		rec.Category = vt.Category(category)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CountByCategory returns the number of stored entries per category.
func (j *Journal) CountByCategory() (map[vt.Category]int, error) {
	if j.closed.Load() {
		return nil, ErrClosed
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	rows, err := j.db.Query("SELECT category, COUNT(*) FROM diagnostics GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("count diagnostics: %w", err)
	}
	defer rows.Close()

	counts := make(map[vt.Category]int)
	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[vt.Category(category)] = n
	}
	return counts, rows.Err()
}

// Close flushes queued entries and closes the database.
func (j *Journal) Close() error {
	var err error
	j.closeOnce.Do(func() {
		j.closed.Store(true)
		close(j.stopCh)
		<-j.doneCh
		if n := j.dropped.Load(); n > 0 {
			log.Printf("Journal: dropped %d entries", n)
		}
		err = j.db.Close()
	})
	return err
}

// Package history persists a log of past simulation runs to a local
// SQLite database, so `cachesim history` can list what configurations were
// run against which trace files and what they reported.
package history

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sarchlab/cachesim/cachesim"
)

// Store is a handle to the run-history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures the runs table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		ran_at         TEXT NOT NULL,
		input_file     TEXT NOT NULL,
		direct_mapped  INTEGER NOT NULL,
		cache_lines    INTEGER NOT NULL,
		cache_line_size INTEGER NOT NULL,
		cache_latency  INTEGER NOT NULL,
		memory_latency INTEGER NOT NULL,
		cycles         INTEGER NOT NULL,
		hits           INTEGER NOT NULL,
		misses         INTEGER NOT NULL,
		gate_count     INTEGER NOT NULL
	);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunRecord is one logged simulation run.
type RunRecord struct {
	ID            int64
	RanAt         string
	InputFile     string
	DirectMapped  bool
	CacheLines    uint32
	CacheLineSize uint32
	CacheLatency  uint64
	MemoryLatency uint64
	Result        cachesim.Result
}

// Record appends one run to the history.
func (s *Store) Record(r RunRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (
			ran_at, input_file, direct_mapped, cache_lines, cache_line_size,
			cache_latency, memory_latency, cycles, hits, misses, gate_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RanAt, r.InputFile, r.DirectMapped, r.CacheLines, r.CacheLineSize,
		r.CacheLatency, r.MemoryLatency,
		r.Result.Cycles, r.Result.Hits, r.Result.Misses, r.Result.PrimitiveGateCount,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	return nil
}

// Clear truncates the run history.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM runs`)
	if err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}

	return nil
}

// Recent returns the most recent limit runs, newest first.
func (s *Store) Recent(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, ran_at, input_file, direct_mapped, cache_lines, cache_line_size,
			cache_latency, memory_latency, cycles, hits, misses, gate_count
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		err := rows.Scan(
			&r.ID, &r.RanAt, &r.InputFile, &r.DirectMapped, &r.CacheLines, &r.CacheLineSize,
			&r.CacheLatency, &r.MemoryLatency,
			&r.Result.Cycles, &r.Result.Hits, &r.Result.Misses, &r.Result.PrimitiveGateCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

// Package store keeps an optional SQLite copy of the spatial index, with one
// run row per rebuild so stale snapshots can be told apart.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ColinKell02/SeniorDesign-GammaSpec/internal/core/domain"
)

// SQLiteStore implements ports.IndexStore on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// Open connects to the database at dbPath and creates the tables if needed.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	runsTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME,
		finished_at DATETIME,
		row_count INTEGER
	);
	`
	indexTable := `
	CREATE TABLE IF NOT EXISTS spatial_index (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		mission TEXT,
		filename TEXT,
		record_index INTEGER,
		lat REAL,
		lon REAL
	);
	`

	if _, err := db.Exec(runsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}
	if _, err := db.Exec(indexTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create spatial_index table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// BeginRun records the start of an index rebuild and returns its run ID.
func (s *SQLiteStore) BeginRun(ctx context.Context) (string, error) {
	runID := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, row_count) VALUES (?, ?, 0)`,
		runID, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to record index run: %w", err)
	}
	return runID, nil
}

// AppendRows inserts a batch of index rows under the given run in one
// transaction.
func (s *SQLiteStore) AppendRows(ctx context.Context, runID string, rows []domain.SpatialRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO spatial_index (run_id, mission, filename, record_index, lat, lon)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			runID, r.Mission, r.Filename, r.RecordIndex, r.Lat, r.Lon); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert index row: %w", err)
		}
	}
	return tx.Commit()
}

// FinishRun marks the run complete with its final row count.
func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, total int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, row_count = ? WHERE id = ?`,
		time.Now().UTC(), total, runID)
	if err != nil {
		return fmt.Errorf("failed to finish index run: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

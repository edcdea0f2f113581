// Package snapshotstore persists reconciliation snapshots to a SQLite
// database, grounded on the schema used by the original implementation's
// state database (spec.md §6, original_source/remote_office_sync/state_db.py).
package snapshotstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure Go SQLite driver, registers as "sqlite"

	"github.com/foldersync/foldersync/pkg/logging"
	"github.com/foldersync/foldersync/pkg/reconciliation/core"
)

// Store implements core.Store backed by a SQLite database. The entire
// table is replaced on every Save, mirroring the "whole-file replace"
// semantics spec.md §5 requires of snapshot persistence.
type Store struct {
	db     *sql.DB
	logger *logging.Logger
}

// Open creates or opens the SQLite database at path, applying any pending
// migrations. Use ":memory:" for tests.
func Open(path string, logger *logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open snapshot database: %w", err)
	}

	ctx := context.Background()
	if err := setPragmas(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := runMigrations(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func setPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("unable to set pragma %q: %w", pragma, err)
		}
	}
	return nil
}

// Load returns the persisted snapshot. On first-run (empty table) or an
// unreadable database it returns an empty Snapshot, per spec.md §4.4.
func (s *Store) Load() (core.Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT path, exists_left, exists_right, mtime_left, mtime_right,
		       size_left, size_right, attrs_left, attrs_right
		FROM files`)
	if err != nil {
		s.logger.Warnf("unable to query snapshot, treating as empty: %v", err)
		return core.Snapshot{}, nil
	}
	defer rows.Close()

	snapshot := make(core.Snapshot)
	for rows.Next() {
		var (
			path                       string
			existsLeft, existsRight    int
			mtimeLeft, mtimeRight      float64
			sizeLeft, sizeRight        int64
			attrsLeft, attrsRight      int64
		)
		if err := rows.Scan(&path, &existsLeft, &existsRight, &mtimeLeft, &mtimeRight,
			&sizeLeft, &sizeRight, &attrsLeft, &attrsRight); err != nil {
			s.logger.Warnf("unable to scan snapshot row, skipping: %v", err)
			continue
		}

		metadata := core.FileMetadata{Path: path}
		if existsLeft != 0 {
			metadata.Left = core.SideView{
				Exists:     true,
				ModTime:    mtimeLeft,
				Size:       sizeLeft,
				Attributes: uint32(attrsLeft),
			}
		}
		if existsRight != 0 {
			metadata.Right = core.SideView{
				Exists:     true,
				ModTime:    mtimeRight,
				Size:       sizeRight,
				Attributes: uint32(attrsRight),
			}
		}
		snapshot[path] = metadata
	}
	if err := rows.Err(); err != nil {
		s.logger.Warnf("error iterating snapshot rows, returning partial result: %v", err)
	}

	return snapshot, nil
}

// Save atomically replaces the persisted snapshot with content, within a
// single transaction (spec.md §5: "The snapshot file is updated by
// whole-file replace").
func (s *Store) Save(content core.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("unable to begin snapshot transaction: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM files"); err != nil {
		tx.Rollback()
		return fmt.Errorf("unable to clear previous snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO files
		(path, exists_left, exists_right, mtime_left, mtime_right,
		 size_left, size_right, attrs_left, attrs_right)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("unable to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for path, metadata := range content {
		_, err := stmt.Exec(
			path,
			boolToInt(metadata.Left.Exists), boolToInt(metadata.Right.Exists),
			metadata.Left.ModTime, metadata.Right.ModTime,
			metadata.Left.Size, metadata.Right.Size,
			metadata.Left.Attributes, metadata.Right.Attributes,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("unable to insert snapshot row for %q: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("unable to commit snapshot transaction: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

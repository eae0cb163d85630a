package state

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// DefaultPath is the history database used when none is configured.
const DefaultPath = ".docsite/state.db"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates a store. Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "create state directory").
				WithContext("path", dbPath).
				Build()
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStore, "open state database").
			WithContext("path", dbPath).
			Build()
	}
	// A single connection keeps ":memory:" databases alive across queries.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryStore, "initialize state schema").
			WithContext("path", dbPath).
			Build()
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		snapshot TEXT NOT NULL,
		content_hash TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		files TEXT,
		page_count INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS build_targets (
		build_id TEXT NOT NULL REFERENCES builds(id) ON DELETE CASCADE,
		target TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (build_id, target)
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started_at);
	CREATE INDEX IF NOT EXISTS idx_build_targets_target ON build_targets(target);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.migrate()
}

// migrate adds columns introduced after the first schema version.
func (s *SQLiteStore) migrate() error {
	var n int
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info('builds') WHERE name = 'content_hash'",
	).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err := s.db.Exec("ALTER TABLE builds ADD COLUMN content_hash TEXT NOT NULL DEFAULT ''")
	return err
}

// Record inserts or replaces a build record.
func (s *SQLiteStore) Record(ctx context.Context, rec BuildRecord) error {
	if rec.ID == "" {
		return errors.ValidationError("build record has no id").Build()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := json.Marshal(rec.Files)
	if err != nil {
		return fmt.Errorf("marshal files: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO builds (id, snapshot, content_hash, status, files, page_count, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Snapshot, rec.ContentHash, string(rec.Status), string(files), rec.PageCount, rec.Error,
		rec.StartedAt.UnixNano(), rec.FinishedAt.UnixNano(),
	); err != nil {
		return storeErr(err, "insert build")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM build_targets WHERE build_id = ?", rec.ID); err != nil {
		return storeErr(err, "reset build targets")
	}
	for i, target := range rec.Targets {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO build_targets (build_id, target, position) VALUES (?, ?, ?)",
			rec.ID, string(target), i,
		); err != nil {
			return storeErr(err, "insert build target")
		}
	}
	if err := tx.Commit(); err != nil {
		return storeErr(err, "commit build")
	}
	return nil
}

// Latest returns the newest successful build that emitted target.
func (s *SQLiteStore) Latest(ctx context.Context, target config.Target) (*BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT b.id, b.snapshot, b.content_hash, b.status, b.files, b.page_count, b.error, b.started_at, b.finished_at
		 FROM builds b JOIN build_targets t ON t.build_id = b.id
		 WHERE t.target = ? AND b.status = ?
		 ORDER BY b.started_at DESC, b.rowid DESC LIMIT 1`,
		string(target), string(StatusSuccess),
	)
	rec, err := scanRecord(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err, "query latest build")
	}
	if err := s.loadTargets(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns up to limit records, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, snapshot, content_hash, status, files, page_count, error, started_at, finished_at
		 FROM builds ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, storeErr(err, "query builds")
	}
	var records []BuildRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			_ = rows.Close()
			return nil, storeErr(err, "scan build")
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, storeErr(err, "iterate builds")
	}
	_ = rows.Close()

	for i := range records {
		if err := s.loadTargets(ctx, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (s *SQLiteStore) loadTargets(ctx context.Context, rec *BuildRecord) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT target FROM build_targets WHERE build_id = ? ORDER BY position", rec.ID)
	if err != nil {
		return storeErr(err, "query build targets")
	}
	defer rows.Close()
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return storeErr(err, "scan build target")
		}
		rec.Targets = append(rec.Targets, config.Target(target))
	}
	if err := rows.Err(); err != nil {
		return storeErr(err, "iterate build targets")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*BuildRecord, error) {
	var (
		rec               BuildRecord
		status            string
		files, errText    sql.NullString
		started, finished int64
	)
	if err := row.Scan(&rec.ID, &rec.Snapshot, &rec.ContentHash, &status, &files, &rec.PageCount, &errText, &started, &finished); err != nil {
		return nil, err
	}
	rec.Status = Status(status)
	rec.Error = errText.String
	rec.StartedAt = time.Unix(0, started).UTC()
	rec.FinishedAt = time.Unix(0, finished).UTC()
	if files.Valid && files.String != "" && files.String != "null" {
		if err := json.Unmarshal([]byte(files.String), &rec.Files); err != nil {
			return nil, fmt.Errorf("unmarshal files: %w", err)
		}
	}
	return &rec, nil
}

func storeErr(err error, op string) error {
	return errors.StoreError(op).WithCause(err).Build()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

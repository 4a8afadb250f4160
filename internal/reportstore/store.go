package reportstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"reelcheck/internal/batch"
	"reelcheck/internal/evaluate"
)

// Store manages report run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

const schemaVersion = 1

// ErrSchemaMismatch indicates the database was written by an incompatible
// version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrNotFound indicates the requested run does not exist.
var ErrNotFound = errors.New("run not found")

const schemaSQL = `
CREATE TABLE schema_version (
    version INTEGER NOT NULL
);

CREATE TABLE runs (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    total_passed INTEGER NOT NULL,
    total_failed INTEGER NOT NULL,
    total_duration_ms INTEGER NOT NULL
);

CREATE TABLE reports (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    video_path TEXT NOT NULL,
    passed INTEGER NOT NULL,
    payload TEXT NOT NULL,
    PRIMARY KEY (run_id, position)
);

CREATE INDEX idx_reports_video ON reports(video_path);
`

// RunSummary is one row of run history.
type RunSummary struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	TotalPassed     int       `json:"totalPassed"`
	TotalFailed     int       `json:"totalFailed"`
	TotalDurationMs int64     `json:"totalDurationMs"`
}

// Open initializes or connects to the report database under dir.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("reportstore: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	dbPath := filepath.Join(dir, "reports.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: dbPath,
		lock: flock.New(filepath.Join(dir, "reports.lock")),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// SaveBatch persists one batch result and returns the generated run id.
func (s *Store) SaveBatch(ctx context.Context, result batch.Result) (string, error) {
	ctx = ensureContext(ctx)
	runID := uuid.NewString()

	if err := s.lock.Lock(); err != nil {
		return "", fmt.Errorf("acquire report lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO runs (id, created_at, total_passed, total_failed, total_duration_ms) VALUES (?, ?, ?, ?, ?)",
			runID, result.CreatedAt.UTC().Format(time.RFC3339Nano),
			result.TotalPassed, result.TotalFailed, result.TotalDurationMs,
		); err != nil {
			return err
		}

		for i, report := range result.Reports {
			payload, err := json.Marshal(report)
			if err != nil {
				return fmt.Errorf("encode report %d: %w", i, err)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO reports (run_id, position, video_path, passed, payload) VALUES (?, ?, ?, ?, ?)",
				runID, i, report.VideoPath, boolToInt(report.Passed), string(payload),
			); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return "", fmt.Errorf("save batch: %w", err)
	}
	return runID, nil
}

// SaveReport persists a single-video evaluation as a one-report run.
func (s *Store) SaveReport(ctx context.Context, report evaluate.ValidationReport) (string, error) {
	result := batch.Result{
		SchemaVersion:   batch.SchemaVersion,
		Reports:         []evaluate.ValidationReport{report},
		TotalDurationMs: report.TotalDurationMs,
		CreatedAt:       report.CreatedAt,
	}
	if report.Passed {
		result.TotalPassed = 1
	} else {
		result.TotalFailed = 1
	}
	return s.SaveBatch(ctx, result)
}

// ListRuns returns run history, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	ctx = ensureContext(ctx)
	if limit < 1 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, created_at, total_passed, total_failed, total_duration_ms FROM runs ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var created string
		if err := rows.Scan(&run.ID, &created, &run.TotalPassed, &run.TotalFailed, &run.TotalDurationMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			run.CreatedAt = ts
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads one run with all of its reports in stored order.
func (s *Store) GetRun(ctx context.Context, runID string) (batch.Result, error) {
	ctx = ensureContext(ctx)

	var result batch.Result
	var created string
	err := s.db.QueryRowContext(ctx,
		"SELECT created_at, total_passed, total_failed, total_duration_ms FROM runs WHERE id = ?",
		runID,
	).Scan(&created, &result.TotalPassed, &result.TotalFailed, &result.TotalDurationMs)
	if errors.Is(err, sql.ErrNoRows) {
		return batch.Result{}, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return batch.Result{}, fmt.Errorf("load run: %w", err)
	}
	result.SchemaVersion = batch.SchemaVersion
	if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
		result.CreatedAt = ts
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT payload FROM reports WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return batch.Result{}, fmt.Errorf("load reports: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return batch.Result{}, fmt.Errorf("scan report: %w", err)
		}
		var report evaluate.ValidationReport
		if err := json.Unmarshal([]byte(payload), &report); err != nil {
			return batch.Result{}, fmt.Errorf("decode report: %w", err)
		}
		result.Reports = append(result.Reports, report)
	}
	return result, rows.Err()
}

// VideoHistory returns the stored reports for one video path, newest run
// first.
func (s *Store) VideoHistory(ctx context.Context, videoPath string, limit int) ([]evaluate.ValidationReport, error) {
	ctx = ensureContext(ctx)
	if limit < 1 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT reports.payload FROM reports
		 JOIN runs ON runs.id = reports.run_id
		 WHERE reports.video_path = ?
		 ORDER BY runs.created_at DESC LIMIT ?`,
		videoPath, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("video history: %w", err)
	}
	defer rows.Close()

	var reports []evaluate.ValidationReport
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		var report evaluate.ValidationReport
		if err := json.Unmarshal([]byte(payload), &report); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// Prune deletes runs older than the cutoff and returns the count removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	ctx = ensureContext(ctx)

	if err := s.lock.Lock(); err != nil {
		return 0, fmt.Errorf("acquire report lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	res, err := s.execWithRetry(ctx,
		"DELETE FROM runs WHERE created_at < ?", olderThan.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ashureev/learnzverse/internal/domain"
	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// unavailable wraps a database error so callers can match ErrStorageUnavailable
// while the driver message stays in the chain.
func unavailable(err error, msg string, values ...goerr.Option) error {
	return goerr.Wrap(errors.Join(ErrStorageUnavailable, err), msg, values...)
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, unavailable(err, "failed to create database directory", goerr.V("path", dbPath))
	}

	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, unavailable(err, "failed to open database", goerr.V("path", dbPath))
	}

	// One process, one writer.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, unavailable(err, "failed to ping database", goerr.V("path", dbPath))
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		persona_name TEXT NOT NULL,
		subject TEXT NOT NULL,
		class_level TEXT NOT NULL,
		question TEXT NOT NULL,
		response TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_timestamp ON sessions(timestamp);

	CREATE TABLE IF NOT EXISTS progress (
		subject TEXT PRIMARY KEY,
		session_count INTEGER NOT NULL DEFAULT 0,
		last_accessed TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return unavailable(err, "failed to create schema")
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable(err, "failed to ping database")
	}
	return nil
}

// SaveSession inserts the record and upserts the subject's progress in one transaction.
func (s *SQLiteStore) SaveSession(ctx context.Context, record *domain.SessionRecord) error {
	if record.Timestamp == "" {
		record.Timestamp = domain.FormatTimestamp(time.Now())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable(err, "failed to begin transaction")
	}
	defer func() {
		// Rollback after Commit is a no-op returning sql.ErrTxDone.
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			slog.Warn("failed to rollback session save", "error", rbErr)
		}
	}()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (timestamp, persona_name, subject, class_level, question, response)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.Timestamp, record.PersonaName, record.Subject,
		record.ClassLevel, record.Question, record.Response,
	)
	if err != nil {
		return unavailable(err, "failed to insert session", goerr.V("subject", record.Subject))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return unavailable(err, "failed to read session id")
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO progress (subject, session_count, last_accessed)
		VALUES (?, 1, ?)
		ON CONFLICT(subject) DO UPDATE SET
			session_count = progress.session_count + 1,
			last_accessed = excluded.last_accessed`,
		record.Subject, record.Timestamp,
	)
	if err != nil {
		return unavailable(err, "failed to upsert progress", goerr.V("subject", record.Subject))
	}

	if err := tx.Commit(); err != nil {
		return unavailable(err, "failed to commit session", goerr.V("subject", record.Subject))
	}

	record.ID = id
	return nil
}

// RecentSessions returns up to limit session records, newest first.
func (s *SQLiteStore) RecentSessions(ctx context.Context, limit int) ([]*domain.SessionRecord, error) {
	if limit <= 0 {
		return []*domain.SessionRecord{}, nil
	}

	query := `
		SELECT id, timestamp, persona_name, subject, class_level, question, response
		FROM sessions
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, unavailable(err, "failed to query recent sessions", goerr.V("limit", limit))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close recent sessions rows", "error", closeErr)
		}
	}()

	records := make([]*domain.SessionRecord, 0, limit)
	for rows.Next() {
		var r domain.SessionRecord
		if err := rows.Scan(
			&r.ID, &r.Timestamp, &r.PersonaName, &r.Subject,
			&r.ClassLevel, &r.Question, &r.Response,
		); err != nil {
			return nil, unavailable(err, "failed to scan session row")
		}
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable(err, "failed to iterate sessions")
	}

	return records, nil
}

// GetProgress retrieves the progress record for a subject.
func (s *SQLiteStore) GetProgress(ctx context.Context, subject string) (*domain.ProgressRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT subject, session_count, last_accessed FROM progress WHERE subject = ?`, subject)

	var p domain.ProgressRecord
	err := row.Scan(&p.Subject, &p.SessionCount, &p.LastAccessed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable(err, "failed to scan progress row", goerr.V("subject", subject))
	}
	return &p, nil
}

// ListProgress returns every subject's progress.
func (s *SQLiteStore) ListProgress(ctx context.Context) ([]*domain.ProgressRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject, session_count, last_accessed FROM progress ORDER BY subject`)
	if err != nil {
		return nil, unavailable(err, "failed to query progress")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close progress rows", "error", closeErr)
		}
	}()

	var out []*domain.ProgressRecord
	for rows.Next() {
		var p domain.ProgressRecord
		if err := rows.Scan(&p.Subject, &p.SessionCount, &p.LastAccessed); err != nil {
			return nil, unavailable(err, "failed to scan progress row")
		}
		out = append(out, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable(err, "failed to iterate progress")
	}

	return out, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database")
	}
	return nil
}

var _ Repository = (*SQLiteStore)(nil)

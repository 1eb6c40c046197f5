package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/formpulse/survey-intake-backend/internal/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// The unique index spans exactly the dedupe key, so INSERT OR IGNORE
// makes scan-and-append atomic. received_at, user_agent and ip stay
// outside the index: records differing only there are still duplicates.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS submissions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	submission_id TEXT NOT NULL,
	name          TEXT NOT NULL,
	consent       INTEGER NOT NULL,
	rating        INTEGER NOT NULL,
	comments      TEXT NOT NULL,
	source        TEXT NOT NULL,
	email         TEXT NOT NULL,
	age           TEXT NOT NULL,
	received_at   TEXT NOT NULL,
	user_agent    TEXT NOT NULL DEFAULT '',
	ip            TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_submissions_dedupe
	ON submissions (submission_id, email, age, name, consent, rating, comments, source);
`

// SQLiteStore keeps the Store contract but closes the scan-then-append
// race of the file backend through its unique dedupe index.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the SQLite database at
// path and ensures the submissions schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create data directory")
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "apply %q", pragma)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create submissions schema")
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) AppendIfNew(ctx context.Context, rec *models.StorageRecord) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO submissions
			(submission_id, name, consent, rating, comments, source, email, age, received_at, user_agent, ip)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SubmissionID,
		rec.Name,
		rec.Consent,
		rec.Rating,
		rec.Comments,
		rec.Source,
		rec.Email,
		rec.Age,
		rec.ReceivedAt.UTC().Format(time.RFC3339Nano),
		rec.UserAgent,
		rec.IP,
	)
	if err != nil {
		return false, errors.Wrap(err, "append record")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "read rows affected")
	}
	return n > 0, nil
}

func (s *SQLiteStore) Each(ctx context.Context, fn func(*models.StorageRecord) error) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT submission_id, name, consent, rating, comments, source, email, age, received_at, user_agent, ip
		FROM submissions
		ORDER BY id`)
	if err != nil {
		return errors.Wrap(err, "read submissions")
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.StorageRecord
		var receivedAt string
		err := rows.Scan(
			&rec.SubmissionID,
			&rec.Name,
			&rec.Consent,
			&rec.Rating,
			&rec.Comments,
			&rec.Source,
			&rec.Email,
			&rec.Age,
			&receivedAt,
			&rec.UserAgent,
			&rec.IP,
		)
		if err != nil {
			return errors.Wrap(err, "scan record")
		}

		rec.ReceivedAt, err = time.Parse(time.RFC3339Nano, receivedAt)
		if err != nil {
			return errors.Wrap(err, "parse received_at")
		}

		if err := fn(&rec); err != nil {
			return err
		}
	}
	return errors.Wrap(rows.Err(), "iterate submissions")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

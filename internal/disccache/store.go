package disccache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// TitleSummary is one probed entry of a disc's table of titles.
type TitleSummary struct {
	Title    int
	TitleSet int
	Chapters int
	Angles   int
	Sectors  int64
}

// Entry is the cached probe result for one disc.
type Entry struct {
	Fingerprint string
	Label       string
	Titles      []TitleSummary
	ProbedAt    time.Time
}

// Store manages probe cache persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

const schema = `
CREATE TABLE IF NOT EXISTS discs (
    fingerprint TEXT PRIMARY KEY,
    label       TEXT NOT NULL DEFAULT '',
    probed_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS disc_titles (
    fingerprint TEXT NOT NULL REFERENCES discs(fingerprint) ON DELETE CASCADE,
    title       INTEGER NOT NULL,
    title_set   INTEGER NOT NULL,
    chapters    INTEGER NOT NULL,
    angles      INTEGER NOT NULL,
    sectors     INTEGER NOT NULL,
    PRIMARY KEY (fingerprint, title)
);
`

// Open initializes or connects to the cache database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("cache path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Put stores or replaces the probe result for entry's fingerprint.
func (s *Store) Put(ctx context.Context, entry Entry) error {
	if strings.TrimSpace(entry.Fingerprint) == "" {
		return errors.New("entry fingerprint is empty")
	}
	probedAt := entry.ProbedAt
	if probedAt.IsZero() {
		probedAt = time.Now()
	}

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO discs (fingerprint, label, probed_at) VALUES (?, ?, ?)
			 ON CONFLICT(fingerprint) DO UPDATE SET label = excluded.label, probed_at = excluded.probed_at`,
			entry.Fingerprint, entry.Label, probedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM disc_titles WHERE fingerprint = ?`, entry.Fingerprint,
		); err != nil {
			return err
		}

		for _, title := range entry.Titles {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO disc_titles (fingerprint, title, title_set, chapters, angles, sectors)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				entry.Fingerprint, title.Title, title.TitleSet, title.Chapters, title.Angles, title.Sectors,
			); err != nil {
				return err
			}
		}

		return tx.Commit()
	})
}

// Get returns the cached entry for fingerprint, reporting whether it exists.
func (s *Store) Get(ctx context.Context, fingerprint string) (*Entry, bool, error) {
	entry := &Entry{Fingerprint: fingerprint}

	var probedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT label, probed_at FROM discs WHERE fingerprint = ?`, fingerprint,
	).Scan(&entry.Label, &probedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query disc: %w", err)
	}
	if ts, err := time.Parse(time.RFC3339, probedAt); err == nil {
		entry.ProbedAt = ts
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT title, title_set, chapters, angles, sectors
		 FROM disc_titles WHERE fingerprint = ? ORDER BY title`, fingerprint,
	)
	if err != nil {
		return nil, false, fmt.Errorf("query disc titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var title TitleSummary
		if err := rows.Scan(&title.Title, &title.TitleSet, &title.Chapters, &title.Angles, &title.Sectors); err != nil {
			return nil, false, fmt.Errorf("scan disc title: %w", err)
		}
		entry.Titles = append(entry.Titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate disc titles: %w", err)
	}

	return entry, true, nil
}

// Forget removes the cached entry for fingerprint if present.
func (s *Store) Forget(ctx context.Context, fingerprint string) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM discs WHERE fingerprint = ?`, fingerprint)
		return err
	})
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

// Package journal records successful cleanups in a local SQLite database.
// It is write-only from the cleanup flow and read by the history view.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marcus/dcleaner/internal/project"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cleanups (
	id         TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	base_type  TEXT NOT NULL,
	variants   TEXT NOT NULL DEFAULT '',
	bytes      INTEGER NOT NULL,
	cleaned_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cleanups_cleaned_at ON cleanups(cleaned_at);
`

// Entry is one recorded cleanup.
type Entry struct {
	ID        string
	Path      string
	BaseType  project.BaseType
	Variants  []project.Variant
	Bytes     int64
	CleanedAt time.Time
}

// Name returns the last path segment of the cleaned project.
func (e Entry) Name() string {
	return project.Project{Path: e.Path}.Name()
}

// Journal is a handle on the cleanup database.
type Journal struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the journal at path. Parent directories are
// created as needed.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}
	return &Journal{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file path.
func (j *Journal) Path() string { return j.path }

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends a cleanup of p that reclaimed bytes.
func (j *Journal) Record(ctx context.Context, p project.Project, bytes int64) (Entry, error) {
	e := Entry{
		ID:        uuid.NewString(),
		Path:      p.Path,
		BaseType:  p.BaseType,
		Variants:  p.Variants,
		Bytes:     bytes,
		CleanedAt: j.now().UTC().Truncate(time.Second),
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO cleanups (id, path, base_type, variants, bytes, cleaned_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Path, string(e.BaseType), joinVariants(e.Variants), e.Bytes, e.CleanedAt.Unix())
	if err != nil {
		return Entry{}, fmt.Errorf("record cleanup of %s: %w", p.Path, err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, path, base_type, variants, bytes, cleaned_at FROM cleanups
		 ORDER BY cleaned_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			base     string
			variants string
			cleaned  int64
		)
		if err := rows.Scan(&e.ID, &e.Path, &base, &variants, &e.Bytes, &cleaned); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		e.BaseType = project.BaseType(base)
		e.Variants = splitVariants(variants)
		e.CleanedAt = time.Unix(cleaned, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Total returns the number of recorded cleanups and the bytes they
// reclaimed.
func (j *Journal) Total(ctx context.Context) (count int, bytes int64, err error) {
	err = j.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(bytes), 0) FROM cleanups`).Scan(&count, &bytes)
	if err != nil {
		return 0, 0, fmt.Errorf("total journal: %w", err)
	}
	return count, bytes, nil
}

func joinVariants(vs []project.Variant) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

func splitVariants(s string) []project.Variant {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]project.Variant, len(parts))
	for i, p := range parts {
		out[i] = project.Variant(p)
	}
	return out
}

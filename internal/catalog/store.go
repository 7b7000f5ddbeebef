// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a SQLite index of converted traits so the JSON set
// can be listed and exported without walking the output directory.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/svgpaths/internal/convert"
	"github.com/pdiddy/svgpaths/pkg/types"
)

// Store manages the catalog SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the catalog database at cfg.Path, creating the
// parent directory and schema if needed.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if !cfg.Enabled() {
		return nil, errors.New("catalog path not configured")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS traits (
		name TEXT PRIMARY KEY,
		path_data TEXT NOT NULL,
		view_box TEXT NOT NULL,
		source_path TEXT NOT NULL,
		source_sha256 TEXT NOT NULL,
		converted_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts or replaces the entry with the same name.
func (s *Store) Record(ctx context.Context, e types.CatalogEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO traits (name, path_data, view_box, source_path, source_sha256, converted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			path_data = excluded.path_data,
			view_box = excluded.view_box,
			source_path = excluded.source_path,
			source_sha256 = excluded.source_sha256,
			converted_at = excluded.converted_at`,
		e.Name, e.PathData, e.ViewBox, e.SourcePath, e.SourceSHA256,
		e.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.Name, err)
	}
	return nil
}

// Get returns the entry for name, or sql.ErrNoRows wrapped when absent.
func (s *Store) Get(ctx context.Context, name string) (types.CatalogEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, path_data, view_box, source_path, source_sha256, converted_at
		FROM traits WHERE name = ?`, name)
	e, err := scanEntry(row)
	if err != nil {
		return types.CatalogEntry{}, fmt.Errorf("loading %s: %w", name, err)
	}
	return e, nil
}

// List returns all entries ordered by name.
func (s *Store) List(ctx context.Context) ([]types.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, path_data, view_box, source_path, source_sha256, converted_at
		FROM traits ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying traits: %w", err)
	}
	defer rows.Close()

	entries := make([]types.CatalogEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (types.CatalogEntry, error) {
	var (
		e  types.CatalogEntry
		ts string
	)
	if err := sc.Scan(&e.Name, &e.PathData, &e.ViewBox, &e.SourcePath, &e.SourceSHA256, &ts); err != nil {
		return types.CatalogEntry{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return types.CatalogEntry{}, fmt.Errorf("parsing converted_at %q: %w", ts, err)
	}
	e.ConvertedAt = t
	return e, nil
}

// RecordSummary holds counts from RecordBatch.
type RecordSummary struct {
	Recorded  int
	Unchanged int
	Failed    int
}

// RecordBatch records every converted file in result. Entries whose source
// digest and output match the stored row keep their original timestamp.
// Failures are logged and counted; they do not stop the batch.
func (s *Store) RecordBatch(ctx context.Context, result convert.BatchResult, log *slog.Logger) (RecordSummary, error) {
	var summary RecordSummary
	for _, f := range result.Files {
		if f.Status != types.ConversionDone {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		sum, err := fileSHA256(f.Source)
		if err != nil {
			log.Error("catalog record failed", "trait", f.Name, "err", err)
			summary.Failed++
			continue
		}

		prev, err := s.Get(ctx, f.Name)
		if err == nil && prev.SourceSHA256 == sum && prev.PathData == f.Paths.PathData && prev.ViewBox == f.Paths.ViewBox {
			log.Debug("catalog unchanged", "trait", f.Name)
			summary.Unchanged++
			continue
		}

		entry := types.CatalogEntry{
			Name:         f.Name,
			PathData:     f.Paths.PathData,
			ViewBox:      f.Paths.ViewBox,
			SourcePath:   f.Source,
			SourceSHA256: sum,
			ConvertedAt:  s.now(),
		}
		if err := s.Record(ctx, entry); err != nil {
			log.Error("catalog record failed", "trait", f.Name, "err", err)
			summary.Failed++
			continue
		}
		summary.Recorded++
	}

	log.Info("catalog updated",
		"recorded", summary.Recorded,
		"unchanged", summary.Unchanged,
		"failed", summary.Failed)
	return summary, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists extracted citations in a SQLite database and
// supports full-text and structured queries over them.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citescan/internal/cite"
	"github.com/pdiddy/citescan/pkg/types"
)

const dbFile = "citescan.db"

// Store manages the citation index SQLite database.
type Store struct {
	db         *sql.DB
	indexDir   string
	maxResults int
}

// NewStore opens or creates the citation index at indexDir/citescan.db,
// creating the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	indexDir := cfg.IndexDir
	if indexDir == "" {
		indexDir = "index"
	}
	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(indexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		indexDir:   indexDir,
		maxResults: maxResults,
	}

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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			mod_time TEXT NOT NULL,
			size INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS citations (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			file_id INTEGER NOT NULL REFERENCES files(id),
			text TEXT NOT NULL,
			start_offset INTEGER NOT NULL,
			end_offset INTEGER NOT NULL,
			type TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_file_id ON citations(file_id)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_type ON citations(type)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='citations_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE citations_fts USING fts5(text, content=citations, content_rowid=rowid)`,
			`CREATE TRIGGER citations_ai AFTER INSERT ON citations BEGIN
				INSERT INTO citations_fts(rowid, text) VALUES (new.rowid, new.text);
			END`,
			`CREATE TRIGGER citations_ad AFTER DELETE ON citations BEGIN
				INSERT INTO citations_fts(citations_fts, rowid, text) VALUES('delete', old.rowid, old.text);
			END`,
			`CREATE TRIGGER citations_au AFTER UPDATE ON citations BEGIN
				INSERT INTO citations_fts(citations_fts, rowid, text) VALUES('delete', old.rowid, old.text);
				INSERT INTO citations_fts(rowid, text) VALUES (new.rowid, new.text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// HasFailures reports whether any files failed.
func (s IngestSummary) HasFailures() bool {
	return s.Failed > 0
}

// Ingest extracts citations from each file and populates the database.
// Files whose modification time is unchanged since the last run are
// skipped; changed files are re-extracted and their old citations
// replaced. Progress lines go to w.
func (s *Store) Ingest(ctx context.Context, ex *cite.Extractor, paths []string, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT mod_time FROM files WHERE path = ?`, path,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", path)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		citations := ex.Extract(string(data))

		if err := s.ingestFile(ctx, path, modTime, info.Size(), citations, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d citations)\n", path, len(citations))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d citations)\n", path, len(citations))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestFile(ctx context.Context, path, modTime string, size int64, citations []types.Citation, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM citations WHERE file_id = (SELECT id FROM files WHERE path = ?)`, path,
		); err != nil {
			return fmt.Errorf("deleting old citations: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO files (path, mod_time, size) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET mod_time=excluded.mod_time, size=excluded.size`,
		path, modTime, size,
	); err != nil {
		return fmt.Errorf("upserting file record: %w", err)
	}

	var fileID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM files WHERE path = ?`, path,
	).Scan(&fileID); err != nil {
		return fmt.Errorf("resolving file id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO citations (file_id, text, start_offset, end_offset, type) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range citations {
		if _, err := stmt.ExecContext(ctx,
			fileID, c.Text, c.Start, c.End, string(c.Type),
		); err != nil {
			return fmt.Errorf("inserting citation at %d: %w", c.Start, err)
		}
	}

	return tx.Commit()
}

// QueryOptions holds parameters for index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over citation text.
	Query string

	// Type filters by citation family.
	Type types.CitationType

	// Path filters by source file.
	Path string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Type == "" && q.Path == ""
}

// QueryResult is a stored citation with its source file path.
type QueryResult struct {
	types.Citation
	Path string `json:"path" yaml:"path"`
}

// Query searches the index with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries sort by path and position.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT c.text, c.start_offset, c.end_offset, c.type, f.path
			FROM citations_fts
			JOIN citations c ON c.rowid = citations_fts.rowid
			JOIN files f ON c.file_id = f.id
			WHERE citations_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT c.text, c.start_offset, c.end_offset, c.type, f.path
			FROM citations c
			JOIN files f ON c.file_id = f.id
			WHERE 1=1`)
	}

	if opts.Type != "" {
		qb.WriteString(` AND c.type = ?`)
		args = append(args, string(opts.Type))
	}

	if opts.Path != "" {
		qb.WriteString(` AND f.path = ?`)
		args = append(args, opts.Path)
	}

	if useFTS {
		qb.WriteString(` ORDER BY citations_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY f.path, c.start_offset`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr      QueryResult
			citType string
		)
		if err := rows.Scan(&qr.Text, &qr.Start, &qr.End, &citType, &qr.Path); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		qr.Type = types.CitationType(citType)
		results = append(results, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return results, nil
}

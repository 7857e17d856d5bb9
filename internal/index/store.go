// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps a searchable SQLite copy of the tutorial library.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mec-library/pkg/types"
)

const (
	dbFile            = "library.db"
	defaultMaxResults = 20
)

// ErrNotFound is returned by Get for an unknown tutorial ID.
var ErrNotFound = errors.New("tutorial not found")

// Store manages the tutorial index database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates indexDir/library.db and its schema.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS tutorials (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			year INTEGER NOT NULL,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			url TEXT,
			thumbnail TEXT,
			status TEXT,
			keywords TEXT NOT NULL,
			year_group INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tutorials_year ON tutorials(year)`,
		`CREATE INDEX IF NOT EXISTS idx_tutorials_status ON tutorials(status)`,
		`CREATE TABLE IF NOT EXISTS library_meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Ingest replaces the indexed tutorials with the contents of lib in a
// single transaction and returns the number of rows written.
func (s *Store) Ingest(ctx context.Context, lib types.Library, w io.Writer) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tutorials`); err != nil {
		return 0, fmt.Errorf("clearing tutorials: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tutorials (id, year, title, authors, url, thumbnail, status, keywords, year_group)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range lib.Tutorials {
		authorsJSON, _ := json.Marshal(t.Authors)
		keywordsJSON, _ := json.Marshal(t.Keywords)

		var status, group any
		if t.Status != types.StatusNone {
			status = string(t.Status)
		}
		if t.YearGroup != nil {
			group = *t.YearGroup
		}

		if _, err := stmt.ExecContext(ctx,
			t.ID, t.Year, t.Title, string(authorsJSON), t.URL, t.Thumbnail,
			status, string(keywordsJSON), group,
		); err != nil {
			return 0, fmt.Errorf("inserting tutorial %s: %w", t.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO library_meta (key, value) VALUES ('last_updated', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		lib.LastUpdated,
	); err != nil {
		return 0, fmt.Errorf("updating library metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing index: %w", err)
	}

	fmt.Fprintf(w, "indexed %d tutorials (library updated %s)\n", len(lib.Tutorials), lib.LastUpdated)
	return len(lib.Tutorials), nil
}

// QueryOptions holds search parameters. Zero values are ignored.
type QueryOptions struct {
	// Query matches title or authors, case-insensitively.
	Query string

	Year int

	// Status is "winner", "finalist", or "regular".
	Status string

	// Keyword filters by an exact keyword label.
	Keyword string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Year == 0 && q.Status == "" && q.Keyword == ""
}

// Search returns tutorials matching opts in extraction order.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]types.Tutorial, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, year, title, authors, url, thumbnail, status, keywords, year_group
		FROM tutorials t WHERE 1=1`)

	if opts.Query != "" {
		like := "%" + strings.ToLower(opts.Query) + "%"
		qb.WriteString(` AND (lower(t.title) LIKE ? OR lower(t.authors) LIKE ?)`)
		args = append(args, like, like)
	}

	if opts.Year != 0 {
		qb.WriteString(` AND t.year = ?`)
		args = append(args, opts.Year)
	}

	if opts.Status != "" {
		st, err := types.ParseStatus(opts.Status)
		if err != nil {
			return nil, err
		}
		if st == types.StatusNone {
			qb.WriteString(` AND t.status IS NULL`)
		} else {
			qb.WriteString(` AND t.status = ?`)
			args = append(args, string(st))
		}
	}

	if opts.Keyword != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(t.keywords) WHERE value = ?)`)
		args = append(args, opts.Keyword)
	}

	qb.WriteString(` ORDER BY t.seq LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	results := []types.Tutorial{}
	for rows.Next() {
		t, err := scanTutorial(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

// Get returns the tutorial with the given ID.
func (s *Store) Get(ctx context.Context, id string) (types.Tutorial, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, year, title, authors, url, thumbnail, status, keywords, year_group
		 FROM tutorials WHERE id = ?`, id)

	t, err := scanTutorial(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Tutorial{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTutorial(sc scanner) (types.Tutorial, error) {
	var (
		t            types.Tutorial
		authorsJSON  string
		keywordsJSON string
		url, thumb   sql.NullString
		status       sql.NullString
		group        sql.NullInt64
	)
	if err := sc.Scan(&t.ID, &t.Year, &t.Title, &authorsJSON, &url, &thumb,
		&status, &keywordsJSON, &group); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scanning row: %w", err)
	}

	t.URL = url.String
	t.Thumbnail = thumb.String
	t.Status = types.Status(status.String)
	if group.Valid {
		g := int(group.Int64)
		t.YearGroup = &g
	}
	if err := json.Unmarshal([]byte(authorsJSON), &t.Authors); err != nil {
		return t, fmt.Errorf("decoding authors for %s: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &t.Keywords); err != nil {
		return t, fmt.Errorf("decoding keywords for %s: %w", t.ID, err)
	}
	return t, nil
}

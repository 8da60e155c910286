// Package storage maintains an ephemeral SQLite query index built from the
// publication snapshot. The snapshot stays the source of truth; the database
// can be deleted and rebuilt at any time.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mlab-site/labpubs/internal/publication"
	"github.com/mlab-site/labpubs/internal/snapshot"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectPubFields contains the standard field list for SELECT queries.
const selectPubFields = `id, type, category, sub_category,
	title, authors, journal,
	volume, issue, pages,
	date_display, year, doi, url`

// minTrigramQuery is the shortest query the trigram tokenizer can match.
const minTrigramQuery = 3

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS pubs (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			sub_category TEXT NOT NULL,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			journal TEXT NOT NULL,
			volume TEXT NOT NULL,
			issue TEXT NOT NULL,
			pages TEXT NOT NULL,
			date_display TEXT NOT NULL,
			year INTEGER NOT NULL,
			doi TEXT,
			url TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_pubs_year ON pubs(year);

		-- Trigram tokens give substring matching, which Japanese titles need.
		CREATE VIRTUAL TABLE IF NOT EXISTS pubs_fts USING fts5(
			id UNINDEXED,
			title,
			authors,
			journal,
			tokenize = 'trigram'
		);
	`
	_, err := db.Exec(schema)
	return err
}

// RebuildFromSnapshot clears the database and reloads it from the snapshot
// at path. A missing snapshot leaves an empty index.
func (d *DB) RebuildFromSnapshot(path string) (int, error) {
	pubs, err := snapshot.Load(path)
	if err != nil {
		return 0, fmt.Errorf("reading snapshot: %w", err)
	}
	if err := d.Replace(pubs); err != nil {
		return 0, err
	}
	return len(pubs), nil
}

// Replace swaps the indexed collection for pubs in one transaction.
func (d *DB) Replace(pubs []publication.Publication) (err error) {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM pubs"); err != nil {
		return fmt.Errorf("clearing pubs table: %w", err)
	}
	if _, err = tx.Exec("DELETE FROM pubs_fts"); err != nil {
		return fmt.Errorf("clearing pubs_fts table: %w", err)
	}

	pubsStmt, err := tx.Prepare(`
		INSERT INTO pubs (
			id, position, type, category, sub_category,
			title, authors, journal,
			volume, issue, pages,
			date_display, year, doi, url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing pubs insert: %w", err)
	}
	defer pubsStmt.Close()

	ftsStmt, err := tx.Prepare(`INSERT INTO pubs_fts (id, title, authors, journal) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, p := range pubs {
		_, err = pubsStmt.Exec(
			p.ID, i, p.Type, string(p.Category), string(p.SubCategory),
			p.Title, p.Authors, p.Journal,
			p.Volume, p.Issue, p.Pages,
			p.DateDisplay, p.Year, nullableString(p.DOI), nullableString(p.URL),
		)
		if err != nil {
			return fmt.Errorf("inserting publication %s: %w", p.ID, err)
		}
		if _, err = ftsStmt.Exec(p.ID, p.Title, p.Authors, p.Journal); err != nil {
			return fmt.Errorf("inserting fts for %s: %w", p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// GetByID retrieves a publication by its ID. Returns nil if not found.
func (d *DB) GetByID(id string) (*publication.Publication, error) {
	row := d.db.QueryRow(`SELECT `+selectPubFields+` FROM pubs WHERE id = ?`, id)
	return scanPublication(row)
}

// SearchFilters contains optional filters for Search. All set filters must
// match.
type SearchFilters struct {
	Keyword     string // substring of title, authors or journal
	YearFrom    int    // 0 = no minimum
	YearTo      int    // 0 = no maximum
	Category    publication.Category
	SubCategory publication.SubCategory
}

// Search returns publications matching filters in snapshot order.
func (d *DB) Search(filters SearchFilters, limit int) ([]publication.Publication, error) {
	query := `SELECT ` + selectPubFields + ` FROM pubs WHERE 1=1`
	var args []any

	if kw := strings.TrimSpace(filters.Keyword); kw != "" {
		if len([]rune(kw)) >= minTrigramQuery {
			query += ` AND id IN (SELECT id FROM pubs_fts WHERE pubs_fts MATCH ?)`
			args = append(args, prepareFTSQuery(kw))
		} else {
			// Too short for trigrams; fall back to a scan.
			query += ` AND (title LIKE ? ESCAPE '\' OR authors LIKE ? ESCAPE '\' OR journal LIKE ? ESCAPE '\')`
			like := "%" + escapeLike(kw) + "%"
			args = append(args, like, like, like)
		}
	}
	if filters.YearFrom > 0 {
		query += " AND year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		query += " AND year <= ?"
		args = append(args, filters.YearTo)
	}
	if filters.Category != "" {
		query += " AND category = ?"
		args = append(args, string(filters.Category))
	}
	if filters.SubCategory != "" {
		query += " AND sub_category = ?"
		args = append(args, string(filters.SubCategory))
	}

	query += " ORDER BY position"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanPublications(rows)
}

// ListAll returns all publications in snapshot order, optionally limited.
func (d *DB) ListAll(limit int) ([]publication.Publication, error) {
	return d.Search(SearchFilters{}, limit)
}

// Count returns the total number of publications.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM pubs").Scan(&count)
	return count, err
}

// YearCount is the number of publications in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CountByYear returns publication counts per year, newest first.
func (d *DB) CountByYear() ([]YearCount, error) {
	rows, err := d.db.Query(`SELECT year, COUNT(*) FROM pubs GROUP BY year ORDER BY year DESC`)
	if err != nil {
		return nil, fmt.Errorf("counting by year: %w", err)
	}
	defer rows.Close()

	counts := []YearCount{}
	for rows.Next() {
		var yc YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, yc)
	}
	return counts, rows.Err()
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanPublication(s scanner) (*publication.Publication, error) {
	var p publication.Publication
	var category, subCategory string
	var doi, url sql.NullString

	err := s.Scan(
		&p.ID, &p.Type, &category, &subCategory,
		&p.Title, &p.Authors, &p.Journal,
		&p.Volume, &p.Issue, &p.Pages,
		&p.DateDisplay, &p.Year, &doi, &url,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	p.Category = publication.Category(category)
	p.SubCategory = publication.SubCategory(subCategory)
	p.DOI = doi.String
	p.URL = url.String
	return &p, nil
}

func scanPublications(rows *sql.Rows) ([]publication.Publication, error) {
	pubs := []publication.Publication{}
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, *p)
	}
	return pubs, rows.Err()
}

// prepareFTSQuery quotes the query as a single phrase so that punctuation in
// titles is matched literally.
func prepareFTSQuery(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

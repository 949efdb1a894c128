// Package store persists harvested paper records in a SQLite database
// so reference lists can be regenerated without re-fetching.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"paperdeck/internal/reference"
)

// DBFile is the database file name inside a harvest output directory.
const DBFile = "papers.db"

const schema = `CREATE TABLE IF NOT EXISTS papers (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  authors TEXT NOT NULL,
  venue_raw TEXT,
  venue TEXT,
  year INTEGER,
  pages TEXT,
  abstract TEXT,
  bibtex TEXT,
  pdf_path TEXT,
  number INTEGER,
  cdate INTEGER,
  harvested_at TEXT NOT NULL
)`

// Store wraps the papers database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the papers database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts or updates a record. The conflict clause updates in
// place so rowid, and with it encounter order, survives re-harvests.
func (s *Store) Upsert(rec reference.Record) error {
	authors, err := json.Marshal(rec.Authors)
	if err != nil {
		return fmt.Errorf("encoding authors: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO papers
  (id, title, authors, venue_raw, venue, year, pages, abstract, bibtex, pdf_path, number, cdate, harvested_at)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
  ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    authors = excluded.authors,
    venue_raw = excluded.venue_raw,
    venue = excluded.venue,
    year = excluded.year,
    pages = excluded.pages,
    abstract = excluded.abstract,
    bibtex = excluded.bibtex,
    pdf_path = excluded.pdf_path,
    number = excluded.number,
    cdate = excluded.cdate,
    harvested_at = excluded.harvested_at`,
		rec.ID, rec.Title, string(authors), rec.VenueRaw, rec.Venue, rec.Year,
		rec.Pages, rec.Abstract, rec.BibTeX, rec.PDFPath, rec.Number, rec.CDate,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting paper %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the record with the given id, or nil if absent.
func (s *Store) Get(id string) (*reference.Record, error) {
	row := s.db.QueryRow(`SELECT id, title, authors, venue_raw, venue, year, pages, abstract, bibtex, pdf_path, number, cdate
  FROM papers WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting paper %s: %w", id, err)
	}
	return &rec, nil
}

// ListAll returns every record in first-harvest (encounter) order.
func (s *Store) ListAll() ([]reference.Record, error) {
	rows, err := s.db.Query(`SELECT id, title, authors, venue_raw, venue, year, pages, abstract, bibtex, pdf_path, number, cdate
  FROM papers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	var recs []reference.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Count returns the number of stored papers.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM papers`).Scan(&n)
	return n, err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (reference.Record, error) {
	var rec reference.Record
	var authors string
	var venueRaw, venue, pages, abstract, bibtex, pdfPath sql.NullString
	var year, number sql.NullInt64
	var cdate sql.NullInt64

	err := sc.Scan(&rec.ID, &rec.Title, &authors, &venueRaw, &venue, &year,
		&pages, &abstract, &bibtex, &pdfPath, &number, &cdate)
	if err != nil {
		return rec, err
	}

	if err := json.Unmarshal([]byte(authors), &rec.Authors); err != nil {
		return rec, fmt.Errorf("decoding authors: %w", err)
	}
	rec.VenueRaw = venueRaw.String
	rec.Venue = venue.String
	rec.Year = int(year.Int64)
	rec.Pages = pages.String
	rec.Abstract = abstract.String
	rec.BibTeX = bibtex.String
	rec.PDFPath = pdfPath.String
	rec.Number = int(number.Int64)
	rec.CDate = cdate.Int64
	return rec, nil
}

package ledger

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/askohli/boardscout/internal/model"
)

// SQLiteLedger persists records in a SQLite database, keyed by link.
// found_at is stored as text in the ledger's timestamp layout so rows stay
// greppable alongside the CSV variant.
type SQLiteLedger struct {
	db *sql.DB
}

// NewSQLiteLedger opens (or creates) a SQLite database at dbPath and
// ensures the postings table exists.
func NewSQLiteLedger(dbPath string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite ledger: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite ledger: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS postings (
		link              TEXT PRIMARY KEY,
		company           TEXT NOT NULL,
		role_matched      TEXT NOT NULL,
		location_searched TEXT NOT NULL,
		found_at          TEXT NOT NULL,
		title             TEXT NOT NULL,
		snippet           TEXT NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating postings table: %w", err)
	}

	return &SQLiteLedger{db: db}, nil
}

// Load returns the set of links already recorded.
func (l *SQLiteLedger) Load() (map[string]struct{}, error) {
	links := make(map[string]struct{})

	rows, err := l.db.Query("SELECT link FROM postings")
	if err != nil {
		return links, fmt.Errorf("loading ledger links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return links, fmt.Errorf("scanning ledger link: %w", err)
		}
		links[link] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return links, fmt.Errorf("loading ledger links: %w", err)
	}
	return links, nil
}

// Records returns every stored record, oldest first.
func (l *SQLiteLedger) Records() ([]model.JobRecord, error) {
	rows, err := l.db.Query(`SELECT link, company, role_matched, location_searched, found_at, title, snippet
		FROM postings ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("reading ledger records: %w", err)
	}
	defer rows.Close()

	var records []model.JobRecord
	for rows.Next() {
		var rec model.JobRecord
		var foundAt string
		if err := rows.Scan(&rec.Link, &rec.Company, &rec.RoleMatched, &rec.LocationSearched, &foundAt, &rec.Title, &rec.Snippet); err != nil {
			return nil, fmt.Errorf("scanning ledger record: %w", err)
		}
		if t, err := time.Parse(model.TimestampLayout, foundAt); err == nil {
			rec.FoundAt = t
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger records: %w", err)
	}
	return records, nil
}

// Append inserts the records in one transaction. Links already present
// are left untouched, so the first recorded row for a link always wins.
// An empty record list is a no-op.
func (l *SQLiteLedger) Append(records []model.JobRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("appending to ledger: %w", err)
	}
	for _, rec := range records {
		_, err := tx.Exec(
			`INSERT OR IGNORE INTO postings (link, company, role_matched, location_searched, found_at, title, snippet)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.Link, rec.Company, rec.RoleMatched, rec.LocationSearched,
			rec.FoundAt.Format(model.TimestampLayout), rec.Title, rec.Snippet,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("appending record for %s: %w", rec.Link, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("appending to ledger: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/askohli/boardscout/internal/model"
)

// csvHeader is the ledger's column order. Files written before the title
// and snippet columns existed are still readable; short rows are padded
// with the no-data sentinel on read.
var csvHeader = []string{"link", "company", "role_matched", "location_searched", "found_at", "title", "snippet"}

// CSVLedger persists records as an append-only CSV file. The file is
// created with a header row on first append and only ever extended after
// that; this pipeline never rewrites or compacts it.
type CSVLedger struct {
	path string
}

// NewCSVLedger creates a ledger backed by the CSV file at path. The file
// itself is created lazily on the first append.
func NewCSVLedger(path string) *CSVLedger {
	return &CSVLedger{path: path}
}

// Load returns the set of links already recorded. A ledger file that does
// not exist yet yields an empty set. Unparseable rows are skipped.
func (l *CSVLedger) Load() (map[string]struct{}, error) {
	links := make(map[string]struct{})

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return links, nil
		}
		return links, fmt.Errorf("open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	for _, row := range readRows(f) {
		links[row[0]] = struct{}{}
	}
	return links, nil
}

// Records returns every stored record, oldest first.
func (l *CSVLedger) Records() ([]model.JobRecord, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger %s: %w", l.path, err)
	}
	defer f.Close()

	var records []model.JobRecord
	for _, row := range readRows(f) {
		records = append(records, rowToRecord(row))
	}
	return records, nil
}

// Append extends the ledger with the given records, writing the header
// first if the file does not exist yet. An empty record list is a no-op
// that performs no I/O.
func (l *CSVLedger) Append(records []model.JobRecord) error {
	if len(records) == 0 {
		return nil
	}

	_, statErr := os.Stat(l.path)
	exists := statErr == nil

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", l.path, err)
	}

	w := csv.NewWriter(f)
	if !exists {
		if err := w.Write(csvHeader); err != nil {
			f.Close()
			return fmt.Errorf("write ledger header: %w", err)
		}
	}
	for _, rec := range records {
		row := []string{
			rec.Link,
			rec.Company,
			rec.RoleMatched,
			rec.LocationSearched,
			rec.FoundAt.Format(model.TimestampLayout),
			rec.Title,
			rec.Snippet,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write ledger row for %s: %w", rec.Link, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}
	return nil
}

// readRows yields the data rows of a ledger file: the header row, rows
// missing the core columns, and rows that fail to parse are all dropped.
func readRows(r io.Reader) [][]string {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		if len(row) < 5 || row[0] == "" || row[0] == "link" {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func rowToRecord(row []string) model.JobRecord {
	rec := model.JobRecord{
		Link:             row[0],
		Company:          row[1],
		RoleMatched:      row[2],
		LocationSearched: row[3],
		Title:            model.NoData,
		Snippet:          model.NoData,
	}
	if t, err := time.Parse(model.TimestampLayout, row[4]); err == nil {
		rec.FoundAt = t
	}
	if len(row) > 5 && row[5] != "" {
		rec.Title = row[5]
	}
	if len(row) > 6 && row[6] != "" {
		rec.Snippet = row[6]
	}
	return rec
}

package ledger

import (
	"path/filepath"
	"testing"

	"github.com/askohli/boardscout/internal/model"
)

func newTestLedger(t *testing.T) *SQLiteLedger {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	l, err := NewSQLiteLedger(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteLedger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestSQLiteLedger_AppendThenLoad(t *testing.T) {
	l := newTestLedger(t)

	recs := []model.JobRecord{
		record("https://job-boards.greenhouse.io/acme/jobs/1"),
		record("https://job-boards.greenhouse.io/acme/jobs/2"),
	}
	if err := l.Append(recs); err != nil {
		t.Fatalf("Append: %v", err)
	}

	links, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("Load returned %d links, want 2", len(links))
	}
	for _, rec := range recs {
		if _, ok := links[rec.Link]; !ok {
			t.Errorf("Load is missing appended link %s", rec.Link)
		}
	}
}

func TestSQLiteLedger_EmptyLoad(t *testing.T) {
	l := newTestLedger(t)

	links, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("fresh ledger Load returned %d links", len(links))
	}
}

func TestSQLiteLedger_AppendDuplicateLinkKeepsFirst(t *testing.T) {
	l := newTestLedger(t)

	first := record("https://job-boards.greenhouse.io/acme/jobs/1")
	first.RoleMatched = "data scientist"
	if err := l.Append([]model.JobRecord{first}); err != nil {
		t.Fatalf("first Append: %v", err)
	}

	second := record("https://job-boards.greenhouse.io/acme/jobs/1")
	second.RoleMatched = "data analyst"
	if err := l.Append([]model.JobRecord{second}); err != nil {
		t.Fatalf("second Append: %v", err)
	}

	records, err := l.Records()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Records returned %d entries, want 1", len(records))
	}
	if records[0].RoleMatched != "data scientist" {
		t.Errorf("RoleMatched = %q, want the first recorded value", records[0].RoleMatched)
	}
}

func TestSQLiteLedger_RecordsOldestFirst(t *testing.T) {
	l := newTestLedger(t)

	if err := l.Append([]model.JobRecord{
		record("https://job-boards.greenhouse.io/acme/jobs/1"),
		record("https://job-boards.greenhouse.io/acme/jobs/2"),
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := l.Append([]model.JobRecord{
		record("https://job-boards.greenhouse.io/acme/jobs/3"),
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := l.Records()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Records returned %d entries, want 3", len(records))
	}
	if records[0].Link != "https://job-boards.greenhouse.io/acme/jobs/1" ||
		records[2].Link != "https://job-boards.greenhouse.io/acme/jobs/3" {
		t.Errorf("records out of insertion order: %v, %v", records[0].Link, records[2].Link)
	}
}

func TestSQLiteLedger_FoundAtRoundTrip(t *testing.T) {
	l := newTestLedger(t)

	in := record("https://job-boards.greenhouse.io/acme/jobs/1")
	if err := l.Append([]model.JobRecord{in}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := l.Records()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if !records[0].FoundAt.Equal(in.FoundAt) {
		t.Errorf("FoundAt = %v, want %v", records[0].FoundAt, in.FoundAt)
	}
}

func TestReadOnly_DiscardsAppends(t *testing.T) {
	inner := NewCSVLedger(filepath.Join(t.TempDir(), "links.csv"))
	if err := inner.Append([]model.JobRecord{record("https://job-boards.greenhouse.io/acme/jobs/1")}); err != nil {
		t.Fatalf("seeding inner ledger: %v", err)
	}

	ro := NewReadOnly(inner)
	if err := ro.Append([]model.JobRecord{record("https://job-boards.greenhouse.io/acme/jobs/2")}); err != nil {
		t.Fatalf("read-only Append: %v", err)
	}

	links, err := ro.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(links) != 1 {
		t.Errorf("Load returned %d links, want only the seeded one", len(links))
	}
	if _, ok := links["https://job-boards.greenhouse.io/acme/jobs/2"]; ok {
		t.Error("read-only wrapper persisted an append")
	}
}

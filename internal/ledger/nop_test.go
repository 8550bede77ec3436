package ledger

import (
	"testing"

	"github.com/askohli/boardscout/internal/model"
)

func TestNopLedger_EmptyAndDiscarding(t *testing.T) {
	l := NewNopLedger()

	links, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("Load returned %d links, want 0", len(links))
	}

	if err := l.Append([]model.JobRecord{record("https://job-boards.greenhouse.io/acme/jobs/1")}); err != nil {
		t.Errorf("Append = %v, want nil", err)
	}

	// Appends are discarded: both views stay empty.
	links, _ = l.Load()
	if len(links) != 0 {
		t.Errorf("Load after Append returned %d links, want 0", len(links))
	}
	records, err := l.Records()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Records = %v, want empty", records)
	}
}

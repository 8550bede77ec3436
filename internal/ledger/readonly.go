package ledger

import "github.com/askohli/boardscout/internal/model"

// ReadOnly wraps a ledger so reads pass through and appends are silently
// discarded. Dry runs dedupe against real history without writing any of
// it back.
type ReadOnly struct {
	inner model.Ledger
}

func NewReadOnly(inner model.Ledger) *ReadOnly {
	return &ReadOnly{inner: inner}
}

func (l *ReadOnly) Load() (map[string]struct{}, error)     { return l.inner.Load() }
func (l *ReadOnly) Append(records []model.JobRecord) error { return nil }
func (l *ReadOnly) Records() ([]model.JobRecord, error)    { return l.inner.Records() }

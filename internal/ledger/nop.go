package ledger

import "github.com/askohli/boardscout/internal/model"

// NopLedger reports no prior records and discards appends.
type NopLedger struct{}

func NewNopLedger() *NopLedger { return &NopLedger{} }

func (l *NopLedger) Load() (map[string]struct{}, error)     { return map[string]struct{}{}, nil }
func (l *NopLedger) Append(records []model.JobRecord) error { return nil }
func (l *NopLedger) Records() ([]model.JobRecord, error)    { return nil, nil }

package model

import (
	"context"
	"time"
)

// TimestampLayout is how FoundAt is rendered everywhere a record is
// serialized (ledger rows, notifications, the review TUI).
const TimestampLayout = "2006-01-02 15:04:05"

// Sentinel values for fields that could not be given a real value.
// Records always carry all seven columns, so absence is spelled out
// rather than left as an empty string.
const (
	UnknownCompany = "unknown"
	UnknownRole    = "unknown"
	NoData         = "n/a"
)

// JobRecord is one discovered posting, shaped for the ledger.
type JobRecord struct {
	Link             string    // canonical posting URL, dedup key
	Company          string    // company slug extracted from the URL path
	RoleMatched      string    // role term the posting matched, or UnknownRole
	LocationSearched string    // location term of the originating query
	FoundAt          time.Time // our clock (set at discovery)
	Title            string    // search result title, or NoData
	Snippet          string    // search result snippet, or NoData
}

// QueryKind distinguishes how a query was produced.
type QueryKind string

const (
	QueryCrossProduct QueryKind = "cross_product" // role x location combination
	QueryPattern      QueryKind = "pattern"       // verbatim configured query
)

// Query is one search to run against a backend.
type Query struct {
	Kind     QueryKind
	Role     string // target role, empty for pattern queries
	Location string // location searched (patterns carry the broad sentinel)
	Text     string // full query string sent to the backend
}

// RawResult is one hyperlink surfaced by a search, before any filtering.
type RawResult struct {
	Link    string
	Title   string // result title, empty if the source has none
	Snippet string // result snippet, empty if the source has none
}

// SearchBackend runs one query against a web search engine.
type SearchBackend interface {
	Search(ctx context.Context, query Query) ([]RawResult, error)
}

// PageFetcher retrieves the visible text of a page, lower-cased.
// Used for best-effort role inference and recency checks.
type PageFetcher interface {
	PageText(ctx context.Context, url string) (string, error)
}

// BoardFetcher lists the hyperlinks present on a single board page.
type BoardFetcher interface {
	Links(ctx context.Context, url string) ([]RawResult, error)
}

// Ledger is the durable record of every posting ever discovered.
type Ledger interface {
	// Load returns the set of links already recorded, keyed by URL.
	Load() (map[string]struct{}, error)
	// Append adds records to the ledger without touching existing rows.
	Append(records []JobRecord) error
	// Records returns every stored record, oldest first.
	Records() ([]JobRecord, error)
}

// Notifier reports newly discovered postings.
type Notifier interface {
	Notify(records []JobRecord) error
}

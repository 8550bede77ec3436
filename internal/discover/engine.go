package discover

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/askohli/boardscout/internal/extract"
	"github.com/askohli/boardscout/internal/model"
	"github.com/askohli/boardscout/internal/planner"
)

// Summary is what one discovery run produced.
type Summary struct {
	Queries    int            // queries issued (including failed ones)
	Discovered int            // raw candidates after normalization
	Unique     int            // candidates after intra-run dedupe
	New        int            // records appended to the ledger
	ByRole     map[string]int // appended record count per matched role
}

// Engine owns the full discovery pipeline for one run:
// plan → search → normalize → dedupe → append → notify.
type Engine struct {
	planner    *planner.Planner
	backend    model.SearchBackend
	boards     model.BoardFetcher // nil unless direct-scrape mode is wired
	normalizer *extract.Normalizer
	recency    *extract.RecencyCheck // nil disables the freshness check
	ledger     model.Ledger
	notifier   model.Notifier
	broadLoc   string // location recorded for board-mode records
	logger     *slog.Logger
}

// NewEngine creates an engine wired with all its dependencies. boards and
// recency may be nil when direct-scrape mode or the freshness heuristic is
// not in use.
func NewEngine(
	p *planner.Planner,
	backend model.SearchBackend,
	boards model.BoardFetcher,
	normalizer *extract.Normalizer,
	recency *extract.RecencyCheck,
	ledger model.Ledger,
	notifier model.Notifier,
	broadLoc string,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		planner:    p,
		backend:    backend,
		boards:     boards,
		normalizer: normalizer,
		recency:    recency,
		ledger:     ledger,
		notifier:   notifier,
		broadLoc:   broadLoc,
		logger:     logger,
	}
}

// Run executes one discovery run. A failed query contributes zero results
// and the run continues; the only error returned is a failure to persist.
// On context cancellation the remaining queries are skipped and whatever
// was already discovered is still deduped and appended.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	existing := e.loadExisting()
	queries := e.planner.Plan()
	foundAt := time.Now()

	var candidates []model.JobRecord
	for i, q := range queries {
		if ctx.Err() != nil {
			e.logger.Warn("run interrupted, persisting partial results", "remaining_queries", len(queries)-i)
			break
		}

		results, err := e.backend.Search(ctx, q)
		if err != nil {
			e.logger.Error("search failed, skipping query", "query", q.Text, "error", err)
			continue
		}

		kept := 0
		for _, raw := range results {
			rec, ok := e.normalizer.Normalize(ctx, raw, extract.QueryContext{Query: q, FoundAt: foundAt})
			if !ok {
				continue
			}
			candidates = append(candidates, rec)
			kept++
		}
		e.logger.Debug("query done", "query", q.Text, "results", len(results), "postings", kept)
	}

	summary, err := e.finish(ctx, candidates, existing)
	summary.Queries = len(queries)
	return summary, err
}

// RunBoard executes direct-scrape mode against a single board page. Unlike
// search mode, a failed fetch here is the whole run and is returned as an
// error rather than absorbed.
func (e *Engine) RunBoard(ctx context.Context, boardURL string) (Summary, error) {
	if e.boards == nil {
		return Summary{}, fmt.Errorf("direct scrape of %s: no board fetcher configured", boardURL)
	}

	existing := e.loadExisting()
	results, err := e.boards.Links(ctx, boardURL)
	if err != nil {
		return Summary{Queries: 1}, fmt.Errorf("direct scrape of %s: %w", boardURL, err)
	}

	// Board hits carry no originating search, so they are normalized under
	// a synthetic pattern query and role inference does the rest.
	q := model.Query{Kind: model.QueryPattern, Location: e.broadLoc}
	foundAt := time.Now()

	var candidates []model.JobRecord
	for _, raw := range results {
		rec, ok := e.normalizer.Normalize(ctx, raw, extract.QueryContext{Query: q, FoundAt: foundAt})
		if !ok {
			continue
		}
		candidates = append(candidates, rec)
	}
	e.logger.Debug("board scraped", "url", boardURL, "links", len(results), "postings", len(candidates))

	summary, err := e.finish(ctx, candidates, existing)
	summary.Queries = 1
	return summary, err
}

// loadExisting reads the ledger's link set. A read failure degrades to an
// empty set: the run proceeds as if it were the first, at the accepted cost
// of possibly reintroducing old records.
func (e *Engine) loadExisting() map[string]struct{} {
	existing, err := e.ledger.Load()
	if err != nil {
		e.logger.Warn("ledger unreadable, treating as first run", "error", err)
		return map[string]struct{}{}
	}
	return existing
}

// finish runs the shared dedupe → append → notify tail.
func (e *Engine) finish(ctx context.Context, candidates []model.JobRecord, existing map[string]struct{}) (Summary, error) {
	unique := Dedupe(candidates, map[string]struct{}{})
	novel := Dedupe(candidates, existing)

	if e.recency != nil {
		novel = e.filterRecent(ctx, novel)
	}

	summary := Summary{
		Discovered: len(candidates),
		Unique:     len(unique),
		New:        len(novel),
		ByRole:     make(map[string]int),
	}
	for _, rec := range novel {
		summary.ByRole[rec.RoleMatched]++
	}

	if err := e.ledger.Append(novel); err != nil {
		return summary, fmt.Errorf("persisting %d new records: %w", len(novel), err)
	}

	if len(novel) > 0 {
		if err := e.notifier.Notify(novel); err != nil {
			// The records are already persisted; a notification failure
			// must not fail the run.
			e.logger.Error("notification failed", "records", len(novel), "error", err)
		}
	}

	e.logger.Info("run complete",
		"discovered", summary.Discovered,
		"unique", summary.Unique,
		"new", summary.New,
	)
	return summary, nil
}

func (e *Engine) filterRecent(ctx context.Context, records []model.JobRecord) []model.JobRecord {
	var recent []model.JobRecord
	for _, rec := range records {
		if !e.recency.LikelyRecent(ctx, rec.Link) {
			e.logger.Debug("dropping stale posting", "link", rec.Link)
			continue
		}
		recent = append(recent, rec)
	}
	return recent
}

package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/askohli/boardscout/internal/model"
)

// QueryPacer enforces a minimum delay between consecutive requests to the
// same search engine, keyed by engine name.
type QueryPacer struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: engine name
	minDelay time.Duration
}

// NewQueryPacer creates a pacer that enforces minDelay between consecutive
// requests to the same engine.
func NewQueryPacer(minDelay time.Duration) *QueryPacer {
	return &QueryPacer{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last request to the
// given engine. Returns an error if the context is cancelled while waiting.
func (p *QueryPacer) Wait(ctx context.Context, engine string) error {
	p.mu.Lock()
	last, ok := p.lastCall[engine]
	now := time.Now()

	if !ok {
		// First request for this engine — no wait needed.
		p.lastCall[engine] = now
		p.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= p.minDelay {
		// Enough time has passed — proceed immediately.
		p.lastCall[engine] = now
		p.mu.Unlock()
		return nil
	}

	// Need to wait for the remainder.
	remaining := p.minDelay - elapsed
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("pacer wait for %s: %w", engine, ctx.Err())
	case <-time.After(remaining):
	}

	// Record the actual time after waiting.
	p.mu.Lock()
	p.lastCall[engine] = time.Now()
	p.mu.Unlock()

	return nil
}

// PacedBackend is a decorator that enforces the polite inter-query delay
// before delegating to the wrapped SearchBackend.
type PacedBackend struct {
	inner  model.SearchBackend
	pacer  *QueryPacer
	engine string // which engine this backend targets
}

// NewPacedBackend wraps a SearchBackend with query pacing. All backends
// targeting the same engine should share the same pacer instance.
func NewPacedBackend(inner model.SearchBackend, pacer *QueryPacer, engine string) *PacedBackend {
	return &PacedBackend{
		inner:  inner,
		pacer:  pacer,
		engine: engine,
	}
}

// Search waits for the pacer to allow a request, then delegates to the
// wrapped backend.
func (b *PacedBackend) Search(ctx context.Context, query model.Query) ([]model.RawResult, error) {
	if err := b.pacer.Wait(ctx, b.engine); err != nil {
		return nil, err
	}
	return b.inner.Search(ctx, query)
}

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/askohli/boardscout/internal/model"
)

func TestWait_SameEngine_EnforcesMinDelay(t *testing.T) {
	pacer := NewQueryPacer(100 * time.Millisecond)
	ctx := context.Background()

	// First call should return immediately.
	if err := pacer.Wait(ctx, "duckduckgo"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := pacer.Wait(ctx, "duckduckgo"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)

	// Should have waited at least ~100ms (allow 80ms for timer jitter).
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait, got %v", elapsed)
	}
}

func TestWait_DifferentEngines_NoCrossBlocking(t *testing.T) {
	pacer := NewQueryPacer(200 * time.Millisecond)
	ctx := context.Background()

	if err := pacer.Wait(ctx, "duckduckgo"); err != nil {
		t.Fatalf("duckduckgo wait: %v", err)
	}

	// Immediately call for serpapi — should NOT block.
	start := time.Now()
	if err := pacer.Wait(ctx, "serpapi"); err != nil {
		t.Fatalf("serpapi wait: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed > 50*time.Millisecond {
		t.Errorf("expected serpapi wait to be near-instant, got %v", elapsed)
	}
}

func TestWait_ContextCancellation(t *testing.T) {
	pacer := NewQueryPacer(5 * time.Second) // long delay
	ctx := context.Background()

	// First call to seed the last-call time.
	if err := pacer.Wait(ctx, "duckduckgo"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	// Cancel the context before the wait completes.
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	err := pacer.Wait(ctx, "duckduckgo")
	if err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
}

// --- Mock for PacedBackend test ---

type recordingBackend struct {
	called bool
}

func (b *recordingBackend) Search(_ context.Context, _ model.Query) ([]model.RawResult, error) {
	b.called = true
	return nil, nil
}

func TestPacedBackend_WaitsBeforeDelegating(t *testing.T) {
	pacer := NewQueryPacer(100 * time.Millisecond)
	inner := &recordingBackend{}
	backend := NewPacedBackend(inner, pacer, "duckduckgo")
	ctx := context.Background()

	// First call — seeds pacer, then delegates.
	if _, err := backend.Search(ctx, model.Query{Text: "first"}); err != nil {
		t.Fatalf("first search: %v", err)
	}
	if !inner.called {
		t.Fatal("inner backend was not called on first search")
	}

	// Reset.
	inner.called = false

	// Second call — should wait for the pacer.
	start := time.Now()
	if _, err := backend.Search(ctx, model.Query{Text: "second"}); err != nil {
		t.Fatalf("second search: %v", err)
	}
	elapsed := time.Since(start)

	if !inner.called {
		t.Fatal("inner backend was not called on second search")
	}
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait on second search, got %v", elapsed)
	}
}

package search

import (
	"net/http"
	"testing"
	"time"
)

func TestParseRetryAfter_DeltaSeconds(t *testing.T) {
	if got := parseRetryAfter("120"); got != 120*time.Second {
		t.Errorf("parseRetryAfter(120) = %v, want 2m", got)
	}
	if got := parseRetryAfter("0"); got != 0 {
		t.Errorf("parseRetryAfter(0) = %v, want 0", got)
	}
	if got := parseRetryAfter("-5"); got != 0 {
		t.Errorf("parseRetryAfter(-5) = %v, want 0", got)
	}
}

func TestParseRetryAfter_HTTPDate(t *testing.T) {
	future := time.Now().Add(90 * time.Second).UTC().Format(http.TimeFormat)
	got := parseRetryAfter(future)
	// http.TimeFormat has second precision, so allow slack on both ends.
	if got < 80*time.Second || got > 91*time.Second {
		t.Errorf("parseRetryAfter(%q) = %v, want ~90s", future, got)
	}

	past := time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(past); got != 0 {
		t.Errorf("parseRetryAfter(past date) = %v, want 0", got)
	}
}

func TestParseRetryAfter_Unparseable(t *testing.T) {
	for _, value := range []string{"", "soon", "12.5"} {
		if got := parseRetryAfter(value); got != 0 {
			t.Errorf("parseRetryAfter(%q) = %v, want 0", value, got)
		}
	}
}

package search

import (
	"net/http"
	"strconv"
	"time"
)

// parseRetryAfter parses a Retry-After header value into a duration.
// Both forms are accepted: delta-seconds (e.g. "120") and an HTTP-date,
// which is converted to the time remaining until it. Absent, unparseable,
// or already-elapsed values yield zero.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(value); err == nil {
		if d := time.Until(when); d > 0 {
			return d
		}
	}
	return 0
}

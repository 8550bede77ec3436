package extract

import (
	"context"
	"strings"

	"github.com/askohli/boardscout/internal/model"
)

// Phrases that mark a posting page as clearly fresh.
var recentIndicators = []string{
	"posted today", "posted 1 hour", "posted 2 hour",
	"new posting", "just posted", "1 hr ago", "2 hrs ago",
}

// RecencyCheck is a best-effort freshness signal over posting pages.
// It is deliberately permissive: a page with no indicator still counts
// as recent, and only a failed fetch counts against a posting. Stricter
// semantics would need posting metadata the platform does not expose
// through these pages.
type RecencyCheck struct {
	pages model.PageFetcher
}

// NewRecencyCheck builds the check on top of a page fetcher.
func NewRecencyCheck(pages model.PageFetcher) *RecencyCheck {
	return &RecencyCheck{pages: pages}
}

// LikelyRecent reports whether the posting at url looks fresh.
func (c *RecencyCheck) LikelyRecent(ctx context.Context, url string) bool {
	body, err := c.pages.PageText(ctx, url)
	if err != nil {
		return false
	}
	for _, indicator := range recentIndicators {
		if strings.Contains(body, indicator) {
			return true
		}
	}
	return true
}

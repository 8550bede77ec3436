package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/askohli/boardscout/internal/model"
)

// PageClient fetches posting pages and reduces them to scannable text.
// It backs role inference and the recency heuristic, both of which only
// need case-folded substring checks.
type PageClient struct {
	userAgent string
	client    *http.Client
}

// NewPageClient creates a page fetcher.
func NewPageClient(userAgent string, client *http.Client) *PageClient {
	return &PageClient{
		userAgent: userAgent,
		client:    client,
	}
}

// PageText returns the visible text of the page at url, lower-cased.
func (p *PageClient) PageText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch page %s: %w", url, err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("fetch page %s: unexpected status %d", url, resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page %s: %w", url, err)
	}

	doc.Find("script, style, noscript").Remove()
	return strings.ToLower(doc.Text()), nil
}

package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/askohli/boardscout/internal/model"
)

// BoardClient scrapes a single board page directly, bypassing search.
// Every hyperlink on the page is returned; the normalizer decides which
// ones are postings.
type BoardClient struct {
	userAgent string
	client    *http.Client
}

// NewBoardClient creates a board page scraper.
func NewBoardClient(userAgent string, client *http.Client) *BoardClient {
	return &BoardClient{
		userAgent: userAgent,
		client:    client,
	}
}

// Links returns every hyperlink on the board page at pageURL, resolved
// to absolute form.
func (b *BoardClient) Links(ctx context.Context, pageURL string) ([]model.RawResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch board %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", b.userAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch board %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("fetch board %s: unexpected status %d", pageURL, resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse board %s: %w", pageURL, err)
	}

	base := resp.Request.URL
	var results []model.RawResult
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		u, err := base.Parse(href)
		if err != nil {
			return
		}
		results = append(results, model.RawResult{
			Link:  u.String(),
			Title: strings.TrimSpace(s.Text()),
		})
	})

	return results, nil
}

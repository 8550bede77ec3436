package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/askohli/boardscout/internal/model"
)

const duckduckgoBaseURL = "https://html.duckduckgo.com/html/"

// DuckDuckGo is the HTML-scrape search backend. It fetches the plain-HTML
// results page and yields every hyperlink on it; filtering down to actual
// postings is the normalizer's job.
type DuckDuckGo struct {
	userAgent string
	client    *http.Client
}

// NewDuckDuckGo creates the HTML-scrape backend.
func NewDuckDuckGo(userAgent string, client *http.Client) *DuckDuckGo {
	return &DuckDuckGo{
		userAgent: userAgent,
		client:    client,
	}
}

// Search runs one query against the results page.
func (d *DuckDuckGo) Search(ctx context.Context, query model.Query) ([]model.RawResult, error) {
	reqURL := duckduckgoBaseURL + "?" + url.Values{"q": {query.Text}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search for %q: %w", query.Text, err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search for %q: %w", query.Text, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("duckduckgo search for %q: unexpected status %d", query.Text, resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search for %q: %w", query.Text, err)
	}

	base := resp.Request.URL
	var results []model.RawResult
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		results = append(results, model.RawResult{
			Link:  resolveResultLink(base, href),
			Title: strings.TrimSpace(s.Text()),
		})
	})

	return results, nil
}

// resolveResultLink turns a results-page href into the link it points at.
// Relative hrefs are resolved against the page URL, and the redirect
// wrapper (/l/?uddg=<encoded target>) is unwrapped to the real target.
func resolveResultLink(base *url.URL, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	resolved := base.ResolveReference(u)
	if target := resolved.Query().Get("uddg"); target != "" {
		return target
	}
	return resolved.String()
}

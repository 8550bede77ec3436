package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/askohli/boardscout/internal/model"
)

const serpapiBaseURL = "https://serpapi.com/search.json"

// serpResult is a single organic result in the SerpAPI response.
type serpResult struct {
	Link    string `json:"link"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// serpResponse is the top-level SerpAPI search response.
type serpResponse struct {
	OrganicResults []serpResult `json:"organic_results"`
	Error          string       `json:"error"`
}

// SerpAPI is the API search backend. Each organic result arrives with
// link, title and snippet already structured.
type SerpAPI struct {
	apiKey  string
	engine  string
	baseURL string
	client  *http.Client
}

// NewSerpAPI creates the API backend. baseURL may be empty to use the
// public endpoint.
func NewSerpAPI(apiKey, engine, baseURL string, client *http.Client) *SerpAPI {
	if baseURL == "" {
		baseURL = serpapiBaseURL
	}
	return &SerpAPI{
		apiKey:  apiKey,
		engine:  engine,
		baseURL: baseURL,
		client:  client,
	}
}

// Search runs one query through the API.
func (s *SerpAPI) Search(ctx context.Context, query model.Query) ([]model.RawResult, error) {
	params := url.Values{
		"q":       {query.Text},
		"engine":  {s.engine},
		"api_key": {s.apiKey},
	}
	reqURL := s.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi search for %q: %w", query.Text, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi search for %q: %w", query.Text, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("serpapi search for %q: unexpected status %d", query.Text, resp.StatusCode),
		}
	}

	var serpResp serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&serpResp); err != nil {
		return nil, fmt.Errorf("serpapi search for %q: %w", query.Text, err)
	}
	if serpResp.Error != "" {
		return nil, fmt.Errorf("serpapi search for %q: %s", query.Text, serpResp.Error)
	}

	results := make([]model.RawResult, 0, len(serpResp.OrganicResults))
	for _, r := range serpResp.OrganicResults {
		results = append(results, model.RawResult{
			Link:    r.Link,
			Title:   r.Title,
			Snippet: r.Snippet,
		})
	}

	return results, nil
}

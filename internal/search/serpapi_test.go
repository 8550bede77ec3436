package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/askohli/boardscout/internal/model"
)

func TestSerpAPISearch_Success(t *testing.T) {
	payload := `{
		"organic_results": [
			{
				"link": "https://job-boards.greenhouse.io/acme/jobs/123",
				"title": "Data Scientist - Acme",
				"snippet": "Acme is hiring a data scientist in Atlanta."
			},
			{
				"link": "https://job-boards.greenhouse.io/globex/jobs/9",
				"title": "Data Analyst - Globex"
			}
		]
	}`
	var gotQ, gotEngine, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotEngine = r.URL.Query().Get("engine")
		gotKey = r.URL.Query().Get("api_key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	backend := NewSerpAPI("secret", "google", srv.URL, srv.Client())
	query := model.Query{Kind: model.QueryPattern, Text: `site:job-boards.greenhouse.io "data scientist" "posted" "US"`}

	results, err := backend.Search(context.Background(), query)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQ != query.Text || gotEngine != "google" || gotKey != "secret" {
		t.Errorf("request params = q:%q engine:%q api_key:%q", gotQ, gotEngine, gotKey)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Link != "https://job-boards.greenhouse.io/acme/jobs/123" {
		t.Errorf("link = %q", results[0].Link)
	}
	if results[0].Snippet != "Acme is hiring a data scientist in Atlanta." {
		t.Errorf("snippet = %q", results[0].Snippet)
	}
	if results[1].Snippet != "" {
		t.Errorf("missing snippet = %q, want empty", results[1].Snippet)
	}
}

func TestSerpAPISearch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "Your searches for the month are exhausted."}`))
	}))
	defer srv.Close()

	backend := NewSerpAPI("secret", "google", srv.URL, srv.Client())

	_, err := backend.Search(context.Background(), model.Query{Text: "anything"})
	if err == nil {
		t.Fatal("expected error for API-reported failure, got nil")
	}
}

func TestSerpAPISearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	backend := NewSerpAPI("bad-key", "google", srv.URL, srv.Client())

	_, err := backend.Search(context.Background(), model.Query{Text: "anything"})
	if err == nil {
		t.Fatal("expected error for HTTP 401, got nil")
	}
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected HTTPError with status 401, got: %v", err)
	}
}

func TestSerpAPISearch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	backend := NewSerpAPI("secret", "google", srv.URL, srv.Client())

	_, err := backend.Search(context.Background(), model.Query{Text: "anything"})
	if err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

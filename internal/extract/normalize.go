package extract

import (
	"context"
	"time"

	"github.com/askohli/boardscout/internal/model"
)

// QueryContext ties a raw result back to the query that surfaced it and
// the wall clock of the run.
type QueryContext struct {
	Query   model.Query
	FoundAt time.Time
}

// Normalizer converts raw search results into JobRecords. Results whose
// link lacks the platform markers are rejected outright; every other
// ambiguity (no company slug, no inferable role) resolves to a sentinel
// instead of a failure.
type Normalizer struct {
	platform Platform
	roles    *RoleMatcher
	pages    model.PageFetcher // nil disables the posting-page fallback
}

// NewNormalizer builds a Normalizer. pages may be nil, in which case role
// inference stops at the result text.
func NewNormalizer(platform Platform, roles *RoleMatcher, pages model.PageFetcher) *Normalizer {
	return &Normalizer{platform: platform, roles: roles, pages: pages}
}

// Normalize returns the JobRecord for a raw result, or ok=false when the
// link is not a posting on the platform.
func (n *Normalizer) Normalize(ctx context.Context, raw model.RawResult, qc QueryContext) (model.JobRecord, bool) {
	if !n.platform.IsPostingLink(raw.Link) {
		return model.JobRecord{}, false
	}

	company := n.platform.CompanySlug(raw.Link)
	if company == "" {
		company = model.UnknownCompany
	}

	rec := model.JobRecord{
		Link:             raw.Link,
		Company:          company,
		RoleMatched:      n.roleFor(ctx, raw, qc.Query),
		LocationSearched: qc.Query.Location,
		FoundAt:          qc.FoundAt,
		Title:            orNoData(raw.Title),
		Snippet:          orNoData(raw.Snippet),
	}
	return rec, true
}

// roleFor resolves the record's role. Cross-product queries carry their
// role by construction. Pattern queries fall back to inference: query
// text first, then the result's own text, then (when a page fetcher is
// wired) the posting page body. Inference failure is "unknown", never a
// rejection.
func (n *Normalizer) roleFor(ctx context.Context, raw model.RawResult, q model.Query) string {
	if q.Kind == model.QueryCrossProduct {
		return q.Role
	}
	if role := n.roles.Infer(q.Text, raw.Title, raw.Snippet); role != "" {
		return role
	}
	if n.pages != nil {
		if body, err := n.pages.PageText(ctx, raw.Link); err == nil {
			if role := n.roles.Infer(body); role != "" {
				return role
			}
		}
	}
	return model.UnknownRole
}

func orNoData(s string) string {
	if s == "" {
		return model.NoData
	}
	return s
}

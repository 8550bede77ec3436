package extract

import "strings"

// Platform describes the hosted job-board platform's URL scheme: the host
// serving posting pages, the path marker every posting URL carries, and the
// domain token that precedes the company slug in the path.
type Platform struct {
	Host        string // e.g. "job-boards.greenhouse.io"
	PathMarker  string // e.g. "/jobs/"
	DomainToken string // e.g. "greenhouse.io"
}

// structuralTokens are path segments the platform uses for its own URL
// scheme; none of them is ever a company slug.
var structuralTokens = map[string]struct{}{
	"jobs":       {},
	"www":        {},
	"":           {},
	"job-boards": {},
}

// IsPostingLink reports whether link points at an individual posting:
// it must carry both the platform host and the posting-path marker.
func (p Platform) IsPostingLink(link string) bool {
	return strings.Contains(link, p.Host) && strings.Contains(link, p.PathMarker)
}

// CompanySlug derives the company identifier from a posting URL. It walks
// the slash-separated segments, finds one containing the domain token, and
// takes the following segment as the candidate slug. Candidates matching a
// structural token are skipped and the walk continues. Returns "" when no
// slug can be derived; malformed input never fails.
func (p Platform) CompanySlug(link string) string {
	if !strings.Contains(link, p.Host) {
		return ""
	}
	parts := strings.Split(link, "/")
	for i, part := range parts {
		if !strings.Contains(part, p.DomainToken) || i+1 >= len(parts) {
			continue
		}
		slug := strings.ToLower(strings.TrimSpace(parts[i+1]))
		if _, structural := structuralTokens[slug]; structural {
			continue
		}
		return slug
	}
	return ""
}

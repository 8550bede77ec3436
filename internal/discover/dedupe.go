package discover

import "github.com/askohli/boardscout/internal/model"

// Dedupe collapses candidates to the first occurrence per link, preserving
// first-seen order, then drops any record whose link is already in existing.
// existing is not mutated; the same input always yields the same output, so
// applying Dedupe twice changes nothing.
func Dedupe(candidates []model.JobRecord, existing map[string]struct{}) []model.JobRecord {
	seen := make(map[string]struct{}, len(candidates))
	var out []model.JobRecord
	for _, rec := range candidates {
		if _, dup := seen[rec.Link]; dup {
			continue
		}
		seen[rec.Link] = struct{}{}
		if _, known := existing[rec.Link]; known {
			continue
		}
		out = append(out, rec)
	}
	return out
}

package extract

import "strings"

// RoleMatcher decides which target role a posting corresponds to.
// Matching is case-insensitive substring presence, checked over candidate
// texts in the order given; the first role that appears anywhere wins.
type RoleMatcher struct {
	roles []string
}

// NewRoleMatcher returns a matcher over the configured target roles.
func NewRoleMatcher(roles []string) *RoleMatcher {
	return &RoleMatcher{roles: roles}
}

// Infer scans the candidate texts in order and returns the first target
// role found in any of them, or "" when none matches. Empty texts are
// skipped.
func (m *RoleMatcher) Infer(texts ...string) string {
	for _, text := range texts {
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)
		for _, role := range m.roles {
			if strings.Contains(lower, strings.ToLower(role)) {
				return role
			}
		}
	}
	return ""
}

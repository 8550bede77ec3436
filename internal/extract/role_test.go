package extract

import "testing"

func TestRoleMatcher_Infer(t *testing.T) {
	roles := []string{"data scientist", "machine learning engineer", "data analyst"}

	tests := []struct {
		name  string
		texts []string
		want  string
	}{
		{
			name:  "match in first text wins",
			texts: []string{"Senior Data Scientist, Platform", "machine learning engineer"},
			want:  "data scientist",
		},
		{
			name:  "case insensitive",
			texts: []string{"DATA ANALYST II"},
			want:  "data analyst",
		},
		{
			name:  "earlier text takes priority over role order",
			texts: []string{"hiring a data analyst", "data scientist opening"},
			want:  "data analyst",
		},
		{
			name:  "empty texts are skipped",
			texts: []string{"", "machine learning engineer wanted"},
			want:  "machine learning engineer",
		},
		{
			name:  "no role present",
			texts: []string{"acme is hiring a staff accountant"},
			want:  "",
		},
		{
			name:  "no texts at all",
			texts: nil,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewRoleMatcher(roles)
			if got := m.Infer(tt.texts...); got != tt.want {
				t.Errorf("Infer(%q) = %q, want %q", tt.texts, got, tt.want)
			}
		})
	}
}

func TestRoleMatcher_NoConfiguredRoles(t *testing.T) {
	m := NewRoleMatcher(nil)
	if got := m.Infer("data scientist"); got != "" {
		t.Errorf("Infer with no roles = %q, want empty", got)
	}
}

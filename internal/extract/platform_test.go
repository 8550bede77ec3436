package extract

import "testing"

func testPlatform() Platform {
	return Platform{
		Host:        "job-boards.greenhouse.io",
		PathMarker:  "/jobs/",
		DomainToken: "greenhouse.io",
	}
}

func TestPlatform_IsPostingLink(t *testing.T) {
	tests := []struct {
		name string
		link string
		want bool
	}{
		{
			name: "posting link with both markers",
			link: "https://job-boards.greenhouse.io/acme/jobs/123",
			want: true,
		},
		{
			name: "host without posting path",
			link: "https://job-boards.greenhouse.io/acme",
			want: false,
		},
		{
			name: "posting path on another host",
			link: "https://careers.example.com/jobs/123",
			want: false,
		},
		{
			name: "empty link",
			link: "",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testPlatform().IsPostingLink(tt.link); got != tt.want {
				t.Errorf("IsPostingLink(%q) = %v, want %v", tt.link, got, tt.want)
			}
		})
	}
}

func TestPlatform_CompanySlug(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{
			name: "plain posting link",
			link: "https://job-boards.greenhouse.io/acme/jobs/123",
			want: "acme",
		},
		{
			name: "slug is lower-cased",
			link: "https://job-boards.greenhouse.io/AcmeCorp/jobs/123",
			want: "acmecorp",
		},
		{
			name: "host marker is last segment",
			link: "https://job-boards.greenhouse.io",
			want: "",
		},
		{
			name: "structural token after host",
			link: "https://job-boards.greenhouse.io/jobs/123",
			want: "",
		},
		{
			name: "empty segment after host",
			link: "https://job-boards.greenhouse.io//acme/jobs/123",
			want: "",
		},
		{
			name: "different host entirely",
			link: "https://example.com/acme/jobs/123",
			want: "",
		},
		{
			name: "not a url at all",
			link: "definitely not a url",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testPlatform().CompanySlug(tt.link); got != tt.want {
				t.Errorf("CompanySlug(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}

package extract

import "testing"

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"123", 123},
		{"1,234", 1234},
		{"12K", 12000},
		{"1.2M", 1200000},
		{"3B", 3000000000},
		{"", 0},
		{"views", 0},
		{"-5", 0},
	}
	for _, tc := range cases {
		if got := parseCount(tc.in); got != tc.want {
			t.Errorf("parseCount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseLeadingInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"42", 42},
		{" 42 comments", 42},
		{"1.2k", 1},
		{"", 0},
		{"no numbers", 0},
	}
	for _, tc := range cases {
		if got := parseLeadingInt(tc.in); got != tc.want {
			t.Errorf("parseLeadingInt(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestVideoIDFromHref(t *testing.T) {
	if got := videoIDFromHref("/watch?v=abc123&pp=x"); got != "abc123" {
		t.Errorf("videoIDFromHref = %q, want abc123", got)
	}
	if got := videoIDFromHref("/shorts/xyz"); got != "" {
		t.Errorf("videoIDFromHref = %q, want empty", got)
	}
}

func TestLastPathSegment(t *testing.T) {
	if got := lastPathSegment("/r/golang/comments/abc/title_slug/"); got != "title_slug" {
		t.Errorf("lastPathSegment = %q, want title_slug", got)
	}
	if got := lastPathSegment(""); got != "" {
		t.Errorf("lastPathSegment = %q, want empty", got)
	}
}

package utils

import "testing"

func TestValidateLink(t *testing.T) {
	cases := []struct {
		link string
		want bool
	}{
		{"", true},
		{"http://docs.example.org/draft.pdf", true},
		{"https://drive.example.org/d/abc123", true},
		{"ftp://files.example.org/draft.pdf", false},
		{"not a url", false},
		{"http://", false},
	}

	for _, c := range cases {
		if got := ValidateLink(c.link); got != c.want {
			t.Errorf("ValidateLink(%q) = %v, want %v", c.link, got, c.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, reason := ValidatePassword("short"); ok || reason == "" {
		t.Errorf("expected short password to be rejected with a reason")
	}
	if ok, reason := ValidatePassword("long enough secret"); !ok || reason != "" {
		t.Errorf("expected valid password to pass, got %v %q", ok, reason)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  title\x00  "); got != "title" {
		t.Errorf("SanitizeInput returned %q", got)
	}
}

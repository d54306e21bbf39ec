package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	s := Template()
	for _, want := range []string{"{{.Name}} version " + Version, "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(s, want) {
			t.Errorf("Template() = %q, missing %q", s, want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3"
	if got := UserAgent(); got != "roadtower/v1.2.3" {
		t.Errorf("UserAgent() = %q, want %q", got, "roadtower/v1.2.3")
	}
}

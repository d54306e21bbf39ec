package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestCompletion(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "roadtower"},
		{"zsh", "#compdef roadtower"},
		{"fish", "complete -c roadtower"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			newTestEnv(t)
			var out bytes.Buffer
			root := New(io.Discard, LogInfo).RootCommand()
			root.SetArgs([]string{"completion", tt.shell})
			root.SetOut(&out)
			root.SetErr(io.Discard)
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", tt.shell, err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("script missing %q", tt.want)
			}
		})
	}
}

func TestCompletionUnknownShell(t *testing.T) {
	newTestEnv(t)
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"completion", "powershell"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Error("completion powershell succeeded, want an error")
	}
}

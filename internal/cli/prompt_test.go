package cli

import (
	"bufio"
	"io"
	"strings"
	"testing"
)

func reader(s string) *bufio.Reader { return bufio.NewReader(strings.NewReader(s)) }

func TestPromptString(t *testing.T) {
	tests := map[string]string{
		"user input\n": "user input",
		"  padded  \n": "padded",
		"\n":           "default",
		"":             "default",
		"last line":    "last line",
	}
	for in, want := range tests {
		if got := promptString(reader(in), io.Discard, "label", "default"); got != want {
			t.Errorf("promptString(%q)=%q want %q", in, got, want)
		}
	}
}

func TestPromptInt(t *testing.T) {
	tests := map[string]int{"123\n": 123, "invalid\n": 10, "\n": 10, "-2": -2}
	for in, want := range tests {
		if got := promptInt(reader(in), io.Discard, "label", 10); got != want {
			t.Errorf("promptInt(%q)=%d want %d", in, got, want)
		}
	}
}

func TestPromptBool(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"no\n", true, false},
		{"0\n", true, false},
		{"true", false, true},
		{"maybe\n", true, true},
		{"", true, true},
	}
	for _, tt := range tests {
		if got := promptBool(reader(tt.in), io.Discard, "label", tt.def); got != tt.want {
			t.Errorf("promptBool(%q, %v)=%v want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestPromptLabels(t *testing.T) {
	var out strings.Builder
	r := reader("\n\n\n")
	promptString(r, &out, "Path", "c.json")
	promptString(r, &out, "Base URL", "")
	promptBool(r, &out, "Pad", false)
	if out.String() != "Path [c.json]: Base URL: Pad [false]: " {
		t.Fatalf("got %q", out.String())
	}
}

package output

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteIndex_BuildsHierarchyAndStableIDs(t *testing.T) {
	dir := t.TempDir()
	source := "guide.html"

	entries := []IndexEntry{
		{Heading: "Intro", Level: 1, ID: "intro", Markdown: "# Intro\n\na\n"},
		{Heading: "Child", Level: 2, ID: "child", Markdown: "## Child\n\n<b>abcd</b>\n"},
		{Heading: "Sibling", Level: 2, ID: "sibling", Markdown: "## Sibling\n\nxyz\n"},
	}

	outPath, err := WriteIndex(dir, source, entries)
	if err != nil {
		t.Fatalf("WriteIndex error: %v", err)
	}
	if outPath != filepath.Join(dir, "index.jsonl") {
		t.Fatalf("unexpected path: %s", outPath)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if strings.Contains(string(data), `\u003c`) {
		t.Fatalf("markdown should not be html-escaped: %s", data)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	recs := make([]IndexRecord, len(lines))
	for i, line := range lines {
		if err := json.Unmarshal([]byte(line), &recs[i]); err != nil {
			t.Fatalf("unmarshal line %d: %v", i+1, err)
		}
	}

	wantPaths := []string{"Intro", "Intro > Child", "Intro > Sibling"}
	for i, want := range wantPaths {
		if recs[i].HeadingPath != want {
			t.Fatalf("record %d: heading path %q, want %q", i, recs[i].HeadingPath, want)
		}
	}

	sum := sha256.Sum256([]byte(source + "|Intro > Child|child"))
	if want := hex.EncodeToString(sum[:])[:16]; recs[1].ID != want {
		t.Fatalf("unexpected stable id: got %q want %q", recs[1].ID, want)
	}
	if recs[1].Markdown != "## Child\n\n<b>abcd</b>" || recs[1].Anchor != "child" {
		t.Fatalf("unexpected record %+v", recs[1])
	}
	if recs[2].TokenEstimate != (len("## Sibling\n\nxyz")+3)/4 {
		t.Fatalf("unexpected token estimate: %d", recs[2].TokenEstimate)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello / World?":       "hello-world",
		"  Many   Spaces  ":    "many-spaces",
		"API: <Index>":         "api-index",
		"already-dashed - two": "already-dashed-two",
		"???":                  "",
	}
	for in, want := range tests {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

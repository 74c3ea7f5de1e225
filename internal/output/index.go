package output

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// IndexRecord is one line of index.jsonl.
type IndexRecord struct {
	ID            string `json:"id"`
	Source        string `json:"source"`
	Anchor        string `json:"anchor,omitempty"`
	Heading       string `json:"heading"`
	HeadingLevel  int    `json:"heading_level"`
	HeadingPath   string `json:"heading_path"`
	Markdown      string `json:"markdown"`
	TokenEstimate int    `json:"token_estimate"`
}

// IndexEntry is a converted section handed to WriteIndex.
type IndexEntry struct {
	Heading  string
	Level    int
	ID       string
	Markdown string
}

// WriteIndex writes index.jsonl with one record per section. IDs are stable
// across runs for the same source and heading path.
func WriteIndex(outDir, source string, entries []IndexEntry) (string, error) {
	if outDir == "" {
		outDir = DefaultDir
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, "index.jsonl")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	var trail [7]string
	for _, e := range entries {
		if e.Level >= 1 && e.Level <= 6 {
			trail[e.Level] = e.Heading
			for k := e.Level + 1; k <= 6; k++ {
				trail[k] = ""
			}
		}
		var parts []string
		for _, h := range trail[1:] {
			if h != "" {
				parts = append(parts, h)
			}
		}
		headingPath := strings.Join(parts, " > ")
		sum := sha256.Sum256([]byte(source + "|" + headingPath + "|" + e.ID))

		md := strings.TrimSpace(e.Markdown)
		rec := IndexRecord{
			ID:            hex.EncodeToString(sum[:])[:16],
			Source:        source,
			Anchor:        e.ID,
			Heading:       e.Heading,
			HeadingLevel:  e.Level,
			HeadingPath:   headingPath,
			Markdown:      md,
			TokenEstimate: sizeOf(md).tokens,
		}
		if err := enc.Encode(rec); err != nil {
			return "", err
		}
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

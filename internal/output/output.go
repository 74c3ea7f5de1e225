// Package output writes conversion results to disk: the Markdown document,
// optional per-section files, the JSON outline, the section index and the
// rolled bundles of the batch job.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go_mdconv/internal/parse"
	"go_mdconv/internal/report"
)

const DefaultDir = "output"

type WriteOptions struct {
	OutputDir    string
	MarkdownFile string
	JSONFile     string
}

func (o WriteOptions) withDefaults() WriteOptions {
	if o.OutputDir == "" {
		o.OutputDir = DefaultDir
	}
	if o.MarkdownFile == "" {
		o.MarkdownFile = "content.md"
	}
	if o.JSONFile == "" {
		o.JSONFile = "content.json"
	}
	return o
}

// JSONDoc is the machine readable companion of content.md.
type JSONDoc struct {
	Source     string          `json:"source,omitempty"`
	Title      string          `json:"title,omitempty"`
	HeadingIDs []string        `json:"heading_ids"`
	Sections   []parse.Section `json:"sections"`
	Report     report.Report   `json:"report"`
}

func WriteJSON(source string, doc *parse.Document, rep report.Report, opts WriteOptions) (string, error) {
	opts = opts.withDefaults()
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", err
	}
	payload := JSONDoc{Source: source, Report: rep, HeadingIDs: []string{}, Sections: []parse.Section{}}
	if doc != nil {
		payload.Title = doc.Title
		if doc.HeadingIDs != nil {
			payload.HeadingIDs = doc.HeadingIDs
		}
		payload.Sections = doc.Sections
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(opts.OutputDir, opts.JSONFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}

func WriteMarkdown(outputDir string, filename string, markdown string) (string, error) {
	opts := WriteOptions{OutputDir: outputDir, MarkdownFile: filename}.withDefaults()
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(opts.OutputDir, opts.MarkdownFile)
	if err := os.WriteFile(path, []byte(markdown), 0600); err != nil {
		return "", err
	}
	return path, nil
}

// WriteMarkdownParts writes parts as one file, or, when the limits force more
// than one bundle, as <name>/part-NNN.md plus an index at <name>.md.
func WriteMarkdownParts(outputDir string, filename string, parts []string, limits ChunkLimits) (string, error) {
	opts := WriteOptions{OutputDir: outputDir, MarkdownFile: filename}.withDefaults()
	joined := strings.Join(parts, "")
	if !limits.Enabled() {
		return WriteMarkdown(opts.OutputDir, opts.MarkdownFile, joined)
	}
	bundles := bundleParts(parts, limits)
	if len(bundles) <= 1 {
		return WriteMarkdown(opts.OutputDir, opts.MarkdownFile, joined)
	}
	base := filepath.Join(opts.OutputDir, strings.TrimSuffix(opts.MarkdownFile, filepath.Ext(opts.MarkdownFile)))
	if err := writeParts(base, firstHeadingLine(joined), bundles); err != nil {
		return "", err
	}
	return base + ".md", nil
}

// SectionFile is the Markdown of one heading section.
type SectionFile struct {
	Title    string
	ID       string
	Markdown string
}

// WriteSectionFiles writes sections/<slug>.md for every non-empty section and
// returns the paths. Sections over the limits are split by subheading.
func WriteSectionFiles(outputDir string, files []SectionFile, limits ChunkLimits) ([]string, error) {
	if outputDir == "" {
		outputDir = DefaultDir
	}
	base := filepath.Join(outputDir, "sections")
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, err
	}
	used := map[string]int{}
	var written []string
	for _, f := range files {
		if strings.TrimSpace(f.Markdown) == "" {
			continue
		}
		name := slugify(f.Title)
		if name == "" {
			name = slugify(f.ID)
		}
		if name == "" {
			name = "section"
		}
		used[name]++
		if n := used[name]; n > 1 {
			name += "-" + strconv.Itoa(n)
		}
		path := filepath.Join(base, name)
		if err := writeMarkdownFile(path, f.Markdown, limits); err != nil {
			return written, err
		}
		written = append(written, path+".md")
	}
	return written, nil
}

func writeMarkdownFile(basePath string, md string, limits ChunkLimits) error {
	if !limits.Enabled() || !limits.exceeds(sizeOf(md)) {
		return os.WriteFile(basePath+".md", []byte(md), 0600)
	}
	parts := splitMarkdownByHeadings(md, limits)
	if len(parts) <= 1 {
		return os.WriteFile(basePath+".md", []byte(md), 0600)
	}
	return writeParts(basePath, firstHeadingLine(md), parts)
}

func writeParts(basePath, heading string, parts []string) error {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return err
	}
	for i, part := range parts {
		partPath := filepath.Join(basePath, partName(i+1))
		if err := os.WriteFile(partPath, []byte(part), 0600); err != nil {
			return err
		}
	}
	index := buildSplitIndex(heading, filepath.Base(basePath), len(parts))
	return os.WriteFile(basePath+".md", []byte(index), 0600)
}

func partName(n int) string {
	return fmt.Sprintf("part-%03d.md", n)
}

func buildSplitIndex(heading string, partDir string, parts int) string {
	var b strings.Builder
	if heading != "" {
		b.WriteString(heading)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Split into %d parts:\n\n", parts)
	for i := 1; i <= parts; i++ {
		fmt.Fprintf(&b, "- %s/%s\n", partDir, partName(i))
	}
	return b.String()
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case strings.ContainsRune(`?*"<>|`, r):
			continue
		case r == ' ' || r == '\t' || r == '/' || r == '\\' || r == ':' || r == '-':
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
			continue
		}
		b.WriteRune(r)
		dash = false
	}
	return strings.TrimSuffix(b.String(), "-")
}

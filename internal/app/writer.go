package app

import (
	"fmt"

	"go_mdconv/internal/markdown"
	"go_mdconv/internal/output"
	"go_mdconv/internal/parse"
)

type WriteResult struct {
	OutputDir    string   `json:"output_dir"`
	MarkdownPath string   `json:"markdown_path"`
	JSONPath     string   `json:"json_path"`
	IndexPath    string   `json:"index_path"`
	SectionPaths []string `json:"section_paths,omitempty"`
}

func renderSections(conv *markdown.Converter, sections []parse.Section) ([]RenderedSection, error) {
	out := make([]RenderedSection, 0, len(sections))
	for _, s := range sections {
		md, err := conv.SectionToMarkdown(s.HeadingText, s.HeadingLevel, s.ContentHTML)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.HeadingText, err)
		}
		out = append(out, RenderedSection{
			Heading:    s.HeadingText,
			Level:      s.HeadingLevel,
			HeadingID:  s.HeadingID,
			ContentIDs: append([]string(nil), s.ContentIDs...),
			Markdown:   md,
		})
	}
	return out, nil
}

// writeOutputs writes content.md (split when limits are set), content.json,
// index.jsonl and, on request, one file per section.
func writeOutputs(opts Options, res Result, rendered Rendered) (WriteResult, error) {
	written := WriteResult{OutputDir: opts.OutputDir}

	var err error
	if opts.Limits.Enabled() {
		written.MarkdownPath, err = output.WriteMarkdownParts(opts.OutputDir, "content.md", output.SplitOnHeadings(rendered.Markdown), opts.Limits)
	} else {
		written.MarkdownPath, err = output.WriteMarkdown(opts.OutputDir, "content.md", rendered.Markdown)
	}
	if err != nil {
		return WriteResult{}, fmt.Errorf("write markdown: %w", err)
	}

	written.JSONPath, err = output.WriteJSON(opts.Source, res.Document, res.Report, output.WriteOptions{OutputDir: opts.OutputDir})
	if err != nil {
		return WriteResult{}, fmt.Errorf("write json: %w", err)
	}

	entries := make([]output.IndexEntry, 0, len(rendered.Sections))
	files := make([]output.SectionFile, 0, len(rendered.Sections))
	for _, s := range rendered.Sections {
		entries = append(entries, output.IndexEntry{Heading: s.Heading, Level: s.Level, ID: s.HeadingID, Markdown: s.Markdown})
		files = append(files, output.SectionFile{Title: s.Heading, ID: s.HeadingID, Markdown: s.Markdown})
	}
	written.IndexPath, err = output.WriteIndex(opts.OutputDir, opts.Source, entries)
	if err != nil {
		return WriteResult{}, fmt.Errorf("write index: %w", err)
	}

	if opts.SplitSections {
		written.SectionPaths, err = output.WriteSectionFiles(opts.OutputDir, files, opts.Limits)
		if err != nil {
			return WriteResult{}, fmt.Errorf("write sections: %w", err)
		}
	}
	return written, nil
}

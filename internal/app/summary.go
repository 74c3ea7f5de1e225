package app

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"go_mdconv/internal/report"
)

// PrintSummary writes the human readable outline and check results of res.
func PrintSummary(w io.Writer, res Result) {
	fmt.Fprintf(w, "Source: %s\n", res.Source)
	if res.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", res.Title)
	}
	if res.Candidate != nil {
		note := ""
		if res.FellBack {
			note = " (below threshold, used body)"
		}
		fmt.Fprintf(w, "Content: %s score %d%s\n", res.Candidate.Label(), res.Candidate.Score, note)
	}
	if res.Document != nil {
		fmt.Fprintf(w, "Sections found: %d\n", len(res.Document.Sections))
		fmt.Fprintln(w, "Heading IDs:")
		printList(w, unique(res.Document.HeadingIDs))
	}
	printReport(w, res.Report)
	if res.Written.MarkdownPath != "" {
		fmt.Fprintf(w, "\nWrote markdown: %s\n", res.Written.MarkdownPath)
		fmt.Fprintf(w, "Wrote json: %s\n", res.Written.JSONPath)
		fmt.Fprintf(w, "Wrote index: %s\n", res.Written.IndexPath)
		if n := len(res.Written.SectionPaths); n > 0 {
			fmt.Fprintf(w, "Wrote %d section files\n", n)
		}
	}
}

func printReport(w io.Writer, rep report.Report) {
	fmt.Fprintln(w, "\nCompleteness report:")
	fmt.Fprintf(w, "  missing heading ids: %d\n", len(rep.MissingHeadingIDs))
	fmt.Fprintf(w, "  duplicate ids: %d\n", len(rep.DuplicateIDs))
	fmt.Fprintf(w, "  broken anchors: %d\n", len(rep.BrokenAnchors))
	fmt.Fprintf(w, "  empty sections: %d\n", len(rep.EmptySections))
	fmt.Fprintf(w, "  heading gaps: %d\n", len(rep.HeadingGaps))
	if s := rep.Structure; s != nil {
		fmt.Fprintln(w, "Structure (html / markdown):")
		fmt.Fprintf(w, "  headings: %d / %d\n", s.HTML.Headings, s.Markdown.Headings)
		fmt.Fprintf(w, "  lists: %d / %d\n", s.HTML.Lists, s.Markdown.Lists)
		fmt.Fprintf(w, "  tables: %d / %d\n", s.HTML.Tables, s.Markdown.Tables)
		fmt.Fprintf(w, "  code blocks: %d / %d\n", s.HTML.CodeBlocks, s.Markdown.CodeBlocks)
		if s.OK() {
			fmt.Fprintln(w, "  structure: ok")
		}
		for _, m := range s.Mismatches {
			fmt.Fprintf(w, "  MISMATCH %s\n", m)
		}
	}
}

func printList(w io.Writer, items []string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func unique(list []string) []string {
	set := map[string]struct{}{}
	out := []string{}
	for _, v := range list {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

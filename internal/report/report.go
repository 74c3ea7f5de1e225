// Package report checks a conversion for completeness: outline problems in
// the source HTML and structural drift between the source and the Markdown.
package report

import (
	"sort"

	"go_mdconv/internal/parse"
)

type Report struct {
	MissingHeadingIDs []string    `json:"missing_heading_ids"`
	DuplicateIDs      []string    `json:"duplicate_ids"`
	BrokenAnchors     []string    `json:"broken_anchors"`
	EmptySections     []string    `json:"empty_sections"`
	HeadingGaps       []string    `json:"heading_gaps"`
	Structure         *Comparison `json:"structure,omitempty"`
}

// Analyze runs the outline checks on a parsed document.
func Analyze(doc *parse.Document) Report {
	rep := Report{
		MissingHeadingIDs: []string{},
		EmptySections:     []string{},
		HeadingGaps:       []string{},
	}
	if doc == nil {
		rep.DuplicateIDs = []string{}
		rep.BrokenAnchors = []string{}
		return rep
	}

	prev := 0
	for _, s := range doc.Sections {
		if s.HeadingID == "" {
			rep.MissingHeadingIDs = append(rep.MissingHeadingIDs, s.HeadingText)
		}
		if s.ContentText == "" {
			rep.EmptySections = append(rep.EmptySections, s.HeadingText)
		}
		if prev > 0 && s.HeadingLevel-prev > 1 {
			rep.HeadingGaps = append(rep.HeadingGaps, s.HeadingText)
		}
		if s.HeadingLevel > 0 {
			prev = s.HeadingLevel
		}
	}

	rep.DuplicateIDs = findDuplicates(doc.AllElementIDs)
	rep.BrokenAnchors = findBrokenAnchors(doc.AnchorTargets, doc.AllElementIDs)

	sort.Strings(rep.MissingHeadingIDs)
	sort.Strings(rep.DuplicateIDs)
	sort.Strings(rep.BrokenAnchors)
	sort.Strings(rep.EmptySections)
	sort.Strings(rep.HeadingGaps)
	return rep
}

// HasIssues reports whether any check failed. Empty sections and heading
// gaps are informational.
func (r Report) HasIssues() bool {
	if len(r.MissingHeadingIDs) > 0 || len(r.DuplicateIDs) > 0 || len(r.BrokenAnchors) > 0 {
		return true
	}
	return r.Structure != nil && !r.Structure.OK()
}

func findDuplicates(ids []string) []string {
	counts := map[string]int{}
	for _, id := range ids {
		if id != "" {
			counts[id]++
		}
	}
	dups := []string{}
	for id, count := range counts {
		if count > 1 {
			dups = append(dups, id)
		}
	}
	return dups
}

func findBrokenAnchors(anchors []string, ids []string) []string {
	idset := map[string]struct{}{}
	for _, id := range ids {
		idset[id] = struct{}{}
	}
	broken := []string{}
	seen := map[string]struct{}{}
	for _, a := range anchors {
		if a == "" {
			continue
		}
		if _, ok := idset[a]; ok {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		broken = append(broken, a)
	}
	return broken
}

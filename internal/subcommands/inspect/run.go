// Package inspect reports how the content scorer sees a local HTML file.
package inspect

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go_mdconv/internal/menu"
	"go_mdconv/internal/parse"
)

type Options struct {
	File          string
	CheckSelector string
	Top           int
	// NavSelector, when set, also prints the navigation tree it matches.
	NavSelector string
}

func Run(opts Options, w io.Writer) error {
	if strings.TrimSpace(opts.File) == "" {
		return fmt.Errorf("file is required")
	}
	data, err := os.ReadFile(opts.File)
	if err != nil {
		return err
	}
	doc, err := parse.NewDocument(string(data))
	if err != nil {
		return err
	}

	if strings.TrimSpace(opts.CheckSelector) != "" {
		inspectSpecificSelector(w, doc, opts.CheckSelector)
		return nil
	}

	top := opts.Top
	if top <= 0 {
		top = 10
	}
	printCandidates(w, parse.Candidates(doc), top)
	printTopLinkContainers(w, doc, 5)
	if strings.TrimSpace(opts.NavSelector) != "" {
		return printNavigation(w, doc, opts.NavSelector)
	}
	return nil
}

func printNavigation(w io.Writer, doc *goquery.Document, selector string) error {
	entries, err := menu.Outline(doc, selector)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nNavigation (%s):\n", selector)
	if len(entries) == 0 {
		fmt.Fprintln(w, "- no links")
		return nil
	}
	menu.Print(w, entries)
	fmt.Fprintf(w, "Unresolved anchors: %d\n", menu.Unresolved(entries))
	return nil
}

func printCandidates(w io.Writer, candidates []parse.Candidate, limit int) {
	fmt.Fprintln(w, "Content candidates (score / text / paragraphs / link density):")
	if len(candidates) == 0 {
		fmt.Fprintln(w, "- none; body would be used")
		return
	}
	for i, c := range candidates {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "- %s: score=%d text=%d p=%d links=%.2f\n", c.Label(), c.Score, c.TextLength, c.Paragraphs, c.LinkDensity)
	}
	best := candidates[0]
	if best.Score >= parse.MinContentScore {
		fmt.Fprintf(w, "\nAuto-detect would use: %s\n", best.Label())
	} else {
		fmt.Fprintf(w, "\nNo candidate reached %d; auto-detect would use body\n", parse.MinContentScore)
	}
}

func printTopLinkContainers(w io.Writer, doc *goquery.Document, limit int) {
	fmt.Fprintln(w, "\nTop containers by link count (any element):")
	type box struct {
		Sel   string
		Links int
	}
	boxes := []box{}
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		links := s.Find("a").Length()
		if links >= 10 {
			boxes = append(boxes, box{Sel: nodeSelector(s), Links: links})
		}
	})
	if len(boxes) == 0 {
		fmt.Fprintln(w, "- none with 10 or more links")
	}
	for i, b := range boxes {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "- %s (links=%d)\n", b.Sel, b.Links)
	}
}

func nodeSelector(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if id, exists := s.Attr("id"); exists && id != "" {
		return fmt.Sprintf("#%s", id)
	}
	if classStr, exists := s.Attr("class"); exists {
		classes := strings.Fields(classStr)
		if len(classes) > 0 {
			return fmt.Sprintf("%s.%s", goquery.NodeName(s), strings.Join(classes, "."))
		}
	}
	return goquery.NodeName(s)
}

func inspectSpecificSelector(w io.Writer, doc *goquery.Document, selector string) {
	sel := doc.Find(selector)
	fmt.Fprintf(w, "Inspecting selector: '%s'\n", selector)
	fmt.Fprintf(w, "Found %d matching element(s)\n", sel.Length())

	sel.Each(func(i int, s *goquery.Selection) {
		if i >= 3 {
			return
		}
		c := parse.Score(s)
		fmt.Fprintf(w, "\n--- Match #%d ---\n", i+1)
		fmt.Fprintf(w, "Element: %s\n", c.Label())
		fmt.Fprintf(w, "Score: %d\n", c.Score)

		text := strings.Join(strings.Fields(s.Text()), " ")
		fmt.Fprintf(w, "Text Length: %d chars\n", c.TextLength)
		runes := []rune(text)
		if len(runes) > 100 {
			fmt.Fprintf(w, "Text Preview: %s...\n", string(runes[:100]))
		} else {
			fmt.Fprintf(w, "Text Preview: %s\n", text)
		}
		fmt.Fprintf(w, "Links inside: %d\n", s.Find("a").Length())
	})
}

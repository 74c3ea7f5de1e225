package app

import (
	"github.com/PuerkitoBio/goquery"

	"go_mdconv/internal/parse"
)

// Prepared is a page narrowed to the part that gets converted.
type Prepared struct {
	Doc       *goquery.Document
	Title     string
	Candidate *parse.Candidate
	// FellBack is set when auto-detection found no candidate good enough and
	// the body was used.
	FellBack bool
	Removed  int
}

// Prepare parses htmlText and applies, in order, the exclude selector, noise
// removal and content selection. The title is read before anything is
// removed.
func Prepare(htmlText string, opts Options) (Prepared, error) {
	doc, err := parse.NewDocument(htmlText)
	if err != nil {
		return Prepared{}, err
	}
	p := Prepared{Doc: doc, Title: parse.Title(doc)}

	if opts.ExcludeSelector != "" {
		_ = parse.RemoveSelectors(doc, opts.ExcludeSelector)
	}
	if opts.RemoveNoise {
		p.Removed = parse.RemoveNoise(doc)
	}

	switch {
	case opts.ContentSelector != "":
		sub, err := parse.ExtractBySelector(doc, opts.ContentSelector)
		if err != nil {
			return Prepared{}, err
		}
		p.Doc = sub
	case opts.AutoDetect:
		sub, best, ok := parse.ExtractBest(doc)
		p.Doc = sub
		p.FellBack = !ok
		if best.Tag != "" {
			p.Candidate = &best
		}
	}
	return p, nil
}

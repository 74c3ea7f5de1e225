// Package menu reads the navigation tree of a page so that in-page links can
// be checked against the heading ids the converter keeps.
package menu

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultSelector matches the usual navigation containers.
const DefaultSelector = "nav, [role=navigation]"

var ErrNotFound = errors.New("navigation selector not found")

// Entry is one link of a navigation tree.
type Entry struct {
	Title    string  `json:"title"`
	Href     string  `json:"href"`
	Anchor   string  `json:"anchor,omitempty"`
	Resolved bool    `json:"resolved"`
	Children []Entry `json:"children,omitempty"`
}

// Outline returns the link tree of the first element matching selector.
// Nested lists become children; a container without a list yields its links
// flat. Anchors are marked resolved when doc has an element with that id.
func Outline(doc *goquery.Document, selector string) ([]Entry, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	if strings.TrimSpace(selector) == "" {
		selector = DefaultSelector
	}
	nav := doc.Find(selector).First()
	if nav.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
	}

	ids := map[string]struct{}{}
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		ids[s.AttrOr("id", "")] = struct{}{}
	})

	var entries []Entry
	if list := nav.Find("ul, ol").First(); list.Length() > 0 {
		entries = fromList(list)
	} else {
		entries = fromLinks(nav)
	}
	resolve(entries, ids)
	return entries, nil
}

func fromList(list *goquery.Selection) []Entry {
	var out []Entry
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a").First()
		e := newEntry(a)
		if sub := li.Find("ul, ol").First(); sub.Length() > 0 {
			e.Children = fromList(sub)
		}
		if e.Title != "" || e.Href != "" || len(e.Children) > 0 {
			out = append(out, e)
		}
	})
	return out
}

func fromLinks(nav *goquery.Selection) []Entry {
	var out []Entry
	nav.Find("a").Each(func(_ int, a *goquery.Selection) {
		if e := newEntry(a); e.Title != "" || e.Href != "" {
			out = append(out, e)
		}
	})
	return out
}

func newEntry(a *goquery.Selection) Entry {
	href := strings.TrimSpace(a.AttrOr("href", ""))
	return Entry{
		Title:  strings.Join(strings.Fields(a.Text()), " "),
		Href:   href,
		Anchor: fragment(href),
	}
}

func resolve(entries []Entry, ids map[string]struct{}) {
	for i := range entries {
		if entries[i].Anchor != "" {
			_, entries[i].Resolved = ids[entries[i].Anchor]
		}
		resolve(entries[i].Children, ids)
	}
}

func fragment(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "#") {
		return strings.TrimPrefix(href, "#")
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Fragment
}

// Unresolved counts the entries whose anchor has no target in the page.
func Unresolved(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Anchor != "" && !e.Resolved {
			n++
		}
		n += Unresolved(e.Children)
	}
	return n
}

// Print writes entries as an indented tree. Anchors without a target are
// flagged.
func Print(w io.Writer, entries []Entry) {
	printLevel(w, entries, 0)
}

func printLevel(w io.Writer, entries []Entry, depth int) {
	for _, e := range entries {
		line := fmt.Sprintf("%s- %s", strings.Repeat("  ", depth), e.Title)
		if e.Href != "" {
			line += " (" + e.Href + ")"
		}
		if e.Anchor != "" && !e.Resolved {
			line += " [missing target]"
		}
		fmt.Fprintln(w, line)
		printLevel(w, e.Children, depth+1)
	}
}

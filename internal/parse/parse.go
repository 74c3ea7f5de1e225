// Package parse prepares an HTML page for conversion. It narrows the page to
// its content (by selector or by scoring), strips boilerplate and records the
// heading outline used for section output and completeness checks.
package parse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"go_mdconv/internal/converr"
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

type Section struct {
	HeadingText   string   `json:"heading_text"`
	HeadingLevel  int      `json:"heading_level"`
	HeadingID     string   `json:"heading_id"`
	ContentHTML   string   `json:"content_html"`
	ContentText   string   `json:"content_text"`
	AnchorTargets []string `json:"anchor_targets,omitempty"`
	ContentIDs    []string `json:"-"`
}

// Document is the outline of the extracted content.
type Document struct {
	Title         string    `json:"title,omitempty"`
	Sections      []Section `json:"sections"`
	HeadingIDs    []string  `json:"heading_ids,omitempty"`
	AnchorTargets []string  `json:"anchor_targets,omitempty"`
	AllElementIDs []string  `json:"-"`
}

// NewDocument parses htmlText with goquery. A leading byte order mark is
// dropped; malformed UTF-8 is a PARSE_ERROR.
func NewDocument(htmlText string) (*goquery.Document, error) {
	htmlText = strings.TrimPrefix(htmlText, "\uFEFF")
	if strings.TrimSpace(htmlText) == "" {
		return nil, converr.NewParse("empty html", nil)
	}
	if !utf8.ValidString(htmlText) {
		return nil, converr.NewInvalidEncoding(firstInvalid(htmlText))
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, converr.NewParse("parse html", err)
	}
	return doc, nil
}

// ExtractBySelector returns a document rooted at the first match of selector,
// or doc itself when selector is blank.
func ExtractBySelector(doc *goquery.Document, selector string) (*goquery.Document, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	if strings.TrimSpace(selector) == "" {
		return doc, nil
	}
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, errors.New("selector not found: " + selector)
	}
	return goquery.NewDocumentFromNode(sel.Get(0)), nil
}

// Title returns the trimmed text of the first title element.
func Title(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// Parse splits the document into heading sections. Each section holds the
// siblings that follow its heading up to the next heading.
func Parse(doc *goquery.Document) (*Document, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}

	out := &Document{Title: Title(doc), Sections: []Section{}}
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		if id := s.AttrOr("id", ""); id != "" {
			out.AllElementIDs = append(out.AllElementIDs, id)
		}
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if strings.HasPrefix(href, "#") && len(href) > 1 {
			out.AnchorTargets = append(out.AnchorTargets, href[1:])
		}
	})

	seen := map[string]struct{}{}
	doc.Find(headingSelector).Each(func(_ int, s *goquery.Selection) {
		id := s.AttrOr("id", "")
		if id == "" {
			id = s.Find("[id]").First().AttrOr("id", "")
		}

		content := s.NextUntil(headingSelector)
		// <div><h2>x</h2></div><p>body</p>: the body follows the wrapper.
		if content.Length() == 0 && s.Next().Length() == 0 {
			if parent := s.Parent(); !parent.Is("body, html") {
				content = parent.NextUntil(headingSelector + ", :has(" + headingSelector + ")")
			}
		}
		contentHTML, contentText, contentIDs := renderSelection(content)

		text := strings.Join(strings.Fields(s.Text()), " ")
		if id == "" {
			id = slugifyHeading(text)
		}
		id = deduplicateID(id, seen)
		if id != "" {
			out.HeadingIDs = append(out.HeadingIDs, id)
		}

		out.Sections = append(out.Sections, Section{
			HeadingText:   text,
			HeadingLevel:  headingLevel(goquery.NodeName(s)),
			HeadingID:     id,
			ContentHTML:   contentHTML,
			ContentText:   strings.TrimSpace(contentText),
			AnchorTargets: out.AnchorTargets,
			ContentIDs:    contentIDs,
		})
	})
	return out, nil
}

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

func slugifyHeading(text string) string {
	text = strings.TrimSpace(strings.ToLower(text))
	return strings.Trim(slugRegexp.ReplaceAllString(text, "_"), "_")
}

func deduplicateID(id string, seen map[string]struct{}) string {
	if id == "" {
		return ""
	}
	candidate := id
	for n := 2; ; n++ {
		if _, taken := seen[candidate]; !taken {
			seen[candidate] = struct{}{}
			return candidate
		}
		candidate = id + "_" + strconv.Itoa(n)
	}
}

func headingLevel(tag string) int {
	if len(tag) == 2 && (tag[0] == 'h' || tag[0] == 'H') && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func renderSelection(sel *goquery.Selection) (string, string, []string) {
	var htmlBuf, textBuf strings.Builder
	var ids []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if s.Is("script, style, noscript, template") {
			return
		}
		h, _ := goquery.OuterHtml(s)
		htmlBuf.WriteString(h)
		textBuf.WriteString(s.Text())
		textBuf.WriteString(" ")
		s.Find("[id]").AddBack().Each(func(_ int, node *goquery.Selection) {
			if id := node.AttrOr("id", ""); id != "" {
				ids = append(ids, id)
			}
		})
	})
	return htmlBuf.String(), textBuf.String(), ids
}

func firstInvalid(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size <= 1 {
				return i
			}
		}
	}
	return len(s)
}

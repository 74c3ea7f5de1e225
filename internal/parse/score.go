package parse

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MinContentScore is the score below which the body is used instead of the
// best candidate.
const MinContentScore = 50

const candidateSelector = "div, article, main, section"

var (
	negativeHints = regexp.MustCompile(`(?i)comment|sidebar|footer|menu|nav|ad|promo|share|social`)
	positiveHints = regexp.MustCompile(`(?i)article|content|post|body|main|story|entry`)
)

// Candidate is a scored content container.
type Candidate struct {
	Tag         string  `json:"tag"`
	ID          string  `json:"id,omitempty"`
	Class       string  `json:"class,omitempty"`
	Score       int     `json:"score"`
	TextLength  int     `json:"text_length"`
	Paragraphs  int     `json:"paragraphs"`
	LinkDensity float64 `json:"link_density"`

	sel *goquery.Selection
}

// Selection returns the scored element.
func (c Candidate) Selection() *goquery.Selection {
	return c.sel
}

// Label is a short css-like name, e.g. div#main.post.
func (c Candidate) Label() string {
	var b strings.Builder
	b.WriteString(c.Tag)
	if c.ID != "" {
		b.WriteString("#" + c.ID)
	}
	for _, cls := range strings.Fields(c.Class) {
		b.WriteString("." + cls)
	}
	return b.String()
}

// Score rates a container by how much it looks like the main text: text
// length, paragraphs, link density and class/id hints.
func Score(sel *goquery.Selection) Candidate {
	c := Candidate{
		Tag:   goquery.NodeName(sel),
		ID:    sel.AttrOr("id", ""),
		Class: sel.AttrOr("class", ""),
		sel:   sel,
	}
	text := strings.Join(strings.Fields(sel.Text()), " ")
	c.TextLength = utf8.RuneCountInString(text)
	c.Paragraphs = sel.Find("p").Length()
	c.Score = c.TextLength + c.Paragraphs*25

	linkText := 0
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkText += utf8.RuneCountInString(strings.TrimSpace(a.Text()))
	})
	if c.TextLength > 0 {
		c.LinkDensity = float64(linkText) / float64(c.TextLength)
		if c.LinkDensity > 0.4 {
			c.Score -= 100
		}
	}

	hints := strings.Join(strings.Fields(c.Class), " ") + " " + c.ID
	if negativeHints.MatchString(hints) {
		c.Score -= 50
	}
	if positiveHints.MatchString(hints) {
		c.Score += 50
	}
	if c.Tag == "article" {
		c.Score += 200
	}
	return c
}

// Candidates scores every div, article, main and section, best first. Ties
// keep document order.
func Candidates(doc *goquery.Document) []Candidate {
	if doc == nil {
		return nil
	}
	var out []Candidate
	doc.Find(candidateSelector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, Score(s))
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// ExtractBest narrows doc to the best scoring candidate. When there is no
// candidate or the best one scores under MinContentScore the body is used and
// ok is false.
func ExtractBest(doc *goquery.Document) (*goquery.Document, Candidate, bool) {
	candidates := Candidates(doc)
	if len(candidates) > 0 && candidates[0].Score >= MinContentScore {
		best := candidates[0]
		return goquery.NewDocumentFromNode(best.sel.Get(0)), best, true
	}
	var best Candidate
	if len(candidates) > 0 {
		best = candidates[0]
	}
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return doc, best, false
	}
	return goquery.NewDocumentFromNode(body.Get(0)), best, false
}

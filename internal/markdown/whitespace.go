package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// collapseSpace folds every run of HTML whitespace into a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isHTMLSpace), " ")
}

// inlineWriter accumulates one run of inline Markdown. Whitespace is held
// back as a pending space so it is emitted once, between content only, and
// never at the start of a line.
type inlineWriter struct {
	buf       []byte
	pending   bool
	leading   bool
	started   bool
	lineStart bool
	breakSeq  string
	// emph is the last emphasis written, kept until the next write so its
	// closing delimiter can be fixed up against the following character.
	emph emphSpan
}

type emphSpan struct {
	start, end int
	delim      string
	active     bool
}

func newInlineWriter(lineStart bool, breakSeq string) *inlineWriter {
	return &inlineWriter{lineStart: lineStart, breakSeq: breakSeq}
}

func (w *inlineWriter) atLineStart() bool {
	if len(w.buf) == 0 {
		return w.lineStart
	}
	return w.buf[len(w.buf)-1] == '\n'
}

func (w *inlineWriter) space() {
	if !w.started {
		w.leading = true
		return
	}
	if w.atLineStart() {
		return
	}
	w.pending = true
}

func (w *inlineWriter) flush() {
	if w.pending {
		w.buf = append(w.buf, ' ')
		w.pending = false
	}
}

// raw writes already formatted Markdown.
func (w *inlineWriter) raw(s string) {
	if s == "" {
		return
	}
	if w.emph.active && !w.pending && w.emph.end == len(w.buf) && startsWithWord(s) {
		w.fixEmphasisClose()
	}
	w.emph.active = false
	w.flush()
	w.buf = append(w.buf, s...)
	w.started = true
}

// text writes HTML character data: whitespace collapsed, Markdown escaped.
func (w *inlineWriter) text(s string) {
	if s == "" {
		return
	}
	words := strings.FieldsFunc(s, isHTMLSpace)
	if len(words) == 0 {
		w.space()
		return
	}
	if isHTMLSpace(rune(s[0])) {
		w.space()
	}
	for i, word := range words {
		if i > 0 {
			w.space()
		}
		w.raw(escapeText(word, w.atLineStart()))
	}
	if isHTMLSpace(rune(s[len(s)-1])) {
		w.space()
	}
}

// prev is the character the next write follows: a space when whitespace is
// pending, 0 at the start of the run.
func (w *inlineWriter) prev() rune {
	if w.pending {
		return ' '
	}
	if len(w.buf) == 0 {
		return 0
	}
	r, _ := utf8.DecodeLastRune(w.buf)
	return r
}

// emphasis writes res between delim runs and remembers the span.
func (w *inlineWriter) emphasis(res inlineResult, delim string) {
	if res.leading {
		w.space()
	}
	if res.text != "" {
		w.raw(delim + res.text + delim)
		w.emph = emphSpan{start: len(w.buf) - len(res.text) - 2*len(delim), end: len(w.buf), delim: delim, active: true}
	}
	if res.trailing {
		w.space()
	}
}

const closingPunct = ".,:;!?"

// fixEmphasisClose runs when a letter or digit follows the last emphasis
// directly. Underscores cannot close inside a word, so they become stars,
// and trailing sentence punctuation moves past the closing run, which cannot
// close between punctuation and a word.
func (w *inlineWriter) fixEmphasisClose() {
	e := w.emph
	inner := string(w.buf[e.start+len(e.delim) : e.end-len(e.delim)])
	d := e.delim
	if d[0] == '_' && (e.start == 0 || w.buf[e.start-1] != '*') &&
		!strings.HasPrefix(inner, "*") && !strings.HasSuffix(inner, "*") {
		d = otherDelimiter(d)
	}
	tail := ""
	if cut := strings.TrimRight(inner, closingPunct); cut != "" && cut != inner && !strings.HasSuffix(cut, `\`) {
		inner, tail = cut, inner[len(cut):]
	}
	w.buf = append(w.buf[:e.start], d+inner+d+tail...)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func startsWithWord(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return isWordRune(r)
}

// lineBreak emits a hard break. Breaks before any content are dropped.
func (w *inlineWriter) lineBreak() {
	if !w.started {
		return
	}
	w.pending = false
	w.buf = append(w.buf, w.breakSeq...)
}

// escapeBang protects a trailing "!" so a following "[" cannot form an image.
func (w *inlineWriter) escapeBang() {
	if w.pending || len(w.buf) == 0 || w.buf[len(w.buf)-1] != '!' {
		return
	}
	if len(w.buf) > 1 && w.buf[len(w.buf)-2] == '\\' {
		return
	}
	w.buf = append(w.buf[:len(w.buf)-1], '\\', '!')
}

func (w *inlineWriter) trailingSpace() bool {
	return w.pending
}

// finish returns the run without trailing breaks or spaces.
func (w *inlineWriter) finish() string {
	s := string(w.buf)
	for {
		trimmed := strings.TrimRight(s, " \t")
		if strings.HasSuffix(trimmed, w.breakSeq) {
			trimmed = strings.TrimSuffix(trimmed, w.breakSeq)
		} else if strings.HasSuffix(trimmed, "\n") {
			trimmed = strings.TrimSuffix(trimmed, "\n")
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

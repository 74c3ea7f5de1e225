package output

import (
	"strings"
	"unicode/utf8"
)

// ChunkLimits bounds the size of a written Markdown file. Zero fields are
// unlimited; tokens are estimated at four characters each.
type ChunkLimits struct {
	MaxBytes  int
	MaxChars  int
	MaxTokens int
}

func (c ChunkLimits) Enabled() bool {
	return c.MaxBytes > 0 || c.MaxChars > 0 || c.MaxTokens > 0
}

func (c ChunkLimits) exceeds(size chunkSize) bool {
	return (c.MaxBytes > 0 && size.bytes > c.MaxBytes) ||
		(c.MaxChars > 0 && size.chars > c.MaxChars) ||
		(c.MaxTokens > 0 && size.tokens > c.MaxTokens)
}

type chunkSize struct {
	bytes  int
	chars  int
	tokens int
}

func sizeOf(s string) chunkSize {
	chars := utf8.RuneCountInString(s)
	return chunkSize{bytes: len(s), chars: chars, tokens: (chars + 3) / 4}
}

func (s chunkSize) add(o chunkSize) chunkSize {
	return chunkSize{bytes: s.bytes + o.bytes, chars: s.chars + o.chars, tokens: s.tokens + o.tokens}
}

// atxLevel returns the level of an ATX heading line, or 0.
func atxLevel(line string) int {
	line = strings.TrimLeft(line, " ")
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	if n < len(line) && line[n] != ' ' && line[n] != '\t' {
		return 0
	}
	return n
}

func isFenceLine(line string) bool {
	trim := strings.TrimSpace(line)
	return strings.HasPrefix(trim, "```") || strings.HasPrefix(trim, "~~~")
}

func firstHeadingLine(md string) string {
	for _, line := range strings.Split(md, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if atxLevel(line) > 0 {
			return strings.TrimSpace(line)
		}
		break
	}
	return ""
}

// splitMarkdownByHeadings cuts md into parts within limits. The leading
// heading is repeated at the top of every part and the cuts fall on
// subheadings first, then on blank lines.
func splitMarkdownByHeadings(md string, limits ChunkLimits) []string {
	md = strings.TrimSpace(md)
	if md == "" {
		return nil
	}
	if !limits.Enabled() || !limits.exceeds(sizeOf(md)) {
		return []string{md + "\n"}
	}

	prefix, body, level := splitHeadingPrefix(md)
	if limits.exceeds(sizeOf(prefix)) {
		prefix = ""
	}
	w := &chunkWriter{prefix: prefix, limits: limits}
	w.reset()
	for _, block := range splitOnSubheadings(body, level+1) {
		w.add(block)
	}
	return w.Parts()
}

func splitHeadingPrefix(md string) (string, string, int) {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if level := atxLevel(line); level > 0 {
			rest := strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			return strings.TrimSpace(line) + "\n\n", rest, level
		}
		break
	}
	return "", md, 0
}

// splitOnSubheadings starts a new block at every ATX heading of minLevel or
// deeper. Headings inside fenced code do not count.
func splitOnSubheadings(body string, minLevel int) []string {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	var blocks []string
	var cur strings.Builder
	inFence := false
	for _, line := range lines {
		if isFenceLine(line) {
			inFence = !inFence
		}
		if level := atxLevel(line); !inFence && level >= minLevel && cur.Len() > 0 {
			if block := strings.TrimSpace(cur.String()); block != "" {
				blocks = append(blocks, block)
			}
			cur.Reset()
		}
		cur.WriteString(line)
		cur.WriteString("\n")
	}
	if block := strings.TrimSpace(cur.String()); block != "" {
		blocks = append(blocks, block)
	}
	return blocks
}

func splitOnParagraphs(body string) []string {
	var out []string
	for _, b := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n\n") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

type chunkWriter struct {
	prefix string
	limits ChunkLimits
	cur    strings.Builder
	size   chunkSize
	body   bool
	parts  []string
}

func (w *chunkWriter) reset() {
	w.cur.Reset()
	w.cur.WriteString(w.prefix)
	w.size = sizeOf(w.prefix)
	w.body = false
}

func (w *chunkWriter) add(block string) {
	block = strings.TrimSpace(block)
	if block == "" {
		return
	}
	pieces := []string{block}
	if w.limits.exceeds(sizeOf(block)) {
		pieces = splitOnParagraphs(block)
	}
	for _, p := range pieces {
		w.addPiece(p)
	}
}

func (w *chunkWriter) addPiece(p string) {
	sep := ""
	if w.body {
		sep = "\n\n"
	}
	next := w.size.add(sizeOf(sep + p))
	if w.body && w.limits.exceeds(next) {
		w.flush()
		sep = ""
		next = w.size.add(sizeOf(p))
	}
	w.cur.WriteString(sep)
	w.cur.WriteString(p)
	w.size = next
	w.body = true
}

func (w *chunkWriter) flush() {
	if w.body {
		w.parts = append(w.parts, strings.TrimSpace(w.cur.String())+"\n")
	}
	w.reset()
}

func (w *chunkWriter) Parts() []string {
	w.flush()
	return w.parts
}

// bundleParts packs whole parts into bundles within limits. A part larger
// than the limits becomes a bundle of its own.
func bundleParts(parts []string, limits ChunkLimits) []string {
	var bundles []string
	var cur strings.Builder
	var size chunkSize
	emit := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			bundles = append(bundles, s+"\n")
		}
		cur.Reset()
		size = chunkSize{}
	}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part += "\n"
		if size.bytes > 0 {
			part = "\n" + part
		}
		if size.bytes > 0 && limits.exceeds(size.add(sizeOf(part))) {
			emit()
			part = strings.TrimPrefix(part, "\n")
		}
		cur.WriteString(part)
		size = size.add(sizeOf(part))
		if limits.exceeds(size) {
			emit()
		}
	}
	emit()
	return bundles
}

// SplitOnHeadings cuts md before every ATX heading outside fenced code.
func SplitOnHeadings(md string) []string {
	return splitOnSubheadings(md, 1)
}

package markdown

import (
	"regexp"
	"strings"
)

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
)

// entityPattern matches text a CommonMark reader would decode as a
// character reference.
var entityPattern = regexp.MustCompile(`&(#[0-9]{1,7};|#[xX][0-9a-fA-F]{1,6};|[A-Za-z][A-Za-z0-9]{0,31};)`)

// escapeText escapes one whitespace-free word of text. Line-start patterns
// are only checked when the word opens a line.
func escapeText(word string, lineStart bool) string {
	s := textEscaper.Replace(word)
	if strings.Contains(s, "&") {
		s = entityPattern.ReplaceAllString(s, `\&$1`)
	}
	if lineStart {
		s = escapeLineStart(s)
	}
	return s
}

func escapeLineStart(s string) string {
	switch {
	case s == "":
		return s
	case s[0] == '#':
		return `\` + s
	case s == "+":
		return `\+`
	case allOf(s, '-') || allOf(s, '='):
		return `\` + s
	case strings.HasPrefix(s, "~~~"):
		return `\` + s
	case isOrderedMarker(s):
		return s[:len(s)-1] + `\` + s[len(s)-1:]
	}
	return s
}

func allOf(s string, ch byte) bool {
	return s != "" && strings.Count(s, string(ch)) == len(s)
}

func isOrderedMarker(s string) bool {
	if len(s) < 2 {
		return false
	}
	last := s[len(s)-1]
	if last != '.' && last != ')' {
		return false
	}
	for _, r := range s[:len(s)-1] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var titleEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func formatTitle(title string) string {
	return `"` + titleEscaper.Replace(collapseSpace(title)) + `"`
}

var angleEscaper = strings.NewReplacer("<", `\<`, ">", `\>`)

var controlStripper = strings.NewReplacer("\n", "", "\r", "", "\t", "")

// formatDestination wraps destinations that CommonMark cannot take bare.
// Line breaks and tabs are dropped the way browsers drop them from URLs.
func formatDestination(url string) string {
	url = controlStripper.Replace(url)
	if url == "" {
		return "<>"
	}
	if strings.ContainsAny(url, " ()<>") {
		return "<" + angleEscaper.Replace(url) + ">"
	}
	return url
}

var cellEscaper = strings.NewReplacer("|", `\|`)

// longestRun returns the longest consecutive run of ch in s.
func longestRun(s string, ch byte) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == ch {
			cur++
			if cur > best {
				best = cur
			}
			continue
		}
		cur = 0
	}
	return best
}

package markdown

import "strings"

// Fragment is a piece of rendered Markdown. Block fragments are separated
// from their neighbours by line breaks; Blank additionally asks for an empty
// line even inside a list item.
type Fragment struct {
	Text  string
	Block bool
	Blank bool

	// verbatim marks text whose continuation lines must keep their exact
	// indentation, such as code blocks.
	verbatim bool
}

// BlockFragment returns a block that is always set off by blank lines.
func BlockFragment(text string) *Fragment {
	return &Fragment{Text: text, Block: true, Blank: true}
}

// InlineFragment returns text that continues the surrounding line.
func InlineFragment(text string) *Fragment {
	return &Fragment{Text: text}
}

// joinFragments glues sibling blocks. Outside tight containers every pair is
// separated by exactly one blank line.
func joinFragments(frags []Fragment, tight bool) string {
	var b strings.Builder
	var prev *Fragment
	for i := range frags {
		f := &frags[i]
		text := strings.Trim(f.Text, "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if prev != nil {
			if !tight || prev.Blank || f.Blank {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}
		b.WriteString(text)
		prev = f
	}
	return b.String()
}

// indentLines prefixes every non-empty line after the first.
func indentLines(text string, indent int) string {
	if indent <= 0 || !strings.Contains(text, "\n") {
		return text
	}
	pad := strings.Repeat(" ", indent)
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// quoteLines prefixes each line with a quote marker. Lines that are already
// quoted get ">" alone so nesting reads ">>".
func quoteLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case strings.TrimSpace(line) == "":
			lines[i] = ">"
		case strings.HasPrefix(line, ">"):
			lines[i] = ">" + line
		default:
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

// flattenBlock turns a multi-line block into a single line for contexts that
// cannot hold line breaks.
func flattenBlock(text string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(text, "\\\n", "\n")), " ")
}

func anyVerbatim(frags []Fragment) bool {
	for _, f := range frags {
		if f.verbatim {
			return true
		}
	}
	return false
}

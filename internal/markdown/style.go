package markdown

import (
	"fmt"
	"strings"

	"go_mdconv/internal/converr"
)

type HeadingStyle string

const (
	HeadingATX    HeadingStyle = "atx"
	HeadingSetext HeadingStyle = "setext"
)

type CodeBlockStyle string

const (
	CodeBlockFenced   CodeBlockStyle = "fenced"
	CodeBlockIndented CodeBlockStyle = "indented"
)

type LinkStyle string

const (
	LinkInline     LinkStyle = "inline"
	LinkReferenced LinkStyle = "referenced"
)

type LineBreakStyle string

const (
	LineBreakSpaces    LineBreakStyle = "spaces"
	LineBreakBackslash LineBreakStyle = "backslash"
)

// Style is the immutable set of output options for one Converter. Empty
// fields take the DefaultStyle value. Setext headings only exist for levels
// 1 and 2; levels 3 to 6 are always written in ATX form.
type Style struct {
	HeadingStyle    HeadingStyle   `json:"heading_style,omitempty" yaml:"heading_style,omitempty"`
	BulletMarker    string         `json:"bullet_marker,omitempty" yaml:"bullet_marker,omitempty"`
	OrderedMarker   string         `json:"ordered_marker,omitempty" yaml:"ordered_marker,omitempty"`
	CodeBlockStyle  CodeBlockStyle `json:"code_block_style,omitempty" yaml:"code_block_style,omitempty"`
	Fence           string         `json:"fence,omitempty" yaml:"fence,omitempty"`
	EmDelimiter     string         `json:"em_delimiter,omitempty" yaml:"em_delimiter,omitempty"`
	StrongDelimiter string         `json:"strong_delimiter,omitempty" yaml:"strong_delimiter,omitempty"`
	LinkStyle       LinkStyle      `json:"link_style,omitempty" yaml:"link_style,omitempty"`
	HorizontalRule  string         `json:"horizontal_rule,omitempty" yaml:"horizontal_rule,omitempty"`
	LineBreak       LineBreakStyle `json:"line_break,omitempty" yaml:"line_break,omitempty"`
	ListIndent      int            `json:"list_indent,omitempty" yaml:"list_indent,omitempty"`
	Strikethrough   bool           `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`
	PadTables       bool           `json:"pad_tables,omitempty" yaml:"pad_tables,omitempty"`
}

// DefaultStyle returns the CommonMark/GFM flavoured defaults.
func DefaultStyle() Style {
	return Style{
		HeadingStyle:    HeadingATX,
		BulletMarker:    "-",
		OrderedMarker:   ".",
		CodeBlockStyle:  CodeBlockFenced,
		Fence:           "```",
		EmDelimiter:     "_",
		StrongDelimiter: "**",
		LinkStyle:       LinkInline,
		HorizontalRule:  "---",
		LineBreak:       LineBreakSpaces,
		ListIndent:      4,
		Strikethrough:   true,
	}
}

func (s Style) withDefaults() Style {
	def := DefaultStyle()
	if s.HeadingStyle == "" {
		s.HeadingStyle = def.HeadingStyle
	}
	if s.BulletMarker == "" {
		s.BulletMarker = def.BulletMarker
	}
	if s.OrderedMarker == "" {
		s.OrderedMarker = def.OrderedMarker
	}
	if s.CodeBlockStyle == "" {
		s.CodeBlockStyle = def.CodeBlockStyle
	}
	if s.Fence == "" {
		s.Fence = def.Fence
	}
	if s.EmDelimiter == "" {
		s.EmDelimiter = def.EmDelimiter
	}
	if s.StrongDelimiter == "" {
		s.StrongDelimiter = def.StrongDelimiter
	}
	if s.LinkStyle == "" {
		s.LinkStyle = def.LinkStyle
	}
	if s.HorizontalRule == "" {
		s.HorizontalRule = def.HorizontalRule
	}
	if s.LineBreak == "" {
		s.LineBreak = def.LineBreak
	}
	if s.ListIndent == 0 {
		s.ListIndent = def.ListIndent
	}
	return s
}

// Validate reports the first invalid option as a CONFIG_ERROR.
func (s Style) Validate() error {
	s = s.withDefaults()
	switch s.HeadingStyle {
	case HeadingATX, HeadingSetext:
	default:
		return converr.NewConfig("heading_style", string(s.HeadingStyle), "must be atx or setext")
	}
	if !oneOf(s.BulletMarker, "-", "*", "+") {
		return converr.NewConfig("bullet_marker", s.BulletMarker, "must be one of -, *, +")
	}
	if !oneOf(s.OrderedMarker, ".", ")") {
		return converr.NewConfig("ordered_marker", s.OrderedMarker, "must be . or )")
	}
	switch s.CodeBlockStyle {
	case CodeBlockFenced, CodeBlockIndented:
	default:
		return converr.NewConfig("code_block_style", string(s.CodeBlockStyle), "must be fenced or indented")
	}
	if !validFence(s.Fence) {
		return converr.NewConfig("fence", s.Fence, "must be three or more backticks or tildes")
	}
	if !oneOf(s.EmDelimiter, "*", "_") {
		return converr.NewConfig("em_delimiter", s.EmDelimiter, "must be * or _")
	}
	if !oneOf(s.StrongDelimiter, "**", "__") {
		return converr.NewConfig("strong_delimiter", s.StrongDelimiter, "must be ** or __")
	}
	switch s.LinkStyle {
	case LinkInline, LinkReferenced:
	default:
		return converr.NewConfig("link_style", string(s.LinkStyle), "must be inline or referenced")
	}
	if !validRule(s.HorizontalRule) {
		return converr.NewConfig("horizontal_rule", s.HorizontalRule, "must be three or more of the same -, * or _ character")
	}
	switch s.LineBreak {
	case LineBreakSpaces, LineBreakBackslash:
	default:
		return converr.NewConfig("line_break", string(s.LineBreak), "must be spaces or backslash")
	}
	if s.ListIndent < 1 || s.ListIndent > 8 {
		return converr.NewConfig("list_indent", fmt.Sprintf("%d", s.ListIndent), "must be between 1 and 8")
	}
	return nil
}

func (s Style) breakSequence() string {
	if s.LineBreak == LineBreakBackslash {
		return "\\\n"
	}
	return "  \n"
}

func oneOf(v string, options ...string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

func validFence(f string) bool {
	if len(f) < 3 || (f[0] != '`' && f[0] != '~') {
		return false
	}
	return strings.Count(f, f[:1]) == len(f)
}

func validRule(token string) bool {
	t := strings.ReplaceAll(token, " ", "")
	if len(t) < 3 || !strings.ContainsAny(t[:1], "-*_") {
		return false
	}
	return strings.Count(t, t[:1]) == len(t)
}

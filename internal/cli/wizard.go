package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go_mdconv/internal/config"
	"go_mdconv/internal/markdown"
)

// RunConfigWizard asks for the common style options on out, reads the
// answers from in and saves the config to path.
func RunConfigWizard(in io.Reader, out io.Writer, path string) error {
	reader := bufio.NewReader(in)
	fmt.Fprintln(out, "Config wizard (press Enter to accept defaults)")

	def := markdown.DefaultStyle()
	path = promptString(reader, out, "Config file path", path)
	heading := promptString(reader, out, "Heading style (atx|setext)", string(def.HeadingStyle))
	bullet := promptString(reader, out, "Bullet marker (-|*|+)", def.BulletMarker)
	codeBlocks := promptString(reader, out, "Code blocks (fenced|indented)", string(def.CodeBlockStyle))
	links := promptString(reader, out, "Link style (inline|referenced)", string(def.LinkStyle))
	indent := promptInt(reader, out, "List indent", def.ListIndent)
	strike := promptBool(reader, out, "Strikethrough (true/false)", def.Strikethrough)
	padTables := promptBool(reader, out, "Pad tables (true/false)", false)
	baseURL := promptString(reader, out, "Base URL (optional)", "")
	contentSel := promptString(reader, out, "Content selector (optional)", "")

	cfg := config.Config{
		HeadingStyle:    heading,
		BulletMarker:    bullet,
		CodeBlockStyle:  codeBlocks,
		LinkStyle:       links,
		ListIndent:      indent,
		Strikethrough:   &strike,
		PadTables:       padTables,
		BaseURL:         strings.TrimSpace(baseURL),
		ContentSelector: strings.TrimSpace(contentSel),
	}
	if err := cfg.Validate(); err != nil {
		return usageError(err)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}

// answer prints the prompt and returns the trimmed reply. An empty reply or
// end of input means the default.
func answer(reader *bufio.Reader, out io.Writer, label, def string) (string, bool) {
	if def != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	return line, line != ""
}

func promptString(reader *bufio.Reader, out io.Writer, label, def string) string {
	if v, ok := answer(reader, out, label, def); ok {
		return v
	}
	return def
}

// promptInt keeps def when the reply is not a number.
func promptInt(reader *bufio.Reader, out io.Writer, label string, def int) int {
	v, ok := answer(reader, out, label, strconv.Itoa(def))
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// promptBool accepts y/yes/n/no and anything strconv.ParseBool does.
func promptBool(reader *bufio.Reader, out io.Writer, label string, def bool) bool {
	v, ok := answer(reader, out, label, strconv.FormatBool(def))
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

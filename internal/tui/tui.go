// Package tui is the interactive config wizard behind init-config.
package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"go_mdconv/internal/config"
	"go_mdconv/internal/markdown"
)

type Result struct {
	Config     config.Config
	ConfigPath string
	Saved      bool
}

// Run loads or creates a config through huh forms and writes it when the
// user picks save.
func Run(defaultPath string) (Result, error) {
	printBanner()
	state := newFormState()
	if strings.TrimSpace(defaultPath) != "" {
		state.configPath = defaultPath
	}

	if err := manageConfigs(state); err != nil {
		return Result{}, err
	}

	form := buildForm(state).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return Result{}, err
	}

	return buildResult(state)
}

func printBanner() {
	fmt.Print(`
                              _
  __ _  ___    _ __ ___   __| | ___ ___  _ ____   __
 / _` + "`" + ` |/ _ \  | '_ ` + "`" + ` _ \ / _` + "`" + ` |/ __/ _ \| '_ \ \ / /
| (_| | (_) | | | | | | | (_| | (_| (_) | | | \ V /
 \__, |\___/  |_| |_| |_|\__,_|\___\___/|_| |_|\_/
 |___/
`)
}

func manageConfigs(state *formState) error {
	for {
		files, err := listConfigFiles()
		if err != nil {
			return fmt.Errorf("failed to list configs: %w", err)
		}

		if len(files) == 0 {
			return nil
		}

		var selectedFile string
		opts := []huh.Option[string]{
			huh.NewOption("Start fresh (defaults)", ""),
		}
		for _, f := range files {
			opts = append(opts, huh.NewOption(fmt.Sprintf("Manage %s", f), f))
		}

		selectForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Manage Configurations").
					Description("Select a config to load or manage, or start fresh.").
					Options(opts...).
					Value(&selectedFile),
			),
		).WithTheme(huh.ThemeDracula())

		if err := selectForm.Run(); err != nil {
			return err
		}

		if selectedFile == "" {
			return nil
		}

		var action string
		actionForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("Action for %s", selectedFile)).
					Options(
						huh.NewOption("Load this config", "load"),
						huh.NewOption("Rename this config", "rename"),
						huh.NewOption("Clone this config", "clone"),
						huh.NewOption("Delete this config", "delete"),
						huh.NewOption("Back to list", "back"),
					).
					Value(&action),
			),
		).WithTheme(huh.ThemeDracula())

		if err := actionForm.Run(); err != nil {
			return err
		}

		shouldExit, err := executeConfigAction(action, selectedFile, state)
		if err != nil {
			return err
		}
		if shouldExit {
			return nil
		}
	}
}

func listConfigFiles() ([]string, error) {
	var files []string
	for _, dir := range config.SearchDirs() {
		for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		}
	}
	return files, nil
}

func executeConfigAction(action, selectedFile string, state *formState) (bool, error) {
	switch action {
	case "load":
		cfg, err := config.Load(selectedFile)
		if err != nil {
			return false, fmt.Errorf("failed to load %s: %w", selectedFile, err)
		}
		state.fromConfig(cfg)
		state.configPath = selectedFile
		return true, nil

	case "rename":
		var newName string
		if err := huh.NewInput().Title("New filename").Value(&newName).Validate(validateNewFilename).Run(); err != nil {
			return false, err
		}
		if err := os.Rename(selectedFile, ensureConfigExtension(newName)); err != nil {
			return false, fmt.Errorf("failed to rename: %w", err)
		}

	case "clone":
		var newName string
		if err := huh.NewInput().Title("Clone as").Value(&newName).Validate(validateNewFilename).Run(); err != nil {
			return false, err
		}
		if err := cloneConfig(selectedFile, ensureConfigExtension(newName)); err != nil {
			return false, err
		}

	case "delete":
		var confirmDelete bool
		if err := huh.NewConfirm().Title(fmt.Sprintf("Really delete %s?", selectedFile)).Affirmative("Yes, delete it.").Negative("No, keep it.").Value(&confirmDelete).Run(); err != nil {
			return false, err
		}
		if confirmDelete {
			if err := os.Remove(selectedFile); err != nil {
				return false, fmt.Errorf("failed to delete %s: %w", selectedFile, err)
			}
		}
	}

	return false, nil
}

// cloneConfig re-encodes src into dst, so a .json config can be cloned as
// .yaml and the other way round.
func cloneConfig(src, dst string) error {
	cfg, err := config.Load(src)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", src, err)
	}
	return config.Save(dst, cfg)
}

type formState struct {
	headingStyle    string
	bulletMarker    string
	codeBlockStyle  string
	fence           string
	emDelimiter     string
	strongDelimiter string
	linkStyle       string
	lineBreak       string
	listIndentStr   string
	strikethrough   bool
	padTables       bool
	admonitions     bool
	baseURL         string
	contentSel      string
	excludeSel      string
	autoDetect      bool
	removeNoise     bool
	frontmatter     bool
	maxOutputStr    string
	configPath      string
	finalAction     string
}

func newFormState() *formState {
	def := markdown.DefaultStyle()
	return &formState{
		headingStyle:    string(def.HeadingStyle),
		bulletMarker:    def.BulletMarker,
		codeBlockStyle:  string(def.CodeBlockStyle),
		fence:           def.Fence,
		emDelimiter:     def.EmDelimiter,
		strongDelimiter: def.StrongDelimiter,
		linkStyle:       string(def.LinkStyle),
		lineBreak:       string(def.LineBreak),
		listIndentStr:   strconv.Itoa(def.ListIndent),
		strikethrough:   def.Strikethrough,
		admonitions:     true,
		removeNoise:     true,
		frontmatter:     true,
		maxOutputStr:    humanize.IBytes(config.DefaultMaxOutputBytes),
		configPath:      config.DefaultConfigPath(),
		finalAction:     "save",
	}
}

func (s *formState) fromConfig(cfg config.Config) {
	st := cfg.Style()
	s.headingStyle = string(st.HeadingStyle)
	s.bulletMarker = st.BulletMarker
	s.codeBlockStyle = string(st.CodeBlockStyle)
	s.fence = st.Fence
	s.emDelimiter = st.EmDelimiter
	s.strongDelimiter = st.StrongDelimiter
	s.linkStyle = string(st.LinkStyle)
	s.lineBreak = string(st.LineBreak)
	s.listIndentStr = strconv.Itoa(st.ListIndent)
	s.strikethrough = st.Strikethrough
	s.padTables = cfg.PadTables
	s.admonitions = cfg.Admonitions == nil || *cfg.Admonitions
	s.baseURL = cfg.BaseURL
	s.contentSel = cfg.ContentSelector
	s.excludeSel = cfg.ExcludeSelector
	s.autoDetect = cfg.AutoDetect
	s.removeNoise = cfg.NoiseRemoval()
	s.frontmatter = cfg.WriteFrontmatter()
	s.maxOutputStr = humanize.IBytes(uint64(cfg.OutputLimit()))
}

func buildForm(state *formState) *huh.Form {
	return huh.NewForm(
		buildHeadingGroup(state),
		buildInlineGroup(state),
		buildBlockGroup(state),
		buildContentGroup(state),
		buildBatchGroup(state),
		buildFinishGroup(state),
	)
}

func buildHeadingGroup(state *formState) *huh.Group {
	return huh.NewGroup(
		huh.NewSelect[string]().Title("Heading style").Description("Setext only covers h1 and h2.").Value(&state.headingStyle).Options(
			huh.NewOption("ATX (# Title)", string(markdown.HeadingATX)),
			huh.NewOption("Setext (underlined)", string(markdown.HeadingSetext)),
		),
		huh.NewSelect[string]().Title("Bullet marker").Value(&state.bulletMarker).Options(
			huh.NewOption("-", "-"),
			huh.NewOption("*", "*"),
			huh.NewOption("+", "+"),
		),
		huh.NewInput().Title("List indent").Description("Spaces per nesting level.").Value(&state.listIndentStr).
			Validate(validateIntString(1, 8)),
	).Title("Headings & Lists")
}

func buildInlineGroup(state *formState) *huh.Group {
	return huh.NewGroup(
		huh.NewSelect[string]().Title("Emphasis delimiter").Value(&state.emDelimiter).Options(
			huh.NewOption("_", "_"),
			huh.NewOption("*", "*"),
		),
		huh.NewSelect[string]().Title("Strong delimiter").Value(&state.strongDelimiter).Options(
			huh.NewOption("**", "**"),
			huh.NewOption("__", "__"),
		),
		huh.NewSelect[string]().Title("Link style").Value(&state.linkStyle).Options(
			huh.NewOption("Inline [text](url)", string(markdown.LinkInline)),
			huh.NewOption("Referenced [text][1]", string(markdown.LinkReferenced)),
		),
		huh.NewSelect[string]().Title("Line break").Value(&state.lineBreak).Options(
			huh.NewOption("Two trailing spaces", string(markdown.LineBreakSpaces)),
			huh.NewOption("Backslash", string(markdown.LineBreakBackslash)),
		),
		huh.NewConfirm().Title("Strikethrough").Description("Render del/s/strike as ~~text~~?").Value(&state.strikethrough),
	).Title("Inline")
}

func buildBlockGroup(state *formState) *huh.Group {
	return huh.NewGroup(
		huh.NewSelect[string]().Title("Code blocks").Value(&state.codeBlockStyle).Options(
			huh.NewOption("Fenced", string(markdown.CodeBlockFenced)),
			huh.NewOption("Indented", string(markdown.CodeBlockIndented)),
		),
		huh.NewSelect[string]().Title("Fence").Value(&state.fence).Options(
			huh.NewOption("```", "```"),
			huh.NewOption("~~~", "~~~"),
		),
		huh.NewConfirm().Title("Pad tables").Description("Align table columns to equal width?").Value(&state.padTables),
		huh.NewConfirm().Title("Admonitions").Description("Render note/warning boxes as callouts?").Value(&state.admonitions),
	).Title("Blocks")
}

func buildContentGroup(state *formState) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Title("Base URL").Description("Optional: resolve relative links against it.").Placeholder("https://example.com/docs/").Value(&state.baseURL).
			Validate(validateBaseURL),
		huh.NewInput().Title("Content Selector").Description("CSS selector for main content area.").Placeholder(".content").Value(&state.contentSel),
		huh.NewInput().Title("Exclude Selector").Description("CSS selector to remove elements (ads, etc).").Placeholder(".ads").Value(&state.excludeSel),
		huh.NewConfirm().Title("Auto-detect content").Description("Score containers when no selector is set?").Value(&state.autoDetect),
		huh.NewConfirm().Title("Remove noise").Description("Drop script, nav, header, footer, aside and form?").Value(&state.removeNoise),
	).Title("Content")
}

func buildBatchGroup(state *formState) *huh.Group {
	return huh.NewGroup(
		huh.NewConfirm().Title("Frontmatter").Description("Prefix each batch document with source and title?").Value(&state.frontmatter),
		huh.NewInput().Title("Max output file size").Description("Batch output rolls over at this size.").Value(&state.maxOutputStr).
			Validate(validateByteSize),
	).Title("Batch")
}

func buildFinishGroup(state *formState) *huh.Group {
	return huh.NewGroup(
		huh.NewSelect[string]().Title("Action").Value(&state.finalAction).Options(
			huh.NewOption("Save config", "save"),
			huh.NewOption("Discard", "discard"),
		),
		huh.NewInput().Title("Config path").
			Description("A .yaml or .yml path writes YAML.").
			Value(&state.configPath).
			Validate(func(s string) error {
				if state.finalAction != "save" {
					return nil
				}
				if strings.TrimSpace(s) == "" {
					return errors.New("path cannot be empty")
				}
				return nil
			}),
	).Title("Finish")
}

func buildResult(state *formState) (Result, error) {
	indent, err := parsePositiveInt(state.listIndentStr, "list indent must be a positive integer")
	if err != nil {
		return Result{}, err
	}
	maxOutput, err := parseByteSize(state.maxOutputStr, "max output size must be a size like 2MiB")
	if err != nil {
		return Result{}, err
	}

	strike := state.strikethrough
	admonitions := state.admonitions
	removeNoise := state.removeNoise
	frontmatter := state.frontmatter
	cfg := config.Config{
		HeadingStyle:    state.headingStyle,
		BulletMarker:    state.bulletMarker,
		CodeBlockStyle:  state.codeBlockStyle,
		Fence:           state.fence,
		EmDelimiter:     state.emDelimiter,
		StrongDelimiter: state.strongDelimiter,
		LinkStyle:       state.linkStyle,
		LineBreak:       state.lineBreak,
		ListIndent:      indent,
		Strikethrough:   &strike,
		PadTables:       state.padTables,
		Admonitions:     &admonitions,
		BaseURL:         strings.TrimSpace(state.baseURL),
		ContentSelector: strings.TrimSpace(state.contentSel),
		ExcludeSelector: strings.TrimSpace(state.excludeSel),
		AutoDetect:      state.autoDetect,
		RemoveNoise:     &removeNoise,
		Frontmatter:     &frontmatter,
		MaxOutputBytes:  maxOutput,
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{
		Config:     cfg,
		ConfigPath: strings.TrimSpace(state.configPath),
	}
	if state.finalAction == "save" {
		if err := config.Save(res.ConfigPath, cfg); err != nil {
			return Result{}, err
		}
		res.Saved = true
	}
	return res, nil
}

func parsePositiveInt(s, errMsg string) (int, error) {
	val, err := parseInt(s)
	if err != nil || val <= 0 {
		return 0, errors.New(errMsg)
	}
	return val, nil
}

func parseByteSize(s, errMsg string) (int, error) {
	val, err := humanize.ParseBytes(strings.TrimSpace(s))
	if err != nil || val == 0 {
		return 0, errors.New(errMsg)
	}
	return int(val), nil
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func validateIntString(minVal, maxVal int) func(string) error {
	return func(s string) error {
		v, err := parseInt(s)
		if err != nil {
			return errors.New("must be an integer")
		}
		if v < minVal || v > maxVal {
			return fmt.Errorf("must be between %d and %d", minVal, maxVal)
		}
		return nil
	}
}

func validateByteSize(s string) error {
	_, err := parseByteSize(s, "must be a size like 2MiB or 500KB")
	return err
}

func validateBaseURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return errors.New("must start with http:// or https://")
	}
	return nil
}

func validateNewFilename(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("filename cannot be empty")
	}
	if strings.ContainsAny(s, `:*?"<>|`) {
		return errors.New("invalid characters")
	}
	if _, err := os.Stat(ensureConfigExtension(s)); err == nil {
		return errors.New("file already exists")
	}
	return nil
}

func ensureConfigExtension(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(filepath.Ext(s)) {
	case ".json", ".yaml", ".yml":
		return s
	}
	return s + ".json"
}

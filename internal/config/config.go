package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"go_mdconv/internal/converr"
	"go_mdconv/internal/markdown"
)

const (
	DefaultMaxInputBytes  = 10 << 20
	DefaultMaxOutputBytes = 2 << 20
	DefaultAddr           = ":8080"
)

type Config struct {
	// Markdown style
	HeadingStyle    string `json:"heading_style,omitempty" yaml:"heading_style,omitempty"`
	BulletMarker    string `json:"bullet_marker,omitempty" yaml:"bullet_marker,omitempty"`
	OrderedMarker   string `json:"ordered_marker,omitempty" yaml:"ordered_marker,omitempty"`
	CodeBlockStyle  string `json:"code_block_style,omitempty" yaml:"code_block_style,omitempty"`
	Fence           string `json:"fence,omitempty" yaml:"fence,omitempty"`
	EmDelimiter     string `json:"em_delimiter,omitempty" yaml:"em_delimiter,omitempty"`
	StrongDelimiter string `json:"strong_delimiter,omitempty" yaml:"strong_delimiter,omitempty"`
	LinkStyle       string `json:"link_style,omitempty" yaml:"link_style,omitempty"`
	HorizontalRule  string `json:"horizontal_rule,omitempty" yaml:"horizontal_rule,omitempty"`
	LineBreak       string `json:"line_break,omitempty" yaml:"line_break,omitempty"`
	ListIndent      int    `json:"list_indent,omitempty" yaml:"list_indent,omitempty"`
	Strikethrough   *bool  `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`
	PadTables       bool   `json:"pad_tables,omitempty" yaml:"pad_tables,omitempty"`
	// Plugins
	Admonitions *bool  `json:"admonitions,omitempty" yaml:"admonitions,omitempty"`
	BaseURL     string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// Content pipeline
	ContentSelector string `json:"content_selector,omitempty" yaml:"content_selector,omitempty"`
	ExcludeSelector string `json:"exclude_selector,omitempty" yaml:"exclude_selector,omitempty"`
	RemoveNoise     *bool  `json:"remove_noise,omitempty" yaml:"remove_noise,omitempty"`
	AutoDetect      bool   `json:"auto_detect,omitempty" yaml:"auto_detect,omitempty"`
	Frontmatter     *bool  `json:"frontmatter,omitempty" yaml:"frontmatter,omitempty"`
	// Limits and output
	MaxInputBytes  int64  `json:"max_input_bytes,omitempty" yaml:"max_input_bytes,omitempty"`
	MaxOutputBytes int    `json:"max_output_bytes,omitempty" yaml:"max_output_bytes,omitempty"`
	OutputDir      string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	// Service and logging
	Addr      string `json:"addr,omitempty" yaml:"addr,omitempty"`
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"`
}

// Load reads a JSON config, or YAML when the file ends in .yaml or .yml.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, converr.NewConfig("config", path, err.Error())
		}
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, converr.NewConfig("config", path, err.Error())
	}
	return cfg, nil
}

func Marshal(cfg Config) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}

// MarshalFor encodes cfg in the format implied by path.
func MarshalFor(path string, cfg Config) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(cfg)
	}
	return Marshal(cfg)
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := MarshalFor(path, cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Style maps the style section onto a markdown.Style. Unset fields keep the
// markdown defaults.
func (c Config) Style() markdown.Style {
	s := markdown.DefaultStyle()
	if c.HeadingStyle != "" {
		s.HeadingStyle = markdown.HeadingStyle(c.HeadingStyle)
	}
	if c.BulletMarker != "" {
		s.BulletMarker = c.BulletMarker
	}
	if c.OrderedMarker != "" {
		s.OrderedMarker = c.OrderedMarker
	}
	if c.CodeBlockStyle != "" {
		s.CodeBlockStyle = markdown.CodeBlockStyle(c.CodeBlockStyle)
	}
	if c.Fence != "" {
		s.Fence = c.Fence
	}
	if c.EmDelimiter != "" {
		s.EmDelimiter = c.EmDelimiter
	}
	if c.StrongDelimiter != "" {
		s.StrongDelimiter = c.StrongDelimiter
	}
	if c.LinkStyle != "" {
		s.LinkStyle = markdown.LinkStyle(c.LinkStyle)
	}
	if c.HorizontalRule != "" {
		s.HorizontalRule = c.HorizontalRule
	}
	if c.LineBreak != "" {
		s.LineBreak = markdown.LineBreakStyle(c.LineBreak)
	}
	if c.ListIndent != 0 {
		s.ListIndent = c.ListIndent
	}
	if c.Strikethrough != nil {
		s.Strikethrough = *c.Strikethrough
	}
	s.PadTables = c.PadTables
	return s
}

// Plugins returns the converter plugins the config enables.
func (c Config) Plugins() []markdown.Plugin {
	var plugins []markdown.Plugin
	if c.Admonitions == nil || *c.Admonitions {
		plugins = append(plugins, markdown.AdmonitionPlugin())
	}
	if strings.TrimSpace(c.BaseURL) != "" {
		plugins = append(plugins, markdown.LinkPlugin(c.BaseURL))
	}
	return plugins
}

// NewConverter builds the converter described by the config.
func (c Config) NewConverter() (*markdown.Converter, error) {
	return markdown.NewConverter(c.Style(), c.Plugins()...)
}

// Validate checks the style and the numeric limits.
func (c Config) Validate() error {
	if err := c.Style().Validate(); err != nil {
		return err
	}
	if c.MaxInputBytes < 0 {
		return converr.NewConfig("max_input_bytes", fmt.Sprint(c.MaxInputBytes), "must not be negative")
	}
	if c.MaxOutputBytes < 0 {
		return converr.NewConfig("max_output_bytes", fmt.Sprint(c.MaxOutputBytes), "must not be negative")
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return converr.NewConfig("log_format", c.LogFormat, "must be text or json")
	}
	return nil
}

func (c Config) InputLimit() int64 {
	if c.MaxInputBytes > 0 {
		return c.MaxInputBytes
	}
	return DefaultMaxInputBytes
}

func (c Config) OutputLimit() int {
	if c.MaxOutputBytes > 0 {
		return c.MaxOutputBytes
	}
	return DefaultMaxOutputBytes
}

func (c Config) NoiseRemoval() bool {
	return c.RemoveNoise == nil || *c.RemoveNoise
}

func (c Config) WriteFrontmatter() bool {
	return c.Frontmatter == nil || *c.Frontmatter
}

func (c Config) ListenAddr() string {
	if strings.TrimSpace(c.Addr) != "" {
		return c.Addr
	}
	return DefaultAddr
}

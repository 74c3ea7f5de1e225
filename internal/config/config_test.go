package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go_mdconv/internal/config"
	"go_mdconv/internal/converr"
	"go_mdconv/internal/markdown"
)

func TestLoadConfig(t *testing.T) {
	data := []byte(`{
  "heading_style": "setext",
  "bullet_marker": "*",
  "fence": "~~~",
  "link_style": "referenced",
  "list_indent": 2,
  "strikethrough": false,
  "pad_tables": true,
  "content_selector": "main",
  "exclude_selector": ".ads",
  "base_url": "https://example.com/",
  "max_input_bytes": 2048,
  "max_output_bytes": 4096,
  "output_dir": "out"
}`)

	dir := t.TempDir()
	path := filepath.Join(dir, "go_mdconv.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	strike := false
	expected := config.Config{
		HeadingStyle:    "setext",
		BulletMarker:    "*",
		Fence:           "~~~",
		LinkStyle:       "referenced",
		ListIndent:      2,
		Strikethrough:   &strike,
		PadTables:       true,
		ContentSelector: "main",
		ExcludeSelector: ".ads",
		BaseURL:         "https://example.com/",
		MaxInputBytes:   2048,
		MaxOutputBytes:  4096,
		OutputDir:       "out",
	}

	if !reflect.DeepEqual(cfg, expected) {
		t.Fatalf("config mismatch\nexpected: %#v\ngot:      %#v", expected, cfg)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "go_mdconv.yaml")
	data := "heading_style: setext\nem_delimiter: '*'\nremove_noise: false\nlog_format: json\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HeadingStyle != "setext" || cfg.EmDelimiter != "*" || cfg.NoiseRemoval() || cfg.LogFormat != "json" {
		t.Fatalf("unexpected config %#v", cfg)
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"heading_style": `), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := config.Load(path)
	if !converr.Is(err, converr.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	indent := 3
	cfg := config.Config{BulletMarker: "+", ListIndent: indent, PadTables: true}
	for _, name := range []string{"nested/c.json", "c.yml"} {
		path := filepath.Join(dir, name)
		if err := config.Save(path, cfg); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		got, err := config.Load(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if !reflect.DeepEqual(got, cfg) {
			t.Fatalf("%s: got %#v", name, got)
		}
	}
}

func TestMarshalConfigOmitsUnset(t *testing.T) {
	data, err := config.Marshal(config.Config{HeadingStyle: "atx"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"heading_style": "atx"`) || strings.Contains(string(data), "bullet_marker") {
		t.Fatalf("unexpected json %s", data)
	}
}

func TestStyleMapping(t *testing.T) {
	if got := (config.Config{}).Style(); got != markdown.DefaultStyle() {
		t.Fatalf("empty config should map to defaults, got %#v", got)
	}
	off := false
	got := config.Config{LineBreak: "backslash", Strikethrough: &off, OrderedMarker: ")"}.Style()
	if got.LineBreak != markdown.LineBreakBackslash || got.Strikethrough || got.OrderedMarker != ")" {
		t.Fatalf("unexpected style %#v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		ok   bool
	}{
		{"empty", config.Config{}, true},
		{"bad bullet", config.Config{BulletMarker: "#"}, false},
		{"negative input", config.Config{MaxInputBytes: -1}, false},
		{"bad log format", config.Config{LogFormat: "xml"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !converr.Is(err, converr.TypeConfig) {
				t.Fatalf("expected CONFIG_ERROR, got %v", err)
			}
		})
	}
}

func TestDefaultsAndPlugins(t *testing.T) {
	var cfg config.Config
	if cfg.InputLimit() != config.DefaultMaxInputBytes || cfg.OutputLimit() != config.DefaultMaxOutputBytes {
		t.Fatalf("unexpected limits")
	}
	if cfg.ListenAddr() != config.DefaultAddr || !cfg.WriteFrontmatter() || !cfg.NoiseRemoval() {
		t.Fatalf("unexpected defaults")
	}
	if n := len(cfg.Plugins()); n != 1 {
		t.Fatalf("expected admonition plugin only, got %d", n)
	}
	cfg.BaseURL = "https://example.com/"
	conv, err := cfg.NewConverter()
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	out, err := conv.Convert(`<p><a href="x">x</a></p>`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "[x](https://example.com/x)\n" {
		t.Fatalf("got %q", out)
	}
}

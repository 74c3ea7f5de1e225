package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go_mdconv/internal/config"
	"go_mdconv/internal/converr"
)

func TestRunConfigWizard_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "style.yaml")

	in := strings.Join([]string{
		cfgPath,
		"setext",
		"*",
		"", // code blocks keep the default
		"referenced",
		"2",
		"false",
		"y",
		"https://example.com/docs/",
		".main",
		"",
	}, "\n")

	var out bytes.Buffer
	if err := RunConfigWizard(strings.NewReader(in), &out, "ignored.json"); err != nil {
		t.Fatalf("RunConfigWizard error: %v", err)
	}
	if !strings.Contains(out.String(), "Wrote "+cfgPath) {
		t.Fatalf("unexpected output %q", out.String())
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HeadingStyle != "setext" || cfg.BulletMarker != "*" || cfg.CodeBlockStyle != "fenced" || cfg.LinkStyle != "referenced" {
		t.Fatalf("unexpected style %#v", cfg)
	}
	if cfg.ListIndent != 2 || !cfg.PadTables || cfg.BaseURL != "https://example.com/docs/" || cfg.ContentSelector != ".main" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if cfg.Strikethrough == nil || *cfg.Strikethrough {
		t.Fatalf("expected strikethrough false, got %#v", cfg.Strikethrough)
	}
}

func TestRunConfigWizard_AllDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.json")
	if err := RunConfigWizard(strings.NewReader(""), &bytes.Buffer{}, path); err != nil {
		t.Fatalf("RunConfigWizard error: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Style() != (config.Config{}).Style() {
		t.Fatalf("defaults should map to the default style, got %#v", cfg)
	}
}

func TestRunConfigWizard_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.json")
	err := RunConfigWizard(strings.NewReader("\n\n#\n"), &bytes.Buffer{}, path)
	if !converr.Is(err, converr.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
	var exitErr ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected exit code 2, got %#v", err)
	}
}

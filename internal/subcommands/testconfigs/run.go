// Package testconfigs validates every config file in a directory by building
// its converter and converting a sample document with it.
package testconfigs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go_mdconv/internal/compare"
	"go_mdconv/internal/config"
)

type Options struct {
	Dir string
	// Sample is an HTML file converted with each config; the built-in
	// comparison sample when empty.
	Sample string
}

// Run prints one OK or INVALID line per config and returns an error naming
// how many were invalid.
func Run(opts Options, w io.Writer) error {
	sample := compare.Sample
	if opts.Sample != "" {
		data, err := os.ReadFile(opts.Sample)
		if err != nil {
			return fmt.Errorf("read sample: %w", err)
		}
		sample = string(data)
	}

	resolvedDir := resolveDir(opts.Dir)
	files, err := os.ReadDir(resolvedDir)
	if err != nil {
		return fmt.Errorf("read configs dir: %w", err)
	}

	var names []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(f.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	invalid := 0
	for _, name := range names {
		lines, err := check(filepath.Join(resolvedDir, name), sample)
		if err != nil {
			invalid++
			fmt.Fprintf(w, "%s: INVALID (%v)\n", name, err)
			continue
		}
		fmt.Fprintf(w, "%s: OK (%d lines)\n", name, lines)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d configs invalid", invalid, len(names))
	}
	return nil
}

func check(path, sample string) (int, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return 0, err
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	conv, err := cfg.NewConverter()
	if err != nil {
		return 0, err
	}
	md, err := conv.Convert(sample)
	if err != nil {
		return 0, err
	}
	return compare.CountLines(md), nil
}

func resolveDir(dir string) string {
	if strings.TrimSpace(dir) != "" {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	for _, candidate := range config.SearchDirs() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return dir
}

package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultConfigDir  = "configs"
	DefaultConfigFile = "go_mdconv.json"
	HiddenConfigDir   = ".go_mdconv"

	// EnvConfig names a config file that wins over the search directories.
	EnvConfig = "GO_MDCONV_CONFIG"
)

var configNames = []string{DefaultConfigFile, "go_mdconv.yaml", "go_mdconv.yml"}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir, DefaultConfigFile)
}

// SearchDirs lists where config files are looked up, in order: the working
// directory, ./configs, ./.go_mdconv and the user config directory.
func SearchDirs() []string {
	dirs := []string{".", DefaultConfigDir, HiddenConfigDir}
	if userDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userDir, "go_mdconv"))
	}
	return uniqueDirs(dirs)
}

// Discover returns $GO_MDCONV_CONFIG when set, else the first config file
// found in SearchDirs.
func Discover() (string, bool) {
	if path := strings.TrimSpace(os.Getenv(EnvConfig)); path != "" {
		return path, true
	}
	return discoverIn(SearchDirs())
}

func discoverIn(dirs []string) (string, bool) {
	for _, dir := range dirs {
		if path, ok := firstConfig(dir); ok {
			return path, true
		}
	}
	return "", false
}

func firstConfig(dir string) (string, bool) {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// uniqueDirs drops blanks and case-insensitive duplicates, keeping the first
// spelling.
func uniqueDirs(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	var out []string
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		key := strings.ToLower(filepath.Clean(dir))
		if dir == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, dir)
	}
	return out
}

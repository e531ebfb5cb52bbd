package themes

import (
	"os"
	"path/filepath"
)

// componentThemeFiles lists per-stylesheet override file names in precedence order.
var componentThemeFiles = []string{"theme.yaml", "theme.yml", "theme.json", "theme.toml"}

// ComponentThemeCandidates lists the override file paths checked for cssFile.
func ComponentThemeCandidates(cssFile string) []string {
	if cssFile == "" {
		return nil
	}
	dir := filepath.Dir(cssFile)
	paths := make([]string, len(componentThemeFiles))
	for i, name := range componentThemeFiles {
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}

// ComponentThemePath returns the first existing theme override file in the
// stylesheet's directory, or "" when there is none.
func ComponentThemePath(cssFile string) string {
	for _, path := range ComponentThemeCandidates(cssFile) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadComponentTheme loads the override file next to cssFile. A missing file
// yields an empty configuration; the returned path is "" in that case.
func LoadComponentTheme(cssFile string) (RawConfig, string, error) {
	path := ComponentThemePath(cssFile)
	if path == "" {
		return RawConfig{}, "", nil
	}
	raw, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return raw, path, nil
}

package themes

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// BuiltinNames returns the names of the presets bundled with themecss.
func BuiltinNames() ([]string, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin presets: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names, nil
}

// BuiltinSource returns the raw YAML of a bundled preset.
func BuiltinSource(name string) ([]byte, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return data, nil
}

// LoadBuiltin parses a bundled preset.
func LoadBuiltin(name string) (RawConfig, error) {
	data, err := BuiltinSource(name)
	if err != nil {
		return nil, err
	}
	raw, err := parseRaw(data, ".yaml")
	if err != nil {
		return nil, fmt.Errorf("parse builtin preset %s: %w", name, err)
	}
	return raw, nil
}

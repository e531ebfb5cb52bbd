package themes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a raw theme configuration from a YAML, JSON or TOML file.
func LoadFile(path string) (RawConfig, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("theme file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file %s: %w", path, err)
	}

	raw, err := parseRaw(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse theme file %s: %w", path, err)
	}
	return raw, nil
}

func parseRaw(data []byte, ext string) (RawConfig, error) {
	decoded := map[string]any{}
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &decoded); err != nil {
			return nil, err
		}
	case ".yaml", ".yml", ".json", "":
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported theme file extension %q", ext)
	}

	raw := make(RawConfig, len(decoded))
	for name, entry := range decoded {
		switch entry.(type) {
		case map[string]any, map[any]any:
			raw[name] = entry
		default:
			return nil, fmt.Errorf("theme %q must be a mapping", name)
		}
	}
	return raw, nil
}

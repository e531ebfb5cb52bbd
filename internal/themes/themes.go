// Package themes provides the theme configuration model, normalization and
// extension resolution shared by both CSS generation strategies.
package themes

import (
	"sort"
)

// ColorScheme identifies the light or dark variant of a theme.
type ColorScheme string

const (
	// Light is the default color scheme.
	Light ColorScheme = "light"
	// Dark is the dark-mode color scheme.
	Dark ColorScheme = "dark"
)

// Schemes lists color schemes in emission order.
var Schemes = []ColorScheme{Light, Dark}

// ExtendsKey is the reserved key carrying inheritance metadata.
const ExtendsKey = "extends"

// Scheme holds the values of one color scheme of a theme.
type Scheme struct {
	Extends string
	Values  Tree
}

// Theme is a named set of light and dark value trees.
type Theme struct {
	Extends string
	Light   Scheme
	Dark    Scheme
}

// Scheme returns the sub-object for a color scheme.
func (t *Theme) Scheme(cs ColorScheme) *Scheme {
	if cs == Dark {
		return &t.Dark
	}
	return &t.Light
}

// Clone returns a deep copy of the theme.
func (t *Theme) Clone() *Theme {
	if t == nil {
		return nil
	}
	return &Theme{
		Extends: t.Extends,
		Light:   Scheme{Extends: t.Light.Extends, Values: t.Light.Values.Clone()},
		Dark:    Scheme{Extends: t.Dark.Extends, Values: t.Dark.Values.Clone()},
	}
}

// HasDarkMode reports whether the theme defines both light and dark values.
func HasDarkMode(t *Theme) bool {
	if t == nil {
		return false
	}
	return len(t.Dark.Values) > 0 && len(t.Light.Values) > 0
}

// Config maps theme names to their light/dark definitions.
type Config map[string]*Theme

// RawConfig is a loosely-typed theme configuration, as decoded from a file.
// Entries are either flat value trees or objects with light and dark keys.
type RawConfig map[string]any

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for name, theme := range c {
		out[name] = theme.Clone()
	}
	return out
}

// Names returns theme names with defaultTheme first and the rest sorted.
func (c Config) Names(defaultTheme string) []string {
	names := make([]string, 0, len(c))
	for name := range c {
		if name == defaultTheme {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if _, ok := c[defaultTheme]; ok {
		names = append([]string{defaultTheme}, names...)
	}
	return names
}

// Merge deep-merges overlay on top of base and returns a new configuration.
// Values and extends pointers from overlay win.
func Merge(base, overlay Config) Config {
	out := base.Clone()
	for name, theme := range overlay {
		existing, ok := out[name]
		if !ok {
			out[name] = theme.Clone()
			continue
		}
		if theme.Extends != "" {
			existing.Extends = theme.Extends
		}
		for _, cs := range Schemes {
			dst := existing.Scheme(cs)
			src := theme.Scheme(cs)
			if src.Extends != "" {
				dst.Extends = src.Extends
			}
			dst.Values = MergeTrees(dst.Values, src.Values)
		}
	}
	return out
}

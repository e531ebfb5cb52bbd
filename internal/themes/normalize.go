package themes

import "fmt"

// Normalize coerces a loosely-typed configuration into strict light/dark themes.
//
// Entries that already carry both light and dark keys are kept as-is. Entries
// with an extends key become {extends, light: rest, dark: {}}; every other entry
// is wrapped as {light: entry, dark: {}}.
func Normalize(raw RawConfig) Config {
	out := make(Config, len(raw))
	for name, entry := range raw {
		tree := toTree(entry)
		_, hasLight := tree[string(Light)]
		_, hasDark := tree[string(Dark)]

		if hasLight && hasDark {
			out[name] = &Theme{
				Extends: extendsOf(tree),
				Light:   toScheme(tree[string(Light)]),
				Dark:    toScheme(tree[string(Dark)]),
			}
			continue
		}

		theme := &Theme{Dark: Scheme{Values: Tree{}}}
		if extends := extendsOf(tree); extends != "" {
			theme.Extends = extends
		}
		delete(tree, ExtendsKey)
		theme.Light = Scheme{Values: tree}
		out[name] = theme
	}
	return out
}

func toScheme(value any) Scheme {
	tree := toTree(value)
	scheme := Scheme{Extends: extendsOf(tree)}
	delete(tree, ExtendsKey)
	scheme.Values = tree
	return scheme
}

func extendsOf(tree Tree) string {
	value, ok := tree[ExtendsKey]
	if !ok {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

package themes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveExtensionsMergesParentDefaults(t *testing.T) {
	cfg := Normalize(RawConfig{
		"default": map[string]any{
			"light": map[string]any{"color": map[string]any{"primary": "purple", "secondary": "pink"}},
			"dark":  map[string]any{"color": map[string]any{"primary": "black"}},
		},
		"mint": map[string]any{
			"extends": "default",
			"color":   map[string]any{"primary": "teal"},
		},
	})

	resolved, err := ResolveExtensions(cfg)
	require.NoError(t, err)

	mint := resolved["mint"]
	require.Empty(t, mint.Extends)

	value, _ := mint.Light.Values.Lookup("color.primary")
	require.Equal(t, "teal", value)
	value, _ = mint.Light.Values.Lookup("color.secondary")
	require.Equal(t, "pink", value)
	value, _ = mint.Dark.Values.Lookup("color.primary")
	require.Equal(t, "black", value)

	// The input is left untouched.
	require.Equal(t, "default", cfg["mint"].Extends)
}

func TestResolveExtensionsChainIsDepthFirst(t *testing.T) {
	raw := RawConfig{
		"a": map[string]any{"extends": "b", "one": "a1"},
		"b": map[string]any{"extends": "c", "two": "b2"},
		"c": map[string]any{"one": "c1", "two": "c2", "three": "c3"},
	}

	resolved, err := ResolveExtensions(Normalize(raw))
	require.NoError(t, err)

	require.Equal(t, Tree{"one": "a1", "two": "b2", "three": "c3"}, resolved["a"].Light.Values)
	require.Equal(t, Tree{"one": "c1", "two": "b2", "three": "c3"}, resolved["b"].Light.Values)
	for name, theme := range resolved {
		require.Empty(t, theme.Extends, name)
		require.Empty(t, theme.Light.Extends, name)
		require.Empty(t, theme.Dark.Extends, name)
	}
}

func TestResolveExtensionsSchemeLevel(t *testing.T) {
	cfg := Normalize(RawConfig{
		"default": map[string]any{
			"light": map[string]any{"bg": "white"},
			"dark":  map[string]any{"bg": "black", "fg": "white"},
		},
		"night": map[string]any{
			"light": map[string]any{"bg": "grey"},
			"dark":  map[string]any{"extends": "default", "fg": "silver"},
		},
	})

	resolved, err := ResolveExtensions(cfg)
	require.NoError(t, err)

	night := resolved["night"]
	require.Empty(t, night.Dark.Extends)
	require.Equal(t, Tree{"bg": "black", "fg": "silver"}, night.Dark.Values)
	require.Equal(t, Tree{"bg": "grey"}, night.Light.Values)
}

func TestResolveExtensionsErrors(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawConfig
		kind  ConfigErrorKind
		chain []string
	}{
		{
			name: "missing target",
			raw:  RawConfig{"a": map[string]any{"extends": "nope"}},
			kind: ThemeNotFound,
		},
		{
			name: "self",
			raw:  RawConfig{"a": map[string]any{"extends": "a"}},
			kind: SelfExtension,
		},
		{
			name: "two theme cycle",
			raw: RawConfig{
				"a": map[string]any{"extends": "b"},
				"b": map[string]any{"extends": "a"},
			},
			kind:  Cycle,
			chain: []string{"a", "b", "a"},
		},
		{
			name: "scheme cycle",
			raw: RawConfig{
				"a": map[string]any{"light": map[string]any{}, "dark": map[string]any{"extends": "b"}},
				"b": map[string]any{"light": map[string]any{}, "dark": map[string]any{"extends": "a"}},
			},
			kind:  Cycle,
			chain: []string{"a", "b", "a"},
		},
		{
			name: "cycle reached from outside",
			raw: RawConfig{
				"a": map[string]any{"extends": "b"},
				"b": map[string]any{"extends": "c"},
				"c": map[string]any{"extends": "b"},
			},
			kind:  Cycle,
			chain: []string{"a", "b", "c", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveExtensions(Normalize(tt.raw))
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			require.Equal(t, tt.kind, cfgErr.Kind)
			if tt.chain != nil {
				require.Equal(t, tt.chain, cfgErr.Chain)
			}
		})
	}
}

func TestResolveExtensionsAllowsMixedLoop(t *testing.T) {
	resolved, err := ResolveExtensions(Normalize(RawConfig{
		"default": map[string]any{"x": "1"},
		"A":       map[string]any{"extends": "B"},
		"B": map[string]any{
			"light": map[string]any{"y": "2"},
			"dark":  map[string]any{"extends": "A", "z": "3"},
		},
	}))
	require.NoError(t, err)

	require.Equal(t, Tree{"y": "2"}, resolved["A"].Light.Values)
	require.Equal(t, Tree{"z": "3"}, resolved["A"].Dark.Values)
	require.Equal(t, Tree{"z": "3"}, resolved["B"].Dark.Values)
	for name, theme := range resolved {
		require.Empty(t, theme.Extends, name)
		require.Empty(t, theme.Light.Extends, name)
		require.Empty(t, theme.Dark.Extends, name)
	}
}

func TestResolveExtensionsInheritsParentSchemeTargets(t *testing.T) {
	resolved, err := ResolveExtensions(Normalize(RawConfig{
		"default": map[string]any{
			"light": map[string]any{"bg": "white"},
			"dark":  map[string]any{"bg": "black"},
		},
		"night": map[string]any{
			"light": map[string]any{"fg": "grey"},
			"dark":  map[string]any{"extends": "default", "fg": "silver"},
		},
		"mint": map[string]any{"extends": "night", "accent": "teal"},
	}))
	require.NoError(t, err)

	require.Equal(t, Tree{"bg": "black", "fg": "silver"}, resolved["mint"].Dark.Values)
	require.Equal(t, Tree{"fg": "grey", "accent": "teal"}, resolved["mint"].Light.Values)
}

func TestCycleErrorNamesBothThemes(t *testing.T) {
	_, err := ResolveExtensions(Normalize(RawConfig{
		"A": map[string]any{"extends": "B"},
		"B": map[string]any{"extends": "A"},
	}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "'A' => 'B' => 'A'")
}

func TestResolveExtensionsIsOrderIndependent(t *testing.T) {
	build := func(order []string) Config {
		entries := map[string]map[string]any{
			"base":  {"x": "1", "y": "2"},
			"mid":   {"extends": "base", "y": "3"},
			"leaf":  {"extends": "mid", "z": "4"},
			"other": {"extends": "leaf"},
		}
		raw := RawConfig{}
		for _, name := range order {
			raw[name] = entries[name]
		}
		return Normalize(raw)
	}

	first, err := ResolveExtensions(build([]string{"base", "mid", "leaf", "other"}))
	require.NoError(t, err)
	second, err := ResolveExtensions(build([]string{"other", "leaf", "mid", "base"}))
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, Tree{"x": "1", "y": "3", "z": "4"}, first["other"].Light.Values)
}

package overrides

import (
	"errors"
	"testing"

	"github.com/opencode-ai/themecss/internal/css"
	"github.com/opencode-ai/themecss/internal/themes"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func config(t *testing.T, raw themes.RawConfig) themes.Config {
	t.Helper()
	cfg, err := themes.ResolveExtensions(themes.Normalize(raw))
	require.NoError(t, err)
	return cfg
}

func generate(t *testing.T, raw themes.RawConfig, opts themes.Options, input string) string {
	t.Helper()
	sheet, err := css.Parse(input, css.Source{})
	require.NoError(t, err)
	require.NoError(t, Generate(sheet, config(t, raw), opts, zerolog.Nop()))
	return sheet.Compact()
}

func mint() themes.RawConfig {
	return themes.RawConfig{
		"default": map[string]any{"color": "purple"},
		"mint":    map[string]any{"color": "teal"},
	}
}

func TestOverrideForTheme(t *testing.T) {
	got := generate(t, mint(), themes.DefaultOptions(), `a { color: @theme color; }`)
	require.Equal(t, `a{color:purple}.mint a{color:teal}`, got)
}

func TestOverridesForColorSchemes(t *testing.T) {
	raw := themes.RawConfig{
		"default": map[string]any{
			"light": map[string]any{"c": "white"},
			"dark":  map[string]any{"c": "black"},
		},
		"night": map[string]any{
			"light": map[string]any{"c": "gray"},
			"dark":  map[string]any{"c": "navy"},
		},
	}

	got := generate(t, raw, themes.DefaultOptions(), `.btn, p { color: @theme c; }`)
	require.Equal(t,
		`.btn, p{color:white}`+
			`.dark .btn, .dark p{color:black}`+
			`.night .btn, .night p{color:gray}`+
			`.night.dark .btn, .night.dark p{color:navy}`,
		got)
}

func TestThemeRootCompoundsClass(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: `:theme-root(.btn) { color: @theme color; }`, want: `.btn{color:purple}.mint.btn{color:teal}`},
		{input: `:theme-root.btn span { color: @theme color; }`, want: `.btn span{color:purple}.mint.btn span{color:teal}`},
		{input: `:theme-root(*) { color: @theme color; }`, want: `*{color:purple}*.mint{color:teal}`},
		{input: `:theme-root * { color: @theme color; }`, want: `*{color:purple}.mint *{color:teal}`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, generate(t, mint(), themes.DefaultOptions(), tt.input), tt.input)
	}
}

func TestScopeSelector(t *testing.T) {
	tests := []struct {
		selector string
		class    string
		want     string
	}{
		{selector: "a", class: ".mint", want: ".mint a"},
		{selector: "a:theme-root", class: ".mint", want: "a.mint"},
		{selector: "a:theme-root.x, b", class: ".dark", want: "a.dark.x, .dark b"},
		{selector: ":theme-root(*)", class: ".mint.dark", want: "*.mint.dark"},
		{selector: ":is(a, b)", class: ".mint", want: ".mint :is(a, b)"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, scopeSelector(tt.selector, tt.class), tt.selector)
	}
}

func TestMissingDefaultValueRemovesDeclaration(t *testing.T) {
	raw := themes.RawConfig{
		"default": map[string]any{"color": "purple"},
		"mint":    map[string]any{"only": "red"},
	}
	got := generate(t, raw, themes.DefaultOptions(), `a { color: @theme only; margin: 0; }`)
	require.Equal(t, `a{margin:0}.mint a{color:red}`, got)
}

func TestMultipleReferencesFallBackToDefault(t *testing.T) {
	raw := themes.RawConfig{
		"default": map[string]any{"width": "1px", "color": "red"},
		"mint":    map[string]any{"color": "blue"},
	}
	got := generate(t, raw, themes.DefaultOptions(), `a { border: @theme width solid theme('color'); }`)
	require.Equal(t, `a{border:1px solid red}.mint a{border:1px solid blue}`, got)
}

func TestMissingThemeValueIsDropped(t *testing.T) {
	raw := themes.RawConfig{
		"default": map[string]any{"a": "red", "b": "blue"},
		"mint":    map[string]any{"a": "green"},
	}
	got := generate(t, raw, themes.DefaultOptions(), `x { color: @theme a; background: @theme b; }`)
	require.Equal(t, `x{color:red;background:blue}.mint x{color:green}`, got)
}

func TestEmptyOverrideIsSkipped(t *testing.T) {
	raw := themes.RawConfig{
		"default": map[string]any{"a": "red"},
		"mint":    map[string]any{"z": "1"},
	}
	got := generate(t, raw, themes.DefaultOptions(), `x { color: @theme a; } y { margin: 0; }`)
	require.Equal(t, `x{color:red}y{margin:0}`, got)
}

func TestForceEmptyThemeSelectors(t *testing.T) {
	raw := themes.RawConfig{
		"default": map[string]any{"a": "red"},
		"mint":    map[string]any{"z": "1"},
	}
	opts := themes.DefaultOptions()
	opts.ForceEmptyThemeSelectors = true

	got := generate(t, raw, opts, `x { color: @theme a; }`)
	require.Equal(t, `x{color:red}.mint x{}.default{}.light{}.dark{}.mint{}`, got)
}

func TestForceSingleThemeSuppressesOverrides(t *testing.T) {
	opts := themes.DefaultOptions()
	opts.ForceSingleTheme = "mint"

	got := generate(t, mint(), opts, `:theme-root(.btn) { color: @theme color; }`)
	require.Equal(t, `.btn{color:purple}`, got)
}

func TestOverridesStayInsideMedia(t *testing.T) {
	got := generate(t, mint(), themes.DefaultOptions(), `@media print { a { color: @theme color; } } b { margin: 0; }`)
	require.Equal(t, `@media print{a{color:purple}.mint a{color:teal}}b{margin:0}`, got)
}

func TestMissingDefaultThemeFails(t *testing.T) {
	cfg := config(t, themes.RawConfig{"mint": map[string]any{"color": "teal"}})
	sheet := &css.Stylesheet{Rules: []*css.Rule{css.NewRule("a", css.Decl("color", "@theme color"))}}

	err := Generate(sheet, cfg, themes.DefaultOptions(), zerolog.Nop())
	var resErr *themes.ResolutionError
	require.True(t, errors.As(err, &resErr), "got %v", err)
	require.Equal(t, "default", resErr.Theme)
}

func TestMalformedReferenceFails(t *testing.T) {
	sheet := &css.Stylesheet{Rules: []*css.Rule{css.NewRule("a", css.Decl("color", "@theme color theme('x"))}}

	err := Generate(sheet, config(t, mint()), themes.DefaultOptions(), zerolog.Nop())
	var syntaxErr *themes.SyntaxError
	require.True(t, errors.As(err, &syntaxErr), "got %v", err)
}

func TestEmptyThemeRootSelectorFails(t *testing.T) {
	sheet := &css.Stylesheet{Rules: []*css.Rule{css.NewRule(":theme-root", css.Decl("color", "@theme color"))}}

	err := Generate(sheet, config(t, mint()), themes.DefaultOptions(), zerolog.Nop())
	var syntaxErr *themes.SyntaxError
	require.True(t, errors.As(err, &syntaxErr), "got %v", err)
}

func TestFailureLeavesSheetUntouched(t *testing.T) {
	media := &css.Rule{Kind: css.AtRule, Name: "@media", Prelude: "print", Rules: []*css.Rule{
		css.NewRule("a", css.Decl("color", "@theme color"), css.Decl("margin", "0")),
	}}
	sheets := []*css.Stylesheet{
		{Rules: []*css.Rule{
			css.NewRule(":theme-root(.btn)", css.Decl("color", "@theme color")),
			media,
			css.NewRule("b", css.Decl("color", "@theme color theme('x")),
		}},
		{Rules: []*css.Rule{
			css.NewRule("p", css.Decl("color", "@theme missing"), css.Decl("background", "@theme color")),
			css.NewRule(":theme-root", css.Decl("color", "@theme color")),
		}},
	}

	for _, sheet := range sheets {
		before := sheet.String()
		require.Error(t, Generate(sheet, config(t, mint()), themes.DefaultOptions(), zerolog.Nop()), before)
		require.Equal(t, before, sheet.String())
	}
}

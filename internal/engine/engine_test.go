package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencode-ai/themecss/internal/css"
	"github.com/opencode-ai/themecss/internal/themes"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func purple() themes.RawConfig {
	return themes.RawConfig{
		"default": map[string]any{
			"light": map[string]any{"color": map[string]any{"primary": "purple"}},
			"dark":  map[string]any{},
		},
	}
}

func parse(t *testing.T, input, file string) *css.Stylesheet {
	t.Helper()
	sheet, err := css.Parse(input, css.Source{File: file})
	require.NoError(t, err)
	return sheet
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, themes.DefaultOptions(), zerolog.Nop())
	require.ErrorIs(t, err, themes.ErrNoConfig)
}

func TestNewRejectsUnknownStrategy(t *testing.T) {
	opts := themes.DefaultOptions()
	opts.Strategy = "inline"
	_, err := New(purple(), opts, zerolog.Nop())
	require.Error(t, err)
}

func TestNewAppliesDefaults(t *testing.T) {
	p, err := New(purple(), themes.Options{}, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, themes.StrategyVariables, p.Options().Strategy)
	require.Equal(t, "default", p.Options().DefaultTheme)
	require.Equal(t, ".dark", p.Options().DarkClass)
	require.False(t, p.Options().DisableRootInlining)
}

func TestZeroOptionsInlineSingleUseVariables(t *testing.T) {
	plain := func(name, _, _ string) string { return name }
	p, err := New(purple(), themes.Options{ScopedName: plain}, zerolog.Nop())
	require.NoError(t, err)

	sheet := parse(t, `a { color: @theme color.primary; }`, "")
	_, err = p.Process(context.Background(), sheet)
	require.NoError(t, err)
	require.Equal(t, "a{color:var(--color-primary, purple)}", sheet.Compact())
}

func TestProcessVariables(t *testing.T) {
	p, err := New(purple(), themes.DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	sheet := parse(t, `a { color: @theme color.primary; }`, "")
	result, err := p.Process(context.Background(), sheet)
	require.NoError(t, err)
	require.Equal(t, themes.StrategyVariables, result.Strategy)
	require.False(t, result.Skipped)
	require.True(t, sheet.Processed())

	out := sheet.Compact()
	require.True(t, strings.HasPrefix(out, "a{color:var(--default-color-primary-"), out)
	require.True(t, strings.HasSuffix(out, ", purple)}"), out)
}

func TestProcessIsIdempotent(t *testing.T) {
	opts := themes.DefaultOptions()
	opts.Strategy = themes.StrategyOverrides
	p, err := New(themes.RawConfig{
		"default": map[string]any{"c": "red"},
		"mint":    map[string]any{"c": "teal"},
	}, opts, zerolog.Nop())
	require.NoError(t, err)

	sheet := parse(t, `a { color: @theme c; }`, "")
	_, err = p.Process(context.Background(), sheet)
	require.NoError(t, err)
	first := sheet.Compact()

	result, err := p.Process(context.Background(), sheet)
	require.NoError(t, err)
	require.True(t, result.Skipped)
	require.Equal(t, first, sheet.Compact())
	require.Equal(t, `a{color:red}.mint a{color:teal}`, first)
}

func TestConfigErrorLeavesSheetUntouched(t *testing.T) {
	p, err := New(themes.RawConfig{
		"a": map[string]any{"extends": "b", "c": "1"},
		"b": map[string]any{"extends": "a", "c": "2"},
	}, themes.DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	sheet := parse(t, `:theme-root(.x) { color: @theme c; }`, "")
	before := sheet.Compact()

	_, err = p.Process(context.Background(), sheet)
	var cfgErr *themes.ConfigError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
	require.Equal(t, themes.Cycle, cfgErr.Kind)
	require.Equal(t, before, sheet.Compact())
	require.False(t, sheet.Processed())
}

func TestComponentThemeFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "button.css")
	themeFile := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(themeFile, []byte("mint:\n  c: teal\n"), 0644))

	opts := themes.DefaultOptions()
	opts.Strategy = themes.StrategyOverrides
	opts.ComponentThemes = true
	p, err := New(themes.RawConfig{"default": map[string]any{"c": "red"}}, opts, zerolog.Nop())
	require.NoError(t, err)

	sheet := parse(t, `a { color: @theme c; }`, file)
	result, err := p.Process(context.Background(), sheet)
	require.NoError(t, err)
	require.Equal(t, []string{themeFile}, result.Dependencies)
	require.Equal(t, `a{color:red}.mint a{color:teal}`, sheet.Compact())
}

func TestComponentThemesDisabledIgnoresFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.yaml"), []byte("mint:\n  c: teal\n"), 0644))

	opts := themes.DefaultOptions()
	opts.Strategy = themes.StrategyOverrides
	p, err := New(themes.RawConfig{"default": map[string]any{"c": "red"}}, opts, zerolog.Nop())
	require.NoError(t, err)

	sheet := parse(t, `a { color: @theme c; }`, filepath.Join(dir, "button.css"))
	result, err := p.Process(context.Background(), sheet)
	require.NoError(t, err)
	require.Empty(t, result.Dependencies)
	require.Equal(t, `a{color:red}`, sheet.Compact())
}

func TestResolveThemeHookReceivesGlobalConfig(t *testing.T) {
	global := themes.RawConfig{"default": map[string]any{"c": "red"}}

	opts := themes.DefaultOptions()
	opts.Strategy = themes.StrategyOverrides
	opts.ResolveTheme = func(cssFile string, g themes.RawConfig) (themes.RawConfig, error) {
		require.Equal(t, "button.css", cssFile)
		require.Equal(t, global, g)
		return themes.RawConfig{"mint": map[string]any{"c": "teal"}}, nil
	}
	p, err := New(global, opts, zerolog.Nop())
	require.NoError(t, err)

	sheet := parse(t, `a { color: @theme c; }`, "button.css")
	result, err := p.Process(context.Background(), sheet)
	require.NoError(t, err)
	require.Empty(t, result.Dependencies)
	require.Equal(t, `a{color:red}.mint a{color:teal}`, sheet.Compact())
}

func TestResolveThemeHookErrorIsFatal(t *testing.T) {
	boom := errors.New("boom")
	opts := themes.DefaultOptions()
	opts.ResolveTheme = func(string, themes.RawConfig) (themes.RawConfig, error) { return nil, boom }

	p, err := New(purple(), opts, zerolog.Nop())
	require.NoError(t, err)

	_, err = p.Process(context.Background(), parse(t, `a { color: red; }`, "button.css"))
	require.ErrorIs(t, err, boom)
}

func TestProcessWarningsAreReported(t *testing.T) {
	opts := themes.DefaultOptions()
	opts.ForceSingleTheme = "default"
	opts.OptimizeSingleTheme = true

	p, err := New(purple(), opts, zerolog.Nop())
	require.NoError(t, err)

	sheet := parse(t, `a { color: @theme color.primary; background: @theme color.bg; }`, "")
	result, err := p.Process(context.Background(), sheet)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	require.Equal(t, `a{color:purple}`, sheet.Compact())
}

func TestProcessHonorsCancellation(t *testing.T) {
	p, err := New(purple(), themes.DefaultOptions(), zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Process(ctx, parse(t, `a { color: red; }`, ""))
	require.ErrorIs(t, err, context.Canceled)
}

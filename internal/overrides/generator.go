// Package overrides implements the static theming strategy: references are
// replaced with default-theme literals and every other theme gets its own
// scoped copy of each themed rule.
package overrides

import (
	"strings"

	"github.com/opencode-ai/themecss/internal/css"
	"github.com/opencode-ai/themecss/internal/reference"
	"github.com/opencode-ai/themecss/internal/themes"
	"github.com/rs/zerolog"
)

// Generate rewrites sheet in place. cfg must already have its extensions resolved.
func Generate(sheet *css.Stylesheet, cfg themes.Config, opts themes.Options, logger zerolog.Logger) error {
	opts = opts.WithDefaults()
	g := &generator{
		cfg:    cfg,
		opts:   opts,
		logger: logger,
		names:  cfg.Names(opts.DefaultTheme),
	}

	var plan css.Plan
	err := sheet.WalkRules(func(rule, parent *css.Rule) error {
		return g.rule(&plan, rule, parent)
	})
	if err != nil {
		return err
	}

	plan.Apply(sheet)
	if opts.ForceEmptyThemeSelectors {
		sheet.Append(nil, g.placeholders()...)
	}

	g.logger.Debug().Int("overrides", g.emitted).Msg("generated theme overrides")
	return nil
}

type generator struct {
	cfg    themes.Config
	opts   themes.Options
	logger zerolog.Logger
	names  []string

	emitted int
}

// rule resolves a rule against the default light values and plans its
// per-theme override rules, appended to parent.
func (g *generator) rule(plan *css.Plan, rule, parent *css.Rule) error {
	original := rule.Selector
	stripped, err := css.StripThemeRoot(original)
	if err != nil {
		return err
	}
	if stripped != original {
		plan.SetSelector(rule, stripped)
	}

	var themed []*css.Declaration
	for _, decl := range rule.Declarations {
		if !reference.Has(decl.Value) {
			continue
		}
		themed = append(themed, decl)

		value, ok, err := g.resolve(decl, g.opts.DefaultTheme, themes.Light)
		if err != nil {
			return err
		}
		if !ok {
			g.logger.Debug().
				Str("selector", stripped).
				Str("property", decl.Property).
				Msg("removing declaration without default value")
			plan.Remove(rule, decl)
			continue
		}
		plan.SetValue(decl, value)
	}

	if g.opts.ForceSingleTheme != "" || len(themed) == 0 {
		return nil
	}

	var out []*css.Rule
	for _, name := range g.names {
		for _, cs := range themes.Schemes {
			if name == g.opts.DefaultTheme && cs == themes.Light {
				continue
			}
			if len(g.cfg[name].Scheme(cs).Values) == 0 {
				continue
			}

			override := rule.CloneEmpty(scopeSelector(original, g.scopeClass(name, cs)))
			for _, decl := range themed {
				value, ok, err := g.resolve(decl, name, cs)
				if err != nil {
					return err
				}
				if ok {
					clone := decl.Clone()
					clone.Value = value
					override.Append(clone)
				}
			}

			if len(override.Declarations) > 0 || g.opts.ForceEmptyThemeSelectors {
				out = append(out, override)
				g.emitted++
			}
		}
	}
	plan.Append(parent, out...)
	return nil
}

// resolve substitutes every reference in decl's value with values of
// (theme, cs). It reports false when a key has no value. When the value holds
// several references, keys missing from the theme fall back to the default theme.
func (g *generator) resolve(decl *css.Declaration, theme string, cs themes.ColorScheme) (string, bool, error) {
	result := decl.Value
	base, ok := g.cfg[g.opts.DefaultTheme]
	if !ok {
		return "", false, &themes.ResolutionError{
			Key:      reference.ParseKey(result),
			Theme:    g.opts.DefaultTheme,
			Property: decl.Property,
			Value:    result,
		}
	}
	values := g.cfg[theme].Scheme(cs).Values
	multiple := reference.Count(result) > 1
	resolved := true

	for remaining := reference.Count(result); remaining > 0; remaining-- {
		key := reference.ParseKey(result)
		if key == "" {
			break
		}
		value := reference.Value(values, key)
		if value == reference.Undefined && multiple {
			value = reference.Value(base.Scheme(cs).Values, key)
		}
		if value == reference.Undefined {
			resolved = false
		}
		result = reference.Replace(result, value)
	}

	if reference.Malformed(result) {
		return "", false, &themes.SyntaxError{Property: decl.Property, Value: result}
	}
	return result, resolved, nil
}

// scopeClass returns the class selecting a (theme, scheme) pair.
func (g *generator) scopeClass(theme string, cs themes.ColorScheme) string {
	switch {
	case cs == themes.Light:
		return "." + theme
	case theme == g.opts.DefaultTheme:
		return g.opts.DarkClass
	default:
		return "." + theme + g.opts.DarkClass
	}
}

// scopeSelector scopes every branch of selector under class. Branches marked
// with :theme-root receive the class on the marked compound; the others are
// matched as descendants.
func scopeSelector(selector, class string) string {
	branches := css.Branches(selector)
	for i, branch := range branches {
		if !css.HasThemeRoot(branch) {
			branches[i] = class + " " + branch
			continue
		}

		stripped := css.StripBranch(branch)
		trimmed := strings.TrimSpace(stripped)
		if strings.TrimLeft(stripped, " \t") != stripped {
			branches[i] = class + " " + trimmed
			continue
		}
		n := typePrefix(trimmed)
		branches[i] = trimmed[:n] + class + trimmed[n:]
	}
	return strings.Join(branches, ", ")
}

// typePrefix returns the length of a leading type or universal selector.
func typePrefix(compound string) int {
	if strings.HasPrefix(compound, "*") {
		return 1
	}
	for i, r := range compound {
		if !(r == '-' || r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || (i > 0 && r >= '0' && r <= '9')) {
			return i
		}
	}
	return len(compound)
}

// placeholders returns empty rules for every theme class and scheme class.
func (g *generator) placeholders() []*css.Rule {
	seen := make(map[string]bool)
	var out []*css.Rule
	add := func(selector string) {
		if seen[selector] {
			return
		}
		seen[selector] = true
		out = append(out, css.NewRule(selector))
	}
	for _, name := range g.names {
		add("." + name)
		add(g.opts.LightClass)
		add(g.opts.DarkClass)
	}
	return out
}

// Package variables implements the custom-property theming strategy: theme
// references become var(--name) lookups and every theme contributes a block of
// custom-property definitions.
package variables

import (
	"fmt"
	"sort"

	"github.com/opencode-ai/themecss/internal/css"
	"github.com/opencode-ai/themecss/internal/localize"
	"github.com/opencode-ai/themecss/internal/reference"
	"github.com/opencode-ai/themecss/internal/themes"
	"github.com/rs/zerolog"
)

// Generate rewrites sheet in place. cfg must already have its extensions resolved.
func Generate(sheet *css.Stylesheet, cfg themes.Config, opts themes.Options, logger zerolog.Logger) error {
	opts = opts.WithDefaults()

	name, err := localize.New(opts, sheet.Source)
	if err != nil {
		return err
	}

	g := &generator{
		sheet:    sheet,
		cfg:      cfg,
		opts:     opts,
		logger:   logger,
		localize: name,
		usage:    make(map[string]int),
	}
	g.prepareTarget()

	if err := g.stripThemeRoot(); err != nil {
		return err
	}
	g.scan()
	if err := g.substitute(); err != nil {
		return err
	}

	g.plan.Apply(sheet)
	g.emit()
	return nil
}

type generator struct {
	sheet    *css.Stylesheet
	cfg      themes.Config
	opts     themes.Options
	logger   zerolog.Logger
	localize localize.Func

	usage map[string]int
	plan  css.Plan

	defaultTheme *themes.Theme
	// target supplies substitution values: the default theme, or the forced
	// single theme merged over it.
	target     *themes.Theme
	targetName string
	single     bool
}

func (g *generator) prepareTarget() {
	g.defaultTheme = g.cfg[g.opts.DefaultTheme]
	g.targetName = g.opts.DefaultTheme
	g.single = g.opts.ForceSingleTheme != ""

	base := g.defaultTheme
	if base == nil {
		base = &themes.Theme{Light: themes.Scheme{Values: themes.Tree{}}, Dark: themes.Scheme{Values: themes.Tree{}}}
	}
	g.target = base.Clone()

	if !g.single || g.opts.ForceSingleTheme == g.opts.DefaultTheme || g.defaultTheme == nil {
		return
	}
	single, ok := g.cfg[g.opts.ForceSingleTheme]
	if !ok {
		return
	}
	g.targetName = g.opts.ForceSingleTheme
	for _, cs := range themes.Schemes {
		dst := g.target.Scheme(cs)
		dst.Values = themes.MergeTrees(dst.Values, single.Scheme(cs).Values)
	}
}

// inlineLiterals reports whether references are replaced by literal values.
func (g *generator) inlineLiterals() bool {
	return g.single && !themes.HasDarkMode(g.target) && g.opts.OptimizeSingleTheme
}

func (g *generator) stripThemeRoot() error {
	return g.sheet.WalkRules(func(rule, _ *css.Rule) error {
		selector, err := css.StripThemeRoot(rule.Selector)
		if err != nil {
			return err
		}
		if selector != rule.Selector {
			g.plan.SetSelector(rule, selector)
		}
		return nil
	})
}

// scan counts, per key, the number of declarations referencing it.
func (g *generator) scan() {
	_ = g.sheet.WalkRules(func(rule, _ *css.Rule) error {
		for _, decl := range rule.Declarations {
			for _, key := range reference.Keys(decl.Value) {
				g.usage[key]++
			}
		}
		return nil
	})
}

func (g *generator) substitute() error {
	return g.sheet.WalkRules(func(rule, _ *css.Rule) error {
		for _, decl := range rule.Declarations {
			if err := g.substituteDeclaration(rule, decl); err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *generator) substituteDeclaration(rule *css.Rule, decl *css.Declaration) error {
	tree := g.target.Light.Values
	value := decl.Value

	for remaining := reference.Count(value); remaining > 0; remaining-- {
		key := reference.ParseKey(value)
		if key == "" {
			break
		}
		literal, found := lookup(tree, key)

		switch {
		case g.inlineLiterals():
			if !found {
				g.warnMissing(rule, decl, key)
				g.plan.Remove(rule, decl)
				return nil
			}
			value = reference.Replace(value, literal)
		case !found:
			return &themes.ResolutionError{
				Key:        key,
				Theme:      g.targetName,
				Property:   decl.Property,
				Value:      value,
				Suggestion: themes.SuggestKey(tree, key),
			}
		case !g.opts.DisableRootInlining && g.usage[key] == 1:
			value = reference.Replace(value, fmt.Sprintf("var(--%s, %s)", g.localize(key), literal))
		default:
			value = reference.Replace(value, fmt.Sprintf("var(--%s)", g.localize(key)))
		}
	}

	if reference.Malformed(value) {
		return &themes.SyntaxError{Property: decl.Property, Value: value}
	}
	if value != decl.Value {
		g.plan.SetValue(decl, value)
	}
	return nil
}

func (g *generator) warnMissing(rule *css.Rule, decl *css.Declaration, key string) {
	selector := g.plan.Selector(rule)
	msg := fmt.Sprintf("could not find key %s in theme configuration, removing declaration", key)
	g.logger.Warn().
		Str("key", key).
		Str("selector", selector).
		Str("property", decl.Property).
		Msg("theme key not found")
	g.plan.Warn(css.Warning{Message: msg, Selector: selector, Property: decl.Property})
}

func (g *generator) emit() {
	var blocks []*css.Rule

	if g.single {
		root := g.rootBlock(g.target, "")
		switch {
		case themes.HasDarkMode(g.target):
			blocks = append(blocks, g.block(g.opts.DarkClass, g.used(themes.Dark, g.target, "", nil)), root)
		case !g.opts.OptimizeSingleTheme:
			blocks = append(blocks, root)
		}
		g.append(blocks)
		return
	}

	for _, name := range g.cfg.Names(g.opts.DefaultTheme) {
		theme := g.cfg[name]
		switch {
		case name == g.opts.DefaultTheme:
			blocks = append(blocks,
				g.rootBlock(theme, name),
				g.block(g.opts.DarkClass, g.used(themes.Dark, theme, name, nil)),
			)
		case themes.HasDarkMode(theme):
			blocks = append(blocks,
				g.block("."+name+g.opts.LightClass, g.used(themes.Light, theme, name, nil)),
				g.block("."+name+g.opts.DarkClass, g.used(themes.Dark, theme, name, nil)),
			)
		default:
			selector := "." + name
			if themes.HasDarkMode(g.defaultTheme) {
				selector += g.opts.LightClass
			}
			blocks = append(blocks, g.block(selector, g.used(themes.Light, theme, name, nil)))
		}
	}

	g.append(dedupe(blocks))
}

func (g *generator) append(blocks []*css.Rule) {
	for _, block := range blocks {
		if block != nil {
			g.sheet.Append(nil, block)
		}
	}
}

// rootBlock builds :root. With fallback inlining only keys used more than once
// need a definition.
func (g *generator) rootBlock(theme *themes.Theme, name string) *css.Rule {
	var keep func(string) bool
	if !g.opts.DisableRootInlining {
		keep = func(key string) bool { return g.usage[key] > 1 }
	}
	return g.block(":root", g.used(themes.Light, theme, name, keep))
}

// used collects the values of theme that the stylesheet references. name is
// empty for the merged single-theme target, which skips the redundancy filters.
func (g *generator) used(cs themes.ColorScheme, theme *themes.Theme, name string, keep func(string) bool) themes.Tree {
	out := themes.Tree{}
	if theme == nil {
		return out
	}
	values := theme.Scheme(cs).Values

	for _, key := range g.usedKeys() {
		value, ok := lookup(values, key)
		if !ok || (keep != nil && !keep(key)) {
			continue
		}
		if name != "" && name == g.opts.DefaultTheme && cs == themes.Dark {
			if light, ok := theme.Light.Values.Lookup(key); ok && light == value {
				continue
			}
		}
		if name != "" && name != g.opts.DefaultTheme && g.defaultTheme != nil {
			if base, ok := g.defaultTheme.Scheme(cs).Values.Lookup(key); ok && base == value {
				continue
			}
		}
		out.Set(key, value)
	}
	return out
}

func (g *generator) usedKeys() []string {
	keys := make([]string, 0, len(g.usage))
	for key := range g.usage {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (g *generator) block(selector string, values themes.Tree) *css.Rule {
	keys := values.Keys()
	if len(keys) == 0 {
		return nil
	}
	rule := css.NewRule(selector)
	for _, key := range keys {
		value, _ := values.Lookup(key)
		rule.Append(css.Decl("--"+g.localize(key), value))
	}
	return rule
}

// dedupe folds blocks with identical declarations into the first one by
// joining their selectors.
func dedupe(blocks []*css.Rule) []*css.Rule {
	var out []*css.Rule
	for _, block := range blocks {
		if block == nil {
			continue
		}
		merged := false
		for _, existing := range out {
			if existing.DeclarationsString() == block.DeclarationsString() {
				existing.Selector += "," + block.Selector
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, block)
		}
	}
	return out
}

// lookup treats empty values as missing.
func lookup(tree themes.Tree, key string) (string, bool) {
	value, ok := tree.Lookup(key)
	return value, ok && value != ""
}

package themes

import "sort"

// ResolveExtensions returns a copy of cfg in which every theme-level and
// scheme-level extends pointer has been merged in and removed.
//
// Inherited values act as defaults beneath a theme's own values. Scheme-level
// inheritance has the lowest precedence. Cycles are rejected within the
// theme-level pointers and within the pointers of each scheme; a loop that
// alternates between the two kinds is allowed. Every chain is validated before
// any merging happens, so a *ConfigError never leaves partially resolved output.
func ResolveExtensions(cfg Config) (Config, error) {
	r := &extensionResolver{
		input:  cfg,
		cfg:    cfg.Clone(),
		done:   make(map[node]bool, 2*len(cfg)),
		active: make(map[node]bool),
	}

	names := make([]string, 0, len(r.cfg))
	for name := range r.cfg {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := r.validate(name); err != nil {
			return nil, err
		}
	}
	for _, name := range names {
		for _, cs := range Schemes {
			r.resolve(name, cs)
		}
	}
	for _, name := range names {
		r.cfg[name].Extends = ""
	}
	return r.cfg, nil
}

// node is one color scheme of one theme.
type node struct {
	theme string
	cs    ColorScheme
}

type extensionResolver struct {
	input  Config
	cfg    Config
	done   map[node]bool
	active map[node]bool
}

// next returns the extends pointer of a theme, or of one of its schemes when cs is set.
func (r *extensionResolver) next(name string, cs ColorScheme) string {
	theme, ok := r.cfg[name]
	if !ok || theme == nil {
		return ""
	}
	if cs == "" {
		return theme.Extends
	}
	return theme.Scheme(cs).Extends
}

func (r *extensionResolver) validate(name string) error {
	if err := r.checkChain(name, ""); err != nil {
		return err
	}
	for _, cs := range Schemes {
		if err := r.checkChain(name, cs); err != nil {
			return err
		}
	}
	return nil
}

// checkChain follows extends pointers of a single kind (theme-level, or one
// color scheme) starting at name.
func (r *extensionResolver) checkChain(name string, cs ColorScheme) error {
	chain := []string{name}
	seen := map[string]bool{name: true}
	current := name

	for {
		target := r.next(current, cs)
		if target == "" {
			return nil
		}
		if _, ok := r.cfg[target]; !ok {
			return &ConfigError{Kind: ThemeNotFound, Theme: current, Target: target, Scheme: cs}
		}
		if target == current {
			return &ConfigError{Kind: SelfExtension, Theme: current, Target: target, Scheme: cs}
		}
		chain = append(chain, target)
		if seen[target] {
			return &ConfigError{Kind: Cycle, Theme: name, Target: target, Scheme: cs, Chain: chain}
		}
		seen[target] = true
		current = target
	}
}

// resolve merges the inherited values of one scheme of a theme. The theme's
// own values win over its theme-level parent, which wins over the scheme-level
// target.
func (r *extensionResolver) resolve(name string, cs ColorScheme) {
	n := node{theme: name, cs: cs}
	if r.done[n] || r.active[n] {
		return
	}
	r.active[n] = true

	values := r.cfg[name].Scheme(cs).Values
	if parent := r.input[name].Extends; parent != "" {
		values = MergeTrees(r.inherit(parent, cs), values)
	}
	if target := r.input[name].Scheme(cs).Extends; target != "" {
		values = MergeTrees(r.inherit(target, cs), values)
	}

	own := r.cfg[name].Scheme(cs)
	own.Values = values
	own.Extends = ""

	delete(r.active, n)
	r.done[n] = true
}

// inherit returns the resolved values of one scheme of name. A scheme still
// being resolved, reached through a chain mixing theme-level and scheme-level
// pointers, contributes only its own values.
func (r *extensionResolver) inherit(name string, cs ColorScheme) Tree {
	if r.active[node{theme: name, cs: cs}] {
		return r.input[name].Scheme(cs).Values
	}
	r.resolve(name, cs)
	return r.cfg[name].Scheme(cs).Values
}

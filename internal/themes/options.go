package themes

// Strategy selects how theme references are turned into CSS.
type Strategy string

const (
	// StrategyVariables emits CSS custom properties.
	StrategyVariables Strategy = "variables"
	// StrategyOverrides emits duplicated per-theme override rules.
	StrategyOverrides Strategy = "overrides"
)

// ScopedNameFunc builds a localized identifier from a key, the stylesheet path
// and the stylesheet source text.
type ScopedNameFunc func(name, filename, css string) string

// ComponentResolver returns theme overrides for a stylesheet. It receives the
// global raw configuration so overrides can derive from it.
type ComponentResolver func(cssFile string, global RawConfig) (RawConfig, error)

// Options control a single processing run.
type Options struct {
	Strategy     Strategy
	DefaultTheme string
	LightClass   string
	DarkClass    string

	// ForceSingleTheme generates output for only the named theme, merged over the default theme.
	ForceSingleTheme string
	// OptimizeSingleTheme inlines literal values when a single light-only theme is generated.
	OptimizeSingleTheme bool
	// DisableRootInlining turns off default-theme fallbacks for variables used
	// once, so every used key is defined in :root.
	DisableRootInlining bool

	// Modules is "default" for path+hash names, or a name template using
	// [local], [name], [path], [folder] and [ext].
	Modules string
	// ScopedName overrides Modules when set.
	ScopedName ScopedNameFunc

	// ComponentThemes enables loading theme overrides stored next to the stylesheet.
	ComponentThemes bool
	// ResolveTheme replaces the file-based component theme lookup.
	ResolveTheme ComponentResolver

	// Deprecated: ForceEmptyThemeSelectors emits empty placeholder selectors for every theme.
	ForceEmptyThemeSelectors bool
}

// DefaultOptions returns options with the documented defaults applied.
func DefaultOptions() Options {
	return Options{
		Strategy:     StrategyVariables,
		DefaultTheme: "default",
		LightClass:   ".light",
		DarkClass:    ".dark",
		Modules:      "default",
	}
}

// WithDefaults fills empty fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	def := DefaultOptions()
	if o.Strategy == "" {
		o.Strategy = def.Strategy
	}
	if o.DefaultTheme == "" {
		o.DefaultTheme = def.DefaultTheme
	}
	if o.LightClass == "" {
		o.LightClass = def.LightClass
	}
	if o.DarkClass == "" {
		o.DarkClass = def.DarkClass
	}
	if o.Modules == "" {
		o.Modules = def.Modules
	}
	return o
}

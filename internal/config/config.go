// Package config loads themecss settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencode-ai/themecss/internal/logging"
	"github.com/opencode-ai/themecss/internal/themes"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. THEMECSS_STRATEGY.
	EnvPrefix = "THEMECSS"
	// FileName is the config file base name searched for without an extension.
	FileName = ".themecss"
)

var osUserHomeDir = os.UserHomeDir

// Config holds every setting that is not part of the theme file itself.
type Config struct {
	// Themes is the path of the theme configuration file.
	Themes string `mapstructure:"themes"`

	Strategy     string `mapstructure:"strategy"`
	DefaultTheme string `mapstructure:"default_theme"`
	LightClass   string `mapstructure:"light_class"`
	DarkClass    string `mapstructure:"dark_class"`

	ForceSingleTheme         string `mapstructure:"force_single_theme"`
	OptimizeSingleTheme      bool   `mapstructure:"optimize_single_theme"`
	InlineRootThemeVariables bool   `mapstructure:"inline_root_theme_variables"`
	Modules                  string `mapstructure:"modules"`
	ComponentThemes          bool   `mapstructure:"component_themes"`

	// Deprecated: kept for stylesheets that rely on placeholder selectors.
	ForceEmptyThemeSelectors bool `mapstructure:"force_empty_theme_selectors"`

	Log logging.Config `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	opts := themes.DefaultOptions()
	return &Config{
		Themes:                   "themes.yaml",
		Strategy:                 string(opts.Strategy),
		DefaultTheme:             opts.DefaultTheme,
		LightClass:               opts.LightClass,
		DarkClass:                opts.DarkClass,
		InlineRootThemeVariables: !opts.DisableRootInlining,
		Modules:                  opts.Modules,
		Log:                      logging.Config{Level: "warn", Format: "console"},
	}
}

// SetDefaults registers DefaultConfig values with v.
func SetDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("themes", def.Themes)
	v.SetDefault("strategy", def.Strategy)
	v.SetDefault("default_theme", def.DefaultTheme)
	v.SetDefault("light_class", def.LightClass)
	v.SetDefault("dark_class", def.DarkClass)
	v.SetDefault("force_single_theme", def.ForceSingleTheme)
	v.SetDefault("optimize_single_theme", def.OptimizeSingleTheme)
	v.SetDefault("inline_root_theme_variables", def.InlineRootThemeVariables)
	v.SetDefault("modules", def.Modules)
	v.SetDefault("component_themes", def.ComponentThemes)
	v.SetDefault("force_empty_theme_selectors", def.ForceEmptyThemeSelectors)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
}

// Load reads configuration into v and decodes it. When path is empty the
// working directory and ~/.config/themecss are searched; a missing file is
// not an error in that case.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := osUserHomeDir(); err == nil && home != "" {
			v.AddConfigPath(filepath.Join(home, ".config", "themecss"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch themes.Strategy(c.Strategy) {
	case themes.StrategyVariables, themes.StrategyOverrides:
	default:
		return fmt.Errorf("invalid strategy %q (expected %q or %q)", c.Strategy, themes.StrategyVariables, themes.StrategyOverrides)
	}
	if strings.TrimSpace(c.DefaultTheme) == "" {
		return fmt.Errorf("default_theme is required")
	}
	for name, class := range map[string]string{"light_class": c.LightClass, "dark_class": c.DarkClass} {
		if !strings.HasPrefix(class, ".") {
			return fmt.Errorf("%s must be a class selector, got %q", name, class)
		}
	}
	return nil
}

// Options converts the configuration into processing options.
func (c *Config) Options() themes.Options {
	return themes.Options{
		Strategy:                 themes.Strategy(c.Strategy),
		DefaultTheme:             c.DefaultTheme,
		LightClass:               c.LightClass,
		DarkClass:                c.DarkClass,
		ForceSingleTheme:         c.ForceSingleTheme,
		OptimizeSingleTheme:      c.OptimizeSingleTheme,
		DisableRootInlining:      !c.InlineRootThemeVariables,
		Modules:                  c.Modules,
		ComponentThemes:          c.ComponentThemes,
		ForceEmptyThemeSelectors: c.ForceEmptyThemeSelectors,
	}
}

// ThemesPath resolves the theme file path relative to the config file.
func (c *Config) ThemesPath() string {
	if c.Themes == "" || filepath.IsAbs(c.Themes) || c.File == "" {
		return c.Themes
	}
	return filepath.Join(filepath.Dir(c.File), c.Themes)
}

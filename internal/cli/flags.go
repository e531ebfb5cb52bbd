package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/opencode-ai/themecss/internal/engine"
	"github.com/opencode-ai/themecss/internal/logging"
	"github.com/opencode-ai/themecss/internal/themes"
	"github.com/spf13/cobra"
)

// boundFlags are command flags that override config keys of the same name.
var boundFlags = []string{
	"themes",
	"strategy",
	"default-theme",
	"light-class",
	"dark-class",
	"force-single-theme",
	"optimize-single-theme",
	"inline-root",
	"modules",
	"component-themes",
	"force-empty-theme-selectors",
}

func flagKey(name string) string {
	if name == "inline-root" {
		return "inline_root_theme_variables"
	}
	return strings.ReplaceAll(name, "-", "_")
}

func addThemeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("themes", "", "theme file (YAML, JSON or TOML)")
	flags.String("strategy", "", "output strategy: variables or overrides")
	flags.String("default-theme", "", "name of the default theme")
	flags.String("light-class", "", "class selecting the light scheme")
	flags.String("dark-class", "", "class selecting the dark scheme")
	flags.String("force-single-theme", "", "generate output for a single theme only")
	flags.Bool("optimize-single-theme", false, "inline literal values in single-theme mode")
	flags.Bool("inline-root", true, "add default fallbacks to variables used once")
	flags.String("modules", "", `custom property naming: "default" or a template such as "[name]-[local]"`)
	flags.Bool("component-themes", false, "merge theme files found next to each stylesheet")
	flags.Bool("force-empty-theme-selectors", false, "emit empty placeholder selectors (deprecated)")
}

// loadThemes reads the configured theme file.
func loadThemes() (themes.RawConfig, string, error) {
	cfg := GetConfig()
	path := cfg.ThemesPath()
	raw, err := themes.LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, path, &PreflightError{
				Message:  "theme file not found: " + path,
				Hint:     "Create one from a preset or set the themes key in .themecss.yaml",
				NextStep: "themecss init",
				Err:      err,
			}
		}
		return nil, path, err
	}
	return raw, path, nil
}

func newProcessor() (*engine.Processor, string, error) {
	raw, path, err := loadThemes()
	if err != nil {
		return nil, path, err
	}
	p, err := engine.New(raw, GetConfig().Options(), logging.Component("engine"))
	if err != nil {
		return nil, path, explainError(err)
	}
	return p, path, nil
}

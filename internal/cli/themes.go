package cli

import (
	"fmt"
	"sort"

	"github.com/opencode-ai/themecss/internal/themes"
	"github.com/spf13/cobra"
)

var themesFor string

func init() {
	rootCmd.AddCommand(themesCmd)

	addThemeFlags(themesCmd)
	themesCmd.Flags().StringVar(&themesFor, "for", "", "include the component theme of this stylesheet")
}

var themesCmd = &cobra.Command{
	Use:   "themes [theme]...",
	Short: "Show resolved theme values",
	Long: `Show every theme key with its light and dark value after extends are resolved.

Hex colors are rendered as swatches on color terminals.`,
	Example: `  # Show all themes
  themecss themes

  # Show one theme, including overrides next to a stylesheet
  themecss themes mint --for src/button.css --component-themes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := newProcessor()
		if err != nil {
			return err
		}
		cfg, _, err := p.Resolve(themesFor)
		if err != nil {
			return explainError(err)
		}

		entries, err := themeEntries(cfg, p.Options().DefaultTheme, args)
		if err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No theme values defined.")
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				e.Theme,
				e.Key,
				escapeCell(valueCell(e.Light)),
				escapeCell(valueCell(e.Dark)),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"THEME", "KEY", "LIGHT", "DARK"}, rows)
	},
}

// themeEntry is one resolved key of one theme.
type themeEntry struct {
	Theme string `json:"theme"`
	Key   string `json:"key"`
	Light string `json:"light,omitempty"`
	Dark  string `json:"dark,omitempty"`
}

func themeEntries(cfg themes.Config, defaultTheme string, only []string) ([]themeEntry, error) {
	names := cfg.Names(defaultTheme)
	if len(only) > 0 {
		for _, name := range only {
			if _, ok := cfg[name]; !ok {
				return nil, &PreflightError{
					Message:  fmt.Sprintf("theme %q not found", name),
					Hint:     "Run without arguments to list every theme",
					NextStep: "themecss themes",
				}
			}
		}
		names = only
	}

	var entries []themeEntry
	for _, name := range names {
		theme := cfg[name]
		light := theme.Light.Values.Flatten()
		dark := theme.Dark.Values.Flatten()

		keys := make([]string, 0, len(light)+len(dark))
		for key := range light {
			keys = append(keys, key)
		}
		for key := range dark {
			if _, ok := light[key]; !ok {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)

		for _, key := range keys {
			entries = append(entries, themeEntry{Theme: name, Key: key, Light: light[key], Dark: dark[key]})
		}
	}
	return entries, nil
}

func valueCell(value string) string {
	if value == "" {
		return paint(styles.Muted, "-")
	}
	return swatch(value)
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencode-ai/themecss/internal/config"
	"github.com/opencode-ai/themecss/internal/themes"
	"github.com/spf13/cobra"
)

var (
	initForce  bool
	initPreset string
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing files")
	initCmd.Flags().StringVar(&initPreset, "preset", "starter", "theme preset to start from")
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a theme file and config",
	Long: `Create themes.yaml from a bundled preset and a .themecss.yaml config that
points at it. Existing files are kept unless --force is given.`,
	Example: `  # Start from the default preset in the current directory
  themecss init

  # Start from the minimal preset in ./styles
  themecss init styles --preset minimal`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		results := []initResult{
			createThemeFile(dir),
			createConfigFile(dir),
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), results)
		}

		failed := false
		for _, r := range results {
			status := checkOK
			switch r.Status {
			case "skipped":
				status = checkWarn
			case "failed":
				status = checkFail
				failed = true
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Name, formatCheckStatus(status, r.Message))
		}
		if failed {
			return errors.New("init failed")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nNext: themecss resolve <file.css>")
		return nil
	},
}

// initResult is the outcome of one init step.
type initResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

const themesFileName = "themes.yaml"

const configTemplate = `# themecss configuration
themes: themes.yaml

# variables (CSS custom properties) or overrides (per-theme rules)
strategy: variables
default_theme: default
light_class: .light
dark_class: .dark

inline_root_theme_variables: true
optimize_single_theme: false
# force_single_theme: mint

# "default" derives names from the stylesheet path and a content hash.
# Templates may use [local], [name], [path], [folder] and [ext].
modules: default

component_themes: false

log:
  level: warn
  format: console
`

func createThemeFile(dir string) initResult {
	result := initResult{Name: "Theme file"}
	source, err := themes.BuiltinSource(initPreset)
	if err != nil {
		names, _ := themes.BuiltinNames()
		result.Status = "failed"
		result.Message = fmt.Sprintf("%v (available: %s)", err, strings.Join(names, ", "))
		return result
	}
	return writeInitFile(result, filepath.Join(dir, themesFileName), source)
}

func createConfigFile(dir string) initResult {
	return writeInitFile(initResult{Name: "Config file"}, filepath.Join(dir, config.FileName+".yaml"), []byte(configTemplate))
}

func writeInitFile(result initResult, path string, data []byte) initResult {
	if _, err := os.Stat(path); err == nil && !initForce {
		result.Status = "skipped"
		result.Message = path + " already exists (use --force to overwrite)"
		return result
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		result.Status = "failed"
		result.Message = err.Error()
		return result
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		result.Status = "failed"
		result.Message = err.Error()
		return result
	}
	result.Status = "done"
	result.Message = "created " + path
	return result
}

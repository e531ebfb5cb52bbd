// Package cli implements the themecss command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/opencode-ai/themecss/internal/config"
	"github.com/opencode-ai/themecss/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile        string
	logLevel       string
	logFormat      string
	jsonOutput     bool
	jsonlOutput    bool
	nonInteractive bool
	noProgress     bool
	noColor        bool

	appConfig *config.Config
)

// Version is set at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "themecss",
	Short: "Resolve theme references in CSS",
	Long: `themecss rewrites @theme and theme('...') references in stylesheets.

Themes are read from a YAML, JSON or TOML file. Output uses either CSS custom
properties (the "variables" strategy) or per-theme override rules (the
"overrides" strategy).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.themecss.yaml or ~/.config/themecss/.themecss.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&jsonlOutput, "jsonl", false, "output in JSON Lines format")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt or highlight output")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

func initConfig(cmd *cobra.Command) error {
	v := viper.New()
	for key, flag := range map[string]string{"log.level": "log-level", "log.format": "log-format"} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	for _, name := range boundFlags {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(flagKey(name), f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return &PreflightError{
			Message:  err.Error(),
			Hint:     "Check the config file syntax and values",
			NextStep: "themecss --help",
		}
	}

	if err := logging.Init(cfg.Log, os.Stderr); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	appConfig = cfg
	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return appConfig
}

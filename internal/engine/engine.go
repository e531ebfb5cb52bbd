// Package engine runs theme processing for a stylesheet: it merges the global
// and component theme configurations, resolves extensions and dispatches to
// the selected generation strategy.
package engine

import (
	"context"
	"fmt"

	"github.com/opencode-ai/themecss/internal/css"
	"github.com/opencode-ai/themecss/internal/overrides"
	"github.com/opencode-ai/themecss/internal/themes"
	"github.com/opencode-ai/themecss/internal/variables"
	"github.com/rs/zerolog"
)

// Result describes a completed run.
type Result struct {
	Strategy themes.Strategy
	// Dependencies lists files that affect the output besides the stylesheet.
	Dependencies []string
	Warnings     []css.Warning
	// Skipped is set when the stylesheet had already been processed.
	Skipped bool
}

// Processor applies one theme configuration to stylesheets.
type Processor struct {
	raw    themes.RawConfig
	opts   themes.Options
	logger zerolog.Logger
}

// New creates a processor. A nil configuration yields ErrNoConfig.
func New(raw themes.RawConfig, opts themes.Options, logger zerolog.Logger) (*Processor, error) {
	if raw == nil {
		return nil, themes.ErrNoConfig
	}
	opts = opts.WithDefaults()
	switch opts.Strategy {
	case themes.StrategyVariables, themes.StrategyOverrides:
	default:
		return nil, fmt.Errorf("unknown strategy %q", opts.Strategy)
	}
	return &Processor{raw: raw, opts: opts, logger: logger}, nil
}

// Options returns the effective options.
func (p *Processor) Options() themes.Options {
	return p.opts
}

// Resolve returns the fully resolved configuration for a stylesheet path,
// including its component theme, and the component theme file if one was read.
func (p *Processor) Resolve(cssFile string) (themes.Config, []string, error) {
	global := themes.Normalize(p.raw)

	component, deps, err := p.componentTheme(cssFile)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := themes.ResolveExtensions(themes.Merge(global, themes.Normalize(component)))
	if err != nil {
		return nil, nil, err
	}
	return cfg, deps, nil
}

func (p *Processor) componentTheme(cssFile string) (themes.RawConfig, []string, error) {
	if cssFile == "" {
		return nil, nil, nil
	}

	if p.opts.ResolveTheme != nil {
		raw, err := p.opts.ResolveTheme(cssFile, p.raw)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve component theme for %s: %w", cssFile, err)
		}
		return raw, nil, nil
	}

	if !p.opts.ComponentThemes {
		return nil, nil, nil
	}

	raw, path, err := themes.LoadComponentTheme(cssFile)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return nil, nil, nil
	}
	p.logger.Debug().Str("file", cssFile).Str("theme", path).Msg("loaded component theme")
	return raw, []string{path}, nil
}

// Process rewrites sheet in place. A stylesheet that was already processed is
// left untouched. Configuration errors are reported before the sheet is modified.
func (p *Processor) Process(ctx context.Context, sheet *css.Stylesheet) (*Result, error) {
	result := &Result{Strategy: p.opts.Strategy}
	if sheet.Processed() {
		result.Skipped = true
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, deps, err := p.Resolve(sheet.Source.File)
	if err != nil {
		return nil, err
	}
	result.Dependencies = deps

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	warnings := len(sheet.Warnings)
	switch p.opts.Strategy {
	case themes.StrategyOverrides:
		err = overrides.Generate(sheet, cfg, p.opts, p.logger)
	default:
		err = variables.Generate(sheet, cfg, p.opts, p.logger)
	}
	if err != nil {
		if sheet.Source.File != "" {
			return nil, fmt.Errorf("%s: %w", sheet.Source.File, err)
		}
		return nil, err
	}

	sheet.MarkProcessed()
	result.Warnings = append(result.Warnings, sheet.Warnings[warnings:]...)

	p.logger.Debug().
		Str("file", sheet.Source.File).
		Str("strategy", string(p.opts.Strategy)).
		Int("themes", len(cfg)).
		Int("warnings", len(result.Warnings)).
		Msg("processed stylesheet")
	return result, nil
}

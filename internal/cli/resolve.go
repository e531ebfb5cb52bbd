package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/opencode-ai/themecss/internal/css"
	"github.com/opencode-ai/themecss/internal/engine"
	"github.com/opencode-ai/themecss/internal/logging"
	"github.com/opencode-ai/themecss/internal/themes"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	resolveOut     string
	resolveCompact bool
	resolveWatch   bool
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	addThemeFlags(resolveCmd)
	resolveCmd.Flags().StringVarP(&resolveOut, "out", "o", "", "output directory (default: stdout for a single file)")
	resolveCmd.Flags().BoolVar(&resolveCompact, "compact", false, "write minified CSS")
	resolveCmd.Flags().BoolVarP(&resolveWatch, "watch", "w", false, "re-run when inputs or theme files change")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <file.css>...",
	Short: "Resolve theme references in stylesheets",
	Long: `Resolve @theme and theme('...') references in one or more stylesheets.

A single stylesheet is written to stdout unless --out is set. Several
stylesheets are processed concurrently and written to the --out directory.`,
	Example: `  # Print resolved CSS
  themecss resolve src/button.css

  # Use per-theme override rules instead of custom properties
  themecss resolve --strategy overrides src/button.css

  # Write every stylesheet to dist/ and keep watching
  themecss resolve --out dist --watch src/*.css`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 && resolveOut == "" {
			return &PreflightError{
				Message:  "multiple stylesheets need an output directory",
				Hint:     "Pass --out to choose where resolved files are written",
				NextStep: "themecss resolve --out dist " + args[0] + " ...",
			}
		}

		if resolveOut != "" {
			if err := checkOutputCollisions(args); err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if !resolveWatch {
			_, err := runResolve(ctx, cmd.OutOrStdout(), args)
			return explainError(err)
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return resolveAndWatch(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
	},
}

// resolvedFile is the outcome for one stylesheet.
type resolvedFile struct {
	File         string        `json:"file"`
	Output       string        `json:"output,omitempty"`
	Strategy     string        `json:"strategy"`
	Dependencies []string      `json:"dependencies,omitempty"`
	Warnings     []css.Warning `json:"warnings,omitempty"`

	css string
}

// runResolve processes files concurrently and writes the results in input order.
func runResolve(ctx context.Context, out io.Writer, files []string) ([]*resolvedFile, error) {
	p, _, err := newProcessor()
	if err != nil {
		return nil, err
	}

	start := startProgress
	if len(files) > 1 {
		start = startProgressLine
	}

	results := make([]*resolvedFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			resolved, err := resolveFile(gctx, p, file, start("Resolving "+file))
			if err != nil {
				return err
			}
			results[i] = resolved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := writeResults(out, results); err != nil {
		return nil, err
	}
	return results, nil
}

func resolveFile(ctx context.Context, p *engine.Processor, file string, step *progressStep) (*resolvedFile, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		step.Fail(err)
		return nil, fmt.Errorf("failed to read stylesheet: %w", err)
	}
	sheet, err := css.Parse(string(data), css.Source{File: file})
	if err != nil {
		step.Fail(err)
		return nil, err
	}

	result, err := p.Process(ctx, sheet)
	if err != nil {
		step.Fail(err)
		return nil, err
	}

	for _, w := range result.Warnings {
		logger := logging.Component("resolve")
		logger.Warn().
			Str("file", file).
			Str("selector", w.Selector).
			Str("property", w.Property).
			Msg(w.Message)
	}

	rendered := sheet.String()
	if resolveCompact {
		rendered = sheet.Compact() + "\n"
	}

	detail := ""
	if n := len(result.Warnings); n > 0 {
		detail = fmt.Sprintf("%d warnings", n)
	}
	step.Done(detail)

	return &resolvedFile{
		File:         file,
		Strategy:     string(result.Strategy),
		Dependencies: result.Dependencies,
		Warnings:     result.Warnings,
		css:          rendered,
	}, nil
}

func writeResults(out io.Writer, results []*resolvedFile) error {
	if resolveOut == "" {
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, results)
		}
		for _, r := range results {
			if err := writeCSS(out, r.css); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(resolveOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, r := range results {
		r.Output = outputPath(r.File)
		if err := os.WriteFile(r.Output, []byte(r.css), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", r.Output, err)
		}
	}

	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(out, results)
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s -> %s\n", r.File, r.Output)
	}
	return nil
}

// outputPath is where file is written inside the --out directory.
func outputPath(file string) string {
	return filepath.Join(resolveOut, filepath.Base(file))
}

// checkOutputCollisions rejects inputs that would be written to the same output file.
func checkOutputCollisions(files []string) error {
	seen := make(map[string]string, len(files))
	for _, file := range files {
		out := outputPath(file)
		if first, ok := seen[out]; ok && filepath.Clean(first) != filepath.Clean(file) {
			return &PreflightError{
				Message:  fmt.Sprintf("%s and %s would both be written to %s", first, file, out),
				Hint:     "Stylesheets written to --out keep only their file name",
				NextStep: "Resolve one of them into a separate --out directory",
			}
		}
		seen[out] = file
	}
	return nil
}

// watchedPaths lists every file whose change affects the output.
func watchedPaths(files []string, themeFile string, results []*resolvedFile) []string {
	seen := make(map[string]bool)
	var paths []string
	add := func(path string) {
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		paths = append(paths, path)
	}

	for _, file := range files {
		add(file)
		if GetConfig().ComponentThemes {
			for _, candidate := range themes.ComponentThemeCandidates(file) {
				add(candidate)
			}
		}
	}
	add(themeFile)
	add(GetConfig().File)
	for _, r := range results {
		for _, dep := range r.Dependencies {
			add(dep)
		}
	}
	return paths
}

func resolveAndWatch(ctx context.Context, out, errOut io.Writer, files []string) error {
	results, err := runResolve(ctx, out, files)
	if err != nil {
		printError(errOut, explainError(err))
	}

	themeFile := GetConfig().ThemesPath()
	paths := watchedPaths(files, themeFile, results)
	fmt.Fprintf(errOut, "Watching %d files for changes (Ctrl+C to stop)\n", len(paths))

	return watchFiles(ctx, paths, watchDebounce, func(changed string) {
		fmt.Fprintf(errOut, "Changed: %s\n", changed)
		if _, err := runResolve(ctx, out, files); err != nil {
			printError(errOut, explainError(err))
		}
	})
}

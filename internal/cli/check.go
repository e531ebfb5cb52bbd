package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/opencode-ai/themecss/internal/css"
	"github.com/opencode-ai/themecss/internal/engine"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
	addThemeFlags(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <file.css>...",
	Short: "Validate stylesheets against the theme file",
	Long: `Resolve each stylesheet without writing output and report missing keys,
malformed references and generated selectors that do not parse.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := newProcessor()
		if err != nil {
			return err
		}

		results := make([]checkResult, 0, len(args))
		failed := 0
		for _, file := range args {
			result := checkFile(cmd.Context(), p, file)
			if result.Status == checkFail {
				failed++
			}
			results = append(results, result)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			if err := WriteOutput(cmd.OutOrStdout(), results); err != nil {
				return err
			}
		} else {
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.File, escapeCell(formatCheckStatus(r.Status, "")), r.Detail})
			}
			if err := writeTable(cmd.OutOrStdout(), []string{"FILE", "STATUS", "DETAIL"}, rows); err != nil {
				return err
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d stylesheets failed", failed, len(results))
		}
		return nil
	},
}

type checkResult struct {
	File      string      `json:"file"`
	Status    checkStatus `json:"status"`
	Detail    string      `json:"detail,omitempty"`
	Selectors int         `json:"selectors"`
}

func checkFile(ctx context.Context, p *engine.Processor, file string) checkResult {
	if ctx == nil {
		ctx = context.Background()
	}
	result := checkResult{File: file, Status: checkOK}
	fail := func(err error) checkResult {
		result.Status = checkFail
		result.Detail = err.Error()
		return result
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fail(err)
	}
	sheet, err := css.Parse(string(data), css.Source{File: file})
	if err != nil {
		return fail(err)
	}
	processed, err := p.Process(ctx, sheet)
	if err != nil {
		return fail(err)
	}

	err = sheet.WalkRules(func(rule, _ *css.Rule) error {
		result.Selectors++
		return css.ValidateSelector(rule.Selector)
	})
	if err != nil {
		return fail(err)
	}

	if n := len(processed.Warnings); n > 0 {
		result.Status = checkWarn
		result.Detail = processed.Warnings[0].Message
		if n > 1 {
			result.Detail = fmt.Sprintf("%s (+%d more)", result.Detail, n-1)
		}
		return result
	}
	result.Detail = fmt.Sprintf("%d selectors", result.Selectors)
	return result
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opencode-ai/themecss/internal/themes"
)

// PreflightError is a user-facing error with guidance on how to recover.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
	Err      error
}

func (e *PreflightError) Error() string {
	return e.Message
}

func (e *PreflightError) Unwrap() error {
	return e.Err
}

// explainError attaches recovery guidance to known failure kinds.
func explainError(err error) error {
	if err == nil {
		return nil
	}
	var preflight *PreflightError
	if errors.As(err, &preflight) {
		return err
	}

	var cfgErr *themes.ConfigError
	var resErr *themes.ResolutionError
	var syntaxErr *themes.SyntaxError
	switch {
	case errors.As(err, &cfgErr):
		return &PreflightError{
			Message:  err.Error(),
			Hint:     "Fix the extends entries in the theme file",
			NextStep: "themecss themes",
			Err:      err,
		}
	case errors.As(err, &resErr):
		hint := "Add the key to the default theme or correct the reference"
		if resErr.Suggestion != "" {
			hint = fmt.Sprintf("Did you mean %s?", resErr.Suggestion)
		}
		return &PreflightError{Message: err.Error(), Hint: hint, NextStep: "themecss themes", Err: err}
	case errors.As(err, &syntaxErr):
		return &PreflightError{
			Message: err.Error(),
			Hint:    "Use @theme key.path or theme('key.path')",
			Err:     err,
		}
	case errors.Is(err, themes.ErrNoConfig):
		return &PreflightError{
			Message:  err.Error(),
			Hint:     "Create a theme file or point the themes setting at one",
			NextStep: "themecss init",
			Err:      err,
		}
	}
	return err
}

func printError(out io.Writer, err error) {
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Error: %s\n", preflight.Message)
	if strings.TrimSpace(preflight.Hint) != "" {
		fmt.Fprintf(out, "Hint: %s\n", preflight.Hint)
	}
	if strings.TrimSpace(preflight.NextStep) != "" {
		fmt.Fprintf(out, "Next: %s\n", preflight.NextStep)
	}
}

package css

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/opencode-ai/themecss/internal/themes"
)

// ThemeRoot is the reserved pseudo-class marking the element a theme class is applied to.
const ThemeRoot = ":theme-root"

var (
	themeRootCall = regexp.MustCompile(`:theme-root\((\S+?)\)`)
	themeRootBare = regexp.MustCompile(`:theme-root`)
)

// HasThemeRoot reports whether selector uses the :theme-root marker.
func HasThemeRoot(selector string) bool {
	return strings.Contains(selector, ThemeRoot)
}

// StripBranch removes :theme-root markers from a single selector branch.
// `:theme-root(.x)` becomes `.x`; a bare `:theme-root` is dropped.
func StripBranch(branch string) string {
	branch = themeRootCall.ReplaceAllString(branch, "$1")
	return themeRootBare.ReplaceAllString(branch, "")
}

// StripThemeRoot removes :theme-root markers from every branch of selector.
// A branch that is left empty cannot be scoped and is reported as an error.
func StripThemeRoot(selector string) (string, error) {
	if !HasThemeRoot(selector) {
		return selector, nil
	}
	branches := Branches(selector)
	for i, branch := range branches {
		stripped := strings.TrimSpace(StripBranch(branch))
		if stripped == "" {
			return "", &themes.SyntaxError{
				Value:  selector,
				Reason: "selector is empty after removing " + ThemeRoot,
			}
		}
		branches[i] = stripped
	}
	return strings.Join(branches, ", "), nil
}

// Branches splits a selector list on top-level commas. Newlines are removed and
// each branch is trimmed.
func Branches(selector string) []string {
	selector = strings.ReplaceAll(selector, "\n", "")
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range selector {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(selector[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(selector[start:]))
}

// ValidateSelector reports whether selector is a valid selector group.
func ValidateSelector(selector string) error {
	if _, err := cascadia.ParseGroup(selector); err != nil {
		return fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return nil
}

package themes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoConfig is returned when processing is attempted without a theme configuration.
	ErrNoConfig = errors.New("no theme configuration provided")
	// ErrUnknownPreset is returned when a builtin preset does not exist.
	ErrUnknownPreset = errors.New("unknown theme preset")
)

// ConfigErrorKind classifies configuration failures.
type ConfigErrorKind string

const (
	// ThemeNotFound means an extends target does not name a theme.
	ThemeNotFound ConfigErrorKind = "theme-not-found"
	// SelfExtension means a theme or scheme extends itself.
	SelfExtension ConfigErrorKind = "self-extension"
	// Cycle means the extension chain loops back on itself.
	Cycle ConfigErrorKind = "cycle"
)

// ConfigError describes a malformed, missing or cyclic theme configuration.
type ConfigError struct {
	Kind   ConfigErrorKind
	Theme  string
	Target string
	Scheme ColorScheme
	Chain  []string
}

func (e *ConfigError) Error() string {
	scope := ""
	if e.Scheme != "" {
		scope = fmt.Sprintf(" (%s scheme)", e.Scheme)
	}
	switch e.Kind {
	case ThemeNotFound:
		return fmt.Sprintf("theme to extend from not found: '%s' extends '%s'%s", e.Theme, e.Target, scope)
	case SelfExtension:
		return fmt.Sprintf("a theme cannot extend itself: '%s' extends '%s'%s", e.Theme, e.Target, scope)
	case Cycle:
		quoted := make([]string, len(e.Chain))
		for i, name := range e.Chain {
			quoted[i] = "'" + name + "'"
		}
		return fmt.Sprintf("circular theme extension found%s: %s", scope, strings.Join(quoted, " => "))
	default:
		return fmt.Sprintf("invalid theme configuration for '%s'", e.Theme)
	}
}

// ResolutionError reports a referenced key that is absent from the applicable theme.
type ResolutionError struct {
	Key        string
	Theme      string
	Property   string
	Value      string
	Suggestion string
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("could not find key %s in theme '%s' (%s: %s)", e.Key, e.Theme, e.Property, e.Value)
	if e.Suggestion != "" {
		msg += fmt.Sprintf("; did you mean %s?", e.Suggestion)
	}
	return msg
}

// SyntaxError reports a theme reference that survived every substitution pass,
// or a selector that cannot be scoped.
type SyntaxError struct {
	Property string
	Value    string
	Reason   string
}

func (e *SyntaxError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "invalid theme usage"
	}
	if e.Property == "" {
		return fmt.Sprintf("%s: %s", reason, e.Value)
	}
	return fmt.Sprintf("%s: %s: %s", reason, e.Property, e.Value)
}

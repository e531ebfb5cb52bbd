// Package reference recognizes, extracts and substitutes embedded theme
// references (`@theme color.primary` or `theme('color.primary')`) in CSS values.
package reference

import (
	"regexp"
	"sort"
	"strings"

	"github.com/opencode-ai/themecss/internal/themes"
)

// Undefined is substituted for a reference whose key cannot be found.
const Undefined = "undefined"

var (
	atUsage   = regexp.MustCompile(`@theme\s+\$?([a-zA-Z\-_0-9.]+)`)
	callUsage = regexp.MustCompile(`theme\(\s*['"]([a-zA-Z\-_0-9.]+)['"]\s*\)`)

	atToken   = regexp.MustCompile(`@theme`)
	callToken = regexp.MustCompile(`theme\s*\(\s*['"]`)
)

// ParseKey returns the first referenced key, preferring the @theme syntax.
// It returns "" when the value contains no reference.
func ParseKey(value string) string {
	if m := atUsage.FindStringSubmatch(value); m != nil {
		return m[1]
	}
	if m := callUsage.FindStringSubmatch(value); m != nil {
		return m[1]
	}
	return ""
}

// Replace substitutes the first reference matched by ParseKey with replacement.
func Replace(value, replacement string) string {
	pattern := atUsage
	loc := pattern.FindStringIndex(value)
	if loc == nil {
		pattern = callUsage
		loc = pattern.FindStringIndex(value)
	}
	if loc == nil {
		return value
	}
	return value[:loc[0]] + replacement + value[loc[1]:]
}

// Has reports whether the value contains a well-formed reference.
func Has(value string) bool {
	return ParseKey(value) != ""
}

// Keys returns the distinct keys referenced in value, in order of appearance.
func Keys(value string) []string {
	type hit struct {
		pos int
		key string
	}
	var hits []hit
	for _, pattern := range []*regexp.Regexp{atUsage, callUsage} {
		for _, m := range pattern.FindAllStringSubmatchIndex(value, -1) {
			hits = append(hits, hit{pos: m[0], key: value[m[2]:m[3]]})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := make(map[string]bool, len(hits))
	keys := make([]string, 0, len(hits))
	for _, h := range hits {
		if seen[h.key] {
			continue
		}
		seen[h.key] = true
		keys = append(keys, h.key)
	}
	return keys
}

// Count returns the number of references in value, across both syntaxes.
func Count(value string) int {
	return len(atToken.FindAllStringIndex(value, -1)) + len(callToken.FindAllStringIndex(value, -1))
}

// Malformed reports whether a reference token is still present in value.
func Malformed(value string) bool {
	return atToken.MatchString(value) || callToken.MatchString(value)
}

// Value looks up key in tree, returning Undefined when the path does not lead to a value.
func Value(tree themes.Tree, key string) string {
	if value, ok := tree.Lookup(key); ok {
		return value
	}
	return Undefined
}

// Key converts a dotted key into an identifier fragment.
func Key(key string) string {
	return strings.ReplaceAll(key, ".", "-")
}

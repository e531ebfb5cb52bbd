package reference

import (
	"testing"

	"github.com/opencode-ai/themecss/internal/themes"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "@theme color.primary", want: "color.primary"},
		{value: "1px solid @theme $color.border", want: "color.border"},
		{value: "theme('color.primary')", want: "color.primary"},
		{value: `theme( "spacing.unit-2" )`, want: "spacing.unit-2"},
		{value: "theme('a') @theme b", want: "b"},
		{value: "red", want: ""},
		{value: "@theme", want: ""},
		{value: "theme(a)", want: ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ParseKey(tt.value), tt.value)
	}
}

func TestReplaceSubstitutesFirstOccurrence(t *testing.T) {
	value := "@theme a @theme b"
	value = Replace(value, "1px")
	require.Equal(t, "1px @theme b", value)

	value = Replace(value, "2px")
	require.Equal(t, "1px 2px", value)

	require.Equal(t, "x red y", Replace("x theme('c') y", "red"))
	require.Equal(t, "plain", Replace("plain", "red"))
}

func TestReplaceLoopHandlesMixedSyntax(t *testing.T) {
	tree := themes.Tree{"a": "1px", "b": "solid", "c": "red"}
	value := "@theme a theme('b') @theme c"

	for key := ParseKey(value); key != ""; key = ParseKey(value) {
		value = Replace(value, Value(tree, key))
	}
	require.Equal(t, "1px solid red", value)
}

func TestKeysCountsDistinctInOrder(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, Keys("theme('a') @theme b @theme a"))
	require.Empty(t, Keys("red"))
}

func TestMalformed(t *testing.T) {
	require.True(t, Malformed("@theme"))
	require.True(t, Malformed("theme ('x"))
	require.False(t, Malformed("var(--x)"))
	require.False(t, Malformed("themed"))
}

func TestValueSentinel(t *testing.T) {
	tree := themes.Tree{"color": themes.Tree{"primary": "purple"}}
	require.Equal(t, "purple", Value(tree, "color.primary"))
	require.Equal(t, Undefined, Value(tree, "color.secondary"))
	require.Equal(t, Undefined, Value(tree, "missing.deep.key"))
	require.Equal(t, Undefined, Value(tree, "color"))
}

func TestCount(t *testing.T) {
	require.Equal(t, 0, Count("red"))
	require.Equal(t, 1, Count("@theme a"))
	require.Equal(t, 2, Count("@theme a theme('b')"))
}

func TestKeyFlattensDots(t *testing.T) {
	require.Equal(t, "color-primary", Key("color.primary"))
	require.Equal(t, "space", Key("space"))
}

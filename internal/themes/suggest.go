package themes

import "github.com/sahilm/fuzzy"

// SuggestKey returns the closest existing dotted key for a missing one, or "".
func SuggestKey(tree Tree, key string) string {
	if key == "" || len(tree) == 0 {
		return ""
	}
	matches := fuzzy.Find(key, tree.Keys())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

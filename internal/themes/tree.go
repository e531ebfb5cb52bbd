package themes

import (
	"fmt"
	"sort"
	"strings"
)

// Tree is a nested theme value mapping. Leaves are strings; inner nodes are Trees.
type Tree map[string]any

// Lookup walks a dotted key one segment at a time. It reports false when a
// segment is missing or when the key resolves to a group instead of a value.
func (t Tree) Lookup(key string) (string, bool) {
	if key == "" || t == nil {
		return "", false
	}
	var current any = t
	for _, part := range strings.Split(key, ".") {
		node, ok := current.(Tree)
		if !ok {
			return "", false
		}
		current, ok = node[part]
		if !ok {
			return "", false
		}
	}
	value, ok := current.(string)
	return value, ok
}

// Set stores value at a dotted key, creating intermediate groups.
func (t Tree) Set(key, value string) {
	parts := strings.Split(key, ".")
	node := t
	for _, part := range parts[:len(parts)-1] {
		child, ok := node[part].(Tree)
		if !ok {
			child = Tree{}
			node[part] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = value
}

// Flatten returns every leaf keyed by its dotted path.
func (t Tree) Flatten() map[string]string {
	out := make(map[string]string)
	t.flattenInto("", out)
	return out
}

func (t Tree) flattenInto(prefix string, out map[string]string) {
	for key, value := range t {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case Tree:
			v.flattenInto(path, out)
		case string:
			out[path] = v
		}
	}
}

// Keys returns all dotted leaf keys in sorted order.
func (t Tree) Keys() []string {
	flat := t.Flatten()
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the tree. A nil tree clones to an empty one.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for key, value := range t {
		if child, ok := value.(Tree); ok {
			out[key] = child.Clone()
			continue
		}
		out[key] = value
	}
	return out
}

// MergeTrees deep-merges own over defaults. Own values take precedence; groups
// present on both sides are merged recursively.
func MergeTrees(defaults, own Tree) Tree {
	out := defaults.Clone()
	for key, value := range own {
		ownChild, ownIsTree := value.(Tree)
		baseChild, baseIsTree := out[key].(Tree)
		switch {
		case ownIsTree && baseIsTree:
			out[key] = MergeTrees(baseChild, ownChild)
		case ownIsTree:
			out[key] = ownChild.Clone()
		default:
			out[key] = value
		}
	}
	return out
}

// toTree converts decoded file data into a Tree. Scalars become strings.
func toTree(value any) Tree {
	out := Tree{}
	switch v := value.(type) {
	case Tree:
		for key, child := range v {
			out[key] = toValue(child)
		}
	case map[string]any:
		for key, child := range v {
			out[key] = toValue(child)
		}
	case map[any]any:
		for key, child := range v {
			out[fmt.Sprint(key)] = toValue(child)
		}
	}
	return out
}

func toValue(value any) any {
	switch v := value.(type) {
	case Tree, map[string]any, map[any]any:
		return toTree(v)
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

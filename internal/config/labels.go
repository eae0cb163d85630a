package config

import (
	"slices"
	"strings"
)

// LabelSet maps UI slot names to localized strings. A dotted key such as
// "docFooter.prev" addresses a nested slot.
type LabelSet map[string]string

// Keys returns the label keys in sorted order.
func (l LabelSet) Keys() []string {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Expand turns dotted keys into nested maps. When a key is both a leaf and a
// prefix of another key the nested map wins.
func (l LabelSet) Expand() map[string]any {
	out := make(map[string]any, len(l))
	for _, key := range l.Keys() {
		parts := strings.Split(key, ".")
		node := out
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[p] = child
			}
			node = child
		}
		last := parts[len(parts)-1]
		if _, isMap := node[last].(map[string]any); isMap {
			continue
		}
		node[last] = l[key]
	}
	return out
}

// conflicts returns keys that are used both as a leaf and as a prefix.
func (l LabelSet) conflicts() []string {
	var out []string
	for _, key := range l.Keys() {
		for other := range l {
			if strings.HasPrefix(other, key+".") {
				out = append(out, key)
				break
			}
		}
	}
	return out
}

// Package normalization maps loosely written config strings onto enum values.
package normalization

import (
	"fmt"
	"slices"
	"strings"
)

// Func normalizes a raw string before lookup.
type Func func(string) string

// Fold is the default normalization: trim and lowercase.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalizer converts strings into values of an enum type T.
type Normalizer[T comparable] struct {
	name     string
	values   map[string]T
	keys     []string
	fallback T
	fold     Func
}

// New creates a normalizer for the enum called name. Keys of values are folded.
func New[T comparable](name string, values map[string]T, fallback T) *Normalizer[T] {
	return NewWithFunc(name, values, fallback, Fold)
}

// NewWithFunc is New with a custom fold function.
func NewWithFunc[T comparable](name string, values map[string]T, fallback T, fold Func) *Normalizer[T] {
	n := &Normalizer[T]{
		name:     name,
		values:   make(map[string]T, len(values)),
		keys:     make([]string, 0, len(values)),
		fallback: fallback,
		fold:     fold,
	}
	for k, v := range values {
		key := fold(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	slices.Sort(n.keys)
	return n
}

// Normalize returns the matching value or the fallback.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[n.fold(raw)]; ok {
		return v
	}
	return n.fallback
}

// Parse returns the matching value or an error listing the accepted keys.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	if v, ok := n.values[n.fold(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", n.name, raw, strings.Join(n.keys, ", "))
}

// Known reports whether raw names a value.
func (n *Normalizer[T]) Known(raw string) bool {
	_, ok := n.values[n.fold(raw)]
	return ok
}

// Keys returns the accepted keys, sorted.
func (n *Normalizer[T]) Keys() []string {
	return slices.Clone(n.keys)
}

// Result is the outcome of NormalizeField.
type Result[T comparable] struct {
	Value   T
	Known   bool
	Changed bool
	Warning string
}

// NormalizeField folds raw for field and reports whether the written form changed.
// Unknown values are returned as-is so that validation can reject them.
func (n *Normalizer[T]) NormalizeField(field, raw string) Result[T] {
	folded := n.fold(raw)
	v, ok := n.values[folded]
	res := Result[T]{Value: v, Known: ok}
	if !ok {
		return res
	}
	if folded != raw {
		res.Changed = true
		res.Warning = fmt.Sprintf("normalized %s from %q to %q", field, raw, folded)
	}
	return res
}

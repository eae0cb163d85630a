package config

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// Heading depth bounds accepted for the page outline.
const (
	MinOutlineLevel = 2
	MaxOutlineLevel = 6
)

// Outline selects which heading levels appear in the page outline.
//
// The serialized level accepts a single depth (2), a pair ([2, 3]) or "deep"
// (all levels from 2 to 6). Either the level alone or a mapping with level and
// label may be written.
type Outline struct {
	Min   int
	Max   int
	Label string
}

// IsZero reports whether the outline was left unset.
func (o Outline) IsZero() bool { return o == Outline{} }

// Deep reports whether the outline covers every supported level.
func (o Outline) Deep() bool { return o.Min == MinOutlineLevel && o.Max == MaxOutlineLevel }

// Level returns the engine form of the depth: an int, a [min, max] pair or "deep".
func (o Outline) Level() any {
	switch {
	case o.Deep():
		return "deep"
	case o.Min == o.Max:
		return o.Min
	default:
		return []int{o.Min, o.Max}
	}
}

type outlineWire struct {
	Level any    `yaml:"level" json:"level"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (o Outline) MarshalYAML() (any, error) {
	return outlineWire{Level: o.Level(), Label: o.Label}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Outline) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return o.fromAny(raw)
}

// MarshalJSON implements json.Marshaler.
func (o Outline) MarshalJSON() ([]byte, error) {
	return json.Marshal(outlineWire{Level: o.Level(), Label: o.Label})
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Outline) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return o.fromAny(raw)
}

func (o *Outline) fromAny(raw any) error {
	*o = Outline{}
	level := raw
	if m, ok := raw.(map[string]any); ok {
		level = m["level"]
		if label, ok := m["label"]; ok {
			s, isString := label.(string)
			if !isString {
				return fmt.Errorf("outline label must be a string, got %T", label)
			}
			o.Label = s
		}
		if level == nil {
			return nil
		}
	}
	lo, hi, err := parseOutlineLevel(level)
	if err != nil {
		return err
	}
	o.Min, o.Max = lo, hi
	return nil
}

func parseOutlineLevel(v any) (int, int, error) {
	switch t := v.(type) {
	case string:
		if strings.EqualFold(strings.TrimSpace(t), "deep") {
			return MinOutlineLevel, MaxOutlineLevel, nil
		}
		return 0, 0, fmt.Errorf("outline level %q: expected a number, a pair or \"deep\"", t)
	case []any:
		if len(t) != 2 {
			return 0, 0, fmt.Errorf("outline level pair must have 2 entries, got %d", len(t))
		}
		lo, err := levelInt(t[0])
		if err != nil {
			return 0, 0, err
		}
		hi, err := levelInt(t[1])
		if err != nil {
			return 0, 0, err
		}
		return lo, hi, nil
	default:
		n, err := levelInt(v)
		if err != nil {
			return 0, 0, err
		}
		return n, n, nil
	}
}

func levelInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("outline level %v is not an integer", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("outline level must be a number, got %T", v)
	}
}

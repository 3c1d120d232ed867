// Package payload normalizes provider output into plain, storable data
// and derives deterministic fingerprints over submission input.
package payload

import (
	"encoding/json"
	"strings"
)

// Enum is an enumerated value carried inside extraction output.
type Enum interface {
	EnumValue() string
}

// Mapper is a structured model that can convert itself to a mapping.
type Mapper interface {
	AsMap() map[string]any
}

// Sanitize recursively reduces a nested value to mappings, sequences and
// primitives only. The shapes it understands form a closed set:
//
//   - a mapping whose "value" entry is a primitive collapses to that
//     primitive (provider "checked value" wrappers lose their annotations)
//   - other mappings and sequences are sanitized element-wise
//   - enumerated values become their upper-cased string value
//   - structured models are converted to a mapping first
//   - anything else passes through unchanged
//
// The function is pure and idempotent: sanitizing already-sanitized data
// returns it as-is.
func Sanitize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if inner, ok := t["value"]; ok {
			if p, isPrim := primitive(inner); isPrim {
				return p
			}
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Sanitize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Sanitize(item)
		}
		return out
	case Enum:
		return strings.ToUpper(t.EnumValue())
	case Mapper:
		return Sanitize(t.AsMap())
	default:
		return v
	}
}

// SanitizeMap sanitizes a top-level mapping, preserving the map shape.
func SanitizeMap(m map[string]any) map[string]any {
	out, _ := Sanitize(m).(map[string]any)
	return out
}

// primitive reports whether v is a string or numeric scalar. Booleans and
// nil are deliberately excluded: a {"value": true} mapping is not a
// checked-value wrapper.
func primitive(v any) (any, bool) {
	switch v.(type) {
	case string, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return v, true
	}
	return nil, false
}

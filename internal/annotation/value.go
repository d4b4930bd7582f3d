package annotation

import (
	"maps"
	"slices"
	"strconv"

	"source-composer/internal/common"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	ValueBool ValueKind = iota + 1
	ValueNumber
	ValueString
)

// String returns a human-readable kind name.
func (k ValueKind) String() string {
	switch k {
	case ValueBool:
		return "bool"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	default:
		return common.UnknownStr
	}
}

// Value is an annotation value: boolean true, a number, or a string.
type Value struct {
	kind ValueKind
	num  float64
	str  string
}

// True returns the value of a bare key.
func True() Value {
	return Value{kind: ValueBool}
}

// Number returns a numeric value.
func Number(n float64) Value {
	return Value{kind: ValueNumber, num: n}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: ValueString, str: s}
}

// Kind returns which variant the value holds.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsTrue reports whether the value is the boolean true of a bare key.
func (v Value) IsTrue() bool {
	return v.kind == ValueBool
}

// Number returns the numeric value and true, or 0 and false.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == ValueNumber
}

// Str returns the string value and true, or "" and false.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == ValueString
}

// Interface returns the value as bool, float64 or string.
func (v Value) Interface() any {
	switch v.kind {
	case ValueBool:
		return true
	case ValueNumber:
		return v.num
	case ValueString:
		return v.str
	default:
		return nil
	}
}

// String renders the value the way it would be written in a directive.
func (v Value) String() string {
	switch v.kind {
	case ValueBool:
		return "true"
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case ValueString:
		return strconv.Quote(v.str)
	default:
		return "<invalid>"
	}
}

// MarshalYAML encodes the value as a plain YAML scalar.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// Map maps annotation keys to values. Keys are case-sensitive.
type Map map[string]Value

// Merge copies every pair of src into m, overwriting existing keys.
// A nil m is allocated on demand and returned.
func (m Map) Merge(src Map) Map {
	if len(src) == 0 {
		return m
	}

	if m == nil {
		m = make(Map, len(src))
	}

	maps.Copy(m, src)

	return m
}

// Clone returns a copy of m, or nil if m is empty.
func (m Map) Clone() Map {
	if len(m) == 0 {
		return nil
	}

	return maps.Clone(m)
}

// Has reports whether key is present.
func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Keys returns the keys in sorted order.
func (m Map) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

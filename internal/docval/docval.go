// SPDX-License-Identifier: Apache-2.0

// Package docval models an evidence document as a tagged variant over
// {mapping, sequence, scalar}. Extractors are written against this type
// instead of a fixed schema: every lookup is a safe, non-panicking
// accessor that reports absence with a bool, and mappings remember key
// insertion order so traversal is deterministic.
package docval

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Kind discriminates the three document shapes.
type Kind uint8

const (
	Invalid Kind = iota
	Mapping
	Sequence
	Scalar
)

// Value is one node of an evidence document. The zero Value is Invalid
// and every accessor on it reports absence.
type Value struct {
	kind   Kind
	keys   []string
	fields map[string]Value
	items  []Value
	scalar any
}

// String wraps a scalar string.
func String(s string) Value {
	return Value{kind: Scalar, scalar: s}
}

// From converts a decoded YAML/JSON value into a Value. Ordered mappings
// (yaml.MapSlice) keep their key order; plain Go maps are ordered by
// sorted key so the result is still deterministic. Unknown types become
// scalars.
func From(v any) Value {
	switch t := v.(type) {
	case yaml.MapSlice:
		out := Value{kind: Mapping, fields: make(map[string]Value, len(t))}
		for _, item := range t {
			key := fmt.Sprint(item.Key)
			if _, dup := out.fields[key]; !dup {
				out.keys = append(out.keys, key)
			}
			out.fields[key] = From(item.Value)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := Value{kind: Mapping, keys: keys, fields: make(map[string]Value, len(t))}
		for _, k := range keys {
			out.fields[k] = From(t[k])
		}
		return out
	case []any:
		out := Value{kind: Sequence, items: make([]Value, 0, len(t))}
		for _, item := range t {
			out.items = append(out.items, From(item))
		}
		return out
	case Value:
		return t
	default:
		return Value{kind: Scalar, scalar: v}
	}
}

// Wrap returns a single-key mapping holding v. It is used to give
// non-mapping top-level documents a synthetic root so extractors always
// have a mapping to search.
func Wrap(key string, v Value) Value {
	return Value{
		kind:   Mapping,
		keys:   []string{key},
		fields: map[string]Value{key: v},
	}
}

func (v Value) Kind() Kind { return v.kind }

// IsMapping reports whether the value is a mapping.
func (v Value) IsMapping() bool { return v.kind == Mapping }

// Keys returns the mapping keys in insertion order, or nil for
// non-mappings.
func (v Value) Keys() []string { return v.keys }

// Field looks up a direct mapping key. A non-mapping receiver reports
// absence rather than failing.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != Mapping {
		return Value{}, false
	}
	child, ok := v.fields[key]
	return child, ok
}

// Lookup follows a key path through nested mappings, reporting absence
// as soon as any step is missing or not a mapping.
func (v Value) Lookup(path ...string) (Value, bool) {
	cur := v
	for _, key := range path {
		next, ok := cur.Field(key)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Items returns the sequence elements, or nil for non-sequences.
func (v Value) Items() []Value { return v.items }

// Str returns the scalar string value.
func (v Value) Str() (string, bool) {
	if v.kind != Scalar {
		return "", false
	}
	s, ok := v.scalar.(string)
	return s, ok
}

// Int returns the scalar as an integer. Floats are deliberately not
// coerced; a count recorded as 500.0 is a type mismatch and the caller
// moves on to its next candidate.
func (v Value) Int() (int64, bool) {
	if v.kind != Scalar {
		return 0, false
	}
	switch n := v.scalar.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	return 0, false
}

// ScalarText renders a string or numeric scalar as text for free-text
// scanning. Booleans and nulls are not candidate text.
func (v Value) ScalarText() (string, bool) {
	if v.kind != Scalar {
		return "", false
	}
	switch n := v.scalar.(type) {
	case string:
		return n, true
	case float32, float64:
		return fmt.Sprint(n), true
	}
	if i, ok := v.Int(); ok {
		return strconv.FormatInt(i, 10), true
	}
	return "", false
}

// Walk visits every scalar leaf depth-first in encounter order. Mapping
// keys are visited as string scalars immediately before their subtree,
// since provenance fields are sometimes key names rather than values.
func (v Value) Walk(visit func(Value)) {
	switch v.kind {
	case Mapping:
		for _, key := range v.keys {
			visit(String(key))
			v.fields[key].Walk(visit)
		}
	case Sequence:
		for _, item := range v.items {
			item.Walk(visit)
		}
	case Scalar:
		visit(v)
	}
}

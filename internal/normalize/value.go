// Meshboard - Home Mesh Network Dashboard
// Copyright 2026 Meshboard contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/meshboard/meshboard

package normalize

import (
	"encoding/json"
	"fmt"
)

// asMap returns v as a generic mapping, or nil if v is anything else.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asSlice returns v as a generic sequence, or nil if v is anything else.
func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// asString returns v as a string and whether it was one.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asBool coerces v to a bool; anything that is not a bool true is false.
func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asFloat coerces the numeric types a decoded JSON tree can carry.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// asInt coerces v to an int, accepting any JSON numeric representation.
func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// first returns the value of the first candidate key that is present and
// non-nil in m. Field aliases are resolved with this: the canonical name
// goes first so re-normalizing an already normalized entity is a no-op.
func first(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstString returns the first candidate that resolves to a non-empty
// string, or "".
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := asString(m[k]); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstBool ORs the boolean values of all candidate keys. Used for alias
// flag pairs (gateway / is_gateway) where either spelling may be set.
func firstBool(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if asBool(m[k]) {
			return true
		}
	}
	return false
}

// nested walks a key path through nested mappings, returning nil as soon as
// the path leaves mapping territory.
func nested(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		mm := asMap(cur)
		if mm == nil {
			return nil
		}
		cur = mm[k]
	}
	return cur
}

// truthy mirrors loose boolean coercion for the success checker: nil, false,
// zero, empty string, and empty containers are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		if f, ok := asFloat(v); ok {
			return f != 0
		}
		return true
	}
}

// stringify renders a scalar for fields that accept any representation,
// such as an ISP name supplied as a bare value.
func stringify(v any) string {
	if s, ok := asString(v); ok {
		return s
	}
	return fmt.Sprint(v)
}

// SPDX-License-Identifier: MPL-2.0

// Package coerce turns loosely-typed strings from the CLI and environment
// into strongly-typed values. The target type is never annotated explicitly:
// it is implied from an example value declared alongside the input
// (example 1 means number, example [] means list, and so on).
//
// Parsing is lenient by design. FromString never fails — when a value cannot
// be read as the implied type it falls back to the most reasonable
// representation, ultimately the raw string itself.
package coerce

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ImpliedType infers the target type from an example value.
// Only the example's shape matters: any slice implies list, any map or
// struct implies dictionary. Unknown or nil examples imply string, the
// safest target. gocty cannot imply types for interface-typed elements
// (example []any{} is the common case), so shapes are classified here and
// gocty handles the remaining concrete types.
func ImpliedType(example any) cty.Type {
	switch example.(type) {
	case nil:
		return cty.String
	case string:
		return cty.String
	case bool:
		return cty.Bool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return cty.Number
	}

	switch reflect.ValueOf(example).Kind() {
	case reflect.Slice, reflect.Array:
		return cty.List(cty.DynamicPseudoType)
	case reflect.Map, reflect.Struct:
		return cty.Map(cty.DynamicPseudoType)
	default:
	}

	if ty, err := gocty.ImpliedType(example); err == nil {
		return ty
	}
	return cty.String
}

// FromString parses raw as a human-friendly rendition of the implied type.
// It accepts JSON syntax, bare numbers and booleans, and comma-separated
// lists. It never returns an error: ambiguous input resolves to the closest
// sensible value, and unparseable input resolves to the raw string.
func FromString(raw string, ty cty.Type) any {
	trimmed := strings.TrimSpace(raw)

	switch {
	case ty == cty.String:
		return raw

	case ty == cty.Number:
		if v, err := convert.Convert(cty.StringVal(trimmed), cty.Number); err == nil {
			f, _ := v.AsBigFloat().Float64()
			return f
		}
		return raw

	case ty == cty.Bool:
		if b, ok := parseBool(trimmed); ok {
			return b
		}
		return raw

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		if v, ok := fromJSON(trimmed); ok {
			if list, isList := v.([]any); isList {
				return list
			}
			return []any{v}
		}
		return splitList(trimmed)

	case ty.IsMapType() || ty.IsObjectType():
		if v, ok := fromJSON(trimmed); ok {
			if m, isMap := v.(map[string]any); isMap {
				return m
			}
		}
		if m, ok := parsePairs(trimmed); ok {
			return m
		}
		return raw

	default:
		return guess(trimmed)
	}
}

// Native converts a cty value into its natural Go counterpart: string,
// float64, bool, []any, or map[string]any. Null and unknown values become
// nil.
func Native(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()

	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f

	case ty == cty.Bool:
		return v.True()

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, Native(ev))
		}
		return out

	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			out[k.AsString()] = Native(ev)
		}
		return out

	default:
		return nil
	}
}

// fromJSON reads s as a JSON document via cty's JSON decoder, so that nested
// structures come back as the same native shapes Native produces.
func fromJSON(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	ty, err := ctyjson.ImpliedType([]byte(s))
	if err != nil {
		return nil, false
	}
	v, err := ctyjson.Unmarshal([]byte(s), ty)
	if err != nil {
		return nil, false
	}
	return Native(v), true
}

// parseBool accepts a wider vocabulary than strconv: yes/no and on/off in
// addition to true/false/1/0, case-insensitively. An empty string means the
// flag was supplied bare, which reads as true.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "", "true", "t", "yes", "y", "on", "1":
		return true, true
	case "false", "f", "no", "n", "off", "0":
		return false, true
	default:
		return false, false
	}
}

// splitList reads a comma-separated list, guessing each element's type.
// Square brackets around the whole value are tolerated so "[a, b]" and
// "a, b" parse alike.
func splitList(s string) []any {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return []any{}
	}
	parts := strings.Split(s, ",")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		out = append(out, guess(strings.TrimSpace(p)))
	}
	return out
}

// parsePairs reads "key: value, key2: value2" (or key=value) shorthand into
// a dictionary. Returns false when any segment has no separator.
func parsePairs(s string) (map[string]any, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if strings.TrimSpace(s) == "" {
		return map[string]any{}, true
	}

	out := make(map[string]any)
	for _, seg := range strings.Split(s, ",") {
		k, v, found := strings.Cut(seg, ":")
		if !found {
			k, v, found = strings.Cut(seg, "=")
		}
		if !found {
			return nil, false
		}
		key := strings.Trim(strings.TrimSpace(k), `"'`)
		if key == "" {
			return nil, false
		}
		out[key] = guess(strings.Trim(strings.TrimSpace(v), `"'`))
	}
	return out, true
}

// guess picks the most specific type a bare token can carry:
// boolean, then number, then string.
func guess(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// SPDX-License-Identifier: MPL-2.0

package coerce_test

import (
	"reflect"
	"testing"

	"github.com/zclconf/go-cty/cty"

	"github.com/workscript/workscript/pkg/coerce"
)

func TestImpliedType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		example any
		want    cty.Type
	}{
		{name: "nil", example: nil, want: cty.String},
		{name: "string", example: "abc", want: cty.String},
		{name: "int", example: 123, want: cty.Number},
		{name: "float", example: 1.5, want: cty.Number},
		{name: "bool", example: true, want: cty.Bool},
		{name: "empty list", example: []any{}, want: cty.List(cty.DynamicPseudoType)},
		{name: "string slice", example: []string{"a"}, want: cty.List(cty.DynamicPseudoType)},
		{name: "empty dict", example: map[string]any{}, want: cty.Map(cty.DynamicPseudoType)},
		{name: "typed dict", example: map[string]int{"a": 1}, want: cty.Map(cty.DynamicPseudoType)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := coerce.ImpliedType(tt.example)
			if !got.Equals(tt.want) {
				t.Errorf("ImpliedType(%#v) = %v, want %v", tt.example, got, tt.want)
			}
		})
	}
}

func TestFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		ty   cty.Type
		want any
	}{
		{name: "string stays raw", raw: "42", ty: cty.String, want: "42"},
		{name: "number", raw: "42", ty: cty.Number, want: float64(42)},
		{name: "negative float", raw: "-1.5", ty: cty.Number, want: float64(-1.5)},
		{name: "number fallback to raw", raw: "not-a-number", ty: cty.Number, want: "not-a-number"},
		{name: "bool true", raw: "true", ty: cty.Bool, want: true},
		{name: "bool yes", raw: "yes", ty: cty.Bool, want: true},
		{name: "bool off", raw: "off", ty: cty.Bool, want: false},
		{name: "bool bare flag", raw: "", ty: cty.Bool, want: true},
		{name: "bool fallback to raw", raw: "maybe", ty: cty.Bool, want: "maybe"},
		{
			name: "list from json",
			raw:  `["a","b"]`,
			ty:   cty.List(cty.DynamicPseudoType),
			want: []any{"a", "b"},
		},
		{
			name: "list from commas",
			raw:  "a, 2, true",
			ty:   cty.List(cty.DynamicPseudoType),
			want: []any{"a", float64(2), true},
		},
		{
			name: "list single scalar wraps",
			raw:  "7",
			ty:   cty.List(cty.DynamicPseudoType),
			want: []any{float64(7)},
		},
		{
			name: "dict from json",
			raw:  `{"a":1,"b":"x"}`,
			ty:   cty.Map(cty.DynamicPseudoType),
			want: map[string]any{"a": float64(1), "b": "x"},
		},
		{
			name: "dict from pairs",
			raw:  "a: 1, b: x",
			ty:   cty.Map(cty.DynamicPseudoType),
			want: map[string]any{"a": float64(1), "b": "x"},
		},
		{
			name: "dict fallback to raw",
			raw:  "just text",
			ty:   cty.Map(cty.DynamicPseudoType),
			want: "just text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := coerce.FromString(tt.raw, tt.ty)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromString(%q, %v) = %#v, want %#v", tt.raw, tt.ty, got, tt.want)
			}
		})
	}
}

func TestNative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		val  cty.Value
		want any
	}{
		{name: "string", val: cty.StringVal("x"), want: "x"},
		{name: "number", val: cty.NumberIntVal(3), want: float64(3)},
		{name: "bool", val: cty.True, want: true},
		{name: "null", val: cty.NullVal(cty.String), want: nil},
		{
			name: "tuple",
			val:  cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.NumberIntVal(1)}),
			want: []any{"a", float64(1)},
		},
		{
			name: "object",
			val:  cty.ObjectVal(map[string]cty.Value{"k": cty.True}),
			want: map[string]any{"k": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := coerce.Native(tt.val)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Native(%v) = %#v, want %#v", tt.val, got, tt.want)
			}
		})
	}
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package infer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tfctl/tomlctl/internal/value"
)

func TestSingle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want value.Value
	}{
		{"true", "true", value.Bool(true)},
		{"False mixed case", "False", value.Bool(false)},
		{"TRUE upper case", "TRUE", value.Bool(true)},
		{"integer", "42", value.Int(42)},
		{"negative integer", "-7", value.Int(-7)},
		{"plus sign", "+5", value.Int(5)},
		{"max int64", "9223372036854775807", value.Int(math.MaxInt64)},
		{"int64 overflow falls to float", "9223372036854775808", value.Float(9223372036854775808)},
		{"float", "3.14", value.Float(3.14)},
		{"exponent", "1e3", value.Float(1000)},
		{"float out of range is a string", "1e400", value.String("1e400")},
		{"inf", "inf", value.Float(math.Inf(1))},
		{"negative inf", "-inf", value.Float(math.Inf(-1))},
		{"nan", "nan", value.Float(math.NaN())},
		{"plain string", "hello", value.String("hello")},
		{"double quoted string", `"hello"`, value.String("hello")},
		{"single quoted string", `'hello'`, value.String("hello")},
		{"quoted number still typed", `"42"`, value.Int(42)},
		{"quoted boolean still typed", `'true'`, value.Bool(true)},
		{"only one quote layer stripped", `""hi""`, value.String(`"hi"`)},
		{"mismatched quotes kept", `"hello'`, value.String(`"hello'`)},
		{"lone quote", `"`, value.String(`"`)},
		{"whitespace trimmed", "  8080  ", value.Int(8080)},
		{"empty", "", value.String("")},
		{"empty quotes", `""`, value.String("")},
		{"partial number is a string", "8080abc", value.String("8080abc")},
		{"version string", "1.0.0", value.String("1.0.0")},
		{"comma ignored in single stage", "a,b", value.String("a,b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Single(tt.raw)
			assert.True(t, value.Equal(tt.want, got), "want %s got %s", value.Token(tt.want), value.Token(got))
		})
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want value.Value
	}{
		{"scalar true", "true", value.Bool(true)},
		{"scalar False", "False", value.Bool(false)},
		{"scalar integer", "42", value.Int(42)},
		{"scalar float", "3.14", value.Float(3.14)},
		{"scalar string", "hello", value.String("hello")},
		{"quoted scalar", `"hello"`, value.String("hello")},
		{"integer array", "1,2,3", value.Array(value.Int(1), value.Int(2), value.Int(3))},
		{"boolean array", "true,false,true", value.Array(value.Bool(true), value.Bool(false), value.Bool(true))},
		{"mixed array with spaces", " a , 2 , 3.5 ", value.Array(value.String("a"), value.Int(2), value.Float(3.5))},
		{"quoted elements", `"x", 'y'`, value.Array(value.String("x"), value.String("y"))},
		{"quoted whole input is not split", `"a,b,c"`, value.String("a,b,c")},
		{"single quoted whole input is not split", `'a,b'`, value.String("a,b")},
		{"empty parts dropped", "1,,2", value.Array(value.Int(1), value.Int(2))},
		{"one non-empty part is not an array", "a,", value.String("a,")},
		{"only commas", ",,", value.String(",,")},
		// Known limitation: commas inside quoted elements still split.
		{"quoted element with comma is split", `a,"b,c"`, value.Array(value.String("a"), value.String(`"b`), value.String(`c"`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Value(tt.raw)
			assert.True(t, value.Equal(tt.want, got), "want %s got %s", value.Token(tt.want), value.Token(got))
		})
	}
}

func TestValueIsDeterministic(t *testing.T) {
	for _, raw := range []string{"1,2", "x", `"q"`, "2.5"} {
		assert.True(t, value.Equal(Value(raw), Value(raw)))
	}
}

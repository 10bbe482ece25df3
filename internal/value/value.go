// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindArray
	KindTable
	KindDatetime
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	case KindDatetime:
		return "datetime"
	default:
		return "invalid"
	}
}

// Value is a tagged union over the TOML value kinds. The zero Value is
// Invalid.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	tbl  *Table
	dt   any
}

// Bool returns a Boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Int returns an Integer value.
func Int(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float returns a Float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a String value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an Array value holding elems. Homogeneity is not enforced.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, arr: elems}
}

// FromTable wraps t as a Table value. A nil t yields an empty table.
func FromTable(t *Table) Value {
	if t == nil {
		t = NewTable()
	}
	return Value{kind: KindTable, tbl: t}
}

// Datetime wraps a datetime produced by the TOML decoder (time.Time,
// toml.LocalDateTime, toml.LocalDate or toml.LocalTime). The value is passed
// through untouched.
func Datetime(dt any) Value { return Value{kind: KindDatetime, dt: dt} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsTable reports whether v holds a Table.
func (v Value) IsTable() bool { return v.kind == KindTable }

// AsBool returns the boolean held by v and whether v is a Boolean.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBoolean }

// AsInt returns the integer held by v and whether v is an Integer.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInteger }

// AsFloat returns the float held by v and whether v is a Float.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsString returns the string held by v and whether v is a String.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsArray returns the elements held by v and whether v is an Array. The slice
// is owned by v.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// AsTable returns the table held by v and whether v is a Table. The table is
// owned by v; mutations through it are visible to every holder of v.
func (v Value) AsTable() (*Table, bool) { return v.tbl, v.kind == KindTable }

// AsDatetime returns the datetime held by v and whether v is a Datetime.
func (v Value) AsDatetime() (any, bool) { return v.dt, v.kind == KindDatetime }

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		out := make([]Value, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Clone()
		}
		return Array(out...)
	case KindTable:
		return FromTable(v.tbl.Clone())
	default:
		return v
	}
}

// Interface converts v to the plain Go shapes understood by go-toml and the
// JSON and YAML encoders: map[string]any, []any, bool, int64, float64, string
// and the original datetime value.
func (v Value) Interface() any {
	switch v.kind {
	case KindBoolean:
		return v.b
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindTable:
		return v.tbl.Interface()
	case KindDatetime:
		return v.dt
	default:
		return nil
	}
}

// FromInterface converts decoder output back into a Value. Map keys are
// ordered lexically; callers that know the source order can re-sort the
// resulting tables.
func FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case bool:
		return Bool(t), nil
	case int64:
		return Int(t), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case uint64:
		if t > math.MaxInt64 {
			return Value{}, fmt.Errorf("integer %d overflows int64", t)
		}
		return Int(int64(t)), nil
	case float64:
		return Float(t), nil
	case float32:
		return Float(float64(t)), nil
	case string:
		return String(t), nil
	case time.Time, toml.LocalDateTime, toml.LocalDate, toml.LocalTime:
		return Datetime(t), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			ev, err := FromInterface(e)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = ev
		}
		return Array(elems...), nil
	case []map[string]any:
		elems := make([]Value, len(t))
		for i, e := range t {
			ev, err := FromInterface(e)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = ev
		}
		return Array(elems...), nil
	case map[string]any:
		tab := NewTable()
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			ev, err := FromInterface(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			tab.Set(k, ev)
		}
		return FromTable(tab), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", x)
	}
}

// Equal reports whether a and b are semantically equal. Tables compare
// independent of key order and NaN equals NaN.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBoolean:
		return a.b == b.b
	case KindInteger:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f || (math.IsNaN(a.f) && math.IsNaN(b.f))
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindTable:
		if a.tbl.Len() != b.tbl.Len() {
			return false
		}
		for _, k := range a.tbl.Keys() {
			av, _ := a.tbl.Get(k)
			bv, ok := b.tbl.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindDatetime:
		if at, ok := a.dt.(time.Time); ok {
			bt, ok := b.dt.(time.Time)
			return ok && at.Equal(bt)
		}
		return reflect.DeepEqual(a.dt, b.dt)
	default:
		return true
	}
}

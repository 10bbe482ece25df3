// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import "slices"

// Table is an ordered mapping from unique string keys to values. Keys keep the
// order in which they were first inserted.
type Table struct {
	keys []string
	m    map[string]Value
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{m: make(map[string]Value)}
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (Value, bool) {
	if t == nil {
		return Value{}, false
	}
	v, ok := t.m[key]
	return v, ok
}

// Set stores v under key. An existing key keeps its position.
func (t *Table) Set(key string, v Value) {
	if _, ok := t.m[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.m[key] = v
}

// Delete removes key and returns the value it held.
func (t *Table) Delete(key string) (Value, bool) {
	v, ok := t.m[key]
	if !ok {
		return Value{}, false
	}
	delete(t.m, key)
	t.keys = slices.DeleteFunc(t.keys, func(k string) bool { return k == key })
	return v, true
}

// Keys returns a copy of the keys in table order.
func (t *Table) Keys() []string {
	if t == nil {
		return []string{}
	}
	return slices.Clone(t.keys)
}

// SortKeysFunc reorders the keys with a stable sort using cmp.
func (t *Table) SortKeysFunc(cmp func(a, b string) int) {
	slices.SortStableFunc(t.keys, cmp)
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	out := NewTable()
	if t == nil {
		return out
	}
	for _, k := range t.keys {
		out.Set(k, t.m[k].Clone())
	}
	return out
}

// Interface converts t to a map[string]any, recursively.
func (t *Table) Interface() map[string]any {
	out := make(map[string]any, t.Len())
	if t == nil {
		return out
	}
	for _, k := range t.keys {
		out[k] = t.m[k].Interface()
	}
	return out
}

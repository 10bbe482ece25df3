// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"github.com/tfctl/tomlctl/internal/keypath"
	"github.com/tfctl/tomlctl/internal/value"
)

// tree exposes the table structure of a node type to walk.
type tree[N any] interface {
	isTable(n N) bool
	child(n N, key string) (N, bool)
}

// walk follows segs from root and returns the deepest node reached together
// with the number of segments resolved. It stops without error at the first
// missing key, and with ErrNotATable when it has to descend into a node that
// is not a table; in both cases depth is the index of the segment that could
// not be followed.
func walk[N any](t tree[N], root N, segs []string) (node N, depth int, err error) {
	node = root
	for i, seg := range segs {
		if !t.isTable(node) {
			return node, i, ErrNotATable
		}
		next, ok := t.child(node, seg)
		if !ok {
			return node, i, nil
		}
		node = next
	}
	return node, len(segs), nil
}

// valueTree walks semantic values.
type valueTree struct{}

func (valueTree) isTable(v value.Value) bool { return v.IsTable() }

func (valueTree) child(v value.Value, key string) (value.Value, bool) {
	t, _ := v.AsTable()
	return t.Get(key)
}

func getValue(root *value.Table, path keypath.Path) (value.Value, bool) {
	v, depth, err := walk(valueTree{}, value.FromTable(root), path)
	if err != nil || depth < len(path) {
		return value.Value{}, false
	}
	return v, true
}

// setValue creates missing intermediate tables and overwrites the leaf. Every
// existing intermediate is checked before anything is created, so a failure
// leaves root untouched.
func setValue(root *value.Table, path keypath.Path, v value.Value) error {
	parent := path.Parent()
	node, depth, err := walk(valueTree{}, value.FromTable(root), parent)
	if err == nil && depth == len(parent) && !node.IsTable() {
		err = ErrNotATable
	}
	if err != nil {
		return &PathError{Op: "set", Path: path.String(), Segment: parent[:depth].String(), Err: err}
	}

	tbl, _ := node.AsTable()
	for _, seg := range parent[depth:] {
		child := value.NewTable()
		tbl.Set(seg, value.FromTable(child))
		tbl = child
	}
	tbl.Set(path.Leaf(), v)
	return nil
}

// removeValue deletes the leaf. Unlike setValue, a missing intermediate is an
// error rather than something to create.
func removeValue(root *value.Table, path keypath.Path) (value.Value, bool, error) {
	parent := path.Parent()
	node, depth, err := walk(valueTree{}, value.FromTable(root), parent)
	if err == nil && depth == len(parent) && !node.IsTable() {
		err = ErrNotATable
	}
	if err != nil {
		return value.Value{}, false, &PathError{Op: "remove", Path: path.String(), Segment: parent[:depth].String(), Err: err}
	}
	if depth < len(parent) {
		return value.Value{}, false, &PathError{Op: "remove", Path: path.String(), Segment: parent[:depth+1].String(), Err: ErrKeyNotFound}
	}

	tbl, _ := node.AsTable()
	old, ok := tbl.Delete(path.Leaf())
	return old, ok, nil
}

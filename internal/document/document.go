// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"cmp"
	"math"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/tfctl/tomlctl/internal/keypath"
	"github.com/tfctl/tomlctl/internal/log"
	"github.com/tfctl/tomlctl/internal/value"
)

// Document is a TOML document addressed by key paths.
type Document interface {
	// Get returns the value at path. Missing keys and paths that pass through
	// a non-table value are both reported as absent.
	Get(path keypath.Path) (value.Value, bool)

	// Set writes v at path, creating missing intermediate tables.
	Set(path keypath.Path, v value.Value) error

	// Remove deletes the value at path and returns it. An absent leaf is not
	// an error.
	Remove(path keypath.Path) (value.Value, bool, error)

	// Keys returns the top-level keys in table order.
	Keys() []string

	// Bytes serializes the document.
	Bytes() ([]byte, error)
}

// Mode selects the document model.
type Mode int

const (
	// ModePreserving keeps comments and layout of untouched keys.
	ModePreserving Mode = iota
	// ModePlain normalizes the document on every write.
	ModePlain
)

func (m Mode) String() string {
	if m == ModePlain {
		return "plain"
	}
	return "preserving"
}

// New returns an empty document.
func New(mode Mode) Document {
	if mode == ModePlain {
		return NewPlain()
	}
	return NewPreserving()
}

// Parse decodes src into a document of the given mode.
func Parse(src []byte, mode Mode) (Document, error) {
	log.Debugf("parsing %d bytes, mode %s", len(src), mode)
	if mode == ModePlain {
		return ParsePlain(src)
	}
	return ParsePreserving(src)
}

// decode returns the semantic tree of src with keys in lexical order.
func decode(src []byte) (*value.Table, error) {
	var raw map[string]any
	if err := toml.Unmarshal(src, &raw); err != nil {
		return nil, newParseError(err)
	}

	v, err := value.FromInterface(raw)
	if err != nil {
		return nil, newParseError(err)
	}
	t, _ := v.AsTable()
	return t, nil
}

// orderByLayout reorders the tables of root to match the first appearance of
// each key in the scanned text. Keys that cannot be located keep their
// relative order after the located ones.
func orderByLayout(root *value.Table, lay *layout) {
	first := map[string]int{}
	for i, e := range lay.exprs {
		var full keypath.Path
		switch e.kind {
		case exprTable, exprArrayTable:
			full = e.key
		case exprKeyValue:
			full = lay.fullPath(i)
		default:
			continue
		}
		for n := 1; n <= len(full); n++ {
			k := orderKey(full[:n])
			if _, ok := first[k]; !ok {
				first[k] = i
			}
		}
	}
	sortTable(root, nil, first)
}

func sortTable(t *value.Table, prefix keypath.Path, first map[string]int) {
	rank := func(k string) int {
		if i, ok := first[orderKey(prefix.Join(k))]; ok {
			return i
		}
		return math.MaxInt
	}
	t.SortKeysFunc(func(a, b string) int { return cmp.Compare(rank(a), rank(b)) })

	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		if sub, ok := v.AsTable(); ok {
			sortTable(sub, prefix.Join(k), first)
		}
	}
}

func orderKey(p keypath.Path) string {
	return strings.Join(p, "\x00")
}

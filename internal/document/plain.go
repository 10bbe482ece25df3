// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/tfctl/tomlctl/internal/keypath"
	"github.com/tfctl/tomlctl/internal/value"
)

// Plain is the semantic document model. Serialization is canonical: keys are
// sorted and comments are not retained.
type Plain struct {
	root *value.Table
}

var _ Document = (*Plain)(nil)

// NewPlain returns an empty plain document.
func NewPlain() *Plain {
	return &Plain{root: value.NewTable()}
}

// ParsePlain decodes src. Keys are kept in document order.
func ParsePlain(src []byte) (*Plain, error) {
	root, err := decode(src)
	if err != nil {
		return nil, err
	}
	if lay, err := scan(src); err == nil {
		orderByLayout(root, lay)
	}
	return &Plain{root: root}, nil
}

func (d *Plain) Get(path keypath.Path) (value.Value, bool) {
	v, ok := getValue(d.root, path)
	if !ok {
		return value.Value{}, false
	}
	return v.Clone(), true
}

func (d *Plain) Set(path keypath.Path, v value.Value) error {
	return setValue(d.root, path, v.Clone())
}

func (d *Plain) Remove(path keypath.Path) (value.Value, bool, error) {
	return removeValue(d.root, path)
}

func (d *Plain) Keys() []string {
	return d.root.Keys()
}

func (d *Plain) Bytes() ([]byte, error) {
	b, err := toml.Marshal(d.root.Interface())
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return b, nil
}

// Root returns a copy of the semantic tree.
func (d *Plain) Root() *value.Table {
	return d.root.Clone()
}

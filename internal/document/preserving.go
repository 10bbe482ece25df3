// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/tfctl/tomlctl/internal/keypath"
	"github.com/tfctl/tomlctl/internal/log"
	"github.com/tfctl/tomlctl/internal/value"
)

// Preserving edits the source text of a document in place. Text outside the
// edited path is kept byte-for-byte, including comments, blank lines and
// trailing comments on edited lines.
type Preserving struct {
	src  []byte
	lay  *layout
	root *value.Table
}

var _ Document = (*Preserving)(nil)

// edit replaces a span of the source with text.
type edit struct {
	span
	text string
}

// NewPreserving returns an empty document.
func NewPreserving() *Preserving {
	lay, _ := scan(nil)
	return &Preserving{lay: lay, root: value.NewTable()}
}

// ParsePreserving decodes src and records its layout.
func ParsePreserving(src []byte) (*Preserving, error) {
	root, err := decode(src)
	if err != nil {
		return nil, err
	}
	src = bytes.Clone(src)
	lay, err := scan(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}
	orderByLayout(root, lay)
	return &Preserving{src: src, lay: lay, root: root}, nil
}

func (d *Preserving) Get(path keypath.Path) (value.Value, bool) {
	v, ok := getValue(d.root, path)
	if !ok {
		return value.Value{}, false
	}
	return v.Clone(), true
}

// Literal returns the value at path as written in the source when path names
// a key/value, and its rendered token otherwise.
func (d *Preserving) Literal(path keypath.Path) (string, bool) {
	v, ok := getValue(d.root, path)
	if !ok {
		return "", false
	}
	if c := d.lay.classify(path); c.kind == defKeyValue {
		e := d.lay.exprs[c.expr]
		return string(d.src[e.val.start:e.val.end]), true
	}
	return value.Token(v), true
}

func (d *Preserving) Keys() []string {
	return d.root.Keys()
}

func (d *Preserving) Bytes() ([]byte, error) {
	return bytes.Clone(d.src), nil
}

func (d *Preserving) Set(path keypath.Path, v value.Value) error {
	v = v.Clone()
	expected := d.root.Clone()
	if err := setValue(expected, path, v); err != nil {
		return err
	}

	next, err := d.set(path, v, expected)
	if err != nil {
		return fmt.Errorf("cannot set '%s': %w", path, err)
	}
	*d = *next
	return nil
}

func (d *Preserving) set(path keypath.Path, v value.Value, expected *value.Table) (*Preserving, error) {
	c := d.lay.classify(path)
	log.Tracef("set %s: definition kind %d", path, c.kind)

	switch c.kind {
	case defKeyValue:
		e := d.lay.exprs[c.expr]
		return d.apply([]edit{{span: e.val, text: value.Token(v)}}, expected)
	case defInline:
		edits, err := d.inlineEdits(c.expr, expected)
		if err != nil {
			return nil, err
		}
		return d.apply(edits, expected)
	case defNone:
		edits, err := d.lay.insertEdits(path, v)
		if err != nil {
			return nil, err
		}
		return d.apply(edits, expected)
	}

	// A table made of sections or dotted keys is removed first and the new
	// value written in its place.
	pruned := d.root.Clone()
	if _, _, err := removeValue(pruned, path); err != nil {
		return nil, err
	}
	mid, err := d.remove(path, pruned)
	if err != nil {
		return nil, err
	}
	return mid.set(path, v, expected)
}

func (d *Preserving) Remove(path keypath.Path) (value.Value, bool, error) {
	expected := d.root.Clone()
	old, ok, err := removeValue(expected, path)
	if err != nil || !ok {
		return old, ok, err
	}

	next, err := d.remove(path, expected)
	if err != nil {
		return value.Value{}, false, fmt.Errorf("cannot remove '%s': %w", path, err)
	}
	*d = *next
	return old, true, nil
}

func (d *Preserving) remove(path keypath.Path, expected *value.Table) (*Preserving, error) {
	c := d.lay.classify(path)
	log.Tracef("remove %s: definition kind %d", path, c.kind)

	var edits []edit
	switch c.kind {
	case defKeyValue:
		edits = []edit{{span: d.lay.exprs[c.expr].line}}
	case defInline:
		var err error
		if edits, err = d.inlineEdits(c.expr, expected); err != nil {
			return nil, err
		}
	case defHeader, defArrayTable, defDotted, defImplicit:
		edits = d.lay.tableRemoveEdits(path)
	default:
		return nil, fmt.Errorf("%w: '%s' is not defined in the text", ErrLayout, path)
	}

	next, err := d.rewrite(edits)
	if err != nil {
		return nil, err
	}

	// Removing the last key of a table must not remove the table itself.
	if parent := path.Parent(); len(parent) > 0 && next.lay.classify(parent).kind == defNone {
		edits, err := next.lay.tableEdits(parent, nil, nil)
		if err != nil {
			return nil, err
		}
		if next, err = next.rewrite(edits); err != nil {
			return nil, err
		}
	}
	return next.verify(expected)
}

// inlineEdits re-renders the inline value of key/value i from expected.
func (d *Preserving) inlineEdits(i int, expected *value.Table) ([]edit, error) {
	full := d.lay.fullPath(i)
	v, ok := getValue(expected, full)
	if !ok {
		return nil, fmt.Errorf("%w: inline value '%s' is missing", ErrLayout, full)
	}
	return []edit{{span: d.lay.exprs[i].val, text: value.Token(v)}}, nil
}

func (d *Preserving) apply(edits []edit, expected *value.Table) (*Preserving, error) {
	next, err := d.rewrite(edits)
	if err != nil {
		return nil, err
	}
	return next.verify(expected)
}

// rewrite applies non-overlapping edits and rescans the result. The returned
// document has no semantic tree until verify runs.
func (d *Preserving) rewrite(edits []edit) (*Preserving, error) {
	slices.SortFunc(edits, func(a, b edit) int { return cmp.Compare(b.start, a.start) })

	src := d.src
	for _, e := range edits {
		src = slices.Concat(src[:e.start], []byte(e.text), src[e.end:])
	}
	log.Tracef("rewrite: %d edit(s), %d -> %d bytes", len(edits), len(d.src), len(src))

	lay, err := scan(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}
	return &Preserving{src: src, lay: lay}, nil
}

// verify decodes the rewritten text and accepts it only if it matches
// expected exactly.
func (d *Preserving) verify(expected *value.Table) (*Preserving, error) {
	root, err := decode(d.src)
	if err != nil {
		return nil, fmt.Errorf("%w: edit produced invalid TOML: %v", ErrLayout, err)
	}
	if !value.Equal(value.FromTable(root), value.FromTable(expected)) {
		return nil, fmt.Errorf("%w: edited text does not decode to the expected document", ErrLayout)
	}
	orderByLayout(root, d.lay)
	d.root = root
	return d, nil
}

// insertEdits writes path = v where path has no definition in the text.
func (l *layout) insertEdits(path keypath.Path, v value.Value) ([]edit, error) {
	parent := path.Parent()
	switch pc := l.classify(parent); pc.kind {
	case defRoot, defHeader:
		return l.appendEdits(pc.section, keypath.Path{path.Leaf()}, v), nil
	case defDotted:
		return l.appendEdits(pc.section, path[len(l.sections[pc.section].path):], v), nil
	case defImplicit, defNone:
		return l.tableEdits(parent, keypath.Path{path.Leaf()}, &v)
	}
	return nil, fmt.Errorf("%w: '%s' is not a table in the text", ErrLayout, parent)
}

// tableEdits defines table p, which has no header of its own, with an
// optional first key/value rel = v.
func (l *layout) tableEdits(p keypath.Path, rel keypath.Path, v *value.Value) ([]edit, error) {
	header := "[" + value.DottedKey(p) + "]" + l.eol
	if v != nil {
		header += l.keyValueLine(rel, *v)
	}

	pc := l.classify(p)
	switch pc.kind {
	case defImplicit:
		return []edit{l.insertion(l.attachedStart(pc.expr), header+l.eol)}, nil
	case defNone:
	default:
		return nil, fmt.Errorf("%w: '%s' is already defined", ErrLayout, p)
	}

	anc, _, err := walk(layoutTree{l}, keypath.Path(nil), p)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s' is not a table in the text", ErrLayout, anc)
	}

	ac := l.classify(anc)
	if ac.kind == defDotted {
		full, val := p, value.FromTable(nil)
		if v != nil {
			full, val = p.Join(rel...), *v
		}
		return l.appendEdits(ac.section, full[len(l.sections[ac.section].path):], val), nil
	}

	pos := len(l.src)
	if len(anc) > 0 {
		pos = l.sectionEnd(l.lastSectionUnder(anc))
	}
	if pos > 0 && !(pos == len(l.src) && bytes.HasSuffix(l.src, []byte(l.eol+l.eol))) {
		header = l.eol + header
	}
	return []edit{l.insertion(pos, header)}, nil
}

// appendEdits adds rel = v after the last key/value of section si.
func (l *layout) appendEdits(si int, rel keypath.Path, v value.Value) []edit {
	sec := l.sections[si]
	line := l.keyValueLine(rel, v)

	if n := len(sec.kvs); n > 0 {
		last := sec.kvs[n-1]
		return []edit{l.insertion(l.exprs[last].line.end, l.indent(last)+line)}
	}
	if sec.header >= 0 {
		return []edit{l.insertion(l.exprs[sec.header].line.end, line)}
	}
	if len(l.sections) > 1 {
		return []edit{l.insertion(l.attachedStart(l.sections[1].header), line+l.eol)}
	}
	return []edit{l.insertion(len(l.src), line)}
}

// tableRemoveEdits deletes every section and dotted key/value defining path
// or anything below it.
func (l *layout) tableRemoveEdits(path keypath.Path) []edit {
	var edits []edit
	removed := map[int]bool{}
	for i := 1; i < len(l.sections); i++ {
		if !l.sections[i].path.HasPrefix(path) {
			continue
		}
		removed[i] = true
		start := l.attachedStart(l.sections[i].header)
		edits = append(edits, edit{span: span{start, l.sectionStop(i)}})
	}
	for i, e := range l.exprs {
		if e.kind == exprKeyValue && !removed[e.section] && !l.sections[e.section].inArray && l.fullPath(i).HasPrefix(path) {
			edits = append(edits, edit{span: e.line})
		}
	}
	return edits
}

func (l *layout) keyValueLine(rel keypath.Path, v value.Value) string {
	return value.DottedKey(rel) + " = " + value.Token(v) + l.eol
}

// insertion inserts text at pos, starting a new line first when pos follows
// an unterminated last line.
func (l *layout) insertion(pos int, text string) edit {
	if pos > 0 && l.src[pos-1] != '\n' {
		text = l.eol + text
	}
	return edit{span: span{pos, pos}, text: text}
}

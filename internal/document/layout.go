// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/tfctl/tomlctl/internal/keypath"
)

// The layout scanner runs only on text that go-toml has already accepted, so
// it recognizes the shape of each expression and records byte spans without
// re-validating values.

type exprKind int

const (
	exprBlank exprKind = iota
	exprComment
	exprTable
	exprArrayTable
	exprKeyValue
)

// span is a half-open byte range of the source.
type span struct {
	start, end int
}

type expr struct {
	kind exprKind
	// line runs from the start of the first line through the line terminator
	// of the last line of the expression.
	line span
	// key is the header path, or the key of a key/value relative to its
	// section.
	key keypath.Path
	// val is the value token of a key/value.
	val     span
	section int
}

type section struct {
	kind   exprKind
	path   keypath.Path
	header int // expression index, -1 for the root section
	kvs    []int
	// inArray marks sections belonging to an element of an array of tables.
	// Their keys are not reachable by a key path.
	inArray bool
}

type layout struct {
	src      []byte
	eol      string
	exprs    []expr
	sections []section
}

func scan(src []byte) (*layout, error) {
	l := &layout{
		src:      src,
		eol:      "\n",
		sections: []section{{header: -1}},
	}
	if bytes.Contains(src, []byte("\r\n")) {
		l.eol = "\r\n"
	}

	s := scanner{src: src}
	for pos := 0; pos < len(src); {
		e, err := s.expression(pos)
		if err != nil {
			return nil, err
		}

		idx := len(l.exprs)
		switch e.kind {
		case exprTable, exprArrayTable:
			l.sections = append(l.sections, section{
				kind:    e.kind,
				path:    e.key,
				header:  idx,
				inArray: e.kind == exprArrayTable || l.underArray(e.key),
			})
			e.section = len(l.sections) - 1
		case exprKeyValue:
			e.section = len(l.sections) - 1
			l.sections[e.section].kvs = append(l.sections[e.section].kvs, idx)
		default:
			e.section = len(l.sections) - 1
		}
		l.exprs = append(l.exprs, e)
		pos = e.line.end
	}
	return l, nil
}

func (l *layout) underArray(path keypath.Path) bool {
	for _, sec := range l.sections {
		if sec.kind == exprArrayTable && len(sec.path) < len(path) && path.HasPrefix(sec.path) {
			return true
		}
	}
	return false
}

// fullPath returns the absolute key path of expression i.
func (l *layout) fullPath(i int) keypath.Path {
	e := l.exprs[i]
	if e.kind != exprKeyValue {
		return e.key
	}
	return l.sections[e.section].path.Join(e.key...)
}

// defKind describes how a path is defined in the text.
type defKind int

const (
	defNone      defKind = iota
	defRoot              // the empty path
	defHeader            // [path]
	defArrayTable        // [[path]]
	defDotted            // a table created by dotted keys such as path.x = 1
	defImplicit          // a super-table of some [path.x] header
	defKeyValue          // path = value
	defInline            // a key inside the inline value of a shorter key/value
)

type class struct {
	kind    defKind
	section int
	expr    int
}

func (l *layout) classify(path keypath.Path) class {
	if len(path) == 0 {
		return class{kind: defRoot, expr: -1}
	}

	for i := 1; i < len(l.sections); i++ {
		sec := l.sections[i]
		if !sec.path.Equal(path) {
			continue
		}
		if sec.kind == exprArrayTable {
			return class{kind: defArrayTable, section: i, expr: sec.header}
		}
		if !sec.inArray {
			return class{kind: defHeader, section: i, expr: sec.header}
		}
	}

	dotted := class{kind: defNone}
	for i, e := range l.exprs {
		if e.kind != exprKeyValue || l.sections[e.section].inArray {
			continue
		}
		full := l.fullPath(i)
		switch {
		case full.Equal(path):
			return class{kind: defKeyValue, section: e.section, expr: i}
		case path.HasPrefix(full):
			return class{kind: defInline, section: e.section, expr: i}
		case full.HasPrefix(path) && len(l.sections[e.section].path) < len(path):
			dotted = class{kind: defDotted, section: e.section, expr: i}
		}
	}
	if dotted.kind != defNone {
		return dotted
	}

	for i := 1; i < len(l.sections); i++ {
		if l.sections[i].path.HasPrefix(path) {
			return class{kind: defImplicit, section: i, expr: l.sections[i].header}
		}
	}
	return class{kind: defNone}
}

// layoutTree lets walk find how far a path is defined in the text.
type layoutTree struct {
	l *layout
}

func (t layoutTree) isTable(p keypath.Path) bool {
	switch t.l.classify(p).kind {
	case defRoot, defHeader, defDotted, defImplicit:
		return true
	}
	return false
}

func (t layoutTree) child(p keypath.Path, key string) (keypath.Path, bool) {
	c := p.Join(key)
	return c, t.l.classify(c).kind != defNone
}

// attachedStart returns the start of the comment block directly above
// expression i, or the start of i itself.
func (l *layout) attachedStart(i int) int {
	for i > 0 && l.exprs[i-1].kind == exprComment {
		i--
	}
	return l.exprs[i].line.start
}

// sectionEnd returns the offset just past the last header or key/value line
// of section si.
func (l *layout) sectionEnd(si int) int {
	sec := l.sections[si]
	if n := len(sec.kvs); n > 0 {
		return l.exprs[sec.kvs[n-1]].line.end
	}
	if sec.header >= 0 {
		return l.exprs[sec.header].line.end
	}
	return 0
}

// sectionStop returns the offset where section si and its trailing trivia
// end: the comment block of the next header, or the end of the source.
func (l *layout) sectionStop(si int) int {
	if si+1 < len(l.sections) {
		return l.attachedStart(l.sections[si+1].header)
	}
	return len(l.src)
}

// lastSectionUnder returns the index of the last section whose path starts
// with p, or -1.
func (l *layout) lastSectionUnder(p keypath.Path) int {
	for i := len(l.sections) - 1; i > 0; i-- {
		if l.sections[i].path.HasPrefix(p) {
			return i
		}
	}
	return -1
}

func (l *layout) indent(i int) string {
	ln := l.exprs[i].line
	p := ln.start
	for p < ln.end && isSpace(l.src[p]) {
		p++
	}
	return string(l.src[ln.start:p])
}

type scanner struct {
	src []byte
}

func (s *scanner) errorf(pos int, format string, args ...any) error {
	line := 1 + bytes.Count(s.src[:min(pos, len(s.src))], []byte("\n"))
	return fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...))
}

func (s *scanner) expression(start int) (expr, error) {
	e := expr{line: span{start: start}}
	p := s.skipSpace(start)

	switch {
	case p >= len(s.src) || s.isEOL(p):
		e.kind = exprBlank
	case s.src[p] == '#':
		e.kind = exprComment
	case s.src[p] == '[':
		e.kind = exprTable
		closing := "]"
		p++
		if p < len(s.src) && s.src[p] == '[' {
			e.kind = exprArrayTable
			closing = "]]"
			p++
		}
		key, next, err := s.key(p)
		if err != nil {
			return e, err
		}
		e.key = key
		if !s.hasPrefix(next, closing) {
			return e, s.errorf(next, "expected %q", closing)
		}
		p = next + len(closing)
	default:
		e.kind = exprKeyValue
		key, next, err := s.key(p)
		if err != nil {
			return e, err
		}
		e.key = key
		if next >= len(s.src) || s.src[next] != '=' {
			return e, s.errorf(next, "expected '='")
		}
		p = s.skipSpace(next + 1)
		end, err := s.value(p)
		if err != nil {
			return e, err
		}
		e.val = span{p, end}
		p = end
	}

	end, err := s.lineEnd(p)
	e.line.end = end
	return e, err
}

// lineEnd skips trailing whitespace and an optional comment and returns the
// offset after the line terminator.
func (s *scanner) lineEnd(p int) (int, error) {
	p = s.skipSpace(p)
	if p < len(s.src) && s.src[p] == '#' {
		for p < len(s.src) && s.src[p] != '\n' {
			p++
		}
	}
	switch {
	case p >= len(s.src):
		return p, nil
	case s.src[p] == '\n':
		return p + 1, nil
	case s.hasPrefix(p, "\r\n"):
		return p + 2, nil
	}
	return p, s.errorf(p, "expected end of line")
}

// key reads a possibly dotted key and returns the offset of the first
// non-space byte after it.
func (s *scanner) key(p int) (keypath.Path, int, error) {
	var path keypath.Path
	for {
		seg, next, err := s.simpleKey(s.skipSpace(p))
		if err != nil {
			return nil, p, err
		}
		path = append(path, seg)
		p = s.skipSpace(next)
		if p < len(s.src) && s.src[p] == '.' {
			p++
			continue
		}
		return path, p, nil
	}
}

func (s *scanner) simpleKey(p int) (string, int, error) {
	if p >= len(s.src) {
		return "", p, s.errorf(p, "expected key")
	}
	switch s.src[p] {
	case '"':
		end, err := s.basicString(p)
		if err != nil {
			return "", p, err
		}
		raw := string(s.src[p:end])
		k, err := strconv.Unquote(raw)
		if err != nil {
			k = raw[1 : len(raw)-1]
		}
		return k, end, nil
	case '\'':
		end, err := s.literalString(p)
		if err != nil {
			return "", p, err
		}
		return string(s.src[p+1 : end-1]), end, nil
	}

	end := p
	for end < len(s.src) && isBareKeyByte(s.src[end]) {
		end++
	}
	if end == p {
		return "", p, s.errorf(p, "expected key")
	}
	return string(s.src[p:end]), end, nil
}

// value returns the offset just past the value starting at p.
func (s *scanner) value(p int) (int, error) {
	if p >= len(s.src) {
		return p, s.errorf(p, "expected value")
	}
	switch {
	case s.hasPrefix(p, `"""`):
		return s.multiline(p, `"""`, true)
	case s.hasPrefix(p, "'''"):
		return s.multiline(p, "'''", false)
	case s.src[p] == '"':
		return s.basicString(p)
	case s.src[p] == '\'':
		return s.literalString(p)
	case s.src[p] == '[':
		return s.array(p)
	case s.src[p] == '{':
		return s.inlineTable(p)
	}
	return s.bare(p)
}

func (s *scanner) basicString(p int) (int, error) {
	for i := p + 1; i < len(s.src) && s.src[i] != '\n'; i++ {
		switch s.src[i] {
		case '\\':
			i++
		case '"':
			return i + 1, nil
		}
	}
	return p, s.errorf(p, "unterminated string")
}

func (s *scanner) literalString(p int) (int, error) {
	for i := p + 1; i < len(s.src) && s.src[i] != '\n'; i++ {
		if s.src[i] == '\'' {
			return i + 1, nil
		}
	}
	return p, s.errorf(p, "unterminated string")
}

// multiline scans a multi-line string. Up to two quote characters directly
// before the closing delimiter belong to the content.
func (s *scanner) multiline(p int, delim string, escapes bool) (int, error) {
	for i := p + len(delim); i < len(s.src); i++ {
		if escapes && s.src[i] == '\\' {
			i++
			continue
		}
		if s.hasPrefix(i, delim) {
			n := len(delim)
			for n < len(delim)+2 && i+n < len(s.src) && s.src[i+n] == delim[0] {
				n++
			}
			return i + n, nil
		}
	}
	return p, s.errorf(p, "unterminated multi-line string")
}

func (s *scanner) array(p int) (int, error) {
	i := p + 1
	for {
		i = s.skipTrivia(i)
		if i >= len(s.src) {
			return p, s.errorf(p, "unterminated array")
		}
		switch s.src[i] {
		case ']':
			return i + 1, nil
		case ',':
			i++
			continue
		}
		end, err := s.value(i)
		if err != nil {
			return p, err
		}
		i = end
	}
}

func (s *scanner) inlineTable(p int) (int, error) {
	i := p + 1
	for {
		i = s.skipTrivia(i)
		if i >= len(s.src) {
			return p, s.errorf(p, "unterminated inline table")
		}
		switch s.src[i] {
		case '}':
			return i + 1, nil
		case ',':
			i++
			continue
		}
		_, next, err := s.key(i)
		if err != nil {
			return p, err
		}
		if next >= len(s.src) || s.src[next] != '=' {
			return p, s.errorf(next, "expected '='")
		}
		end, err := s.value(s.skipSpace(next + 1))
		if err != nil {
			return p, err
		}
		i = end
	}
}

// bare scans numbers, booleans and datetimes. A local date followed by a
// space and a time is a single token.
func (s *scanner) bare(p int) (int, error) {
	end := s.bareEnd(p)
	if end == p {
		return p, s.errorf(p, "expected value")
	}
	if isDate(s.src[p:end]) && end+1 < len(s.src) && s.src[end] == ' ' && isDigit(s.src[end+1]) {
		end = s.bareEnd(end + 1)
	}
	return end, nil
}

func (s *scanner) bareEnd(p int) int {
	for p < len(s.src) && bytes.IndexByte([]byte(" \t\r\n#,]}="), s.src[p]) < 0 {
		p++
	}
	return p
}

func (s *scanner) skipSpace(p int) int {
	for p < len(s.src) && isSpace(s.src[p]) {
		p++
	}
	return p
}

// skipTrivia skips whitespace, newlines and comments inside arrays and inline
// tables.
func (s *scanner) skipTrivia(p int) int {
	for p < len(s.src) {
		switch c := s.src[p]; {
		case isSpace(c) || c == '\r' || c == '\n':
			p++
		case c == '#':
			for p < len(s.src) && s.src[p] != '\n' {
				p++
			}
		default:
			return p
		}
	}
	return p
}

func (s *scanner) isEOL(p int) bool {
	return s.src[p] == '\n' || s.hasPrefix(p, "\r\n")
}

func (s *scanner) hasPrefix(p int, prefix string) bool {
	return p <= len(s.src) && bytes.HasPrefix(s.src[p:], []byte(prefix))
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isBareKeyByte(c byte) bool {
	return c == '_' || c == '-' || isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'z')
}

// isDate matches YYYY-MM-DD.
func isDate(b []byte) bool {
	if len(b) != 10 || b[4] != '-' || b[7] != '-' {
		return false
	}
	for i, c := range b {
		if i != 4 && i != 7 && !isDigit(c) {
			return false
		}
	}
	return true
}

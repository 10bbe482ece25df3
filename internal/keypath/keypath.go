// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package keypath

import (
	"errors"
	"strings"
)

// ErrEmptyPath is returned by Parse for an empty key expression.
var ErrEmptyPath = errors.New("key cannot be empty")

// Path is an ordered, non-empty sequence of key segments.
type Path []string

// Parse splits a dot-notation key expression into its segments. Splitting is
// purely lexical: quoting is not recognized, so a key containing a literal dot
// cannot be addressed. Empty segments (from "a..b", ".a" or "a.") are passed
// through as-is.
func Parse(key string) (Path, error) {
	if key == "" {
		return nil, ErrEmptyPath
	}
	return Path(strings.Split(key, ".")), nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// static keys.
func MustParse(key string) Path {
	p, err := Parse(key)
	if err != nil {
		panic(err)
	}
	return p
}

// String joins the segments back into dot notation.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Parent returns all but the last segment. The parent of a single segment
// path is empty and addresses the document root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Leaf returns the last segment.
func (p Path) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// HasPrefix reports whether q is a (not necessarily proper) prefix of p.
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	for i := range q {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Equal reports whether p and q have identical segments.
func (p Path) Equal(q Path) bool {
	return len(p) == len(q) && p.HasPrefix(q)
}

// Join returns a new path made of p followed by segs. p is never modified.
func (p Path) Join(segs ...string) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrNotATable is returned when an intermediate path segment resolves to
	// a value that is not a table.
	ErrNotATable = errors.New("path contains non-table value")

	// ErrKeyNotFound is returned by Remove when an intermediate path segment
	// does not exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrLayout is returned by the format-preserving model when an edit
	// cannot be expressed without disturbing the rest of the document.
	ErrLayout = errors.New("format-preserving edit failed")
)

// PathError records the operation, the full key and the segment at which a
// path operation failed.
type PathError struct {
	Op      string
	Path    string
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("cannot %s '%s': %v at '%s'", e.Op, e.Path, e.Err, e.Segment)
}

func (e *PathError) Unwrap() error { return e.Err }

// ParseError reports malformed TOML input. Line and Column are 1-based and
// zero when unknown.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid TOML at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("invalid TOML: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(err error) *ParseError {
	pe := &ParseError{Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
	}
	return pe
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package infer

import (
	"strconv"
	"strings"

	"github.com/tfctl/tomlctl/internal/value"
)

// Value infers the typed value of raw. It never fails; anything that is not
// an array, boolean, integer or float becomes a String.
func Value(raw string) value.Value {
	if parts, ok := splitArray(raw); ok {
		elems := make([]value.Value, len(parts))
		for i, p := range parts {
			elems[i] = Single(p)
		}
		return value.Array(elems...)
	}
	return Single(raw)
}

// Single infers a scalar from raw without considering commas. One layer of
// matching quotes is stripped first; quoting does not stop "42" or "true"
// from being typed.
func Single(raw string) value.Value {
	s, _ := unquote(strings.TrimSpace(raw))

	if strings.EqualFold(s, "true") {
		return value.Bool(true)
	}
	if strings.EqualFold(s, "false") {
		return value.Bool(false)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return value.Float(f)
	}
	return value.String(s)
}

// splitArray applies the comma heuristic to the whole input. It reports false
// when the input is quoted, has no comma, or yields fewer than two non-empty
// parts.
func splitArray(raw string) ([]string, bool) {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, ",") {
		return nil, false
	}
	if _, quoted := unquote(s); quoted {
		return nil, false
	}

	var parts []string
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return nil, false
	}
	return parts, true
}

// unquote strips one matching pair of double or single quotes.
func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return s, false
	}
	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return s, false
	}
	return s[1 : len(s)-1], true
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"slices"
	"strings"
)

// SortDataset stable-sorts rows by a comma-separated list of columns. A
// leading "-" sorts a column descending and a leading "!" makes string
// comparison case-sensitive. Numeric columns compare as numbers.
func SortDataset(rows []map[string]any, spec string) {
	if spec == "" {
		return
	}
	fields := strings.Split(spec, ",")

	slices.SortStableFunc(rows, func(a, b map[string]any) int {
		for _, field := range fields {
			desc := false
			if rest, ok := strings.CutPrefix(field, "-"); ok {
				field, desc = rest, true
			}
			caseSensitive := false
			if rest, ok := strings.CutPrefix(field, "!"); ok {
				field, caseSensitive = rest, true
			}

			c := compareCells(a[field], b[field], caseSensitive)
			if c == 0 {
				continue
			}
			if desc {
				return -c
			}
			return c
		}
		return 0
	})
}

func compareCells(a, b any, caseSensitive bool) int {
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return cmp.Compare(x, y)
		}
	}
	x, y := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		x, y = strings.ToLower(x), strings.ToLower(y)
	}
	return cmp.Compare(x, y)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

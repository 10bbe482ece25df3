// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

// Token renders v in its literal TOML spelling, as it would appear on the
// right-hand side of a key/value: strings keep their quotes, arrays render as
// [a, b] and tables as inline tables.
func Token(v Value) string {
	var sb strings.Builder
	writeToken(&sb, v)
	return sb.String()
}

// Raw renders v like Token except that a String renders as its bare contents.
func Raw(v Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	return Token(v)
}

// Key renders a single key segment, quoting it when it is not a valid bare
// key.
func Key(k string) string {
	if isBareKey(k) {
		return k
	}
	return quote(k)
}

// DottedKey renders segs as a dotted TOML key.
func DottedKey(segs []string) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = Key(s)
	}
	return strings.Join(parts, ".")
}

func writeToken(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindString:
		sb.WriteString(quote(v.s))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeToken(sb, e)
		}
		sb.WriteByte(']')
	case KindTable:
		if v.tbl.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{ ")
		for i, k := range v.tbl.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			e, _ := v.tbl.Get(k)
			sb.WriteString(Key(k))
			sb.WriteString(" = ")
			writeToken(sb, e)
		}
		sb.WriteString(" }")
	case KindInvalid:
		sb.WriteString("<invalid>")
	default:
		sb.WriteString(scalarLiteral(v.Interface()))
	}
}

// scalarLiteral lets go-toml spell numbers, booleans and datetimes so the
// result always parses back to the same value.
func scalarLiteral(x any) string {
	b, err := toml.Marshal(map[string]any{"v": x})
	if err != nil {
		return fmt.Sprint(x)
	}
	s := strings.TrimRight(string(b), "\r\n")
	return strings.TrimPrefix(s, "v = ")
}

// quote renders s as a TOML basic string.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f || r == utf8.RuneError {
				fmt.Fprintf(&sb, `\u%04X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func isBareKey(k string) bool {
	if k == "" {
		return false
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

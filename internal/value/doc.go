// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package value defines the typed values stored in a TOML document: booleans,
// 64-bit integers and floats, strings, arrays, tables and opaque datetimes.
//
// Tables own their children directly and keep insertion order. A Value is
// built top-down, so a tree of values can never contain a cycle.
package value

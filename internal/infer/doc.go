// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package infer converts raw command line strings into typed TOML values.
//
// Inference runs in two separate stages. The array stage looks at the whole
// input and splits it on commas; it knows nothing about quoting inside the
// parts, so "a,\"b,c\"" splits into three elements. The single-value stage
// then types each part (or the whole input) as a boolean, integer, float or,
// failing those, a string.
//
// A float literal outside the float64 range, such as 1e400, is not clamped to
// an infinity; it fails the float check and is kept as a string. The
// spellings inf and nan are still floats.
package infer

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ renders edit previews. Plain documents are compared as data
// with gojsondiff, format-preserving documents line by line with go-diff.
package differ

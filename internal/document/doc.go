// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package document implements path-addressed get, set, remove and key listing
// over TOML documents. Two models are provided:
//
//   - Plain holds only semantic values and serializes canonically; comments
//     and layout are discarded.
//   - Preserving edits the original text in place so that comments, blank
//     lines and key order outside the edited path survive byte-for-byte.
//
// Both models share one navigation routine (walk) so that a path means the
// same thing regardless of the model in use. Documents are not safe for
// concurrent use.
package document

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a listing with key-operator-target
// expressions, as given to keys --filter.
//
// Operators:
//
//   - = : exact match, numeric when both sides are numbers
//   - ^ : prefix match
//   - ~ : case-insensitive match
//   - < : less than; a numeric target only matches numeric values
//   - > : greater than; a numeric target only matches numeric values
//   - @ : contains substring, or membership for lists and maps
//   - / : regular expression match
//
// Every operator can be negated with a leading '!'.
//
// Examples:
//
//   - "kind=table" : table keys only
//   - "key^db" : keys starting with "db"
//   - "value>100" : numeric values above 100
//   - "value!@test" : values not containing "test"
//
// Expressions are comma-delimited unless TOMLCTL_FILTER_DELIM names another
// delimiter. Malformed expressions are logged and skipped.
package filters

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package keypath parses dot-separated key expressions such as
// "database.host" into the segment sequences used to address nested tables.
package keypath

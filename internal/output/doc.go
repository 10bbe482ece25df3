// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders values and key listings as text, JSON, YAML or a
// lipgloss table.
package output

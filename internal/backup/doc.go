// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package backup keeps a copy of each document as it was before the last
// write, so a bad edit can be undone with the restore command. Backups live
// in the user cache directory and are keyed by a hash of the document
// location.
package backup

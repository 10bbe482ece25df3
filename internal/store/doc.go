// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package store reads and writes document bytes. A location is either a
// filesystem path or an s3://bucket/key URL.
package store

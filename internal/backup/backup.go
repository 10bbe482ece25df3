// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/tomlctl/internal/log"
)

const (
	// DirEnvVar overrides the backup directory.
	DirEnvVar = "TOMLCTL_BACKUP_DIR"
	// EnabledEnvVar disables backups when set to "0" or "false".
	EnabledEnvVar = "TOMLCTL_BACKUP"
	// DefaultHours is how long backups are kept when not configured.
	DefaultHours = 168
)

// Entry is a stored backup.
type Entry struct {
	Location string
	Path     string
	Data     []byte
	ModTime  time.Time
}

// Age renders how long ago the backup was taken, e.g. "3 minutes ago".
func (e *Entry) Age() string {
	return humanize.Time(e.ModTime)
}

// Dir resolves the backup directory.
// Precedence:
//  1. TOMLCTL_BACKUP_DIR, if set and non-empty
//  2. os.UserCacheDir()/tomlctl/backups
//
// Returns ("", false) if a directory cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv(DirEnvVar); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "tomlctl", "backups"), true
	}
	return "", false
}

// Enabled returns true unless TOMLCTL_BACKUP explicitly disables it.
func Enabled() bool {
	enabled, _ := os.LookupEnv(EnabledEnvVar)
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Path returns where the backup of location lives and whether it exists.
func Path(location string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(base, encodeKey(location))
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Write stores data as the backup of location, replacing any previous one.
func Write(location string, data []byte) error {
	if !Enabled() {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}
	if err := os.MkdirAll(base, 0o700); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	p := filepath.Join(base, encodeKey(location))
	if err := os.WriteFile(p, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write backup: %w", err)
	}
	log.Debugf("backup write: location=%s size=%s", location, humanize.Bytes(uint64(len(data))))
	return nil
}

// Read returns the backup of location, if there is one.
func Read(location string) (*Entry, bool) {
	p, ok := Path(location)
	if !ok {
		return nil, false
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("backup hit: location=%s", location)
	return &Entry{Location: location, Path: p, Data: b, ModTime: info.ModTime()}, true
}

// Purge removes backups older than the provided number of hours.
// If hours <= 0 or the directory cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debugf("backup purge disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil {
			return nil
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed backup %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove backup %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge backups: %w", err)
	}
	return nil
}

func encodeKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

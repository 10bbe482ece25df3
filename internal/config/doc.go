// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for tomlctl's user
// configuration. The configuration is an optional YAML document, located by
// TOMLCTL_CFG_FILE or in the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/tomlctl.yaml or $HOME/.config/tomlctl.yaml
//   - macOS: $HOME/Library/Application Support/tomlctl.yaml
//   - Windows: %APPDATA%/tomlctl.yaml
//
// Keys are looked up by dotted path. When a Namespace is set (the name of the
// running command) the namespaced key is preferred, so "get.output" overrides
// "output" for the get command only.
package config

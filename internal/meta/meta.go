// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/tomlctl/internal/config"
)

// Meta contains runtime metadata shared by commands: the CLI arguments, the
// loaded user configuration, the root context and the working directory at
// start-up.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}

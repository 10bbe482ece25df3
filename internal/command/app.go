// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tomlctl/internal/config"
	"github.com/tfctl/tomlctl/internal/meta"
)

// InitApp builds the tomlctl command tree for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the tomlctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	config.Config.Namespace = ns

	// A missing user config is normal; flags then fall back to env and
	// defaults only.
	cfgFile, _ := config.File()

	meta := meta.Meta{
		Args:        args,
		Config:      config.Config,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "tomlctl",
		Usage: "read and edit TOML documents by key path",
		Flags: append(NewGlobalFlags(ns, cfgFile),
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "tomlctl version info",
				HideDefault: true,
			},
		),
		// Exit codes are mapped by the caller through ExitCode.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	app.Commands = append(app.Commands,
		getCommandBuilder(meta),
		setCommandBuilder(meta),
		removeCommandBuilder(meta),
		keysCommandBuilder(meta),
		restoreCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	sortFlags(app.Flags)
	for _, cmd := range app.Commands {
		sortFlags(cmd.Flags)
	}

	return app, nil
}

func sortFlags(flags []cli.Flag) {
	sort.Slice(flags, func(i, j int) bool {
		return flags[i].Names()[0] < flags[j].Names()[0]
	})
}

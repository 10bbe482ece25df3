// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tomlctl/internal/output"
)

// DefaultFile is the document edited when --file is not given.
const DefaultFile = "config.toml"

// NewEditFlags returns the preview flags of commands that write the
// document.
func NewEditFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "diff",
			Usage: "show the edit before writing it",
			Value: false,
		},
		NewDryRunFlag(),
	}
}

// NewDryRunFlag constructs the --dry-run flag.
func NewDryRunFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "dry-run",
		Aliases: []string{"n"},
		Usage:   "show the edit without writing it",
		Value:   false,
	}
}

// NewGlobalFlags returns the root flags. They are visible to every
// subcommand. When cfgFile is set, values are also sourced from the user
// config, namespaced by ns first.
func NewGlobalFlags(ns string, cfgFile string) (flags []cli.Flag) {
	file := &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "TOML document to operate on, a path or s3://bucket/key",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TOMLCTL_FILE"),
		),
		Value: DefaultFile,
	}

	plain := &cli.BoolFlag{
		Name:  "plain",
		Usage: "normalize the document instead of preserving its layout",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TOMLCTL_PLAIN"),
		),
		Value: false,
	}

	profile := &cli.StringFlag{
		Name:  "profile",
		Usage: "AWS shared config profile for s3:// documents",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TOMLCTL_PROFILE"),
		),
	}

	region := &cli.StringFlag{
		Name:  "region",
		Usage: "AWS region for s3:// documents",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TOMLCTL_REGION"),
		),
	}

	if cfgFile != "" {
		NameSpacedValueChainFromConfigFile(ns, cfgFile, file.Name, &file.Sources)
		NameSpacedValueChainFromConfigFile(ns, cfgFile, plain.Name, &plain.Sources)
		NameSpacedValueChainFromConfigFile(ns, cfgFile, profile.Name, &profile.Sources)
		NameSpacedValueChainFromConfigFile(ns, cfgFile, region.Name, &region.Sources)
	}

	return []cli.Flag{file, plain, profile, region}
}

// NewOutputFlag constructs the --output flag shared by get and keys.
func NewOutputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   output.FormatText,
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
}

// NameSpacedValueChainFromConfigFile adds namespaced and global config file
// sources for name to chain.
func NameSpacedValueChainFromConfigFile(ns string, path string, name string, chain *cli.ValueSourceChain) {
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
}

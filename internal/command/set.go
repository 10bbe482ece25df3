// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tomlctl/internal/infer"
	"github.com/tfctl/tomlctl/internal/meta"
)

// setCommandAction infers the type of the raw value, writes it at the key
// path and saves the document. A missing document starts out empty.
func setCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	path, args, err := parseKeyArgs(cmd, 2)
	if err != nil {
		return err
	}
	raw := args[1]

	s, err := load(ctx, cmd, true, true)
	if err != nil {
		return err
	}

	v := infer.Value(raw)
	log.Debugf("inferred %s for %q", v.Kind(), raw)
	if err := s.doc.Set(path, v); err != nil {
		return failure(err)
	}

	written, err := s.commit(ctx, cmd)
	if err != nil || !written {
		return err
	}

	fmt.Fprintf(stdout(cmd), "Set '%s' = '%s'\n", path, raw)
	return nil
}

// setCommandBuilder constructs the cli.Command for "set".
func setCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "write a value at a key path, creating tables as needed",
		UsageText: "tomlctl set <key> <value> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewEditFlags(),
		Action: setCommandAction,
	}
}

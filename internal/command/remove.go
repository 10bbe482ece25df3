// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tomlctl/internal/meta"
	"github.com/tfctl/tomlctl/internal/value"
)

// removeCommandAction deletes the value at a key path. An absent leaf is
// "not found"; a missing or non-table intermediate is a failure.
func removeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	path, _, err := parseKeyArgs(cmd, 1)
	if err != nil {
		return err
	}

	s, err := load(ctx, cmd, true, false)
	if err != nil {
		return err
	}

	old, ok, err := s.doc.Remove(path)
	if err != nil {
		return failure(err)
	}
	if !ok {
		return notFound(path.String())
	}

	written, err := s.commit(ctx, cmd)
	if err != nil || !written {
		return err
	}

	fmt.Fprintf(stdout(cmd), "Removed '%s' (was: %s)\n", path, value.Raw(old))
	return nil
}

// removeCommandBuilder constructs the cli.Command for "remove".
func removeCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "delete the value at a key path",
		UsageText: "tomlctl remove <key> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewEditFlags(),
		Action: removeCommandAction,
	}
}

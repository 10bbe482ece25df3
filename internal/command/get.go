// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tomlctl/internal/document"
	"github.com/tfctl/tomlctl/internal/keypath"
	"github.com/tfctl/tomlctl/internal/meta"
	"github.com/tfctl/tomlctl/internal/output"
	"github.com/tfctl/tomlctl/internal/value"
)

// getCommandAction prints the value at a key path. Text output is the TOML
// literal, or the bare contents of a string with --raw.
func getCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	path, _, err := parseKeyArgs(cmd, 1)
	if err != nil {
		return err
	}

	s, err := load(ctx, cmd, false, false)
	if err != nil {
		return err
	}

	v, ok := s.doc.Get(path)
	if !ok {
		return notFound(path.String())
	}

	w := stdout(cmd)
	format := cmd.String("output")

	if q := cmd.String("query"); q != "" {
		res, ok, err := output.Query(output.Data(v), q)
		if err != nil {
			return failure(err)
		}
		if !ok {
			return cli.Exit(fmt.Sprintf("Query '%s' matched nothing in '%s'", q, path), ExitNotFound)
		}
		return output.Emit(w, format, res, output.InterfaceToString(res))
	}

	return output.Emit(w, format, output.Data(v), literal(s.doc, path, v, cmd.Bool("raw")))
}

func literal(doc document.Document, path keypath.Path, v value.Value, raw bool) string {
	if raw {
		return value.Raw(v)
	}
	if p, ok := doc.(*document.Preserving); ok {
		if lit, ok := p.Literal(path); ok {
			return lit
		}
	}
	return value.Token(v)
}

// getCommandBuilder constructs the cli.Command for "get".
func getCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "print the value at a key path",
		UsageText: "tomlctl get <key> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewOutputFlag(),
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "gjson query applied to the JSON form of the value",
			},
			&cli.BoolFlag{
				Name:    "raw",
				Aliases: []string{"r"},
				Usage:   "print strings without quotes",
				Value:   false,
			},
		},
		Action: getCommandAction,
	}
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tomlctl/internal/document"
	"github.com/tfctl/tomlctl/internal/filters"
	"github.com/tfctl/tomlctl/internal/keypath"
	"github.com/tfctl/tomlctl/internal/meta"
	"github.com/tfctl/tomlctl/internal/output"
)

var keysColumns = []string{"key", "kind", "value"}

// keysCommandAction lists the top-level keys in document order, optionally
// filtered, or with --long as a table of key, kind and value.
func keysCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if cmd.Args().Len() != 0 {
		return failure(fmt.Errorf("usage: %s", cmd.UsageText))
	}

	s, err := load(ctx, cmd, false, false)
	if err != nil {
		return err
	}

	w := stdout(cmd)
	rows := filters.FilterRows(keyRows(s.doc, s.doc.Keys()), cmd.String("filter"))
	if rows == nil {
		rows = []map[string]any{}
	}
	output.SortDataset(rows, cmd.String("sort"))
	format := cmd.String("output")

	if !cmd.Bool("long") {
		keys := make([]string, 0, len(rows))
		for _, r := range rows {
			keys = append(keys, r["key"].(string))
		}
		if format != output.FormatText {
			return output.Emit(w, format, keys, "")
		}
		if len(keys) == 0 {
			fmt.Fprintln(w, "No keys found")
			return nil
		}
		for _, k := range keys {
			fmt.Fprintln(w, k)
		}
		return nil
	}

	if format != output.FormatText {
		return output.Emit(w, format, rows, "")
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "No keys found")
		return nil
	}
	output.TableWriter(rows, keysColumns, output.TableOptions{
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: 2, //nolint:mnd
	}, w)
	return nil
}

// keyRows describes each key by kind and, for anything but a table, its
// literal value.
func keyRows(doc document.Document, keys []string) []map[string]any {
	rows := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		v, ok := doc.Get(keypath.Path{k})
		if !ok {
			continue
		}
		row := map[string]any{"key": k, "kind": v.Kind().String()}
		if !v.IsTable() {
			row["value"] = literal(doc, keypath.Path{k}, v, false)
		}
		rows = append(rows, row)
	}
	return rows
}

// keysCommandBuilder constructs the cli.Command for "keys".
func keysCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "keys",
		Usage:     "list the top-level keys",
		UsageText: "tomlctl keys [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored text output",
				Value:   false,
			},
			&cli.BoolFlag{
				Name:    "long",
				Aliases: []string{"l"},
				Usage:   "show the kind and value of each key",
				Value:   false,
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"F"},
				Usage:   "comma-separated filters on the key, kind and value columns",
			},
			NewOutputFlag(),
			&cli.StringFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "comma-separated list of columns to sort by",
			},
			&cli.BoolFlag{
				Name:    "titles",
				Aliases: []string{"t"},
				Usage:   "show titles with --long text output",
				Value:   false,
			},
		},
		Action: keysCommandAction,
	}
}

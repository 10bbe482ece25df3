// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tomlctl/internal/backup"
	"github.com/tfctl/tomlctl/internal/document"
	"github.com/tfctl/tomlctl/internal/meta"
	"github.com/tfctl/tomlctl/internal/store"
)

// restoreCommandAction puts back the content the document had before its
// last write. The current content becomes the new backup, so a second
// restore undoes the first.
func restoreCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	st, err := openStore(ctx, cmd, true)
	if err != nil {
		return err
	}

	entry, ok := backup.Read(st.String())
	if !ok {
		return failure(fmt.Errorf("no backup found for %s", st))
	}
	mode := documentMode(cmd)
	if _, err := document.Parse(entry.Data, mode); err != nil {
		return failure(fmt.Errorf("backup of %s is not valid: %w", st, err))
	}

	current, err := st.Load(ctx)
	if err != nil && !errors.Is(err, store.ErrNotExist) {
		return failure(err)
	}

	w := stdout(cmd)
	if cmd.Bool("dry-run") {
		if err := preview(w, mode, current, entry.Data); err != nil {
			return failure(err)
		}
		return nil
	}

	if err := st.Save(ctx, entry.Data); err != nil {
		return failure(fmt.Errorf("failed to save TOML file %s: %w", st, err))
	}
	fmt.Fprintf(w, "Restored '%s' from backup taken %s\n", st, entry.Age())
	return nil
}

// restoreCommandBuilder constructs the cli.Command for "restore".
func restoreCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "restore the document from the backup taken before its last write",
		UsageText: "tomlctl restore [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewDryRunFlag(),
		},
		Action: restoreCommandAction,
	}
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	awsx "github.com/tfctl/tomlctl/internal/aws"
	"github.com/tfctl/tomlctl/internal/differ"
	"github.com/tfctl/tomlctl/internal/document"
	"github.com/tfctl/tomlctl/internal/keypath"
	"github.com/tfctl/tomlctl/internal/meta"
	"github.com/tfctl/tomlctl/internal/output"
	"github.com/tfctl/tomlctl/internal/store"
	"github.com/tfctl/tomlctl/internal/value"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitNotFound = 1
	ExitError    = 2
)

// ExitCode maps an error returned by the app to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitError
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// session is one loaded document and the store it came from.
type session struct {
	store  store.Store
	doc    document.Document
	mode   document.Mode
	src    []byte
	exists bool
}

func notFound(key string) error {
	return cli.Exit(fmt.Sprintf("Key '%s' not found", key), ExitNotFound)
}

func failure(err error) error {
	return cli.Exit(err.Error(), ExitError)
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// parseKeyArgs checks the positional argument count and parses the key. It
// returns the positional arguments alongside the parsed key.
func parseKeyArgs(cmd *cli.Command, n int) (keypath.Path, []string, error) {
	args, err := positionals(cmd, n)
	if err != nil {
		return nil, nil, failure(err)
	}
	if len(args) != n {
		return nil, nil, failure(fmt.Errorf("usage: %s", cmd.UsageText))
	}
	path, err := keypath.Parse(args[0])
	if err != nil {
		return nil, nil, failure(err)
	}
	return path, args, nil
}

// lateFlag is a flag cli never saw because it followed a blank argument.
type lateFlag struct {
	name  string
	value string
}

// positionals returns the positional arguments of cmd. cli stops parsing at
// the first empty or blank argument, so when fewer than n arrive the
// positionals are recovered from the raw command line and any flags after the
// blank argument are applied here.
func positionals(cmd *cli.Command, n int) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) >= n {
		return args, nil
	}
	raw := GetMeta(cmd).Args
	if len(raw) < 2 { //nolint:mnd
		return args, nil
	}
	recovered, late, ok := rawPositionals(cmd, raw[1:])
	if !ok {
		return args, nil
	}
	for _, f := range late {
		if err := cmd.Set(f.name, f.value); err != nil {
			return nil, fmt.Errorf("invalid value %q for flag --%s: %w", f.value, f.name, err)
		}
	}
	return recovered, nil
}

// rawPositionals scans the arguments after the binary name for the ones that
// follow cmd and are neither flags nor flag values. Flags after the first
// blank positional are returned as late flags.
func rawPositionals(cmd *cli.Command, raw []string) ([]string, []lateFlag, bool) {
	var (
		pos   []string
		late  []lateFlag
		found bool
		blank bool
	)
	for i := 0; i < len(raw); i++ {
		tok := raw[i]
		switch {
		case found && tok == "--":
			return append(pos, raw[i+1:]...), late, true
		case len(tok) > 1 && tok[0] == '-':
			// cli treats "-5" and the like as the start of the positionals.
			if found && tok[1] != '-' && !unicode.IsLetter(rune(tok[1])) {
				return append(pos, raw[i:]...), late, true
			}
			name, value, hasValue := strings.Cut(strings.TrimLeft(tok, "-"), "=")
			switch {
			case hasValue:
			case takesValue(cmd, name):
				if i+1 < len(raw) {
					i++
					value = raw[i]
				}
			default:
				value = "true"
			}
			if blank {
				late = append(late, lateFlag{name: name, value: value})
			}
		case !found:
			if tok != cmd.Name && !slices.Contains(cmd.Aliases, tok) {
				return nil, nil, false
			}
			found = true
		default:
			if strings.TrimSpace(tok) == "" {
				blank = true
			}
			pos = append(pos, tok)
		}
	}
	return pos, late, found
}

// takesValue reports whether the flag called name, defined on cmd or one of
// its ancestors, consumes the following argument.
func takesValue(cmd *cli.Command, name string) bool {
	for _, c := range cmd.Lineage() {
		for _, fl := range c.Flags {
			if !slices.Contains(fl.Names(), name) {
				continue
			}
			bf, ok := fl.(interface{ IsBoolFlag() bool })
			return !ok || !bf.IsBoolFlag()
		}
	}
	return false
}

func documentMode(cmd *cli.Command) document.Mode {
	if cmd.Bool("plain") {
		return document.ModePlain
	}
	return document.ModePreserving
}

// openStore resolves --file. Stores opened for writing keep a backup of the
// previous content.
func openStore(ctx context.Context, cmd *cli.Command, write bool) (store.Store, error) {
	var awsOpts []awsx.Option
	if p := cmd.String("profile"); p != "" {
		awsOpts = append(awsOpts, awsx.WithProfile(p))
	}
	if r := cmd.String("region"); r != "" {
		awsOpts = append(awsOpts, awsx.WithRegion(r))
	}

	opts := []store.Option{store.WithAWS(awsOpts...)}
	if write {
		opts = append(opts, store.WithBackup())
	}

	st, err := store.New(ctx, cmd.String("file"), opts...)
	if err != nil {
		return nil, failure(err)
	}
	return st, nil
}

// load opens and parses the document. With allowMissing, a document that
// does not exist yet starts out empty.
func load(ctx context.Context, cmd *cli.Command, write bool, allowMissing bool) (*session, error) {
	st, err := openStore(ctx, cmd, write)
	if err != nil {
		return nil, err
	}

	s := &session{store: st, mode: documentMode(cmd)}
	src, err := st.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotExist) && allowMissing:
		log.Debugf("%s does not exist, starting empty", st)
		s.doc = document.New(s.mode)
		return s, nil
	case err != nil:
		return nil, failure(fmt.Errorf("failed to load TOML file %s: %w", st, err))
	}

	doc, err := document.Parse(src, s.mode)
	if err != nil {
		return nil, failure(fmt.Errorf("failed to load TOML file %s: %w", st, err))
	}
	s.doc, s.src, s.exists = doc, src, true
	return s, nil
}

// commit previews and writes the edited document. It reports whether the
// document was written.
func (s *session) commit(ctx context.Context, cmd *cli.Command) (bool, error) {
	out, err := s.doc.Bytes()
	if err != nil {
		return false, failure(err)
	}

	if cmd.Bool("diff") || cmd.Bool("dry-run") {
		if err := preview(stdout(cmd), s.mode, s.src, out); err != nil {
			return false, failure(err)
		}
	}
	if cmd.Bool("dry-run") {
		return false, nil
	}

	if err := s.store.Save(ctx, out); err != nil {
		return false, failure(fmt.Errorf("failed to save TOML file %s: %w", s.store, err))
	}
	log.Debugf("saved %s", s.store)
	return true, nil
}

// preview writes the difference between two versions of a document. Plain
// documents are compared as data, preserving ones line by line.
func preview(w io.Writer, mode document.Mode, before, after []byte) error {
	colored := differ.Colored(w)
	if mode == document.ModePreserving {
		if !differ.Text(w, before, after, colored) {
			fmt.Fprintln(w, "No changes.")
		}
		return nil
	}

	left, err := plainData(before)
	if err != nil {
		return err
	}
	right, err := plainData(after)
	if err != nil {
		return err
	}
	changed, err := differ.Semantic(w, left, right, colored)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(w, "No changes.")
	}
	return nil
}

func plainData(src []byte) (map[string]any, error) {
	doc, err := document.ParsePlain(src)
	if err != nil {
		return nil, err
	}
	data, _ := output.Data(value.FromTable(doc.Root())).(map[string]any)
	return data, nil
}

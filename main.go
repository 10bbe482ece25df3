// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tfctl/tomlctl/internal/backup"
	"github.com/tfctl/tomlctl/internal/command"
	"github.com/tfctl/tomlctl/internal/config"
	"github.com/tfctl/tomlctl/internal/log"
	"github.com/tfctl/tomlctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v ahead of the command and returns
// whether it was handled.
func handleVersion(w io.Writer, args []string) bool {
	for _, a := range args[1:] {
		if !strings.HasPrefix(a, "-") {
			return false
		}
		if a == "--version" || a == "-v" {
			fmt.Fprintf(w, "tomlctl %s\n", version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processSetOnly expands an @set argument into the flags configured under
// <command>.<set> in the user config, at the position of the @set.
func processSetOnly(args []string) []string {
	if len(args) < 3 { //nolint:mnd
		return args
	}
	for i := 2; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "@") {
			continue
		}
		entries, err := config.GetStringSlice(args[1] + "." + args[i][1:])
		if err != nil {
			log.Debugf("no flag set %s: %v", args[i], err)
			return args
		}
		return injectConfigSet(args[:i:i], entries, args[i+1:])
	}
	return args
}

// injectConfigSet splits entries into fields and places them between head
// and tail.
func injectConfigSet(head []string, entries []string, tail []string) []string {
	out := append([]string{}, head...)
	for _, e := range entries {
		out = append(out, strings.Fields(e)...)
	}
	return append(out, tail...)
}

// loadConfig loads the user config and purges stale backups. Both are
// optional, so failures are only logged.
func loadConfig() {
	if _, err := config.Load(); err != nil && !errors.Is(err, config.ErrNoConfig) {
		log.Warnf("config not loaded: %v", err)
	}

	hours, err := config.GetInt("backup.hours", backup.DefaultHours)
	if err != nil {
		log.Warnf("invalid backup.hours: %v", err)
		hours = backup.DefaultHours
	}
	if err := backup.Purge(hours); err != nil {
		log.Debugf("backup purge err: err=%v", err)
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return command.ExitError
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return command.ExitCode(err)
	}

	return command.ExitOK
}

func realMain() int {
	log.InitLogger()
	loadConfig()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(os.Stdout, args) {
		return command.ExitOK
	}

	args = handleNakedCommand(args)
	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return initAndRunApp(args)
}

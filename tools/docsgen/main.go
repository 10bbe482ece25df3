// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen writes one markdown page per tomlctl subcommand, taken from
// the live command tree.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tomlctl/internal/command"
)

const pageTemplate = `# tomlctl {{ .Name }}

{{ .Usage }}

## Usage

    {{ .UsageText }}
{{ if .Flags }}
## Flags

| Flag | Description | Default | Env |
|------|-------------|---------|-----|
{{- range .Flags }}
| {{ .Syntax }} | {{ .Description }} | {{ .Default }} | {{ .Env }} |
{{- end }}
{{ end }}
_Generated for tomlctl {{ .Version }} on {{ .Date }}._
`

// Flag is one row of the flags table.
type Flag struct {
	Syntax      string
	Description string
	Default     string
	Env         string
}

// Page is the data behind one command page.
type Page struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []Flag
	Date      string
	Version   string
}

func main() {
	if len(os.Args) != 2 { //nolint:mnd
		fmt.Fprintln(os.Stderr, "usage: docsgen <dir>")
		os.Exit(2)
	}
	if err := generate(os.Args[1], getVersion(), time.Now()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(dir string, version string, now time.Time) error {
	app, err := command.InitApp(context.Background(), []string{"tomlctl"})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return err
	}

	for _, sub := range app.Commands {
		page := newPage(app, sub)
		page.Version = version
		page.Date = now.Format("January 2, 2006")

		path := filepath.Join(dir, sub.Name+".md")
		fmt.Println("Generating", path)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = render(f, page)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// newPage collects the root flags, which every subcommand accepts, and the
// subcommand's own flags.
func newPage(app *cli.Command, sub *cli.Command) Page {
	page := Page{Name: sub.Name, Usage: sub.Usage, UsageText: sub.UsageText}
	for _, f := range append(append([]cli.Flag{}, sub.Flags...), app.Flags...) {
		if f.Names()[0] == "version" {
			continue
		}
		page.Flags = append(page.Flags, newFlag(f))
	}
	return page
}

func newFlag(f cli.Flag) Flag {
	names := make([]string, 0, len(f.Names()))
	for _, n := range f.Names() {
		if len(n) == 1 {
			names = append(names, "-"+n)
		} else {
			names = append(names, "--"+n)
		}
	}
	out := Flag{Syntax: "`" + strings.Join(names, ", ") + "`"}

	if d, ok := f.(cli.DocGenerationFlag); ok {
		out.Description = d.GetUsage()
		if d.TakesValue() {
			out.Default = d.GetValue()
		}
		out.Env = strings.Join(d.GetEnvVars(), ", ")
	}
	return out
}

func render(w io.Writer, page Page) error {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, page)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}

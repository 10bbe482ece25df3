// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const serviceDoc = `# service
name = "demo" # display name
port = 8080
tags = ["a", "b"]

[server]
host = 'x'
`

// setup isolates backups and user config and writes src to a document in a
// temp dir. An empty src leaves the document missing.
func setup(t *testing.T, src string) string {
	t.Helper()
	t.Setenv("TOMLCTL_BACKUP_DIR", t.TempDir())
	t.Setenv("TOMLCTL_BACKUP", "")
	t.Setenv("TOMLCTL_CFG_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if src != "" {
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	full := append([]string{"tomlctl"}, args...)
	app, err := InitApp(context.Background(), full)
	require.NoError(t, err)

	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = io.Discard
	err = app.Run(context.Background(), full)
	return buf.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestGetCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"string token", []string{"name"}, "\"demo\"\n"},
		{"string raw", []string{"--raw", "name"}, "demo\n"},
		{"literal quoting kept", []string{"server.host"}, "'x'\n"},
		{"integer", []string{"port"}, "8080\n"},
		{"array", []string{"tags"}, "[\"a\", \"b\"]\n"},
		{"table", []string{"server"}, "{ host = \"x\" }\n"},
		{"json", []string{"-o", "json", "server"}, "{\n  \"host\": \"x\"\n}\n"},
		{"yaml", []string{"-o", "yaml", "tags"}, "- a\n- b\n"},
		{"query", []string{"-q", "1", "tags"}, "b\n"},
		{"query json", []string{"-o", "json", "-q", "#", "tags"}, "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setup(t, serviceDoc)
			out, err := run(t, append([]string{"get", "--file", path}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGetCommandPlain(t *testing.T) {
	path := setup(t, serviceDoc)
	out, err := run(t, "get", "--file", path, "--plain", "server.host")
	require.NoError(t, err)
	assert.Equal(t, "\"x\"\n", out)
}

func TestGetCommandErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{"missing key", serviceDoc, []string{"nope"}, ExitNotFound, "Key 'nope' not found"},
		{"through scalar", serviceDoc, []string{"port.x"}, ExitNotFound, "Key 'port.x' not found"},
		{"query misses", serviceDoc, []string{"-q", "9", "tags"}, ExitNotFound, "Query '9' matched nothing in 'tags'"},
		{"empty key", serviceDoc, []string{""}, ExitError, "key cannot be empty"},
		{"empty key before flags", serviceDoc, []string{"", "--raw"}, ExitError, "key cannot be empty"},
		{"blank key", serviceDoc, []string{"  "}, ExitNotFound, "Key '  ' not found"},
		{"bad output after empty key", serviceDoc, []string{"", "-o", "xml"}, ExitError, "must be one of"},
		{"no key", serviceDoc, nil, ExitError, "usage: tomlctl get <key> [options]"},
		{"missing file", "", []string{"name"}, ExitError, "failed to load TOML file"},
		{"invalid toml", "a = = 1\n", []string{"a"}, ExitError, "invalid TOML"},
		{"bad output", serviceDoc, []string{"-o", "xml", "name"}, ExitError, "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setup(t, tt.src)
			_, err := run(t, append([]string{"get", "--file", path}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSetCommand(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{
			name: "replace value keeps comment",
			key:  "name",
			val:  "svc",
			want: "# service\nname = \"svc\" # display name\nport = 8080\ntags = [\"a\", \"b\"]\n\n[server]\nhost = 'x'\n",
		},
		{
			name: "new key in section",
			key:  "server.port",
			val:  "9090",
			want: "# service\nname = \"demo\" # display name\nport = 8080\ntags = [\"a\", \"b\"]\n\n[server]\nhost = 'x'\nport = 9090\n",
		},
		{
			name: "new root key",
			key:  "debug",
			val:  "true",
			want: "# service\nname = \"demo\" # display name\nport = 8080\ntags = [\"a\", \"b\"]\ndebug = true\n\n[server]\nhost = 'x'\n",
		},
		{
			name: "empty value",
			key:  "name",
			val:  "",
			want: "# service\nname = \"\" # display name\nport = 8080\ntags = [\"a\", \"b\"]\n\n[server]\nhost = 'x'\n",
		},
		{
			name: "blank value",
			key:  "server.host",
			val:  "   ",
			want: "# service\nname = \"demo\" # display name\nport = 8080\ntags = [\"a\", \"b\"]\n\n[server]\nhost = \"\"\n",
		},
		{
			name: "array value",
			key:  "tags",
			val:  "x, y, 3",
			want: "# service\nname = \"demo\" # display name\nport = 8080\ntags = [\"x\", \"y\", 3]\n\n[server]\nhost = 'x'\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setup(t, serviceDoc)
			out, err := run(t, "set", "--file", path, tt.key, tt.val)
			require.NoError(t, err)
			assert.Equal(t, "Set '"+tt.key+"' = '"+tt.val+"'\n", out)
			assert.Equal(t, tt.want, readFile(t, path))
		})
	}
}

func TestSetCommandEmptyValueThenFlags(t *testing.T) {
	path := setup(t, serviceDoc)
	out, err := run(t, "set", "--file", path, "name", "", "--dry-run")
	require.NoError(t, err)
	assert.NotContains(t, out, "Set 'name'")
	assert.Contains(t, out, "+ name = \"\" # display name")
	assert.Equal(t, serviceDoc, readFile(t, path))

	_, err = run(t, "set", "name", "", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, path), "name = \"\" # display name\n")
}

func TestSetCommandCreatesDocument(t *testing.T) {
	path := setup(t, "")
	_, err := run(t, "set", "--file", path, "database.port", "5432")
	require.NoError(t, err)

	out, err := run(t, "get", "--file", path, "database.port")
	require.NoError(t, err)
	assert.Equal(t, "5432\n", out)
}

func TestSetCommandNotATable(t *testing.T) {
	path := setup(t, serviceDoc)
	_, err := run(t, "set", "--file", path, "port.number.x", "1")
	require.Error(t, err)
	assert.Equal(t, ExitError, ExitCode(err))
	assert.Contains(t, err.Error(), "path contains non-table value")
	assert.Equal(t, serviceDoc, readFile(t, path))
}

func TestSetCommandPlain(t *testing.T) {
	path := setup(t, serviceDoc)
	_, err := run(t, "set", "--file", path, "--plain", "server.port", "9090")
	require.NoError(t, err)

	got := readFile(t, path)
	assert.NotContains(t, got, "# service")
	assert.Contains(t, got, "port = 9090")
}

func TestSetCommandDryRun(t *testing.T) {
	path := setup(t, serviceDoc)
	out, err := run(t, "set", "--file", path, "--dry-run", "port", "9000")
	require.NoError(t, err)
	assert.Contains(t, out, "- port = 8080\n+ port = 9000\n")
	assert.NotContains(t, out, "Set 'port'")
	assert.Equal(t, serviceDoc, readFile(t, path))
}

func TestSetCommandDiff(t *testing.T) {
	path := setup(t, serviceDoc)
	out, err := run(t, "set", "--file", path, "--diff", "port", "9000")
	require.NoError(t, err)
	assert.Contains(t, out, "+ port = 9000\n")
	assert.Contains(t, out, "Set 'port' = '9000'\n")
	assert.Contains(t, readFile(t, path), "port = 9000")
}

func TestSetCommandDiffPlain(t *testing.T) {
	path := setup(t, serviceDoc)
	out, err := run(t, "set", "--file", path, "--plain", "--dry-run", "port", "9000")
	require.NoError(t, err)
	assert.Contains(t, out, "8080")
	assert.Contains(t, out, "9000")
	assert.Equal(t, serviceDoc, readFile(t, path))
}

func TestRemoveCommand(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantOut string
	}{
		{"integer", "port", "Removed 'port' (was: 8080)\n"},
		{"string is raw", "server.host", "Removed 'server.host' (was: x)\n"},
		{"table", "server", "Removed 'server' (was: { host = \"x\" })\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setup(t, serviceDoc)
			out, err := run(t, "remove", "--file", path, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out)

			_, err = run(t, "get", "--file", path, tt.key)
			assert.Equal(t, ExitNotFound, ExitCode(err))
		})
	}
}

func TestRemoveCommandErrors(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		wantCode int
		wantMsg  string
	}{
		{"absent leaf", "server.port", ExitNotFound, "Key 'server.port' not found"},
		{"missing intermediate", "database.port", ExitError, "key not found"},
		{"non-table intermediate", "port.x", ExitError, "path contains non-table value"},
		{"empty key", "", ExitError, "key cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setup(t, serviceDoc)
			_, err := run(t, "remove", "--file", path, tt.key)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, serviceDoc, readFile(t, path))
		})
	}
}

func TestKeysCommand(t *testing.T) {
	tests := []struct {
		name string
		src  string
		args []string
		want string
	}{
		{"document order", serviceDoc, nil, "name\nport\ntags\nserver\n"},
		{"empty", "# nothing here\n", nil, "No keys found\n"},
		{"json", serviceDoc, []string{"-o", "json"}, "[\n  \"name\",\n  \"port\",\n  \"tags\",\n  \"server\"\n]\n"},
		{"empty json", "\n", []string{"-o", "json"}, "[]\n"},
		{"filter by kind", serviceDoc, []string{"--filter", "kind=table"}, "server\n"},
		{"filter numeric", serviceDoc, []string{"-F", "value>100"}, "port\n"},
		{"filter matches nothing", serviceDoc, []string{"-F", "key=nope"}, "No keys found\n"},
		{"sorted", serviceDoc, []string{"--sort=-key"}, "tags\nserver\nport\nname\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setup(t, tt.src)
			out, err := run(t, append([]string{"keys", "--file", path}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestKeysCommandLong(t *testing.T) {
	path := setup(t, serviceDoc)
	out, err := run(t, "keys", "--file", path, "--long", "--titles", "--sort", "kind")
	require.NoError(t, err)
	assert.Contains(t, out, "kind")
	assert.Contains(t, out, "integer")
	assert.Contains(t, out, "8080")
	assert.Contains(t, out, `"demo"`)
	assert.Contains(t, out, "table")
}

func TestKeysCommandLongYAML(t *testing.T) {
	path := setup(t, "a = 1\n[b]\nc = 2\n")
	out, err := run(t, "keys", "--file", path, "--long", "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "- key: a\n  kind: integer\n  value: \"1\"\n- key: b\n  kind: table\n", out)
}

func TestRestoreCommand(t *testing.T) {
	path := setup(t, serviceDoc)

	_, err := run(t, "set", "--file", path, "port", "9000")
	require.NoError(t, err)
	edited := readFile(t, path)

	out, err := run(t, "restore", "--file", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "- port = 9000\n+ port = 8080\n")
	assert.Equal(t, edited, readFile(t, path))

	out, err = run(t, "restore", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Restored '"+path+"' from backup taken")
	assert.Equal(t, serviceDoc, readFile(t, path))

	// A second restore undoes the first.
	_, err = run(t, "restore", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, edited, readFile(t, path))
}

func TestRestoreCommandNoBackup(t *testing.T) {
	path := setup(t, serviceDoc)
	_, err := run(t, "restore", "--file", path)
	require.Error(t, err)
	assert.Equal(t, ExitError, ExitCode(err))
	assert.Contains(t, err.Error(), "no backup found")
}

func TestCompletionCommand(t *testing.T) {
	setup(t, "")
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _tomlctl tomlctl")

	out, err = run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef tomlctl")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitNotFound, ExitCode(cli.Exit("missing", ExitNotFound)))
	assert.Equal(t, ExitNotFound, ExitCode(notFound("a.b")))
	assert.Equal(t, "Key 'a.b' not found", notFound("a.b").Error())
}

func TestOutputValidator(t *testing.T) {
	assert.NoError(t, OutputValidator("json"))
	assert.NoError(t, FlagValidators("yaml", OutputValidator))
	assert.Error(t, OutputValidator("raw"))
}

func TestInitAppSortsFlags(t *testing.T) {
	setup(t, "")
	app, err := InitApp(context.Background(), []string{"tomlctl", "keys"})
	require.NoError(t, err)

	names := func(flags []cli.Flag) []string {
		var out []string
		for _, f := range flags {
			out = append(out, f.Names()[0])
		}
		return out
	}
	assert.IsNonDecreasing(t, names(app.Flags))
	for _, c := range app.Commands {
		assert.IsNonDecreasing(t, names(c.Flags), c.Name)
	}
}

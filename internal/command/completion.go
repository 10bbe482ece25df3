// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tomlctl/internal/meta"
)

const bashCompletionScript = `# bash completion for tomlctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_tomlctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "get set remove keys restore completion --file -f --plain --profile --region --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--file -f --plain --profile --region"

    case "$cmd" in
        get)
            local opts="$common --output -o --query -q --raw -r"
            ;;
        set|remove|rm)
            local opts="$common --diff --dry-run -n"
            ;;
        keys)
            local opts="$common --color -c --filter -F --long -l --output -o --sort -s --titles -t"
            ;;
        restore)
            local opts="$common --dry-run -n"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --file|-f)
            COMPREPLY=( $(compgen -f -X '!*.toml' -- "$cur") $(compgen -d -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    fi
    return 0
}

complete -F _tomlctl tomlctl
`

const zshCompletionScript = `#compdef tomlctl

_tomlctl() {
  local -a cmds
  cmds=(
    'get:print the value at a key path'
    'set:write a value at a key path'
    'remove:delete the value at a key path'
    'keys:list the top-level keys'
    'restore:restore the document from its backup'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-f --file)'{-f,--file}'[TOML document]:file:_files -g "*.toml"'
  '--plain[normalize the document instead of preserving its layout]'
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'tomlctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    get)
      _arguments -C \
        $common \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
        '(-q --query)'{-q,--query}'[gjson query]:query' \
        '(-r --raw)'{-r,--raw}'[print strings without quotes]' \
        '1:key'
      ;;
    set)
      _arguments -C \
        $common \
        '--diff[show the edit before writing it]' \
        '(-n --dry-run)'{-n,--dry-run}'[show the edit without writing it]' \
        '1:key' \
        '2:value'
      ;;
    remove|rm)
      _arguments -C \
        $common \
        '--diff[show the edit before writing it]' \
        '(-n --dry-run)'{-n,--dry-run}'[show the edit without writing it]' \
        '1:key'
      ;;
    keys)
      _arguments -C \
        $common \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-F --filter)'{-F,--filter}'[filters on key, kind and value]:filters' \
        '(-l --long)'{-l,--long}'[show kind and value]' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
        '(-s --sort)'{-s,--sort}'[sort columns]:columns:(key kind value)' \
        '(-t --titles)'{-t,--titles}'[show titles]'
      ;;
    restore)
      _arguments -C \
        $common \
        '(-n --dry-run)'{-n,--dry-run}'[show the edit without writing it]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _tomlctl tomlctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := stdout(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			return failure(fmt.Errorf("usage: tomlctl completion [bash|zsh]"))
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tomlctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
	"golang.org/x/term"
)

// ContextLines is the number of unchanged lines shown around each change in
// a text diff.
const ContextLines = 2

// Colored reports whether w is a terminal that should receive ANSI colors.
func Colored(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Semantic writes a structural diff of two data trees, as produced by
// output.Data, and reports whether they differ.
func Semantic(w io.Writer, before, after map[string]any, colored bool) (bool, error) {
	log.Debugf(">> differ.Semantic()")

	left, err := json.Marshal(before)
	if err != nil {
		return false, fmt.Errorf("failed to encode document: %w", err)
	}
	right, err := json.Marshal(after)
	if err != nil {
		return false, fmt.Errorf("failed to encode document: %w", err)
	}

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return false, fmt.Errorf("failed to compare documents: %w", err)
	}
	if !delta.Modified() {
		return false, nil
	}

	// The formatter needs the left side in its JSON-decoded shape.
	var jdoc map[string]any
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return false, fmt.Errorf("failed to decode document: %w", err)
	}

	f := formatter.NewAsciiFormatter(jdoc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       colored,
	})
	s, err := f.Format(delta)
	if err != nil {
		return false, fmt.Errorf("failed to format diff: %w", err)
	}
	fmt.Fprint(w, s)
	return true, nil
}

type line struct {
	op   diffmatchpatch.Operation
	text string
}

// Text writes a line diff of two document texts and reports whether they
// differ. Unchanged runs longer than the context are collapsed to "...".
func Text(w io.Writer, before, after []byte, colored bool) bool {
	log.Debugf(">> differ.Text()")

	dmp := diffmatchpatch.New()
	a, b, index := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var lines []line
	changed := false
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			changed = true
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			lines = append(lines, line{op: d.Type, text: strings.TrimRight(l, "\r\n")})
		}
	}
	if !changed {
		return false
	}

	del, ins := plain, plain
	if colored {
		del = color.New(color.FgRed).SprintFunc()
		ins = color.New(color.FgGreen).SprintFunc()
	}

	show := visible(lines, ContextLines)
	skipped := false
	for i, l := range lines {
		if !show[i] {
			skipped = true
			continue
		}
		if skipped {
			fmt.Fprintln(w, "...")
			skipped = false
		}
		switch l.op {
		case diffmatchpatch.DiffDelete:
			fmt.Fprintln(w, del("- "+l.text))
		case diffmatchpatch.DiffInsert:
			fmt.Fprintln(w, ins("+ "+l.text))
		default:
			fmt.Fprintln(w, "  "+l.text)
		}
	}
	if skipped {
		fmt.Fprintln(w, "...")
	}
	return true
}

// visible marks changed lines and the n unchanged lines either side of them.
func visible(lines []line, n int) []bool {
	show := make([]bool, len(lines))
	for i, l := range lines {
		if l.op == diffmatchpatch.DiffEqual {
			continue
		}
		for j := max(0, i-n); j <= min(len(lines)-1, i+n); j++ {
			show[j] = true
		}
	}
	return show
}

func plain(a ...any) string {
	return fmt.Sprint(a...)
}

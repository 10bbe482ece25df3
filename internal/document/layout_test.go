// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tomlctl/internal/keypath"
)

func TestScanExpressions(t *testing.T) {
	src := "# head\n\na = 1 # one\n[t . \"q k\"]\nb = '''x\n'''\n[[arr]]\nc = { d = [1, 2] }\n"
	lay, err := scan([]byte(src))
	require.NoError(t, err)

	kinds := make([]exprKind, len(lay.exprs))
	for i, e := range lay.exprs {
		kinds[i] = e.kind
	}
	assert.Equal(t, []exprKind{exprComment, exprBlank, exprKeyValue, exprTable, exprKeyValue, exprArrayTable, exprKeyValue}, kinds)

	val := func(i int) string {
		e := lay.exprs[i]
		return src[e.val.start:e.val.end]
	}
	assert.Equal(t, "1", val(2))
	assert.Equal(t, "'''x\n'''", val(4))
	assert.Equal(t, "{ d = [1, 2] }", val(6))

	assert.Equal(t, keypath.Path{"t", "q k"}, lay.exprs[3].key)
	assert.Equal(t, keypath.Path{"t", "q k", "b"}, lay.fullPath(4))
	assert.True(t, lay.sections[2].inArray)
	assert.Equal(t, "\n", lay.eol)
}

func TestScanLineSpans(t *testing.T) {
	src := "a = [\n  1,\n]\r\nb = 2"
	lay, err := scan([]byte(src))
	require.NoError(t, err)
	require.Len(t, lay.exprs, 2)

	assert.Equal(t, span{0, 14}, lay.exprs[0].line)
	assert.Equal(t, span{14, 19}, lay.exprs[1].line)
	assert.Equal(t, "\r\n", lay.eol)
}

func TestScanMultilineQuotes(t *testing.T) {
	src := "s = \"\"\"a \\\"\"\" b\"\"\"\"\"\nn = 1\n"
	lay, err := scan([]byte(src))
	require.NoError(t, err)
	require.Len(t, lay.exprs, 2)

	e := lay.exprs[0]
	assert.Equal(t, "\"\"\"a \\\"\"\" b\"\"\"\"\"", src[e.val.start:e.val.end])
}

func TestClassify(t *testing.T) {
	src := "x.y = 1\np = { q = 1 }\n\n[a.b]\nc = 1\n\n[h]\nk = 1\n\n[[arr]]\nn = 1\n"
	lay, err := scan([]byte(src))
	require.NoError(t, err)

	tests := []struct {
		key  string
		want defKind
	}{
		{"x", defDotted},
		{"x.y", defKeyValue},
		{"p", defKeyValue},
		{"p.q", defInline},
		{"p.q.r", defInline},
		{"a", defImplicit},
		{"a.b", defHeader},
		{"a.b.c", defKeyValue},
		{"h", defHeader},
		{"arr", defArrayTable},
		{"arr.n", defNone},
		{"zz", defNone},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, lay.classify(keypath.MustParse(tt.key)).kind)
		})
	}
	assert.Equal(t, defRoot, lay.classify(nil).kind)
}

func TestLayoutWalk(t *testing.T) {
	lay, err := scan([]byte("[a]\nb.c = 1\nv = 2\n"))
	require.NoError(t, err)

	tests := []struct {
		key     string
		want    string
		depth   int
		wantErr error
	}{
		{"a.b.c.d", "a.b.c", 3, ErrNotATable},
		{"a.b.x.y", "a.b", 2, nil},
		{"a.z", "a", 1, nil},
		{"q.r", "", 0, nil},
		{"a.v.w", "a.v", 2, ErrNotATable},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			node, depth, err := walk(layoutTree{lay}, keypath.Path(nil), keypath.MustParse(tt.key))
			assert.Equal(t, tt.want, node.String())
			assert.Equal(t, tt.depth, depth)
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

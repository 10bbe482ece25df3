// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package keypath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    Path
		wantErr error
	}{
		{
			name:    "empty key",
			key:     "",
			wantErr: ErrEmptyPath,
		},
		{
			name: "single segment",
			key:  "name",
			want: Path{"name"},
		},
		{
			name: "nested",
			key:  "database.host",
			want: Path{"database", "host"},
		},
		{
			name: "consecutive dots keep empty segment",
			key:  "a..b",
			want: Path{"a", "", "b"},
		},
		{
			name: "leading dot",
			key:  ".a",
			want: Path{"", "a"},
		},
		{
			name: "trailing dot",
			key:  "a.",
			want: Path{"a", ""},
		},
		{
			name: "lone dot",
			key:  ".",
			want: Path{"", ""},
		},
		{
			name: "no quoting is recognized",
			key:  `"a.b".c`,
			want: Path{`"a`, `b"`, "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.key)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathHelpers(t *testing.T) {
	p := MustParse("a.b.c")

	assert.Equal(t, "a.b.c", p.String())
	assert.Equal(t, Path{"a", "b"}, p.Parent())
	assert.Equal(t, "c", p.Leaf())
	assert.True(t, p.HasPrefix(Path{"a", "b"}))
	assert.True(t, p.HasPrefix(nil))
	assert.False(t, p.HasPrefix(Path{"a", "c"}))
	assert.False(t, Path{"a"}.HasPrefix(p))
	assert.True(t, p.Equal(Path{"a", "b", "c"}))
	assert.False(t, p.Equal(Path{"a", "b"}))

	single := MustParse("x")
	assert.Empty(t, single.Parent())
	assert.Equal(t, "x", single.Leaf())
}

func TestJoinDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = "a"

	first := base.Join("b")
	second := base.Join("c")

	assert.Equal(t, Path{"a", "b"}, first)
	assert.Equal(t, Path{"a", "c"}, second)
	assert.Equal(t, Path{"a"}, base)
}

func TestMustParsePanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { MustParse("") })
}

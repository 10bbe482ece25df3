// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name        string
		before      string
		after       string
		wantChanged bool
		want        string
	}{
		{
			name:        "identical",
			before:      "a = 1\n",
			after:       "a = 1\n",
			wantChanged: false,
			want:        "",
		},
		{
			name:        "replaced line",
			before:      "a = 1\nb = 2\n",
			after:       "a = 1\nb = 3\n",
			wantChanged: true,
			want:        "  a = 1\n- b = 2\n+ b = 3\n",
		},
		{
			name:        "inserted line",
			before:      "[server]\nhost = \"x\"\n",
			after:       "[server]\nhost = \"x\"\nport = 80\n",
			wantChanged: true,
			want:        "  [server]\n  host = \"x\"\n+ port = 80\n",
		},
		{
			name:        "leading context collapsed",
			before:      "1\n2\n3\n4\n5\n6\n7\n8\n",
			after:       "1\n2\n3\n4\n5\n6\n7\nx\n",
			wantChanged: true,
			want:        "...\n  6\n  7\n- 8\n+ x\n",
		},
		{
			name:        "trailing context collapsed",
			before:      "1\n2\n3\n4\n5\n6\n7\n8\n",
			after:       "1\nx\n3\n4\n5\n6\n7\n8\n",
			wantChanged: true,
			want:        "  1\n- 2\n+ x\n  3\n  4\n...\n",
		},
		{
			name:        "crlf line endings",
			before:      "a = 1\r\n",
			after:       "a = 2\r\n",
			wantChanged: true,
			want:        "- a = 1\n+ a = 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			changed := Text(&buf, []byte(tt.before), []byte(tt.after), false)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSemantic(t *testing.T) {
	before := map[string]any{
		"title":  "demo",
		"server": map[string]any{"port": int64(8080)},
	}

	t.Run("identical", func(t *testing.T) {
		var buf bytes.Buffer
		changed, err := Semantic(&buf, before, before, false)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, buf.String())
	})

	t.Run("modified", func(t *testing.T) {
		after := map[string]any{
			"title":  "demo",
			"server": map[string]any{"port": int64(9090)},
		}
		var buf bytes.Buffer
		changed, err := Semantic(&buf, before, after, false)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Contains(t, buf.String(), "8080")
		assert.Contains(t, buf.String(), "9090")
	})

	t.Run("added key", func(t *testing.T) {
		after := map[string]any{
			"title":  "demo",
			"debug":  true,
			"server": map[string]any{"port": int64(8080)},
		}
		var buf bytes.Buffer
		changed, err := Semantic(&buf, before, after, false)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Contains(t, buf.String(), "debug")
	})
}

func TestColored(t *testing.T) {
	assert.False(t, Colored(&bytes.Buffer{}))
}

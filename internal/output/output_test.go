// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tomlctl/internal/value"
)

func sampleTable() value.Value {
	inner := value.NewTable()
	inner.Set("host", value.String("localhost"))
	inner.Set("port", value.Int(5432))

	root := value.NewTable()
	root.Set("name", value.String("svc"))
	root.Set("ratio", value.Float(0.5))
	root.Set("tags", value.Array(value.String("a"), value.String("b")))
	root.Set("db", value.FromTable(inner))
	return value.FromTable(root)
}

func TestData(t *testing.T) {
	tests := []struct {
		name string
		in   value.Value
		want any
	}{
		{"string", value.String("x"), "x"},
		{"integer", value.Int(3), int64(3)},
		{"boolean", value.Bool(true), true},
		{"float", value.Float(1.5), 1.5},
		{"nan", value.Float(math.NaN()), "nan"},
		{"inf", value.Float(math.Inf(1)), "inf"},
		{"neg inf", value.Float(math.Inf(-1)), "-inf"},
		{"array", value.Array(value.Int(1), value.Float(math.NaN())), []any{int64(1), "nan"}},
		{
			"table",
			sampleTable(),
			map[string]any{
				"name":  "svc",
				"ratio": 0.5,
				"tags":  []any{"a", "b"},
				"db":    map[string]any{"host": "localhost", "port": int64(5432)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Data(tt.in))
		})
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]any{"a": int64(1), "b": []any{"x"}}))
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    \"x\"\n  ]\n}\n", buf.String())
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, map[string]any{"b": int64(2), "a": "x"}))
	assert.Equal(t, "a: x\nb: 2\n", buf.String())
}

func TestQuery(t *testing.T) {
	data := Data(sampleTable())

	tests := []struct {
		name   string
		query  string
		want   any
		wantOK bool
	}{
		{"scalar", "name", "svc", true},
		{"nested", "db.port", float64(5432), true},
		{"array index", "tags.1", "b", true},
		{"array count", "tags.#", float64(2), true},
		{"missing", "nope", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Query(data, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmit(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{FormatText, "token\n"},
		{FormatJSON, "\"data\"\n"},
		{FormatYAML, "data\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Emit(&buf, tt.format, "data", "token"))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat("json"))
	assert.True(t, ValidFormat("text"))
	assert.False(t, ValidFormat("xml"))
	assert.False(t, ValidFormat(""))
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		empty []string
		want  string
	}{
		{"nil", nil, nil, ""},
		{"nil with empty value", nil, []string{"-"}, "-"},
		{"string", "abc", nil, "abc"},
		{"number", 42, nil, "42"},
		{"bool", true, nil, "true"},
		{"slice", []any{"a", 1}, nil, `["a",1]`},
		{"map", map[string]any{"k": "v"}, nil, `{"k":"v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.in, tt.empty...))
		})
	}
}

func TestSortDataset(t *testing.T) {
	rows := func() []map[string]any {
		return []map[string]any{
			{"key": "beta", "kind": "string", "n": 2},
			{"key": "Alpha", "kind": "table", "n": 10},
			{"key": "Gamma", "kind": "string", "n": 1},
		}
	}
	keys := func(rs []map[string]any) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r["key"].(string)
		}
		return out
	}

	tests := []struct {
		name string
		spec string
		want []string
	}{
		{"no spec keeps order", "", []string{"beta", "Alpha", "Gamma"}},
		{"ascending case-insensitive", "key", []string{"Alpha", "beta", "Gamma"}},
		{"descending", "-key", []string{"Gamma", "beta", "Alpha"}},
		{"case-sensitive", "!key", []string{"Alpha", "Gamma", "beta"}},
		{"numeric", "n", []string{"Gamma", "beta", "Alpha"}},
		{"multiple columns", "kind,-n", []string{"beta", "Gamma", "Alpha"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := rows()
			SortDataset(rs, tt.spec)
			assert.Equal(t, tt.want, keys(rs))
		})
	}
}

func TestTableWriter(t *testing.T) {
	rows := []map[string]any{
		{"key": "title", "kind": "String", "value": `"demo"`},
		{"key": "server", "kind": "Table"},
	}

	t.Run("empty rows write nothing", func(t *testing.T) {
		var buf bytes.Buffer
		TableWriter(nil, []string{"key"}, TableOptions{}, &buf)
		assert.Empty(t, buf.String())
	})

	t.Run("cells and missing values", func(t *testing.T) {
		var buf bytes.Buffer
		TableWriter(rows, []string{"key", "kind", "value"}, TableOptions{Padding: 2}, &buf)
		out := buf.String()
		assert.Contains(t, out, "title")
		assert.Contains(t, out, `"demo"`)
		assert.Contains(t, out, "server")
		assert.Contains(t, out, "-")
		assert.NotContains(t, out, "KIND")
	})

	t.Run("titles", func(t *testing.T) {
		var buf bytes.Buffer
		TableWriter(rows, []string{"key", "kind"}, TableOptions{Titles: true}, &buf)
		assert.Contains(t, buf.String(), "kind")
	})
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

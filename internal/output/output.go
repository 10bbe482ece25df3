// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/tomlctl/internal/value"
)

// Formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the valid --output values.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// ValidFormat reports whether f is one of Formats.
func ValidFormat(f string) bool {
	return slices.Contains(Formats, f)
}

// Data converts v into plain Go data suitable for the JSON and YAML encoders.
// Non-finite floats become their TOML spelling and datetimes their literal
// text, since neither encoder represents them faithfully.
func Data(v value.Value) any {
	switch v.Kind() {
	case value.KindFloat:
		f, _ := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return value.Token(v)
		}
		return f
	case value.KindDatetime:
		return value.Token(v)
	case value.KindArray:
		elems, _ := v.AsArray()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = Data(e)
		}
		return out
	case value.KindTable:
		t, _ := v.AsTable()
		out := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			e, _ := t.Get(k)
			out[k] = Data(e)
		}
		return out
	}
	return v.Interface()
}

// JSON writes data as indented JSON followed by a newline.
func JSON(w io.Writer, data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// YAML writes data as YAML.
func YAML(w io.Writer, data any) error {
	b, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// Query applies a gjson path to the JSON form of data and returns the
// matching data. ok is false when nothing matches.
func Query(data any, path string) (any, bool, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode json: %w", err)
	}
	if !gjson.ValidBytes(b) {
		return nil, false, fmt.Errorf("invalid json for query")
	}
	res := gjson.GetBytes(b, path)
	if !res.Exists() {
		return nil, false, nil
	}
	return res.Value(), true, nil
}

// Emit writes data in format. Text output is text followed by a newline.
func Emit(w io.Writer, format string, data any, text string) error {
	switch format {
	case FormatJSON:
		return JSON(w, data)
	case FormatYAML:
		return YAML(w, data)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// InterfaceToString renders query results and table cells. Strings are
// returned bare, everything else as compact JSON.
func InterfaceToString(v any, emptyValue ...string) string {
	if v == nil {
		if len(emptyValue) > 0 {
			return emptyValue[0]
		}
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

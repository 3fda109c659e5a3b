// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type
type Format string

const (
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
	// FormatTable outputs data in table format
	FormatTable Format = "table"
)

const defaultValueKey = "value"

var timeType = reflect.TypeOf(time.Time{})

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// ParseFormat returns the Format named by s, ignoring case and surrounding
// whitespace.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %s)",
			s, strings.Join(SupportedFormats(), ", "))
	}
	return f, nil
}

// SupportedFormats returns a list of all supported output formats.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

var _ Serializer = (*Writer)(nil)

// Writer handles serialization of results to various formats.
// Close must be called to release file handles when using NewFileWriter.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a new Writer with the specified format and output destination.
// If output is nil, os.Stdout will be used.
// If format is unknown, defaults to JSON format.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		format = FormatJSON
	}
	return &Writer{
		format: format,
		output: output,
	}
}

// NewFileWriter creates a Writer that truncates and writes the file at path.
// An empty path writes to stdout.
func NewFileWriter(format Format, path string) (*Writer, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return NewWriter(format, os.Stdout), nil
	}

	file, err := os.Create(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", trimmed, err)
	}

	w := NewWriter(format, file)
	w.closer = file
	return w, nil
}

// Close releases any resources associated with the Writer.
// It's safe to call Close multiple times or on stdout-based writers.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// Serialize writes v in the configured format.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch w.format {
	case FormatJSON:
		return w.serializeJSON(v)
	case FormatYAML:
		return w.serializeYAML(v)
	case FormatTable:
		return w.serializeTable(v)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) serializeJSON(v any) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return nil
}

func (w *Writer) serializeYAML(v any) error {
	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	return encoder.Close()
}

func (w *Writer) serializeTable(v any) error {
	flat := make(map[string]any)
	flattenValue(flat, reflect.ValueOf(v), "")
	if len(flat) == 0 {
		fmt.Fprintln(w.output, "<empty>")
		return nil
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintln(tw, "-----\t-----")
	for _, key := range keys {
		fmt.Fprintf(tw, "%s\t%v\n", key, flat[key])
	}
	return tw.Flush()
}

func flattenValue(out map[string]any, val reflect.Value, prefix string) {
	if !val.IsValid() {
		return
	}

	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			if prefix != "" {
				out[prefix] = nil
			}
			return
		}
		val = val.Elem()
	}

	// Times and durations are leaves, not structs or integers to expand.
	if val.Type() == timeType {
		out[leafKey(prefix)] = val.Interface().(time.Time).Format(time.RFC3339)
		return
	}
	if d, ok := val.Interface().(time.Duration); ok {
		out[leafKey(prefix)] = d.String()
		return
	}

	//nolint:exhaustive // We handle the common cases explicitly; all others go to default
	switch val.Kind() {
	case reflect.Struct:
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			flattenValue(out, val.Field(i), joinKey(prefix, fieldName(field)))
		}
	case reflect.Map:
		for _, mapKey := range val.MapKeys() {
			key := joinKey(prefix, fmt.Sprintf("%v", mapKey.Interface()))
			flattenValue(out, val.MapIndex(mapKey), key)
		}
	case reflect.Slice, reflect.Array:
		if val.Len() == 0 && prefix != "" {
			out[prefix] = "[]"
			return
		}
		for i := 0; i < val.Len(); i++ {
			key := joinKey(prefix, fmt.Sprintf("[%d]", i))
			flattenValue(out, val.Index(i), key)
		}
	default:
		out[leafKey(prefix)] = val.Interface()
	}
}

// fieldName prefers the json tag name so table keys match JSON/YAML output.
func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
		return name
	}
	return field.Name
}

func leafKey(prefix string) string {
	if prefix == "" {
		return defaultValueKey
	}
	return prefix
}

func joinKey(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "." + suffix
}

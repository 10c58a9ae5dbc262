// Package output renders command results as text, JSON, or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects a rendering for command output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format flag value. An empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, or yaml)", s)
	}
}

// Writer renders values to a stream in one configured format.
type Writer struct {
	format Format
	w      io.Writer
}

// NewWriter creates a writer rendering in the given format.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{format: format, w: w}
}

// Write renders v. In text mode a fmt.Stringer renders itself; anything
// else falls back to the default Go representation.
func (w *Writer) Write(v any) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w.w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		if s, ok := v.(fmt.Stringer); ok {
			_, err := fmt.Fprintln(w.w, s.String())
			return err
		}
		_, err := fmt.Fprintf(w.w, "%+v\n", v)
		return err
	}
}

// WriteLines renders a plain list, one element per line in text mode and as
// an array in the structured formats.
func (w *Writer) WriteLines(lines []string) error {
	if w.format == FormatText {
		for _, line := range lines {
			if _, err := fmt.Fprintln(w.w, line); err != nil {
				return err
			}
		}
		return nil
	}
	return w.Write(lines)
}

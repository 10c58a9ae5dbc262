package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type stringerValue struct {
	Name string `json:"name"`
}

func (v stringerValue) String() string { return "provider: " + v.Name }

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"YAML", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteText_UsesStringer(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatText)

	if err := w.Write(stringerValue{Name: "terraform-provider-aws"}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "provider: terraform-provider-aws\n" {
		t.Errorf("text output = %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatJSON)

	if err := w.Write(stringerValue{Name: "terraform-provider-aws"}); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["name"] != "terraform-provider-aws" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatYAML)

	if err := w.Write(map[string]int{"versions": 3}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "versions: 3") {
		t.Errorf("yaml output = %q", buf.String())
	}
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatText)

	if err := w.WriteLines([]string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a\nb\n" {
		t.Errorf("lines = %q", got)
	}

	buf.Reset()
	w = NewWriter(&buf, FormatJSON)
	if err := w.WriteLines([]string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	var decoded []string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json lines: %v", err)
	}
	if len(decoded) != 2 || decoded[0] != "a" {
		t.Errorf("decoded = %v", decoded)
	}
}

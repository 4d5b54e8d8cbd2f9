package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// writeOutput prints an API payload as indented JSON or as YAML.
func writeOutput(w io.Writer, format string, payload json.RawMessage) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}

	switch format {
	case outputYAML:
		var doc any
		if err := json.Unmarshal(payload, &doc); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		var buf bytes.Buffer
		if err := json.Indent(&buf, payload, "", "  "); err != nil {
			return fmt.Errorf("formatting response: %w", err)
		}
		buf.WriteByte('\n')
		_, err := buf.WriteTo(w)
		return err
	}
}

// writeValue encodes any value through writeOutput.
func writeValue(w io.Writer, format string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeOutput(w, format, payload)
}

package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// JSON renders indented JSON documents
var JSON = &Format{
	Name: "json",
	Rows: func(w io.Writer, rows []Row) error {
		return encodeJSON(w, nonNil(rows))
	},
	Steps: func(w io.Writer, steps []Step) error {
		return encodeJSON(w, nonNil(steps))
	},
}

// YAML renders YAML documents
var YAML = &Format{
	Name: "yaml",
	Rows: func(w io.Writer, rows []Row) error {
		return encodeYAML(w, nonNil(rows))
	},
	Steps: func(w io.Writer, steps []Step) error {
		return encodeYAML(w, nonNil(steps))
	},
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, v any) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// nonNil makes empty results encode as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func init() {
	mustRegister(JSON)
	mustRegister(YAML)
}

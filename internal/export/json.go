// Package export reads and writes the JSON task export file.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// filePermissions applies only when the export file is created; an existing
// file keeps its mode.
const filePermissions = 0o644

// Encode renders records as an indented JSON array. Non-ASCII text and
// HTML-significant characters are written as-is.
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the encoded records to path, truncating any existing file.
// The write goes through symlinks to their target. The directory is not
// created.
func WriteFile(path string, records []Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ReadFile parses an export file written by WriteFile.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

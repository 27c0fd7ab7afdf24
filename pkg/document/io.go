package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// Marshal converts a document to indented JSON bytes.
func Marshal(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes JSON bytes to a document.
func Unmarshal(data []byte) (Document, error) {
	return Read(bytes.NewReader(data))
}

// Write writes a document as indented JSON to an io.Writer.
func Write(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON document from an io.Reader.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// MarshalTOML converts a document to TOML bytes.
func MarshalTOML(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(d); err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalTOML deserializes TOML bytes to a document.
func UnmarshalTOML(data []byte) (Document, error) {
	var d Document
	if err := toml.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode toml: %w", err)
	}
	return d, nil
}

// ReadFile reads a document from a JSON or TOML file, selected by extension
// (.toml reads TOML; everything else reads JSON).
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	if isTOML(path) {
		d, err := UnmarshalTOML(data)
		if err != nil {
			return Document{}, fmt.Errorf("%s: %w", path, err)
		}
		return d, nil
	}
	d, err := Unmarshal(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// WriteFile writes a document to a JSON or TOML file, selected by extension.
// The file is created with 0644 permissions.
func WriteFile(d Document, path string) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = MarshalTOML(d)
	} else {
		data, err = Marshal(d)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Canonical returns compact, key-stable JSON for the document, suitable for
// hashing. Two documents with equal content produce identical canonical
// bytes regardless of the format or field order they were parsed from.
func Canonical(d Document) ([]byte, error) {
	// encoding/json emits struct fields in declaration order and compact
	// output, which is already canonical for this type.
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: %w", err)
	}
	return data, nil
}

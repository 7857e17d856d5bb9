// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog assembles extracted tutorials into the library document
// and reads, filters, and writes it as JSON or YAML.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mec-library/pkg/types"
)

// ErrUnsupportedFormat is returned by Write for formats other than json and yaml.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format selects the on-disk encoding of a library document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// NewDocument wraps tutorials in a library document stamped with now.
func NewDocument(tutorials []types.Tutorial, now time.Time) types.Library {
	if tutorials == nil {
		tutorials = []types.Tutorial{}
	}
	return types.Library{
		Version:     types.LibraryVersion,
		LastUpdated: now.UTC().Format(time.RFC3339),
		Tutorials:   tutorials,
	}
}

// MarshalJSON encodes lib with two-space indentation. Non-ASCII text and
// HTML characters are written as-is.
func MarshalJSON(lib types.Library) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(lib); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes lib to path, creating the parent directory when missing
// and replacing any existing file.
func WriteJSON(path string, lib types.Library) error {
	data, err := MarshalJSON(lib)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// WriteYAML writes lib to path as YAML.
func WriteYAML(path string, lib types.Library) error {
	data, err := yaml.Marshal(&lib)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeFile(path, data)
}

// Write dispatches to WriteJSON or WriteYAML.
func Write(path string, lib types.Library, format Format) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(path, lib)
	case FormatYAML:
		return WriteYAML(path, lib)
	}
	return fmt.Errorf("%w %q: use json or yaml", ErrUnsupportedFormat, format)
}

// ReadJSON loads a library document previously written by WriteJSON.
func ReadJSON(path string) (types.Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Library{}, fmt.Errorf("reading library %s: %w", path, err)
	}
	var lib types.Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return types.Library{}, fmt.Errorf("parsing library %s: %w", path, err)
	}
	return lib, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FilterOptions narrows a library to matching tutorials. Zero values match
// everything.
type FilterOptions struct {
	Year int
	// Status is "winner", "finalist", "regular", or empty.
	Status string
}

// Filter returns a copy of lib holding only tutorials that match opts.
func Filter(lib types.Library, opts FilterOptions) (types.Library, error) {
	var status types.Status
	if opts.Status != "" {
		st, err := types.ParseStatus(opts.Status)
		if err != nil {
			return types.Library{}, err
		}
		status = st
	}

	out := lib
	out.Tutorials = []types.Tutorial{}
	for _, t := range lib.Tutorials {
		if opts.Year != 0 && t.Year != opts.Year {
			continue
		}
		if opts.Status != "" && t.Status != status {
			continue
		}
		out.Tutorials = append(out.Tutorials, t)
	}
	return out, nil
}

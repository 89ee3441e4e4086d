// Package ingest turns raw profiler dumps from every supported format
// into the canonical Visual Profile IR (internal/ir), via ParseAuto's
// format auto-detection and one parser per format.
package ingest

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/doom-fish/flamecat/internal/ir"
)

// LoadBytes reads a profile file, transparently decompressing it when its
// extension marks it gzip-compressed, and returns the raw bytes for
// format detection and parsing.
func LoadBytes(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: failed to open profile: %w", err)
	}
	defer func() { _ = file.Close() }()

	var reader io.Reader = file

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" || ext == ".gzip" {
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("ingest: failed to create gzip reader: %w", err)
		}
		defer func() { _ = gzReader.Close() }()
		reader = gzReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("ingest: failed to read profile: %w", err)
	}
	return data, nil
}

// LoadFile loads path (gzip-transparent) and runs it through ParseAuto.
func LoadFile(path string) (*ir.VisualProfile, error) {
	data, err := LoadBytes(path)
	if err != nil {
		return nil, err
	}
	profile, err := ParseAuto(data)
	if err != nil {
		return nil, fmt.Errorf("ingest: failed to parse %q: %w", path, err)
	}
	return profile, nil
}

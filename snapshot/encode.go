package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the snapshot encoding
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat accepts json, yaml or yml, case-insensitive
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("unknown snapshot format %q", s)
}

// FormatFor picks the format from a file extension, JSON when unrecognized
func FormatFor(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatJSON
}

// EncodeJSON writes s as indented JSON
func EncodeJSON(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot json: %w", err)
	}
	return nil
}

// EncodeYAML writes s as YAML
func EncodeYAML(w io.Writer, s Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode snapshot yaml: %w", err)
	}
	return nil
}

// Encode writes s in the given format
func Encode(w io.Writer, s Snapshot, f Format) error {
	if f == FormatYAML {
		return EncodeYAML(w, s)
	}
	return EncodeJSON(w, s)
}

// Decode reads a snapshot in the given format
func Decode(r io.Reader, f Format) (Snapshot, error) {
	var s Snapshot
	var err error
	if f == FormatYAML {
		err = yaml.NewDecoder(r).Decode(&s)
	} else {
		err = json.NewDecoder(r).Decode(&s)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot %s: %w", f, err)
	}
	return s, nil
}

// WriteFile writes s to path, format chosen by extension
func WriteFile(path string, s Snapshot) error {
	return WriteFileAs(path, s, FormatFor(path))
}

// WriteFileAs writes s to path in format f
// The file is written beside the target and renamed so readers never see a partial snapshot
func WriteFileAs(path string, s Snapshot, f Format) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("snapshot temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, s, f); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("snapshot rename: %w", err)
	}
	return nil
}

package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json or yaml)", s)
}

// Marshal encodes r in the given format.
func Marshal(r Record, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(r)
	case FormatJSON, "":
		return json.MarshalIndent(r, "", "  ")
	}
	return nil, fmt.Errorf("unknown export format %q", f)
}

// Filename is the export file name for a session, candidate_<id>.json.
// Characters unsafe in file names are replaced with underscores.
func Filename(sessionID string, f Format) string {
	ext := "json"
	if f == FormatYAML {
		ext = "yaml"
	}
	safe := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return '_'
	}, sessionID)
	return fmt.Sprintf("candidate_%s.%s", safe, ext)
}

// Export writes r into dir and returns the file path. The file is written
// to a temporary name first and renamed into place.
func Export(dir string, r Record, f Format) (string, error) {
	data, err := Marshal(r, f)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(dir, Filename(r.SessionID, f))
	tmp, err := os.CreateTemp(dir, ".candidate-*")
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename export file: %w", err)
	}
	return path, nil
}

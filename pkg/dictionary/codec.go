package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a serialization format for user dictionaries.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension; JSON by default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown dictionary format %q", s)
	}
}

// LoadFile reads a user dictionary file.
func LoadFile(path string) (UserDict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, FormatFromPath(path))
}

// Decode reads a user dictionary. Both the service's keyed object
// ({"<uuid>": {...}}) and a list of elements ([{"uuid": ..., "word": {...}}])
// are accepted.
func Decode(r io.Reader, f Format) (UserDict, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return UserDict{}, nil
	}

	unmarshal := json.Unmarshal
	if f == YAML {
		unmarshal = yaml.Unmarshal
	}

	// Try the keyed object first
	var d UserDict
	if err := unmarshal(data, &d); err == nil {
		if d == nil {
			d = UserDict{}
		}
		return d, nil
	}

	// Fall back to a list of elements
	var elems []Element
	if err := unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary as object or list: %w", err)
	}
	return FromElements(elems), nil
}

// Encode writes d as the keyed object.
func Encode(w io.Writer, d UserDict, f Format) error {
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
}

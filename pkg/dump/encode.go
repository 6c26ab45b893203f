package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/emblem/pkg/ast"
)

// Format selects an encoding.
type Format string

// Supported formats.
const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown dump format")

// Formats lists the supported format names.
func Formats() []string {
	return []string{string(FormatYAML), string(FormatJSON), string(FormatMsgpack)}
}

// ParseFormat parses a format name, case-insensitively. "yml" and "mp" are
// accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
}

// IsBinary reports whether the format is unsuitable for a terminal.
func (f Format) IsBinary() bool {
	return f == FormatMsgpack
}

// Write dumps doc to w.
func Write(w io.Writer, doc *ast.Document, format Format) error {
	return Encode(w, Tree(doc), format)
}

// Encode writes a dump tree to w.
func Encode(w io.Writer, tree *File, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(tree); err != nil {
			return fmt.Errorf("encode msgpack: %w", err)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	return nil
}

// Decode reads a dump tree written by Encode.
func Decode(r io.Reader, format Format) (*File, error) {
	var tree File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&tree)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&tree)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&tree)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return &tree, nil
}

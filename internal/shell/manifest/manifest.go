// Package manifest loads a declarative deploy manifest (YAML or TOML) and builds
// the deploy.Configuration it describes with the configuration builder methods.
//
// This is part of the Imperative Shell: LoadFile reads from disk and every
// function logs through the given *slog.Logger. Checks the configuration model
// leaves to the deploy engine (non-empty stage names, parsable timeouts) are
// done here, so a broken manifest fails before anything is deployed.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/artpar/deployconf/internal/core/deploy"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Format
// =============================================================================

// Format is a manifest document format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat parses a format name. "yml" is accepted as YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", NewParseError("", fmt.Sprintf("unsupported format %q", name), ErrUnknownFormat)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", NewParseError("", fmt.Sprintf("cannot detect format of %q", path), ErrUnknownFormat)
	}
	return ParseFormat(ext)
}

// =============================================================================
// Loading
// =============================================================================

// LoadFile reads the manifest at path and builds its configuration. An empty
// format is detected from the file extension.
func LoadFile(path string, format Format, logger *slog.Logger) (*deploy.Configuration, error) {
	if format == "" {
		detected, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	logger = orDiscard(logger)
	logger.Debug("manifest loaded", "path", path, "format", format, "bytes", len(data))
	return Decode(data, format, logger)
}

// Decode parses a manifest document and builds its configuration.
func Decode(data []byte, format Format, logger *slog.Logger) (*deploy.Configuration, error) {
	logger = orDiscard(logger)

	m, err := Parse(data, format, logger)
	if err != nil {
		return nil, err
	}
	return Build(m, logger)
}

// Parse decodes a manifest document without building the configuration.
// Unknown keys are an error in YAML documents and a warning in TOML documents.
func Parse(data []byte, format Format, logger *slog.Logger) (*Manifest, error) {
	logger = orDiscard(logger)

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, NewParseError("", "manifest is empty", ErrEmptyInput)
	}

	var m Manifest
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, NewParseError("", err.Error(), ErrInvalidSyntax)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, NewParseError("", err.Error(), ErrInvalidSyntax)
		}
		for _, key := range meta.Undecoded() {
			logger.Warn("unknown manifest key ignored", "key", key.String())
		}
	default:
		return nil, NewParseError("", fmt.Sprintf("unsupported format %q", format), ErrUnknownFormat)
	}
	return &m, nil
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/treechart/pkg/errors"
)

// Format is a dataset file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// Ext returns the canonical file extension, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ParseFormat converts a format name to a Format. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q (must be json, yaml or toml)", s)
}

// FormatFromPath picks the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect dataset format of %s: no file extension", path)
	}
	return ParseFormat(ext)
}

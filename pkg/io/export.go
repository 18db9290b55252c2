package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/errors"
)

// Write encodes d in format f and writes it to w.
func Write(d *diagram.Diagram, w io.Writer, f Format) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(d); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.Indent = ""
		err = enc.Encode(d)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported dataset format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// Export writes d to path, choosing the format from the file extension.
func Export(d *diagram.Diagram, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return Write(d, file, f)
}

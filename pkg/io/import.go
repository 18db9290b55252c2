package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/errors"
)

// Read decodes a dataset in format f from r. It does not validate the result
// beyond rejecting unknown fields and statuses. Read does not close r.
func Read(r io.Reader, f Format) (*diagram.Diagram, error) {
	var (
		d   diagram.Diagram
		err error
	)
	switch f {
	case FormatJSON:
		err = readJSON(r, &d)
	case FormatYAML:
		err = readYAML(r, &d)
	case FormatTOML:
		err = readTOML(r, &d)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported dataset format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode %s dataset", f)
	}
	return &d, nil
}

func readJSON(r io.Reader, d *diagram.Diagram) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(d)
}

func readYAML(r io.Reader, d *diagram.Diagram) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(d); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func readTOML(r io.Reader, d *diagram.Diagram) error {
	md, err := toml.NewDecoder(r).Decode(d)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Import reads and validates the dataset at path. The format is chosen from
// the file extension.
func Import(path string) (*diagram.Diagram, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return ImportAs(path, f)
}

// ImportAs reads and validates the dataset at path in format f.
func ImportAs(path string, f Format) (*diagram.Diagram, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	d, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Package samples provides datasets bundled with the binary.
//
// The bronze dataset is an eco-label certification checklist: a completion
// ratio at the root, six requirement groups, and fifteen requirements each
// marked completed, priority or incomplete. It is used by the sample command
// and as a realistic fixture in tests.
package samples

import (
	"bytes"
	_ "embed"
	"slices"

	"github.com/matzehuels/treechart/pkg/diagram"
	"github.com/matzehuels/treechart/pkg/errors"
	"github.com/matzehuels/treechart/pkg/io"
)

// Bronze is the name of the bronze eco-label sample.
const Bronze = "bronze"

// BronzeTitle is the chart title shown with the bronze sample.
const BronzeTitle = "環保標章取得樹狀圖"

//go:embed bronze.yaml
var bronzeYAML []byte

var raw = map[string][]byte{
	Bronze: bronzeYAML,
}

// Names returns the names of all bundled samples in sorted order.
func Names() []string {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Raw returns the YAML source of the named sample.
func Raw(name string) ([]byte, error) {
	data, ok := raw[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown sample %q (available: %v)", name, Names())
	}
	return data, nil
}

// Load decodes the named sample. Each call returns a fresh Diagram the caller
// may modify.
func Load(name string) (*diagram.Diagram, error) {
	data, err := Raw(name)
	if err != nil {
		return nil, err
	}
	d, err := io.Read(bytes.NewReader(data), io.FormatYAML)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode sample %s", name)
	}
	return d, nil
}

// MustLoad is like Load but panics on error. Bundled samples always decode,
// so MustLoad is safe for known names.
func MustLoad(name string) *diagram.Diagram {
	d, err := Load(name)
	if err != nil {
		panic(err)
	}
	return d
}

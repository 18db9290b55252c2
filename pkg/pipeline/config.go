package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treechart/pkg/errors"
)

// ConfigFileName is the name of the config file inside the config directory.
const ConfigFileName = "config.toml"

// DefaultConfigPath returns $XDG_CONFIG_HOME/treechart/config.toml, or the
// platform equivalent.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "treechart", ConfigFileName), nil
}

// LoadConfig reads a TOML config file on top of DefaultOptions. Keys absent
// from the file keep their defaults; unknown keys are an error.
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Options{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// LoadDefaultConfig loads the config at DefaultConfigPath. A missing file
// yields DefaultOptions.
func LoadDefaultConfig() (Options, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return DefaultOptions(), nil
	}
	opts, err := LoadConfig(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return DefaultOptions(), nil
	}
	return opts, err
}

// ParseConfig decodes TOML config data on top of DefaultOptions.
func ParseConfig(data []byte) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.Decode(string(data), &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return opts, nil
}

// EncodeConfig writes the layout, text and render sections as TOML.
func EncodeConfig(opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(opts); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	elementkiterrors "github.com/alexisbeaulieu97/elementkit/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ErrUnsupportedFormat is returned for manifests that are neither YAML nor
// TOML.
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

// ParseManifest loads a manifest from disk, validates it, and returns it.
// The format follows the file extension: .yaml, .yml or .toml.
func ParseManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, elementkiterrors.NewParseError(path, 0, err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &m)
	case ".toml":
		err = decodeTOML(data, &m)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, elementkiterrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateManifest(&m); err != nil {
		return nil, err
	}

	m.dir = filepath.Dir(path)
	return &m, nil
}

func decodeYAML(data []byte, m *Manifest) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeTOML(data []byte, m *Manifest) error {
	md, err := toml.Decode(string(data), m)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	var tomlErr toml.ParseError
	if errors.As(err, &tomlErr) {
		return tomlErr.Position.Line
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}

package projects

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// dataFile is the on-disk layout shared by the YAML and TOML formats:
//
//	projects:
//	  - id: 1
//	    title: ...
//
// or, in TOML, a [[projects]] array of tables.
type dataFile struct {
	Projects []Entry `yaml:"projects" toml:"projects"`
}

// Load reads a project data file. The format is chosen by extension
// (.yaml, .yml or .toml) and the result is validated before it is returned.
func Load(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("projects: read %s: %w", path, err)
	}
	entries, err := Parse(filepath.Ext(path), raw)
	if err != nil {
		return nil, fmt.Errorf("projects: %s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes raw project data in the format named by ext.
func Parse(ext string, raw []byte) ([]Entry, error) {
	var data dataFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", ext)
	}
	if err := Validate(data.Projects); err != nil {
		return nil, err
	}
	return data.Projects, nil
}

// Resolve returns the entries from path, or the built-in list when path is
// empty.
func Resolve(path string) ([]Entry, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

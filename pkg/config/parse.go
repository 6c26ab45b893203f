package config

import (
	"path/filepath"
	"strings"
)

// Parse decodes a configuration file, choosing TOML or YAML by the file
// name's extension. Anything that is not .toml is read as YAML.
func Parse(name string, data []byte) (*Config, error) {
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		return FromTOML(data)
	}
	return FromYAML(data)
}

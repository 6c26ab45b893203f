package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Unknown keys are errors.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Lints == nil {
		cfg.Lints = make(map[string]LintConfig)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		Ignore:       slices.Clone(c.Ignore),
		Extensions:   slices.Clone(c.Extensions),
		MaxDepth:     c.MaxDepth,
		Output:       c.Output,
		Format:       c.Format,
		Jobs:         c.Jobs,
		EnableLints:  slices.Clone(c.EnableLints),
		DisableLints: slices.Clone(c.DisableLints),
		Color:        c.Color,
		Strict:       c.Strict,
	}

	if c.Lints != nil {
		clone.Lints = make(map[string]LintConfig, len(c.Lints))
		for k, v := range c.Lints {
			clone.Lints[k] = v.clone()
		}
	}

	return clone
}

// clone creates a deep copy of a LintConfig.
func (lc LintConfig) clone() LintConfig {
	clone := LintConfig{}

	if lc.Enabled != nil {
		enabled := *lc.Enabled
		clone.Enabled = &enabled
	}

	if lc.Severity != nil {
		severity := *lc.Severity
		clone.Severity = &severity
	}

	if lc.Options != nil {
		clone.Options = make(map[string]any, len(lc.Options))
		maps.Copy(clone.Options, lc.Options) // Note: nested maps/slices in Options are not deep copied
	}

	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}

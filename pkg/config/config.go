// Package config defines core configuration types for emblem.
// These types are pure data structures; discovery, merging and validation
// live in internal/configloader.
package config

// DefaultExtension is the source file extension searched for by default.
const DefaultExtension = ".em"

// DefaultOutputExt is the extension of rendered output files.
const DefaultOutputExt = ".html"

// DefaultMaxDepth is the default nesting limit passed to the parser.
const DefaultMaxDepth = 128

// LintConfig holds per-lint configuration.
type LintConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty" toml:"severity,omitempty" json:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options,omitempty" json:"options,omitempty"`
}

// OutputConfig controls where rendered documents are written.
type OutputConfig struct {
	// Dir is the output directory. Empty writes next to each source file.
	Dir string `yaml:"dir" toml:"dir" json:"dir"`

	// Ext is the extension given to rendered files.
	Ext string `yaml:"ext" toml:"ext" json:"ext"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary:
		return true
	default:
		return false
	}
}

// ColorMode controls terminal styling.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for em.
type Config struct {
	// Lints contains per-lint configuration keyed by lint ID.
	Lints map[string]LintConfig `yaml:"lints" toml:"lints" json:"lints"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore" toml:"ignore" json:"ignore"`

	// Extensions lists the file extensions treated as sources.
	Extensions []string `yaml:"extensions" toml:"extensions" json:"extensions"`

	// MaxDepth bounds nesting in parsed documents.
	MaxDepth int `yaml:"max_depth" toml:"max_depth" json:"max_depth"`

	// Output configures rendered output.
	Output OutputConfig `yaml:"output" toml:"output" json:"output"`

	// CLI-level options (not persisted to config files).

	// Format specifies the diagnostic output format.
	Format OutputFormat `yaml:"-" toml:"-" json:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-" json:"-"`

	// EnableLints contains lint IDs to explicitly enable.
	EnableLints []string `yaml:"-" toml:"-" json:"-"`

	// DisableLints contains lint IDs to explicitly disable.
	DisableLints []string `yaml:"-" toml:"-" json:"-"`

	// Color controls terminal styling.
	Color ColorMode `yaml:"-" toml:"-" json:"-"`

	// Strict treats warnings as failures.
	Strict bool `yaml:"-" toml:"-" json:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Lints:      make(map[string]LintConfig),
		Ignore:     nil,
		Extensions: []string{DefaultExtension},
		MaxDepth:   DefaultMaxDepth,
		Output: OutputConfig{
			Dir: "",
			Ext: DefaultOutputExt,
		},
		Format: FormatText,
		Color:  ColorAuto,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// Lint returns the configuration for a lint and whether one was set.
func (c *Config) Lint(id string) (LintConfig, bool) {
	if c == nil || c.Lints == nil {
		return LintConfig{}, false
	}
	lc, ok := c.Lints[id]
	return lc, ok
}

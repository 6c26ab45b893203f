package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "toml".
	Format string

	// Lints lists the lints to include in the template.
	Lints []LintInfo
}

// LintInfo contains lint metadata for template generation.
// It mirrors the registry without importing pkg/lint.
type LintInfo struct {
	ID          string
	Description string
	Enabled     bool
}

// GenerateTemplate creates a configuration file holding the defaults and
// one entry per lint.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	cfg := NewConfig()
	lints := slices.Clone(opts.Lints)
	slices.SortFunc(lints, func(a, b LintInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	for _, info := range lints {
		enabled := info.Enabled
		cfg.Lints[info.ID] = LintConfig{Enabled: &enabled}
	}

	var (
		body []byte
		err  error
	)
	switch opts.Format {
	case "", "yaml", "yml":
		body, err = cfg.ToYAML()
	case "toml":
		body, err = cfg.ToTOML()
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# Lints:\n")
	for _, info := range lints {
		fmt.Fprintf(&buf, "#   %s: %s\n", info.ID, info.Description)
	}
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# em configuration
# Place this file at .emblem.yaml or .emblem.toml in your project root.`
}

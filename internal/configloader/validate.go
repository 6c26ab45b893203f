package configloader

import (
	"fmt"
	"path"
	"strings"

	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/diag"
	"github.com/yaklabco/emblem/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "lints.empty-attrs.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown lint IDs).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration against the lints in registry. A nil
// registry means lint.DefaultRegistry.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, table, json, sarif, summary", cfg.Format)
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.MaxDepth < 0 {
		result.fail("max_depth", cfg.MaxDepth, "max_depth must be >= 0 (0 means the default)")
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}
	if strings.ContainsAny(cfg.Output.Ext, `/\`) {
		result.fail("output.ext", cfg.Output.Ext, "extension %q must not contain a path separator", cfg.Output.Ext)
	}

	validateLints(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateLints checks per-lint settings and the CLI enable/disable lists.
func validateLints(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	for id, lintCfg := range cfg.Lints {
		if !registry.Has(id) {
			result.warn("lints."+id, id, "unknown lint %q; it will be ignored", id)
		}
		if lintCfg.Severity != nil {
			if _, err := diag.ParseSeverity(*lintCfg.Severity); err != nil {
				result.fail("lints."+id+".severity", *lintCfg.Severity, "invalid severity %q; must be one of: error, warning, info", *lintCfg.Severity)
			}
		}
	}

	for _, id := range cfg.EnableLints {
		if !registry.Has(id) {
			result.warn("enable", id, "unknown lint %q; it will be ignored", id)
		}
	}
	for _, id := range cfg.DisableLints {
		if !registry.Has(id) {
			result.warn("disable", id, "unknown lint %q; it will be ignored", id)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		for _, segment := range strings.Split(pattern, "/") {
			if segment == "**" {
				continue
			}
			// path.Match reports only malformed patterns as errors.
			if _, err := path.Match(segment, ""); err != nil {
				result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
				break
			}
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, registry *lint.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

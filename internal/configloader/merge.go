package configloader

import (
	"maps"

	"github.com/yaklabco/emblem/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Output.Dir != "" {
		result.Output.Dir = override.Output.Dir
	}
	if override.Output.Ext != "" {
		result.Output.Ext = override.Output.Ext
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	// false is the zero value, so a later source can turn Strict on but
	// not off.
	if override.Strict {
		result.Strict = true
	}

	result.Lints = mergeLints(base.Lints, override.Lints)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.EnableLints != nil {
		result.EnableLints = override.EnableLints
	}
	if override.DisableLints != nil {
		result.DisableLints = override.DisableLints
	}

	return &result
}

// mergeLints performs a deep merge of lint configurations.
func mergeLints(base, override map[string]config.LintConfig) map[string]config.LintConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.LintConfig, len(base)+len(override))
	maps.Copy(result, base)
	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeLintConfig(existing, val)
		} else {
			result[key] = val
		}
	}
	return result
}

// mergeLintConfig merges individual lint configurations.
func mergeLintConfig(base, override config.LintConfig) config.LintConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.Options != nil {
		options := make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(options, base.Options)
		maps.Copy(options, override.Options)
		result.Options = options
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}

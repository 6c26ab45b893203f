package lint

import (
	"fmt"
	"slices"

	"github.com/yaklabco/emblem/pkg/config"
	"github.com/yaklabco/emblem/pkg/diag"
)

// ResolvedLint pairs a Lint with its resolved configuration.
type ResolvedLint struct {
	// Lint is the configured lint implementation.
	Lint Lint

	// Enabled indicates whether the lint should be run.
	Enabled bool

	// Severity overrides the severity of the lint's diagnostics when set.
	Severity *diag.Severity

	// Config is the lint-specific configuration (may be nil).
	Config *config.LintConfig
}

// ResolveLints determines which lints to run based on registry and config.
// Returns only enabled lints, sorted by ID.
func ResolveLints(registry *Registry, cfg *config.Config) ([]ResolvedLint, error) {
	var resolved []ResolvedLint

	for _, l := range registry.Lints() {
		rl, err := resolveLint(l, cfg)
		if err != nil {
			return nil, err
		}
		if rl.Enabled {
			resolved = append(resolved, rl)
		}
	}

	return resolved, nil
}

// resolveLint resolves the configuration for a single lint.
func resolveLint(l Lint, cfg *config.Config) (ResolvedLint, error) {
	rl := ResolvedLint{
		Lint:    l,
		Enabled: l.DefaultEnabled(),
	}

	if cfg == nil {
		return rl, nil
	}

	lintCfg, ok := cfg.Lint(l.ID())
	if ok {
		rl.Config = &lintCfg

		if lintCfg.Enabled != nil {
			rl.Enabled = *lintCfg.Enabled
		}
		if lintCfg.Severity != nil {
			sev, err := diag.ParseSeverity(*lintCfg.Severity)
			if err != nil {
				return rl, fmt.Errorf("lint %s: %w", l.ID(), err)
			}
			rl.Severity = &sev
		}
		if configurable, isConfigurable := l.(Configurable); isConfigurable && lintCfg.Options != nil {
			configured, err := configurable.WithOptions(Options(lintCfg.Options))
			if err != nil {
				return rl, fmt.Errorf("lint %s: %w", l.ID(), err)
			}
			rl.Lint = configured
		}
	}

	// Explicit enable/disable from CLI wins over config files.
	if slices.Contains(cfg.EnableLints, l.ID()) {
		rl.Enabled = true
	}
	if slices.Contains(cfg.DisableLints, l.ID()) {
		rl.Enabled = false
	}

	return rl, nil
}

package rules

import "github.com/yaklabco/emblem/pkg/lint"

// RegisterAll registers all built-in lints with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewDuplicateAttrs())
	registry.Register(NewEmptyAttrs())
	registry.Register(NewRedundantSugar())
}

// init registers all built-in lints with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic lint registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}

package lint

import (
	"cmp"
	"slices"
	"sync"

	"github.com/yaklabco/emblem/pkg/config"
)

// Registry holds all registered lints.
type Registry struct {
	mu   sync.RWMutex
	byID map[string]Lint
}

// NewRegistry creates an empty lint registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Lint),
	}
}

// Register adds a lint to the registry.
// If a lint with the same ID already exists, it is replaced.
func (r *Registry) Register(l Lint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[l.ID()] = l
}

// Get retrieves a lint by ID.
func (r *Registry) Get(id string) (Lint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byID[id]
	return l, ok
}

// Has reports whether a lint with the given ID is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Lints returns all registered lints sorted by ID.
func (r *Registry) Lints() []Lint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Lint, 0, len(r.byID))
	for _, l := range r.byID {
		result = append(result, l)
	}

	// Sort by lint ID for consistent, deterministic output.
	slices.SortFunc(result, func(a, b Lint) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	return result
}

// IDs returns all registered lint IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}

	slices.Sort(result)
	return result
}

// Infos returns template metadata for every registered lint.
func (r *Registry) Infos() []config.LintInfo {
	lints := r.Lints()
	infos := make([]config.LintInfo, 0, len(lints))
	for _, l := range lints {
		infos = append(infos, config.LintInfo{
			ID:          l.ID(),
			Description: l.Description(),
			Enabled:     l.DefaultEnabled(),
		})
	}
	return infos
}

// DefaultRegistry is the global registry for built-in lints.
// Lints register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for lint registration
var DefaultRegistry = NewRegistry()

// Package extensions registers named build plugins and selects the ones a
// project enables.
package extensions

import (
	"fmt"
	"slices"
	"sync"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry holds extensions by name. It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	exts map[string]ports.Extension
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{exts: make(map[string]ports.Extension)}
}

// Default returns a Registry holding the built-in extensions.
func Default() *Registry {
	r := NewRegistry()
	for _, ext := range Builtins() {
		_ = r.Register(ext)
	}
	return r
}

// Register adds ext under its name.
func (r *Registry) Register(ext ports.Extension) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := ext.Name()
	if _, exists := r.exts[name]; exists {
		return zerr.With(zerr.Wrap(domain.ErrExtensionExists, "extensions"), "name", name)
	}
	r.exts[name] = ext
	return nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.exts))
	for name := range r.exts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Selection is the set of extensions enabled for one build, split by capability.
type Selection struct {
	Transformers []ports.DocumentTransformer
	Validators   []ports.DocumentValidator
	Finishers    []ports.Finisher
}

// Select resolves names in order. Unknown names yield a warning against
// configFile and are otherwise ignored.
func (r *Registry) Select(names []string, configFile string) (Selection, []domain.Diagnostic) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		sel   Selection
		diags []domain.Diagnostic
		seen  = make(map[string]bool, len(names))
	)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		ext, ok := r.exts[name]
		if !ok {
			diags = append(diags, domain.NewWarning(domain.KindOther, configFile, 0,
				fmt.Sprintf("extension '%s' is not available and was skipped", name)))
			continue
		}
		if t, ok := ext.(ports.DocumentTransformer); ok {
			sel.Transformers = append(sel.Transformers, t)
		}
		if v, ok := ext.(ports.DocumentValidator); ok {
			sel.Validators = append(sel.Validators, v)
		}
		if f, ok := ext.(ports.Finisher); ok {
			sel.Finishers = append(sel.Finishers, f)
		}
	}
	return sel, diags
}

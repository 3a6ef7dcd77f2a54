package codegen

import (
	"fmt"
	"sort"
)

// Factory builds a backend from generation options
type Factory func(opts Options) Backend

// Registry manages available code generators
type Registry struct {
	backends map[string]Factory
}

// NewRegistry creates a new backend registry
func NewRegistry() *Registry {
	r := &Registry{
		backends: make(map[string]Factory),
	}
	return r
}

// Register adds a new backend factory to the registry
func (r *Registry) Register(language string, factory Factory) {
	r.backends[language] = factory
}

// Get returns a backend for the specified language
func (r *Registry) Get(language string, opts Options) (Backend, error) {
	factory, exists := r.backends[language]
	if !exists {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	return factory(opts), nil
}

// Languages returns the sorted list of supported languages
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.backends))
	for lang := range r.backends {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}

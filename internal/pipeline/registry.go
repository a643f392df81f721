package pipeline

import (
	"fmt"
	"sort"
	"sync"

	"cardsmith/internal/card"
)

// Factory constructs a pipeline for one technology. Construction must be
// side-effect free: no I/O, no network calls.
type Factory func() Pipeline

// Registry maintains known pipeline factories keyed by technology. New
// technologies register a constructor; dispatch code never changes.
type Registry struct {
	mu        sync.RWMutex
	factories map[card.Technology]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[card.Technology]Factory{}}
}

// Register installs a pipeline factory. Returns an error if the
// technology already has one.
func (r *Registry) Register(tech card.Technology, factory Factory) error {
	if tech == "" {
		return fmt.Errorf("pipeline: technology is required")
	}
	if factory == nil {
		return fmt.Errorf("pipeline: factory is required for %s", tech)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[tech]; exists {
		return fmt.Errorf("pipeline: %s already registered", tech)
	}
	r.factories[tech] = factory
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(tech card.Technology, factory Factory) {
	if err := r.Register(tech, factory); err != nil {
		panic(err)
	}
}

// Resolve constructs a pipeline by technology. Reports false when no
// factory is registered for it.
func (r *Registry) Resolve(tech card.Technology) (Pipeline, bool) {
	r.mu.RLock()
	factory, ok := r.factories[tech]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Technologies returns a sorted list of registered technologies.
func (r *Registry) Technologies() []card.Technology {
	r.mu.RLock()
	defer r.mu.RUnlock()
	techs := make([]card.Technology, 0, len(r.factories))
	for tech := range r.factories {
		techs = append(techs, tech)
	}
	sort.Slice(techs, func(i, j int) bool { return techs[i] < techs[j] })
	return techs
}

// DefaultRegistry wires the built-in crews.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(card.TechReact, NewReactCrew)
	r.MustRegister(card.TechRails, NewRailsCrew)
	r.MustRegister(card.TechApex, NewApexCrew)
	r.MustRegister(card.TechFrontend, NewFrontendCrew)
	return r
}

// Build resolves the pipeline for a technology. It is total:
// technologies without a registered factory (TechUnknown included) fall
// back to the generic crew, never an error. No I/O happens here.
func (r *Registry) Build(tech card.Technology) Pipeline {
	if p, ok := r.Resolve(tech); ok {
		return p
	}
	return NewGenericCrew()
}

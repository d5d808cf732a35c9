// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/specialistvlad/typegrid/internal/bounds"
	"github.com/specialistvlad/typegrid/internal/hcldecl"
	"github.com/specialistvlad/typegrid/internal/object"
	"github.com/specialistvlad/typegrid/internal/types"
)

// Registry holds registered object types and validators. It is safe for
// concurrent use.
type Registry struct {
	mu         sync.RWMutex
	objects    map[string]*object.Type
	validators map[string]*bounds.Validator
	logger     *slog.Logger
}

// New creates and initializes a new Registry instance.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		objects:    make(map[string]*object.Type),
		validators: make(map[string]*bounds.Validator),
		logger:     logger,
	}
}

// RegisterObject adds t under its own name.
func (r *Registry) RegisterObject(t *object.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.objects[t.Name()]; exists {
		panic(fmt.Sprintf("object type with name '%s' already registered", t.Name()))
	}
	r.logger.Debug("Registering object type.", "name", t.Name(), "fields", len(t.Fields()))
	r.objects[t.Name()] = t
}

// RegisterValidator adds v under name.
func (r *Registry) RegisterValidator(name string, v *bounds.Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.validators[name]; exists {
		panic(fmt.Sprintf("validator with name '%s' already registered", name))
	}
	r.logger.Debug("Registering validator.", "name", name, "repr", v.String())
	r.validators[name] = v
}

// PopulateFromDeclarations registers every loaded validator and object.
func (r *Registry) PopulateFromDeclarations(decls *hcldecl.Declarations) {
	for _, v := range decls.Validators {
		r.RegisterValidator(v.Name, v.Validator)
	}
	for _, o := range decls.Objects {
		r.RegisterObject(o.Type)
	}
}

// Object looks up an object type by name.
func (r *Registry) Object(name string) (*object.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.objects[name]
	return t, ok
}

// Validator looks up a validator by name.
func (r *Registry) Validator(name string) (*bounds.Validator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.validators[name]
	return v, ok
}

// Resolve returns the descriptor of a registered object type.
func (r *Registry) Resolve(name string) (types.Type, bool) {
	t, ok := r.Object(name)
	if !ok {
		return nil, false
	}
	return t.Descriptor(), true
}

// ObjectNames returns the registered object names, sorted.
func (r *Registry) ObjectNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.objects))
	for name := range r.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package singleton

import (
	"log/slog"
	"sync"
)

// State is the lifecycle state of a slot.
type State int

const (
	Unconstructed State = iota
	Constructed
)

func (s State) String() string {
	if s == Constructed {
		return "constructed"
	}
	return "unconstructed"
}

// slot holds the shared instance for one identity key.
type slot struct {
	mu       sync.Mutex
	state    State
	instance any
}

// Registry maps identity keys to slots.
//
// The zero value is not usable; create one with NewRegistry.
type Registry struct {
	slots  sync.Map // Key: identity key, Value: *slot
	logger *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default is the process-wide registry used when a wrapper names none.
var Default = NewRegistry()

func (r *Registry) slot(key any) *slot {
	s, _ := r.slots.LoadOrStore(key, &slot{})
	return s.(*slot)
}

// State reports the lifecycle state for key.
func (r *Registry) State(key any) State {
	s, ok := r.slots.Load(key)
	if !ok {
		return Unconstructed
	}
	sl := s.(*slot)
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.state
}

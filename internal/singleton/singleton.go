// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package singleton

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/specialistvlad/typegrid/internal/object"
)

// ErrIdentityConflict is returned when a slot holds an instance of a
// different type than the wrapper produces.
var ErrIdentityConflict = errors.New("singleton identity conflict")

// Updater is implemented by instances that want to see the arguments of
// later constructor calls.
type Updater interface {
	UpdateSingleton(args ...any) error
}

// Constructor builds a new instance from call arguments.
type Constructor[T any] func(args ...any) (T, error)

type options struct {
	key      any
	update   func(instance any, args ...any) error
	registry *Registry
}

// Option configures Wrap.
type Option func(*options)

// WithKey overrides the identity key. Wrappers with equal keys share one
// instance.
func WithKey(key any) Option {
	return func(o *options) { o.key = key }
}

// WithUpdate installs a hook run on the shared instance by every call after
// the first. It takes precedence over Updater.
func WithUpdate[T any](fn func(instance T, args ...any) error) Option {
	return func(o *options) {
		if fn == nil {
			o.update = nil
			return
		}
		o.update = func(instance any, args ...any) error {
			return fn(instance.(T), args...)
		}
	}
}

// WithRegistry stores the slot in r instead of Default.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// Wrapped is a constructor that returns one shared instance per identity
// key.
type Wrapped[T any] struct {
	ctor     Constructor[T]
	key      any
	update   func(instance any, args ...any) error
	registry *Registry
}

// typeKey is the default identity: the Go type produced by the wrapper.
type typeKey struct{ t reflect.Type }

// Wrap returns a singleton wrapper around ctor.
func Wrap[T any](ctor Constructor[T], opts ...Option) *Wrapped[T] {
	o := options{
		key:      typeKey{t: reflect.TypeOf((*T)(nil)).Elem()},
		registry: Default,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Wrapped[T]{ctor: ctor, key: o.key, update: o.update, registry: o.registry}
}

// Key returns the identity key.
func (w *Wrapped[T]) Key() any { return w.key }

// New returns the shared instance, constructing it on the first call.
func (w *Wrapped[T]) New(args ...any) (T, error) {
	var zero T
	s := w.registry.slot(w.key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Unconstructed {
		inst, err := w.ctor(args...)
		if err != nil {
			w.registry.logger.Debug("Singleton construction failed.", "key", fmt.Sprint(w.key), "error", err)
			return zero, err
		}
		s.instance = inst
		s.state = Constructed
		w.registry.logger.Debug("Singleton constructed.", "key", fmt.Sprint(w.key))
		return inst, nil
	}

	inst, ok := s.instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %v holds %T, not %s", ErrIdentityConflict, w.key, s.instance, reflect.TypeOf((*T)(nil)).Elem())
	}
	if w.update != nil {
		if err := w.update(inst, args...); err != nil {
			return inst, fmt.Errorf("singleton update: %w", err)
		}
		return inst, nil
	}
	if u, ok := any(inst).(Updater); ok {
		if err := u.UpdateSingleton(args...); err != nil {
			return inst, fmt.Errorf("singleton update: %w", err)
		}
	}
	return inst, nil
}

// Instance returns the shared instance without constructing it.
func (w *Wrapped[T]) Instance() (T, bool) {
	var zero T
	s := w.registry.slot(w.key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Constructed {
		return zero, false
	}
	inst, ok := s.instance.(T)
	return inst, ok
}

// Object wraps the constructor of t. Arguments are positional values, or a
// single object.Args or map[string]any for named binding.
func Object(t *object.Type, opts ...Option) *Wrapped[*object.Instance] {
	ctor := func(args ...any) (*object.Instance, error) {
		return t.Construct(objectArgs(args))
	}
	return Wrap(ctor, append([]Option{WithKey(t)}, opts...)...)
}

// IdempotentObject is Object with an update hook that re-initializes the
// shared instance from the arguments of every later call that passes any.
func IdempotentObject(t *object.Type, opts ...Option) *Wrapped[*object.Instance] {
	reinit := WithUpdate(func(inst *object.Instance, args ...any) error {
		if len(args) == 0 {
			return nil
		}
		return inst.Assign(objectArgs(args))
	})
	return Object(t, append([]Option{reinit}, opts...)...)
}

func objectArgs(args []any) object.Args {
	if len(args) == 1 {
		switch a := args[0].(type) {
		case object.Args:
			return a
		case map[string]any:
			return object.Args{Named: a}
		}
	}
	return object.Args{Positional: args}
}

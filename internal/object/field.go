// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the per-field schema entry consumed by Define.
package object

import (
	"github.com/specialistvlad/typegrid/internal/types"
)

// Constraint is an extra validation step run after a field's type rule. A
// constraint may return a different value of the same type, which is stored.
type Constraint interface {
	Validate(v any) (any, error)
}

// FieldSpec declares one field of an object type.
type FieldSpec struct {
	// Name is the field name used for named arguments and accessors.
	Name string

	// Type is the declared shape of the field's value.
	Type types.Type

	// Optional marks a field that may be omitted at construction. It must be
	// true exactly when Type is optional or a default is present.
	Optional bool

	// Default is used when the field is omitted. Only meaningful when
	// HasDefault is set, so that a nil default can be expressed.
	Default    any
	HasDefault bool

	// Constraint, when set, runs after the type rule on every assignment.
	Constraint Constraint
}

// Required declares a field that must always be supplied.
func Required(name string, t types.Type) FieldSpec {
	return FieldSpec{Name: name, Type: t}
}

// OptionalField declares a field of type optional(t) that defaults to the
// absent value.
func OptionalField(name string, t types.Type) FieldSpec {
	return FieldSpec{Name: name, Type: types.Optional(t), Optional: true}
}

// WithDefault declares a field that falls back to def when omitted.
func WithDefault(name string, t types.Type, def any) FieldSpec {
	return FieldSpec{Name: name, Type: t, Optional: true, Default: def, HasDefault: true}
}

// Constrained returns a copy of f that also runs c on every assignment.
func (f FieldSpec) Constrained(c Constraint) FieldSpec {
	f.Constraint = c
	return f
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package typegrid is the public entry point to runtime-typed objects:
// type descriptors and coercion, generated object types, bounded validators,
// shared-identity singletons, and HCL declaration loading. The types here are
// aliases of the internal implementations.
package typegrid

import (
	"context"

	"github.com/specialistvlad/typegrid/internal/bounds"
	"github.com/specialistvlad/typegrid/internal/hcldecl"
	"github.com/specialistvlad/typegrid/internal/object"
	"github.com/specialistvlad/typegrid/internal/singleton"
	"github.com/specialistvlad/typegrid/internal/types"
	"github.com/specialistvlad/typegrid/internal/value"
)

// Type descriptors.
type (
	Type   = types.Type
	Schema = types.Schema
	Pair   = types.Pair
)

var (
	String = types.String
	Int    = types.Int
	Float  = types.Float
	Bool   = types.Bool
	Any    = types.Any
)

var (
	Optional  = types.Optional
	List      = types.Sequence
	Map       = types.Mapping
	Tuple     = types.Tuple
	Coerce    = types.Coerce
	Satisfies = types.Satisfies
)

// Generated object types.
type (
	ObjectType = object.Type
	Instance   = object.Instance
	FieldSpec  = object.FieldSpec
	Args       = object.Args
	Constraint = object.Constraint
	Option     = object.Option
)

// Define generates an object type from fields.
func Define(name string, fields []FieldSpec, opts ...Option) (*ObjectType, error) {
	return object.Define(name, fields, opts...)
}

var (
	Required      = object.Required
	OptionalField = object.OptionalField
	WithDefault   = object.WithDefault
	Strict        = object.Strict
	Immutable     = object.Immutable
)

// Bounded validators.
type Validator = bounds.Validator

var (
	Bounded      = bounds.New
	Length       = bounds.Length
	Text         = bounds.Text
	NonEmptyText = bounds.NonEmptyText
	Valid        = bounds.Valid
)

// Singletons.
type Wrapped[T any] = singleton.Wrapped[T]

// Wrap gives every construction through ctor one shared identity.
func Wrap[T any](ctor singleton.Constructor[T], opts ...singleton.Option) *Wrapped[T] {
	return singleton.Wrap(ctor, opts...)
}

// Singleton shares one instance of t across calls.
func Singleton(t *ObjectType, opts ...singleton.Option) *Wrapped[*Instance] {
	return singleton.Object(t, opts...)
}

// IdempotentSingleton shares one instance of t and re-initializes it in
// place when later calls pass arguments.
func IdempotentSingleton(t *ObjectType, opts ...singleton.Option) *Wrapped[*Instance] {
	return singleton.IdempotentObject(t, opts...)
}

// Declarations loaded from HCL.
type Declarations = hcldecl.Declarations

// Load reads .hcl declaration files from paths.
func Load(ctx context.Context, paths ...string) (*Declarations, error) {
	return hcldecl.NewLoader().Load(ctx, paths...)
}

// Value semantics shared by plain values and instances.
var (
	Equal   = value.Equal
	Compare = value.Compare
	Hash    = value.Hash
)

// Error kinds.
type (
	CoercionError     = types.CoercionError
	TypeMismatchError = types.TypeMismatchError
	ConstructionError = object.ConstructionError
	SchemaError       = object.SchemaError
	BoundsError       = bounds.BoundsError
)

var (
	ErrCoercion         = types.ErrCoercion
	ErrTypeMismatch     = types.ErrTypeMismatch
	ErrConstruction     = object.ErrConstruction
	ErrImmutable        = object.ErrImmutable
	ErrUnknownField     = object.ErrUnknownField
	ErrOutOfBounds      = bounds.ErrOutOfBounds
	ErrNotComparable    = value.ErrNotComparable
	ErrUnhashable       = value.ErrUnhashable
	ErrIdentityConflict = singleton.ErrIdentityConflict
)

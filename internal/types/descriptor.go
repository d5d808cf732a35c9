// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed set of type descriptors used to declare the
// shape of a field: primitives, optional wrappers, homogeneous sequences,
// keyed mappings, fixed tuples, and user-defined object types.
package types

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Kind identifies the shape of a Type.
type Kind int

const (
	KindPrimitive Kind = iota
	KindOptional
	KindSequence
	KindMapping
	KindTuple
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindOptional:
		return "optional"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindTuple:
		return "tuple"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type describes the declared shape of a value. The set of implementations
// is closed: only the descriptors in this package satisfy it.
type Type interface {
	// Kind reports which descriptor shape this is.
	Kind() Kind
	// FriendlyName renders the type in declaration syntax, e.g. `list(int)`.
	FriendlyName() string
	// GoType is the Go representation produced when coercing to this type.
	GoType() reflect.Type

	isType()
}

// Schema is implemented by generated object types so that descriptors can
// reference them without depending on the builder package.
type Schema interface {
	// Name is the declared type name.
	Name() string
	// Owns reports whether v is an instance produced from exactly this schema.
	Owns(v any) bool
	// ConstructFrom builds a new instance from v, forwarding it as the
	// constructor's arguments.
	ConstructFrom(v any) (any, error)
	// GoType is the Go type of instances produced by this schema.
	GoType() reflect.Type
}

// Primitive enumerates the scalar kinds.
type Primitive int

const (
	PrimString Primitive = iota
	PrimInt
	PrimFloat
	PrimBool
	PrimAny
)

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// PrimitiveType is a scalar descriptor.
type PrimitiveType struct {
	prim Primitive
}

var (
	String = PrimitiveType{prim: PrimString}
	Int    = PrimitiveType{prim: PrimInt}
	Float  = PrimitiveType{prim: PrimFloat}
	Bool   = PrimitiveType{prim: PrimBool}
	Any    = PrimitiveType{prim: PrimAny}
)

func (PrimitiveType) Kind() Kind { return KindPrimitive }
func (PrimitiveType) isType()    {}

// Primitive returns the scalar kind.
func (p PrimitiveType) Primitive() Primitive { return p.prim }

func (p PrimitiveType) FriendlyName() string {
	switch p.prim {
	case PrimString:
		return "string"
	case PrimInt:
		return "int"
	case PrimFloat:
		return "float"
	case PrimBool:
		return "bool"
	default:
		return "any"
	}
}

func (p PrimitiveType) GoType() reflect.Type {
	switch p.prim {
	case PrimString:
		return reflect.TypeOf("")
	case PrimInt:
		return reflect.TypeOf(0)
	case PrimFloat:
		return reflect.TypeOf(float64(0))
	case PrimBool:
		return reflect.TypeOf(false)
	default:
		return anyType
	}
}

// ctyType is the cty type used to run the primitive's standard conversion.
func (p PrimitiveType) ctyType() cty.Type {
	switch p.prim {
	case PrimString:
		return cty.String
	case PrimInt, PrimFloat:
		return cty.Number
	case PrimBool:
		return cty.Bool
	default:
		return cty.DynamicPseudoType
	}
}

// OptionalType admits the absent value (nil) in addition to its inner type.
type OptionalType struct {
	Inner Type
}

// Optional wraps inner so that nil is accepted. Wrapping an optional type
// again returns it unchanged.
func Optional(inner Type) Type {
	if o, ok := inner.(OptionalType); ok {
		return o
	}
	return OptionalType{Inner: inner}
}

func (OptionalType) Kind() Kind             { return KindOptional }
func (OptionalType) isType()                {}
func (OptionalType) GoType() reflect.Type   { return anyType }
func (o OptionalType) FriendlyName() string { return "optional(" + o.Inner.FriendlyName() + ")" }

// SequenceType is a homogeneous list.
type SequenceType struct {
	Elem Type
}

// Sequence describes a list whose elements all have type elem.
func Sequence(elem Type) Type { return SequenceType{Elem: elem} }

func (SequenceType) Kind() Kind             { return KindSequence }
func (SequenceType) isType()                {}
func (s SequenceType) GoType() reflect.Type { return reflect.SliceOf(s.Elem.GoType()) }
func (s SequenceType) FriendlyName() string { return "list(" + s.Elem.FriendlyName() + ")" }

// MappingType is a keyed map.
type MappingType struct {
	Key   Type
	Value Type
}

// Mapping describes a map from key to value.
func Mapping(key, value Type) Type { return MappingType{Key: key, Value: value} }

func (MappingType) Kind() Kind { return KindMapping }
func (MappingType) isType()    {}

// GoType falls back to an `any` key when the key's representation is not
// comparable; coercion then rejects such keys.
func (m MappingType) GoType() reflect.Type {
	kt := m.Key.GoType()
	if !kt.Comparable() {
		kt = anyType
	}
	return reflect.MapOf(kt, m.Value.GoType())
}

func (m MappingType) FriendlyName() string {
	return "map(" + m.Key.FriendlyName() + ", " + m.Value.FriendlyName() + ")"
}

// TupleType is a fixed-arity, heterogeneous sequence.
type TupleType struct {
	Elems []Type
}

// Tuple describes a fixed sequence of positions.
func Tuple(elems ...Type) Type {
	return TupleType{Elems: append([]Type(nil), elems...)}
}

func (TupleType) Kind() Kind           { return KindTuple }
func (TupleType) isType()              {}
func (TupleType) GoType() reflect.Type { return reflect.TypeOf([]any(nil)) }

func (t TupleType) FriendlyName() string {
	names := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		names[i] = e.FriendlyName()
	}
	return "tuple([" + strings.Join(names, ", ") + "])"
}

// UserObjectType refers to a generated object type.
type UserObjectType struct {
	Schema Schema
}

// Object describes values produced by the given schema.
func Object(schema Schema) Type { return UserObjectType{Schema: schema} }

func (UserObjectType) Kind() Kind             { return KindObject }
func (UserObjectType) isType()                {}
func (u UserObjectType) GoType() reflect.Type { return u.Schema.GoType() }
func (u UserObjectType) FriendlyName() string { return u.Schema.Name() }

// IsOptional reports whether t is an optional wrapper.
func IsOptional(t Type) bool {
	return t != nil && t.Kind() == KindOptional
}

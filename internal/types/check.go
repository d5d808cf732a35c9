// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package types

import (
	"reflect"
)

// Satisfies reports whether v already has the shape described by t. It never
// converts, panics, or returns an error.
func Satisfies(v any, t Type) bool {
	switch tt := t.(type) {
	case PrimitiveType:
		return satisfiesPrimitive(v, tt)
	case OptionalType:
		return v == nil || Satisfies(v, tt.Inner)
	case SequenceType:
		rv, ok := iterable(v)
		if !ok {
			return false
		}
		for i := 0; i < rv.Len(); i++ {
			if !Satisfies(rv.Index(i).Interface(), tt.Elem) {
				return false
			}
		}
		return true
	case MappingType:
		if v == nil {
			return false
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map {
			return false
		}
		iter := rv.MapRange()
		for iter.Next() {
			if !Satisfies(iter.Key().Interface(), tt.Key) || !Satisfies(iter.Value().Interface(), tt.Value) {
				return false
			}
		}
		return true
	case TupleType:
		rv, ok := iterable(v)
		if !ok || rv.Len() != len(tt.Elems) {
			return false
		}
		for i, elemType := range tt.Elems {
			if !Satisfies(rv.Index(i).Interface(), elemType) {
				return false
			}
		}
		return true
	case UserObjectType:
		return tt.Schema.Owns(v)
	default:
		return false
	}
}

// Require is Satisfies reported as an error.
func Require(v any, t Type) error {
	if t != nil && Satisfies(v, t) {
		return nil
	}
	return &TypeMismatchError{Type: t, Value: v}
}

func satisfiesPrimitive(v any, p PrimitiveType) bool {
	if p.prim == PrimAny {
		return true
	}
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String:
		return p.prim == PrimString
	case reflect.Bool:
		return p.prim == PrimBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return p.prim == PrimInt
	case reflect.Float32, reflect.Float64:
		return p.prim == PrimFloat
	default:
		return false
	}
}

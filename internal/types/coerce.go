// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package types

import (
	"fmt"
	"reflect"
)

// Pair is one key/value entry of an iterable-of-pairs mapping input.
type Pair struct {
	Key   any
	Value any
}

// Coerce converts v to a value satisfying t, recursing into generic element
// types. Values already in t's canonical representation are returned
// unchanged; containers are always rebuilt.
func Coerce(v any, t Type) (any, error) {
	switch tt := t.(type) {
	case PrimitiveType:
		return coercePrimitive(v, tt)
	case OptionalType:
		if v == nil {
			return nil, nil
		}
		return Coerce(v, tt.Inner)
	case SequenceType:
		return coerceSequence(v, tt)
	case MappingType:
		return coerceMapping(v, tt)
	case TupleType:
		return coerceTuple(v, tt)
	case UserObjectType:
		return coerceObject(v, tt)
	case nil:
		return nil, fmt.Errorf("types: nil type descriptor")
	default:
		return nil, coercionErr(t, v, "no conversion rule for %s", t.Kind())
	}
}

// Assign applies the field assignment rule: conversion when strict is false,
// a structural check storing the value as given when strict is true.
func Assign(v any, t Type, strict bool) (any, error) {
	if strict {
		if err := Require(v, t); err != nil {
			return nil, err
		}
		return v, nil
	}
	return Coerce(v, t)
}

func coerceSequence(v any, t SequenceType) (any, error) {
	rv, ok := iterable(v)
	if !ok {
		return nil, coercionErr(t, v, "value of type %s is not a sequence", goTypeName(v))
	}
	n := rv.Len()
	out := reflect.MakeSlice(t.GoType(), n, n)
	for i := 0; i < n; i++ {
		elem, err := Coerce(rv.Index(i).Interface(), t.Elem)
		if err != nil {
			return nil, &CoercionError{Type: t, Value: v, Err: fmt.Errorf("element %d: %w", i, err)}
		}
		setValue(out.Index(i), elem)
	}
	return out.Interface(), nil
}

func coerceMapping(v any, t MappingType) (any, error) {
	if !t.Key.GoType().Comparable() {
		return nil, coercionErr(t, v, "key type %s is not hashable", t.Key.FriendlyName())
	}
	entries, err := mappingEntries(v)
	if err != nil {
		return nil, &CoercionError{Type: t, Value: v, Err: err}
	}

	out := reflect.MakeMapWithSize(t.GoType(), len(entries))
	for _, entry := range entries {
		key, err := Coerce(entry.Key, t.Key)
		if err != nil {
			return nil, &CoercionError{Type: t, Value: v, Err: fmt.Errorf("key %s: %w", Describe(entry.Key), err)}
		}
		if key != nil && !reflect.ValueOf(key).Comparable() {
			return nil, coercionErr(t, v, "key %s is not hashable", Describe(entry.Key))
		}
		val, err := Coerce(entry.Value, t.Value)
		if err != nil {
			return nil, &CoercionError{Type: t, Value: v, Err: fmt.Errorf("value for key %s: %w", Describe(entry.Key), err)}
		}
		kv := reflect.New(out.Type().Key()).Elem()
		setValue(kv, key)
		vv := reflect.New(out.Type().Elem()).Elem()
		setValue(vv, val)
		out.SetMapIndex(kv, vv)
	}
	return out.Interface(), nil
}

// mappingEntries accepts a Go map or a slice/array of pairs.
func mappingEntries(v any) ([]Pair, error) {
	if v == nil {
		return nil, fmt.Errorf("null is not a mapping")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		entries := make([]Pair, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, Pair{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
		}
		return entries, nil
	}

	seq, ok := iterable(v)
	if !ok {
		return nil, fmt.Errorf("value of type %s is neither a mapping nor a sequence of pairs", goTypeName(v))
	}
	entries := make([]Pair, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		item := seq.Index(i).Interface()
		if p, ok := item.(Pair); ok {
			entries = append(entries, p)
			continue
		}
		pair, ok := iterable(item)
		if !ok || pair.Len() != 2 {
			return nil, fmt.Errorf("element %d is not a key/value pair", i)
		}
		entries = append(entries, Pair{Key: pair.Index(0).Interface(), Value: pair.Index(1).Interface()})
	}
	return entries, nil
}

func coerceTuple(v any, t TupleType) (any, error) {
	rv, ok := iterable(v)
	if !ok {
		return nil, coercionErr(t, v, "value of type %s is not a sequence", goTypeName(v))
	}
	if rv.Len() != len(t.Elems) {
		return nil, coercionErr(t, v, "expected %d elements, got %d", len(t.Elems), rv.Len())
	}
	out := make([]any, len(t.Elems))
	for i, elemType := range t.Elems {
		elem, err := Coerce(rv.Index(i).Interface(), elemType)
		if err != nil {
			return nil, &CoercionError{Type: t, Value: v, Err: fmt.Errorf("element %d: %w", i, err)}
		}
		out[i] = elem
	}
	return out, nil
}

func coerceObject(v any, t UserObjectType) (any, error) {
	if t.Schema.Owns(v) {
		return v, nil
	}
	inst, err := t.Schema.ConstructFrom(v)
	if err != nil {
		return nil, &CoercionError{Type: t, Value: v, Err: err}
	}
	return inst, nil
}

// iterable returns the reflect value of v when it is a slice or array.
func iterable(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv, true
	default:
		return reflect.Value{}, false
	}
}

// setValue stores v into dst, using the zero value for nil.
func setValue(dst reflect.Value, v any) {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return
	}
	dst.Set(reflect.ValueOf(v))
}

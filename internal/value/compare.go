// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package value implements structural equality, ordering, hashing, and deep
// copying of the Go values stored in generated objects.
package value

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

var (
	// ErrNotComparable signals that two values cannot be ordered or
	// equality-compared, e.g. instances of different object schemas.
	ErrNotComparable = errors.New("values are not comparable")
	// ErrUnhashable signals that a value has no content hash.
	ErrUnhashable = errors.New("value is not hashable")
)

// Equaler is implemented by values with their own equality rule. It returns
// ErrNotComparable for operands it does not know how to compare.
type Equaler interface {
	EqualValue(other any) (bool, error)
}

// Comparer is implemented by values with their own ordering rule. The result
// is negative, zero, or positive as the receiver sorts before, equal to, or
// after other.
type Comparer interface {
	CompareValue(other any) (int, error)
}

// Equal reports whether a and b are structurally equal. Integers and floats
// compare numerically; slices and arrays element-wise; maps by key set and
// values. Values of unrelated kinds are unequal. An Equaler that refuses its
// operand, including one nested inside a container, fails with
// ErrNotComparable.
func Equal(a, b any) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}
	if ea, ok := a.(Equaler); ok {
		return ea.EqualValue(b)
	}
	if _, ok := b.(Equaler); ok {
		return false, notComparable(a, b)
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if isNumber(ra) && isNumber(rb) {
		c, err := compareNumbers(ra, rb)
		return err == nil && c == 0, nil
	}

	switch ra.Kind() {
	case reflect.String:
		return rb.Kind() == reflect.String && ra.String() == rb.String(), nil
	case reflect.Bool:
		return rb.Kind() == reflect.Bool && ra.Bool() == rb.Bool(), nil
	case reflect.Slice, reflect.Array:
		if rb.Kind() != reflect.Slice && rb.Kind() != reflect.Array {
			return false, nil
		}
		if ra.Len() != rb.Len() {
			return false, nil
		}
		for i := 0; i < ra.Len(); i++ {
			eq, err := Equal(ra.Index(i).Interface(), rb.Index(i).Interface())
			if err != nil {
				return false, fmt.Errorf("element %d: %w", i, err)
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	case reflect.Map:
		if rb.Kind() != reflect.Map || ra.Len() != rb.Len() || ra.Type().Key() != rb.Type().Key() {
			return false, nil
		}
		iter := ra.MapRange()
		for iter.Next() {
			other := rb.MapIndex(iter.Key())
			if !other.IsValid() {
				return false, nil
			}
			eq, err := Equal(iter.Value().Interface(), other.Interface())
			if err != nil {
				return false, fmt.Errorf("key %v: %w", iter.Key().Interface(), err)
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	}

	if ra.Type() != rb.Type() {
		return false, nil
	}
	if ra.Comparable() && rb.Comparable() {
		return a == b, nil
	}
	return reflect.DeepEqual(a, b), nil
}

// Compare orders a and b. Numbers order numerically, strings
// lexicographically, false before true, and sequences lexicographically by
// element. Anything else, including nil against a non-nil value, returns
// ErrNotComparable.
func Compare(a, b any) (int, error) {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return 0, nil
		}
		return 0, notComparable(a, b)
	}
	if ca, ok := a.(Comparer); ok {
		return ca.CompareValue(b)
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if isNumber(ra) && isNumber(rb) {
		return compareNumbers(ra, rb)
	}

	switch ra.Kind() {
	case reflect.String:
		if rb.Kind() == reflect.String {
			return strings.Compare(ra.String(), rb.String()), nil
		}
	case reflect.Bool:
		if rb.Kind() == reflect.Bool {
			return boolRank(ra.Bool()) - boolRank(rb.Bool()), nil
		}
	case reflect.Slice, reflect.Array:
		if rb.Kind() == reflect.Slice || rb.Kind() == reflect.Array {
			return compareSequences(ra, rb)
		}
	}
	return 0, notComparable(a, b)
}

func compareSequences(ra, rb reflect.Value) (int, error) {
	n := min(ra.Len(), rb.Len())
	for i := 0; i < n; i++ {
		x, y := ra.Index(i).Interface(), rb.Index(i).Interface()
		if eq, err := Equal(x, y); err == nil && eq {
			continue
		}
		c, err := Compare(x, y)
		if err != nil {
			return 0, fmt.Errorf("element %d: %w", i, err)
		}
		return c, nil
	}
	return ra.Len() - rb.Len(), nil
}

func notComparable(a, b any) error {
	return fmt.Errorf("%w: %T and %T", ErrNotComparable, a, b)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isNumber(rv reflect.Value) bool {
	return isSigned(rv) || isUnsigned(rv) || isFloat(rv)
}

func isSigned(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(rv reflect.Value) bool {
	return rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64
}

func compareNumbers(ra, rb reflect.Value) (int, error) {
	switch {
	case isSigned(ra) && isSigned(rb):
		return cmpOrdered(ra.Int(), rb.Int()), nil
	case isUnsigned(ra) && isUnsigned(rb):
		return cmpOrdered(ra.Uint(), rb.Uint()), nil
	case isSigned(ra) && isUnsigned(rb):
		if ra.Int() < 0 {
			return -1, nil
		}
		return cmpOrdered(uint64(ra.Int()), rb.Uint()), nil
	case isUnsigned(ra) && isSigned(rb):
		if rb.Int() < 0 {
			return 1, nil
		}
		return cmpOrdered(ra.Uint(), uint64(rb.Int())), nil
	}
	fa, fb := toFloat(ra), toFloat(rb)
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return 0, fmt.Errorf("%w: NaN has no order", ErrNotComparable)
	}
	return cmpOrdered(fa, fb), nil
}

func toFloat(rv reflect.Value) float64 {
	switch {
	case isSigned(rv):
		return float64(rv.Int())
	case isUnsigned(rv):
		return float64(rv.Uint())
	default:
		return rv.Float()
	}
}

func cmpOrdered[T int64 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

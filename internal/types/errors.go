// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package types

import (
	"errors"
	"fmt"
)

var (
	// ErrCoercion matches every *CoercionError.
	ErrCoercion = errors.New("coercion failed")
	// ErrTypeMismatch matches every *TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")
)

// CoercionError reports that a value could not be converted to a type,
// either because no rule applies or because the conversion itself failed.
type CoercionError struct {
	Type  Type
	Value any
	Err   error
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("cannot convert %s to %s", Describe(e.Value), e.Type.FriendlyName())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CoercionError) Unwrap() error { return e.Err }

func (e *CoercionError) Is(target error) bool { return target == ErrCoercion }

// TypeMismatchError reports that a value does not structurally satisfy a type.
type TypeMismatchError struct {
	Type  Type
	Value any
}

func (e *TypeMismatchError) Error() string {
	want := "<nil>"
	if e.Type != nil {
		want = e.Type.FriendlyName()
	}
	return fmt.Sprintf("cannot assign value of type %s to attribute of type %s", goTypeName(e.Value), want)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// Describe renders a value for error messages.
func Describe(v any) string {
	switch tv := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", tv)
	case fmt.Stringer:
		return tv.String()
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func goTypeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

func coercionErr(t Type, v any, format string, args ...any) *CoercionError {
	return &CoercionError{Type: t, Value: v, Err: fmt.Errorf(format, args...)}
}

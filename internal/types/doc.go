// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package types describes declared field shapes and implements the two
// operations every other package builds on.
//
// Coerce converts an arbitrary Go value into a value satisfying a Type,
// recursing through optional wrappers, sequences, mappings, tuples, and
// user-defined object types. Primitive conversions follow cty's conversion
// rules, so "42" becomes 42 for an int and 5 becomes "5" for a string, while
// "five" or 1.5 fail for an int.
//
// Satisfies performs the same walk without converting anything and is used
// by strict-mode objects and validators.
//
// Coercion failures are reported as *CoercionError and strict-mode failures
// as *TypeMismatchError; both match their package sentinels with errors.Is.
package types

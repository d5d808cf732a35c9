// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package object builds record types from an ordered list of typed fields.
//
// Define validates the field list once and returns a *Type whose
// constructor binds positional and named arguments to fields, applies
// defaults, and runs every value through the field's assignment rule:
// conversion by default, a structural check for Strict types. Construction
// either yields a fully assigned *Instance or an error and nothing.
//
// Instances compare field by field. Two instances of the same type are equal
// when every field is equal, order by the first field that differs, and hash
// consistently with equality.
package object

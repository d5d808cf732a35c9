// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package registry stores named object types and validators for one
// application instance.
//
// Declarations loaded from HCL and types defined in Go code end up in the
// same Registry. Registration of a duplicate name is a programmer error and
// panics. After population the registry is validated so that every field
// constraint agrees with the field it guards and every referenced object
// type is known.
package registry

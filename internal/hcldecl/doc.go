// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package hcldecl loads object type and validator declarations from HCL.
//
//	validator "Percent" {
//	  type = int
//	  min  = 0
//	  max  = 100
//	}
//
//	object "Score" {
//	  strict = false
//	  field "player" { type = string }
//	  field "value"  {
//	    type      = int
//	    validator = "Percent"
//	  }
//	  field "tags" {
//	    type    = list(string)
//	    default = []
//	  }
//	}
//
// Field types are written as type expressions: the keywords string, int,
// float, number, bool, and any; the constructors optional(T), list(T),
// map(V) or map(K, V), and tuple([T, ...]); or the name of another declared
// object. Objects may be declared in any order and across files; they are
// built in dependency order and reference cycles are rejected.
//
// Validator kinds are range (the default), length, text, and nonempty.
package hcldecl

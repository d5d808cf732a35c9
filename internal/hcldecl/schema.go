// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the HCL block structure decoded with gohcl.
package hcldecl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all top-level blocks from one declaration file.
type fileRoot struct {
	Objects    []*objectBlock    `hcl:"object,block"`
	Validators []*validatorBlock `hcl:"validator,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

// objectBlock is `object "Name" { ... }`.
type objectBlock struct {
	Name      string        `hcl:"name,label"`
	Strict    *bool         `hcl:"strict,optional"`
	Immutable *bool         `hcl:"immutable,optional"`
	Fields    []*fieldBlock `hcl:"field,block"`
}

// fieldBlock is `field "name" { type = ..., default = ..., validator = "..." }`.
type fieldBlock struct {
	Name      string         `hcl:"name,label"`
	Type      hcl.Expression `hcl:"type"`
	Default   hcl.Expression `hcl:"default,optional"`
	Validator *string        `hcl:"validator,optional"`
}

// validatorBlock is `validator "Name" { kind = "range", type = int, min = 0, max = 10 }`.
type validatorBlock struct {
	Name   string         `hcl:"name,label"`
	Kind   *string        `hcl:"kind,optional"`
	Type   hcl.Expression `hcl:"type,optional"`
	Min    hcl.Expression `hcl:"min,optional"`
	Max    hcl.Expression `hcl:"max,optional"`
	Strict *bool          `hcl:"strict,optional"`
}

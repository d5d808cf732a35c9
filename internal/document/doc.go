// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package document reads data documents and validates them against object
// types.
//
// YAML and JSON files are decoded with gopkg.in/yaml.v3; a YAML stream may
// hold several documents separated by `---`. HCL files are read as a flat
// set of attributes. Every document must be a mapping whose keys name the
// fields of the target type.
package document

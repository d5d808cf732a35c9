// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package dag orders named declarations by their references. The declaration
// loader adds one node per object type and one edge per field that refers to
// another object type, then asks for an Order in which every referenced type
// is defined before the types that use it. Cycles are reported instead of
// ordered.
package dag

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package app contains the core application logic. It loads object type
// declarations into a registry, reads data documents, and validates each
// document against one declared type, decoupled from any specific entrypoint
// like a CLI.
package app

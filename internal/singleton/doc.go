// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package singleton wraps a constructor so that every call for the same
// identity key returns one shared instance.
//
// # Lifecycle
//
// Each identity key owns a slot in a Registry. A slot starts Unconstructed.
// The first call to Wrapped.New runs the constructor with the given
// arguments; on success the instance is stored and the slot becomes
// Constructed. A failed first construction returns the error and leaves the
// slot Unconstructed, so a later call may try again.
//
// Later calls return the stored instance. If an update hook was configured
// with WithUpdate, or the instance implements Updater, the hook runs on the
// stored instance with the new arguments and its error is returned
// alongside the instance. Otherwise the arguments are discarded.
//
// # Concurrency Model
//
// Slots live in a sync.Map and are created with LoadOrStore, so concurrent
// callers for one key always share a slot. Construction and every update
// hook run under that slot's mutex: concurrent first calls construct exactly
// once, and updates never interleave. Different keys never contend.
//
// # Object types
//
// Object and IdempotentObject adapt an *object.Type. The identity key is the
// type itself. IdempotentObject re-initializes the shared instance in place
// on every later call that passes arguments.
package singleton

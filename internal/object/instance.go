// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package object

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/specialistvlad/typegrid/internal/types"
	"github.com/specialistvlad/typegrid/internal/value"
)

// Instance is a constructed object. Field reads and writes are safe for
// concurrent use.
type Instance struct {
	typ    *Type
	mu     sync.RWMutex
	values []any
}

// Type returns the generated type that constructed i.
func (i *Instance) Type() *Type { return i.typ }

// Get returns the current value of a field.
func (i *Instance) Get(name string) (any, error) {
	idx, ok := i.typ.index[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", i.typ.name, name, ErrUnknownField)
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.values[idx], nil
}

// MustGet is Get for field names known to exist. It panics otherwise.
func (i *Instance) MustGet(name string) any {
	v, err := i.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Set assigns a field through the same rule used at construction. On error
// the previous value is kept.
func (i *Instance) Set(name string, v any) error {
	if i.typ.immutable {
		return fmt.Errorf("%s.%s: %w", i.typ.name, name, ErrImmutable)
	}
	idx, ok := i.typ.index[name]
	if !ok {
		return fmt.Errorf("%s.%s: %w", i.typ.name, name, ErrUnknownField)
	}
	out, err := i.typ.assign(i.typ.fields[idx], v)
	if err != nil {
		return &FieldError{TypeName: i.typ.name, Field: name, Err: err}
	}
	i.mu.Lock()
	i.values[idx] = out
	i.mu.Unlock()
	return nil
}

// Assign rebinds every field from args, as if constructing anew, and swaps
// the values in only if all of them succeed.
func (i *Instance) Assign(args Args) error {
	if i.typ.immutable {
		return fmt.Errorf("%s: %w", i.typ.name, ErrImmutable)
	}
	values, err := i.typ.bind(args)
	if err != nil {
		return err
	}
	i.mu.Lock()
	i.values = values
	i.mu.Unlock()
	return nil
}

// Values returns a snapshot of the field values in declaration order.
func (i *Instance) Values() []any {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]any(nil), i.values...)
}

// AsMap returns the field values keyed by name. Nested instances are
// converted recursively.
func (i *Instance) AsMap() map[string]any {
	values := i.Values()
	out := make(map[string]any, len(values))
	for idx, f := range i.typ.fields {
		out[f.Name] = plain(values[idx])
	}
	return out
}

func plain(v any) any {
	switch x := v.(type) {
	case *Instance:
		if x == nil {
			return nil
		}
		return x.AsMap()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

// String renders the instance as Name(field=value, ...).
func (i *Instance) String() string {
	values := i.Values()
	var b strings.Builder
	b.WriteString(i.typ.name)
	b.WriteByte('(')
	for idx, f := range i.typ.fields {
		if idx > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(types.Describe(values[idx]))
	}
	b.WriteByte(')')
	return b.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	_ value.Equaler  = (*Instance)(nil)
	_ value.Comparer = (*Instance)(nil)
	_ value.Hasher   = (*Instance)(nil)
)

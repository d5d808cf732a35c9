// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/typegrid/internal/bounds"
	"github.com/specialistvlad/typegrid/internal/ctxlog"
	"github.com/specialistvlad/typegrid/internal/object"
	"github.com/specialistvlad/typegrid/internal/types"
)

// Validate performs a parity check across registered types. Every field
// guarded by a validator must declare the validator's base type, and every
// object referenced by a field must itself be registered under the same
// name.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.ObjectNames() {
		t, _ := r.Object(name)
		for _, f := range t.Fields() {
			fieldType := f.Type
			if o, ok := fieldType.(types.OptionalType); ok {
				fieldType = o.Inner
			}
			if fieldType == types.Any {
				logger.Warn("Object has a field with 'type = any', which disables type checking. Consider a specific type.", "object", name, "field", f.Name)
			}

			if v, ok := f.Constraint.(*bounds.Validator); ok {
				if base := v.Base(); base.FriendlyName() != fieldType.FriendlyName() {
					errs = append(errs, fmt.Sprintf("object '%s', field '%s': validator %s checks '%s' but the field is declared as '%s'",
						name, f.Name, v, base.FriendlyName(), f.Type.FriendlyName()))
				}
			}

			for _, ref := range objectRefs(f.Type) {
				registered, ok := r.Object(ref.Name())
				if !ok {
					errs = append(errs, fmt.Sprintf("object '%s', field '%s': refers to object type '%s' which is not registered", name, f.Name, ref.Name()))
					continue
				}
				if registered != ref {
					errs = append(errs, fmt.Sprintf("object '%s', field '%s': refers to a different object type than the one registered as '%s'", name, f.Name, ref.Name()))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// objectRefs collects the generated object types reachable from t.
func objectRefs(t types.Type) []*object.Type {
	var refs []*object.Type
	var walk func(types.Type)
	walk = func(t types.Type) {
		switch tt := t.(type) {
		case types.OptionalType:
			walk(tt.Inner)
		case types.SequenceType:
			walk(tt.Elem)
		case types.MappingType:
			walk(tt.Key)
			walk(tt.Value)
		case types.TupleType:
			for _, e := range tt.Elems {
				walk(e)
			}
		case types.UserObjectType:
			if ot, ok := tt.Schema.(*object.Type); ok {
				refs = append(refs, ot)
			}
		}
	}
	walk(t)
	return refs
}

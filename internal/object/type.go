// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements schema registration: turning an ordered field list
// into a generated object type with a binding constructor.
package object

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/specialistvlad/typegrid/internal/types"
	"github.com/specialistvlad/typegrid/internal/value"
)

// Type is a generated object type. It is immutable after Define and safe
// for concurrent use.
type Type struct {
	name      string
	fields    []FieldSpec
	index     map[string]int
	strict    bool
	immutable bool
	logger    *slog.Logger
}

// Option configures Define.
type Option func(*Type)

// Strict makes every assignment check types instead of converting values.
func Strict() Option {
	return func(t *Type) { t.strict = true }
}

// Immutable rejects field assignment after construction.
func Immutable() Option {
	return func(t *Type) { t.immutable = true }
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Type) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Args is a full constructor argument list.
type Args struct {
	Positional []any
	Named      map[string]any
}

var instanceType = reflect.TypeOf((*Instance)(nil))

// Define validates fields and returns the generated type.
func Define(name string, fields []FieldSpec, opts ...Option) (*Type, error) {
	t := &Type{
		name:   name,
		index:  make(map[string]int, len(fields)),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if name == "" {
		return nil, &SchemaError{TypeName: name, Err: errors.New("type name is required")}
	}

	t.fields = make([]FieldSpec, 0, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, &SchemaError{TypeName: name, Err: fmt.Errorf("field %d has no name", i)}
		}
		if _, exists := t.index[f.Name]; exists {
			return nil, &SchemaError{TypeName: name, Field: f.Name, Err: errors.New("duplicate field")}
		}
		if f.Type == nil {
			return nil, &SchemaError{TypeName: name, Field: f.Name, Err: errors.New("field type is required")}
		}
		if want := types.IsOptional(f.Type) || f.HasDefault; f.Optional != want {
			return nil, &SchemaError{TypeName: name, Field: f.Name, Err: fmt.Errorf("optional must be %t for type %s (has default: %t)", want, f.Type.FriendlyName(), f.HasDefault)}
		}
		if f.HasDefault {
			def, err := t.assign(f, f.Default)
			if err != nil {
				return nil, &SchemaError{TypeName: name, Field: f.Name, Err: fmt.Errorf("invalid default: %w", err)}
			}
			f.Default = def
		}
		t.index[f.Name] = len(t.fields)
		t.fields = append(t.fields, f)
	}

	t.logger.Debug("Object type defined.", "type", name, "fields", len(t.fields), "strict", t.strict)
	return t, nil
}

// Name returns the declared type name.
func (t *Type) Name() string { return t.name }

// IsStrict reports whether the type checks instead of converting.
func (t *Type) IsStrict() bool { return t.strict }

// IsImmutable reports whether assignment after construction is rejected.
func (t *Type) IsImmutable() bool { return t.immutable }

// Fields returns a copy of the field list in declaration order.
func (t *Type) Fields() []FieldSpec {
	return append([]FieldSpec(nil), t.fields...)
}

// Field looks up a field by name.
func (t *Type) Field(name string) (FieldSpec, bool) {
	i, ok := t.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return t.fields[i], true
}

// Descriptor returns the type descriptor referring to t, for use as a field
// type in other schemas.
func (t *Type) Descriptor() types.Type { return types.Object(t) }

// GoType implements types.Schema.
func (t *Type) GoType() reflect.Type { return instanceType }

// Owns implements types.Schema.
func (t *Type) Owns(v any) bool {
	inst, ok := v.(*Instance)
	return ok && inst != nil && inst.typ == t
}

// ConstructFrom implements types.Schema. Args are bound as given and a
// map[string]any as named arguments. Any other value, slices included,
// becomes the sole positional argument.
func (t *Type) ConstructFrom(v any) (any, error) {
	switch args := v.(type) {
	case Args:
		return t.Construct(args)
	case map[string]any:
		return t.NewNamed(args)
	default:
		return t.New(v)
	}
}

// New constructs an instance from positional arguments.
func (t *Type) New(positional ...any) (*Instance, error) {
	return t.Construct(Args{Positional: positional})
}

// NewNamed constructs an instance from named arguments.
func (t *Type) NewNamed(named map[string]any) (*Instance, error) {
	return t.Construct(Args{Named: named})
}

// Construct binds args to fields and returns a fully assigned instance, or
// an error and no instance.
func (t *Type) Construct(args Args) (*Instance, error) {
	values, err := t.bind(args)
	if err != nil {
		t.logger.Debug("Object construction failed.", "type", t.name, "error", err)
		return nil, err
	}
	return &Instance{typ: t, values: values}, nil
}

// bind resolves args against the field list and runs the assignment rule on
// every value. Nothing is returned unless every field succeeds.
func (t *Type) bind(args Args) ([]any, error) {
	if len(args.Positional) > len(t.fields) {
		return nil, &ConstructionError{TypeName: t.name, Problem: TooManyPositional, Given: len(args.Positional), Max: len(t.fields)}
	}

	supplied := make([]bool, len(t.fields))
	raw := make([]any, len(t.fields))
	for i, v := range args.Positional {
		raw[i] = v
		supplied[i] = true
	}

	var unknown, duplicate []string
	for _, name := range sortedKeys(args.Named) {
		i, ok := t.index[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if supplied[i] {
			duplicate = append(duplicate, name)
			continue
		}
		raw[i] = args.Named[name]
		supplied[i] = true
	}
	if len(unknown) > 0 {
		return nil, &ConstructionError{TypeName: t.name, Problem: UnknownFields, Fields: unknown}
	}
	if len(duplicate) > 0 {
		return nil, &ConstructionError{TypeName: t.name, Problem: DuplicateArgument, Fields: duplicate}
	}

	var missing []string
	for i, f := range t.fields {
		if !supplied[i] && !f.Optional {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &ConstructionError{TypeName: t.name, Problem: MissingFields, Fields: missing}
	}

	values := make([]any, len(t.fields))
	for i, f := range t.fields {
		if !supplied[i] {
			if f.HasDefault {
				values[i] = value.Clone(f.Default)
			}
			continue
		}
		v, err := t.assign(f, raw[i])
		if err != nil {
			return nil, &FieldError{TypeName: t.name, Field: f.Name, Err: err}
		}
		values[i] = v
	}
	return values, nil
}

// assign runs the type rule and the field's constraint.
func (t *Type) assign(f FieldSpec, v any) (any, error) {
	out, err := types.Assign(v, f.Type, t.strict)
	if err != nil {
		return nil, err
	}
	// The absent value of an optional field is not subject to its constraint.
	if out == nil && types.IsOptional(f.Type) {
		return nil, nil
	}
	if f.Constraint != nil {
		if out, err = f.Constraint.Validate(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

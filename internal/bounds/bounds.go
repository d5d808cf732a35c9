// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package bounds builds validators that convert a value to a base type and
// then check a key derived from it against an inclusive range.
package bounds

import (
	"errors"
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/specialistvlad/typegrid/internal/object"
	"github.com/specialistvlad/typegrid/internal/types"
	"github.com/specialistvlad/typegrid/internal/value"
)

// KeyFunc derives the value compared against the bounds.
type KeyFunc func(v any) (any, error)

// Identity compares the value itself.
func Identity(v any) (any, error) { return v, nil }

// Len is the length of a string in runes, or of a slice, array, or map.
func Len(v any) (any, error) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), nil
	}
	if v == nil {
		return nil, errors.New("null has no length")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), nil
	default:
		return nil, fmt.Errorf("value of type %T has no length", v)
	}
}

// Validator is an immutable, reusable bounded validator.
type Validator struct {
	kind    string
	name    string
	base    types.Type
	lower   any
	upper   any
	key     KeyFunc
	keyName string
	strict  bool
	custom  bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithKey compares key(value) instead of the value itself. name is used in
// messages and the rendered form.
func WithKey(name string, key KeyFunc) Option {
	return func(v *Validator) {
		if key != nil {
			v.key = key
			v.keyName = name
			v.custom = true
		}
	}
}

// Strict checks that input already satisfies the base type instead of
// converting it.
func Strict() Option {
	return func(v *Validator) { v.strict = true }
}

// WithName replaces the rendered form returned by String.
func WithName(name string) Option {
	return func(v *Validator) { v.name = name }
}

// New returns a validator for base with inclusive bounds. A nil bound leaves
// that end open. When both ends are open the key itself must be truthy.
func New(base types.Type, lower, upper any, opts ...Option) (*Validator, error) {
	v := &Validator{kind: "Bounded", base: base, lower: lower, upper: upper, key: Identity, keyName: "identity"}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.init(); err != nil {
		return nil, err
	}
	return v, nil
}

// Length returns a validator on the length of values of base.
func Length(base types.Type, lower, upper any, opts ...Option) (*Validator, error) {
	v := &Validator{kind: "Length", base: base, lower: lower, upper: upper, key: Len, keyName: "len"}
	for _, opt := range opts {
		opt(v)
	}
	for _, b := range []any{v.lower, v.upper} {
		if b != nil && !types.Satisfies(b, types.Int) {
			return nil, fmt.Errorf("bounds: length bound %s is not an integer", types.Describe(b))
		}
	}
	if err := v.init(); err != nil {
		return nil, err
	}
	return v, nil
}

// Text returns a validator that converts input to a string and bounds its
// length in runes.
func Text(lower, upper any, opts ...Option) (*Validator, error) {
	v, err := Length(types.String, lower, upper, opts...)
	if err != nil {
		return nil, err
	}
	v.kind = "Text"
	return v, nil
}

// NonEmptyText accepts any string of at least one rune.
func NonEmptyText() *Validator {
	v, err := Text(1, nil, WithName("NonEmptyText"))
	if err != nil {
		panic(err)
	}
	return v
}

// Valid returns a validator that accepts values of base for which pred
// returns true.
func Valid(base types.Type, name string, pred func(v any) bool) (*Validator, error) {
	if pred == nil {
		return nil, errors.New("bounds: predicate is required")
	}
	v := &Validator{kind: "Valid", base: base, keyName: name, custom: true}
	v.key = func(x any) (any, error) { return pred(x), nil }
	if err := v.init(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Validator) init() error {
	if v.base == nil {
		return errors.New("bounds: base type is required")
	}
	if v.lower != nil && v.upper != nil {
		c, err := value.Compare(v.lower, v.upper)
		if err != nil {
			return fmt.Errorf("bounds: lower and upper bound: %w", err)
		}
		if c > 0 {
			return fmt.Errorf("bounds: lower bound %s is above upper bound %s", types.Describe(v.lower), types.Describe(v.upper))
		}
	}
	return nil
}

// Base returns the type values are converted to.
func (v *Validator) Base() types.Type { return v.base }

// Bounds returns the lower and upper bound; nil means open.
func (v *Validator) Bounds() (lower, upper any) { return v.lower, v.upper }

// Validate converts raw to the base type and checks its key against the
// bounds. The converted value is returned on success.
func (v *Validator) Validate(raw any) (any, error) {
	obtained, err := types.Assign(raw, v.base, v.strict)
	if err != nil {
		return nil, err
	}
	if err := v.checkBounds(raw, obtained); err != nil {
		return nil, err
	}
	return obtained, nil
}

// Check reports whether raw already satisfies the base type and lies within
// the bounds. Nothing is converted.
func (v *Validator) Check(raw any) bool {
	if !types.Satisfies(raw, v.base) {
		return false
	}
	return v.checkBounds(raw, raw) == nil
}

// Field declares an object field whose type is the validator's base and
// whose constraint is the validator.
func (v *Validator) Field(name string) object.FieldSpec {
	return object.Required(name, v.base).Constrained(v)
}

func (v *Validator) checkBounds(raw, obtained any) error {
	key, err := v.key(obtained)
	if err != nil {
		return &types.CoercionError{Type: v.base, Value: raw, Err: fmt.Errorf("%s: %w", v.keyName, err)}
	}

	if v.lower == nil && v.upper == nil {
		if truthy(key) {
			return nil
		}
		return v.fail(raw, key, Rejected)
	}
	if v.lower != nil {
		c, err := value.Compare(key, v.lower)
		if err != nil {
			return &types.CoercionError{Type: v.base, Value: raw, Err: err}
		}
		if c < 0 {
			return v.fail(raw, key, BelowMinimum)
		}
	}
	if v.upper != nil {
		c, err := value.Compare(key, v.upper)
		if err != nil {
			return &types.CoercionError{Type: v.base, Value: raw, Err: err}
		}
		if c > 0 {
			return v.fail(raw, key, AboveMaximum)
		}
	}
	return nil
}

func (v *Validator) fail(raw, key any, reason Reason) error {
	e := &BoundsError{Value: raw, Key: key, Lower: v.lower, Upper: v.upper, Reason: reason}
	if v.custom || v.kind != "Bounded" {
		e.KeyName = v.keyName
	}
	return e
}

// String renders the validator, e.g. Bounded[int, 10:20] or Text[1:3].
func (v *Validator) String() string {
	if v.name != "" {
		return v.name
	}
	switch v.kind {
	case "Text":
		return "Text[" + v.boundRepr() + "]"
	case "Valid":
		return "Valid[" + v.base.FriendlyName() + ", " + v.keyName + "]"
	}
	s := v.kind + "[" + v.base.FriendlyName() + ", " + v.boundRepr()
	if v.kind == "Bounded" && v.custom {
		s += ", " + v.keyName
	}
	return s + "]"
}

func (v *Validator) boundRepr() string {
	return boundString(v.lower) + ":" + boundString(v.upper)
}

func boundString(b any) string {
	if b == nil {
		return ""
	}
	if s, ok := b.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(b)
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

var _ object.Constraint = (*Validator)(nil)

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements the standard conversions between primitive kinds.
// Conversions delegate to cty so that numeric strings, whole-number checks,
// and bool keywords follow one consistent rulebook.
package types

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

func coercePrimitive(v any, p PrimitiveType) (any, error) {
	if p.prim == PrimAny {
		return v, nil
	}
	if v == nil {
		return nil, coercionErr(p, v, "null is not a %s", p.FriendlyName())
	}
	if reflect.TypeOf(v) == p.GoType() {
		return v, nil
	}

	src, err := primitiveToCty(v)
	if err != nil {
		return nil, &CoercionError{Type: p, Value: v, Err: err}
	}
	converted, err := convert.Convert(src, p.ctyType())
	if err != nil {
		return nil, &CoercionError{Type: p, Value: v, Err: err}
	}

	switch p.prim {
	case PrimString:
		return converted.AsString(), nil
	case PrimInt:
		var i int
		if err := gocty.FromCtyValue(converted, &i); err != nil {
			return nil, &CoercionError{Type: p, Value: v, Err: err}
		}
		return i, nil
	case PrimFloat:
		var f float64
		if err := gocty.FromCtyValue(converted, &f); err != nil {
			return nil, &CoercionError{Type: p, Value: v, Err: err}
		}
		return f, nil
	case PrimBool:
		return converted.True(), nil
	}
	return nil, coercionErr(p, v, "unsupported primitive kind")
}

// primitiveToCty lifts a scalar Go value into cty. Composite values are
// rejected here; they never convert to a primitive.
func primitiveToCty(v any) (cty.Value, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	case reflect.Float32, reflect.Float64:
		if f := rv.Float(); f != f {
			return cty.NilVal, fmt.Errorf("NaN is not a number")
		}
	default:
		return cty.NilVal, fmt.Errorf("value of type %T has no primitive conversion", v)
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

package types

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boxSchema is a minimal Schema whose values are *box.
type boxSchema struct{}

type box struct{ v any }

func (boxSchema) Name() string         { return "Box" }
func (boxSchema) GoType() reflect.Type { return reflect.TypeOf((*box)(nil)) }

func (boxSchema) Owns(v any) bool {
	_, ok := v.(*box)
	return ok
}

func (boxSchema) ConstructFrom(v any) (any, error) {
	if v == nil {
		return nil, errors.New("box needs a value")
	}
	return &box{v: v}, nil
}

func TestCoerce_Primitives(t *testing.T) {
	testCases := []struct {
		name    string
		value   any
		typ     Type
		want    any
		wantErr bool
	}{
		{name: "numeric string to int", value: "42", typ: Int, want: 42},
		{name: "int to string", value: 5, typ: String, want: "5"},
		{name: "int64 to int", value: int64(9), typ: Int, want: 9},
		{name: "whole float to int", value: 3.0, typ: Int, want: 3},
		{name: "int to float", value: 2, typ: Float, want: 2.0},
		{name: "string to float", value: "1.5", typ: Float, want: 1.5},
		{name: "bool keyword", value: "true", typ: Bool, want: true},
		{name: "bool to string", value: false, typ: String, want: "false"},
		{name: "any passes through", value: []int{1}, typ: Any, want: []int{1}},
		{name: "any accepts nil", value: nil, typ: Any, want: nil},
		{name: "word to int", value: "five", typ: Int, wantErr: true},
		{name: "fraction to int", value: 1.5, typ: Int, wantErr: true},
		{name: "nil to int", value: nil, typ: Int, wantErr: true},
		{name: "number to bool", value: 1, typ: Bool, wantErr: true},
		{name: "list to string", value: []string{"a"}, typ: String, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Coerce(tc.value, tc.typ)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrCoercion), "error should match ErrCoercion: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoerce_Optional(t *testing.T) {
	got, err := Coerce(nil, Optional(Int))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = Coerce("7", Optional(Int))
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	assert.Equal(t, Optional(Int), Optional(Optional(Int)), "nested optionals collapse")
}

func TestCoerce_Sequence(t *testing.T) {
	got, err := Coerce([]any{"1", 2, 3.0}, Sequence(Int))
	require.NoError(t, err)
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("unexpected list (-want +got):\n%s", diff)
	}

	got, err = Coerce([2]string{"a", "b"}, Sequence(String))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = Coerce([]any{1, "x"}, Sequence(Int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element 1")

	_, err = Coerce("abc", Sequence(String))
	require.Error(t, err, "strings are not sequences")
}

func TestCoerce_SequenceIsRebuilt(t *testing.T) {
	in := []int{1, 2}
	got, err := Coerce(in, Sequence(Int))
	require.NoError(t, err)
	got.([]int)[0] = 100
	assert.Equal(t, 1, in[0])
}

func TestCoerce_Mapping(t *testing.T) {
	testCases := []struct {
		name  string
		value any
		typ   Type
		want  any
	}{
		{
			name:  "map with converted values",
			value: map[string]any{"a": "1", "b": 2},
			typ:   Mapping(String, Int),
			want:  map[string]int{"a": 1, "b": 2},
		},
		{
			name:  "converted keys",
			value: map[any]any{1: true},
			typ:   Mapping(String, Bool),
			want:  map[string]bool{"1": true},
		},
		{
			name:  "sequence of pairs",
			value: []Pair{{Key: "x", Value: 1.0}},
			typ:   Mapping(String, Float),
			want:  map[string]float64{"x": 1},
		},
		{
			name:  "sequence of two element lists",
			value: [][]any{{"k", "v"}},
			typ:   Mapping(String, String),
			want:  map[string]string{"k": "v"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Coerce(tc.value, tc.typ)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected map (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCoerce_MappingErrors(t *testing.T) {
	_, err := Coerce(map[string]any{"a": 1}, Mapping(Sequence(Int), Int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not hashable")

	_, err = Coerce([]any{[]any{"a"}}, Mapping(String, String))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a key/value pair")

	_, err = Coerce(map[string]any{"a": "x"}, Mapping(String, Int))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCoercion))

	_, err = Coerce(nil, Mapping(String, Int))
	require.Error(t, err)
}

func TestCoerce_Tuple(t *testing.T) {
	typ := Tuple(String, Int, Optional(Bool))
	got, err := Coerce([]any{1, "2", nil}, typ)
	require.NoError(t, err)
	assert.Equal(t, []any{"1", 2, nil}, got)

	_, err = Coerce([]any{1, 2}, typ)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3 elements, got 2")
}

func TestCoerce_Object(t *testing.T) {
	typ := Object(boxSchema{})
	existing := &box{v: 1}

	got, err := Coerce(existing, typ)
	require.NoError(t, err)
	assert.Same(t, existing, got)

	got, err = Coerce("x", typ)
	require.NoError(t, err)
	assert.Equal(t, &box{v: "x"}, got)

	_, err = Coerce(nil, typ)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCoercion))
}

func TestSatisfies(t *testing.T) {
	testCases := []struct {
		name  string
		value any
		typ   Type
		want  bool
	}{
		{name: "int", value: 1, typ: Int, want: true},
		{name: "sized int", value: int32(1), typ: Int, want: true},
		{name: "string is not int", value: "1", typ: Int, want: false},
		{name: "int is not float", value: 1, typ: Float, want: false},
		{name: "nil is not string", value: nil, typ: String, want: false},
		{name: "nil satisfies optional", value: nil, typ: Optional(String), want: true},
		{name: "anything satisfies any", value: struct{}{}, typ: Any, want: true},
		{name: "list elements", value: []any{1, 2}, typ: Sequence(Int), want: true},
		{name: "list with a bad element", value: []any{1, "2"}, typ: Sequence(Int), want: false},
		{name: "map", value: map[string]int{"a": 1}, typ: Mapping(String, Int), want: true},
		{name: "map with bad key", value: map[int]int{1: 1}, typ: Mapping(String, Int), want: false},
		{name: "tuple", value: []any{"a", 1}, typ: Tuple(String, Int), want: true},
		{name: "tuple arity", value: []any{"a"}, typ: Tuple(String, Int), want: false},
		{name: "object", value: &box{}, typ: Object(boxSchema{}), want: true},
		{name: "not an object", value: 1, typ: Object(boxSchema{}), want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Satisfies(tc.value, tc.typ))
		})
	}
}

func TestAssign(t *testing.T) {
	got, err := Assign("3", Int, false)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	_, err = Assign("3", Int, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	assert.Equal(t, "cannot assign value of type string to attribute of type int", err.Error())

	in := []any{1, 2}
	got, err = Assign(in, Sequence(Int), true)
	require.NoError(t, err)
	assert.Equal(t, in, got, "strict assignment stores the value as given")
}

func TestFriendlyName(t *testing.T) {
	testCases := []struct {
		typ  Type
		want string
	}{
		{typ: Int, want: "int"},
		{typ: Optional(String), want: "optional(string)"},
		{typ: Sequence(Float), want: "list(float)"},
		{typ: Mapping(String, Sequence(Int)), want: "map(string, list(int))"},
		{typ: Tuple(Int, Bool), want: "tuple([int, bool])"},
		{typ: Object(boxSchema{}), want: "Box"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.typ.FriendlyName())
		})
	}
}

func TestCoercionError_Message(t *testing.T) {
	_, err := Coerce("five", Int)
	require.Error(t, err)

	var ce *CoercionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, Int, ce.Type)
	assert.Equal(t, "five", ce.Value)
	assert.Contains(t, err.Error(), `cannot convert "five" to int`)
}

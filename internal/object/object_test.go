package object

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/specialistvlad/typegrid/internal/types"
	"github.com/specialistvlad/typegrid/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func definePoint(t *testing.T, opts ...Option) *Type {
	t.Helper()
	point, err := Define("Point", []FieldSpec{
		Required("x", types.Int),
		Required("y", types.Int),
	}, opts...)
	require.NoError(t, err)
	return point
}

func TestDefine_SchemaErrors(t *testing.T) {
	testCases := []struct {
		name    string
		typName string
		fields  []FieldSpec
		wantMsg string
	}{
		{
			name:    "missing type name",
			fields:  []FieldSpec{Required("x", types.Int)},
			wantMsg: "type name is required",
		},
		{
			name:    "duplicate field",
			typName: "T",
			fields:  []FieldSpec{Required("x", types.Int), Required("x", types.String)},
			wantMsg: "duplicate field",
		},
		{
			name:    "nil field type",
			typName: "T",
			fields:  []FieldSpec{{Name: "x"}},
			wantMsg: "field type is required",
		},
		{
			name:    "optional flag without optional type or default",
			typName: "T",
			fields:  []FieldSpec{{Name: "x", Type: types.Int, Optional: true}},
			wantMsg: "optional must be false",
		},
		{
			name:    "optional type marked required",
			typName: "T",
			fields:  []FieldSpec{{Name: "x", Type: types.Optional(types.Int)}},
			wantMsg: "optional must be true",
		},
		{
			name:    "default that does not convert",
			typName: "T",
			fields:  []FieldSpec{WithDefault("x", types.Int, "five")},
			wantMsg: "invalid default",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Define(tc.typName, tc.fields)
			require.Error(t, err)
			var se *SchemaError
			require.True(t, errors.As(err, &se))
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestConstruct_PositionalAndNamed(t *testing.T) {
	point := definePoint(t)

	p, err := point.New(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, p.Values())

	p, err = point.Construct(Args{Positional: []any{1}, Named: map[string]any{"y": "2"}})
	require.NoError(t, err)
	assert.Equal(t, 2, p.MustGet("y"))
	assert.Equal(t, "Point(x=1, y=2)", p.String())
}

func TestConstruct_Errors(t *testing.T) {
	point := definePoint(t)

	testCases := []struct {
		name    string
		args    Args
		problem Problem
		wantMsg string
	}{
		{
			name:    "missing field",
			args:    Args{Positional: []any{1}},
			problem: MissingFields,
			wantMsg: `Point: missing 1 required field: "y"`,
		},
		{
			name:    "missing fields",
			args:    Args{},
			problem: MissingFields,
			wantMsg: `Point: missing 2 required fields: "x" and "y"`,
		},
		{
			name:    "too many positional",
			args:    Args{Positional: []any{1, 2, 3}},
			problem: TooManyPositional,
			wantMsg: "Point: takes 2 positional arguments but 3 were given",
		},
		{
			name:    "unknown named",
			args:    Args{Positional: []any{1, 2}, Named: map[string]any{"z": 3}},
			problem: UnknownFields,
			wantMsg: `Point: unknown field "z"`,
		},
		{
			name:    "duplicate",
			args:    Args{Positional: []any{1, 2}, Named: map[string]any{"x": 3}},
			problem: DuplicateArgument,
			wantMsg: `Point: got multiple values for field "x"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inst, err := point.Construct(tc.args)
			require.Error(t, err)
			assert.Nil(t, inst)
			assert.True(t, errors.Is(err, ErrConstruction))

			var ce *ConstructionError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.problem, ce.Problem)
			assert.Equal(t, tc.wantMsg, err.Error())
		})
	}
}

func TestConstruct_CoercionFailureYieldsNothing(t *testing.T) {
	point := definePoint(t)

	inst, err := point.New(1, "two")
	require.Error(t, err)
	assert.Nil(t, inst)
	assert.True(t, errors.Is(err, types.ErrCoercion))

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "y", fe.Field)
}

func TestConstruct_Defaults(t *testing.T) {
	tagged, err := Define("Tagged", []FieldSpec{
		Required("name", types.String),
		WithDefault("tags", types.Sequence(types.String), []any{"a"}),
		WithDefault("note", types.Optional(types.String), nil),
		OptionalField("owner", types.String),
	})
	require.NoError(t, err)

	first, err := tagged.New("one")
	require.NoError(t, err)
	second, err := tagged.New("two")
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, first.MustGet("tags"), "defaults are normalized at define time")
	assert.Nil(t, first.MustGet("note"))
	assert.Nil(t, first.MustGet("owner"))

	first.MustGet("tags").([]string)[0] = "changed"
	assert.Equal(t, []string{"a"}, second.MustGet("tags"), "each instance gets its own copy of a default")
}

func TestStrict(t *testing.T) {
	point := definePoint(t, Strict())

	_, err := point.New(1, "2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrTypeMismatch))
	assert.Contains(t, err.Error(), "cannot assign value of type string to attribute of type int")

	p, err := point.New(1, 2)
	require.NoError(t, err)
	require.Error(t, p.Set("x", 1.5))
	assert.Equal(t, 1, p.MustGet("x"), "a failed assignment keeps the old value")
}

func TestSet(t *testing.T) {
	point := definePoint(t)
	p, err := point.New(1, 2)
	require.NoError(t, err)

	require.NoError(t, p.Set("x", "10"))
	assert.Equal(t, 10, p.MustGet("x"))

	err = p.Set("z", 1)
	assert.True(t, errors.Is(err, ErrUnknownField))

	_, err = p.Get("z")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestImmutable(t *testing.T) {
	point := definePoint(t, Immutable())
	p, err := point.New(1, 2)
	require.NoError(t, err)

	assert.True(t, errors.Is(p.Set("x", 3), ErrImmutable))
	assert.True(t, errors.Is(p.Assign(Args{Positional: []any{3, 4}}), ErrImmutable))
	assert.Equal(t, 1, p.MustGet("x"))
}

func TestAssign_AllOrNothing(t *testing.T) {
	point := definePoint(t)
	p, err := point.New(1, 2)
	require.NoError(t, err)

	require.Error(t, p.Assign(Args{Positional: []any{5, "bad"}}))
	assert.Equal(t, []any{1, 2}, p.Values())

	require.NoError(t, p.Assign(Args{Named: map[string]any{"x": 5, "y": 6}}))
	assert.Equal(t, []any{5, 6}, p.Values())
}

func TestNestedObjects(t *testing.T) {
	point := definePoint(t)
	segment, err := Define("Segment", []FieldSpec{
		Required("start", point.Descriptor()),
		Required("end", point.Descriptor()),
	})
	require.NoError(t, err)

	start, err := point.New(0, 0)
	require.NoError(t, err)

	s, err := segment.New(start, map[string]any{"x": "3", "y": 4})
	require.NoError(t, err)
	assert.Same(t, start, s.MustGet("start"), "instances of the field type are stored as is")

	end := s.MustGet("end").(*Instance)
	assert.Equal(t, 3, end.MustGet("x"))
	assert.Equal(t, "Segment(start=Point(x=0, y=0), end=Point(x=3, y=4))", s.String())

	assert.Equal(t, map[string]any{
		"start": map[string]any{"x": 0, "y": 0},
		"end":   map[string]any{"x": 3, "y": 4},
	}, s.AsMap())

	_, err = segment.New(start, map[string]any{"x": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstruction))
}

func TestEqualityAndHash(t *testing.T) {
	point := definePoint(t)
	other, err := Define("Other", []FieldSpec{
		Required("x", types.Int),
		Required("y", types.Int),
	})
	require.NoError(t, err)

	a, _ := point.New(1, 2)
	b, _ := point.New("1", 2.0)
	c, _ := point.New(1, 3)
	o, _ := other.New(1, 2)

	eq, err := a.Equal(b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.Equal(c)
	require.NoError(t, err)
	assert.False(t, eq)

	_, err = a.Equal(o)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotComparable))
	assert.Contains(t, err.Error(), "Point and Other")

	_, err = a.EqualValue(o)
	assert.True(t, errors.Is(err, ErrNotComparable))
	_, err = a.EqualValue("Point(x=1, y=2)")
	assert.True(t, errors.Is(err, ErrNotComparable))

	_, err = value.Equal([]any{a}, []any{o})
	assert.True(t, errors.Is(err, ErrNotComparable), "a nested mismatch is reported through containers")

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	hc, err := c.Hash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)
}

func TestOrdering(t *testing.T) {
	point := definePoint(t)
	other, err := Define("Other", []FieldSpec{Required("x", types.Int)})
	require.NoError(t, err)

	p := func(x, y int) *Instance {
		inst, err := point.New(x, y)
		require.NoError(t, err)
		return inst
	}

	less, err := p(1, 9).Less(p(2, 0))
	require.NoError(t, err)
	assert.True(t, less)

	c, err := p(1, 2).Compare(p(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = p(1, 2).Compare(p(1, 2))
	require.NoError(t, err)
	assert.Zero(t, c)

	o, err := other.New(1)
	require.NoError(t, err)
	_, err = p(1, 2).Compare(o)
	assert.True(t, errors.Is(err, ErrNotComparable))

	points := []*Instance{p(2, 1), p(1, 5), p(1, 2)}
	sort.Slice(points, func(i, j int) bool {
		less, _ := points[i].Less(points[j])
		return less
	})
	var got []string
	for _, pt := range points {
		got = append(got, pt.String())
	}
	assert.Equal(t, "Point(x=1, y=2) Point(x=1, y=5) Point(x=2, y=1)", strings.Join(got, " "))
}

func TestConcurrentSetAndGet(t *testing.T) {
	point := definePoint(t)
	p, err := point.New(0, 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, p.Set("x", fmt.Sprint(i)))
			_ = p.MustGet("x")
			_ = p.String()
		}(i)
	}
	wg.Wait()
	assert.IsType(t, 0, p.MustGet("x"))
}

// nonEmpty rejects anything but a non-empty string.
type nonEmpty struct{}

func (nonEmpty) Validate(v any) (any, error) {
	if s, ok := v.(string); !ok || s == "" {
		return nil, fmt.Errorf("value %s is empty", types.Describe(v))
	}
	return v, nil
}

func TestOptionalConstrainedField_AcceptsAbsentValue(t *testing.T) {
	line, err := Define("Line", []FieldSpec{
		OptionalField("label", types.String).Constrained(nonEmpty{}),
	})
	require.NoError(t, err)

	omitted, err := line.New()
	require.NoError(t, err)
	assert.Nil(t, omitted.MustGet("label"))

	explicit, err := line.New(nil)
	require.NoError(t, err)
	assert.Nil(t, explicit.MustGet("label"))

	named, err := line.NewNamed(map[string]any{"label": nil})
	require.NoError(t, err)
	assert.Nil(t, named.MustGet("label"))

	labelled, err := line.New("a")
	require.NoError(t, err)
	require.NoError(t, labelled.Set("label", nil))
	assert.Nil(t, labelled.MustGet("label"))

	_, err = line.New("")
	require.Error(t, err, "present values still pass through the constraint")
	assert.Error(t, labelled.Set("label", ""))
}

func TestConstructFrom_SliceIsSoleArgument(t *testing.T) {
	wrap, err := Define("Wrap", []FieldSpec{Required("items", types.Sequence(types.Any))})
	require.NoError(t, err)

	for _, in := range []any{[]any{1, 2}, []int{1, 2}} {
		got, err := types.Coerce(in, wrap.Descriptor())
		require.NoError(t, err, "input %#v", in)
		inst := got.(*Instance)
		assert.Equal(t, []any{1, 2}, inst.MustGet("items"))
	}
}

func TestInstanceMapKeys_UsePointerIdentity(t *testing.T) {
	point := definePoint(t)
	a, err := point.New(1, 2)
	require.NoError(t, err)
	b, err := point.New(1, 2)
	require.NoError(t, err)

	eq, err := a.Equal(b)
	require.NoError(t, err)
	require.True(t, eq)

	got, err := types.Coerce(map[*Instance]string{a: "a", b: "b"}, types.Mapping(point.Descriptor(), types.String))
	require.NoError(t, err)
	assert.Len(t, got, 2, "equal instances stay distinct keys")
}

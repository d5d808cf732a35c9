package typegrid_test

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/typegrid/internal/testutil"
	"github.com/specialistvlad/typegrid/pkg/typegrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_EndToEnd(t *testing.T) {
	coord, err := typegrid.Bounded(typegrid.Int, 0, 10)
	require.NoError(t, err)

	point, err := typegrid.Define("Point", []typegrid.FieldSpec{
		coord.Field("x"),
		typegrid.WithDefault("y", typegrid.Int, 0),
		typegrid.OptionalField("tags", typegrid.List(typegrid.String)),
	})
	require.NoError(t, err)

	p, err := point.New("3")
	require.NoError(t, err)
	assert.Equal(t, "Point(x=3, y=0, tags=null)", p.String())

	_, err = point.New(11)
	assert.True(t, errors.Is(err, typegrid.ErrOutOfBounds))

	q, err := point.NewNamed(map[string]any{"x": 3})
	require.NoError(t, err)
	eq, err := typegrid.Equal(p, q)
	require.NoError(t, err)
	assert.True(t, eq)

	shared := typegrid.Singleton(point)
	first, err := shared.New(1)
	require.NoError(t, err)
	second, err := shared.New(2)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestFacade_Load(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"types/point.hcl": "object \"Point\" {\n  field \"x\" { type = int }\n}\n",
	})
	ctx, logs := testutil.LoggerContext(t)

	decls, err := typegrid.Load(ctx, dir)
	require.NoError(t, err)
	point, ok := decls.Object("Point")
	require.True(t, ok)
	p, err := point.New(1)
	require.NoError(t, err)
	assert.Equal(t, "Point(x=1)", p.String())
	assert.Contains(t, logs.String(), "HCL declaration loader started.")

	_, err = typegrid.Load(context.Background(), t.TempDir())
	assert.Error(t, err)
}

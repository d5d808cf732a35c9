package app_test

import (
	"errors"
	"testing"

	"github.com/specialistvlad/typegrid/internal/app"
	"github.com/specialistvlad/typegrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointSchema = `
validator "Coordinate" {
  type = int
  min  = 0
  max  = 100
}

object "Point" {
  field "x" {
    type      = int
    validator = "Coordinate"
  }
  field "y" {
    type    = int
    default = 0
  }
}
`

func TestRun_AllValid(t *testing.T) {
	res := testutil.RunApp(t, app.Config{
		SchemaPath: "schema",
		InputPaths: []string{"data"},
	}, map[string]string{
		"schema/point.hcl": pointSchema,
		"data/a.yaml":      "x: 1\ny: 2\n",
		"data/b.json":      `{"x": "7"}`,
		"data/c.hcl":       "x = 3\n",
	})

	require.NoError(t, res.Err)
	assert.Contains(t, res.Output, "a.yaml: Point(x=1, y=2)")
	assert.Contains(t, res.Output, "b.json: Point(x=7, y=0)")
	assert.Contains(t, res.Output, "c.hcl: Point(x=3, y=0)")
	assert.Contains(t, res.LogOutput, "Documents loaded successfully.")
}

func TestRun_InvalidDocuments(t *testing.T) {
	res := testutil.RunApp(t, app.Config{
		SchemaPath: "schema",
		InputPaths: []string{"data/points.yaml"},
	}, map[string]string{
		"schema/point.hcl": pointSchema,
		"data/points.yaml": "x: 1\n---\nx: 500\n---\ny: 1\n",
	})

	require.Error(t, res.Err)
	assert.True(t, errors.Is(res.Err, app.ErrInvalidDocuments))
	assert.Contains(t, res.Err.Error(), "2 of 3 documents failed validation against Point")
	assert.Contains(t, res.Output, "OK   ")
	assert.Contains(t, res.Output, "points.yaml#2: ")
	assert.Contains(t, res.Output, "above the maximum allowed value of 100")
	assert.Contains(t, res.Output, `missing 1 required field: "x"`)
}

func TestRun_Strict(t *testing.T) {
	files := map[string]string{
		"schema/point.hcl": pointSchema,
		"data/a.json":      `{"x": "7"}`,
	}

	res := testutil.RunApp(t, app.Config{SchemaPath: "schema", InputPaths: []string{"data"}, Strict: true}, files)
	require.Error(t, res.Err)
	assert.Contains(t, res.Output, "FAIL ")
	assert.Contains(t, res.Output, "cannot assign value of type string to attribute of type int")
}

func TestRun_TypeSelection(t *testing.T) {
	twoTypes := pointSchema + `
object "Label" {
  field "text" { type = string }
}
`
	testCases := []struct {
		name     string
		typeName string
		wantErr  string
		wantOut  string
	}{
		{name: "ambiguous", wantErr: "several object types are declared, choose one with -type: Label, Point"},
		{name: "unknown", typeName: "Nope", wantErr: `object type "Nope" is not declared (declared: Label, Point)`},
		{name: "selected", typeName: "Label", wantOut: `Label(text="hi")`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := testutil.RunApp(t, app.Config{
				SchemaPath: "schema",
				InputPaths: []string{"data"},
				TypeName:   tc.typeName,
			}, map[string]string{
				"schema/types.hcl": twoTypes,
				"data/a.yaml":      "text: hi\n",
			})
			if tc.wantErr != "" {
				require.Error(t, res.Err)
				assert.Contains(t, res.Err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, res.Err)
			assert.Contains(t, res.Output, tc.wantOut)
		})
	}
}

func TestNewApp_StartupErrors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name: "invalid declarations",
			files: map[string]string{
				"schema/bad.hcl": "object \"A\" {\n  field \"x\" { type = Missing }\n}\n",
				"data/a.yaml":    "x: 1\n",
			},
			wantErr: "Unknown type",
		},
		{
			name: "validator mismatch",
			files: map[string]string{
				"schema/bad.hcl": `
validator "Short" {
  kind = "text"
  max  = 3
}
object "A" {
  field "x" {
    type      = int
    validator = "Short"
  }
}
`,
				"data/a.yaml": "x: 1\n",
			},
			wantErr: "registry validation failed",
		},
		{
			name: "no documents",
			files: map[string]string{
				"schema/point.hcl": pointSchema,
				"data/readme.txt":  "nothing here",
			},
			wantErr: "failed to load documents",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := testutil.RunApp(t, app.Config{SchemaPath: "schema", InputPaths: []string{"data"}}, tc.files)
			require.Error(t, res.Err)
			assert.Contains(t, res.Err.Error(), tc.wantErr)
		})
	}
}

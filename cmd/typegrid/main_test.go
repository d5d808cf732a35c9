package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_ValidatesDocuments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schema := writeFile(t, dir, "point.hcl", `
object "Point" {
  field "x" { type = int }
  field "y" { type = int }
}
`)
	good := writeFile(t, dir, "good.json", `{"x": 1, "y": 2}`)
	bad := writeFile(t, dir, "bad.yaml", "x: 1\n")

	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	require.NoError(t, run(out, logs, []string{"-schema", schema, good}))
	require.Contains(t, out.String(), "Point(x=1, y=2)")

	out.Reset()
	err := run(out, logs, []string{"-schema", schema, good, bad})
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 2 documents failed validation")
	require.Contains(t, out.String(), "FAIL "+bad)
}

func TestRun_DuplicateDeclarationsAcrossFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", "object \"P\" {\n  field \"x\" { type = int }\n}\n")
	writeFile(t, dir, "b.hcl", "object \"P\" {\n  field \"x\" { type = int }\n}\n")
	doc := writeFile(t, dir, "doc.yaml", "x: 1\n")

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-schema", dir, doc})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Duplicate object")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"-h"})
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

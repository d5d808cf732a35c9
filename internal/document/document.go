// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/typegrid/internal/ctxlog"
	"github.com/specialistvlad/typegrid/internal/fsutil"
	"github.com/specialistvlad/typegrid/internal/hcldecl"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a document file.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	HCL  Format = "hcl"
)

// Extensions lists the file extensions recognized when walking directories.
var Extensions = []string{".yaml", ".yml", ".json", ".hcl"}

// FormatOf infers the format of a file from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".hcl":
		return HCL, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q", filepath.Ext(path))
	}
}

// Document is one decoded data document.
type Document struct {
	// Source names the file, with a #N suffix for the Nth document of a
	// multi-document YAML stream.
	Source string
	Format Format
	Data   any
}

// Load reads every document found under paths. Directories are walked
// recursively; only files with a known extension are read from them.
func Load(ctx context.Context, paths ...string) ([]Document, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.Collect(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no documents found in %v", paths)
	}

	var docs []Document
	for _, file := range files {
		format, err := FormatOf(file)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", file, err)
		}
		parsed, err := Parse(file, format, data)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loaded document file.", "file", file, "format", format, "documents", len(parsed))
		docs = append(docs, parsed...)
	}
	return docs, nil
}

// Parse decodes data of the given format. source names the data in errors
// and in the returned documents.
func Parse(source string, format Format, data []byte) ([]Document, error) {
	switch format {
	case YAML, JSON:
		return parseYAML(source, format, data)
	case HCL:
		return parseHCL(source, data)
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
}

func parseYAML(source string, format Format, data []byte) ([]Document, error) {
	var values []any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s document %s: %w", format, source, err)
		}
		values = append(values, normalize(v))
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("document %s is empty", source)
	}

	docs := make([]Document, len(values))
	for i, v := range values {
		name := source
		if len(values) > 1 {
			name = fmt.Sprintf("%s#%d", source, i+1)
		}
		docs[i] = Document{Source: name, Format: format, Data: v}
	}
	return docs, nil
}

func parseHCL(source string, data []byte) ([]Document, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, source)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL document %s: %w", source, diags)
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read HCL document %s: %w", source, diags)
	}

	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate attribute %q in %s: %w", name, source, diags)
		}
		native, err := hcldecl.ToNative(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q in %s: %w", name, source, err)
		}
		out[name] = native
	}
	return []Document{{Source: source, Format: HCL, Data: out}}, nil
}

// normalize rewrites decoded sequences into []any and recurses into maps so
// that nested values share one representation.
func normalize(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(tv))
		for k, e := range tv {
			out[k] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}

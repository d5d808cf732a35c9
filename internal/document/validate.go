// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package document

import (
	"context"
	"fmt"

	"github.com/specialistvlad/typegrid/internal/ctxlog"
	"github.com/specialistvlad/typegrid/internal/object"
	"github.com/specialistvlad/typegrid/internal/types"
)

// Result is the outcome of validating one document.
type Result struct {
	Document Document
	// Instance is set when the document was valid.
	Instance *object.Instance
	Err      error
}

// OK reports whether the document was valid.
func (r Result) OK() bool { return r.Err == nil }

// String renders a one-line summary of the result.
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("FAIL %s: %v", r.Document.Source, r.Err)
	}
	return fmt.Sprintf("OK   %s: %s", r.Document.Source, r.Instance)
}

// Validate constructs an instance of t from the document's fields.
func Validate(ctx context.Context, t *object.Type, doc Document) Result {
	logger := ctxlog.FromContext(ctx)

	fields, ok := doc.Data.(map[string]any)
	if !ok {
		err := fmt.Errorf("document must be a mapping of field names, got %s", types.Describe(doc.Data))
		return Result{Document: doc, Err: err}
	}
	inst, err := t.NewNamed(fields)
	if err != nil {
		logger.Debug("Document rejected.", "source", doc.Source, "type", t.Name(), "error", err)
		return Result{Document: doc, Err: err}
	}
	logger.Debug("Document accepted.", "source", doc.Source, "type", t.Name())
	return Result{Document: doc, Instance: inst}
}

// ValidateAll validates every document in order.
func ValidateAll(ctx context.Context, t *object.Type, docs []Document) []Result {
	results := make([]Result, len(docs))
	for i, doc := range docs {
		results[i] = Validate(ctx, t, doc)
	}
	return results
}

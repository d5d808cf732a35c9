// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/typegrid/internal/ctxlog"
	"github.com/specialistvlad/typegrid/internal/document"
	"github.com/specialistvlad/typegrid/internal/hcldecl"
	"github.com/specialistvlad/typegrid/internal/object"
)

func (a *App) loadRegistry(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading declarations...", "schema_path", a.config.SchemaPath, "strict", a.config.Strict)

	var opts []hcldecl.LoaderOption
	if a.config.Strict {
		opts = append(opts, hcldecl.ForceStrict())
	}
	if err := a.registry.LoadDeclarations(ctx, []string{a.config.SchemaPath}, opts...); err != nil {
		return err
	}
	if err := a.registry.Validate(ctx); err != nil {
		return err
	}
	logger.Debug("Registry validation passed.")
	return nil
}

// targetType picks the object type documents are validated against.
func (a *App) targetType() (*object.Type, error) {
	if a.config.TypeName != "" {
		t, ok := a.registry.Object(a.config.TypeName)
		if !ok {
			return nil, fmt.Errorf("object type %q is not declared (declared: %s)", a.config.TypeName, strings.Join(a.registry.ObjectNames(), ", "))
		}
		return t, nil
	}

	names := a.registry.ObjectNames()
	switch len(names) {
	case 0:
		return nil, fmt.Errorf("no object types declared in %s", a.config.SchemaPath)
	case 1:
		t, _ := a.registry.Object(names[0])
		return t, nil
	default:
		return nil, fmt.Errorf("several object types are declared, choose one with -type: %s", strings.Join(names, ", "))
	}
}

func (a *App) loadDocuments(ctx context.Context) ([]document.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading documents...", "input_paths", a.config.InputPaths)

	docs, err := document.Load(ctx, a.config.InputPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	logger.Info("Documents loaded successfully.", "documents", len(docs))
	return docs, nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/typegrid/internal/ctxlog"
	"github.com/specialistvlad/typegrid/internal/hcldecl"
)

// LoadDeclarations loads HCL declarations from paths and registers them.
func (r *Registry) LoadDeclarations(ctx context.Context, paths []string, opts ...hcldecl.LoaderOption) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading declarations...", "paths", paths)

	decls, err := hcldecl.NewLoader(opts...).Load(ctx, paths...)
	if err != nil {
		return fmt.Errorf("failed to load declarations: %w", err)
	}
	r.PopulateFromDeclarations(decls)

	logger.Info("Registry loaded successfully.", "objects", len(decls.Objects), "validators", len(decls.Validators))
	return nil
}

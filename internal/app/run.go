// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/typegrid/internal/ctxlog"
	"github.com/specialistvlad/typegrid/internal/document"
)

// ErrInvalidDocuments is returned by Run when one or more documents fail
// validation.
var ErrInvalidDocuments = errors.New("invalid documents")

// Run validates every input document and prints one line per document.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	target, err := a.targetType()
	if err != nil {
		return err
	}
	docs, err := a.loadDocuments(ctx)
	if err != nil {
		return err
	}

	a.logger.Info("Validating documents.", "type", target.Name(), "documents", len(docs))
	failed := 0
	for _, res := range document.ValidateAll(ctx, target, docs) {
		if !res.OK() {
			failed++
		}
		fmt.Fprintln(a.outW, res.String())
	}

	a.logger.Debug("App.Run method finished.", "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d documents failed validation against %s", ErrInvalidDocuments, failed, len(docs), target.Name())
	}
	return nil
}

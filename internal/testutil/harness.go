// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package testutil provides shared helpers for package and integration tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/typegrid/internal/app"
	"github.com/specialistvlad/typegrid/internal/ctxlog"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// LoggerContext returns a context carrying a debug-level text logger that
// writes into the returned buffer.
func LoggerContext(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buf
}

// WriteFiles writes files, keyed by slash-separated relative path, under a
// fresh temporary directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// HarnessResult holds the outcomes of an application run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunApp writes files under a temporary root, then builds and runs the
// application with cfg. Relative SchemaPath and InputPaths in cfg are
// resolved against that root. A panic during startup or run is reported
// through HarnessResult.Err.
func RunApp(t *testing.T, cfg app.Config, files map[string]string) *HarnessResult {
	t.Helper()
	root := WriteFiles(t, files)

	cfg.SchemaPath = filepath.Join(root, filepath.FromSlash(cfg.SchemaPath))
	inputs := make([]string, len(cfg.InputPaths))
	for i, p := range cfg.InputPaths {
		inputs[i] = filepath.Join(root, filepath.FromSlash(p))
	}
	cfg.InputPaths = inputs
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	res := &HarnessResult{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Errorf("application panicked | %v", r)
			}
		}()
		a, err := app.NewApp(out, logs, config)
		if err != nil {
			res.Err = err
			return
		}
		res.App = a
		res.Err = a.Run(context.Background())
	}()

	res.Output = out.String()
	res.LogOutput = logs.String()
	if os.Getenv("TYPEGRID_TEST_LOGS") == "true" {
		t.Logf("--- APP LOGS ---\n%s", res.LogOutput)
	}
	return res
}

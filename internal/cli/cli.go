// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/typegrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("typegrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
TypeGrid - Validate data documents against declared object types.

Usage:
  typegrid [options] INPUT...

Arguments:
  INPUT
    A .yaml, .yml, .json, or .hcl document, or a directory of them.

Options:
`)
		flagSet.PrintDefaults()
	}

	schemaFlag := flagSet.String("schema", "", "Path to the .hcl declaration file or directory.")
	sFlag := flagSet.String("s", "", "Path to the .hcl declaration file or directory (shorthand).")
	typeFlag := flagSet.String("type", "", "Object type to validate against. Optional when only one type is declared.")
	strictFlag := flagSet.Bool("strict", false, "Reject values that would need conversion to the declared type.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No inputs provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	schema := *schemaFlag
	if schema == "" {
		schema = *sFlag
	}
	if schema == "" {
		return nil, false, &ExitError{Code: 2, Message: "missing declarations: pass -schema with a .hcl file or directory"}
	}

	config, err := app.NewConfig(app.Config{
		SchemaPath: schema,
		InputPaths: flagSet.Args(),
		TypeName:   *typeFlag,
		Strict:     *strictFlag,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

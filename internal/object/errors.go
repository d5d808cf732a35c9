// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package object

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/typegrid/internal/value"
)

var (
	// ErrConstruction matches every *ConstructionError.
	ErrConstruction = errors.New("construction failed")
	// ErrImmutable is returned when assigning to a field of an immutable type.
	ErrImmutable = errors.New("object type is immutable")
	// ErrUnknownField is returned by accessors given a name the type does not declare.
	ErrUnknownField = errors.New("unknown field")
	// ErrNotComparable is returned when comparing instances of different types.
	ErrNotComparable = value.ErrNotComparable
	// ErrUnhashable is returned when a field value has no content hash.
	ErrUnhashable = value.ErrUnhashable
)

// Problem classifies a ConstructionError.
type Problem int

const (
	MissingFields Problem = iota
	UnknownFields
	TooManyPositional
	DuplicateArgument
)

// ConstructionError reports an argument list that does not bind to the
// type's fields.
type ConstructionError struct {
	TypeName string
	Problem  Problem
	Fields   []string
	Given    int
	Max      int
}

func (e *ConstructionError) Error() string {
	switch e.Problem {
	case MissingFields:
		noun := "field"
		if len(e.Fields) > 1 {
			noun = "fields"
		}
		return fmt.Sprintf("%s: missing %d required %s: %s", e.TypeName, len(e.Fields), noun, quoteList(e.Fields))
	case UnknownFields:
		return fmt.Sprintf("%s: unknown field %s", e.TypeName, quoteList(e.Fields))
	case TooManyPositional:
		return fmt.Sprintf("%s: takes %d positional arguments but %d were given", e.TypeName, e.Max, e.Given)
	case DuplicateArgument:
		return fmt.Sprintf("%s: got multiple values for field %s", e.TypeName, quoteList(e.Fields))
	default:
		return e.TypeName + ": invalid arguments"
	}
}

func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

// SchemaError reports an invalid field list passed to Define.
type SchemaError struct {
	TypeName string
	Field    string
	Err      error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("object type %q: %v", e.TypeName, e.Err)
	}
	return fmt.Sprintf("object type %q, field %q: %v", e.TypeName, e.Field, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// FieldError attaches the type and field name to an assignment failure.
type FieldError struct {
	TypeName string
	Field    string
	Err      error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.TypeName, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// quoteList renders names as 'a', 'b' and 'c'.
func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + " and " + quoted[len(quoted)-1]
	}
}

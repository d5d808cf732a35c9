// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file parses HCL type expressions (e.g. `int`, `list(string)`,
// `map(string, Point)`) into type descriptors.
package hcldecl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/typegrid/internal/ctxlog"
	"github.com/specialistvlad/typegrid/internal/types"
)

// keywords maps primitive type keywords to their descriptors.
var keywords = map[string]types.Type{
	"string": types.String,
	"int":    types.Int,
	"float":  types.Float,
	"number": types.Float,
	"bool":   types.Bool,
	"any":    types.Any,
}

// isKeyword reports whether name is reserved for a primitive type or a type
// constructor and so cannot name an object.
func isKeyword(name string) bool {
	if _, ok := keywords[name]; ok {
		return true
	}
	switch name {
	case "optional", "list", "map", "tuple":
		return true
	}
	return false
}

// resolver looks up an object type by name.
type resolver func(name string) (types.Type, bool)

// parseType converts an HCL type expression into a descriptor. Bare
// identifiers that are not keywords are resolved as object references.
func parseType(ctx context.Context, expr hcl.Expression, resolve resolver) (types.Type, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return nil, typeDiag(expr, "Invalid type specification", "A type must be a keyword, a type constructor call, or the name of a declared object.")
		}
		name := v.Traversal.RootName()
		if t, ok := keywords[name]; ok {
			logger.Debug("Parsed primitive type keyword.", "keyword", name)
			return t, nil
		}
		if t, ok := resolve(name); ok {
			logger.Debug("Resolved object type reference.", "object", name)
			return t, nil
		}
		return nil, typeDiag(expr, "Unknown type", fmt.Sprintf("%q is neither a type keyword nor a declared object.", name))

	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type constructor.", "call", v.Name, "args", len(v.Args))
		switch v.Name {
		case "optional", "list":
			if len(v.Args) != 1 {
				return nil, typeDiag(expr, "Invalid type constructor", fmt.Sprintf("%s() takes exactly one argument, got %d.", v.Name, len(v.Args)))
			}
			inner, diags := parseType(ctx, v.Args[0], resolve)
			if diags.HasErrors() {
				return nil, diags
			}
			if v.Name == "optional" {
				return types.Optional(inner), nil
			}
			return types.Sequence(inner), nil

		case "map":
			switch len(v.Args) {
			case 1:
				val, diags := parseType(ctx, v.Args[0], resolve)
				if diags.HasErrors() {
					return nil, diags
				}
				return types.Mapping(types.String, val), nil
			case 2:
				key, diags := parseType(ctx, v.Args[0], resolve)
				if diags.HasErrors() {
					return nil, diags
				}
				val, diags := parseType(ctx, v.Args[1], resolve)
				if diags.HasErrors() {
					return nil, diags
				}
				return types.Mapping(key, val), nil
			default:
				return nil, typeDiag(expr, "Invalid type constructor", fmt.Sprintf("map() takes one or two arguments, got %d.", len(v.Args)))
			}

		case "tuple":
			if len(v.Args) != 1 {
				return nil, typeDiag(expr, "Invalid type constructor", "tuple() takes a single list of element types, like tuple([string, int]).")
			}
			list, ok := v.Args[0].(*hclsyntax.TupleConsExpr)
			if !ok {
				return nil, typeDiag(v.Args[0], "Invalid type constructor", fmt.Sprintf("The argument to tuple() must be a list of types, got %T.", v.Args[0]))
			}
			elems := make([]types.Type, 0, len(list.Exprs))
			for _, e := range list.Exprs {
				t, diags := parseType(ctx, e, resolve)
				if diags.HasErrors() {
					return nil, diags
				}
				elems = append(elems, t)
			}
			return types.Tuple(elems...), nil

		default:
			return nil, typeDiag(expr, "Unknown type constructor", fmt.Sprintf("%q is not a type constructor. Supported constructors are optional, list, map, and tuple.", v.Name))
		}

	default:
		return nil, typeDiag(expr, "Unsupported type expression", fmt.Sprintf("Expressions of kind %T cannot describe a type.", expr))
	}
}

// typeRefs returns the object names referenced by a type expression, in
// source order. Keywords and malformed parts are skipped; parseType reports
// them later.
func typeRefs(expr hcl.Expression) []string {
	var refs []string
	var walk func(e hcl.Expression)
	walk = func(e hcl.Expression) {
		switch v := e.(type) {
		case *hclsyntax.ScopeTraversalExpr:
			if len(v.Traversal) == 1 {
				if name := v.Traversal.RootName(); !isKeyword(name) {
					refs = append(refs, name)
				}
			}
		case *hclsyntax.FunctionCallExpr:
			for _, arg := range v.Args {
				walk(arg)
			}
		case *hclsyntax.TupleConsExpr:
			for _, item := range v.Exprs {
				walk(item)
			}
		}
	}
	walk(expr)
	return refs
}

func typeDiag(expr hcl.Expression, summary, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  expr.Range().Ptr(),
	}}
}

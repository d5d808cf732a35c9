// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package hcldecl

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/typegrid/internal/bounds"
	"github.com/specialistvlad/typegrid/internal/ctxlog"
	"github.com/specialistvlad/typegrid/internal/dag"
	"github.com/specialistvlad/typegrid/internal/fsutil"
	"github.com/specialistvlad/typegrid/internal/object"
	"github.com/specialistvlad/typegrid/internal/types"
)

// ObjectDecl is one declared object type.
type ObjectDecl struct {
	Name      string
	File      string
	Strict    bool
	Immutable bool
	// Fields are in declaration order. Defaults are reported explicitly
	// through FieldSpec.HasDefault.
	Fields []object.FieldSpec
	// Type is the generated type built from Fields.
	Type *object.Type
}

// ValidatorDecl is one declared named validator.
type ValidatorDecl struct {
	Name      string
	File      string
	Validator *bounds.Validator
}

// Declarations is the result of loading one or more declaration files.
// Objects are ordered so that every referenced type precedes its users.
type Declarations struct {
	Objects    []*ObjectDecl
	Validators []*ValidatorDecl
}

// Object returns the generated type declared under name.
func (d *Declarations) Object(name string) (*object.Type, bool) {
	for _, o := range d.Objects {
		if o.Name == name {
			return o.Type, true
		}
	}
	return nil, false
}

// Validator returns the validator declared under name.
func (d *Declarations) Validator(name string) (*bounds.Validator, bool) {
	for _, v := range d.Validators {
		if v.Name == name {
			return v.Validator, true
		}
	}
	return nil, false
}

// Loader reads `object` and `validator` blocks from HCL files.
type Loader struct {
	parser *hclparse.Parser
	strict bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// ForceStrict makes every loaded object strict regardless of its own
// `strict` attribute.
func ForceStrict() LoaderOption {
	return func(l *Loader) { l.strict = true }
}

// NewLoader creates a new HCL declaration loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{parser: hclparse.NewParser()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type parsedFile struct {
	name string
	root fileRoot
}

// Load parses every .hcl file found under paths and builds the declared
// types. Directories are walked recursively.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Declarations, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL declaration loader started.", "path_count", len(paths))

	files, err := fsutil.Collect(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl declaration files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parsed := make([]*parsedFile, 0, len(files))
	for _, file := range files {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		pf, err := decodeFile(file, hclFile)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, pf)
	}
	return l.build(ctx, parsed)
}

// Parse builds declarations from in-memory HCL source.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*Declarations, error) {
	hclFile, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	pf, err := decodeFile(filename, hclFile)
	if err != nil {
		return nil, err
	}
	return l.build(ctx, []*parsedFile{pf})
}

func decodeFile(name string, f *hcl.File) (*parsedFile, error) {
	pf := &parsedFile{name: name}
	if diags := gohcl.DecodeBody(f.Body, nil, &pf.root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", name, diags)
	}
	return pf, nil
}

// build turns decoded blocks into validators and object types. Validators
// come first since fields refer to them; objects are built in dependency
// order.
func (l *Loader) build(ctx context.Context, files []*parsedFile) (*Declarations, error) {
	logger := ctxlog.FromContext(ctx)
	decls := &Declarations{}
	var diags hcl.Diagnostics

	validators := make(map[string]*bounds.Validator)
	for _, pf := range files {
		for _, vb := range pf.root.Validators {
			if _, dup := validators[vb.Name]; dup {
				diags = append(diags, declDiag("Duplicate validator", fmt.Sprintf("Validator %q is declared more than once (again in %s).", vb.Name, pf.name)))
				continue
			}
			v, vdiags := buildValidator(ctx, vb)
			diags = append(diags, vdiags...)
			if vdiags.HasErrors() {
				continue
			}
			validators[vb.Name] = v
			decls.Validators = append(decls.Validators, &ValidatorDecl{Name: vb.Name, File: pf.name, Validator: v})
			logger.Debug("Declared validator.", "validator", vb.Name, "repr", v.String())
		}
	}

	type pending struct {
		file  string
		block *objectBlock
	}
	blocks := make(map[string]pending)
	var names []string
	graph := dag.New()
	for _, pf := range files {
		for _, ob := range pf.root.Objects {
			if isKeyword(ob.Name) {
				diags = append(diags, declDiag("Reserved object name", fmt.Sprintf("%q is a type keyword and cannot name an object.", ob.Name)))
				continue
			}
			if _, dup := blocks[ob.Name]; dup {
				diags = append(diags, declDiag("Duplicate object", fmt.Sprintf("Object %q is declared more than once (again in %s).", ob.Name, pf.name)))
				continue
			}
			blocks[ob.Name] = pending{file: pf.name, block: ob}
			names = append(names, ob.Name)
			graph.AddNode(ob.Name)
		}
	}
	for _, name := range names {
		for _, fb := range blocks[name].block.Fields {
			for _, ref := range typeRefs(fb.Type) {
				if !graph.HasNode(ref) {
					continue
				}
				if err := graph.AddEdge(ref, name); err != nil {
					diags = append(diags, &hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Self-referential object",
						Detail:   fmt.Sprintf("Field %q of object %q refers to its own type.", fb.Name, name),
						Subject:  fb.Type.Range().Ptr(),
					})
				}
			}
		}
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid declarations: %w", diags)
	}

	order, err := graph.Order()
	if err != nil {
		if errors.Is(err, dag.ErrCycle) {
			return nil, fmt.Errorf("invalid declarations: object references form a cycle: %w", err)
		}
		return nil, err
	}

	defined := make(map[string]*object.Type, len(order))
	resolve := func(name string) (types.Type, bool) {
		t, ok := defined[name]
		if !ok {
			return nil, false
		}
		return t.Descriptor(), true
	}

	for _, name := range order {
		p := blocks[name]
		decl, odiags := buildObject(ctx, p.block, l.strict, resolve, validators)
		diags = append(diags, odiags...)
		if odiags.HasErrors() {
			continue
		}
		decl.File = p.file
		defined[name] = decl.Type
		decls.Objects = append(decls.Objects, decl)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid declarations: %w", diags)
	}

	logger.Debug("HCL declarations loaded.", "objects", len(decls.Objects), "validators", len(decls.Validators))
	return decls, nil
}

func buildObject(ctx context.Context, ob *objectBlock, forceStrict bool, resolve resolver, validators map[string]*bounds.Validator) (*ObjectDecl, hcl.Diagnostics) {
	ctx, logger := ctxlog.With(ctx, "object", ob.Name)

	decl := &ObjectDecl{
		Name:      ob.Name,
		Strict:    forceStrict || (ob.Strict != nil && *ob.Strict),
		Immutable: ob.Immutable != nil && *ob.Immutable,
	}

	var diags hcl.Diagnostics
	for _, fb := range ob.Fields {
		spec, fdiags := buildField(ctx, fb, resolve, validators)
		diags = append(diags, fdiags...)
		if !fdiags.HasErrors() {
			decl.Fields = append(decl.Fields, spec)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	opts := []object.Option{object.WithLogger(logger)}
	if decl.Strict {
		opts = append(opts, object.Strict())
	}
	if decl.Immutable {
		opts = append(opts, object.Immutable())
	}
	t, err := object.Define(ob.Name, decl.Fields, opts...)
	if err != nil {
		return nil, append(diags, declDiag("Invalid object", err.Error()))
	}
	decl.Type = t
	return decl, nil
}

func buildField(ctx context.Context, fb *fieldBlock, resolve resolver, validators map[string]*bounds.Validator) (object.FieldSpec, hcl.Diagnostics) {
	t, diags := parseType(ctx, fb.Type, resolve)
	if diags.HasErrors() {
		return object.FieldSpec{}, diags
	}
	spec := object.FieldSpec{Name: fb.Name, Type: t}

	if isExprDefined(ctx, fb.Default, "default") {
		val, vdiags := fb.Default.Value(nil)
		if vdiags.HasErrors() {
			return object.FieldSpec{}, vdiags
		}
		def, err := ToNative(val)
		if err != nil {
			return object.FieldSpec{}, exprDiag(fb.Default, "Invalid default value", err.Error())
		}
		spec.Default = def
		spec.HasDefault = true
	}
	spec.Optional = types.IsOptional(t) || spec.HasDefault

	if fb.Validator != nil {
		v, ok := validators[*fb.Validator]
		if !ok {
			return object.FieldSpec{}, exprDiag(fb.Type, "Unknown validator", fmt.Sprintf("Field %q refers to validator %q, which is not declared.", fb.Name, *fb.Validator))
		}
		spec.Constraint = v
	}
	return spec, nil
}

func buildValidator(ctx context.Context, vb *validatorBlock) (*bounds.Validator, hcl.Diagnostics) {
	kind := "range"
	if vb.Kind != nil {
		kind = *vb.Kind
	}

	lower, diags := boundValue(ctx, vb.Min, "min")
	if diags.HasErrors() {
		return nil, diags
	}
	upper, diags := boundValue(ctx, vb.Max, "max")
	if diags.HasErrors() {
		return nil, diags
	}

	var opts []bounds.Option
	if vb.Strict != nil && *vb.Strict {
		opts = append(opts, bounds.Strict())
	}

	// Validator types may only use keywords and constructors.
	noObjects := func(string) (types.Type, bool) { return nil, false }
	base := func() (types.Type, hcl.Diagnostics) {
		if !isExprDefined(ctx, vb.Type, "type") {
			return nil, hcl.Diagnostics{declDiag("Missing validator type", fmt.Sprintf("Validator %q of kind %q needs a type.", vb.Name, kind))}
		}
		return parseType(ctx, vb.Type, noObjects)
	}

	var (
		v   *bounds.Validator
		err error
	)
	switch kind {
	case "range":
		t, diags := base()
		if diags.HasErrors() {
			return nil, diags
		}
		v, err = bounds.New(t, lower, upper, opts...)
	case "length":
		t, diags := base()
		if diags.HasErrors() {
			return nil, diags
		}
		v, err = bounds.Length(t, lower, upper, opts...)
	case "text":
		v, err = bounds.Text(lower, upper, opts...)
	case "nonempty":
		v = bounds.NonEmptyText()
	default:
		return nil, hcl.Diagnostics{declDiag("Unknown validator kind", fmt.Sprintf("Validator %q has kind %q; expected range, length, text, or nonempty.", vb.Name, kind))}
	}
	if err != nil {
		return nil, hcl.Diagnostics{declDiag("Invalid validator", fmt.Sprintf("Validator %q: %v", vb.Name, err))}
	}
	return v, nil
}

func boundValue(ctx context.Context, expr hcl.Expression, name string) (any, hcl.Diagnostics) {
	if !isExprDefined(ctx, expr, name) {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	v, err := ToNative(val)
	if err != nil {
		return nil, exprDiag(expr, "Invalid bound", err.Error())
	}
	return v, nil
}

// isExprDefined checks if an HCL expression was actually present in the
// source. gohcl populates omitted optional expression fields with zero-width
// placeholders, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", r.String(),
		"is_defined", defined,
	)
	return defined
}

func declDiag(summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{Severity: hcl.DiagError, Summary: summary, Detail: detail}
}

func exprDiag(expr hcl.Expression, summary, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  expr.Range().Ptr(),
	}}
}

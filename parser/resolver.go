package parser

import (
	"cmp"
	"go/token"
	gotypes "go/types"
	"slices"
	"strings"

	"golang.org/x/mod/module"

	"github.com/pablor21/enumclass/annotations"
	"github.com/pablor21/enumclass/config"
	"github.com/pablor21/enumclass/errors"
	"github.com/pablor21/enumclass/logger"
	"github.com/pablor21/enumclass/types"
	"github.com/pablor21/enumclass/utils"
)

// Resolver confirms the EnumerationClass annotation on scanned declarations, resolves
// their members with go/types and applies argument defaults.
type Resolver struct {
	specs  *annotations.AnnotationSpecs
	spec   *annotations.AnnotationSpec
	suffix string
	logger logger.Logger
}

// NewResolver returns a resolver whose registry always holds the EnumerationClass
// definition, extended with the configured aliases.
func NewResolver(cfg *config.Config, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNopLogger()
	}
	specs := annotations.EnumerationSpecs()
	spec := specs.GetAnnotationSpecByName(annotations.EnumerationClass)
	spec.Aliases = append(spec.Aliases, cfg.Annotation.Aliases...)

	return &Resolver{
		specs:  specs,
		spec:   spec,
		suffix: cfg.Annotation.ClassSuffix,
		logger: log,
	}
}

// Specs returns the annotation registry.
func (r *Resolver) Specs() *annotations.AnnotationSpecs {
	return r.specs
}

// Resolve returns nil without diagnostics when decl does not carry the annotation.
// On error diagnostics the declaration is skipped and nil is returned.
func (r *Resolver) Resolve(pkg *Package, decl *types.EnumerationDeclaration) (*types.ResolvedDeclaration, []types.Diagnostic) {
	var matched []annotations.Annotation
	for _, ann := range decl.Annotations {
		if r.spec.Matches(ann.Name) {
			matched = append(matched, ann)
		}
	}
	if len(matched) == 0 {
		r.logger.Debug("skipping type without enumeration annotation", "type", decl.QualifiedName())
		return nil, nil
	}

	name := decl.QualifiedName()
	pos := decl.Position
	var diags []types.Diagnostic
	if len(matched) > 1 && !r.spec.Multiple {
		diags = append(diags, types.Warnf(pos, name, "@%s appears %d times on %s; only the first is used", r.spec.Name, len(matched), decl.Name))
	}
	ann := matched[0]
	if ann.Pos.IsValid() {
		pos = pkg.Fset.Position(ann.Pos)
	}

	named, err := r.namedType(pkg, decl)
	if err != nil {
		return nil, append(diags, types.Errorf(decl.Position, name, "%v", err))
	}

	decl.Members = r.members(pkg, named)
	if len(decl.Members) == 0 {
		diags = append(diags, types.Warnf(decl.Position, name, "%s has no constants; its enumeration class will be empty", decl.Name))
	}

	args, argDiags := r.arguments(ann, pos, name)
	diags = append(diags, argDiags...)
	if hasErrors(argDiags) {
		return nil, diags
	}

	resolved := &types.ResolvedDeclaration{
		Declaration: decl,
		Annotation:  ann,
		Arguments:   args,
		ClassName:   utils.DerefPtr(args.ClassName, decl.Name+r.suffix),
		Namespace:   utils.DerefPtr(args.Namespace, decl.PackagePath),
	}

	if d, ok := r.validate(resolved, pos); !ok {
		return nil, append(diags, d)
	}
	return resolved, diags
}

// ResolveAll resolves every declaration against its package.
func (r *Resolver) ResolveAll(pkgs []*Package, decls []*types.EnumerationDeclaration) ([]*types.ResolvedDeclaration, []types.Diagnostic) {
	byPath := make(map[string]*Package, len(pkgs))
	for _, p := range pkgs {
		byPath[p.PkgPath] = p
	}

	var out []*types.ResolvedDeclaration
	var diags []types.Diagnostic
	for _, decl := range decls {
		pkg, ok := byPath[decl.PackagePath]
		if !ok {
			diags = append(diags, types.Errorf(decl.Position, decl.QualifiedName(), "package %s was not loaded", decl.PackagePath))
			continue
		}
		rd, ds := r.Resolve(pkg, decl)
		diags = append(diags, ds...)
		if rd != nil {
			out = append(out, rd)
		}
	}
	return out, diags
}

func (r *Resolver) namedType(pkg *Package, decl *types.EnumerationDeclaration) (*gotypes.Named, error) {
	if pkg.TypesInfo == nil || decl.TypeSpec == nil {
		return nil, errors.Newf("cannot resolve type %s: no type information", decl.Name)
	}
	obj := pkg.TypesInfo.Defs[decl.TypeSpec.Name]
	tn, ok := obj.(*gotypes.TypeName)
	if !ok || tn == nil {
		return nil, errors.Newf("cannot resolve type %s", decl.Name)
	}
	named, ok := tn.Type().(*gotypes.Named)
	if !ok {
		return nil, errors.Newf("%s is not a defined type", decl.Name)
	}
	basic, ok := named.Underlying().(*gotypes.Basic)
	if !ok || basic.Info()&(gotypes.IsInteger|gotypes.IsString) == 0 {
		return nil, errors.Newf("%s is not an enumeration: underlying type %s is not an integer or string type", decl.Name, named.Underlying())
	}
	return named, nil
}

// members returns the package constants of type named in declaration order.
func (r *Resolver) members(pkg *Package, named *gotypes.Named) []types.Member {
	scope := pkg.Types.Scope()
	var members []types.Member
	for _, n := range scope.Names() {
		c, ok := scope.Lookup(n).(*gotypes.Const)
		if !ok || c.Name() == "_" || !gotypes.Identical(c.Type(), named) {
			continue
		}
		members = append(members, types.Member{
			Name:     c.Name(),
			Exported: c.Exported(),
			Position: pkg.Fset.Position(c.Pos()),
		})
	}
	slices.SortFunc(members, func(a, b types.Member) int {
		return cmp.Or(
			strings.Compare(a.Position.Filename, b.Position.Filename),
			cmp.Compare(a.Position.Offset, b.Position.Offset),
		)
	})
	return members
}

func (r *Resolver) arguments(ann annotations.Annotation, pos token.Position, name string) (types.AnnotationArguments, []types.Diagnostic) {
	var args types.AnnotationArguments
	var diags []types.Diagnostic

	set := func(param, value string) {
		switch param {
		case annotations.ClassParam:
			args.ClassName = utils.Ptr(value)
		case annotations.NamespaceParam:
			args.Namespace = utils.Ptr(value)
		}
	}

	if len(ann.Args) > len(r.spec.Params) {
		diags = append(diags, types.Errorf(pos, name, "@%s takes at most %d positional arguments, got %d", r.spec.Name, len(r.spec.Params), len(ann.Args)))
		return args, diags
	}
	for i, arg := range ann.Args {
		if arg.IsNull() {
			continue
		}
		set(r.spec.Params[i].Name, arg.Value)
	}

	for _, key := range ann.NamedParams() {
		param := r.spec.GetParam(key)
		if param == nil {
			diags = append(diags, types.Errorf(pos, name, "@%s has no parameter %q", r.spec.Name, key))
			continue
		}
		value := strings.TrimSpace(ann.Params[key])
		if value == "" || value == "nil" || value == "null" {
			continue
		}
		set(param.Name, value)
	}
	return args, diags
}

// validate checks the class name and namespace on their own. Collisions with other
// declarations depend on the target package and are checked when generating.
func (r *Resolver) validate(rd *types.ResolvedDeclaration, pos token.Position) (types.Diagnostic, bool) {
	name := rd.Declaration.QualifiedName()

	if !token.IsIdentifier(rd.ClassName) {
		return types.Errorf(pos, name, "class name %q is not a valid Go identifier", rd.ClassName), false
	}
	if err := module.CheckImportPath(rd.Namespace); err != nil {
		return types.Errorf(pos, name, "namespace %q is not a valid import path: %v", rd.Namespace, err), false
	}
	return types.Diagnostic{}, true
}

func hasErrors(diags []types.Diagnostic) bool {
	return slices.ContainsFunc(diags, func(d types.Diagnostic) bool {
		return d.Severity == types.SeverityError
	})
}

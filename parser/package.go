package parser

import (
	"go/ast"
	"go/token"
	gotypes "go/types"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/pablor21/enumclass/types"
	"github.com/pablor21/enumclass/utils"
)

// Package is a type-checked package ready for scanning.
type Package struct {
	PkgPath   string
	Name      string
	Dir       string
	Fset      *token.FileSet
	Syntax    []*ast.File
	Types     *gotypes.Package
	TypesInfo *gotypes.Info
	// ModulePath and ModuleDir are empty outside a module.
	ModulePath string
	ModuleDir  string
}

// FileName returns the name of the file holding f.
func (p *Package) FileName(f *ast.File) string {
	return p.Fset.Position(f.Package).Filename
}

// Files returns the syntax trees ordered by file name.
func (p *Package) Files() []*ast.File {
	files := slices.Clone(p.Syntax)
	slices.SortStableFunc(files, func(a, b *ast.File) int {
		return strings.Compare(p.FileName(a), p.FileName(b))
	})
	return files
}

// FromPackages converts loaded packages, ordered by import path. Test variants replace
// the plain package when they carry more files; synthesized test mains are dropped.
// Load and type errors are returned as warnings.
func FromPackages(pkgs []*packages.Package) ([]*Package, []types.Diagnostic) {
	var diags []types.Diagnostic
	byPath := map[string]*packages.Package{}

	for _, p := range pkgs {
		for _, e := range p.Errors {
			diags = append(diags, types.Diagnostic{
				Severity:    types.SeverityWarning,
				Declaration: p.PkgPath,
				Message:     e.Error(),
			})
		}
	}

	for _, p := range pkgs {
		if p.Types == nil || p.TypesInfo == nil || strings.HasSuffix(p.PkgPath, ".test") {
			continue
		}
		if prev, ok := byPath[p.PkgPath]; ok && len(prev.Syntax) >= len(p.Syntax) {
			continue
		}
		byPath[p.PkgPath] = p
	}

	out := make([]*Package, 0, len(byPath))
	for _, p := range byPath {
		out = append(out, convert(p))
	}
	slices.SortFunc(out, func(a, b *Package) int { return strings.Compare(a.PkgPath, b.PkgPath) })
	return out, diags
}

func convert(p *packages.Package) *Package {
	pkg := &Package{
		PkgPath:   utils.GetPackageFullPath(p),
		Name:      p.Name,
		Fset:      p.Fset,
		Syntax:    p.Syntax,
		Types:     p.Types,
		TypesInfo: p.TypesInfo,
	}
	if len(p.GoFiles) > 0 {
		pkg.Dir = filepath.Dir(p.GoFiles[0])
	} else if len(p.Syntax) > 0 {
		pkg.Dir = filepath.Dir(pkg.FileName(p.Syntax[0]))
	}
	if p.Module != nil {
		pkg.ModulePath = p.Module.Path
		pkg.ModuleDir = p.Module.Dir
	}
	return pkg
}

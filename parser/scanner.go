package parser

import (
	"go/ast"

	"github.com/pablor21/enumclass/annotations"
	"github.com/pablor21/enumclass/logger"
	"github.com/pablor21/enumclass/types"
)

// Scanner finds annotated enumeration declarations. It is purely syntactic: any
// annotation qualifies, and the resolver decides later which ones are relevant.
type Scanner struct {
	logger logger.Logger
}

func NewScanner(log logger.Logger) *Scanner {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Scanner{logger: log}
}

// ScanPackages scans pkgs in order.
func (s *Scanner) ScanPackages(pkgs []*Package) []*types.EnumerationDeclaration {
	var out []*types.EnumerationDeclaration
	for _, pkg := range pkgs {
		out = append(out, s.ScanPackage(pkg)...)
	}
	return out
}

// ScanPackage scans the package files in file-name order.
func (s *Scanner) ScanPackage(pkg *Package) []*types.EnumerationDeclaration {
	var out []*types.EnumerationDeclaration
	for _, file := range pkg.Files() {
		out = append(out, s.ScanFile(pkg, file)...)
	}
	s.logger.Debug("scanned package", "package", pkg.PkgPath, "candidates", len(out))
	return out
}

// ScanFile returns the candidates of one file in document order.
func (s *Scanner) ScanFile(pkg *Package, file *ast.File) []*types.EnumerationDeclaration {
	var out []*types.EnumerationDeclaration
	var stack []ast.Node

	ast.Inspect(file, func(n ast.Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]
			return false
		}
		if ts, ok := n.(*ast.TypeSpec); ok && !insideFunc(stack) {
			var gen *ast.GenDecl
			if len(stack) > 0 {
				gen, _ = stack[len(stack)-1].(*ast.GenDecl)
			}
			if decl := s.candidate(pkg, file, gen, ts); decl != nil {
				out = append(out, decl)
			}
		}
		stack = append(stack, n)
		return true
	})

	return out
}

func (s *Scanner) candidate(pkg *Package, file *ast.File, gen *ast.GenDecl, ts *ast.TypeSpec) *types.EnumerationDeclaration {
	if ts.Assign.IsValid() || (ts.TypeParams != nil && len(ts.TypeParams.List) > 0) {
		return nil
	}
	switch ts.Type.(type) {
	case *ast.Ident, *ast.SelectorExpr:
	default:
		return nil
	}

	groups := []*ast.CommentGroup{ts.Doc, ts.Comment}
	if gen != nil && (!gen.Lparen.IsValid() || len(gen.Specs) == 1) {
		groups = append([]*ast.CommentGroup{gen.Doc}, groups...)
	}
	anns := annotations.ParseAnnotations(groups...)
	if len(anns) == 0 {
		return nil
	}

	return &types.EnumerationDeclaration{
		Name:        ts.Name.Name,
		PackagePath: pkg.PkgPath,
		PackageName: pkg.Name,
		Dir:         pkg.Dir,
		Annotations: anns,
		Position:    pkg.Fset.Position(ts.Name.Pos()),
		TypeSpec:    ts,
		GenDecl:     gen,
		File:        file,
	}
}

func insideFunc(stack []ast.Node) bool {
	for _, n := range stack {
		switch n.(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			return true
		}
	}
	return false
}

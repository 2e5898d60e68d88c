package parser

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	gotypes "go/types"
	"path/filepath"
	"slices"
	"testing"
)

// checkPackage parses and type-checks in-memory sources as one package.
func checkPackage(t *testing.T, pkgPath string, files map[string]string) *Package {
	t.Helper()

	fset := token.NewFileSet()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	dir := filepath.Join("/src", filepath.FromSlash(pkgPath))
	var syntax []*ast.File
	for _, name := range names {
		f, err := goparser.ParseFile(fset, filepath.Join(dir, name), files[name], goparser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		syntax = append(syntax, f)
	}

	info := &gotypes.Info{
		Types: make(map[ast.Expr]gotypes.TypeAndValue),
		Defs:  make(map[*ast.Ident]gotypes.Object),
		Uses:  make(map[*ast.Ident]gotypes.Object),
	}
	conf := gotypes.Config{}
	tpkg, err := conf.Check(pkgPath, fset, syntax, info)
	if err != nil {
		t.Fatalf("type-check %s: %v", pkgPath, err)
	}

	return &Package{
		PkgPath:    pkgPath,
		Name:       tpkg.Name(),
		Dir:        dir,
		Fset:       fset,
		Syntax:     syntax,
		Types:      tpkg,
		TypesInfo:  info,
		ModulePath: "example.com/shop",
		ModuleDir:  "/src/example.com/shop",
	}
}

const cardsSource = `package cards

// CardType is a payment card brand.
// @EnumerationClass
type CardType int

const (
	Amex CardType = iota + 1
	Visa
	MasterCard
)

type plain int

// @deprecated
type Tagged string

type (
	// @EnumerationClass("Shades")
	Shade int
	Other int
)

// @EnumerationClass
type Point struct{ X int }

// @EnumerationClass
type Alias = int

// @EnumerationClass
type Box[T any] int

func local() {
	// @EnumerationClass
	type inner int
	_ = inner(0)
}

type Size string // @EnumClass(className="Sizes", package="example.com/shop/sizes")

const (
	Small  Size = "S"
	_      Size = "unused"
	Large  Size = "L"
	medium Size = "M"
	Loose       = "untyped"
)
`

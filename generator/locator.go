package generator

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pablor21/enumclass/errors"
	"github.com/pablor21/enumclass/parser"
	"github.com/pablor21/enumclass/types"
)

// Locator maps namespaces to package directories of the main module.
type Locator struct {
	modulePath string
	moduleDir  string
	known      map[string]*parser.Package
	declared   map[string]map[string]token.Position
}

func NewLocator(modulePath, moduleDir string, pkgs []*parser.Package) *Locator {
	known := make(map[string]*parser.Package, len(pkgs))
	for _, p := range pkgs {
		known[p.PkgPath] = p
	}
	return &Locator{modulePath: modulePath, moduleDir: moduleDir, known: known, declared: map[string]map[string]token.Position{}}
}

// Locate resolves the target package of a declaration. A namespace without a domain
// element, such as MyNamespace or internal/cards, is relative to the module root.
func (l *Locator) Locate(rd *types.ResolvedDeclaration) (types.Target, error) {
	decl := rd.Declaration
	ns := rd.Namespace

	if ns == decl.PackagePath {
		return types.Target{ImportPath: ns, PackageName: decl.PackageName, Dir: decl.Dir}, nil
	}

	importPath := ns
	switch {
	case l.modulePath != "" && (ns == l.modulePath || strings.HasPrefix(ns, l.modulePath+"/")):
	case !hasDomain(ns):
		if l.modulePath == "" {
			return types.Target{}, errors.Newf("namespace %s is relative but %s is not in a module", ns, decl.PackagePath)
		}
		importPath = l.modulePath + "/" + ns
	default:
		return types.Target{}, errors.WithHintf(
			errors.Newf("namespace %s is outside module %s", ns, l.modulePath),
			"use an import path under %s or a path relative to the module root", l.modulePath)
	}

	if p, ok := l.known[importPath]; ok {
		return types.Target{ImportPath: importPath, PackageName: p.Name, Dir: p.Dir}, nil
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(importPath, l.modulePath), "/")
	return types.Target{
		ImportPath:  importPath,
		PackageName: PackageName(importPath),
		Dir:         filepath.Join(l.moduleDir, filepath.FromSlash(rel)),
	}, nil
}

// Declared returns the package-level names of the target package with their positions.
// Files ending in suffix are skipped. Loaded packages are read from their type scope;
// other targets are parsed from their directory, which may not exist yet.
func (l *Locator) Declared(target types.Target, suffix string) map[string]token.Position {
	if names, ok := l.declared[target.ImportPath]; ok {
		return names
	}
	generated := func(filename string) bool {
		return suffix != "" && strings.HasSuffix(filepath.Base(filename), suffix)
	}

	names := map[string]token.Position{}
	if p, ok := l.known[target.ImportPath]; ok && p.Types != nil {
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			pos := p.Fset.Position(scope.Lookup(name).Pos())
			if !generated(pos.Filename) {
				names[name] = pos
			}
		}
	} else {
		parseDeclared(target.Dir, generated, names)
	}
	l.declared[target.ImportPath] = names
	return names
}

func parseDeclared(dir string, generated func(string) bool, names map[string]token.Position) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || generated(name) {
			continue
		}
		f, err := goparser.ParseFile(fset, filepath.Join(dir, name), nil, goparser.SkipObjectResolution)
		if err != nil {
			continue
		}
		add := func(id *ast.Ident) {
			if id.Name != "_" {
				names[id.Name] = fset.Position(id.Pos())
			}
		}
		for _, d := range f.Decls {
			switch d := d.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil && d.Name.Name != "init" {
					add(d.Name)
				}
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch spec := spec.(type) {
					case *ast.TypeSpec:
						add(spec.Name)
					case *ast.ValueSpec:
						for _, id := range spec.Names {
							add(id)
						}
					}
				}
			}
		}
	}
}

func hasDomain(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return strings.Contains(first, ".")
}

// PackageName derives a package name from the last element of an import path.
func PackageName(importPath string) string {
	base := path.Base(importPath)
	if token.IsIdentifier(base) {
		return base
	}
	name := strings.Map(func(r rune) rune {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}
		return -1
	}, base)
	if name == "" {
		return "enumeration"
	}
	if !token.IsIdentifier(name) {
		return "_" + name
	}
	return name
}

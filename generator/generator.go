package generator

import (
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/pablor21/enumclass/annotations"
	"github.com/pablor21/enumclass/config"
	"github.com/pablor21/enumclass/errors"
	"github.com/pablor21/enumclass/logger"
	"github.com/pablor21/enumclass/types"
)

// Names of the fixed definition units.
const (
	DefinitionYAML = "enumeration.annotations.yaml"
	DefinitionJSON = "enumeration.annotations.json"
)

// Generator plans generated types and emits them as units relative to an output root.
type Generator struct {
	output  config.OutputConfig
	root    string
	locator *Locator
	synth   *Synthesizer
	logger  logger.Logger
}

func New(output config.OutputConfig, root string, locator *Locator, synth *Synthesizer, log logger.Logger) *Generator {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if synth == nil {
		synth = &Synthesizer{}
	}
	return &Generator{output: output, root: root, locator: locator, synth: synth, logger: log}
}

// Plan locates the target of every resolved declaration and checks the names it would
// declare there. A name already planned for the same target package, or declared by
// hand in it, is reported at the later declaration, which is skipped.
func (g *Generator) Plan(rds []*types.ResolvedDeclaration) ([]*types.GeneratedType, []types.Diagnostic) {
	var out []*types.GeneratedType
	var diags []types.Diagnostic
	seen := map[string]*types.ResolvedDeclaration{}

	for _, rd := range rds {
		decl := rd.Declaration
		target, err := g.locator.Locate(rd)
		if err != nil {
			diags = append(diags, types.Errorf(decl.Position, decl.QualifiedName(), "%v", err))
			continue
		}

		names := DeclaredNames(rd.ClassName)
		if err := g.collision(rd, target, names, seen); err != nil {
			diags = append(diags, types.Errorf(decl.Position, decl.QualifiedName(), "%v", err))
			continue
		}
		for _, name := range names.All() {
			seen[target.ImportPath+"."+name] = rd
		}

		gt := g.synth.Describe(rd, target)
		g.logger.Debug("planned enumeration class", "class", gt.Name, "package", target.ImportPath, "values", len(gt.Instances))
		out = append(out, gt)
	}
	return out, diags
}

func (g *Generator) collision(rd *types.ResolvedDeclaration, target types.Target, names Names, seen map[string]*types.ResolvedDeclaration) error {
	decl := rd.Declaration
	if target.ImportPath == decl.PackagePath && rd.ClassName == decl.Name {
		return errors.Newf("class name %s is the name of the annotated type", rd.ClassName)
	}

	for _, name := range names.All() {
		if first, dup := seen[target.ImportPath+"."+name]; dup {
			return errors.Newf("%s is already generated in %s for %s at %s",
				name, target.ImportPath, first.Declaration.Name, first.Declaration.Position)
		}
	}

	declared := g.locator.Declared(target, g.output.FileSuffix)
	for _, name := range names.All() {
		at, ok := declared[name]
		if !ok {
			continue
		}
		if name == rd.ClassName {
			return errors.Newf("class name %s is already declared at %s", name, at)
		}
		return errors.Newf("%s, declared for class %s, is already declared at %s", name, rd.ClassName, at)
	}
	return nil
}

type unitGroup struct {
	path  string
	pkg   string
	types []*types.GeneratedType
}

// Emit renders one source unit per (source package, target package) plus the fixed
// definition units. Units are never merged or deduplicated.
func (g *Generator) Emit(gts []*types.GeneratedType, specs *annotations.AnnotationSpecs) ([]*types.Unit, []types.Diagnostic) {
	var units []*types.Unit
	var diags []types.Diagnostic

	var groups []*unitGroup
	byKey := map[string]*unitGroup{}
	for _, gt := range gts {
		decl := gt.Source.Declaration
		key := gt.Target.Dir + "\x00" + decl.PackagePath
		grp, ok := byKey[key]
		if !ok {
			rel, err := g.relative(filepath.Join(gt.Target.Dir, g.fileName(gt)))
			if err != nil {
				diags = append(diags, types.Errorf(decl.Position, decl.QualifiedName(), "%v", err))
				continue
			}
			grp = &unitGroup{path: rel, pkg: gt.Target.PackageName}
			byKey[key] = grp
			groups = append(groups, grp)
		}
		grp.types = append(grp.types, gt)
	}

	for _, grp := range groups {
		unit, err := g.renderSource(grp)
		if err != nil {
			for _, gt := range grp.types {
				decl := gt.Source.Declaration
				diags = append(diags, types.Errorf(decl.Position, decl.QualifiedName(), "%v", err))
			}
			continue
		}
		units = append(units, unit)
	}

	if g.output.Definitions {
		defs, err := g.definitions(specs)
		if err != nil {
			diags = append(diags, types.Diagnostic{Severity: types.SeverityError, Message: err.Error()})
		}
		units = append(units, defs...)
	}
	return units, diags
}

func (g *Generator) renderSource(grp *unitGroup) (*types.Unit, error) {
	blocks := make([]string, 0, len(grp.types))
	names := make([]string, 0, len(grp.types))
	for _, gt := range grp.types {
		block, err := g.synth.Block(gt)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
		names = append(names, gt.Name)
	}

	content, err := g.synth.Unit(filepath.Base(grp.path), grp.pkg, blocks)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("rendered unit", "path", grp.path, "types", names)
	return &types.Unit{Path: grp.path, Kind: types.SourceUnit, Content: content, Types: names}, nil
}

func (g *Generator) definitions(specs *annotations.AnnotationSpecs) ([]*types.Unit, error) {
	yamlData, err := specs.YAML()
	if err != nil {
		return nil, err
	}
	jsonData, err := specs.JSON()
	if err != nil {
		return nil, err
	}
	dir := filepath.ToSlash(filepath.Clean(g.output.DefinitionsDir))
	return []*types.Unit{
		{Path: dir + "/" + DefinitionYAML, Kind: types.DefinitionUnit, Content: yamlData},
		{Path: dir + "/" + DefinitionJSON, Kind: types.DefinitionUnit, Content: jsonData},
	}, nil
}

// fileName names a unit after its source package. Units placed outside the source
// package use the module-relative source path instead.
func (g *Generator) fileName(gt *types.GeneratedType) string {
	decl := gt.Source.Declaration
	base := decl.PackageName
	if gt.Target.ImportPath != decl.PackagePath && g.locator.modulePath != "" {
		if rel, ok := strings.CutPrefix(decl.PackagePath, g.locator.modulePath+"/"); ok {
			base = strings.NewReplacer("/", "_", ".", "_", "-", "_").Replace(rel)
		}
	}
	return strcase.ToSnake(base) + g.output.FileSuffix
}

func (g *Generator) relative(path string) (string, error) {
	rel, err := filepath.Rel(g.root, path)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", errors.Newf("output %s is outside the output root %s", path, g.root)
	}
	return rel, nil
}

package types

// Instance is one value of a generated type. IDs are 1-based declaration positions.
type Instance struct {
	ID   int
	Name string
}

// Target is the package receiving a generated type.
type Target struct {
	ImportPath  string
	PackageName string
	Dir         string
}

// GeneratedType describes one companion type to synthesize.
type GeneratedType struct {
	Name      string
	Namespace string
	Target    Target
	Instances []Instance
	Source    *ResolvedDeclaration
}

// UnitKind distinguishes generated source files from the fixed definition files.
type UnitKind string

const (
	SourceUnit     UnitKind = "source"
	DefinitionUnit UnitKind = "definition"
)

// Unit is one output file. Path is relative to the output root, slash separated.
type Unit struct {
	Path    string
	Kind    UnitKind
	Content []byte
	// Types lists the generated type names carried by a source unit.
	Types []string
}

package types

import (
	"go/ast"
	"go/token"

	"github.com/pablor21/enumclass/annotations"
)

// Member is one enumerated constant of a declaration.
type Member struct {
	Name     string
	Exported bool
	Position token.Position
}

// EnumerationDeclaration is an annotated defined type found by the scanner.
type EnumerationDeclaration struct {
	Name        string
	PackagePath string
	PackageName string
	Dir         string
	// Members are filled in by the resolver, in declaration order.
	Members     []Member
	Annotations []annotations.Annotation
	Position    token.Position

	TypeSpec *ast.TypeSpec `json:"-"`
	GenDecl  *ast.GenDecl  `json:"-"`
	File     *ast.File     `json:"-"`
}

// QualifiedName returns the package path and name, e.g. example.com/m/cards.CardType.
func (d *EnumerationDeclaration) QualifiedName() string {
	return d.PackagePath + "." + d.Name
}

// AnnotationArguments are the optional arguments of the EnumerationClass annotation.
// A nil field means the default applies.
type AnnotationArguments struct {
	ClassName *string `json:"class_name,omitempty"`
	Namespace *string `json:"namespace,omitempty"`
}

// ResolvedDeclaration is a declaration whose annotation was recognized and whose
// class name and namespace are final.
type ResolvedDeclaration struct {
	Declaration *EnumerationDeclaration
	Annotation  annotations.Annotation
	Arguments   AnnotationArguments
	ClassName   string
	Namespace   string
}

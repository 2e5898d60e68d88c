package annotations

import (
	_ "embed"
	"fmt"
)

// EnumerationClass is the name of the annotation that marks an enum for generation.
const EnumerationClass = "EnumerationClass"

// Parameter names of the EnumerationClass annotation.
const (
	ClassParam     = "class"
	NamespaceParam = "namespace"
)

//go:embed enumeration.yml
var enumerationDefinition []byte

// EnumerationDefinition returns the raw YAML definition of the EnumerationClass annotation.
func EnumerationDefinition() []byte {
	return enumerationDefinition
}

// EnumerationSpecs returns a fresh registry holding the EnumerationClass definition.
func EnumerationSpecs() *AnnotationSpecs {
	specs, err := LoadSpecsFromYAML(enumerationDefinition)
	if err != nil {
		panic(fmt.Sprintf("annotations: invalid embedded definition: %v", err))
	}
	return specs
}

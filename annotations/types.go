// Package annotations parses comment annotations (@name(params)) and describes the annotations
// the generator understands.
package annotations

import (
	"go/token"
	"strings"
)

// Annotation represents a parsed annotation from Go comments (@name(params))
type Annotation struct {
	Name    string            // e.g., "EnumerationClass"
	Params  map[string]string // key-value parameters and bare flags
	Args    []Argument        // positional arguments in source order
	RawText string            // original text
	Pos     token.Pos         // position of the comment holding the annotation
}

// Argument is a positional annotation argument.
type Argument struct {
	Value  string `yaml:"value" json:"value"`
	Quoted bool   `yaml:"quoted" json:"quoted"`
}

// IsNull reports whether the argument is an unquoted nil or null literal.
func (a Argument) IsNull() bool {
	if a.Quoted {
		return false
	}
	return a.Value == "nil" || a.Value == "null"
}

// AnnotationPlacement represents where an annotation can be used
type AnnotationPlacement string

const (
	EnumAnnotationPlacement      AnnotationPlacement = "enum"
	EnumValueAnnotationPlacement AnnotationPlacement = "enumValue"
	StructAnnotationPlacement    AnnotationPlacement = "struct"
	FileAnnotationPlacement      AnnotationPlacement = "file"
)

// AnnotationParam defines a parameter for an annotation specification
type AnnotationParam struct {
	Name         string   `yaml:"name" json:"name"`
	Types        []string `yaml:"types,omitempty" json:"types,omitempty"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	IsDefault    bool     `yaml:"isDefault,omitempty" json:"isDefault,omitempty"` // the first positional argument binds to it
	Aliases      []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	DefaultValue string   `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	IsRequired   bool     `yaml:"isRequired,omitempty" json:"isRequired,omitempty"`
}

// Matches reports whether key names this parameter or one of its aliases.
func (p *AnnotationParam) Matches(key string) bool {
	if strings.EqualFold(key, p.Name) {
		return true
	}
	for _, alias := range p.Aliases {
		if strings.EqualFold(key, alias) {
			return true
		}
	}
	return false
}

// GetValue returns the named value of the parameter in ann, falling back to DefaultValue.
func (p *AnnotationParam) GetValue(ann Annotation) (string, bool) {
	for k, v := range ann.Params {
		if p.Matches(k) {
			return v, true
		}
	}
	return p.DefaultValue, false
}

// AnnotationSpec defines the specification for an annotation
type AnnotationSpec struct {
	// Annotation name, for example: "EnumerationClass"
	Name string `yaml:"name" json:"name"`
	// Parameters in positional order
	Params      []AnnotationParam     `yaml:"params,omitempty" json:"params,omitempty"`
	ValidOn     []AnnotationPlacement `yaml:"validOn,omitempty" json:"validOn,omitempty"` // nil or empty means all
	Aliases     []string              `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Multiple    bool                  `yaml:"multiple" json:"multiple"` // can be used more than once per target
}

// GetParam finds a parameter by name or alias.
func (a *AnnotationSpec) GetParam(name string) *AnnotationParam {
	for i := range a.Params {
		if a.Params[i].Matches(name) {
			return &a.Params[i]
		}
	}
	return nil
}

// ParamIndex returns the positional index of a parameter, or -1.
func (a *AnnotationSpec) ParamIndex(name string) int {
	for i := range a.Params {
		if a.Params[i].Matches(name) {
			return i
		}
	}
	return -1
}

// IsValidPlacement reports whether the annotation may be placed on the given target.
func (a *AnnotationSpec) IsValidPlacement(placement AnnotationPlacement) bool {
	if len(a.ValidOn) == 0 {
		return true
	}
	for _, validPlacement := range a.ValidOn {
		if validPlacement == placement {
			return true
		}
	}
	return false
}

// Matches reports whether name is the spec's name or one of its aliases (case-insensitive).
func (a *AnnotationSpec) Matches(name string) bool {
	name = NormalizeAnnotationName(name)
	if NormalizeAnnotationName(a.Name) == name {
		return true
	}
	for _, alias := range a.Aliases {
		if NormalizeAnnotationName(alias) == name {
			return true
		}
	}
	return false
}

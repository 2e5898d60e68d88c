package annotations

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// AnnotationSpecs is a registry of annotation specifications.
type AnnotationSpecs struct {
	Annotations []AnnotationSpec `yaml:"annotations" json:"annotations"`
}

// Register adds specs to the registry. A spec whose name is already registered replaces the old one.
func (d *AnnotationSpecs) Register(specs ...AnnotationSpec) {
	for _, spec := range specs {
		replaced := false
		for i := range d.Annotations {
			if NormalizeAnnotationName(d.Annotations[i].Name) == NormalizeAnnotationName(spec.Name) {
				d.Annotations[i] = spec
				replaced = true
				break
			}
		}
		if !replaced {
			d.Annotations = append(d.Annotations, spec)
		}
	}
}

// GetAnnotationSpecByName finds an annotation specification by name or alias
func (d *AnnotationSpecs) GetAnnotationSpecByName(name string) *AnnotationSpec {
	for i := range d.Annotations {
		if d.Annotations[i].Matches(name) {
			return &d.Annotations[i]
		}
	}
	return nil
}

// LoadSpecsFromYAML decodes a registry from YAML.
func LoadSpecsFromYAML(data []byte) (*AnnotationSpecs, error) {
	var specs AnnotationSpecs
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, err
	}
	return &specs, nil
}

// LoadSpecsFromJSON decodes a registry from JSON.
func LoadSpecsFromJSON(data []byte) (*AnnotationSpecs, error) {
	var specs AnnotationSpecs
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, err
	}
	return &specs, nil
}

// YAML encodes the registry.
func (d *AnnotationSpecs) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// JSON encodes the registry, indented.
func (d *AnnotationSpecs) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// NormalizeAnnotationName normalizes annotation names for comparison (case-insensitive)
func NormalizeAnnotationName(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "@")))
}

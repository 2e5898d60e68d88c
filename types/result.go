package types

import (
	"strings"

	"github.com/pablor21/enumclass/errors"
)

// ProcessResult is the outcome of one generation run.
type ProcessResult struct {
	// Root is the directory unit paths are relative to.
	Root         string
	Declarations []*EnumerationDeclaration
	Resolved     []*ResolvedDeclaration
	Types        []*GeneratedType
	Units        []*Unit
	Diagnostics  []Diagnostic
}

func NewProcessResult() *ProcessResult {
	return &ProcessResult{}
}

func (pr *ProcessResult) AddDiagnostics(diags ...Diagnostic) {
	pr.Diagnostics = append(pr.Diagnostics, diags...)
}

// Errors returns the error diagnostics.
func (pr *ProcessResult) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range pr.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

func (pr *ProcessResult) HasErrors() bool {
	return len(pr.Errors()) > 0
}

// Err folds the error diagnostics into one error wrapping errors.ErrGeneration, or returns nil.
func (pr *ProcessResult) Err() error {
	errs := pr.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, d := range errs {
		lines[i] = d.String()
	}
	return errors.Wrap(errors.ErrGeneration, strings.Join(lines, "\n"))
}

// Unit returns the unit written at path, or nil.
func (pr *ProcessResult) Unit(path string) *Unit {
	for _, u := range pr.Units {
		if u.Path == path {
			return u
		}
	}
	return nil
}

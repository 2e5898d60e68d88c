package types

import (
	"fmt"
	"go/token"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is a message attributed to a source position.
type Diagnostic struct {
	Severity    Severity
	Position    token.Position
	Declaration string
	Message     string
}

func (d Diagnostic) String() string {
	if d.Position.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Position, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Errorf returns an error diagnostic.
func Errorf(pos token.Position, decl string, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Position: pos, Declaration: decl, Message: fmt.Sprintf(format, args...)}
}

// Warnf returns a warning diagnostic.
func Warnf(pos token.Position, decl string, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Position: pos, Declaration: decl, Message: fmt.Sprintf(format, args...)}
}

package annotations

import (
	"slices"
	"strings"
)

// GetParamValue returns the value of an annotation parameter by name.
// It first checks for the exact parameter name, then checks aliases.
func (a *Annotation) GetParamValue(name string, aliases ...string) (string, bool) {
	if val, ok := a.Params[name]; ok {
		return val, true
	}
	for _, alias := range aliases {
		if val, ok := a.Params[alias]; ok {
			return val, true
		}
	}
	return "", false
}

// GetParamValueOrDefault returns the value of an annotation parameter by name,
// or returns the default value if not found.
func (a *Annotation) GetParamValueOrDefault(name string, defaultValue string, aliases ...string) string {
	if val, ok := a.GetParamValue(name, aliases...); ok {
		return val
	}
	return defaultValue
}

// HasParam checks if an annotation has a parameter with the given name or aliases.
func (a *Annotation) HasParam(name string, aliases ...string) bool {
	_, ok := a.GetParamValue(name, aliases...)
	return ok
}

// GetParamBool returns a boolean parameter value. Accepted true values (case-insensitive):
// "true", "1", "yes", "on".
func (a *Annotation) GetParamBool(name string, aliases ...string) (bool, bool) {
	if raw, ok := a.GetParamValue(name, aliases...); ok {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1", "yes", "on":
			return true, true
		case "false", "0", "no", "off":
			return false, true
		}
	}
	return false, false
}

// Arg returns the positional argument at i.
func (a *Annotation) Arg(i int) (Argument, bool) {
	if i < 0 || i >= len(a.Args) {
		return Argument{}, false
	}
	return a.Args[i], true
}

// IsFlag reports whether key is a bare flag that also appears as an unquoted positional argument.
func (a *Annotation) IsFlag(key string) bool {
	for _, arg := range a.Args {
		if !arg.Quoted && arg.Value == key {
			return true
		}
	}
	return false
}

// NamedParams returns the sorted keys of explicitly named parameters, excluding bare flags.
func (a *Annotation) NamedParams() []string {
	var keys []string
	for k := range a.Params {
		if !a.IsFlag(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

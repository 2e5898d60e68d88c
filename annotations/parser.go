package annotations

import (
	"go/ast"
	"strings"
)

// ParseAnnotations extracts annotations from comment groups
func ParseAnnotations(comments ...*ast.CommentGroup) []Annotation {
	var annotations []Annotation

	for _, cg := range comments {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			text := strings.TrimSpace(c.Text)
			text = strings.TrimPrefix(text, "//")
			text = strings.TrimPrefix(text, "/*")
			text = strings.TrimSuffix(text, "*/")
			text = strings.TrimSpace(text)

			for _, line := range strings.Split(text, "\n") {
				line = strings.TrimSpace(line)
				line = strings.TrimPrefix(line, "*")
				line = strings.TrimSpace(line)

				if strings.HasPrefix(line, "@") {
					ann := ParseAnnotation(line)
					if ann.Name != "" {
						ann.Pos = c.Slash
						annotations = append(annotations, ann)
					}
				}
			}
		}
	}

	return annotations
}

// ParseAnnotation parses a single annotation: @name, @name(a, key=value) or @name key="value"
func ParseAnnotation(line string) Annotation {
	ann := Annotation{
		RawText: line,
		Params:  make(map[string]string),
	}

	line = strings.TrimPrefix(line, "@")
	parenIdx := strings.Index(line, "(")

	// Format 1: @name(arg, key:value, key2=value2)
	if parenIdx != -1 {
		ann.Name = strings.TrimSpace(line[:parenIdx])
		paramsStr := line[parenIdx+1:]
		if endIdx := strings.LastIndex(paramsStr, ")"); endIdx != -1 {
			paramsStr = paramsStr[:endIdx]
		}
		ann.Params, ann.Args = parseParams(splitOutsideQuotes(paramsStr, ','))
		return ann
	}

	// Format 2: @name key="value" key2="value2"
	// Format 3: @name
	parts := splitOutsideQuotes(line, ' ')
	if len(parts) == 0 {
		return ann
	}

	ann.Name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		ann.Params, ann.Args = parseParams(parts[1:])
	}

	return ann
}

// splitOutsideQuotes splits s on sep, ignoring separators inside quotes or brackets.
// Empty parts are dropped only for space separation.
func splitOutsideQuotes(s string, sep rune) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false
	quoteChar := rune(0)
	bracketDepth := 0

	flush := func() {
		if sep == ' ' && current.Len() == 0 {
			return
		}
		parts = append(parts, current.String())
		current.Reset()
	}

	for _, ch := range s {
		switch {
		case ch == '"' || ch == '\'':
			if !inQuotes {
				inQuotes = true
				quoteChar = ch
			} else if ch == quoteChar {
				inQuotes = false
			}
			current.WriteRune(ch)
		case ch == '[' && !inQuotes:
			bracketDepth++
			current.WriteRune(ch)
		case ch == ']' && !inQuotes:
			bracketDepth--
			current.WriteRune(ch)
		case ch == sep && !inQuotes && bracketDepth == 0:
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		flush()
	}

	return parts
}

// parseParams splits parts into named parameters and positional arguments.
// A bare identifier is also recorded as a boolean flag.
func parseParams(parts []string) (map[string]string, []Argument) {
	params := make(map[string]string)
	var args []Argument

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// Support both : and = as separators
		sepIdx := -1
		for i, ch := range part {
			if (ch == ':' || ch == '=') && !isInQuotes(part, i) {
				sepIdx = i
				break
			}
		}

		if sepIdx == -1 || looksLikePath(part) {
			quoted := isQuoted(part)
			value := part
			if quoted {
				value = part[1 : len(part)-1]
			}
			if !quoted && isBooleanFlag(value) {
				params[value] = "true"
			}
			args = append(args, Argument{Value: value, Quoted: quoted})
			continue
		}

		key := strings.TrimSpace(part[:sepIdx])
		value := strings.TrimSpace(part[sepIdx+1:])
		if isQuoted(value) {
			value = value[1 : len(value)-1]
		}
		params[key] = value
	}

	return params, args
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')
}

// looksLikePath reports whether an unquoted part is a URL-like import path such as
// example.com/m:v rather than a key:value pair.
func looksLikePath(s string) bool {
	if isQuoted(s) {
		return false
	}
	sep := strings.IndexAny(s, ":=")
	slash := strings.Index(s, "/")
	return slash != -1 && slash < sep
}

// isInQuotes checks if a character at given index is inside quotes
func isInQuotes(s string, idx int) bool {
	inQuotes := false
	quoteChar := rune(0)

	for i, ch := range s {
		if i >= idx {
			break
		}
		if ch == '"' || ch == '\'' {
			if !inQuotes {
				inQuotes = true
				quoteChar = ch
			} else if ch == quoteChar {
				inQuotes = false
			}
		}
	}

	return inQuotes
}

// isBooleanFlag checks if a string looks like a boolean flag (simple identifier)
func isBooleanFlag(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, ch := range s {
		isLetter := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		isDigit := ch >= '0' && ch <= '9'
		if !isLetter && !isDigit && ch != '_' && ch != '-' {
			return false
		}
	}
	return true
}

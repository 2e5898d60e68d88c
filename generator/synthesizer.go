// Package generator turns resolved enumeration declarations into Go source units.
package generator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"

	"github.com/pablor21/enumclass/errors"
	"github.com/pablor21/enumclass/types"
)

// RuntimePackage is the import path of the runtime base every generated type embeds.
const RuntimePackage = "github.com/pablor21/enumclass/enumeration"

// HeaderPrefix starts every generated source unit.
const HeaderPrefix = "// Code generated by enumgen"

const blockTemplate = `
// {{.Name}} is the enumeration class of {{.Source}}.
type {{.Name}} struct {
	enumeration.Enumeration
}

func {{.Ctor}}(id int, name string) {{.Name}} {
	return {{.Name}}{Enumeration: enumeration.New(id, name)}
}

var {{.Registry}} = [...]{{.Name}}{
{{- range .Instances}}
	{{$.Ctor}}({{.ID}}, {{printf "%q" .Name}}),
{{- end}}
}

// {{.HolderType}} has one method per {{.Source}} constant returning its {{.Name}}.
type {{.HolderType}} struct{}
{{range $i, $m := .Instances}}
func ({{$.HolderType}}) {{$m.Name}}() {{$.Name}} {
	return {{$.Registry}}[{{$i}}]
}
{{end}}
// {{.Holder}} holds every {{.Name}} value.
var {{.Holder}} {{.HolderType}}

var _ enumeration.Registry[{{.Name}}] = {{.Name}}{}

// Values returns every {{.Name}} in declaration order.
func ({{.Name}}) Values() []{{.Name}} {
	return slices.Clone({{.Registry}}[:])
}

// UnmarshalText implements encoding.TextUnmarshaler using the display name.
func (e *{{.Name}}) UnmarshalText(text []byte) error {
	v, err := enumeration.FromDisplayName[{{.Name}}](string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
`

const unitTemplate = `// Code generated by enumgen{{if .Version}} {{.Version}}{{end}}. DO NOT EDIT.

package {{.Package}}

import (
	"slices"

	"{{.Runtime}}"
)
{{range .Blocks}}{{.}}{{end}}`

var (
	blockTmpl = template.Must(template.New("block").Parse(blockTemplate))
	unitTmpl  = template.Must(template.New("unit").Parse(unitTemplate))
)

// Synthesizer renders companion types.
type Synthesizer struct {
	// Version is stamped into the generated header when set.
	Version string
}

// Describe builds the generated type of rd. Instance ids are 1-based declaration positions.
func (s *Synthesizer) Describe(rd *types.ResolvedDeclaration, target types.Target) *types.GeneratedType {
	members := rd.Declaration.Members
	gt := &types.GeneratedType{
		Name:      rd.ClassName,
		Namespace: rd.Namespace,
		Target:    target,
		Instances: make([]types.Instance, len(members)),
		Source:    rd,
	}
	for i, m := range members {
		gt.Instances[i] = types.Instance{ID: i + 1, Name: m.Name}
	}
	return gt
}

// Names are the package-level identifiers declared for one generated type.
type Names struct {
	Class      string
	Holder     string
	HolderType string
	Ctor       string
	Registry   string
}

// DeclaredNames derives the identifiers declared for class.
func DeclaredNames(class string) Names {
	return Names{
		Class:      class,
		Holder:     HolderName(class),
		HolderType: lowerFirst(class) + "Members",
		Ctor:       "new" + upperFirst(class),
		Registry:   lowerFirst(class) + "Values",
	}
}

// All lists the names, class first.
func (n Names) All() []string {
	return []string{n.Class, n.Holder, n.HolderType, n.Ctor, n.Registry}
}

type blockData struct {
	Name       string
	Source     string
	Ctor       string
	Holder     string
	HolderType string
	Registry   string
	Instances  []types.Instance
}

// Block renders the declarations of one generated type.
func (s *Synthesizer) Block(gt *types.GeneratedType) (string, error) {
	source := gt.Source.Declaration.Name
	if gt.Target.ImportPath != gt.Source.Declaration.PackagePath {
		source = gt.Source.Declaration.PackageName + "." + source
	}

	names := DeclaredNames(gt.Name)
	data := blockData{
		Name:       gt.Name,
		Source:     source,
		Ctor:       names.Ctor,
		Holder:     names.Holder,
		HolderType: names.HolderType,
		Registry:   names.Registry,
		Instances:  gt.Instances,
	}

	var buf bytes.Buffer
	if err := blockTmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "render %s", gt.Name)
	}
	return buf.String(), nil
}

// Unit renders a complete, formatted Go file holding the given blocks.
func (s *Synthesizer) Unit(filename, pkgName string, blocks []string) ([]byte, error) {
	data := struct {
		Version string
		Package string
		Runtime string
		Blocks  []string
	}{s.Version, pkgName, RuntimePackage, blocks}

	var buf bytes.Buffer
	if err := unitTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "render %s", filename)
	}

	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.WithDetail(errors.Wrapf(err, "format %s", filename), numbered(buf.String()))
	}
	return out, nil
}

// HolderName returns the name of the variable holding the values of a generated type.
func HolderName(class string) string {
	return class + "s"
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// IsGenerated reports whether content starts with the generated header.
func IsGenerated(content []byte) bool {
	return bytes.HasPrefix(content, []byte(HeaderPrefix))
}

// StripHeader drops the generated header line, which carries the generator version.
// Content without the header is returned unchanged.
func StripHeader(content []byte) []byte {
	if !IsGenerated(content) {
		return content
	}
	_, rest, _ := bytes.Cut(content, []byte("\n"))
	return rest
}

func numbered(src string) string {
	var b strings.Builder
	for i, line := range strings.Split(src, "\n") {
		fmt.Fprintf(&b, "%4d  %s\n", i+1, line)
	}
	return b.String()
}

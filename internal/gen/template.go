package gen

import (
	"strconv"
	"text/template"

	"regex-with/internal/common"
	"regex-with/internal/plan"
)

// templateData holds all data needed for one generated file.
type templateData struct {
	Header      string
	PackageName string
	Imports     []importSpec
	Capture     string // qualifier of the capture package
	De          string // qualifier of the de package
	Targets     []targetData
}

type importSpec struct {
	Path string
}

type targetData struct {
	TypeName        string
	PatternVar      string
	ProviderType    string
	ParseFunc       string
	Literal         string
	Parser          bool
	TextUnmarshaler bool
}

func (g *Generator) buildTemplateData(pkg *plan.PackagePlan) *templateData {
	capturePath := g.config.RuntimeModule + "/capture"
	dePath := g.config.RuntimeModule + "/de"

	data := &templateData{
		Header:      common.GeneratedHeader,
		PackageName: pkg.Name,
		Imports:     []importSpec{{Path: capturePath}},
		Capture:     common.PkgAlias(capturePath),
		De:          common.PkgAlias(dePath),
	}

	needsDe := false

	for i := range pkg.Targets {
		t := &pkg.Targets[i]

		data.Targets = append(data.Targets, targetData{
			TypeName:        t.Name(),
			PatternVar:      t.Names.PatternVar,
			ProviderType:    t.Names.ProviderType,
			ParseFunc:       t.Names.ParseFunc,
			Literal:         goLiteral(t.Pattern.Expr),
			Parser:          t.Parser,
			TextUnmarshaler: t.Parser && t.TextUnmarshaler,
		})

		needsDe = needsDe || t.Parser
	}

	if needsDe {
		data.Imports = append(data.Imports, importSpec{Path: dePath})
	}

	return data
}

// goLiteral quotes s as a raw string when that keeps it unchanged, otherwise
// as an interpreted string.
func goLiteral(s string) string {
	if strconv.CanBackquote(s) {
		return "`" + s + "`"
	}

	return strconv.Quote(s)
}

var fileTemplate = template.Must(template.New("regexwith").Parse(`{{.Header}}

package {{.PackageName}}

import (
{{range .Imports}}	"{{.Path}}"
{{end}})
{{range .Targets}}
var {{.PatternVar}} = {{$.Capture}}.NewPattern({{.Literal}})

// {{.ProviderType}} matches {{.TypeName}} inputs.
type {{.ProviderType}} struct{}

// Captures implements {{$.Capture}}.Provider.
func ({{.ProviderType}}) Captures(haystack string) ({{$.Capture}}.Match, bool) {
	return {{.PatternVar}}.Captures(haystack)
}
{{- if .Parser}}

// {{.ParseFunc}} returns the {{.TypeName}} matched in s.
func {{.ParseFunc}}(s string) ({{.TypeName}}, error) {
	return {{$.De}}.FromString[{{.TypeName}}](s, {{.ProviderType}}{})
}
{{- end}}
{{- if .TextUnmarshaler}}

// UnmarshalText implements encoding.TextUnmarshaler using {{.ParseFunc}}.
func (v *{{.TypeName}}) UnmarshalText(text []byte) error {
	parsed, err := {{.ParseFunc}}(string(text))
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}
{{- end}}
{{end}}`))

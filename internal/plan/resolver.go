package plan

import (
	"fmt"
	"go/token"
	"go/types"
	"slices"
	"unicode"
	"unicode/utf8"

	"regex-with/decode"
	"regex-with/internal/analyze"
	"regex-with/internal/diagnostic"
	"regex-with/internal/match"
)

// Config holds configuration for the resolution process.
type Config struct {
	// Types restricts generation to the packages declaring the named types.
	// Each must be annotated. Every annotated type of a selected package is
	// still generated. Empty means every package.
	Types []string
	// Strict turns warnings into errors.
	Strict bool
	// TextUnmarshaler enables generation of (*T).UnmarshalText for parser
	// targets that do not declare one.
	TextUnmarshaler bool
	// MaxSuggestions caps "did you mean" candidates per diagnostic.
	MaxSuggestions int
	// Patterns caches parsed patterns between resolutions. Nil parses each time.
	Patterns *analyze.PatternCache
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{
		TextUnmarshaler: true,
		MaxSuggestions:  3,
	}
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	graph  *analyze.TypeGraph
	config Config
	diags  diagnostic.Diagnostics
}

// NewResolver creates a new Resolver.
func NewResolver(graph *analyze.TypeGraph, config Config) *Resolver {
	return &Resolver{graph: graph, config: config}
}

// Resolve runs the full resolution pipeline and returns a Plan. The error is
// non-nil when the plan's diagnostics contain errors; the plan is returned
// either way so callers can report them.
func (r *Resolver) Resolve() (*Plan, error) {
	r.diags = diagnostic.Diagnostics{}

	plan := &Plan{TypeGraph: r.graph}
	selected := r.selectTypes()
	filtered := len(r.config.Types) > 0

	paths := make([]string, 0, len(r.graph.Packages))
	for path := range r.graph.Packages {
		paths = append(paths, path)
	}

	slices.Sort(paths)

	for _, path := range paths {
		pkg := r.graph.Packages[path]

		for _, msg := range pkg.TypeErrors {
			r.diags.Add(diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticInfo,
				Code:     diagnostic.CodePackageError,
				Message:  msg,
			})
		}

		// A filtered run skips packages without a selected type and
		// regenerates every annotated type of the packages it touches.
		if filtered && !slices.ContainsFunc(pkg.Types, func(id analyze.TypeID) bool { return selected[id] }) {
			continue
		}

		pp := PackagePlan{Path: pkg.Path, Name: pkg.Name, Dir: pkg.Dir}

		for _, id := range pkg.Types {
			info := r.graph.GetType(id)
			if info == nil || !info.Annotated() {
				continue
			}

			if target, ok := r.resolveTarget(info); ok {
				pp.Targets = append(pp.Targets, target)
			}
		}

		plan.Packages = append(plan.Packages, pp)
	}

	if r.config.Strict {
		r.diags.PromoteWarnings()
	}

	plan.Diagnostics = r.diags

	if plan.Diagnostics.HasErrors() {
		return plan, fmt.Errorf("resolution failed with %d error(s)", len(plan.Diagnostics.Errors))
	}

	return plan, nil
}

// selectTypes returns the types to plan. Requested types that are missing or
// carry no directive are reported here.
func (r *Resolver) selectTypes() map[analyze.TypeID]bool {
	selected := make(map[analyze.TypeID]bool)

	if len(r.config.Types) == 0 {
		for id, info := range r.graph.Types {
			if info.Annotated() {
				selected[id] = true
			}
		}

		return selected
	}

	for _, name := range r.config.Types {
		found := false

		for id, info := range r.graph.Types {
			if id.Name != name && id.String() != name {
				continue
			}

			found = true

			if !info.Annotated() {
				r.errorf(info.Pos, diagnostic.CodeAnnotationMissing, id.Name, "",
					"regexwith annotation missing on %s", id.Name)

				continue
			}

			selected[id] = true
		}

		if !found {
			r.diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticError,
				Code:        diagnostic.CodeTypeNotFound,
				Message:     fmt.Sprintf("type %s not found in the loaded packages", name),
				Type:        name,
				Suggestions: match.Suggest(name, r.typeNames(), r.config.MaxSuggestions),
			})
		}
	}

	return selected
}

func (r *Resolver) typeNames() []string {
	var names []string
	for id := range r.graph.Types {
		names = append(names, id.Name)
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// resolveTarget validates one annotated type. It reports false when the type
// has errors and must not be generated.
func (r *Resolver) resolveTarget(info *analyze.TypeInfo) (Target, bool) {
	name := info.ID.Name
	d := info.Directives
	before := len(r.diags.Errors)

	for _, p := range d.Problems {
		r.errorf(p.Pos, p.Code, name, "", "%s", p.Message)
	}

	switch {
	case info.Generic:
		r.errorf(info.Pos, diagnostic.CodeUnsupportedType, name, "",
			"generic type %s cannot be annotated", name)

	case info.Alias:
		r.errorf(info.Pos, diagnostic.CodeUnsupportedType, name, "",
			"alias declaration %s cannot be annotated; annotate the aliased type", name)
	}

	if d.FromStr && !d.Capturable {
		r.errorf(info.Pos, diagnostic.CodeParserWithoutProv, name, "",
			"regexwith:fromstr on %s requires regexwith:capturable on the same type", name)
	}

	target := Target{
		Type:   info,
		Names:  NamesFor(name),
		Parser: d.FromStr,
	}

	validPattern := false

	if d.Capturable && slices.IndexFunc(d.Problems, isPatternProblem) < 0 {
		pattern, err := r.config.Patterns.Parse(d.Pattern)
		if err != nil {
			r.errorf(d.PatternPos, diagnostic.CodeInvalidPattern, name, "",
				"invalid pattern for %s: %v", name, err)
		} else {
			target.Pattern = pattern
			validPattern = true
		}
	}

	if target.Parser && !info.Generic && !info.Alias && info.Kind != analyze.TypeKindStruct && !info.StringKeyedMap() {
		r.errorf(info.Pos, diagnostic.CodeUnsupportedType, name, "",
			"regexwith:fromstr on %s needs a struct or a map with string keys, found %s", name, info.Kind)
	}

	r.checkNames(info, target)

	if len(r.diags.Errors) > before || !validPattern {
		return Target{}, false
	}

	if !target.Pattern.Anchored() {
		r.infof(d.PatternPos, diagnostic.CodeUnanchored, name, "", nil,
			"pattern for %s is not anchored at both ends and may match a substring of the input", name)
	}

	if !target.Parser {
		return target, true
	}

	if r.config.TextUnmarshaler {
		if info.Methods.TextUnmarshaler {
			r.infof(info.Pos, diagnostic.CodeHasUnmarshalText, name, "", nil,
				"%s already declares UnmarshalText; not generating one", name)
		} else {
			target.TextUnmarshaler = true
		}
	}

	if info.Kind == analyze.TypeKindStruct {
		target.Bindings = r.bind(info, target.Pattern.Groups)
	} else {
		r.checkMapElem(info)
	}

	return target, true
}

func isPatternProblem(p analyze.Problem) bool {
	return p.Code == diagnostic.CodeMissingPattern || p.Code == diagnostic.CodeMalformedDirective
}

// checkNames reports generated identifiers that the package already declares.
func (r *Resolver) checkNames(info *analyze.TypeInfo, target Target) {
	named, ok := info.GoType.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return
	}

	scope := named.Obj().Pkg().Scope()

	idents := []string{target.Names.PatternVar, target.Names.ProviderType}
	if target.Parser {
		idents = append(idents, target.Names.ParseFunc)
	}

	for _, ident := range idents {
		if scope.Lookup(ident) != nil {
			r.errorf(info.Pos, diagnostic.CodeNameConflict, info.ID.Name, "",
				"%s is already declared in package %s", ident, named.Obj().Pkg().Name())
		}
	}
}

// NamesFor returns the identifiers generated for a type. Unexported types
// get an unexported parse function.
func NamesFor(typeName string) Names {
	parse := "Parse" + typeName
	if !token.IsExported(typeName) {
		parse = "parse" + upperFirst(typeName)
	}

	return Names{
		PatternVar:   "_" + typeName + "Pattern",
		ProviderType: "_" + typeName + "Capturable",
		ParseFunc:    parse,
	}
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

func (r *Resolver) report(sev diagnostic.DiagnosticSeverity, pos token.Position, code, typeName, field string,
	suggestions []string, format string, args ...any,
) {
	d := diagnostic.Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     fmt.Sprintf(format, args...),
		Type:        typeName,
		Field:       field,
		Suggestions: suggestions,
	}

	if pos.IsValid() {
		d.Pos = pos.String()
	}

	r.diags.Add(d)
}

func (r *Resolver) errorf(pos token.Position, code, typeName, field, format string, args ...any) {
	r.report(diagnostic.DiagnosticError, pos, code, typeName, field, nil, format, args...)
}

func (r *Resolver) warnf(pos token.Position, code, typeName, field string, suggestions []string, format string, args ...any) {
	r.report(diagnostic.DiagnosticWarning, pos, code, typeName, field, suggestions, format, args...)
}

func (r *Resolver) infof(pos token.Position, code, typeName, field string, suggestions []string, format string, args ...any) {
	r.report(diagnostic.DiagnosticInfo, pos, code, typeName, field, suggestions, format, args...)
}

// fieldRef is a struct field reached from the target, with its dotted path.
type fieldRef struct {
	path  string
	field *analyze.FieldInfo
}

// collectFields lists the fields decode binds, in the same order and with
// the same shadowing: tagged "-" fields are skipped, untagged embedded
// structs are flattened, and the first field claiming a key wins.
func collectFields(info *analyze.TypeInfo, prefix string, keys []string, out []fieldRef) ([]string, []fieldRef) {
	for i := range info.Fields {
		f := &info.Fields[i]
		if f.Skipped() {
			continue
		}

		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}

		if f.Flattened() {
			keys, out = collectFields(f.Type, path, keys, out)
			continue
		}

		if !f.Exported {
			continue
		}

		if slices.Contains(keys, f.Key()) {
			continue
		}

		keys = append(keys, f.Key())
		out = append(out, fieldRef{path: path, field: f})
	}

	return keys, out
}

// bind matches named groups to fields with decode.Bind, which is how the
// runtime routes each group to a field.
func (r *Resolver) bind(info *analyze.TypeInfo, groups []string) []Binding {
	name := info.ID.Name
	keys, refs := collectFields(info, "", nil, nil)

	bindings := make([]Binding, len(refs))
	for i, ref := range refs {
		bindings[i] = Binding{
			Field:       ref.path,
			Key:         keys[i],
			Optional:    ref.field.Optional(),
			Convertible: r.convertible(ref.field.Type),
		}
	}

	var unused []string

	for i, idx := range decode.Bind(keys, groups) {
		g := groups[i]
		if idx < 0 {
			unused = append(unused, g)
			continue
		}

		if bindings[idx].Bound() {
			r.warnf(refs[idx].field.Pos, diagnostic.CodeDuplicateBinding, name, bindings[idx].Field, nil,
				"group %q is named more than once; a match with both fails with a duplicate field error", g)

			continue
		}

		bindings[idx].Group = g
	}

	var unboundKeys []string

	for i, b := range bindings {
		if b.Bound() {
			continue
		}

		unboundKeys = append(unboundKeys, b.Key)

		if !b.Optional {
			r.warnf(refs[i].field.Pos, diagnostic.CodeUnboundField, name, b.Field,
				match.Suggest(b.Key, unused, r.config.MaxSuggestions),
				"required field has no named group %q in the pattern; parsing will fail with a missing field error",
				b.Key)
		}
	}

	for i, b := range bindings {
		if !b.Convertible && (b.Bound() || !b.Optional) {
			r.warnf(refs[i].field.Pos, diagnostic.CodeUnsupportedField, name, b.Field, nil,
				"field type %s cannot be parsed from a plain string", typeString(refs[i].field.Type))
		}
	}

	for _, g := range unused {
		r.infof(info.Pos, diagnostic.CodeUnusedGroup, name, "",
			match.Suggest(g, unboundKeys, r.config.MaxSuggestions),
			"named group %q binds no field", g)
	}

	return bindings
}

func (r *Resolver) checkMapElem(info *analyze.TypeInfo) {
	m := info
	if m.Kind == analyze.TypeKindAlias && m.Underlying != nil {
		m = m.Underlying
	}

	if !r.convertible(m.ElemType) {
		r.warnf(info.Pos, diagnostic.CodeUnsupportedField, info.ID.Name, "", nil,
			"map value type %s cannot be parsed from a plain string", typeString(m.ElemType))
	}
}

func typeString(info *analyze.TypeInfo) string {
	if info == nil || info.GoType == nil {
		if info != nil && info.IsNamed() {
			return info.ID.Name
		}

		return "<unknown>"
	}

	return types.TypeString(info.GoType, func(p *types.Package) string {
		return p.Name()
	})
}

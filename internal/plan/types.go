package plan

import (
	"regex-with/internal/analyze"
	"regex-with/internal/diagnostic"
)

// Plan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type Plan struct {
	// Packages lists every loaded package, sorted by import path. Packages
	// without targets are kept so stale output can be removed.
	Packages []PackagePlan
	// TypeGraph holds all analyzed types and packages.
	TypeGraph *analyze.TypeGraph
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Targets returns the number of planned targets across packages.
func (p *Plan) Targets() int {
	n := 0
	for _, pkg := range p.Packages {
		n += len(pkg.Targets)
	}

	return n
}

// PackagePlan groups the targets generated into one package.
type PackagePlan struct {
	Path    string
	Name    string
	Dir     string
	Targets []Target
}

// Target is one annotated type to generate code for.
type Target struct {
	// Type is the annotated type.
	Type *analyze.TypeInfo
	// Pattern describes the capture pattern.
	Pattern analyze.PatternInfo
	// Names are the identifiers emitted for the type.
	Names Names
	// Parser is set when a ParseT entry point is generated.
	Parser bool
	// TextUnmarshaler is set when (*T).UnmarshalText is generated.
	TextUnmarshaler bool
	// Bindings map struct fields to named groups. Empty for map targets.
	Bindings []Binding
}

// Name returns the Go name of the target type.
func (t *Target) Name() string {
	return t.Type.ID.Name
}

// Names are the identifiers emitted for a target.
type Names struct {
	// PatternVar holds the lazily compiled pattern.
	PatternVar string
	// ProviderType implements capture.Provider.
	ProviderType string
	// ParseFunc is the string-parsing entry point.
	ParseFunc string
}

// Binding records how a struct field is populated.
type Binding struct {
	// Field is the dotted Go path of the field ("Meta.Trace" for a field
	// of an embedded struct).
	Field string
	// Key is the input key the field binds to.
	Key string
	// Group is the named group supplying the value, or "" when unbound.
	Group string
	// Optional fields may be absent from the match.
	Optional bool
	// Convertible is set when the field type can be parsed from a plain string.
	Convertible bool
}

// Bound reports whether a named group supplies the field.
func (b Binding) Bound() bool {
	return b.Group != ""
}

package diagnostic

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"regex-with/internal/common"
)

// Diagnostic codes.
const (
	CodeAnnotationMissing  = "annotation-missing"
	CodeUnknownDirective   = "unknown-directive"
	CodeUnknownKey         = "unknown-key"
	CodeMissingPattern     = "missing-pattern"
	CodeMalformedDirective = "malformed-directive"
	CodeInvalidPattern     = "invalid-pattern"
	CodeParserWithoutProv  = "fromstr-without-capturable"
	CodeUnsupportedType    = "unsupported-type"
	CodeUnboundField       = "unbound-field"
	CodeUnusedGroup        = "unused-group"
	CodeUnanchored         = "unanchored"
	CodeUnsupportedField   = "unsupported-field"
	CodeHasUnmarshalText   = "has-unmarshal-text"
	CodePackageError       = "package-error"
	CodeTypeNotFound       = "type-not-found"
	CodeNameConflict       = "name-conflict"
	CodeDuplicateBinding   = "duplicate-binding"
)

// Diagnostics holds all diagnostic information from scanning and planning.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Pos is the source position ("file:line:col"), if known.
	Pos string
	// Type names the annotated type this relates to (if any).
	Type string
	// Field names the struct field or capture group this relates to (if any).
	Field string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add appends d to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, field string) {
	d.Add(Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Field:    field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, field string) {
	d.Add(Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, field string) {
	d.Add(Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Field:    field,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// PromoteWarnings turns every warning into an error.
func (d *Diagnostics) PromoteWarnings() {
	for _, w := range d.Warnings {
		w.Severity = DiagnosticError
		d.Errors = append(d.Errors, w)
	}

	d.Warnings = nil
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns every diagnostic, errors first, each group ordered by position.
func (d *Diagnostics) All() []Diagnostic {
	var all []Diagnostic

	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		sorted := slices.Clone(group)
		slices.SortStableFunc(sorted, func(a, b Diagnostic) int {
			return strings.Compare(a.Pos, b.Pos)
		})

		all = append(all, sorted...)
	}

	return all
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos != "" {
		prefix = append(prefix, d.Pos+":")
	}

	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + " " + msg
	}

	return msg
}

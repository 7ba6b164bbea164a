package analyze

import (
	"fmt"
	"go/ast"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"regex-with/internal/diagnostic"
)

// DirectivePrefix introduces a generator directive in a type's doc comment.
const DirectivePrefix = "//regexwith:"

// Directive verbs and keys.
const (
	VerbCapturable = "capturable"
	VerbFromStr    = "fromstr"
	KeyPattern     = "re"
)

// Directives are the generator directives attached to one type declaration.
type Directives struct {
	// Capturable requests a capture provider for the type.
	Capturable bool
	// Pattern is the unquoted value of re= on the capturable directive.
	Pattern string
	// PatternPos is the position of the capturable directive.
	PatternPos token.Position
	// FromStr requests a ParseT entry point.
	FromStr bool
	// Problems are malformed or unknown directive contents.
	Problems []Problem
}

// Problem is a directive that could not be understood.
type Problem struct {
	Code    string
	Message string
	Pos     token.Position
}

// Arg is one key=value pair of a directive.
type Arg struct {
	Key   string
	Value string
}

// ParseDirectives reads the //regexwith: lines of doc, which documents the
// type typeName. It returns nil when doc carries no directive.
func ParseDirectives(fset *token.FileSet, typeName string, doc *ast.CommentGroup) *Directives {
	if doc == nil {
		return nil
	}

	var d *Directives

	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, DirectivePrefix) {
			continue
		}

		if d == nil {
			d = &Directives{}
		}

		pos := fset.Position(c.Slash)
		d.apply(typeName, pos, c.Text)
	}

	return d
}

func (d *Directives) problem(pos token.Position, code, format string, args ...any) {
	d.Problems = append(d.Problems, Problem{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}

func (d *Directives) apply(typeName string, pos token.Position, text string) {
	verb, args, err := ParseDirective(text)
	if err != nil {
		d.problem(pos, diagnostic.CodeMalformedDirective, "%v", err)
		return
	}

	switch verb {
	case VerbCapturable:
		if d.Capturable {
			d.problem(pos, diagnostic.CodeMalformedDirective, "duplicate regexwith:capturable on %s", typeName)
			return
		}

		d.Capturable = true
		d.PatternPos = pos

		hasPattern := false

		for _, a := range args {
			if a.Key != KeyPattern {
				d.problem(pos, diagnostic.CodeUnknownKey, "unrecognized attribute for regexwith: %s", a.Key)
				continue
			}

			if hasPattern {
				d.problem(pos, diagnostic.CodeMalformedDirective, "duplicate %s= on capturable for %s", KeyPattern, typeName)
				continue
			}

			d.Pattern = a.Value
			hasPattern = true
		}

		if !hasPattern {
			d.problem(pos, diagnostic.CodeMissingPattern, "regexwith: missing %s= on capturable for %s", KeyPattern, typeName)
		}

	case VerbFromStr:
		d.FromStr = true

		for _, a := range args {
			d.problem(pos, diagnostic.CodeUnknownKey, "unrecognized attribute for regexwith: %s", a.Key)
		}

	default:
		d.problem(pos, diagnostic.CodeUnknownDirective, "unknown directive regexwith:%s on %s", verb, typeName)
	}
}

// ParseDirective splits one directive comment into its verb and arguments.
// Argument values are Go string literals, raw or interpreted:
//
//	//regexwith:capturable re=`^(?P<id>\d+)$`
func ParseDirective(text string) (string, []Arg, error) {
	body, ok := strings.CutPrefix(text, DirectivePrefix)
	if !ok {
		return "", nil, fmt.Errorf("not a regexwith directive: %q", text)
	}

	verb, rest, _ := strings.Cut(body, " ")
	if verb == "" {
		return "", nil, fmt.Errorf("regexwith directive without a verb")
	}

	args, err := scanArgs(rest)
	if err != nil {
		return "", nil, fmt.Errorf("regexwith:%s: %w", verb, err)
	}

	return verb, args, nil
}

func scanArgs(src string) ([]Arg, error) {
	var (
		s      scanner.Scanner
		errs   scanner.ErrorList
		args   []Arg
		fset   = token.NewFileSet()
		buf    = []byte(src)
		handle = func(pos token.Position, msg string) { errs.Add(pos, msg) }
	)

	s.Init(fset.AddFile("", fset.Base(), len(buf)), buf, handle, 0)

	next := func() (token.Token, string) {
		for {
			_, tok, lit := s.Scan()
			// Skip semicolons inserted at the end of the line.
			if tok == token.SEMICOLON && lit == "\n" {
				continue
			}

			return tok, lit
		}
	}

	for {
		tok, lit := next()
		if tok == token.EOF {
			break
		}

		if tok != token.IDENT {
			return nil, fmt.Errorf("expected key, found %s", describe(tok, lit))
		}

		key := lit

		if tok, lit = next(); tok != token.ASSIGN {
			return nil, fmt.Errorf("expected = after %s, found %s", key, describe(tok, lit))
		}

		if tok, lit = next(); tok != token.STRING {
			return nil, fmt.Errorf("value of %s must be a string literal, found %s", key, describe(tok, lit))
		}

		value, err := strconv.Unquote(lit)
		if err != nil {
			return nil, fmt.Errorf("value of %s: %w", key, err)
		}

		args = append(args, Arg{Key: key, Value: value})
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	return args, nil
}

func describe(tok token.Token, lit string) string {
	if tok == token.EOF {
		return "end of directive"
	}

	if lit != "" {
		return strconv.Quote(lit)
	}

	return tok.String()
}

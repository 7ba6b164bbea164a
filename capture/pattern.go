package capture

import (
	"regexp"
	"sync"
	"sync/atomic"
)

// Pattern is a regular expression compiled at most once, on first use.
//
// A Pattern is safe for concurrent use. Racing first callers all observe the
// same compiled expression. An invalid expression panics on every use.
type Pattern struct {
	expr     string
	compiled func() *regexp.Regexp
	compiles atomic.Int32
}

// NewPattern returns a lazily compiled Pattern for expr. Nothing is compiled
// until the first call to Regexp or Captures.
func NewPattern(expr string) *Pattern {
	p := &Pattern{expr: expr}
	p.compiled = sync.OnceValue(func() *regexp.Regexp {
		p.compiles.Add(1)

		return regexp.MustCompile(expr)
	})

	return p
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.expr
}

// Regexp returns the compiled expression.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.compiled()
}

// Captures implements Provider.
func (p *Pattern) Captures(haystack string) (Match, bool) {
	re := p.Regexp()

	loc := re.FindStringSubmatchIndex(haystack)
	if loc == nil {
		return Match{}, false
	}

	return NewMatch(re.SubexpNames(), haystack, loc), true
}

package analyze

import (
	"fmt"
	"regexp"
	"regexp/syntax"
)

// PatternInfo describes a capture pattern as seen by the generator.
type PatternInfo struct {
	// Expr is the pattern source text.
	Expr string
	// Groups are the named groups in declaration order.
	Groups []string
	// NumSubexp counts all capture groups, named or not.
	NumSubexp int
	// AnchoredStart is set when every match must begin at the start of input.
	AnchoredStart bool
	// AnchoredEnd is set when every match must finish at the end of input.
	AnchoredEnd bool
}

// Anchored reports whether the pattern only matches whole inputs.
func (p PatternInfo) Anchored() bool {
	return p.AnchoredStart && p.AnchoredEnd
}

// ParsePattern compiles expr with the runtime's engine and inspects it.
func ParsePattern(expr string) (PatternInfo, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return PatternInfo{}, err
	}

	info := PatternInfo{
		Expr:      expr,
		NumSubexp: re.NumSubexp(),
	}

	for _, name := range re.SubexpNames() {
		if name != "" {
			info.Groups = append(info.Groups, name)
		}
	}

	tree, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return PatternInfo{}, fmt.Errorf("parsing %q: %w", expr, err)
	}

	info.AnchoredStart, info.AnchoredEnd = anchors(tree)

	return info, nil
}

// anchors reports whether re is pinned to the start and end of the text.
func anchors(re *syntax.Regexp) (start, end bool) {
	switch re.Op {
	case syntax.OpBeginText:
		return true, false

	case syntax.OpEndText:
		return false, true

	case syntax.OpCapture:
		return anchors(re.Sub[0])

	case syntax.OpConcat:
		if len(re.Sub) == 0 {
			return false, false
		}

		start, _ = anchors(re.Sub[0])
		_, end = anchors(re.Sub[len(re.Sub)-1])

		return start, end

	case syntax.OpAlternate:
		start, end = true, true

		for _, sub := range re.Sub {
			s, e := anchors(sub)
			start = start && s
			end = end && e
		}

		return start, end
	}

	return false, false
}

package capture

// Match is the result of a single successful match.
//
// Names holds every subexpression name of the pattern in declaration order,
// including the whole-match group at index 0 and unnamed groups, both of
// which are reported as "". Group values are substrings of the haystack.
type Match struct {
	names    []string
	haystack string
	// loc holds start/end byte offsets per group, -1 for groups that did not
	// participate in the match.
	loc []int
}

// NewMatch builds a Match from subexpression names and the submatch index
// slice returned by regexp's FindStringSubmatchIndex.
func NewMatch(names []string, haystack string, loc []int) Match {
	return Match{names: names, haystack: haystack, loc: loc}
}

// Names returns the declared group names. The slice is shared and must not
// be modified.
func (m Match) Names() []string {
	return m.names
}

// Len returns the number of groups, including group 0.
func (m Match) Len() int {
	return len(m.names)
}

// Index returns the value of group i and whether it participated.
func (m Match) Index(i int) (string, bool) {
	if i < 0 || 2*i+1 >= len(m.loc) {
		return "", false
	}

	start, end := m.loc[2*i], m.loc[2*i+1]
	if start < 0 || end < 0 {
		return "", false
	}

	return m.haystack[start:end], true
}

// Group returns the value of the first participating group called name.
func (m Match) Group(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	for i, n := range m.names {
		if n != name {
			continue
		}

		if v, ok := m.Index(i); ok {
			return v, true
		}
	}

	return "", false
}

// Each calls fn for every named group that participated in the match, in
// declaration order. Iteration stops when fn returns false.
func (m Match) Each(fn func(name, value string) bool) {
	for i, name := range m.names {
		if name == "" {
			continue
		}

		value, ok := m.Index(i)
		if !ok {
			continue
		}

		if !fn(name, value) {
			return
		}
	}
}

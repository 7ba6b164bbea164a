package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier to lower case without separators, so
// "UserName", "user_name", "user-name" and "username" all compare equal.
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// TokenizeIdent splits an identifier into lower-case words at separators and
// case transitions: "HTTPStatusCode" -> ["http", "status", "code"].
func TokenizeIdent(s string) []string {
	var (
		tokens  []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		current = append(current, r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsWord reports whether runes[i] begins a new CamelCase word: a lower to
// upper transition ("userID" at 'I') or the last capital of an acronym
// followed by lower case ("XMLParser" at 'P').
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

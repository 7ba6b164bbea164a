package capture

// Provider matches a fixed pattern against a haystack.
//
// On success it returns the pattern's declared group names together with the
// substrings of the first (leftmost) match. When the pattern does not match
// anywhere in the haystack it returns false.
type Provider interface {
	Captures(haystack string) (Match, bool)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(haystack string) (Match, bool)

// Captures calls f(haystack).
func (f ProviderFunc) Captures(haystack string) (Match, bool) {
	return f(haystack)
}

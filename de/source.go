package de

import (
	"regex-with/capture"
	"regex-with/decode"
)

var _ decode.Deserializer = (*Source[*capture.Pattern])(nil)

// Source is a decode.Deserializer backed by one match of a capture provider.
//
// A Source is created per parse call. Matching happens on the first request
// and its outcome is reused by later requests on the same Source.
type Source[P capture.Provider] struct {
	input    string
	provider P

	matched bool
	match   capture.Match
	ok      bool
}

// New returns a Source over input. Nothing is matched until the first request.
func New[P capture.Provider](input string, provider P) *Source[P] {
	return &Source[P]{input: input, provider: provider}
}

// Decode populates v from the match.
func (s *Source[P]) Decode(v any) error {
	return classify(decode.Unmarshal(s, v))
}

func (s *Source[P]) captures() (capture.Match, bool) {
	if !s.matched {
		s.match, s.ok = s.provider.Captures(s.input)
		s.matched = true
	}

	return s.match, s.ok
}

// DeserializeMap presents the named groups that took part in the match as a
// map from group name to plain string.
func (s *Source[P]) DeserializeMap(v decode.Visitor) error {
	m, ok := s.captures()
	if !ok {
		return noMatch()
	}

	pairs := func(yield func(string, string) bool) {
		m.Each(yield)
	}

	return classify(v.VisitMap(decode.MapFromPairs(pairs, decode.Plain)))
}

func (s *Source[P]) DeserializeStruct(_ string, _ []string, v decode.Visitor) error {
	return s.DeserializeMap(v)
}

func (s *Source[P]) DeserializeEnum(name string, variants []string, v decode.Visitor) error {
	return s.DeserializeStruct(name, variants, v)
}

// DeserializeAny resolves to the map view; a match has no other shape.
func (s *Source[P]) DeserializeAny(v decode.Visitor) error {
	return s.DeserializeMap(v)
}

func (s *Source[P]) DeserializeBool(v decode.Visitor) error { return s.DeserializeAny(v) }

func (s *Source[P]) DeserializeInt(_ int, v decode.Visitor) error { return s.DeserializeAny(v) }

func (s *Source[P]) DeserializeUint(_ int, v decode.Visitor) error { return s.DeserializeAny(v) }

func (s *Source[P]) DeserializeFloat(_ int, v decode.Visitor) error { return s.DeserializeAny(v) }

func (s *Source[P]) DeserializeString(v decode.Visitor) error { return s.DeserializeAny(v) }

func (s *Source[P]) DeserializeBytes(v decode.Visitor) error { return s.DeserializeAny(v) }

func (s *Source[P]) DeserializeOption(v decode.Visitor) error { return s.DeserializeAny(v) }

func (s *Source[P]) DeserializeUnit(v decode.Visitor) error { return s.DeserializeAny(v) }

func (s *Source[P]) DeserializeSeq(v decode.Visitor) error { return s.DeserializeAny(v) }

func (s *Source[P]) DeserializeTuple(_ int, v decode.Visitor) error { return s.DeserializeAny(v) }

func (s *Source[P]) DeserializeIdentifier(v decode.Visitor) error { return s.DeserializeAny(v) }

func (s *Source[P]) DeserializeIgnoredAny(v decode.Visitor) error { return s.DeserializeAny(v) }

// FromString parses input into a T using provider. It is the entry point
// called by generated ParseT functions.
func FromString[T any, P capture.Provider](input string, provider P) (T, error) {
	var out T
	if err := New(input, provider).Decode(&out); err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}

package decode

import "iter"

// Deserializer is a data source that can be asked for a value of a given shape.
//
// Implementations answer each request by calling exactly one Visitor method,
// or by returning an error. A source that cannot honor a specific request may
// forward it to DeserializeAny and let the data decide the shape.
type Deserializer interface {
	DeserializeAny(v Visitor) error
	DeserializeBool(v Visitor) error
	DeserializeInt(bits int, v Visitor) error
	DeserializeUint(bits int, v Visitor) error
	DeserializeFloat(bits int, v Visitor) error
	DeserializeString(v Visitor) error
	DeserializeBytes(v Visitor) error
	DeserializeOption(v Visitor) error
	DeserializeUnit(v Visitor) error
	DeserializeSeq(v Visitor) error
	DeserializeTuple(n int, v Visitor) error
	DeserializeMap(v Visitor) error
	DeserializeStruct(name string, fields []string, v Visitor) error
	DeserializeEnum(name string, variants []string, v Visitor) error
	DeserializeIdentifier(v Visitor) error
	DeserializeIgnoredAny(v Visitor) error
}

// MapAccess lazily yields the entries of a mapping in source order.
type MapAccess iter.Seq2[string, Deserializer]

// SeqAccess lazily yields the elements of a sequence.
type SeqAccess iter.Seq[Deserializer]

// MapFromPairs builds a MapAccess from key/value pairs, wrapping each value
// with newValue. Pairs are pulled only as the visitor ranges over the map.
func MapFromPairs(pairs iter.Seq2[string, string], newValue func(string) Deserializer) MapAccess {
	return func(yield func(string, Deserializer) bool) {
		for k, v := range pairs {
			if !yield(k, newValue(v)) {
				return
			}
		}
	}
}

// Unmarshaler is implemented by types that drive a Deserializer themselves.
type Unmarshaler interface {
	UnmarshalDecode(d Deserializer) error
}

package decode

import "regex-with/plain"

// Plain returns a Deserializer over a single plain string. Scalar requests
// parse the string; composite requests fail with a *plain.Error.
func Plain(s string) Deserializer {
	return plainDeserializer(s)
}

type plainDeserializer string

func (p plainDeserializer) DeserializeAny(v Visitor) error {
	return v.VisitString(string(p))
}

func (p plainDeserializer) DeserializeBool(v Visitor) error {
	b, err := plain.ParseBool(string(p))
	if err != nil {
		return err
	}

	return v.VisitBool(b)
}

func (p plainDeserializer) DeserializeInt(bits int, v Visitor) error {
	n, err := plain.ParseInt(string(p), bits)
	if err != nil {
		return err
	}

	return v.VisitInt(n)
}

func (p plainDeserializer) DeserializeUint(bits int, v Visitor) error {
	n, err := plain.ParseUint(string(p), bits)
	if err != nil {
		return err
	}

	return v.VisitUint(n)
}

func (p plainDeserializer) DeserializeFloat(bits int, v Visitor) error {
	f, err := plain.ParseFloat(string(p), bits)
	if err != nil {
		return err
	}

	return v.VisitFloat(f)
}

func (p plainDeserializer) DeserializeString(v Visitor) error {
	return v.VisitString(string(p))
}

func (p plainDeserializer) DeserializeIdentifier(v Visitor) error {
	return v.VisitString(string(p))
}

func (p plainDeserializer) DeserializeBytes(v Visitor) error {
	return v.VisitBytes([]byte(p))
}

// DeserializeOption treats the empty string as none.
func (p plainDeserializer) DeserializeOption(v Visitor) error {
	if p == "" {
		return v.VisitNone()
	}

	return v.VisitSome(p)
}

func (p plainDeserializer) DeserializeUnit(v Visitor) error {
	if p != "" {
		return plain.Unsupported(string(p), "unit")
	}

	return v.VisitUnit()
}

// DeserializeEnum presents the string as a unit variant name.
func (p plainDeserializer) DeserializeEnum(_ string, _ []string, v Visitor) error {
	return v.VisitString(string(p))
}

func (p plainDeserializer) DeserializeIgnoredAny(v Visitor) error {
	return v.VisitUnit()
}

func (p plainDeserializer) DeserializeSeq(Visitor) error {
	return plain.Unsupported(string(p), "sequence")
}

func (p plainDeserializer) DeserializeTuple(int, Visitor) error {
	return plain.Unsupported(string(p), "tuple")
}

func (p plainDeserializer) DeserializeMap(Visitor) error {
	return plain.Unsupported(string(p), "map")
}

func (p plainDeserializer) DeserializeStruct(name string, _ []string, _ Visitor) error {
	return plain.Unsupported(string(p), "struct "+name)
}

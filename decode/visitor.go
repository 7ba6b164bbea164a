package decode

// Visitor receives the value produced by a Deserializer.
type Visitor interface {
	// Expecting describes what the visitor accepts, for error messages.
	Expecting() string

	VisitBool(b bool) error
	VisitInt(n int64) error
	VisitUint(n uint64) error
	VisitFloat(f float64) error
	VisitString(s string) error
	VisitBytes(b []byte) error
	VisitNone() error
	VisitSome(d Deserializer) error
	VisitUnit() error
	VisitSeq(s SeqAccess) error
	VisitMap(m MapAccess) error
}

// BaseVisitor rejects every value with an invalid type error. Embed it and
// override the methods a visitor accepts.
type BaseVisitor struct {
	Expected string
}

func (b BaseVisitor) Expecting() string { return b.Expected }

func (b BaseVisitor) VisitBool(bool) error { return InvalidType("boolean", b.Expected) }
func (b BaseVisitor) VisitInt(int64) error { return InvalidType("integer", b.Expected) }
func (b BaseVisitor) VisitUint(uint64) error { return InvalidType("integer", b.Expected) }
func (b BaseVisitor) VisitFloat(float64) error { return InvalidType("floating point", b.Expected) }
func (b BaseVisitor) VisitString(string) error { return InvalidType("string", b.Expected) }
func (b BaseVisitor) VisitBytes([]byte) error { return InvalidType("byte array", b.Expected) }
func (b BaseVisitor) VisitNone() error { return InvalidType("none", b.Expected) }
func (b BaseVisitor) VisitSome(Deserializer) error { return InvalidType("some", b.Expected) }
func (b BaseVisitor) VisitUnit() error { return InvalidType("unit", b.Expected) }
func (b BaseVisitor) VisitSeq(SeqAccess) error { return InvalidType("sequence", b.Expected) }
func (b BaseVisitor) VisitMap(MapAccess) error { return InvalidType("map", b.Expected) }

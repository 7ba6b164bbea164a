package decode

import (
	"encoding"
	"math"
	"reflect"

	"regex-with/plain"
)

type boolVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *boolVisitor) VisitBool(b bool) error {
	v.rv.SetBool(b)
	return nil
}

type intVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *intVisitor) VisitInt(n int64) error {
	if v.rv.OverflowInt(n) {
		return InvalidValue(n, v.Expected)
	}

	v.rv.SetInt(n)

	return nil
}

func (v *intVisitor) VisitUint(n uint64) error {
	if n > math.MaxInt64 {
		return InvalidValue(n, v.Expected)
	}

	return v.VisitInt(int64(n))
}

type uintVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *uintVisitor) VisitUint(n uint64) error {
	if v.rv.OverflowUint(n) {
		return InvalidValue(n, v.Expected)
	}

	v.rv.SetUint(n)

	return nil
}

func (v *uintVisitor) VisitInt(n int64) error {
	if n < 0 {
		return InvalidValue(n, v.Expected)
	}

	return v.VisitUint(uint64(n))
}

type floatVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *floatVisitor) VisitFloat(f float64) error {
	if v.rv.OverflowFloat(f) {
		return InvalidValue(f, v.Expected)
	}

	v.rv.SetFloat(f)

	return nil
}

func (v *floatVisitor) VisitInt(n int64) error {
	return v.VisitFloat(float64(n))
}

func (v *floatVisitor) VisitUint(n uint64) error {
	return v.VisitFloat(float64(n))
}

type stringVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *stringVisitor) VisitString(s string) error {
	v.rv.SetString(s)
	return nil
}

func (v *stringVisitor) VisitBytes(b []byte) error {
	v.rv.SetString(string(b))
	return nil
}

type bytesVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *bytesVisitor) VisitBytes(b []byte) error {
	v.rv.SetBytes(append([]byte(nil), b...))
	return nil
}

func (v *bytesVisitor) VisitString(s string) error {
	v.rv.SetBytes([]byte(s))
	return nil
}

type textVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *textVisitor) VisitString(s string) error {
	return plain.UnmarshalText(s, v.rv.Addr().Interface().(encoding.TextUnmarshaler))
}

func (v *textVisitor) VisitBytes(b []byte) error {
	return v.VisitString(string(b))
}

type durationVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *durationVisitor) VisitString(s string) error {
	d, err := plain.ParseDuration(s)
	if err != nil {
		return err
	}

	v.rv.SetInt(int64(d))

	return nil
}

func (v *durationVisitor) VisitInt(n int64) error {
	v.rv.SetInt(n)
	return nil
}

type optionVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *optionVisitor) VisitNone() error {
	v.rv.SetZero()
	return nil
}

func (v *optionVisitor) VisitUnit() error {
	return v.VisitNone()
}

func (v *optionVisitor) VisitSome(d Deserializer) error {
	elem := reflect.New(v.rv.Type().Elem())
	if err := unmarshalValue(d, elem.Elem(), false); err != nil {
		return err
	}

	v.rv.Set(elem)

	return nil
}

type seqVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *seqVisitor) VisitSeq(seq SeqAccess) error {
	t := v.rv.Type()

	if t.Kind() == reflect.Array {
		i := 0
		for d := range seq {
			if i >= t.Len() {
				return InvalidLength(i+1, v.Expected)
			}

			if err := unmarshalValue(d, v.rv.Index(i), false); err != nil {
				return err
			}

			i++
		}

		if i != t.Len() {
			return InvalidLength(i, v.Expected)
		}

		return nil
	}

	out := reflect.MakeSlice(t, 0, 0)
	for d := range seq {
		elem := reflect.New(t.Elem()).Elem()
		if err := unmarshalValue(d, elem, false); err != nil {
			return err
		}

		out = reflect.Append(out, elem)
	}

	v.rv.Set(out)

	return nil
}

type mapVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *mapVisitor) VisitMap(m MapAccess) error {
	t := v.rv.Type()
	if v.rv.IsNil() {
		v.rv.Set(reflect.MakeMap(t))
	}

	for key, d := range m {
		elem := reflect.New(t.Elem()).Elem()
		if err := unmarshalValue(d, elem, false); err != nil {
			return err
		}

		v.rv.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), elem)
	}

	return nil
}

type structVisitor struct {
	BaseVisitor
	rv     reflect.Value
	fields *structFields
}

func (v *structVisitor) VisitMap(m MapAccess) error {
	var (
		keys   []string
		values []Deserializer
	)

	// Fields bind only once every key is known, so an exact key is
	// preferred over a case-folded one seen before it.
	for key, d := range m {
		keys = append(keys, key)
		values = append(values, d)
	}

	seen := make([]bool, len(v.fields.list))

	for k, i := range Bind(v.fields.names, keys) {
		d := values[k]
		if i < 0 {
			if err := d.DeserializeIgnoredAny(ignoredVisitor{}); err != nil {
				return err
			}

			continue
		}

		f := v.fields.list[i]
		if seen[i] {
			return DuplicateField(f.name)
		}

		seen[i] = true

		if err := unmarshalValue(d, v.rv.FieldByIndex(f.index), false); err != nil {
			return err
		}
	}

	return v.finish(seen)
}

// VisitUnit accepts an empty input for structs whose fields are all optional.
func (v *structVisitor) VisitUnit() error {
	return v.finish(make([]bool, len(v.fields.list)))
}

func (v *structVisitor) finish(seen []bool) error {
	for i, f := range v.fields.list {
		if seen[i] {
			continue
		}

		if !f.optional {
			return MissingField(f.name)
		}

		v.rv.FieldByIndex(f.index).SetZero()
	}

	return nil
}

type anyVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *anyVisitor) set(x any) error {
	v.rv.Set(reflect.ValueOf(&x).Elem())
	return nil
}

func (v *anyVisitor) VisitBool(b bool) error { return v.set(b) }
func (v *anyVisitor) VisitInt(n int64) error { return v.set(n) }
func (v *anyVisitor) VisitUint(n uint64) error { return v.set(n) }
func (v *anyVisitor) VisitFloat(f float64) error { return v.set(f) }
func (v *anyVisitor) VisitString(s string) error { return v.set(s) }
func (v *anyVisitor) VisitBytes(b []byte) error { return v.set(append([]byte(nil), b...)) }
func (v *anyVisitor) VisitNone() error { return v.set(nil) }
func (v *anyVisitor) VisitUnit() error { return v.set(nil) }

func (v *anyVisitor) VisitSome(d Deserializer) error {
	return unmarshalValue(d, v.rv, false)
}

func (v *anyVisitor) VisitSeq(seq SeqAccess) error {
	var out []any
	for d := range seq {
		var elem any
		if err := unmarshalValue(d, reflect.ValueOf(&elem).Elem(), false); err != nil {
			return err
		}

		out = append(out, elem)
	}

	return v.set(out)
}

func (v *anyVisitor) VisitMap(m MapAccess) error {
	out := make(map[string]any)
	for key, d := range m {
		var elem any
		if err := unmarshalValue(d, reflect.ValueOf(&elem).Elem(), false); err != nil {
			return err
		}

		out[key] = elem
	}

	return v.set(out)
}

// ignoredVisitor accepts and discards any value.
type ignoredVisitor struct{}

func (ignoredVisitor) Expecting() string { return "anything" }
func (ignoredVisitor) VisitBool(bool) error { return nil }
func (ignoredVisitor) VisitInt(int64) error { return nil }
func (ignoredVisitor) VisitUint(uint64) error { return nil }
func (ignoredVisitor) VisitFloat(float64) error { return nil }
func (ignoredVisitor) VisitString(string) error { return nil }
func (ignoredVisitor) VisitBytes([]byte) error { return nil }
func (ignoredVisitor) VisitNone() error { return nil }
func (ignoredVisitor) VisitUnit() error { return nil }

func (ignoredVisitor) VisitSome(d Deserializer) error {
	return d.DeserializeIgnoredAny(ignoredVisitor{})
}

func (ignoredVisitor) VisitSeq(seq SeqAccess) error {
	for d := range seq {
		if err := d.DeserializeIgnoredAny(ignoredVisitor{}); err != nil {
			return err
		}
	}

	return nil
}

func (ignoredVisitor) VisitMap(m MapAccess) error {
	for _, d := range m {
		if err := d.DeserializeIgnoredAny(ignoredVisitor{}); err != nil {
			return err
		}
	}

	return nil
}

package decode

import (
	"encoding"
	"reflect"
	"strconv"
	"time"
)

var (
	unmarshalerType     = reflect.TypeFor[Unmarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	durationType        = reflect.TypeFor[time.Duration]()
)

// Unmarshal populates the value pointed to by v from d.
//
// Each Go value issues exactly one request against its Deserializer: structs
// ask for a struct, maps for a map, pointers for an option, scalars for their
// own kind. Non-root values whose pointer implements encoding.TextUnmarshaler
// ask for a string. The root value is always requested structurally so that a
// type's own UnmarshalText may delegate to Unmarshal.
func Unmarshal(d Deserializer, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &InvalidUnmarshalError{Type: reflect.TypeOf(v)}
	}

	return unmarshalValue(d, rv.Elem(), true)
}

func unmarshalValue(d Deserializer, rv reflect.Value, root bool) error {
	t := rv.Type()

	if rv.CanAddr() {
		pt := reflect.PointerTo(t)
		if pt.Implements(unmarshalerType) {
			return rv.Addr().Interface().(Unmarshaler).UnmarshalDecode(d)
		}

		if !root && pt.Implements(textUnmarshalerType) {
			return d.DeserializeString(&textVisitor{BaseVisitor{t.String()}, rv})
		}
	}

	if t == durationType {
		return d.DeserializeString(&durationVisitor{BaseVisitor{"duration"}, rv})
	}

	switch t.Kind() {
	case reflect.Pointer:
		return d.DeserializeOption(&optionVisitor{BaseVisitor{"option"}, rv})

	case reflect.Bool:
		return d.DeserializeBool(&boolVisitor{BaseVisitor{"a boolean"}, rv})

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return d.DeserializeInt(t.Bits(), &intVisitor{BaseVisitor{t.String()}, rv})

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return d.DeserializeUint(t.Bits(), &uintVisitor{BaseVisitor{t.String()}, rv})

	case reflect.Float32, reflect.Float64:
		return d.DeserializeFloat(t.Bits(), &floatVisitor{BaseVisitor{t.String()}, rv})

	case reflect.String:
		return d.DeserializeString(&stringVisitor{BaseVisitor{"a string"}, rv})

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return d.DeserializeBytes(&bytesVisitor{BaseVisitor{"a byte array"}, rv})
		}

		return d.DeserializeSeq(&seqVisitor{BaseVisitor{"a sequence"}, rv})

	case reflect.Array:
		return d.DeserializeTuple(t.Len(), &seqVisitor{BaseVisitor{"a tuple of size " + strconv.Itoa(t.Len())}, rv})

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return Errorf("decode: unsupported map key type %s", t.Key())
		}

		return d.DeserializeMap(&mapVisitor{BaseVisitor{"a map"}, rv})

	case reflect.Struct:
		fields := cachedFields(t)

		return d.DeserializeStruct(t.Name(), fields.names, &structVisitor{
			BaseVisitor: BaseVisitor{"struct " + t.Name()},
			rv:          rv,
			fields:      fields,
		})

	case reflect.Interface:
		if t.NumMethod() == 0 {
			return d.DeserializeAny(&anyVisitor{BaseVisitor{"any value"}, rv})
		}
	}

	return Errorf("decode: unsupported type %s", t)
}

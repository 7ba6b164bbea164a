package de

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regex-with/capture"
	"regex-with/decode"
	"regex-with/plain"
)

var (
	idPattern       = capture.NewPattern(`^(?P<id>\d+)$`)
	nameAgePattern  = capture.NewPattern(`^(?P<name>\w+)-(?P<age>\d+)?$`)
	anyIDPattern    = capture.NewPattern(`^(?P<id>\w+)$`)
	mixedPattern    = capture.NewPattern(`^(\w+) (?P<user>\w+)(?: (?P<note>\w+))?$`)
	unanchoredDigit = capture.NewPattern(`(?P<n>\d+)`)
)

type idRecord struct {
	ID uint64 `regex:"id"`
}

type person struct {
	Name string  `regex:"name"`
	Age  *uint32 `regex:"age"`
}

func TestFromString_WholeInput(t *testing.T) {
	got, err := FromString[idRecord]("123", idPattern)
	require.NoError(t, err)
	assert.Equal(t, idRecord{ID: 123}, got)

	_, err = FromString[idRecord]("12a", idPattern)
	require.ErrorIs(t, err, ErrNoMatch)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindNoMatch, de.Kind)
	assert.Equal(t, "no match", err.Error())
}

func TestFromString_OptionalGroup(t *testing.T) {
	got, err := FromString[person]("bob-", nameAgePattern)
	require.NoError(t, err)
	assert.Equal(t, person{Name: "bob"}, got)

	got, err = FromString[person]("bob-30", nameAgePattern)
	require.NoError(t, err)

	age := uint32(30)
	if diff := cmp.Diff(person{Name: "bob", Age: &age}, got); diff != "" {
		t.Errorf("FromString() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromString_PlainError(t *testing.T) {
	_, err := FromString[idRecord]("abc", anyIDPattern)
	require.Error(t, err)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindPlain, de.Kind)

	var pe *plain.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "abc", pe.Input)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.Equal(t, pe.Error(), err.Error())
}

func TestFromString_MissingField(t *testing.T) {
	type withExtra struct {
		ID    uint64 `regex:"id"`
		Label string `regex:"label"`
	}

	_, err := FromString[withExtra]("123", idPattern)
	require.Error(t, err)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindCustom, de.Kind)
	assert.Equal(t, `missing field "label"`, de.Msg)
	assert.False(t, errors.Is(err, ErrNoMatch))
}

func TestFromString_UnnamedAndUnmatchedGroupsAbsent(t *testing.T) {
	got, err := FromString[map[string]string]("hello alice", mixedPattern)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user": "alice"}, got)

	got, err = FromString[map[string]string]("hello alice hi", mixedPattern)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"user": "alice", "note": "hi"}, got)
}

func TestFromString_UnanchoredMatchesSubstring(t *testing.T) {
	type num struct {
		N int `regex:"n"`
	}

	got, err := FromString[num]("abc 77 def 88", unanchoredDigit)
	require.NoError(t, err)
	assert.Equal(t, 77, got.N)
}

func TestFromString_Idempotent(t *testing.T) {
	first, err := FromString[person]("ann-41", nameAgePattern)
	require.NoError(t, err)

	for range 5 {
		again, err := FromString[person]("ann-41", nameAgePattern)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(first, again))
	}
}

type countingProvider struct {
	p     *capture.Pattern
	calls *int
}

func (c countingProvider) Captures(haystack string) (capture.Match, bool) {
	*c.calls++
	return c.p.Captures(haystack)
}

func TestSource_MatchesLazilyAndOnce(t *testing.T) {
	calls := 0
	src := New("42", countingProvider{p: idPattern, calls: &calls})
	assert.Zero(t, calls, "no matching at construction")

	var a, b idRecord
	require.NoError(t, src.Decode(&a))
	require.NoError(t, src.Decode(&b))

	assert.Equal(t, 1, calls)
	assert.Equal(t, a, b)
}

// recordingVisitor records which value it was handed.
type recordingVisitor struct {
	decode.BaseVisitor
	keys []string
}

func (v *recordingVisitor) VisitMap(m decode.MapAccess) error {
	for k := range m {
		v.keys = append(v.keys, k)
	}

	return nil
}

func TestSource_EveryShapeResolvesToMap(t *testing.T) {
	requests := map[string]func(d decode.Deserializer, v decode.Visitor) error{
		"any":        func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeAny(v) },
		"map":        func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeMap(v) },
		"struct":     func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeStruct("T", nil, v) },
		"enum":       func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeEnum("E", nil, v) },
		"bool":       func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeBool(v) },
		"int":        func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeInt(64, v) },
		"uint":       func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeUint(64, v) },
		"float":      func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeFloat(64, v) },
		"string":     func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeString(v) },
		"bytes":      func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeBytes(v) },
		"option":     func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeOption(v) },
		"unit":       func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeUnit(v) },
		"seq":        func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeSeq(v) },
		"tuple":      func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeTuple(2, v) },
		"identifier": func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeIdentifier(v) },
		"ignored":    func(d decode.Deserializer, v decode.Visitor) error { return d.DeserializeIgnoredAny(v) },
	}

	for name, request := range requests {
		t.Run(name, func(t *testing.T) {
			v := &recordingVisitor{BaseVisitor: decode.BaseVisitor{Expected: name}}
			require.NoError(t, request(New("bob-30", nameAgePattern), v))
			assert.Equal(t, []string{"name", "age"}, v.keys)

			assert.ErrorIs(t, request(New("???", nameAgePattern), v), ErrNoMatch)
		})
	}
}

func TestSource_ScalarTargetIsCustomError(t *testing.T) {
	_, err := FromString[uint64]("123", idPattern)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindCustom, de.Kind)
	assert.Equal(t, "invalid type: map, expected uint64", de.Msg)
}

func TestFromString_EmbeddedRecordField(t *testing.T) {
	type line struct {
		Who person `regex:"who"`
	}

	// person has no text form, so a nested struct cannot come from a plain string.
	_, err := FromString[line]("x", capture.NewPattern(`(?P<who>x)`))

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindPlain, de.Kind)
	assert.ErrorIs(t, err, plain.ErrUnsupported)
}

func TestFromString_ExactGroupNameWins(t *testing.T) {
	type tagged struct {
		ID string `regex:"id"`
	}

	got, err := FromString[tagged]("1-2", capture.NewPattern(`(?P<ID>\d)-(?P<id>\d)`))
	require.NoError(t, err)
	assert.Equal(t, tagged{ID: "2"}, got)

	type untagged struct {
		A string
	}

	got2, err := FromString[untagged]("xy", capture.NewPattern(`(?P<a>x)(?P<A>y)`))
	require.NoError(t, err)
	assert.Equal(t, untagged{A: "y"}, got2)

	_, err = FromString[untagged]("xy", capture.NewPattern(`(?P<A>x)(?P<A>y)`))
	assert.EqualError(t, err, `duplicate field "A"`)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "no match", KindNoMatch.String())
	assert.Equal(t, "plain", KindPlain.String())
	assert.Equal(t, "custom", KindCustom.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	custom := Custom("boom")
	assert.Same(t, custom, classify(custom))

	err := classify(decode.MissingField("x"))
	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindCustom, de.Kind)

	var fe *decode.Error
	assert.ErrorAs(t, err, &fe, "framework error stays reachable")

	nested := classify(&plain.Error{Input: "x", Type: "inner", Err: noMatch()})
	require.ErrorAs(t, nested, &de)
	assert.Equal(t, KindPlain, de.Kind)
	assert.ErrorIs(t, nested, ErrNoMatch, "errors.Is walks into the nested failure")
}

func TestError_NoMatchIsFresh(t *testing.T) {
	_, first := FromString[idRecord]("x", idPattern)
	_, second := FromString[idRecord]("y", idPattern)

	var a, b *Error
	require.ErrorAs(t, first, &a)
	require.ErrorAs(t, second, &b)
	assert.NotSame(t, a, b)
	assert.NotSame(t, ErrNoMatch, a)

	a.Msg = "changed"
	assert.Equal(t, "no match", ErrNoMatch.Error())
	assert.ErrorIs(t, second, ErrNoMatch)
	assert.False(t, errors.Is(Custom("x"), ErrNoMatch))
}

func TestPlain_Nil(t *testing.T) {
	err := Plain(nil)
	assert.Equal(t, KindPlain, err.Kind)
	assert.NoError(t, err.Unwrap())
	assert.Equal(t, "invalid value", err.Error())
}

package capture

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern_Captures(t *testing.T) {
	p := NewPattern(`^(?P<name>\w+)-(?P<age>\d+)?$`)

	m, ok := p.Captures("bob-30")
	require.True(t, ok)
	assert.Equal(t, []string{"", "name", "age"}, m.Names())

	name, ok := m.Group("name")
	assert.True(t, ok)
	assert.Equal(t, "bob", name)

	age, ok := m.Group("age")
	assert.True(t, ok)
	assert.Equal(t, "30", age)
}

func TestPattern_UnmatchedOptionalGroup(t *testing.T) {
	p := NewPattern(`^(?P<name>\w+)-(?P<age>\d+)?$`)

	m, ok := p.Captures("bob-")
	require.True(t, ok)

	// The name is still declared even though the group did not participate.
	assert.Equal(t, []string{"", "name", "age"}, m.Names())

	_, ok = m.Group("age")
	assert.False(t, ok)
}

func TestPattern_NoMatch(t *testing.T) {
	p := NewPattern(`^(?P<id>\d+)$`)

	m, ok := p.Captures("12a")
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestPattern_UnanchoredMatchesAnywhere(t *testing.T) {
	p := NewPattern(`(?P<id>\d+)`)

	m, ok := p.Captures("order 42 of 99")
	require.True(t, ok)

	id, _ := m.Group("id")
	assert.Equal(t, "42", id)
}

func TestPattern_CompilesOnce(t *testing.T) {
	p := NewPattern(`(?P<x>a+)`)
	assert.Equal(t, int32(0), p.compiles.Load(), "nothing compiled before first use")

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, ok := p.Captures("caaat")
			assert.True(t, ok)
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), p.compiles.Load())
	assert.Same(t, p.Regexp(), p.Regexp())
}

func TestPattern_InvalidPanics(t *testing.T) {
	p := NewPattern(`(?P<x>a`)

	assert.Panics(t, func() { p.Captures("a") })
	assert.Panics(t, func() { p.Captures("a") }, "panics on every use")
}

func TestMatch_EachSkipsUnnamedAndUnmatched(t *testing.T) {
	p := NewPattern(`(\w+):(?P<key>\w+)(?:=(?P<value>\w+))?`)

	m, ok := p.Captures("x:color")
	require.True(t, ok)

	var got []string
	m.Each(func(name, value string) bool {
		got = append(got, name+"="+value)
		return true
	})

	assert.Equal(t, []string{"key=color"}, got)
}

func TestMatch_EachStops(t *testing.T) {
	p := NewPattern(`(?P<a>\w)(?P<b>\w)(?P<c>\w)`)

	m, ok := p.Captures("xyz")
	require.True(t, ok)

	count := 0
	m.Each(func(string, string) bool {
		count++
		return count < 2
	})

	assert.Equal(t, 2, count)
}

func TestMatch_EmptyGroupParticipates(t *testing.T) {
	p := NewPattern(`^(?P<digits>\d*)$`)

	m, ok := p.Captures("")
	require.True(t, ok)

	v, ok := m.Group("digits")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestMatch_IndexOutOfRange(t *testing.T) {
	var m Match

	_, ok := m.Index(3)
	assert.False(t, ok)

	_, ok = m.Group("")
	assert.False(t, ok)
}

func TestProviderFunc(t *testing.T) {
	var calls int

	var p Provider = ProviderFunc(func(string) (Match, bool) {
		calls++
		return Match{}, false
	})

	_, ok := p.Captures("anything")
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}

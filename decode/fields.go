package decode

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// TagKey is the struct tag key read by Unmarshal.
const TagKey = "regex"

// TagOptions are the comma-separated options following the name in a tag.
type TagOptions struct {
	// Default makes the field optional; it is set to its zero value when
	// absent from the input.
	Default bool
}

// ParseTag splits a `regex:"..."` tag value into its name and options. A tag
// of "-" skips the field and is returned as the name "-".
func ParseTag(tag string) (string, TagOptions) {
	var opts TagOptions

	name, rest, _ := strings.Cut(tag, ",")
	for rest != "" {
		var opt string

		opt, rest, _ = strings.Cut(rest, ",")
		if strings.TrimSpace(opt) == "default" {
			opts.Default = true
		}
	}

	return strings.TrimSpace(name), opts
}

// Bind maps each key to the index in names it binds to, or -1. A name binds
// the key equal to it. A name with no equal key binds the first key equal
// under case folding; further folded keys for that name bind nothing.
func Bind(names, keys []string) []int {
	out := make([]int, len(keys))
	claimed := make([]bool, len(names))

	for i, k := range keys {
		out[i] = slices.Index(names, k)
		if out[i] >= 0 {
			claimed[out[i]] = true
		}
	}

	for i, k := range keys {
		if out[i] >= 0 {
			continue
		}

		for j, name := range names {
			if !claimed[j] && strings.EqualFold(name, k) {
				claimed[j] = true
				out[i] = j

				break
			}
		}
	}

	return out
}

type field struct {
	name     string
	index    []int
	optional bool
}

type structFields struct {
	list  []field
	names []string
}

var fieldCache sync.Map // map[reflect.Type]*structFields

func cachedFields(t reflect.Type) *structFields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*structFields)
	}

	fields := &structFields{}
	collectFields(t, nil, fields)

	f, _ := fieldCache.LoadOrStore(t, fields)

	return f.(*structFields)
}

func collectFields(t reflect.Type, prefix []int, out *structFields) {
	for i := range t.NumField() {
		sf := t.Field(i)

		tag := sf.Tag.Get(TagKey)
		if tag == "-" {
			continue
		}

		name, opts := ParseTag(tag)
		index := append(append([]int{}, prefix...), i)

		// Untagged embedded structs contribute their fields directly.
		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			collectFields(sf.Type, index, out)
			continue
		}

		if !sf.IsExported() {
			continue
		}

		if name == "" {
			name = sf.Name
		}

		// The first field claiming a name shadows later ones.
		if slices.Contains(out.names, name) {
			continue
		}

		out.list = append(out.list, field{
			name:     name,
			index:    index,
			optional: opts.Default || sf.Type.Kind() == reflect.Pointer,
		})
		out.names = append(out.names, name)
	}
}

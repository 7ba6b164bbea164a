package analyze

import (
	"go/token"
	"go/types"
	"reflect"

	"regex-with/decode"
	"regex-with/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "regex-with/examples/basic"
	Name    string // e.g., "Record"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface type
	TypeKindAlias              // named type wrapping a non-struct type
	TypeKindExternal           // named type from a package outside the loaded set
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// Methods records which unmarshal hooks a type's pointer implements.
type Methods struct {
	// TextUnmarshaler is set when *T implements encoding.TextUnmarshaler.
	TextUnmarshaler bool
	// DecodeUnmarshaler is set when *T implements decode.Unmarshaler.
	DecodeUnmarshaler bool
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For named non-struct types, the underlying type
	ElemType   *TypeInfo   // For pointers, slices, arrays and maps, the element type
	KeyType    *TypeInfo   // For maps, the key type
	Fields     []FieldInfo // For structs, the list of fields
	GoType     types.Type  // The original go/types.Type
	Methods    Methods     // Unmarshal hooks implemented by *T

	// The remaining fields are set only for types declared in a loaded package.

	Pos        token.Position // Declaration position
	Directives *Directives    // Parsed //regexwith: lines, nil when there are none
	Generic    bool           // Declared with type parameters
	Alias      bool           // Declared as an alias (type A = B)
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Annotated reports whether the type carries at least one directive.
func (t *TypeInfo) Annotated() bool {
	return t.Directives != nil
}

// StringKeyedMap reports whether the type is, or is named over, a map with
// string keys.
func (t *TypeInfo) StringKeyedMap() bool {
	info := t
	if info.Kind == TypeKindAlias && info.Underlying != nil {
		info = info.Underlying
	}

	if info.Kind != TypeKindMap || info.KeyType == nil {
		return false
	}

	basic, ok := info.KeyType.GoType.Underlying().(*types.Basic)

	return ok && basic.Info()&types.IsString != 0
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
	Pos      token.Position    // Declaration position
}

// Key returns the input key the field binds to: the regex tag name, or the
// field name when the tag names none.
func (f *FieldInfo) Key() string {
	name, _ := decode.ParseTag(f.Tag.Get(decode.TagKey))
	if name == "" {
		return f.Name
	}

	return name
}

// Skipped reports whether the field is excluded with `regex:"-"`.
func (f *FieldInfo) Skipped() bool {
	return f.Tag.Get(decode.TagKey) == "-"
}

// Optional reports whether the field may be absent from the input: tagged
// with the default option or declared as a pointer.
func (f *FieldInfo) Optional() bool {
	_, opts := decode.ParseTag(f.Tag.Get(decode.TagKey))

	return opts.Default || f.Type.Kind == TypeKindPointer
}

// Flattened reports whether the field is an untagged embedded struct whose
// fields bind as if declared on the outer struct.
func (f *FieldInfo) Flattened() bool {
	if !f.Embedded || f.Skipped() {
		return false
	}

	name, _ := decode.ParseTag(f.Tag.Get(decode.TagKey))
	if name != "" {
		return false
	}

	_, ok := f.Type.GoType.Underlying().(*types.Struct)

	return ok
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Top-level types in declaration order
	// TypeErrors are type-checking errors reported for the package. They are
	// expected while a stale generated file is being replaced.
	TypeErrors []string
}

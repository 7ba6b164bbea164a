package plan

import (
	"go/types"

	"regex-with/internal/analyze"
)

// convertible reports whether decode can build a value of type t from one
// plain string.
func (r *Resolver) convertible(t *analyze.TypeInfo) bool {
	if t == nil {
		return false
	}

	if t.Methods.TextUnmarshaler || t.Methods.DecodeUnmarshaler || r.generatesText(t) {
		return true
	}

	switch t.Kind {
	case analyze.TypeKindBasic:
		return plainBasic(t.GoType)

	case analyze.TypeKindPointer:
		return r.convertible(t.ElemType)

	case analyze.TypeKindSlice:
		return t.ElemType != nil && t.ElemType.Kind == analyze.TypeKindBasic && isByte(t.ElemType.GoType)

	case analyze.TypeKindInterface:
		iface, ok := t.GoType.Underlying().(*types.Interface)
		return ok && iface.Empty()

	case analyze.TypeKindAlias, analyze.TypeKindExternal:
		return r.convertible(t.Underlying)
	}

	return false
}

// generatesText reports whether t is a parser target that gets a generated
// UnmarshalText. The loader skips generated files, so the method is not in
// t.Methods yet.
func (r *Resolver) generatesText(t *analyze.TypeInfo) bool {
	if !r.config.TextUnmarshaler || !t.IsNamed() {
		return false
	}

	decl := r.graph.GetType(t.ID)
	if decl == nil || decl.Directives == nil {
		return false
	}

	return decl.Directives.Capturable && decl.Directives.FromStr
}

func plainBasic(t types.Type) bool {
	if t == nil {
		return false
	}

	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return false
	}

	info := basic.Info()

	return info&(types.IsBoolean|types.IsInteger|types.IsFloat|types.IsString) != 0 && info&types.IsComplex == 0
}

func isByte(t types.Type) bool {
	if t == nil {
		return false
	}

	basic, ok := t.Underlying().(*types.Basic)

	return ok && basic.Kind() == types.Byte
}

package analyze

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"reflect"

	"golang.org/x/tools/go/packages"

	"regex-with/internal/common"
	"regex-with/internal/ctxlog"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

const decodePkgPath = "regex-with/decode"

// Config controls package loading.
type Config struct {
	// Dir is the directory package patterns are resolved in. Empty means the
	// process working directory.
	Dir string
	// Output is the generated file name. Files with this name, or starting
	// with the generated header, are loaded without declarations so stale
	// output cannot hide or contradict the declarations being analyzed.
	Output string
	// BuildFlags are passed to the go command.
	BuildFlags []string
}

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	config    Config
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
	fset      *token.FileSet
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(config Config) *Analyzer {
	if config.Output == "" {
		config.Output = common.DefaultOutput
	}

	return &Analyzer{
		config:    config,
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./...", "regex-with/examples/basic").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	log := ctxlog.FromContext(ctx)

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{
		Context:    ctx,
		Mode:       LoadMode,
		Dir:        a.config.Dir,
		BuildFlags: a.config.BuildFlags,
		ParseFile:  a.parseFile,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Listing and syntax errors are fatal. Type errors are kept so the planner
	// can report them; a freshly skipped generated file usually causes some.
	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path: pkg.PkgPath,
			Name: pkg.Name,
		}
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		log.Debug("loaded package",
			slog.String("package", pkg.PkgPath),
			slog.Int("types", len(a.graph.Packages[pkg.PkgPath].Types)))
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// parseFile is the packages.Config hook. Generated output is reduced to its
// package clause.
func (a *Analyzer) parseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	mode := parser.AllErrors | parser.ParseComments
	if a.isGenerated(filename, src) {
		mode = parser.PackageClauseOnly
	}

	return parser.ParseFile(fset, filename, src, mode)
}

func (a *Analyzer) isGenerated(filename string, src []byte) bool {
	return filepath.Base(filename) == a.config.Output ||
		bytes.HasPrefix(src, []byte(common.GeneratedHeader))
}

// processPackage extracts top-level types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	pkgInfo := a.graph.Packages[pkg.PkgPath]

	for _, e := range pkg.Errors {
		pkgInfo.TypeErrors = append(pkgInfo.TypeErrors, e.Error())
	}

	if file, ok := common.First(pkg.GoFiles); ok {
		pkgInfo.Dir = filepath.Dir(file)
	}

	if pkg.Types == nil || pkg.TypesInfo == nil {
		return fmt.Errorf("no type information")
	}

	a.fset = pkg.Fset

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				a.processTypeSpec(pkg, ts, doc, pkgInfo)
			}
		}
	}

	return nil
}

func (a *Analyzer) processTypeSpec(pkg *packages.Package, ts *ast.TypeSpec, doc *ast.CommentGroup, pkgInfo *PackageInfo) {
	typeName, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return
	}

	typeID := TypeID{
		PkgPath: pkg.PkgPath,
		Name:    ts.Name.Name,
	}

	var info *TypeInfo
	if ts.Assign.IsValid() {
		// Aliases share the aliased type's cached info, so describe them separately.
		info = &TypeInfo{
			Kind:    TypeKindAlias,
			GoType:  typeName.Type(),
			Methods: a.methods(typeName.Type()),
			Alias:   true,
		}
		info.Underlying = a.analyzeType(types.Unalias(typeName.Type()))
	} else {
		info = a.analyzeType(typeName.Type())
	}

	info.ID = typeID
	info.Pos = pkg.Fset.Position(ts.Name.Pos())
	info.Generic = ts.TypeParams != nil && len(ts.TypeParams.List) > 0
	info.Directives = ParseDirectives(pkg.Fset, ts.Name.Name, doc)

	a.graph.Types[typeID] = info
	pkgInfo.Types = append(pkgInfo.Types, typeID)
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType:  t,
		Methods: a.methods(t),
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Alias:
		*info = *a.analyzeType(types.Unalias(tt))

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Interface:
		info.Kind = TypeKindInterface

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	default:
		// Channels, functions and type parameters cannot be decoded.
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()
	if obj.Pkg() != nil {
		info.ID = TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
	} else {
		info.ID = TypeID{Name: obj.Name()}
	}

	ut := named.Underlying()

	if obj.Pkg() != nil && a.isExternalPackage(obj.Pkg().Path()) {
		// External types (time.Duration, netip.Addr) are opaque; non-struct
		// ones keep their underlying shape for the convertibility check.
		info.Kind = TypeKindExternal
		if _, ok := ut.(*types.Struct); !ok {
			info.Underlying = a.analyzeType(ut)
		}

		return
	}

	switch ut := ut.(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	default:
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
			Pos:      a.position(field.Pos()),
		})
	}
}

func (a *Analyzer) position(pos token.Pos) token.Position {
	if a.fset == nil || !pos.IsValid() {
		return token.Position{}
	}

	return a.fset.Position(pos)
}

// methods reports the unmarshal hooks reachable through *t.
func (a *Analyzer) methods(t types.Type) Methods {
	if _, ok := t.Underlying().(*types.Interface); ok {
		return Methods{}
	}

	ptr := types.NewPointer(t)

	return Methods{
		TextUnmarshaler:   hasMethod(ptr, "UnmarshalText", isTextSignature),
		DecodeUnmarshaler: hasMethod(ptr, "UnmarshalDecode", isDecodeSignature),
	}
}

func hasMethod(t types.Type, name string, match func(*types.Signature) bool) bool {
	obj, _, _ := types.LookupFieldOrMethod(t, false, nil, name)

	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)

	return ok && match(sig)
}

// isTextSignature matches func([]byte) error.
func isTextSignature(sig *types.Signature) bool {
	if sig.Params().Len() != 1 || !returnsError(sig) {
		return false
	}

	slice, ok := sig.Params().At(0).Type().(*types.Slice)
	if !ok {
		return false
	}

	elem, ok := slice.Elem().(*types.Basic)

	return ok && elem.Kind() == types.Byte
}

// isDecodeSignature matches func(decode.Deserializer) error.
func isDecodeSignature(sig *types.Signature) bool {
	if sig.Params().Len() != 1 || !returnsError(sig) {
		return false
	}

	named, ok := types.Unalias(sig.Params().At(0).Type()).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}

	return named.Obj().Pkg().Path() == decodePkgPath && named.Obj().Name() == "Deserializer"
}

func returnsError(sig *types.Signature) bool {
	if sig.Results().Len() != 1 {
		return false
	}

	return types.Identical(sig.Results().At(0).Type(), types.Universe.Lookup("error").Type())
}

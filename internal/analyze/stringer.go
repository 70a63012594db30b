package analyze

import (
	"go/types"
	"strings"

	"entity-binder/internal/common"
	"entity-binder/internal/index"
)

// TypeStringer renders type expressions the way they are written in the
// declaring package: local types unqualified, imported types by package
// name ("time.Time").
type TypeStringer struct {
	pkg *types.Package
}

// NewTypeStringer creates a TypeStringer for types declared in pkg.
func NewTypeStringer(pkg *types.Package) *TypeStringer {
	return &TypeStringer{pkg: pkg}
}

// TypeString returns the source form of t.
func (s *TypeStringer) TypeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

func (s *TypeStringer) qualifier(p *types.Package) string {
	if p == nil || p == s.pkg {
		return ""
	}

	return p.Name()
}

// TupleStrings returns the types of a parameter or result tuple.
func (s *TypeStringer) TupleStrings(tuple *types.Tuple) []string {
	if tuple.Len() == 0 {
		return nil
	}

	out := make([]string, tuple.Len())
	for i := range tuple.Len() {
		out[i] = s.TypeString(tuple.At(i).Type())
	}

	return out
}

// ResultString renders a result tuple as one type expression: "" for no
// results, the type for one, "(a, b)" for several.
func (s *TypeStringer) ResultString(tuple *types.Tuple) string {
	parts := s.TupleStrings(tuple)

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return "(" + strings.Join(parts, ", ") + ")"
	}
}

// ClassName returns the class name of a named type, relative to the
// module for types declared inside it.
func ClassName(obj *types.TypeName, modulePath string) index.DotName {
	if obj.Pkg() == nil {
		return index.DotName(obj.Name())
	}

	return index.DotName(common.TrimModule(obj.Pkg().Path(), modulePath) + "." + obj.Name())
}

// superclassField returns the index of the first embedded field whose type
// is a named struct, or of a pointer to one.
func superclassField(st *types.Struct) (int, *types.Named) {
	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}

		t := f.Type()
		if p, ok := t.(*types.Pointer); ok {
			t = p.Elem()
		}

		named, ok := t.(*types.Named)
		if !ok {
			continue
		}

		if _, ok := named.Underlying().(*types.Struct); ok {
			return i, named
		}
	}

	return -1, nil
}

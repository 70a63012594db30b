package analyze

import (
	"fmt"
	"go/types"

	"entity-binder/internal/index"
	"entity-binder/internal/typeresolve"
)

// Resolver resolves member types with go/types. The superclass of an
// instantiated generic class is itself instantiated, so members come out
// with the leaf's type arguments substituted.
type Resolver struct {
	modulePath string
	classes    map[index.DotName]*types.Named
}

// ResolveHierarchy resolves leaf and each loaded ancestor.
func (r *Resolver) ResolveHierarchy(leaf index.DotName) (*typeresolve.ResolvedType, error) {
	named, ok := r.classes[leaf]
	if !ok {
		return nil, fmt.Errorf("failed to resolve %s: %w", leaf, index.ErrClassNotFound)
	}

	out := typeresolve.NewResolvedType(leaf)

	for named != nil {
		name := ClassName(named.Obj(), r.modulePath)
		if _, ok := r.classes[name]; !ok {
			break
		}

		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			return nil, fmt.Errorf("%s is not a struct", name)
		}

		ts := NewTypeStringer(named.Obj().Pkg())
		superIdx, super := superclassField(st)
		members := typeresolve.NewMembers()

		for i := range st.NumFields() {
			if i == superIdx {
				continue
			}

			f := st.Field(i)
			members.Fields[f.Name()] = ts.TypeString(f.Type())
		}

		for i := range named.NumMethods() {
			m := named.Method(i)
			members.Methods[m.Name()] = ts.ResultString(m.Type().(*types.Signature).Results())
		}

		out.Add(name, members)
		named = super
	}

	return out, nil
}

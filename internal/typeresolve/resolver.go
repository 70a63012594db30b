package typeresolve

import (
	"errors"
	"fmt"
	"strings"

	"entity-binder/internal/index"
)

// ClassLoader loads structural class descriptors by name.
type ClassLoader interface {
	ClassForName(name index.DotName) (*index.ClassInfo, error)
}

// IndexResolver resolves member types from the declared types recorded in
// an index. Generic parameters are bound level by level from the leaf
// upward using each class's superclass type arguments.
type IndexResolver struct {
	loader ClassLoader
}

// NewIndexResolver creates an IndexResolver over loader.
func NewIndexResolver(loader ClassLoader) *IndexResolver {
	return &IndexResolver{loader: loader}
}

// ResolveHierarchy resolves the members of leaf and of every ancestor known
// to the loader. An ancestor missing from the loader ends the walk.
func (r *IndexResolver) ResolveHierarchy(leaf index.DotName) (*ResolvedType, error) {
	ci, err := r.loader.ClassForName(leaf)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", leaf, err)
	}

	out := NewResolvedType(leaf)
	bindings := map[string]string{}
	seen := map[index.DotName]bool{}

	for ci != nil {
		if seen[ci.Name] {
			return nil, fmt.Errorf("cyclic superclass chain at %s", ci.Name)
		}

		seen[ci.Name] = true
		out.Add(ci.Name, resolveMembers(ci, bindings))

		if ci.SuperName == "" {
			break
		}

		super, err := r.loader.ClassForName(ci.SuperName)
		if err != nil {
			if errors.Is(err, index.ErrClassNotFound) {
				break
			}

			return nil, fmt.Errorf("failed to resolve %s: %w", ci.SuperName, err)
		}

		bindings, err = bindSuper(ci, super, bindings)
		if err != nil {
			return nil, err
		}

		ci = super
	}

	return out, nil
}

// bindSuper computes the bindings visible inside super given the bindings
// of its subclass ci.
func bindSuper(ci, super *index.ClassInfo, bindings map[string]string) (map[string]string, error) {
	if len(super.TypeParams) == 0 {
		return map[string]string{}, nil
	}

	// a raw superclass reference leaves the parameters unbound
	if len(ci.SuperTypeArgs) == 0 {
		return map[string]string{}, nil
	}

	if len(ci.SuperTypeArgs) != len(super.TypeParams) {
		return nil, fmt.Errorf("%s passes %d type arguments to %s, which declares %d",
			ci.Name, len(ci.SuperTypeArgs), super.Name, len(super.TypeParams))
	}

	next := make(map[string]string, len(super.TypeParams))
	for i, p := range super.TypeParams {
		next[p] = Substitute(ci.SuperTypeArgs[i], bindings)
	}

	return next, nil
}

func resolveMembers(ci *index.ClassInfo, bindings map[string]string) *Members {
	m := NewMembers()

	for _, f := range ci.Fields {
		m.Fields[f.Name] = Substitute(f.Type, bindings)
	}

	for i := range ci.Methods {
		md := &ci.Methods[i]
		m.Methods[md.Name] = Substitute(resultType(md), bindings)
	}

	return m
}

func resultType(m *index.MethodInfo) string {
	switch len(m.Results) {
	case 0:
		return ""
	case 1:
		return m.Results[0]
	default:
		return "(" + strings.Join(m.Results, ", ") + ")"
	}
}

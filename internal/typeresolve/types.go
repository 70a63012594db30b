// Package typeresolve resolves member types of a class hierarchy as seen
// from a concrete leaf class, substituting generic type parameters with the
// type arguments bound along the superclass chain.
package typeresolve

import (
	"maps"

	"entity-binder/internal/index"
)

// Members holds resolved member types keyed by member name. Method types
// are the resolved result type.
type Members struct {
	Fields  map[string]string
	Methods map[string]string
}

// NewMembers creates empty Members.
func NewMembers() *Members {
	return &Members{
		Fields:  make(map[string]string),
		Methods: make(map[string]string),
	}
}

// Field returns the resolved type of the named field.
func (m *Members) Field(name string) (string, bool) {
	t, ok := m.Fields[name]
	return t, ok
}

// Method returns the resolved result type of the named method.
func (m *Members) Method(name string) (string, bool) {
	t, ok := m.Methods[name]
	return t, ok
}

// ResolvedType is the resolution context of one leaf class: member types
// of the leaf and of every ancestor, as instantiated by the leaf.
type ResolvedType struct {
	Leaf  index.DotName
	types map[index.DotName]*Members
	order []index.DotName // leaf first
}

// NewResolvedType creates an empty resolution context for leaf.
func NewResolvedType(leaf index.DotName) *ResolvedType {
	return &ResolvedType{
		Leaf:  leaf,
		types: make(map[index.DotName]*Members),
	}
}

// Add records the members of class. Classes are added leaf first.
func (r *ResolvedType) Add(class index.DotName, m *Members) {
	if _, ok := r.types[class]; !ok {
		r.order = append(r.order, class)
	}

	r.types[class] = m
}

// Members returns the resolved members of class.
func (r *ResolvedType) Members(class index.DotName) (*Members, bool) {
	m, ok := r.types[class]
	return m, ok
}

// Types returns the resolved classes from leaf to topmost ancestor.
func (r *ResolvedType) Types() []index.DotName {
	return append([]index.DotName(nil), r.order...)
}

// Equal reports whether two contexts resolve the same members to the same types.
func (r *ResolvedType) Equal(o *ResolvedType) bool {
	if r.Leaf != o.Leaf || len(r.types) != len(o.types) {
		return false
	}

	for k, m := range r.types {
		om, ok := o.types[k]
		if !ok || !maps.Equal(m.Fields, om.Fields) || !maps.Equal(m.Methods, om.Methods) {
			return false
		}
	}

	return true
}

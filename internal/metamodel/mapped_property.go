package metamodel

import "strings"

// MappedProperty is a persistent property with its resolved type.
type MappedProperty struct {
	name string
	typ  string
}

// NewMappedProperty creates a MappedProperty.
func NewMappedProperty(name, typ string) MappedProperty {
	return MappedProperty{name: name, typ: typ}
}

// Name returns the property name.
func (p MappedProperty) Name() string {
	return p.name
}

// Type returns the resolved type expression.
func (p MappedProperty) Type() string {
	return p.typ
}

// Compare orders properties by name.
func (p MappedProperty) Compare(o MappedProperty) int {
	return strings.Compare(p.name, o.name)
}

func (p MappedProperty) String() string {
	return p.name + " " + p.typ
}

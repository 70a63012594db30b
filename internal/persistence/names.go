// Package persistence defines the annotation vocabulary recognised by the
// metamodel and small lookup helpers over indexed annotations.
package persistence

import "entity-binder/internal/index"

// Annotation names.
const (
	Entity           index.DotName = "persistence.Entity"
	MappedSuperclass index.DotName = "persistence.MappedSuperclass"
	Embeddable       index.DotName = "persistence.Embeddable"
	Id               index.DotName = "persistence.Id"
	EmbeddedId       index.DotName = "persistence.EmbeddedId"
	Access           index.DotName = "persistence.Access"
	Transient        index.DotName = "persistence.Transient"
)

// Known lists every annotation name in the vocabulary.
var Known = []index.DotName{Entity, MappedSuperclass, Embeddable, Id, EmbeddedId, Access, Transient}

// Lookup maps a short or qualified annotation name ("Entity",
// "persistence.Entity") to its canonical DotName.
func Lookup(name string) (index.DotName, bool) {
	for _, k := range Known {
		if name == string(k) || name == k.Local() {
			return k, true
		}
	}

	return "", false
}

// AllowedOn reports whether the annotation may be attached to kind.
// Access is allowed everywhere.
func AllowedOn(name index.DotName, kind index.TargetKind) bool {
	switch name {
	case Entity, MappedSuperclass, Embeddable:
		return kind == index.TargetClass
	case Id, EmbeddedId, Transient:
		return kind != index.TargetClass
	default:
		return true
	}
}

package persistence

import (
	"fmt"

	"entity-binder/internal/index"
)

// ClassAnnotation returns the class-targeted instance of the named
// annotation, or nil. More than one class-level instance is an error.
func ClassAnnotation(ci *index.ClassInfo, name index.DotName) (*index.AnnotationInstance, error) {
	var found *index.AnnotationInstance

	instances := ci.AnnotationsNamed(name)

	for i := range instances {
		a := &instances[i]
		if a.Target.Kind != index.TargetClass {
			continue
		}

		if found != nil {
			return nil, fmt.Errorf("found more than one instance of %s on %s", name, ci.Name)
		}

		found = a
	}

	return found, nil
}

// HasClassAnnotation reports whether the class itself carries the annotation.
func HasClassAnnotation(ci *index.ClassInfo, name index.DotName) bool {
	for _, a := range ci.AnnotationsNamed(name) {
		if a.Target.Kind == index.TargetClass {
			return true
		}
	}

	return false
}

// exclusiveKinds are the class markers a class may not combine.
var exclusiveKinds = [][2]index.DotName{
	{Entity, MappedSuperclass},
	{Entity, Embeddable},
	{MappedSuperclass, Embeddable},
}

// ConflictingKinds returns the first pair of mutually exclusive class
// markers that has reports as present.
func ConflictingKinds(has func(index.DotName) bool) (a, b index.DotName, ok bool) {
	for _, pair := range exclusiveKinds {
		if has(pair[0]) && has(pair[1]) {
			return pair[0], pair[1], true
		}
	}

	return "", "", false
}

// IsMapped reports whether the class is an entity or a mapped superclass.
func IsMapped(ci *index.ClassInfo) bool {
	return HasClassAnnotation(ci, Entity) || HasClassAnnotation(ci, MappedSuperclass)
}

// AccessValue parses the access type carried by an Access annotation.
func AccessValue(a *index.AnnotationInstance) (AccessType, error) {
	v, ok := a.Value("")
	if !ok {
		return 0, fmt.Errorf("%s on %s has no value", a.Name, a.Target)
	}

	return ParseAccessType(v)
}

// MemberAnnotations returns the member-targeted instances of the named
// annotation, split into field and method targets.
func MemberAnnotations(ci *index.ClassInfo, name index.DotName) (fields, methods []index.AnnotationInstance) {
	for _, a := range ci.AnnotationsNamed(name) {
		switch a.Target.Kind {
		case index.TargetField:
			fields = append(fields, a)
		case index.TargetMethod:
			methods = append(methods, a)
		case index.TargetClass:
		}
	}

	return fields, methods
}

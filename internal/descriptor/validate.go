package descriptor

import (
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"

	"entity-binder/internal/diagnostic"
	"entity-binder/internal/index"
	"entity-binder/internal/match"
	"entity-binder/internal/persistence"
)

var annotationNames = lo.Map(persistence.Known, func(n index.DotName, _ int) string { return n.Local() })

// Validate checks a descriptor file for structural problems. A superclass
// that is not described is only a warning: class walks stop there.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("descriptor_is_nil", "descriptor file is nil", "", "")
		return res
	}

	if f.Version != CurrentVersion {
		res.AddError(diagnostic.CodeUnsupportedVersion,
			fmt.Sprintf("unsupported descriptor version %q", f.Version), "", "")
	}

	described := map[string]struct{}{}

	for i := range f.Classes {
		name := f.Classes[i].Name
		if name == "" {
			res.AddError(diagnostic.CodeMissingName, fmt.Sprintf("class #%d has no name", i+1), "", "")
			continue
		}

		if _, ok := described[name]; ok {
			res.AddError(diagnostic.CodeDuplicateClass, fmt.Sprintf("duplicate class %q", name), name, "")
			continue
		}

		described[name] = struct{}{}
	}

	for i := range f.Classes {
		c := &f.Classes[i]
		if c.Name == "" {
			continue
		}

		validateClass(res, c, described)
	}

	return res
}

func validateClass(res *diagnostic.Diagnostics, c *Class, described map[string]struct{}) {
	if c.Extends != "" {
		if _, ok := described[c.Extends]; !ok {
			res.AddWarning(diagnostic.CodeUnknownSuperclass,
				fmt.Sprintf("superclass %q is not described%s", c.Extends, match.Hint(c.Extends, slices.Sorted(maps.Keys(described)))),
				c.Name, "")
		}
	} else if len(c.ExtendsArgs) > 0 {
		res.AddError(diagnostic.CodeUnknownSuperclass, "extends_args given without extends", c.Name, "")
	}

	validateAnnotations(res, c.Name, "", index.TargetClass, c.Annotations)
	validateClassKind(res, c)

	fields := map[string]struct{}{}

	for i := range c.Fields {
		fd := &c.Fields[i]
		if !validateMemberName(res, c.Name, "field", i, fd.Name, fields) {
			continue
		}

		if fd.Type == "" {
			res.AddError(diagnostic.CodeMissingName, "field has no type", c.Name, fd.Name)
		}

		validateAnnotations(res, c.Name, fd.Name, index.TargetField, fd.Annotations)
	}

	methods := map[string]struct{}{}

	for i := range c.Methods {
		md := &c.Methods[i]
		if !validateMemberName(res, c.Name, "method", i, md.Name, methods) {
			continue
		}

		validateAnnotations(res, c.Name, md.Name, index.TargetMethod, md.Annotations)
	}
}

func validateMemberName(res *diagnostic.Diagnostics, class, kind string, i int, name string, seen map[string]struct{}) bool {
	if name == "" {
		res.AddError(diagnostic.CodeMissingName, fmt.Sprintf("%s #%d has no name", kind, i+1), class, "")
		return false
	}

	if _, ok := seen[name]; ok {
		res.AddError(diagnostic.CodeDuplicateMember, fmt.Sprintf("duplicate %s %q", kind, name), class, name)
		return false
	}

	seen[name] = struct{}{}

	return true
}

func validateAnnotations(res *diagnostic.Diagnostics, class, member string, kind index.TargetKind, annotations []Annotation) {
	seen := map[index.DotName]struct{}{}

	for _, a := range annotations {
		dn, ok := persistence.Lookup(a.Name)
		if !ok {
			res.AddError(diagnostic.CodeUnknownAnnotation,
				fmt.Sprintf("unknown annotation %q%s", a.Name, match.Hint(a.Name, annotationNames)), class, member)
			continue
		}

		if _, ok := seen[dn]; ok {
			res.AddError(diagnostic.CodeDuplicateAnnotation,
				fmt.Sprintf("annotation %s given more than once", dn.Local()), class, member)
			continue
		}

		seen[dn] = struct{}{}

		if !persistence.AllowedOn(dn, kind) {
			res.AddError(diagnostic.CodeMisplacedAnnotation,
				fmt.Sprintf("annotation %s cannot be placed on a %s", dn.Local(), targetWord(kind)), class, member)
			continue
		}

		if dn == persistence.Access {
			if _, err := accessValue(a); err != nil {
				res.AddError(diagnostic.CodeInvalidAccessValue, err.Error(), class, member)
			}
		}
	}
}

func validateClassKind(res *diagnostic.Diagnostics, c *Class) {
	markers := map[index.DotName]bool{}

	for _, a := range c.Annotations {
		if dn, ok := persistence.Lookup(a.Name); ok {
			markers[dn] = true
		}
	}

	if a, b, ok := persistence.ConflictingKinds(func(n index.DotName) bool { return markers[n] }); ok {
		res.AddError(diagnostic.CodeConflictingAnnotation,
			fmt.Sprintf("a class cannot be annotated with both %s and %s", a.Local(), b.Local()), c.Name, "")
	}
}

func accessValue(a Annotation) (persistence.AccessType, error) {
	v, ok := a.Values["value"]
	if !ok {
		return 0, fmt.Errorf("annotation %s needs a value", persistence.Access.Local())
	}

	return persistence.ParseAccessType(v)
}

func targetWord(kind index.TargetKind) string {
	switch kind {
	case index.TargetClass:
		return "class"
	case index.TargetField:
		return "field"
	default:
		return "method"
	}
}

package index

import (
	"slices"
	"strings"
)

// DotName is a fully qualified class name, e.g. "shop.Order".
type DotName string

// String returns the name as a plain string.
func (n DotName) String() string {
	return string(n)
}

// Local returns the part after the last dot.
func (n DotName) Local() string {
	s := string(n)
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}

	return s
}

//go:generate go tool stringer -type=TargetKind -trimprefix=Target -output=target_string.go

// TargetKind tells which element an annotation is attached to.
type TargetKind int

const (
	TargetClass TargetKind = iota
	TargetField
	TargetMethod
)

// Target identifies the element an annotation instance is attached to.
type Target struct {
	Kind   TargetKind
	Class  DotName
	Member string // empty for class targets
}

// String returns "Class" or "Class.member".
func (t Target) String() string {
	if t.Member == "" {
		return t.Class.String()
	}

	return t.Class.String() + "." + t.Member
}

// AnnotationInstance is a single annotation occurrence.
type AnnotationInstance struct {
	Name   DotName
	Target Target
	Values map[string]string
}

// Value returns the named parameter value. An empty name means "value".
func (a *AnnotationInstance) Value(name string) (string, bool) {
	if name == "" {
		name = "value"
	}

	v, ok := a.Values[name]

	return v, ok
}

// FieldInfo describes a declared field.
type FieldInfo struct {
	Name      string
	Type      string // declared type expression, may mention type parameters
	Synthetic bool
	Static    bool
}

// MethodInfo describes a declared method.
type MethodInfo struct {
	Name      string
	Params    []string
	Results   []string
	Synthetic bool // compiler generated or bridge method
}

// ReturnType returns the single result type, or "" if the method does not
// return exactly one value.
func (m *MethodInfo) ReturnType() string {
	if len(m.Results) != 1 {
		return ""
	}

	return m.Results[0]
}

// ClassInfo is the structural descriptor of one class.
type ClassInfo struct {
	Name DotName
	// SuperName is empty when the class has no superclass.
	SuperName DotName
	// TypeParams are the type parameter names of a generic class.
	TypeParams []string
	// SuperTypeArgs are the type arguments the class passes to its superclass.
	SuperTypeArgs []string
	Fields        []FieldInfo
	Methods       []MethodInfo
	// Annotations groups the annotations of the class and its members by name.
	Annotations map[DotName][]AnnotationInstance
}

// String returns the class name.
func (c *ClassInfo) String() string {
	return c.Name.String()
}

// Field returns the declared field with the given name, or nil.
func (c *ClassInfo) Field(name string) *FieldInfo {
	i := slices.IndexFunc(c.Fields, func(f FieldInfo) bool { return f.Name == name })
	if i < 0 {
		return nil
	}

	return &c.Fields[i]
}

// Method returns the declared method with the given name, or nil.
func (c *ClassInfo) Method(name string) *MethodInfo {
	i := slices.IndexFunc(c.Methods, func(m MethodInfo) bool { return m.Name == name })
	if i < 0 {
		return nil
	}

	return &c.Methods[i]
}

// AnnotationsNamed returns every instance of the named annotation on the
// class or its members.
func (c *ClassInfo) AnnotationsNamed(name DotName) []AnnotationInstance {
	return c.Annotations[name]
}

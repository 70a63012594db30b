package metamodel

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"entity-binder/internal/index"
	"entity-binder/internal/persistence"
)

// isPersistentField reports whether a declared field can hold persistent state.
func isPersistentField(f *index.FieldInfo) bool {
	return !f.Synthetic && !f.Static && f.Name != "" && f.Name != "_"
}

// accessorProperty returns the property name exposed by a getter, or false
// if the method does not have getter shape. Getters either carry a Get/Is
// prefix (Is only for bool) or have a matching Set<Name> setter.
func accessorProperty(ci *index.ClassInfo, m *index.MethodInfo) (string, bool) {
	typ := m.ReturnType()
	if m.Synthetic || len(m.Params) != 0 || typ == "" {
		return "", false
	}

	if rest, ok := cutAccessorPrefix(m.Name, "Get", "get"); ok {
		return strcase.ToLowerCamel(rest), true
	}

	if typ == "bool" {
		if rest, ok := cutAccessorPrefix(m.Name, "Is", "is"); ok {
			return strcase.ToLowerCamel(rest), true
		}
	}

	if hasSetter(ci, m.Name, typ) {
		return strcase.ToLowerCamel(m.Name), true
	}

	return "", false
}

func cutAccessorPrefix(name string, prefixes ...string) (string, bool) {
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(name, p)
		if !ok || rest == "" {
			continue
		}

		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsUpper(r) || r == '_' {
			return rest, true
		}
	}

	return "", false
}

func hasSetter(ci *index.ClassInfo, name, typ string) bool {
	r, size := utf8.DecodeRuneInString(name)
	setter := ci.Method("Set" + string(unicode.ToUpper(r)) + name[size:])

	return setter != nil && len(setter.Params) == 1 && setter.Params[0] == typ
}

// fieldProperty names the property backed by a field. Fields and
// accessors share the lowerCamel convention, so field "FirstName" and
// getter "GetFirstName" both map property "firstName".
func fieldProperty(name string) string {
	return strcase.ToLowerCamel(name)
}

// memberKind is the member kind read under an access type.
func memberKind(a persistence.AccessType) index.TargetKind {
	if a == persistence.PROPERTY {
		return index.TargetMethod
	}

	return index.TargetField
}

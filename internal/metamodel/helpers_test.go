package metamodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"entity-binder/internal/index"
	"entity-binder/internal/persistence"
	"entity-binder/internal/typeresolve"
)

func class(name, super string) *index.ClassInfo {
	return &index.ClassInfo{Name: index.DotName(name), SuperName: index.DotName(super)}
}

func entity(ci *index.ClassInfo) *index.ClassInfo {
	return ci.Annotate(persistence.Entity, index.TargetClass, "", nil)
}

func mappedSuperclass(ci *index.ClassInfo) *index.ClassInfo {
	return ci.Annotate(persistence.MappedSuperclass, index.TargetClass, "", nil)
}

func withField(ci *index.ClassInfo, name, typ string, annotations ...index.DotName) *index.ClassInfo {
	ci.Fields = append(ci.Fields, index.FieldInfo{Name: name, Type: typ})
	for _, a := range annotations {
		ci.Annotate(a, index.TargetField, name, nil)
	}

	return ci
}

func withGetter(ci *index.ClassInfo, name, typ string, annotations ...index.DotName) *index.ClassInfo {
	ci.Methods = append(ci.Methods, index.MethodInfo{Name: name, Results: []string{typ}})
	for _, a := range annotations {
		ci.Annotate(a, index.TargetMethod, name, nil)
	}

	return ci
}

func withAccess(ci *index.ClassInfo, kind index.TargetKind, member, value string) *index.ClassInfo {
	return ci.Annotate(persistence.Access, kind, member, map[string]string{"value": value})
}

func newIndex(t *testing.T, classes ...*index.ClassInfo) *index.Index {
	t.Helper()

	x := index.NewIndexer()
	for _, ci := range classes {
		require.NoError(t, x.Index(ci))
	}

	return x.Complete()
}

func newBuilder(idx *index.Index, cfg Config) *Builder {
	return NewBuilder(idx, typeresolve.NewIndexResolver(idx), cfg)
}

func createHierarchies(t *testing.T, idx *index.Index) []*ConfiguredClassHierarchy {
	t.Helper()

	hierarchies, err := newBuilder(idx, DefaultConfig()).CreateEntityHierarchies(idx)
	require.NoError(t, err)

	return hierarchies
}

func classNames(h *ConfiguredClassHierarchy) []index.DotName {
	var names []index.DotName
	for c := range h.All() {
		names = append(names, c.Name())
	}

	return names
}

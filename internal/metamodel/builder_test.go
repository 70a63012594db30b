package metamodel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-binder/internal/diagnostic"
	"entity-binder/internal/index"
	"entity-binder/internal/persistence"
	"entity-binder/internal/typeresolve"
)

func fooIndex() []*index.ClassInfo {
	return []*index.ClassInfo{
		withField(entity(class("test.Foo", "")), "id", "int", persistence.Id),
	}
}

func abIndex() []*index.ClassInfo {
	return []*index.ClassInfo{
		withField(entity(class("test.B", "test.A")), "name", "string"),
		withField(entity(class("test.A", "")), "id", "int", persistence.Id),
	}
}

func TestSingleEntity(t *testing.T) {
	hierarchies := createHierarchies(t, newIndex(t, fooIndex()...))
	require.Len(t, hierarchies, 1, "there should be only one hierarchy")

	it := hierarchies[0].Iterator()
	require.True(t, it.HasNext())
	assert.Equal(t, index.DotName("test.Foo"), it.Next().ClassInfo().Name)
	assert.False(t, it.HasNext())
	assert.Nil(t, it.Next())
}

func TestSimpleInheritance(t *testing.T) {
	hierarchies := createHierarchies(t, newIndex(t, abIndex()...))
	require.Len(t, hierarchies, 1, "there should be only one hierarchy")

	h := hierarchies[0]
	assert.Equal(t, []index.DotName{"test.A", "test.B"}, classNames(h))

	a, b := h.Classes()[0], h.Classes()[1]
	assert.True(t, a.IsRoot())
	assert.Nil(t, a.Parent())
	assert.False(t, b.IsRoot())
	assert.Same(t, a, b.Parent())
	assert.Equal(t, []*ConfiguredClass{b}, h.Leaves())
}

func TestMultipleHierarchies(t *testing.T) {
	classes := append(abIndex(), fooIndex()...)
	hierarchies := createHierarchies(t, newIndex(t, classes...))
	require.Len(t, hierarchies, 2)

	assert.Equal(t, []index.DotName{"test.A", "test.B"}, classNames(hierarchies[0]))
	assert.Equal(t, []index.DotName{"test.Foo"}, classNames(hierarchies[1]))
}

func TestMappedSuperClass(t *testing.T) {
	idx := newIndex(t,
		withField(entity(class("test.MappedSubClass", "test.UnmappedSubClass")), "mappedProperty", "string"),
		withField(class("test.UnmappedSubClass", "test.MappedSuperClass"), "unmappedProperty", "string"),
		withField(mappedSuperclass(class("test.MappedSuperClass", "")), "id", "int", persistence.Id),
	)

	hierarchies := createHierarchies(t, idx)
	require.Len(t, hierarchies, 1)

	h := hierarchies[0]
	assert.Equal(t, []index.DotName{"test.MappedSuperClass", "test.MappedSubClass"}, classNames(h))
	assert.True(t, h.Root().IsMappedSuperClass())

	leaf := h.Classes()[1]
	assert.Same(t, h.Root(), leaf.Parent())

	_, ok := leaf.MappedProperty("unmappedProperty")
	assert.False(t, ok, "unmapped intermediate contributes no properties")
}

func TestEntityUnmappedMappedSuperClassEntity(t *testing.T) {
	idx := newIndex(t,
		entity(class("test.Leaf", "test.Plain")),
		class("test.Plain", "test.Middle"),
		mappedSuperclass(class("test.Middle", "test.Top")),
		withField(entity(class("test.Top", "")), "id", "int64", persistence.Id),
	)

	hierarchies := createHierarchies(t, idx)
	require.Len(t, hierarchies, 1)
	assert.Equal(t, []index.DotName{"test.Top", "test.Middle", "test.Leaf"}, classNames(hierarchies[0]))
}

func TestEntityAndMappedSuperClassAnnotations(t *testing.T) {
	idx := newIndex(t,
		withField(mappedSuperclass(entity(class("test.EntityAndMappedSuperClass", ""))), "id", "int", persistence.Id),
	)

	hierarchies, err := newBuilder(idx, DefaultConfig()).CreateEntityHierarchies(idx)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Nil(t, hierarchies)

	var ae *AnnotationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, index.DotName("test.EntityAndMappedSuperClass"), ae.Class)
}

func TestEmbeddableCannotBeMapped(t *testing.T) {
	embeddable := func(ci *index.ClassInfo) *index.ClassInfo {
		return ci.Annotate(persistence.Embeddable, index.TargetClass, "", nil)
	}

	t.Run("entity", func(t *testing.T) {
		idx := newIndex(t,
			withField(embeddable(entity(class("test.Address", ""))), "id", "int", persistence.Id),
		)

		hierarchies, err := newBuilder(idx, DefaultConfig()).CreateEntityHierarchies(idx)
		require.ErrorIs(t, err, ErrConfiguration)
		assert.Nil(t, hierarchies)
		assert.ErrorContains(t, err, "both Entity and Embeddable")
	})

	t.Run("mapped superclass", func(t *testing.T) {
		idx := newIndex(t,
			withField(embeddable(mappedSuperclass(class("test.Base", ""))), "id", "int", persistence.Id),
			entity(class("test.Leaf", "test.Base")),
		)

		_, err := newBuilder(idx, DefaultConfig()).CreateEntityHierarchies(idx)
		require.ErrorIs(t, err, ErrConfiguration)
		assert.ErrorContains(t, err, "both MappedSuperclass and Embeddable")

		var ae *AnnotationError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, index.DotName("test.Base"), ae.Class)
	})
}

func TestNoIdAnnotation(t *testing.T) {
	idx := newIndex(t,
		withField(entity(class("test.A", "")), "id", "string"),
		entity(class("test.B", "test.A")),
	)

	_, err := newBuilder(idx, DefaultConfig()).CreateEntityHierarchies(idx)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorContains(t, err, "test.A")
}

func TestDefaultFieldAccess(t *testing.T) {
	idx := newIndex(t,
		withField(entity(class("test.A", "")), "id", "string", persistence.Id),
		entity(class("test.B", "test.A")),
	)

	hierarchies := createHierarchies(t, idx)
	require.Len(t, hierarchies, 1)
	assert.Equal(t, persistence.FIELD, hierarchies[0].DefaultAccessType(), "wrong default access type")
}

func TestDefaultPropertyAccess(t *testing.T) {
	a := withField(entity(class("test.A", "")), "id", "string")
	withGetter(a, "getId", "string", persistence.Id)
	a.Methods = append(a.Methods, index.MethodInfo{Name: "setId", Params: []string{"string"}})

	idx := newIndex(t, a, entity(class("test.B", "test.A")))

	hierarchies := createHierarchies(t, idx)
	require.Len(t, hierarchies, 1)
	assert.Equal(t, persistence.PROPERTY, hierarchies[0].DefaultAccessType(), "wrong default access type")

	root := hierarchies[0].Root()
	assert.Equal(t, persistence.PROPERTY, root.AccessType())

	id, ok := root.MappedProperty("id")
	require.True(t, ok)
	assert.Equal(t, "string", id.Type())
}

func TestDefaultAccessFromMappedSuperClass(t *testing.T) {
	base := mappedSuperclass(class("test.Base", ""))
	withGetter(base, "GetID", "int64", persistence.Id)

	idx := newIndex(t, base, withField(entity(class("test.Order", "test.Base")), "Total", "int64"))

	hierarchies := createHierarchies(t, idx)
	require.Len(t, hierarchies, 1)
	assert.Equal(t, persistence.PROPERTY, hierarchies[0].DefaultAccessType())
}

func TestExplicitRootAccessWins(t *testing.T) {
	a := withField(entity(class("test.A", "")), "id", "int", persistence.Id)
	withAccess(a, index.TargetClass, "", "PROPERTY")

	hierarchies := createHierarchies(t, newIndex(t, a))
	require.Len(t, hierarchies, 1)
	assert.Equal(t, persistence.PROPERTY, hierarchies[0].DefaultAccessType())
}

func TestUnknownRootAccessValue(t *testing.T) {
	a := withField(entity(class("test.A", "")), "id", "int", persistence.Id)
	withAccess(a, index.TargetClass, "", "METHOD")

	idx := newIndex(t, a)
	_, err := newBuilder(idx, DefaultConfig()).CreateEntityHierarchies(idx)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestAmbiguousIdPlacement(t *testing.T) {
	a := withField(entity(class("test.A", "")), "id", "int", persistence.Id)
	withGetter(a, "GetKey", "int", persistence.EmbeddedId)

	idx := newIndex(t, a)
	_, err := newBuilder(idx, DefaultConfig()).CreateEntityHierarchies(idx)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorContains(t, err, "both a field and a method")
}

func TestSiblingEntitiesShareHierarchy(t *testing.T) {
	idx := newIndex(t,
		withField(entity(class("test.Animal", "")), "id", "int", persistence.Id),
		withField(entity(class("test.Dog", "test.Animal")), "barks", "bool"),
		withField(entity(class("test.Cat", "test.Animal")), "lives", "int"),
		withField(entity(class("test.Puppy", "test.Dog")), "age", "int"),
	)

	hierarchies := createHierarchies(t, idx)
	require.Len(t, hierarchies, 1, "siblings must not produce a second hierarchy")

	h := hierarchies[0]
	assert.Equal(t, []index.DotName{"test.Animal", "test.Cat", "test.Dog", "test.Puppy"}, classNames(h))

	leaves := h.Leaves()
	require.Len(t, leaves, 2)
	assert.Equal(t, index.DotName("test.Cat"), leaves[0].Name())
	assert.Equal(t, index.DotName("test.Puppy"), leaves[1].Name())
	assert.Equal(t, index.DotName("test.Dog"), leaves[1].Parent().Name())
}

func TestUnrelatedMappedSuperClassIsIgnored(t *testing.T) {
	classes := append(fooIndex(), withField(mappedSuperclass(class("test.Orphan", "")), "x", "int"))
	hierarchies := createHierarchies(t, newIndex(t, classes...))

	require.Len(t, hierarchies, 1)
	assert.Equal(t, []index.DotName{"test.Foo"}, classNames(hierarchies[0]))
}

func TestCyclicSuperclassChain(t *testing.T) {
	idx := newIndex(t,
		withField(entity(class("test.A", "test.B")), "id", "int", persistence.Id),
		entity(class("test.B", "test.A")),
	)

	_, err := newBuilder(idx, DefaultConfig()).CreateEntityHierarchies(idx)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorContains(t, err, "cyclic")
}

func TestSuperclassOutsideIndex(t *testing.T) {
	idx := newIndex(t,
		withField(entity(class("test.A", "java.lang.Object")), "id", "int", persistence.Id),
	)

	hierarchies := createHierarchies(t, idx)
	require.Len(t, hierarchies, 1)
	assert.Equal(t, 1, hierarchies[0].Len())
}

type failingLoader struct {
	fail index.DotName
	next ClassLoader
}

func (l failingLoader) ClassForName(name index.DotName) (*index.ClassInfo, error) {
	if name == l.fail {
		return nil, errors.New("boom")
	}

	return l.next.ClassForName(name)
}

func TestClassLoadingFailure(t *testing.T) {
	idx := newIndex(t, abIndex()...)
	loader := failingLoader{fail: "test.A", next: idx}

	_, err := NewBuilder(loader, typeresolve.NewIndexResolver(idx), DefaultConfig()).CreateEntityHierarchies(idx)
	require.ErrorIs(t, err, ErrClassLoading)
	assert.ErrorContains(t, err, "boom")
}

type staticResolver map[index.DotName]*typeresolve.ResolvedType

func (r staticResolver) ResolveHierarchy(leaf index.DotName) (*typeresolve.ResolvedType, error) {
	return r[leaf], nil
}

func TestResolverDisagreesWithIndex(t *testing.T) {
	idx := newIndex(t, fooIndex()...)

	// the resolver knows the class but not its field
	rt := typeresolve.NewResolvedType("test.Foo")
	rt.Add("test.Foo", typeresolve.NewMembers())

	_, err := NewBuilder(idx, staticResolver{"test.Foo": rt}, DefaultConfig()).CreateEntityHierarchies(idx)
	assert.ErrorIs(t, err, ErrAssertion)

	// the resolver does not know the class at all
	rt = typeresolve.NewResolvedType("test.Foo")
	_, err = NewBuilder(idx, staticResolver{"test.Foo": rt}, DefaultConfig()).CreateEntityHierarchies(idx)
	assert.ErrorIs(t, err, ErrAssertion)
}

func TestIdempotence(t *testing.T) {
	classes := append(abIndex(), fooIndex()...)
	idx := newIndex(t, classes...)
	b := newBuilder(idx, DefaultConfig())

	first, err := b.CreateEntityHierarchies(idx)
	require.NoError(t, err)
	second, err := b.CreateEntityHierarchies(idx)
	require.NoError(t, err)

	require.Len(t, second, len(first))

	for i := range first {
		assert.Equal(t, classNames(first[i]), classNames(second[i]))
		assert.Equal(t, first[i].String(), second[i].String())
		assert.NotSame(t, first[i], second[i])
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	var classes []*index.ClassInfo
	for _, n := range []string{"a", "b", "c", "d", "e", "f"} {
		root := withField(entity(class("test."+n+"Root", "")), "id", "int", persistence.Id)
		leaf := withField(entity(class("test."+n+"Leaf", "test."+n+"Root")), "name", "string")
		classes = append(classes, root, leaf)
	}

	idx := newIndex(t, classes...)

	seq, err := newBuilder(idx, DefaultConfig()).Build(context.Background(), idx)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Concurrency = 4
	par, err := newBuilder(idx, cfg).Build(context.Background(), idx)
	require.NoError(t, err)

	require.Len(t, par.Hierarchies, 6)
	for i := range seq.Hierarchies {
		assert.Equal(t, seq.Hierarchies[i].String(), par.Hierarchies[i].String())
	}
}

func TestParallelFailureReturnsNothing(t *testing.T) {
	idx := newIndex(t,
		withField(entity(class("test.Good", "")), "id", "int", persistence.Id),
		withField(entity(class("test.Bad", "")), "id", "int"),
	)

	cfg := DefaultConfig()
	cfg.Concurrency = 2

	res, err := newBuilder(idx, cfg).Build(context.Background(), idx)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Nil(t, res)
}

func TestBuildCancelled(t *testing.T) {
	idx := newIndex(t, fooIndex()...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newBuilder(idx, DefaultConfig()).Build(ctx, idx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildCollectsDiagnostics(t *testing.T) {
	a := withField(entity(class("test.A", "")), "id", "int", persistence.Id)
	withAccess(a, index.TargetField, "id", "FIELD")

	idx := newIndex(t, a)
	res, err := newBuilder(idx, DefaultConfig()).Build(context.Background(), idx)
	require.NoError(t, err)

	require.Len(t, res.Diagnostics.Warnings, 1)
	w := res.Diagnostics.Warnings[0]
	assert.Equal(t, diagnostic.CodeAccessOverrideIgnored, w.Code)
	assert.Equal(t, "test.A", w.Class)
	assert.Equal(t, "id", w.Member)
}

package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexer_Complete(t *testing.T) {
	x := NewIndexer()

	b := &ClassInfo{Name: "shop.B", SuperName: "shop.A"}
	b.Annotate("Entity", TargetClass, "", nil)

	a := &ClassInfo{
		Name:   "shop.A",
		Fields: []FieldInfo{{Name: "id", Type: "int"}},
	}
	a.Annotate("Entity", TargetClass, "", nil).
		Annotate("Id", TargetField, "id", nil)

	require.NoError(t, x.Index(b))
	require.NoError(t, x.Index(a))

	idx := x.Complete()
	assert.Equal(t, 2, idx.Len())

	known := idx.KnownClasses()
	require.Len(t, known, 2)
	assert.Equal(t, DotName("shop.A"), known[0].Name)
	assert.Equal(t, DotName("shop.B"), known[1].Name)

	entities := idx.Annotations("Entity")
	require.Len(t, entities, 2)
	assert.Equal(t, DotName("shop.A"), entities[0].Target.Class)
	assert.Equal(t, DotName("shop.B"), entities[1].Target.Class)

	ids := idx.Annotations("Id")
	require.Len(t, ids, 1)
	assert.Equal(t, TargetField, ids[0].Target.Kind)
	assert.Equal(t, "shop.A.id", ids[0].Target.String())
}

func TestIndexer_Duplicate(t *testing.T) {
	x := NewIndexer()
	require.NoError(t, x.Index(&ClassInfo{Name: "A"}))
	assert.Error(t, x.Index(&ClassInfo{Name: "A"}))
	assert.Error(t, x.Index(&ClassInfo{}))
}

func TestIndex_ClassForName(t *testing.T) {
	x := NewIndexer()
	require.NoError(t, x.Index(&ClassInfo{Name: "A"}))
	idx := x.Complete()

	ci, err := idx.ClassForName("A")
	require.NoError(t, err)
	assert.Equal(t, "A", ci.String())

	_, err = idx.ClassForName("Missing")
	require.ErrorIs(t, err, ErrClassNotFound)
	assert.Nil(t, idx.ClassByName("Missing"))
}

func TestClassInfo_Members(t *testing.T) {
	ci := &ClassInfo{
		Name:    "A",
		Fields:  []FieldInfo{{Name: "name", Type: "string"}},
		Methods: []MethodInfo{{Name: "GetName", Results: []string{"string"}}, {Name: "Pair", Results: []string{"int", "error"}}},
	}

	require.NotNil(t, ci.Field("name"))
	assert.Nil(t, ci.Field("other"))
	require.NotNil(t, ci.Method("GetName"))
	assert.Equal(t, "string", ci.Method("GetName").ReturnType())
	assert.Empty(t, ci.Method("Pair").ReturnType())
	assert.Empty(t, ci.AnnotationsNamed("Entity"))
}

func TestDotName_Local(t *testing.T) {
	assert.Equal(t, "Order", DotName("shop.Order").Local())
	assert.Equal(t, "Order", DotName("Order").Local())
	assert.Equal(t, "Field", TargetField.String())
	assert.Equal(t, "TargetKind(7)", TargetKind(7).String())
}

func TestMerge(t *testing.T) {
	x := NewIndexer()
	require.NoError(t, x.Index((&ClassInfo{Name: "a.A"}).Annotate("Entity", TargetClass, "", nil)))
	first := x.Complete()

	y := NewIndexer()
	require.NoError(t, y.Index((&ClassInfo{Name: "b.B"}).Annotate("Entity", TargetClass, "", nil)))
	second := y.Complete()

	merged, err := Merge(first, second)
	require.NoError(t, err)
	assert.Equal(t, 2, merged.Len())
	assert.Len(t, merged.Annotations("Entity"), 2)

	_, err = Merge(first, first)
	assert.ErrorContains(t, err, "a.A indexed twice")
}

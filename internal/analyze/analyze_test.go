package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-binder/internal/index"
	"entity-binder/internal/metamodel"
	"entity-binder/internal/persistence"
)

func properties(c *metamodel.ConfiguredClass) []string {
	var out []string
	for _, p := range c.MappedProperties() {
		out = append(out, p.String())
	}

	return out
}

func TestSampleHierarchies(t *testing.T) {
	analyzer, idx := loadSamples(t)

	cfg := metamodel.DefaultConfig()
	cfg.StrictAccessOverrides = true

	res, err := metamodel.NewBuilder(idx, analyzer.Resolver(), cfg).Build(context.Background(), idx)
	require.NoError(t, err)
	require.Len(t, res.Hierarchies, 2)

	store := res.Hierarchies[0]
	assert.Equal(t, persistence.FIELD, store.DefaultAccessType())

	var names []index.DotName
	for c := range store.All() {
		names = append(names, c.Name())
	}

	assert.Equal(t, []index.DotName{"store.Model", "store.Customer", "store.Order", "store.Product"}, names)

	classes := store.Classes()
	assert.True(t, classes[0].IsMappedSuperClass())
	assert.Equal(t, []string{"createdAt time.Time", "id string", "updatedAt time.Time"}, properties(classes[0]))

	assert.Equal(t, persistence.PROPERTY, classes[1].AccessType())
	assert.Equal(t, []string{"active bool", "address *string", "email string", "fullName string"}, properties(classes[1]))

	assert.Equal(t, []string{
		"customerId int64", "orderedAt time.Time", "status OrderStatus", "totalCents int64",
	}, properties(classes[2]))

	warehouse := res.Hierarchies[1]
	assert.Equal(t, persistence.PROPERTY, warehouse.DefaultAccessType())
	require.Equal(t, 3, warehouse.Len())

	classes = warehouse.Classes()
	assert.Equal(t, index.DotName("warehouse.Tracked"), classes[0].Name())
	assert.Equal(t, []string{"id uint"}, properties(classes[0]))
	assert.Equal(t, []string{
		"carrier string", "destination Address", "label []byte", "weight float64",
	}, properties(classes[1]))
	assert.Equal(t, []string{"deadline time.Time"}, properties(classes[2]))
	assert.Same(t, classes[1], classes[2].Parent())
}

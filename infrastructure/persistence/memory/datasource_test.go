package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "herbnet/pkg/errors"
)

func TestSeededDataSource_LookupHerb(t *testing.T) {
	ds := NewSeededDataSource()

	herb, err := ds.LookupHerb(context.Background(), "Astragalus")
	require.NoError(t, err)
	assert.Equal(t, "Astragalus", herb.Name())
	assert.Greater(t, herb.CompoundCount(), 0)

	_, err = ds.LookupHerb(context.Background(), "Unknown herb")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSeededDataSource_LookupDisease(t *testing.T) {
	ds := NewSeededDataSource()

	disease, err := ds.LookupDisease(context.Background(), "Type 2 diabetes")
	require.NoError(t, err)
	assert.Equal(t, "DisGeNET", disease.Source())
	assert.Greater(t, disease.Targets().Len(), 0)

	_, err = ds.LookupDisease(context.Background(), "Unknown disease")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSeededDataSource_PathwayCatalog(t *testing.T) {
	ds := NewSeededDataSource()

	catalog, err := ds.PathwayCatalog(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, catalog)

	ids := make(map[string]bool, len(catalog))
	for _, p := range catalog {
		assert.Greater(t, p.Size(), 0)
		assert.False(t, ids[p.ID()], "duplicate pathway id %s", p.ID())
		ids[p.ID()] = true
	}
	assert.True(t, ids["hsa04151"])
}

func TestDataSource_EmptyStore(t *testing.T) {
	ds := NewDataSource()

	_, err := ds.LookupHerb(context.Background(), "Astragalus")
	assert.True(t, pkgerrors.IsNotFound(err))

	catalog, err := ds.PathwayCatalog(context.Background())
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

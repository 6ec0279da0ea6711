package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbnet/domain/core/entities"
	pkgerrors "herbnet/pkg/errors"
)

func mustCompound(t *testing.T, name string, ob, dl float64, targets ...entities.Target) entities.Compound {
	t.Helper()
	c, err := entities.NewCompound(name, ob, dl, targets)
	require.NoError(t, err)
	return c
}

func mustHerb(t *testing.T, name string, compounds ...entities.Compound) *entities.Herb {
	t.Helper()
	h, err := entities.NewHerb(name, compounds)
	require.NoError(t, err)
	return h
}

func TestCompoundFilter_Defaults(t *testing.T) {
	filter := NewCompoundFilter(nil)
	ob, dl := filter.Defaults()
	assert.Equal(t, 30.0, ob)
	assert.Equal(t, 0.18, dl)
}

func TestCompoundFilter_ValidateThresholds(t *testing.T) {
	tests := []struct {
		name    string
		ob      float64
		dl      float64
		wantErr bool
	}{
		{name: "defaults valid", ob: 30, dl: 0.18},
		{name: "boundary values valid", ob: 0, dl: 0},
		{name: "upper bounds valid", ob: 100, dl: 1},
		{name: "ob below range", ob: -1, dl: 0.18, wantErr: true},
		{name: "ob above range", ob: 100.5, dl: 0.18, wantErr: true},
		{name: "dl below range", ob: 30, dl: -0.01, wantErr: true},
		{name: "dl above range", ob: 30, dl: 1.1, wantErr: true},
	}

	filter := NewCompoundFilter(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := filter.ValidateThresholds(tt.ob, tt.dl)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pkgerrors.IsInvalidParameter(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCompoundFilter_Filter(t *testing.T) {
	herb := mustHerb(t, "Astragalus",
		mustCompound(t, "Astragaloside IV", 22.5, 0.15, "AKT1"),
		mustCompound(t, "Calycosin", 47.75, 0.24, "TNF", "IL6"),
		mustCompound(t, "Formononetin", 69.67, 0.21, "ESR1"),
	)

	filter := NewCompoundFilter(nil)
	kept, err := filter.Filter(herb, 30, 0.18)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	// Input order is preserved
	assert.Equal(t, "Calycosin", kept[0].Name())
	assert.Equal(t, "Formononetin", kept[1].Name())
}

func TestCompoundFilter_BoundaryValuesPass(t *testing.T) {
	herb := mustHerb(t, "Boundary",
		mustCompound(t, "Exact", 30, 0.18, "AKT1"),
		mustCompound(t, "JustUnder", 29.99, 0.18, "AKT1"),
	)

	filter := NewCompoundFilter(nil)
	kept, err := filter.Filter(herb, 30, 0.18)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "Exact", kept[0].Name())
}

func TestCompoundFilter_RaisingThresholdsNeverGrowsResult(t *testing.T) {
	herb := mustHerb(t, "Mixed",
		mustCompound(t, "A", 20, 0.1, "T1"),
		mustCompound(t, "B", 35, 0.2, "T2"),
		mustCompound(t, "C", 50, 0.3, "T3"),
		mustCompound(t, "D", 80, 0.5, "T4"),
	)

	filter := NewCompoundFilter(nil)
	prev := len(herb.Compounds()) + 1
	for _, thresholds := range []struct{ ob, dl float64 }{
		{0, 0}, {30, 0.18}, {45, 0.25}, {70, 0.4}, {100, 1},
	} {
		kept, err := filter.Filter(herb, thresholds.ob, thresholds.dl)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(kept), prev)
		prev = len(kept)
	}
}

func TestCompoundFilter_NoCompoundsPass(t *testing.T) {
	herb := mustHerb(t, "Weak",
		mustCompound(t, "Low", 10, 0.05, "AKT1"),
	)

	filter := NewCompoundFilter(nil)
	kept, err := filter.Filter(herb, 30, 0.18)
	require.NoError(t, err)
	assert.Empty(t, kept)
}

func TestCompoundFilter_InvalidThresholdsFailBeforeFiltering(t *testing.T) {
	herb := mustHerb(t, "Astragalus",
		mustCompound(t, "Calycosin", 47.75, 0.24, "TNF"),
	)

	filter := NewCompoundFilter(nil)
	_, err := filter.Filter(herb, -5, 0.18)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidParameter(err))
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbnet/domain/core/entities"
	pkgerrors "herbnet/pkg/errors"
)

func mustDisease(t *testing.T, name string, source string, targets ...entities.Target) *entities.Disease {
	t.Helper()
	d, err := entities.NewDisease(name, targets, source)
	require.NoError(t, err)
	return d
}

func TestDiseaseIntersector_Intersect(t *testing.T) {
	disease := mustDisease(t, "Type 2 diabetes", "DisGeNET", "INSR", "AKT1", "PPARG", "SLC2A4")
	targets := entities.NewTargetSet("AKT1", "PPARG", "TNF")

	got, err := NewDiseaseIntersector().Intersect(targets, disease)
	require.NoError(t, err)

	assert.Equal(t, "Type 2 diabetes", got.Disease)
	assert.Equal(t, "DisGeNET", got.Source)
	assert.Equal(t, []entities.Target{"AKT1", "PPARG"}, got.CommonTargets)
	assert.Len(t, got.DiseaseTargets, 4)
	assert.InDelta(t, 50.0, got.CoverageRate, 1e-9)
}

func TestDiseaseIntersector_ZeroOverlapIsNotAnError(t *testing.T) {
	disease := mustDisease(t, "Coronary heart disease", "OMIM", "NOS3", "APOB")
	targets := entities.NewTargetSet("TNF", "IL6")

	got, err := NewDiseaseIntersector().Intersect(targets, disease)
	require.NoError(t, err)
	assert.Empty(t, got.CommonTargets)
	assert.Zero(t, got.CoverageRate)
}

func TestDiseaseIntersector_EmptyTargetSet(t *testing.T) {
	disease := mustDisease(t, "Inflammation", "GeneCards", "TNF")

	got, err := NewDiseaseIntersector().Intersect(entities.NewTargetSet(), disease)
	require.NoError(t, err)
	assert.Empty(t, got.CommonTargets)
	assert.Zero(t, got.CoverageRate)
}

func TestDiseaseIntersector_NilDisease(t *testing.T) {
	_, err := NewDiseaseIntersector().Intersect(entities.NewTargetSet("TNF"), nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidParameter(err))
}

package services

import (
	"herbnet/domain/core/entities"
	pkgerrors "herbnet/pkg/errors"
)

// DiseaseIntersection is the overlap between an aggregated target set and a
// disease's known targets, with the coverage rate over the disease set.
type DiseaseIntersection struct {
	Disease        string
	DiseaseTargets []entities.Target
	CommonTargets  []entities.Target
	CoverageRate   float64 // percent of disease targets covered
	Source         string
}

// DiseaseIntersector intersects aggregated targets with disease annotations
type DiseaseIntersector struct{}

// NewDiseaseIntersector creates a disease intersector
func NewDiseaseIntersector() *DiseaseIntersector {
	return &DiseaseIntersector{}
}

// Intersect computes the pure set intersection of the aggregated targets
// with the disease's known target set. Zero overlap is a success state with
// an empty common list, never an error.
func (d *DiseaseIntersector) Intersect(targets entities.TargetSet, disease *entities.Disease) (*DiseaseIntersection, error) {
	if disease == nil {
		return nil, pkgerrors.NewInvalidParameterError("disease cannot be nil")
	}

	diseaseTargets := disease.Targets()
	common := targets.Intersect(diseaseTargets)

	coverage := 0.0
	if diseaseTargets.Len() > 0 {
		coverage = float64(common.Len()) / float64(diseaseTargets.Len()) * 100
	}

	return &DiseaseIntersection{
		Disease:        disease.Name(),
		DiseaseTargets: diseaseTargets.Sorted(),
		CommonTargets:  common.Sorted(),
		CoverageRate:   coverage,
		Source:         disease.Source(),
	}, nil
}

package services

import (
	"herbnet/domain/config"
	"herbnet/domain/core/entities"
	pkgerrors "herbnet/pkg/errors"
)

// CompoundFilter screens a herb's compounds by the OB/DL activity thresholds.
// This is a domain service: side-effect free and deterministic for a given
// DataSource state.
type CompoundFilter struct {
	cfg *config.DomainConfig
}

// NewCompoundFilter creates a compound filter
func NewCompoundFilter(cfg *config.DomainConfig) *CompoundFilter {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &CompoundFilter{cfg: cfg}
}

// Defaults returns the configured default thresholds
func (f *CompoundFilter) Defaults() (obThreshold, dlThreshold float64) {
	return f.cfg.DefaultOBThreshold, f.cfg.DefaultDLThreshold
}

// ValidateThresholds rejects thresholds outside their domains before any
// computation begins.
func (f *CompoundFilter) ValidateThresholds(obThreshold, dlThreshold float64) error {
	if obThreshold < 0 || obThreshold > 100 {
		return pkgerrors.NewInvalidParameterError("ob_threshold must be within [0, 100]")
	}
	if dlThreshold < 0 || dlThreshold > 1 {
		return pkgerrors.NewInvalidParameterError("dl_threshold must be within [0, 1]")
	}
	return nil
}

// Filter returns the herb's compounds satisfying OB >= obThreshold and
// DL >= dlThreshold, preserving the herb's compound order. An empty result
// is a valid outcome, not an error.
func (f *CompoundFilter) Filter(herb *entities.Herb, obThreshold, dlThreshold float64) ([]entities.Compound, error) {
	if herb == nil {
		return nil, pkgerrors.NewInvalidParameterError("herb cannot be nil")
	}
	if err := f.ValidateThresholds(obThreshold, dlThreshold); err != nil {
		return nil, err
	}

	var active []entities.Compound
	for _, c := range herb.Compounds() {
		if c.Passes(obThreshold, dlThreshold) {
			active = append(active, c)
		}
	}
	return active, nil
}

package entities

import (
	pkgerrors "herbnet/pkg/errors"
)

// Compound is a chemical constituent of a herb, carrying the two screening
// properties (oral bioavailability and drug-likeness) and the targets it is
// known to act on. Compounds are never mutated after construction.
type Compound struct {
	name    string
	ob      float64 // oral bioavailability, percent (0-100)
	dl      float64 // drug-likeness (0-1)
	targets []Target
}

// NewCompound creates a compound with property validation
func NewCompound(name string, ob, dl float64, targets []Target) (Compound, error) {
	if name == "" {
		return Compound{}, pkgerrors.NewInvalidParameterError("compound name cannot be empty")
	}
	if ob < 0 || ob > 100 {
		return Compound{}, pkgerrors.NewInvalidParameterError("compound OB must be within [0, 100]")
	}
	if dl < 0 || dl > 1 {
		return Compound{}, pkgerrors.NewInvalidParameterError("compound DL must be within [0, 1]")
	}

	copied := make([]Target, len(targets))
	copy(copied, targets)

	return Compound{
		name:    name,
		ob:      ob,
		dl:      dl,
		targets: copied,
	}, nil
}

// Name returns the compound identifier
func (c Compound) Name() string {
	return c.name
}

// OB returns the oral bioavailability percentage
func (c Compound) OB() float64 {
	return c.ob
}

// DL returns the drug-likeness score
func (c Compound) DL() float64 {
	return c.dl
}

// Targets returns a copy of the compound's target list
func (c Compound) Targets() []Target {
	copied := make([]Target, len(c.targets))
	copy(copied, c.targets)
	return copied
}

// TargetSet returns the compound's targets as a set
func (c Compound) TargetSet() TargetSet {
	return NewTargetSet(c.targets...)
}

// Passes reports whether the compound satisfies both screening thresholds
func (c Compound) Passes(obThreshold, dlThreshold float64) bool {
	return c.ob >= obThreshold && c.dl >= dlThreshold
}

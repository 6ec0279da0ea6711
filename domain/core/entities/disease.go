package entities

import (
	pkgerrors "herbnet/pkg/errors"
)

// Disease is an external disease annotation: the identifier, the targets
// associated with it, and the annotation database it came from.
type Disease struct {
	name    string
	targets TargetSet
	source  string // e.g. "OMIM", "DisGeNET"
}

// NewDisease creates a disease annotation
func NewDisease(name string, targets []Target, source string) (*Disease, error) {
	if name == "" {
		return nil, pkgerrors.NewInvalidParameterError("disease name cannot be empty")
	}

	return &Disease{
		name:    name,
		targets: NewTargetSet(targets...),
		source:  source,
	}, nil
}

// Name returns the disease identifier
func (d *Disease) Name() string {
	return d.name
}

// Targets returns the disease's associated target set
func (d *Disease) Targets() TargetSet {
	copied := make(TargetSet, len(d.targets))
	for t := range d.targets {
		copied[t] = true
	}
	return copied
}

// Source returns the annotation database label
func (d *Disease) Source() string {
	return d.source
}

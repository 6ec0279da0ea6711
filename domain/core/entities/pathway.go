package entities

import (
	pkgerrors "herbnet/pkg/errors"
)

// Pathway is a biological pathway gene set, used by enrichment analysis.
// The member set doubles as the pathway's background gene count.
type Pathway struct {
	id    string // e.g. KEGG identifier "hsa04151"
	name  string
	genes TargetSet
}

// NewPathway creates a pathway with its member gene set
func NewPathway(id, name string, genes []Target) (Pathway, error) {
	if id == "" {
		return Pathway{}, pkgerrors.NewInvalidParameterError("pathway id cannot be empty")
	}
	if len(genes) == 0 {
		return Pathway{}, pkgerrors.NewInvalidParameterError("pathway gene set cannot be empty")
	}

	return Pathway{
		id:    id,
		name:  name,
		genes: NewTargetSet(genes...),
	}, nil
}

// ID returns the pathway identifier
func (p Pathway) ID() string {
	return p.id
}

// Name returns the human-readable pathway name
func (p Pathway) Name() string {
	return p.name
}

// Genes returns the member gene set
func (p Pathway) Genes() TargetSet {
	// Copy so callers cannot mutate the catalog entry
	copied := make(TargetSet, len(p.genes))
	for g := range p.genes {
		copied[g] = true
	}
	return copied
}

// Size returns the background gene set size
func (p Pathway) Size() int {
	return len(p.genes)
}

// Contains reports whether the pathway includes the given gene
func (p Pathway) Contains(t Target) bool {
	return p.genes[t]
}

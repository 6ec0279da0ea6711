package entities

import (
	"sort"

	pkgerrors "herbnet/pkg/errors"
)

// Herb is a medicinal herb and the compounds attributed to it. Created by a
// DataSource lookup and immutable for the duration of an analysis run.
type Herb struct {
	name      string
	compounds []Compound
}

// NewHerb creates a herb with its compound list
func NewHerb(name string, compounds []Compound) (*Herb, error) {
	if name == "" {
		return nil, pkgerrors.NewInvalidParameterError("herb name cannot be empty")
	}

	copied := make([]Compound, len(compounds))
	copy(copied, compounds)

	return &Herb{
		name:      name,
		compounds: copied,
	}, nil
}

// Name returns the herb identifier
func (h *Herb) Name() string {
	return h.name
}

// Compounds returns a copy of the herb's compound list
func (h *Herb) Compounds() []Compound {
	copied := make([]Compound, len(h.compounds))
	copy(copied, h.compounds)
	return copied
}

// CompoundCount returns the number of compounds attributed to the herb
func (h *Herb) CompoundCount() int {
	return len(h.compounds)
}

// TargetSet returns the union of all compound targets
func (h *Herb) TargetSet() TargetSet {
	set := make(TargetSet)
	for _, c := range h.compounds {
		for _, t := range c.targets {
			set.Add(t)
		}
	}
	return set
}

// ComponentNames returns the compound identifiers in lexical order
func (h *Herb) ComponentNames() []string {
	names := make([]string, 0, len(h.compounds))
	for _, c := range h.compounds {
		names = append(names, c.name)
	}
	sort.Strings(names)
	return names
}

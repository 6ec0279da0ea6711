package entities

import "sort"

// Target identifies a gene/protein product a compound is predicted or known
// to bind or modulate. Targets are shared read-only across herbs; identity
// is the gene symbol.
type Target string

// TargetSet is a set of targets keyed by gene symbol
type TargetSet map[Target]bool

// NewTargetSet builds a set from the given symbols
func NewTargetSet(targets ...Target) TargetSet {
	set := make(TargetSet, len(targets))
	for _, t := range targets {
		if t != "" {
			set[t] = true
		}
	}
	return set
}

// Add inserts a target into the set
func (s TargetSet) Add(t Target) {
	if t != "" {
		s[t] = true
	}
}

// Contains reports whether the set holds the given target
func (s TargetSet) Contains(t Target) bool {
	return s[t]
}

// Union returns a new set holding every target in either set
func (s TargetSet) Union(other TargetSet) TargetSet {
	union := make(TargetSet, len(s)+len(other))
	for t := range s {
		union[t] = true
	}
	for t := range other {
		union[t] = true
	}
	return union
}

// Intersect returns a new set holding targets present in both sets
func (s TargetSet) Intersect(other TargetSet) TargetSet {
	intersection := make(TargetSet)
	for t := range s {
		if other[t] {
			intersection[t] = true
		}
	}
	return intersection
}

// Sorted returns the members in lexical order for deterministic output
func (s TargetSet) Sorted() []Target {
	sorted := make([]Target, 0, len(s))
	for t := range s {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

// SortedStrings returns the members as plain strings in lexical order
func (s TargetSet) SortedStrings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, t := range sorted {
		out[i] = string(t)
	}
	return out
}

// Len returns the set cardinality
func (s TargetSet) Len() int {
	return len(s)
}

package services

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"herbnet/domain/config"
	"herbnet/domain/core/entities"
	pkgerrors "herbnet/pkg/errors"
)

// SimilarityMethod selects how a herb pair is scored
type SimilarityMethod string

const (
	MethodJaccardTargets    SimilarityMethod = "jaccard_targets"
	MethodJaccardComponents SimilarityMethod = "jaccard_components"
	MethodCombined          SimilarityMethod = "combined"
)

// ParseSimilarityMethod validates a method name, defaulting to combined
func ParseSimilarityMethod(s string) (SimilarityMethod, error) {
	switch SimilarityMethod(s) {
	case MethodJaccardTargets, MethodJaccardComponents, MethodCombined:
		return SimilarityMethod(s), nil
	case "":
		return MethodCombined, nil
	default:
		return "", pkgerrors.NewInvalidParameterError(fmt.Sprintf("unknown similarity method %q", s))
	}
}

// HerbFeatures is the pre-extracted feature sets for one herb. Building
// features once per herb and reusing them for every pair keeps a batch of n
// herbs at n feature extractions instead of n*(n-1).
type HerbFeatures struct {
	Name       string
	Targets    entities.TargetSet
	Components map[string]bool
}

// NewHerbFeatures extracts the target and component sets from a herb's
// filtered compounds.
func NewHerbFeatures(name string, filtered []entities.Compound) HerbFeatures {
	features := HerbFeatures{
		Name:       name,
		Targets:    make(entities.TargetSet),
		Components: make(map[string]bool, len(filtered)),
	}
	for _, c := range filtered {
		features.Components[c.Name()] = true
		for _, t := range c.Targets() {
			features.Targets.Add(t)
		}
	}
	return features
}

// PairSimilarity is the scored comparison of one unordered herb pair
type PairSimilarity struct {
	HerbA               string
	HerbB               string
	Similarity          float64
	TargetSimilarity    float64
	ComponentSimilarity float64
	CommonTargets       []entities.Target
	CommonComponents    []string
}

// SimilarityMatrix is the symmetric pairwise similarity over a herb batch.
// similarity(A,B) == similarity(B,A) by construction.
type SimilarityMatrix struct {
	herbs  []string
	index  map[string]int
	scores [][]float64
	pairs  []PairSimilarity
}

// Herbs returns the herb names in batch order
func (m *SimilarityMatrix) Herbs() []string {
	herbs := make([]string, len(m.herbs))
	copy(herbs, m.herbs)
	return herbs
}

// Similarity returns the score for an unordered herb pair
func (m *SimilarityMatrix) Similarity(a, b string) (float64, bool) {
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	return m.scores[i][j], true
}

// Pairs returns the distinct pairs sorted by similarity descending,
// tie-broken by herb names for deterministic output.
func (m *SimilarityMatrix) Pairs() []PairSimilarity {
	pairs := make([]PairSimilarity, len(m.pairs))
	copy(pairs, m.pairs)
	return pairs
}

// SimilarityEngine computes Jaccard similarity between herbs over their
// target sets and/or their active-compound sets, with a configurable blend.
type SimilarityEngine struct {
	cfg *config.DomainConfig
}

// NewSimilarityEngine creates a similarity engine
func NewSimilarityEngine(cfg *config.DomainConfig) *SimilarityEngine {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &SimilarityEngine{cfg: cfg}
}

// Pair scores one herb pair with the given method
func (e *SimilarityEngine) Pair(a, b HerbFeatures, method SimilarityMethod) PairSimilarity {
	targetSim := jaccardTargets(a.Targets, b.Targets)
	componentSim := jaccardStrings(a.Components, b.Components)

	var similarity float64
	switch method {
	case MethodJaccardTargets:
		similarity = targetSim
	case MethodJaccardComponents:
		similarity = componentSim
	default: // combined
		similarity = e.cfg.TargetWeight*targetSim + e.cfg.ComponentWeight*componentSim
	}

	return PairSimilarity{
		HerbA:               a.Name,
		HerbB:               b.Name,
		Similarity:          similarity,
		TargetSimilarity:    targetSim,
		ComponentSimilarity: componentSim,
		CommonTargets:       a.Targets.Intersect(b.Targets).Sorted(),
		CommonComponents:    commonStrings(a.Components, b.Components),
	}
}

// Matrix computes the full symmetric similarity matrix for a batch of two or
// more herbs. The n*(n-1)/2 pair evaluations are independent and fan out in
// parallel; each writes its own (i, j) cell, so assembly is order-free.
func (e *SimilarityEngine) Matrix(ctx context.Context, features []HerbFeatures, method SimilarityMethod) (*SimilarityMatrix, error) {
	if len(features) < 2 {
		return nil, pkgerrors.NewInvalidParameterError("similarity requires at least 2 herbs")
	}

	m := &SimilarityMatrix{
		herbs:  make([]string, len(features)),
		index:  make(map[string]int, len(features)),
		scores: make([][]float64, len(features)),
	}
	for i, f := range features {
		m.herbs[i] = f.Name
		m.index[f.Name] = i
		m.scores[i] = make([]float64, len(features))
	}

	pairs := make([]PairSimilarity, 0, len(features)*(len(features)-1)/2)
	g, _ := errgroup.WithContext(ctx)
	results := make([][]PairSimilarity, len(features))

	for i := range features {
		i := i
		g.Go(func() error {
			row := make([]PairSimilarity, 0, len(features)-i)
			for j := i; j < len(features); j++ {
				pair := e.Pair(features[i], features[j], method)
				m.scores[i][j] = pair.Similarity
				m.scores[j][i] = pair.Similarity
				if j > i {
					row = append(row, pair)
				}
			}
			results[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, row := range results {
		pairs = append(pairs, row...)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Similarity != pairs[j].Similarity {
			return pairs[i].Similarity > pairs[j].Similarity
		}
		if pairs[i].HerbA != pairs[j].HerbA {
			return pairs[i].HerbA < pairs[j].HerbA
		}
		return pairs[i].HerbB < pairs[j].HerbB
	})
	m.pairs = pairs

	return m, nil
}

// jaccardTargets calculates the Jaccard index |A ∩ B| / |A ∪ B| over target
// sets. Two empty sets score 0.0: an empty union must not divide.
func jaccardTargets(a, b entities.TargetSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}

	intersection := 0
	union := len(b)
	for t := range a {
		if b[t] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// jaccardStrings is the same index over component name sets
func jaccardStrings(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}

	intersection := 0
	union := len(b)
	for s := range a {
		if b[s] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func commonStrings(a, b map[string]bool) []string {
	var common []string
	for s := range a {
		if b[s] {
			common = append(common, s)
		}
	}
	sort.Strings(common)
	return common
}

package config

// DomainConfig holds all configurable business rules and constraints
// for the network-pharmacology analysis pipeline.
type DomainConfig struct {
	// Compound screening thresholds
	DefaultOBThreshold float64 // oral bioavailability, percent
	DefaultDLThreshold float64 // drug-likeness, 0-1 scale

	// Similarity blending weights (must sum to 1.0)
	TargetWeight    float64
	ComponentWeight float64

	// Network constraints
	DefaultMaxNodes int
	MaxNodeBudget   int // hard clamp so a caller cannot request an unbounded layout

	// Layout settings
	DefaultLayoutSeed int64
	LayoutIterations  int

	// Defaults applied when a request leaves the choice open
	DefaultSimilarityMethod string
	DefaultLayout           string
	DefaultOutputFormat     string
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		DefaultOBThreshold: 30.0,
		DefaultDLThreshold: 0.18,

		TargetWeight:    0.6,
		ComponentWeight: 0.4,

		DefaultMaxNodes: 50,
		MaxNodeBudget:   500,

		DefaultLayoutSeed: 42,
		LayoutIterations:  100,

		DefaultSimilarityMethod: "combined",
		DefaultLayout:           "spring",
		DefaultOutputFormat:     "png",
	}
}

// ClampMaxNodes bounds a requested node budget to the configured ceiling.
// Non-positive budgets are left untouched so validation can reject them.
func (c *DomainConfig) ClampMaxNodes(maxNodes int) int {
	if maxNodes > c.MaxNodeBudget {
		return c.MaxNodeBudget
	}
	return maxNodes
}

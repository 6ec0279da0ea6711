package api

import "time"

// AnalysisRequest asks for the target-profile analysis of a herb batch,
// optionally intersected with a disease.
type AnalysisRequest struct {
	Herbs       []string `json:"herbs" validate:"required,min=1,dive,required"`
	Disease     string   `json:"disease,omitempty"`
	OBThreshold *float64 `json:"ob_threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
	DLThreshold *float64 `json:"dl_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// SimilarityRequest asks for pairwise similarity over a herb batch
type SimilarityRequest struct {
	Herbs       []string `json:"herbs" validate:"required,min=2,dive,required"`
	Method      string   `json:"method,omitempty"`
	OBThreshold *float64 `json:"ob_threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
	DLThreshold *float64 `json:"dl_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// NetworkRequest asks for a laid-out, rendered interaction network
type NetworkRequest struct {
	Herbs        []string `json:"herbs" validate:"required,min=1,dive,required"`
	Disease      string   `json:"disease,omitempty"`
	OBThreshold  *float64 `json:"ob_threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
	DLThreshold  *float64 `json:"dl_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	MaxNodes     *int     `json:"max_nodes,omitempty"`
	Layout       string   `json:"layout,omitempty"`
	OutputFormat string   `json:"output_format,omitempty"`
}

// PathwayResult is one row of the enrichment table
type PathwayResult struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	PValue  float64  `json:"p_value"`
	Overlap int      `json:"overlap"`
	Genes   []string `json:"genes"`
}

// DiseaseIntersectionResult reports a disease overlap
type DiseaseIntersectionResult struct {
	Disease       string   `json:"disease"`
	Source        string   `json:"source,omitempty"`
	CommonTargets []string `json:"common_targets"`
	CommonCount   int      `json:"common_count"`
	DiseaseCount  int      `json:"disease_count"`
	CoverageRate  float64  `json:"coverage_rate"`
}

// AnalysisResponse is the full target-profile analysis of a herb batch
type AnalysisResponse struct {
	HerbsAnalyzed       []string                   `json:"herbs_analyzed"`
	MissingHerbs        []string                   `json:"missing_herbs,omitempty"`
	OBThreshold         float64                    `json:"ob_threshold"`
	DLThreshold         float64                    `json:"dl_threshold"`
	ActiveCompounds     int                        `json:"active_compounds"`
	TotalTargets        int                        `json:"total_targets"`
	Targets             []string                   `json:"targets"`
	HerbTargets         map[string][]string        `json:"herb_targets"`
	Pathways            []PathwayResult            `json:"pathways"`
	DiseaseIntersection *DiseaseIntersectionResult `json:"disease_intersection,omitempty"`
}

// SimilarityPairResult is one scored herb pair
type SimilarityPairResult struct {
	HerbA               string   `json:"herb_a"`
	HerbB               string   `json:"herb_b"`
	Similarity          float64  `json:"similarity"`
	TargetSimilarity    float64  `json:"target_similarity"`
	ComponentSimilarity float64  `json:"component_similarity"`
	CommonTargets       []string `json:"common_targets"`
	CommonComponents    []string `json:"common_components"`
}

// SimilarityResponse is the pairwise similarity analysis of a herb batch
type SimilarityResponse struct {
	Herbs        []string               `json:"herbs"`
	MissingHerbs []string               `json:"missing_herbs,omitempty"`
	Method       string                 `json:"method"`
	Matrix       [][]float64            `json:"matrix"`
	Pairs        []SimilarityPairResult `json:"pairs"`
	MostSimilar  *SimilarityPairResult  `json:"most_similar,omitempty"`
	LeastSimilar *SimilarityPairResult  `json:"least_similar,omitempty"`
}

// NetworkNode is one node of the rendered network
type NetworkNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

// NetworkEdge is one typed edge of the rendered network
type NetworkEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
}

// Position is a node's layout coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Artifact describes one rendered image file
type Artifact struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Format    string    `json:"format"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// NetworkResponse is the built, laid-out, rendered network
type NetworkResponse struct {
	Nodes          []NetworkNode       `json:"nodes"`
	Edges          []NetworkEdge       `json:"edges"`
	Positions      map[string]Position `json:"positions"`
	NodeCount      int                 `json:"node_count"`
	EdgeCount      int                 `json:"edge_count"`
	DroppedTargets int                 `json:"dropped_targets"`
	Layout         string              `json:"layout"`
	Artifacts      []Artifact          `json:"artifacts"`
}

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

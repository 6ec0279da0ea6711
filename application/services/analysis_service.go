package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"herbnet/application/ports"
	domaincfg "herbnet/domain/config"
	"herbnet/domain/core/entities"
	domainservices "herbnet/domain/services"
	"herbnet/domain/visualization"
	"herbnet/pkg/api"
	pkgerrors "herbnet/pkg/errors"
	"herbnet/pkg/observability"
)

// AnalysisService orchestrates the analysis pipeline: herb resolution,
// compound filtering, target aggregation, enrichment, disease intersection,
// similarity scoring, and network construction with layout and rendering.
type AnalysisService struct {
	source      ports.DataSource
	aggregator  *domainservices.TargetAggregator
	enricher    *domainservices.EnrichmentEngine
	intersector *domainservices.DiseaseIntersector
	renderer    *visualization.Renderer
	artifactDir string
	logger      *zap.Logger
	metrics     *observability.Metrics

	// The config-bound engines swap as a unit on config reload; request
	// paths snapshot them once at entry.
	mu      sync.RWMutex
	engines engineSet
}

// engineSet bundles the collaborators whose behavior depends on the
// tunable domain defaults.
type engineSet struct {
	cfg        *domaincfg.DomainConfig
	filter     *domainservices.CompoundFilter
	similarity *domainservices.SimilarityEngine
	builder    *domainservices.NetworkBuilder
	layouts    *visualization.Engine
}

func newEngineSet(cfg *domaincfg.DomainConfig) engineSet {
	return engineSet{
		cfg:        cfg,
		filter:     domainservices.NewCompoundFilter(cfg),
		similarity: domainservices.NewSimilarityEngine(cfg),
		builder:    domainservices.NewNetworkBuilder(cfg),
		layouts: visualization.NewEngine(visualization.LayoutConfig{
			Iterations: cfg.LayoutIterations,
			Seed:       cfg.DefaultLayoutSeed,
		}),
	}
}

// NewAnalysisService wires the pipeline together
func NewAnalysisService(
	source ports.DataSource,
	cfg *domaincfg.DomainConfig,
	artifactDir string,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *AnalysisService {
	if cfg == nil {
		cfg = domaincfg.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{
		source:      source,
		aggregator:  domainservices.NewTargetAggregator(),
		enricher:    domainservices.NewEnrichmentEngine(),
		intersector: domainservices.NewDiseaseIntersector(),
		renderer:    visualization.NewRenderer(),
		artifactDir: artifactDir,
		logger:      logger,
		metrics:     metrics,
		engines:     newEngineSet(cfg),
	}
}

// ReloadDefaults swaps in new domain defaults, typically from a config
// hot reload. In-flight requests finish on the engines they started with.
func (s *AnalysisService) ReloadDefaults(cfg *domaincfg.DomainConfig) {
	if cfg == nil {
		return
	}
	next := newEngineSet(cfg)
	s.mu.Lock()
	s.engines = next
	s.mu.Unlock()
}

func (s *AnalysisService) engineSnapshot() engineSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engines
}

// pipelineResult carries the shared upstream stages of an analysis so the
// network operation reuses them without re-running lookups.
type pipelineResult struct {
	herbs        []string // resolved herb names, sorted
	missing      []string
	obThreshold  float64
	dlThreshold  float64
	filtered     map[string][]entities.Compound
	aggregation  *domainservices.AggregationResult
	intersection *domainservices.DiseaseIntersection
}

// AnalyzeTargets runs the filtering, aggregation, enrichment, and optional
// disease-intersection pipeline for a herb batch.
func (s *AnalysisService) AnalyzeTargets(ctx context.Context, req api.AnalysisRequest) (*api.AnalysisResponse, error) {
	start := time.Now()
	status := "error"
	defer func() {
		s.record("analysis", status, start)
	}()

	e := s.engineSnapshot()
	pipeline, err := s.runPipeline(ctx, e, req.Herbs, req.Disease, req.OBThreshold, req.DLThreshold)
	if err != nil {
		return nil, err
	}

	catalog, err := s.source.PathwayCatalog(ctx)
	if err != nil {
		return nil, err
	}
	enriched := s.enricher.Enrich(pipeline.aggregation.Combined, catalog)

	resp := &api.AnalysisResponse{
		HerbsAnalyzed:   pipeline.herbs,
		MissingHerbs:    pipeline.missing,
		OBThreshold:     pipeline.obThreshold,
		DLThreshold:     pipeline.dlThreshold,
		ActiveCompounds: countDistinctCompounds(pipeline.filtered),
		TotalTargets:    pipeline.aggregation.Combined.Len(),
		Targets:         pipeline.aggregation.Combined.SortedStrings(),
		HerbTargets:     make(map[string][]string, len(pipeline.aggregation.PerHerb)),
		Pathways:        toPathwayResults(enriched),
	}
	for herb, targets := range pipeline.aggregation.PerHerb {
		resp.HerbTargets[herb] = targets.SortedStrings()
	}
	if pipeline.intersection != nil {
		resp.DiseaseIntersection = toDiseaseResult(pipeline.intersection)
	}

	s.logger.Info("analysis completed",
		zap.Strings("herbs", pipeline.herbs),
		zap.Int("active_compounds", resp.ActiveCompounds),
		zap.Int("total_targets", resp.TotalTargets),
		zap.Int("enriched_pathways", len(resp.Pathways)))

	status = "success"
	return resp, nil
}

// HerbSimilarity scores every pair of a herb batch
func (s *AnalysisService) HerbSimilarity(ctx context.Context, req api.SimilarityRequest) (*api.SimilarityResponse, error) {
	start := time.Now()
	status := "error"
	defer func() {
		s.record("similarity", status, start)
	}()

	e := s.engineSnapshot()
	methodName := req.Method
	if methodName == "" {
		methodName = e.cfg.DefaultSimilarityMethod
	}
	method, err := domainservices.ParseSimilarityMethod(methodName)
	if err != nil {
		return nil, err
	}

	pipeline, err := s.runPipeline(ctx, e, req.Herbs, "", req.OBThreshold, req.DLThreshold)
	if err != nil {
		return nil, err
	}
	if len(pipeline.herbs) < 2 {
		return nil, pkgerrors.NewInvalidParameterError(fmt.Sprintf(
			"similarity requires at least 2 resolvable herbs, got %d (missing: %s)",
			len(pipeline.herbs), strings.Join(pipeline.missing, ", ")))
	}

	features := make([]domainservices.HerbFeatures, len(pipeline.herbs))
	for i, name := range pipeline.herbs {
		features[i] = domainservices.NewHerbFeatures(name, pipeline.filtered[name])
	}

	matrix, err := e.similarity.Matrix(ctx, features, method)
	if err != nil {
		return nil, err
	}

	resp := &api.SimilarityResponse{
		Herbs:        matrix.Herbs(),
		MissingHerbs: pipeline.missing,
		Method:       string(method),
		Matrix:       toScoreGrid(matrix),
		Pairs:        toPairResults(matrix.Pairs()),
	}
	if len(resp.Pairs) > 0 {
		resp.MostSimilar = &resp.Pairs[0]
		resp.LeastSimilar = &resp.Pairs[len(resp.Pairs)-1]
	}

	s.logger.Info("similarity completed",
		zap.Strings("herbs", resp.Herbs),
		zap.String("method", resp.Method),
		zap.Int("pairs", len(resp.Pairs)))

	status = "success"
	return resp, nil
}

// BuildNetwork runs the analysis pipeline, builds the typed network under
// the node budget, lays it out, and renders image artifacts.
func (s *AnalysisService) BuildNetwork(ctx context.Context, req api.NetworkRequest) (*api.NetworkResponse, error) {
	start := time.Now()
	status := "error"
	defer func() {
		s.record("network", status, start)
	}()

	e := s.engineSnapshot()
	layoutName := req.Layout
	if layoutName == "" {
		layoutName = e.cfg.DefaultLayout
	}
	algorithm, err := visualization.ParseLayoutAlgorithm(layoutName)
	if err != nil {
		return nil, err
	}
	formatName := req.OutputFormat
	if formatName == "" {
		formatName = e.cfg.DefaultOutputFormat
	}
	format, err := visualization.ParseOutputFormat(formatName)
	if err != nil {
		return nil, err
	}
	maxNodes := e.cfg.DefaultMaxNodes
	if req.MaxNodes != nil {
		maxNodes = *req.MaxNodes
	}

	pipeline, err := s.runPipeline(ctx, e, req.Herbs, req.Disease, req.OBThreshold, req.DLThreshold)
	if err != nil {
		return nil, err
	}

	built, err := e.builder.Build(domainservices.BuildInput{
		Filtered:     pipeline.filtered,
		Aggregation:  pipeline.aggregation,
		Intersection: pipeline.intersection,
		MaxNodes:     maxNodes,
	})
	if err != nil {
		return nil, err
	}

	positions, err := e.layouts.Layout(built.Network, algorithm)
	if err != nil {
		return nil, err
	}

	artifacts, err := s.renderArtifacts(built, positions, format, pipeline.herbs)
	if err != nil {
		return nil, err
	}

	resp := &api.NetworkResponse{
		Positions:      make(map[string]api.Position, len(positions)),
		NodeCount:      built.Network.NodeCount(),
		EdgeCount:      built.Network.EdgeCount(),
		DroppedTargets: built.DroppedTargets,
		Layout:         string(algorithm),
		Artifacts:      artifacts,
	}
	for _, node := range built.Network.Nodes() {
		resp.Nodes = append(resp.Nodes, api.NetworkNode{ID: node.ID, Label: node.Label, Kind: string(node.Kind)})
	}
	for _, edge := range built.Network.Edges() {
		resp.Edges = append(resp.Edges, api.NetworkEdge{Source: edge.Source, Target: edge.Target, Kind: string(edge.Kind)})
	}
	for id, pos := range positions {
		resp.Positions[id] = api.Position{X: pos.X, Y: pos.Y}
	}

	if s.metrics != nil {
		s.metrics.ObserveNetworkSize(resp.NodeCount)
	}
	s.logger.Info("network built",
		zap.Strings("herbs", pipeline.herbs),
		zap.Int("nodes", resp.NodeCount),
		zap.Int("edges", resp.EdgeCount),
		zap.Int("dropped_targets", resp.DroppedTargets),
		zap.String("layout", resp.Layout))

	status = "success"
	return resp, nil
}

// runPipeline resolves herbs, filters compounds, aggregates targets, and
// optionally intersects with a disease. Unknown herbs are skipped and
// reported; the pipeline fails only when no herb resolves at all.
func (s *AnalysisService) runPipeline(ctx context.Context, e engineSet, herbNames []string, disease string, obPtr, dlPtr *float64) (*pipelineResult, error) {
	obThreshold, dlThreshold := e.filter.Defaults()
	if obPtr != nil {
		obThreshold = *obPtr
	}
	if dlPtr != nil {
		dlThreshold = *dlPtr
	}
	if err := e.filter.ValidateThresholds(obThreshold, dlThreshold); err != nil {
		return nil, err
	}
	if len(herbNames) == 0 {
		return nil, pkgerrors.NewInvalidParameterError("at least one herb is required")
	}

	herbs, missing, err := s.resolveHerbs(ctx, herbNames)
	if err != nil {
		return nil, err
	}
	if len(herbs) == 0 {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf(
			"none of the requested herbs are known: %s", strings.Join(missing, ", ")))
	}

	filtered := make(map[string][]entities.Compound, len(herbs))
	for _, herb := range herbs {
		kept, err := e.filter.Filter(herb, obThreshold, dlThreshold)
		if err != nil {
			return nil, err
		}
		filtered[herb.Name()] = kept
	}

	result := &pipelineResult{
		missing:     missing,
		obThreshold: obThreshold,
		dlThreshold: dlThreshold,
		filtered:    filtered,
		aggregation: s.aggregator.Aggregate(filtered),
	}
	for _, herb := range herbs {
		result.herbs = append(result.herbs, herb.Name())
	}
	sort.Strings(result.herbs)

	if disease != "" {
		d, err := s.source.LookupDisease(ctx, disease)
		if err != nil {
			return nil, err
		}
		intersection, err := s.intersector.Intersect(result.aggregation.Combined, d)
		if err != nil {
			return nil, err
		}
		result.intersection = intersection
	}

	return result, nil
}

// resolveHerbs looks the batch up concurrently. A herb the source does not
// know is collected into the missing list rather than failing the batch;
// any other lookup failure aborts.
func (s *AnalysisService) resolveHerbs(ctx context.Context, names []string) ([]*entities.Herb, []string, error) {
	var mu sync.Mutex
	var herbs []*entities.Herb
	var missing []string

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		g.Go(func() error {
			herb, err := s.source.LookupHerb(gctx, name)
			if err != nil {
				if pkgerrors.IsNotFound(err) {
					mu.Lock()
					missing = append(missing, name)
					mu.Unlock()
					s.logger.Warn("herb not found, skipping", zap.String("herb", name))
					return nil
				}
				return err
			}
			mu.Lock()
			herbs = append(herbs, herb)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sort.Strings(missing)
	return herbs, missing, nil
}

// renderArtifacts writes the image files and stats them into metadata
func (s *AnalysisService) renderArtifacts(built *domainservices.BuildResult, positions visualization.LayoutResult, format visualization.OutputFormat, herbs []string) ([]api.Artifact, error) {
	basePath := filepath.Join(s.artifactDir, "network-"+uuid.New().String())
	title := "Herb-Target Network: " + strings.Join(herbs, ", ")

	paths, err := s.renderer.Render(built.Network, positions, basePath, format, title)
	if err != nil {
		return nil, err
	}

	artifacts := make([]api.Artifact, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, pkgerrors.NewInternalError("stat rendered artifact", err)
		}
		artifacts = append(artifacts, api.Artifact{
			ID:        uuid.New().String(),
			Path:      path,
			Format:    strings.TrimPrefix(filepath.Ext(path), "."),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime().UTC(),
		})
	}
	return artifacts, nil
}

func (s *AnalysisService) record(operation, status string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordAnalysis(operation, status, time.Since(start))
	}
}

func countDistinctCompounds(filtered map[string][]entities.Compound) int {
	seen := make(map[string]bool)
	for _, compounds := range filtered {
		for _, c := range compounds {
			seen[c.Name()] = true
		}
	}
	return len(seen)
}

func toPathwayResults(enriched []domainservices.EnrichedPathway) []api.PathwayResult {
	results := make([]api.PathwayResult, 0, len(enriched))
	for _, row := range enriched {
		genes := make([]string, len(row.Genes))
		for i, g := range row.Genes {
			genes[i] = string(g)
		}
		results = append(results, api.PathwayResult{
			ID:      row.Pathway.ID(),
			Name:    row.Pathway.Name(),
			PValue:  row.PValue,
			Overlap: row.Overlap,
			Genes:   genes,
		})
	}
	return results
}

func toDiseaseResult(in *domainservices.DiseaseIntersection) *api.DiseaseIntersectionResult {
	common := make([]string, len(in.CommonTargets))
	for i, t := range in.CommonTargets {
		common[i] = string(t)
	}
	return &api.DiseaseIntersectionResult{
		Disease:       in.Disease,
		Source:        in.Source,
		CommonTargets: common,
		CommonCount:   len(in.CommonTargets),
		DiseaseCount:  len(in.DiseaseTargets),
		CoverageRate:  in.CoverageRate,
	}
}

func toPairResults(pairs []domainservices.PairSimilarity) []api.SimilarityPairResult {
	results := make([]api.SimilarityPairResult, 0, len(pairs))
	for _, p := range pairs {
		targets := make([]string, len(p.CommonTargets))
		for i, t := range p.CommonTargets {
			targets[i] = string(t)
		}
		results = append(results, api.SimilarityPairResult{
			HerbA:               p.HerbA,
			HerbB:               p.HerbB,
			Similarity:          p.Similarity,
			TargetSimilarity:    p.TargetSimilarity,
			ComponentSimilarity: p.ComponentSimilarity,
			CommonTargets:       targets,
			CommonComponents:    p.CommonComponents,
		})
	}
	return results
}

func toScoreGrid(matrix *domainservices.SimilarityMatrix) [][]float64 {
	herbs := matrix.Herbs()
	grid := make([][]float64, len(herbs))
	for i, a := range herbs {
		grid[i] = make([]float64, len(herbs))
		for j, b := range herbs {
			score, _ := matrix.Similarity(a, b)
			grid[i][j] = score
		}
	}
	return grid
}

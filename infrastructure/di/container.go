// Package di wires the application graph by hand: configuration, logging,
// metrics, the datasource adapter, and the analysis pipeline.
package di

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"herbnet/application/ports"
	appservices "herbnet/application/services"
	domaincfg "herbnet/domain/config"
	"herbnet/infrastructure/config"
	dynamosource "herbnet/infrastructure/persistence/dynamodb"
	memorysource "herbnet/infrastructure/persistence/memory"
	"herbnet/pkg/observability"
)

// Container holds the wired application components
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	Source   ports.DataSource
	Analysis *appservices.AnalysisService

	watcher *config.Watcher
}

// NewContainer builds the full dependency graph from the configuration at
// path (empty path uses defaults).
func NewContainer(ctx context.Context, configPath string) (*Container, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	metrics := observability.GetMetrics()

	source, err := buildDataSource(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	analysis := appservices.NewAnalysisService(source, buildDomainConfig(cfg), cfg.ArtifactDir, logger, metrics)

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics,
		Source:   source,
		Analysis: analysis,
	}

	if configPath != "" {
		watcher, err := config.NewWatcher(configPath, cfg, logger)
		if err != nil {
			logger.Warn("config hot reload disabled", zap.Error(err))
		} else {
			watcher.OnReload(func(next *config.Config) {
				analysis.ReloadDefaults(buildDomainConfig(next))
				logger.Info("analysis defaults updated",
					zap.Float64("ob_threshold", next.Analysis.OBThreshold),
					zap.Float64("dl_threshold", next.Analysis.DLThreshold),
					zap.Int("max_nodes", next.Analysis.MaxNodes))
			})
			c.watcher = watcher
		}
	}

	logger.Info("container initialized",
		zap.String("environment", cfg.Environment),
		zap.String("datasource", cfg.DataSource.Kind))
	return c, nil
}

// buildDomainConfig projects the service configuration onto the domain
// defaults consumed by the analysis pipeline.
func buildDomainConfig(cfg *config.Config) *domaincfg.DomainConfig {
	domainConfig := domaincfg.DefaultDomainConfig()
	domainConfig.DefaultOBThreshold = cfg.Analysis.OBThreshold
	domainConfig.DefaultDLThreshold = cfg.Analysis.DLThreshold
	domainConfig.DefaultMaxNodes = cfg.Analysis.MaxNodes
	domainConfig.DefaultLayoutSeed = cfg.Analysis.LayoutSeed
	domainConfig.DefaultSimilarityMethod = cfg.Analysis.SimilarityMethod
	domainConfig.DefaultLayout = cfg.Analysis.Layout
	domainConfig.DefaultOutputFormat = cfg.Analysis.OutputFormat
	return domainConfig
}

func buildDataSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.DataSource, error) {
	switch cfg.DataSource.Kind {
	case "dynamodb":
		opts := []func(*awsconfig.LoadOptions) error{}
		if cfg.DataSource.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.DataSource.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := awsdynamodb.NewFromConfig(awsCfg)
		return dynamosource.NewDataSource(client, cfg.DataSource.Table, cfg.DataSource.Timeout, logger), nil
	default:
		return memorysource.NewSeededDataSource(), nil
	}
}

// Shutdown releases the container's background resources
func (c *Container) Shutdown() {
	if c.watcher != nil {
		c.watcher.Close()
	}
	c.Logger.Sync() //nolint:errcheck // stderr sync failure is unactionable
}

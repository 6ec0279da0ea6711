package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Address         string        `yaml:"address" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DataSourceConfig selects and configures the annotation backend
type DataSourceConfig struct {
	Kind    string        `yaml:"kind" validate:"required,oneof=memory dynamodb"`
	Table   string        `yaml:"table" validate:"required_if=Kind dynamodb"`
	Region  string        `yaml:"region"`
	Timeout time.Duration `yaml:"timeout"`
}

// AnalysisConfig carries the tunable analysis defaults
type AnalysisConfig struct {
	OBThreshold      float64 `yaml:"ob_threshold" validate:"gte=0,lte=100"`
	DLThreshold      float64 `yaml:"dl_threshold" validate:"gte=0,lte=1"`
	MaxNodes         int     `yaml:"max_nodes" validate:"gt=0"`
	LayoutSeed       int64   `yaml:"layout_seed"`
	SimilarityMethod string  `yaml:"similarity_method" validate:"oneof=jaccard_targets jaccard_components combined"`
	Layout           string  `yaml:"layout" validate:"oneof=spring circular shell kamada_kawai"`
	OutputFormat     string  `yaml:"output_format" validate:"oneof=png svg both"`
}

// Config is the full service configuration
type Config struct {
	Environment string           `yaml:"environment" validate:"required,oneof=development staging production"`
	LogLevel    string           `yaml:"log_level" validate:"required,oneof=debug info warn error"`
	Server      ServerConfig     `yaml:"server"`
	DataSource  DataSourceConfig `yaml:"datasource"`
	ArtifactDir string           `yaml:"artifact_dir" validate:"required"`
	Analysis    AnalysisConfig   `yaml:"analysis"`
}

// Default returns the development defaults
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		DataSource: DataSourceConfig{
			Kind:    "memory",
			Timeout: 5 * time.Second,
		},
		ArtifactDir: "artifacts",
		Analysis: AnalysisConfig{
			OBThreshold:      30,
			DLThreshold:      0.18,
			MaxNodes:         50,
			LayoutSeed:       42,
			SimilarityMethod: "combined",
			Layout:           "spring",
			OutputFormat:     "png",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, then validates the result. path may be empty.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration's structural constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("HERBNET_ENVIRONMENT", &cfg.Environment)
	setString("HERBNET_LOG_LEVEL", &cfg.LogLevel)
	setString("HERBNET_SERVER_ADDRESS", &cfg.Server.Address)
	setString("HERBNET_DATASOURCE_KIND", &cfg.DataSource.Kind)
	setString("HERBNET_DATASOURCE_TABLE", &cfg.DataSource.Table)
	setString("HERBNET_DATASOURCE_REGION", &cfg.DataSource.Region)
	setString("HERBNET_ARTIFACT_DIR", &cfg.ArtifactDir)
	setString("HERBNET_ANALYSIS_SIMILARITY_METHOD", &cfg.Analysis.SimilarityMethod)
	setString("HERBNET_ANALYSIS_LAYOUT", &cfg.Analysis.Layout)
	setString("HERBNET_ANALYSIS_OUTPUT_FORMAT", &cfg.Analysis.OutputFormat)

	if v := os.Getenv("HERBNET_DATASOURCE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.DataSource.Timeout = d
		}
	}
	if v := os.Getenv("HERBNET_ANALYSIS_OB_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.OBThreshold = f
		}
	}
	if v := os.Getenv("HERBNET_ANALYSIS_DL_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.DLThreshold = f
		}
	}
	if v := os.Getenv("HERBNET_ANALYSIS_MAX_NODES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.MaxNodes = n
		}
	}
}

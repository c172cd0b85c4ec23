// Package config loads application configuration from environment
// variables (EPI_ prefix) with an optional YAML overlay file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "epipulse/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/epipulse.log"`
}

// PathsConfig contains the locations of the three wide-format source
// tables and the output directories.
type PathsConfig struct {
	BaseDir        string `yaml:"base_dir" envconfig:"BASE_DIR"`
	IncidenceFile  string `yaml:"incidence_file" envconfig:"INCIDENCE_FILE" default:"data/malaria_incidence.csv" validate:"required"`
	UrbanFile      string `yaml:"urban_file" envconfig:"URBAN_FILE" default:"data/urban_percent.csv" validate:"required"`
	PopulationFile string `yaml:"population_file" envconfig:"POPULATION_FILE" default:"data/population.csv" validate:"required"`
	ReportsDir     string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
}

// PipelineConfig contains the business rules applied by the cleaning and
// aggregation stages.
type PipelineConfig struct {
	// ExcludedYear is the known-incomplete trailing year dropped by the
	// cleaner.
	ExcludedYear   int `yaml:"excluded_year" envconfig:"EXCLUDED_YEAR" default:"2006"`
	BaselineYear   int `yaml:"baseline_year" envconfig:"BASELINE_YEAR" default:"1990"`
	ComparisonYear int `yaml:"comparison_year" envconfig:"COMPARISON_YEAR" default:"2005"`
	DefaultTopN    int `yaml:"default_top_n" envconfig:"DEFAULT_TOP_N" default:"10" validate:"min=1"`
}

// TelemetryConfig contains metrics configuration
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	MetricsPath string `yaml:"metrics_path" envconfig:"METRICS_PATH" default:"/metrics"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("EPI", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to load config file %s", configFile), err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	cfg.resolvePaths()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// getConfigFilePath returns the config file path, honoring EPI_CONFIG_FILE
func getConfigFilePath() string {
	if path := os.Getenv("EPI_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// mergeConfigs overlays non-zero file values onto the env-derived config.
func mergeConfigs(file, env Config) Config {
	merged := env

	if file.Server.Port != 0 {
		merged.Server.Port = file.Server.Port
	}
	if file.Server.ReadTimeout != 0 {
		merged.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if file.Server.WriteTimeout != 0 {
		merged.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if file.Server.IdleTimeout != 0 {
		merged.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if file.Server.ShutdownTimeout != 0 {
		merged.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if file.Server.RateLimit.RPS != 0 {
		merged.Server.RateLimit = file.Server.RateLimit
	}

	if file.Logging.Level != "" {
		merged.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		merged.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" {
		merged.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		merged.Logging.FilePath = file.Logging.FilePath
	}

	if file.Paths.BaseDir != "" {
		merged.Paths.BaseDir = file.Paths.BaseDir
	}
	if file.Paths.IncidenceFile != "" {
		merged.Paths.IncidenceFile = file.Paths.IncidenceFile
	}
	if file.Paths.UrbanFile != "" {
		merged.Paths.UrbanFile = file.Paths.UrbanFile
	}
	if file.Paths.PopulationFile != "" {
		merged.Paths.PopulationFile = file.Paths.PopulationFile
	}
	if file.Paths.ReportsDir != "" {
		merged.Paths.ReportsDir = file.Paths.ReportsDir
	}

	if file.Pipeline.ExcludedYear != 0 {
		merged.Pipeline.ExcludedYear = file.Pipeline.ExcludedYear
	}
	if file.Pipeline.BaselineYear != 0 {
		merged.Pipeline.BaselineYear = file.Pipeline.BaselineYear
	}
	if file.Pipeline.ComparisonYear != 0 {
		merged.Pipeline.ComparisonYear = file.Pipeline.ComparisonYear
	}
	if file.Pipeline.DefaultTopN != 0 {
		merged.Pipeline.DefaultTopN = file.Pipeline.DefaultTopN
	}

	if file.Telemetry.MetricsPath != "" {
		merged.Telemetry.MetricsPath = file.Telemetry.MetricsPath
	}

	return merged
}

// resolvePaths makes all relative paths absolute against BaseDir.
func (c *Config) resolvePaths() {
	base := c.Paths.BaseDir
	if base == "" {
		base = "."
	}
	c.Paths.IncidenceFile = resolvePath(base, c.Paths.IncidenceFile)
	c.Paths.UrbanFile = resolvePath(base, c.Paths.UrbanFile)
	c.Paths.PopulationFile = resolvePath(base, c.Paths.PopulationFile)
	c.Paths.ReportsDir = resolvePath(base, c.Paths.ReportsDir)
	c.Logging.FilePath = resolvePath(base, c.Logging.FilePath)
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// validate checks structural constraints and cross-field rules.
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	if c.Pipeline.BaselineYear >= c.Pipeline.ComparisonYear {
		return apperrors.NewConfigError(
			fmt.Sprintf("baseline year %d must precede comparison year %d",
				c.Pipeline.BaselineYear, c.Pipeline.ComparisonYear), nil)
	}
	return nil
}

// SourceFiles returns the three input paths in pipeline order.
func (c *Config) SourceFiles() (incidence, urban, population string) {
	return c.Paths.IncidenceFile, c.Paths.UrbanFile, c.Paths.PopulationFile
}

// Package config loads and validates the benchreport configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultResultsDir is the default directory scanned for benchmark
	// log files.
	DefaultResultsDir = "./benchmark_results"

	// DefaultOutputDir is the default directory report artifacts are
	// written to. It is created if absent.
	DefaultOutputDir = "./benchmark_report"

	// DefaultConcurrency is the default number of log files parsed in
	// parallel.
	DefaultConcurrency = 4
)

// Config is the root configuration for benchreport.
type Config struct {
	Global    GlobalConfig    `yaml:"global" mapstructure:"global"`
	Collector CollectorConfig `yaml:"collector" mapstructure:"collector"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Upload    *UploadConfig   `yaml:"upload,omitempty" mapstructure:"upload"`
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// CollectorConfig contains log collection settings.
type CollectorConfig struct {
	ResultsDir  string `yaml:"results_dir" mapstructure:"results_dir"`
	Concurrency int    `yaml:"concurrency,omitempty" mapstructure:"concurrency"`
}

// ReportConfig contains report emission settings.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`

	// WorkloadDescriptions maps workload identifiers to human-readable
	// labels used in the summary report. Entries here are merged over
	// the built-in defaults.
	WorkloadDescriptions map[string]string `yaml:"workload_descriptions,omitempty" mapstructure:"workload_descriptions"`
}

// UploadConfig contains optional report artifact upload settings.
type UploadConfig struct {
	S3 *S3UploadConfig `yaml:"s3,omitempty" mapstructure:"s3"`
}

// S3UploadConfig contains S3-compatible storage settings for uploading
// the emitted report directory.
type S3UploadConfig struct {
	Enabled         bool   `yaml:"enabled" mapstructure:"enabled"`
	EndpointURL     string `yaml:"endpoint_url,omitempty" mapstructure:"endpoint_url"`
	Region          string `yaml:"region,omitempty" mapstructure:"region"`
	Bucket          string `yaml:"bucket" mapstructure:"bucket"`
	Prefix          string `yaml:"prefix,omitempty" mapstructure:"prefix"`
	AccessKeyID     string `yaml:"access_key_id,omitempty" mapstructure:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty" mapstructure:"secret_access_key"`
	ForcePathStyle  bool   `yaml:"force_path_style" mapstructure:"force_path_style"`
}

// defaultWorkloadDescriptions labels the standard YCSB workloads plus
// the scan variants used by the benchmark suite.
var defaultWorkloadDescriptions = map[string]string{
	"workloada":        "Update Heavy (50% Read, 50% Update)",
	"workloadb":        "Read Mostly (95% Read, 5% Update)",
	"workloadc":        "Read Only (100% Read)",
	"workloadd":        "Read Latest (95% Read, 5% Insert)",
	"workloadf":        "Read-Modify-Write (50% Read, 50% RMW)",
	"workload_scan":    "Realistic Scan (50% Read, 50% Scan 10-100)",
	"workload_scan10":  "Small Scan (50% Read, 50% Scan-10)",
	"workload_scan100": "Large Scan (50% Read, 50% Scan-100)",
}

// Load reads and parses a configuration file from the given path. An
// empty path yields the default configuration: the tool is usable with
// no config file at all.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for unspecified configuration options.
func (c *Config) applyDefaults() {
	if c.Global.LogLevel == "" {
		c.Global.LogLevel = DefaultLogLevel
	}

	if c.Collector.ResultsDir == "" {
		c.Collector.ResultsDir = DefaultResultsDir
	}

	if c.Collector.Concurrency <= 0 {
		c.Collector.Concurrency = DefaultConcurrency
	}

	if c.Report.OutputDir == "" {
		c.Report.OutputDir = DefaultOutputDir
	}

	merged := make(map[string]string, len(defaultWorkloadDescriptions)+len(c.Report.WorkloadDescriptions))
	for k, v := range defaultWorkloadDescriptions {
		merged[k] = v
	}

	for k, v := range c.Report.WorkloadDescriptions {
		merged[k] = v
	}

	c.Report.WorkloadDescriptions = merged
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Collector.ResultsDir == "" {
		return fmt.Errorf("collector results_dir is required")
	}

	if c.Report.OutputDir == "" {
		return fmt.Errorf("report output_dir is required")
	}

	if dir := filepath.Dir(c.Report.OutputDir); dir != "." && dir != ".." {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("output directory parent %q does not exist", dir)
		}
	}

	if c.Upload != nil && c.Upload.S3 != nil && c.Upload.S3.Enabled {
		if c.Upload.S3.Bucket == "" {
			return fmt.Errorf("upload s3 bucket is required when upload is enabled")
		}
	}

	return nil
}

// S3Upload returns the S3 upload configuration if uploading is enabled.
func (c *Config) S3Upload() *S3UploadConfig {
	if c.Upload == nil || c.Upload.S3 == nil || !c.Upload.S3.Enabled {
		return nil
	}

	return c.Upload.S3
}

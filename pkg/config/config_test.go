package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.Global.LogLevel)
	assert.Equal(t, DefaultResultsDir, cfg.Collector.ResultsDir)
	assert.Equal(t, DefaultConcurrency, cfg.Collector.Concurrency)
	assert.Equal(t, DefaultOutputDir, cfg.Report.OutputDir)
	assert.NotEmpty(t, cfg.Report.WorkloadDescriptions)
	assert.Nil(t, cfg.S3Upload())
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
global:
  log_level: debug
collector:
  results_dir: ./my-results
  concurrency: 8
report:
  output_dir: ./my-report
  workload_descriptions:
    workloadx: "Custom Mix"
    workloada: "Overridden"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Global.LogLevel)
	assert.Equal(t, "./my-results", cfg.Collector.ResultsDir)
	assert.Equal(t, 8, cfg.Collector.Concurrency)
	assert.Equal(t, "./my-report", cfg.Report.OutputDir)

	// Custom descriptions are merged over the built-in defaults.
	assert.Equal(t, "Custom Mix", cfg.Report.WorkloadDescriptions["workloadx"])
	assert.Equal(t, "Overridden", cfg.Report.WorkloadDescriptions["workloada"])
	assert.Contains(t, cfg.Report.WorkloadDescriptions, "workloadc")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "global: [not a mapping")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name: "missing output dir parent",
			mutate: func(cfg *Config) {
				cfg.Report.OutputDir = "/nonexistent-parent-dir/report"
			},
			wantErr: "does not exist",
		},
		{
			name: "s3 enabled without bucket",
			mutate: func(cfg *Config) {
				cfg.Upload = &UploadConfig{S3: &S3UploadConfig{Enabled: true}}
			},
			wantErr: "bucket is required",
		},
		{
			name: "s3 disabled without bucket is fine",
			mutate: func(cfg *Config) {
				cfg.Upload = &UploadConfig{S3: &S3UploadConfig{Enabled: false}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestS3Upload(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg.S3Upload())

	cfg.Upload = &UploadConfig{S3: &S3UploadConfig{Enabled: true, Bucket: "b"}}
	require.NotNil(t, cfg.S3Upload())
	assert.Equal(t, "b", cfg.S3Upload().Bucket)
}

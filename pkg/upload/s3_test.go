package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ycsbtools/benchreport/pkg/config"
)

func TestResolvePrefix(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		baseName string
		want     string
	}{
		{
			name:     "default prefix",
			prefix:   "",
			baseName: "benchmark_report",
			want:     "reports/benchmark_report",
		},
		{
			name:     "custom prefix",
			prefix:   "my-project/ycsb",
			baseName: "benchmark_report",
			want:     "my-project/ycsb/benchmark_report",
		},
		{
			name:     "trailing slash stripped",
			prefix:   "my-prefix/",
			baseName: "report",
			want:     "my-prefix/report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &s3Uploader{
				cfg: &config.S3UploadConfig{Prefix: tt.prefix},
			}
			got := u.resolvePrefix(tt.baseName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantPrefix string
	}{
		{
			name:       "json file",
			path:       "report/dataset.json",
			wantPrefix: "application/json",
		},
		{
			name:       "html file",
			path:       "report/index.html",
			wantPrefix: "text/html",
		},
		{
			name:       "no extension",
			path:       "report/Makefile",
			wantPrefix: "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectContentType(tt.path)
			assert.Contains(t, got, tt.wantPrefix)
		})
	}
}

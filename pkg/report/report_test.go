package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycsbtools/benchreport/pkg/config"
	"github.com/ycsbtools/benchreport/pkg/dataset"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func testRecords() []dataset.Record {
	return []dataset.Record{
		dataset.NewRecord("rocksdb", "workloadc", dataset.PhaseRun, 1000000, 128),
		dataset.NewRecord("leveldb", "workloadc", dataset.PhaseRun, 500000, 0),
		dataset.NewRecord("rocksdb", "workload_scan", dataset.PhaseLoad, 250000, 0),
	}
}

func emitTo(t *testing.T, records []dataset.Record) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "report")
	cfg := &config.ReportConfig{
		OutputDir: dir,
		WorkloadDescriptions: map[string]string{
			"workloadc": "Read Only (100% Read)",
		},
	}

	require.NoError(t, New(testLogger(), cfg).Emit(records))

	return dir
}

func TestEmit_CreatesOutputDirAndArtifacts(t *testing.T) {
	dir := emitTo(t, testRecords())

	for _, name := range []string{"dataset.json", "dataset.csv", "summary.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestEmit_JSONRowShape(t *testing.T) {
	dir := emitTo(t, testRecords())

	data, err := os.ReadFile(filepath.Join(dir, "dataset.json"))
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 3)

	for _, field := range []string{
		"database", "workload", "phase",
		"throughput_ops_per_sec", "throughput_millions", "storage_size_mb",
	} {
		assert.Contains(t, rows[0], field)
	}
}

func TestEmit_CSVContents(t *testing.T) {
	dir := emitTo(t, testRecords())

	f, err := os.Open(filepath.Join(dir, "dataset.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{
		"database", "workload", "phase",
		"throughput_ops_per_sec", "throughput_millions", "storage_size_mb",
	}, rows[0])

	// Rows are sorted by workload then database.
	assert.Equal(t, "rocksdb", rows[1][0])
	assert.Equal(t, "workload_scan", rows[1][1])
	assert.Equal(t, "leveldb", rows[2][0])
	assert.Equal(t, "500000", rows[2][3])
	assert.Equal(t, "0.5", rows[2][4])
}

func TestEmit_MarkdownSummary(t *testing.T) {
	dir := emitTo(t, testRecords())

	data, err := os.ReadFile(filepath.Join(dir, "summary.md"))
	require.NoError(t, err)

	md := string(data)
	assert.Contains(t, md, "# Benchmark Summary")
	assert.Contains(t, md, "### workloadc")
	assert.Contains(t, md, "Read Only (100% Read)")
	assert.Contains(t, md, "## Top Performers (run phase)")
	assert.Contains(t, md, "| workloadc | rocksdb | 1.00 |")
	assert.Contains(t, md, "## Database Size")
	assert.Contains(t, md, "128MiB")
	assert.Contains(t, md, "1,000,000")
}

func TestEmit_EmptyDataset(t *testing.T) {
	cfg := &config.ReportConfig{OutputDir: t.TempDir()}
	err := New(testLogger(), cfg).Emit(nil)
	require.Error(t, err)
}

func TestTopPerformers(t *testing.T) {
	records := []dataset.Record{
		dataset.NewRecord("rocksdb", "workloada", dataset.PhaseRun, 700000, 0),
		dataset.NewRecord("leveldb", "workloada", dataset.PhaseRun, 500000, 0),
		dataset.NewRecord("leveldb", "workloadb", dataset.PhaseRun, 900000, 0),
		// Load phase never competes.
		dataset.NewRecord("lmdb", "workloada", dataset.PhaseLoad, 9000000, 0),
	}

	top := topPerformers(records)
	require.Len(t, top, 2)

	assert.Equal(t, "rocksdb", top[0].Database)
	assert.Equal(t, "workloada", top[0].Workload)
	assert.Equal(t, "leveldb", top[1].Database)
	assert.Equal(t, "workloadb", top[1].Workload)
}

func TestFormatOps(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: 999, want: "999"},
		{in: 1000, want: "1,000"},
		{in: 1440260, want: "1,440,260"},
		{in: 1234567890, want: "1,234,567,890"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatOps(tt.in))
	}
}

// Package report emits the aggregated benchmark dataset as report
// artifacts: a JSON and CSV copy of the table and a markdown summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ycsbtools/benchreport/pkg/config"
	"github.com/ycsbtools/benchreport/pkg/dataset"
)

// Emitter writes report artifacts for an aggregated dataset.
type Emitter interface {
	Emit(records []dataset.Record) error
}

// Compile-time interface check.
var _ Emitter = (*emitter)(nil)

type emitter struct {
	log logrus.FieldLogger
	cfg *config.ReportConfig
}

// New creates a report emitter.
func New(log logrus.FieldLogger, cfg *config.ReportConfig) Emitter {
	return &emitter{
		log: log.WithField("component", "report"),
		cfg: cfg,
	}
}

// Emit writes dataset.json, dataset.csv and summary.md to the output
// directory, creating it if absent, and logs a console summary. The
// input is expected to be aggregated already; rows are sorted here for
// presentation only.
func (e *emitter) Emit(records []dataset.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("nothing to report: empty dataset")
	}

	if err := os.MkdirAll(e.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	sorted := make([]dataset.Record, len(records))
	copy(sorted, records)
	dataset.Sort(sorted)

	if err := e.writeJSON(sorted); err != nil {
		return err
	}

	if err := e.writeCSV(sorted); err != nil {
		return err
	}

	if err := e.writeMarkdown(sorted); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"rows":      len(sorted),
		"databases": len(dataset.Databases(sorted)),
		"workloads": len(dataset.Workloads(sorted)),
		"dir":       e.cfg.OutputDir,
	}).Info("Report written")

	e.logTopPerformers(sorted)

	return nil
}

// writeJSON writes the dataset rows as indented JSON.
func (e *emitter) writeJSON(records []dataset.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling dataset: %w", err)
	}

	path := filepath.Join(e.cfg.OutputDir, "dataset.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing dataset.json: %w", err)
	}

	return nil
}

// writeCSV writes the dataset rows with the canonical column order.
func (e *emitter) writeCSV(records []dataset.Record) error {
	path := filepath.Join(e.cfg.OutputDir, "dataset.csv")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset.csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"database", "workload", "phase",
		"throughput_ops_per_sec", "throughput_millions", "storage_size_mb",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Database,
			rec.Workload,
			string(rec.Phase),
			strconv.FormatFloat(rec.ThroughputOpsPerSec, 'f', -1, 64),
			strconv.FormatFloat(rec.ThroughputMillions, 'f', -1, 64),
			strconv.FormatFloat(rec.StorageSizeMB, 'f', -1, 64),
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing dataset.csv: %w", err)
	}

	return nil
}

// logTopPerformers logs the fastest database per workload for the run
// phase, mirroring what the markdown summary reports.
func (e *emitter) logTopPerformers(records []dataset.Record) {
	for _, tp := range topPerformers(records) {
		e.log.WithFields(logrus.Fields{
			"workload":   tp.Workload,
			"database":   tp.Database,
			"mops_per_s": fmt.Sprintf("%.2f", tp.ThroughputMillions),
		}).Info("Top performer")
	}
}

// topPerformers picks the highest-throughput run-phase record per
// workload, ordered by workload name.
func topPerformers(records []dataset.Record) []dataset.Record {
	run := dataset.FilterPhase(records, dataset.PhaseRun)

	best := make(map[string]dataset.Record, len(run))
	for _, rec := range run {
		if cur, ok := best[rec.Workload]; !ok || rec.ThroughputOpsPerSec > cur.ThroughputOpsPerSec {
			best[rec.Workload] = rec
		}
	}

	out := make([]dataset.Record, 0, len(best))
	for _, workload := range dataset.Workloads(run) {
		out = append(out, best[workload])
	}

	return out
}

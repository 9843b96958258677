package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/go-units"

	"github.com/ycsbtools/benchreport/pkg/dataset"
)

// writeMarkdown writes summary.md: a throughput comparison table per
// workload, top performers for the run phase, and a database size table
// when any size was reported.
func (e *emitter) writeMarkdown(records []dataset.Record) error {
	var sb strings.Builder

	sb.WriteString("# Benchmark Summary\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().UTC().Format(time.RFC3339)))

	e.writeThroughputSection(&sb, records)
	e.writeTopPerformersSection(&sb, records)
	e.writeSizeSection(&sb, records)

	path := filepath.Join(e.cfg.OutputDir, "summary.md")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing summary.md: %w", err)
	}

	return nil
}

// writeThroughputSection writes one comparison table per workload with
// one row per database and phase.
func (e *emitter) writeThroughputSection(sb *strings.Builder, records []dataset.Record) {
	sb.WriteString("## Throughput\n\n")

	for _, workload := range dataset.Workloads(records) {
		sb.WriteString(fmt.Sprintf("### %s\n\n", workload))

		if desc, ok := e.cfg.WorkloadDescriptions[workload]; ok {
			sb.WriteString(desc + "\n\n")
		}

		sb.WriteString("| Database | Phase | Throughput (ops/sec) | Throughput (Mops/s) |\n")
		sb.WriteString("|---|---|---|---|\n")

		for _, rec := range records {
			if rec.Workload != workload {
				continue
			}

			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %.2f |\n",
				rec.Database,
				rec.Phase,
				formatOps(rec.ThroughputOpsPerSec),
				rec.ThroughputMillions,
			))
		}

		sb.WriteString("\n")
	}
}

// writeTopPerformersSection writes the per-workload winner for the run
// phase. Load-only datasets produce no rows and the section is skipped.
func (e *emitter) writeTopPerformersSection(sb *strings.Builder, records []dataset.Record) {
	top := topPerformers(records)
	if len(top) == 0 {
		return
	}

	sb.WriteString("## Top Performers (run phase)\n\n")
	sb.WriteString("| Workload | Database | Throughput (Mops/s) |\n")
	sb.WriteString("|---|---|---|\n")

	for _, rec := range top {
		sb.WriteString(fmt.Sprintf("| %s | %s | %.2f |\n",
			rec.Workload, rec.Database, rec.ThroughputMillions))
	}

	sb.WriteString("\n")
}

// writeSizeSection writes the storage footprint table for records that
// reported a database size.
func (e *emitter) writeSizeSection(sb *strings.Builder, records []dataset.Record) {
	var sized []dataset.Record

	for _, rec := range records {
		if rec.StorageSizeMB > 0 {
			sized = append(sized, rec)
		}
	}

	if len(sized) == 0 {
		return
	}

	sb.WriteString("## Database Size\n\n")
	sb.WriteString("| Database | Workload | Phase | Size |\n")
	sb.WriteString("|---|---|---|---|\n")

	for _, rec := range sized {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			rec.Database,
			rec.Workload,
			rec.Phase,
			units.BytesSize(rec.StorageSizeMB*float64(units.MiB)),
		))
	}

	sb.WriteString("\n")
}

// formatOps renders an ops/sec value with thousands separators.
func formatOps(v float64) string {
	s := fmt.Sprintf("%.0f", v)

	var out strings.Builder

	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out.WriteByte(',')
		}

		out.WriteRune(c)
	}

	return out.String()
}

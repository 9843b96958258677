// Package dataset defines the normalized benchmark record type and the
// reduction that collapses repeated observations into one canonical row
// per (database, workload, phase).
package dataset

import "sort"

// Phase identifies the stage of a benchmark run a measurement belongs to.
type Phase string

const (
	// PhaseLoad is the initial data-loading stage.
	PhaseLoad Phase = "load"

	// PhaseRun is the measurement stage following the load stage.
	PhaseRun Phase = "run"
)

// IsValid reports whether p is one of the known phases.
func (p Phase) IsValid() bool {
	return p == PhaseLoad || p == PhaseRun
}

// Record is one normalized benchmark observation. Throughput of zero is
// the "unavailable" sentinel and such records never enter a dataset;
// StorageSizeMB of zero means the log did not report a database size.
// Records are immutable once constructed.
type Record struct {
	Database            string  `json:"database"`
	Workload            string  `json:"workload"`
	Phase               Phase   `json:"phase"`
	ThroughputOpsPerSec float64 `json:"throughput_ops_per_sec"`
	ThroughputMillions  float64 `json:"throughput_millions"`
	StorageSizeMB       float64 `json:"storage_size_mb"`
}

// NewRecord builds a Record with the derived millions field populated.
func NewRecord(database, workload string, phase Phase, throughput, sizeMB float64) Record {
	return Record{
		Database:            database,
		Workload:            workload,
		Phase:               phase,
		ThroughputOpsPerSec: throughput,
		ThroughputMillions:  throughput / 1_000_000,
		StorageSizeMB:       sizeMB,
	}
}

// Key is the aggregation key identifying one logical measurement
// regardless of how many repeated log files exist for it.
type Key struct {
	Database string
	Workload string
	Phase    Phase
}

// Key returns the aggregation key for the record.
func (r Record) Key() Key {
	return Key{Database: r.Database, Workload: r.Workload, Phase: r.Phase}
}

// Aggregate collapses records sharing the same key into a single record.
// Each numeric field is maximized independently across the group: repeated
// runs of the same configuration are attempts at the same measurement, and
// the highest observed value is taken as the representative one. The
// reduction is commutative and associative, so input order never changes
// the result, and aggregating an already-aggregated dataset is a no-op.
//
// Output order is unspecified; use Sort for presentation ordering.
func Aggregate(records []Record) []Record {
	groups := make(map[Key]Record, len(records))

	for _, rec := range records {
		key := rec.Key()

		best, ok := groups[key]
		if !ok {
			groups[key] = rec

			continue
		}

		if rec.ThroughputOpsPerSec > best.ThroughputOpsPerSec {
			best.ThroughputOpsPerSec = rec.ThroughputOpsPerSec
		}

		if rec.ThroughputMillions > best.ThroughputMillions {
			best.ThroughputMillions = rec.ThroughputMillions
		}

		if rec.StorageSizeMB > best.StorageSizeMB {
			best.StorageSizeMB = rec.StorageSizeMB
		}

		groups[key] = best
	}

	out := make([]Record, 0, len(groups))
	for _, rec := range groups {
		out = append(out, rec)
	}

	return out
}

// FilterPhase returns the records matching the given phase.
func FilterPhase(records []Record, phase Phase) []Record {
	out := make([]Record, 0, len(records))

	for _, rec := range records {
		if rec.Phase == phase {
			out = append(out, rec)
		}
	}

	return out
}

// Sort orders records by workload, then database, then phase. Consumers
// that need presentation ordering call this after Aggregate.
func Sort(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Workload != records[j].Workload {
			return records[i].Workload < records[j].Workload
		}

		if records[i].Database != records[j].Database {
			return records[i].Database < records[j].Database
		}

		return records[i].Phase < records[j].Phase
	})
}

// Databases returns the sorted set of distinct database identifiers.
func Databases(records []Record) []string {
	return distinct(records, func(r Record) string { return r.Database })
}

// Workloads returns the sorted set of distinct workload identifiers.
func Workloads(records []Record) []string {
	return distinct(records, func(r Record) string { return r.Workload })
}

func distinct(records []Record, field func(Record) string) []string {
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		seen[field(rec)] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}

	sort.Strings(out)

	return out
}

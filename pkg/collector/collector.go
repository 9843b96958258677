// Package collector turns a directory of benchmark log files into a
// list of normalized records.
package collector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ycsbtools/benchreport/pkg/dataset"
	"github.com/ycsbtools/benchreport/pkg/parser"
)

// ErrNoRecords is returned when a directory yields no usable records.
// It is the only per-run failure surfaced to the caller; everything at
// the level of a single file is absorbed and logged.
var ErrNoRecords = errors.New("no usable benchmark records found")

// defaultConcurrency bounds parallel log file parsing when no explicit
// concurrency value is configured. Files are independent, so they can
// be parsed in parallel and reduced afterwards.
const defaultConcurrency = 4

// Collector assembles benchmark records from a results directory.
type Collector interface {
	Collect(ctx context.Context, dir string) ([]dataset.Record, error)
}

// Compile-time interface check.
var _ Collector = (*collector)(nil)

type collector struct {
	log         logrus.FieldLogger
	concurrency int
}

// New creates a collector with the given parse concurrency.
func New(log logrus.FieldLogger, concurrency int) Collector {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &collector{
		log:         log.WithField("component", "collector"),
		concurrency: concurrency,
	}
}

// Collect enumerates candidate log files in dir, decodes each file name
// and extracts a record from each file's content. Files that do not
// match the naming convention are skipped; unreadable files are logged
// and treated as having no data. Only records with positive throughput
// are kept. Returns ErrNoRecords when nothing usable was found.
func (c *collector) Collect(ctx context.Context, dir string) ([]dataset.Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading results directory: %w", err)
	}

	type task struct {
		path    string
		decoded parser.DecodedName
	}

	var tasks []task

	skipped := 0

	for _, entry := range entries {
		if entry.IsDir() || !isCandidate(entry.Name()) {
			continue
		}

		decoded, ok := parser.DecodeFilename(entry.Name())
		if !ok {
			skipped++

			continue
		}

		tasks = append(tasks, task{
			path:    filepath.Join(dir, entry.Name()),
			decoded: decoded,
		})
	}

	var (
		mu      sync.Mutex
		records []dataset.Record
		empty   atomic.Int64
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, t := range tasks {
		t := t

		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			m, err := c.extractFile(t.path)
			if err != nil {
				c.log.WithError(err).
					WithField("file", t.path).
					Warn("Failed to parse log file")

				return nil //nolint:nilerr // log and continue
			}

			if m.ThroughputOpsPerSec <= 0 {
				empty.Add(1)

				return nil
			}

			rec := dataset.NewRecord(
				t.decoded.Database,
				t.decoded.Workload,
				t.decoded.Phase,
				m.ThroughputOpsPerSec,
				m.StorageSizeMB,
			)

			mu.Lock()
			records = append(records, rec)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parsing log files: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"records": len(records),
		"no_data": empty.Load(),
		"skipped": skipped,
		"files":   len(tasks),
	}).Info("Collected benchmark records")

	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	return records, nil
}

// extractFile reads one log file and extracts its measurement.
func (c *collector) extractFile(path string) (parser.Measurement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return parser.Measurement{}, fmt.Errorf("reading log file: %w", err)
	}

	return parser.Extract(string(data)), nil
}

// isCandidate reports whether a file name plausibly follows the log
// naming convention, cheap enough to run before full decoding.
func isCandidate(name string) bool {
	return strings.HasSuffix(name, ".log") && strings.Contains(name, "_")
}

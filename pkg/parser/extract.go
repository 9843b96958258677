// Package parser extracts structured measurements from YCSB benchmark
// log text and decodes the log file naming convention.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/docker/go-units"
)

// Measurement holds the two facts extracted from one log file. A zero
// throughput means no throughput line was found; a zero size means the
// log did not report a database size.
type Measurement struct {
	ThroughputOpsPerSec float64
	StorageSizeMB       float64
}

// throughputRule matches one throughput line shape and extracts its
// numeric value. Rules are pure: text in, optional value out.
type throughputRule struct {
	name string
	re   *regexp.Regexp
}

func (r throughputRule) match(text string) (float64, bool) {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// throughputRules are tried in order; the first match wins. The
// steady-state run measurement is preferred over the load measurement,
// which only serves as a fallback for runs where no run phase executed.
var throughputRules = []throughputRule{
	{name: "run", re: regexp.MustCompile(`Run throughput\(ops/sec\):\s*([\d.e+]+)`)},
	{name: "load", re: regexp.MustCompile(`Load throughput\(ops/sec\):\s*([\d.e+]+)`)},
}

// sizeRe matches lines like "Database size: 128M" or "Database size: 1,5G".
// The unit suffix is optional; a bare number is a byte count.
var sizeRe = regexp.MustCompile(`Database size:\s*([\d.,]+)([KMG]?)`)

// Extract pulls the throughput and database size out of raw log text.
// Both lookups are independent; a missing fact yields its zero sentinel
// rather than an error.
func Extract(text string) Measurement {
	var m Measurement

	for _, rule := range throughputRules {
		if v, ok := rule.match(text); ok {
			m.ThroughputOpsPerSec = v

			break
		}
	}

	if sm := sizeRe.FindStringSubmatch(text); sm != nil {
		if mb, err := parseSizeMB(sm[1], sm[2]); err == nil {
			m.StorageSizeMB = mb
		}
	}

	return m
}

// parseSizeMB normalizes a raw size value and unit suffix to megabytes.
// Suffixes are binary (G is 1024 MB, K is 1/1024 MB) and a missing
// suffix means the value is a byte count. Both "." and "," are accepted
// as the decimal separator.
func parseSizeMB(value, unit string) (float64, error) {
	value = strings.ReplaceAll(value, ",", ".")

	// go-units handles the suffix arithmetic; a bare number parses as
	// bytes, matching the convention of the size reporting tooling.
	bytes, err := units.RAMInBytes(value + unit)
	if err != nil {
		return 0, fmt.Errorf("parsing size %q: %w", value+unit, err)
	}

	return float64(bytes) / float64(units.MiB), nil
}

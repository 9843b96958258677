package parser

import (
	"strings"

	"github.com/ycsbtools/benchreport/pkg/dataset"
)

// separator joins the fields of a log file name. Workload identifiers
// may themselves contain it, which is why decoding scans for the phase
// token instead of splitting naively.
const separator = "_"

// minTokens is the shortest conforming name: db_workload_phase_timestamp.
const minTokens = 4

// DecodedName holds the identifiers recovered from a log file name.
type DecodedName struct {
	Database string
	Workload string
	Phase    dataset.Phase
}

// DecodeFilename recovers (database, workload, phase) from a file name
// following the <database>_<workload>_<phase>_<timestamp>.log convention.
// The first token is the database; the first following token equal to
// "load" or "run" is the phase; everything in between, rejoined with the
// separator, is the workload. Tokens after the phase (the timestamp) are
// ignored. Returns false for names that do not match the convention.
//
// A workload may legally decode to the empty string when the phase token
// immediately follows the database token; callers decide whether to
// accept that.
func DecodeFilename(name string) (DecodedName, bool) {
	base := strings.TrimSuffix(name, ".log")
	tokens := strings.Split(base, separator)

	if len(tokens) < minTokens {
		return DecodedName{}, false
	}

	phaseIdx := -1

	for i := 1; i < len(tokens); i++ {
		if p := dataset.Phase(tokens[i]); p.IsValid() {
			phaseIdx = i

			break
		}
	}

	if phaseIdx == -1 {
		return DecodedName{}, false
	}

	return DecodedName{
		Database: tokens[0],
		Workload: strings.Join(tokens[1:phaseIdx], separator),
		Phase:    dataset.Phase(tokens[phaseIdx]),
	}, true
}

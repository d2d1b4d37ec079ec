package report

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// HighlightLine returns a token-level diff between two corresponding table
// lines (one "N n corrected normalized" row from a reference table and one
// from an actual table), formatted with diffmatchpatch's delta markers.
// Diff (line-granularity, pmezard/go-difflib) tells a caller WHICH rows
// changed; HighlightLine tells them WHAT changed within a row the caller
// has already flagged as interesting — the same two-granularity pairing
// the teacher's seqhash package uses diffmatchpatch for (character-level
// detail underneath a line-level comparison).
func HighlightLine(reference, actual string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(reference, actual, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

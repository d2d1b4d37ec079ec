// Package report formats isocor.Result for human consumption: a corrected/
// normalized intensity table, and (diff.go) a unified diff against a
// reference result for regression validation (§6, §7).
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bebop-bio/isocor"
)

// WriteTable writes a whitespace-aligned table of corrected and normalized
// intensities, one row per enumerated tracer (N,n) pair, in the order
// result.Combinations' tracer-pair buckets were assembled.
func WriteTable(w io.Writer, result *isocor.Result) error {
	var b strings.Builder
	b.WriteString("N\tn\tcorrected\tnormalized\n")
	for i := range result.Corrected {
		n, n2 := tracerPairAt(result, i)
		fmt.Fprintf(&b, "%d\t%d\t%.6g\t%.6g\n", n, n2, result.Corrected[i], result.Normalized[i])
	}
	if result.EnrichmentValid {
		fmt.Fprintf(&b, "# mean enrichment: %.6g\n", result.MeanEnrichment)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(&b, "# warning: %s\n", warning.String())
	}
	fmt.Fprintf(&b, "# provenance: %s\n", result.Provenance)
	_, err := io.WriteString(w, b.String())
	return err
}

// tracerPairAt recovers the (N,n) row label for the i-th corrected entry
// from the slot-ordered combination set: the i-th distinct TracerSlot seen
// in Combinations, in first-occurrence order (increasing N, then n). This
// matches Assemble's row index only when the measurements were given in
// that same order; otherwise the labels do not follow the rows.
func tracerPairAt(result *isocor.Result, i int) (n, n2 int) {
	seen := make(map[[2]int]bool)
	idx := 0
	for _, c := range result.Combinations {
		key := [2]int{c.TracerSlot.N, c.TracerSlot.N2}
		if seen[key] {
			continue
		}
		seen[key] = true
		if idx == i {
			return c.TracerSlot.N, c.TracerSlot.N2
		}
		idx++
	}
	return 0, 0
}

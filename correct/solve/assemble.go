package solve

import (
	"fmt"

	"github.com/bebop-bio/isocor/chem"
	"github.com/bebop-bio/isocor/correct/enumerate"
	"github.com/bebop-bio/isocor/correct/probability"
	"github.com/bebop-bio/isocor/isotope"
)

// Assemble builds the correction matrix and right-hand-side vector of
// §4.4.1. measurements must carry exactly the tracer (N,n) pairs enumerated
// for compound (result.TracerPairs), else chem.ErrMeasurementKeyMismatch.
func Assemble(table *isotope.Table, compound chem.Compound, purity chem.Purity, result *enumerate.Result, measurements chem.MeasurementSet, cache *probability.Cache) (*Matrix, []float64, error) {
	deltaMTracer, err := table.MassDelta(compound.Precursor.Tracer.Element, compound.Precursor.Tracer.Isotope)
	if err != nil {
		return nil, nil, err
	}

	if err := validateMeasurementKeys(measurements, result.TracerPairs); err != nil {
		return nil, nil, err
	}

	n := len(measurements)
	rowIdx := make(map[chem.NnKey]int, n)
	b := make([]float64, n)
	for i, m := range measurements {
		key := chem.NnKey{N: m.N * deltaMTracer, N2: m.N2 * deltaMTracer}
		rowIdx[key] = i
		b[i] = m.Value
	}

	A := NewMatrix(n)
	for _, c := range result.Combinations {
		row, ok := rowIdx[c.Mass]
		if !ok {
			continue // combination's mass bucket has no corresponding measured row
		}
		colKey := chem.NnKey{N: c.TracerSlot.N * deltaMTracer, N2: c.TracerSlot.N2 * deltaMTracer}
		col, ok := rowIdx[colKey]
		if !ok {
			continue
		}
		prob, err := probability.Combination(table, compound, purity, result.SlotOrder, c, cache)
		if err != nil {
			return nil, nil, err
		}
		A.Add(row, col, prob)
	}

	return A, b, nil
}

// validateMeasurementKeys enforces §3's measurement-vector invariant: the
// set of (N,n) keys must exactly match the enumerated tracer pair set.
func validateMeasurementKeys(measurements chem.MeasurementSet, tracerPairs []enumerate.Pair) error {
	want := make(map[chem.NnKey]bool, len(tracerPairs))
	for _, p := range tracerPairs {
		want[chem.NnKey{N: p.N, N2: p.N2}] = true
	}
	if len(measurements) != len(want) {
		return fmt.Errorf("%w: %d measurements, %d tracer pairs", chem.ErrMeasurementKeyMismatch, len(measurements), len(want))
	}
	seen := make(map[chem.NnKey]bool, len(measurements))
	for _, m := range measurements {
		key := chem.NnKey{N: m.N, N2: m.N2}
		if !want[key] {
			return fmt.Errorf("%w: measurement (%d,%d) is not a valid tracer pair", chem.ErrMeasurementKeyMismatch, m.N, m.N2)
		}
		if seen[key] {
			return fmt.Errorf("%w: duplicate measurement key (%d,%d)", chem.ErrMeasurementKeyMismatch, m.N, m.N2)
		}
		seen[key] = true
	}
	return nil
}

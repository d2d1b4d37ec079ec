/*
Package isocor is the numerical core of an isotope correction engine for
tandem mass spectrometry. Given a labeled compound's precursor/fragment
atomic composition, a natural-isotope table, a measured intensity vector,
and (optionally) a tracer-purity descriptor, Correct reconstructs the true
tracer-enrichment distribution by enumerating every plausible isotope
combination (package correct/enumerate), weighting each by its natural
probability (package correct/probability), and solving the resulting linear
correction system (package correct/solve).

The core performs no I/O: callers parse compound descriptions, natural
abundance tables, measurements and purity descriptors (see the io/
subpackages) and pass the validated values in.
*/
package isocor

import (
	"fmt"
	"math"

	"github.com/bebop-bio/isocor/chem"
	"github.com/bebop-bio/isocor/correct/enumerate"
	"github.com/bebop-bio/isocor/correct/probability"
	"github.com/bebop-bio/isocor/correct/solve"
	"github.com/bebop-bio/isocor/isotope"
)

// Options controls the optional stages of a single Correct call.
type Options struct {
	// NaturalAbundanceOnTracer enables background natural-isotope variation
	// among atoms reserved for the deliberate tracer label (§4.2.4).
	NaturalAbundanceOnTracer bool
	// Purity, when non-nil, enables purity expansion (§4.2.5) and its
	// probability correction (§4.3).
	Purity chem.Purity
	// HashAlgorithm selects the content-hash algorithm used to compute
	// Result.Provenance. The zero value selects BLAKE3.
	HashAlgorithm HashAlgorithm
	// Expected, when non-nil, is a caller-supplied expected corrected
	// vector keyed by the same tracer (N,n) pairs as measurements (§6).
	// Correct compares it element-wise against the computed corrected
	// vector and appends a tagged Warning for any entry whose absolute
	// difference exceeds expectedValueTolerance; a mismatch never fails
	// the call (§7, §8 scenario 6: processing continues regardless).
	Expected chem.MeasurementSet
}

// expectedValueTolerance is the absolute-difference threshold of §6's
// expected-result validation: "the core computes the element-wise absolute
// difference and flags any exceeding a tolerance of 1.0 as a warning".
const expectedValueTolerance = 1.0

// Warning is a non-fatal condition surfaced on Result rather than logged,
// so callers decide how to present it (§7).
type Warning struct {
	Message string
	// HasValues reports whether ExpectedValue/ActualValue/Index are
	// meaningful; set only for expected-result validation warnings.
	HasValues     bool
	Index         int
	ExpectedValue float64
	ActualValue   float64
}

func (w Warning) String() string { return w.Message }

// Result is the outcome of one Correct call: the solver's contract (§4.5)
// plus the EXPANSION-2 provenance fingerprint.
type Result struct {
	// Corrected is the raw, anchor-normalized corrected intensity vector.
	Corrected []float64
	// Normalized is Corrected rescaled to sum to 1.
	Normalized []float64
	// Matrix is the assembled correction matrix (§4.4.1).
	Matrix *solve.Matrix
	// Isotopologue reports whether compound had no fragmentation.
	Isotopologue bool
	// MeanEnrichment is only meaningful when Isotopologue is true.
	MeanEnrichment float64
	// EnrichmentValid is false when MeanEnrichment is undefined.
	EnrichmentValid bool
	// Combinations is the full enumerated combination set, for callers that
	// want to inspect the matrix's sparsity pattern.
	Combinations []enumerate.Combination
	// SlotOrder is the slot descriptor vector shared by every Combination.
	SlotOrder []enumerate.Slot
	// Provenance is a content-hash fingerprint of this call's normalized
	// inputs, for reproducibility audit logs. Not part of spec.md's Results
	// Contract; additive (EXPANSION-2).
	Provenance string
	// Warnings collects non-fatal conditions encountered during the call.
	Warnings []Warning
}

// Correct runs the full correction pipeline (§4.5, §5): enumerate, weight,
// assemble, solve, post-process. compound must satisfy chem.Compound.Validate
// against table; measurements must carry exactly the enumerated tracer (N,n)
// pairs (chem.ErrMeasurementKeyMismatch otherwise). The call is synchronous,
// deterministic, and allocates no state outside its own duration (§5).
func Correct(table *isotope.Table, compound chem.Compound, measurements chem.MeasurementSet, opts Options) (*Result, error) {
	if err := compound.Validate(table); err != nil {
		return nil, err
	}
	if opts.Purity != nil {
		if err := opts.Purity.Validate(table, compound.Precursor.Tracer.Element); err != nil {
			return nil, err
		}
	}

	enumResult, err := enumerate.Enumerate(table, compound, enumerate.Options{
		NaturalAbundanceOnTracer: opts.NaturalAbundanceOnTracer,
		Purity:                   opts.Purity,
	})
	if err != nil {
		return nil, err
	}
	if len(enumResult.TracerPairs) != len(measurements) {
		return nil, fmt.Errorf("%w: %d tracer pairs, %d measurements",
			chem.ErrMeasurementKeyMismatch, len(enumResult.TracerPairs), len(measurements))
	}

	cache := probability.NewCache()
	A, b, err := solve.Assemble(table, compound, opts.Purity, enumResult, measurements, cache)
	if err != nil {
		return nil, err
	}

	x, err := solve.Solve(A, b, opts.Purity != nil)
	if err != nil {
		return nil, err
	}

	isotopologue := compound.IsIsotopologue()
	post := solve.PostProcess(A, x, b[0], isotopologue)

	var warnings []Warning
	if !isotopologue {
		warnings = append(warnings, Warning{Message: "mean enrichment is undefined for a fragmented (non-isotopologue) compound"})
	}
	if opts.Expected != nil {
		warnings = append(warnings, validateExpected(measurements, post.Corrected, opts.Expected)...)
	}

	provenance, err := ComputeProvenance(table, compound, measurements, opts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Corrected:       post.Corrected,
		Normalized:      post.Normalized,
		Matrix:          A,
		Isotopologue:    isotopologue,
		MeanEnrichment:  post.MeanEnrichment,
		EnrichmentValid: post.EnrichmentValid,
		Combinations:    enumResult.Combinations,
		SlotOrder:       enumResult.SlotOrder,
		Provenance:      provenance,
		Warnings:        warnings,
	}, nil
}

// validateExpected implements §6's expected-result validation (§8 scenario
// 6): compare expected against the computed corrected vector, row by row
// matched on (N,n) key rather than position, since a caller's expected set
// need not be given in the same order as measurements. A key present in
// expected but absent from measurements is ignored; it can't correspond to
// any row of corrected.
func validateExpected(measurements chem.MeasurementSet, corrected []float64, expected chem.MeasurementSet) []Warning {
	expectedByKey := make(map[chem.NnKey]float64, len(expected))
	for _, e := range expected {
		expectedByKey[chem.NnKey{N: e.N, N2: e.N2}] = e.Value
	}

	var warnings []Warning
	for i, m := range measurements {
		want, ok := expectedByKey[chem.NnKey{N: m.N, N2: m.N2}]
		if !ok {
			continue
		}
		got := corrected[i]
		diff := math.Abs(got - want)
		if diff > expectedValueTolerance {
			warnings = append(warnings, Warning{
				Message: fmt.Sprintf("expected validation failed at (N=%d,n=%d): expected %.6g, got %.6g (|diff|=%.6g exceeds tolerance %.6g)",
					m.N, m.N2, want, got, diff, expectedValueTolerance),
				HasValues:     true,
				Index:         i,
				ExpectedValue: want,
				ActualValue:   got,
			})
		}
	}
	return warnings
}

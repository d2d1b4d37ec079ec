package solve

// Result is the solver's full output (§4.5): the assembled matrix, the
// anchor-normalized corrected vector and its relative distribution, and —
// only meaningful for an isotopologue compound — the mean enrichment.
type Result struct {
	Matrix          *Matrix
	Corrected       []float64 // x, after anchor normalization
	Normalized      []float64 // x̂ = x / Σx
	Isotopologue    bool
	MeanEnrichment  float64
	EnrichmentValid bool // false for non-isotopologue compounds: enrichment is undefined
}

// PostProcess runs §4.4.3 on a raw solved vector x: anchor normalization
// against the measured anchor intensity b0, relative-distribution
// computation, and (for isotopologues only) mean enrichment.
func PostProcess(A *Matrix, x []float64, b0 float64, isotopologue bool) Result {
	corrected := make([]float64, len(x))
	copy(corrected, x)

	if len(corrected) > 0 && corrected[0] > 0 {
		factor := b0 / corrected[0]
		for i := range corrected {
			corrected[i] *= factor
		}
	}

	sum := 0.0
	for _, v := range corrected {
		sum += v
	}
	if sum == 0 {
		sum = 1
	}
	normalized := make([]float64, len(corrected))
	for i, v := range corrected {
		normalized[i] = v / sum
	}

	result := Result{
		Matrix:       A,
		Corrected:    corrected,
		Normalized:   normalized,
		Isotopologue: isotopologue,
	}

	if isotopologue && len(normalized) > 1 {
		acc := 0.0
		for i := 1; i < len(normalized); i++ {
			acc += float64(i) * normalized[i]
		}
		result.MeanEnrichment = acc / float64(len(normalized)-1)
		result.EnrichmentValid = true
	}

	return result
}

package enumerate

import "github.com/bebop-bio/isocor/isotope"

// elementMerge is the result of §4.2.3's cross-isotope merge for one
// element: one joint record per valid combination of its non-lightest
// isotopes, each a slice of (N,n) pairs parallel to isotopeNames, plus the
// mass-delta each isotope contributes per labeled atom.
type elementMerge struct {
	isotopeNames []string // non-lightest isotopes of the element, in slot order
	deltas       []int    // mass delta of each, parallel to isotopeNames
	records      [][]Pair // one joint record per valid combination
}

// mergeElement runs §4.2.1 (per-isotope generation) then §4.2.3
// (cross-isotope merge + filter) for a single element with precursor count
// P and fragment count F. An inert element (one known isotope) or an
// element with only its lightest isotope present yields an elementMerge with
// no isotopeNames and a single empty record — it contributes no slots, but
// still needs a single "no-op" record to act as an identity factor in the
// cross-element Cartesian product.
func mergeElement(table *isotope.Table, element string, P, F, tracerNMax, tracerN2Max, deltaMTracer int) (elementMerge, error) {
	isos, err := table.IsotopesOf(element)
	if err != nil {
		return elementMerge{}, err
	}
	nonLightest := isos[1:]
	if len(nonLightest) == 0 {
		return elementMerge{records: [][]Pair{{}}}, nil
	}

	deltas := make([]int, len(nonLightest))
	perIsotope := make([][]Pair, len(nonLightest))
	for i, name := range nonLightest {
		delta, err := table.MassDelta(element, name)
		if err != nil {
			return elementMerge{}, err
		}
		deltas[i] = delta
		perIsotope[i] = isotopePairs(P, F, delta, tracerNMax, tracerN2Max, deltaMTracer)
	}

	prune := func(partial []Pair) bool {
		sumN, sumN2, massN, massN2 := sumPairs(partial, deltas[:len(partial)])
		return sumN <= P && sumN2 <= F && massN <= deltaMTracer*tracerNMax && massN2 <= deltaMTracer*tracerN2Max
	}
	final := func(full []Pair) bool {
		sumN, sumN2, massN, massN2 := sumPairs(full, deltas)
		if sumN > P || sumN2 > F {
			return false
		}
		if (P-F)+sumN2 < sumN {
			return false
		}
		if massN > deltaMTracer*tracerNMax || massN2 > deltaMTracer*tracerN2Max {
			return false
		}
		return true
	}

	records := productWithFilter(perIsotope, prune, final)
	return elementMerge{isotopeNames: nonLightest, deltas: deltas, records: records}, nil
}

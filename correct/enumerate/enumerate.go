package enumerate

import (
	"sort"

	"github.com/bebop-bio/isocor/chem"
	"github.com/bebop-bio/isocor/isotope"
)

// Enumerate runs all of §4.2 for a single compound: per-element pair
// generation and cross-isotope merge (§4.2.1, §4.2.3), the mandatory tracer
// pair set (§4.2.2), cross-element merge (§4.2.4), and — when opts.Purity is
// set — purity expansion (§4.2.5). compound must already have passed
// chem.Compound.Validate.
func Enumerate(table *isotope.Table, compound chem.Compound, opts Options) (*Result, error) {
	precursorTracerN := compound.Precursor.Tracer.Count
	fragmentTracerN := compound.Fragment.Tracer.Count
	tracerElement := compound.Precursor.Tracer.Element
	tracerIsotope := compound.Precursor.Tracer.Isotope

	deltaMTracer, err := table.MassDelta(tracerElement, tracerIsotope)
	if err != nil {
		return nil, err
	}

	elements := sortedElementKeys(compound.Precursor.Elements)

	var stages []stage
	for _, el := range elements {
		merge, err := mergeElement(table, el, compound.Precursor.Elements[el], compound.Fragment.Elements[el], precursorTracerN, fragmentTracerN, deltaMTracer)
		if err != nil {
			return nil, err
		}
		if len(merge.isotopeNames) == 0 {
			continue // inert or single-isotope element contributes no slots
		}
		stages = append(stages, stage{kind: SlotNatAb, element: el, merge: merge})
	}

	if opts.NaturalAbundanceOnTracer {
		// Every non-lightest isotope of the tracer element, the tracer isotope
		// included, can occur naturally on the atoms not carrying the label.
		merge, err := mergeElement(table, tracerElement, precursorTracerN, fragmentTracerN, precursorTracerN, fragmentTracerN, deltaMTracer)
		if err != nil {
			return nil, err
		}
		if len(merge.isotopeNames) > 0 {
			stages = append(stages, stage{kind: SlotNatAbTracer, element: tracerElement, merge: merge})
		}
	}

	tracerPairSet := tracerPairs(precursorTracerN, fragmentTracerN)
	tracerRecords := make([][]Pair, len(tracerPairSet))
	for i, p := range tracerPairSet {
		tracerRecords[i] = []Pair{p}
	}
	stages = append(stages, stage{
		kind:    SlotTracer,
		element: tracerElement,
		merge: elementMerge{
			isotopeNames: []string{tracerIsotope},
			deltas:       []int{deltaMTracer},
			records:      tracerRecords,
		},
	})

	slotOrder, combinations := crossElementMerge(stages, precursorTracerN, fragmentTracerN, deltaMTracer)

	if opts.Purity != nil {
		slotOrder, combinations, err = expandPurity(table, compound, opts.Purity, slotOrder, combinations)
		if err != nil {
			return nil, err
		}
	}

	buckets := make(map[chem.NnKey][]int, len(combinations))
	for i, c := range combinations {
		buckets[c.Mass] = append(buckets[c.Mass], i)
	}

	return &Result{
		SlotOrder:    slotOrder,
		Combinations: combinations,
		TracerPairs:  tracerPairSet,
		Buckets:      buckets,
	}, nil
}

func sortedElementKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// mergeElementExcluding behaves like mergeElement but drops one named
// isotope from the non-lightest set before generating pairs.
func mergeElementExcluding(table *isotope.Table, element, exclude string, P, F, tracerNMax, tracerN2Max, deltaMTracer int) (elementMerge, error) {
	isos, err := table.IsotopesOf(element)
	if err != nil {
		return elementMerge{}, err
	}
	var nonLightest []string
	for _, name := range isos[1:] {
		if name != exclude {
			nonLightest = append(nonLightest, name)
		}
	}
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

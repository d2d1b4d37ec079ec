package enumerate

import (
	"github.com/bebop-bio/isocor/chem"
	"github.com/bebop-bio/isocor/isotope"
)

// expandPurity runs §4.2.5: the trailing tracer slot's (N,n) is replaced by
// every distribution of those N precursor / n fragment labeled positions
// across every tracer-element isotope with a nonzero purity fraction
// (including the lightest — Open Question (c): some reference
// implementations skip it, this one does not; if no fraction is nonzero,
// all isotopes are used), subject to the same per-isotope conservation
// shape as §4.2.1. The
// all-pure-tracer distribution is always one such partition, so the
// original combination is reproduced rather than duplicated.
func expandPurity(table *isotope.Table, compound chem.Compound, purity chem.Purity, slotOrder []Slot, combinations []Combination) ([]Slot, []Combination, error) {
	tracerElement := compound.Precursor.Tracer.Element
	allIsos, err := table.IsotopesOf(tracerElement)
	if err != nil {
		return nil, nil, err
	}
	// Isotopes absent from (or zeroed in) the purity descriptor never occur
	// in the reagent, so they are dropped from the slot set entirely rather
	// than carried as a dimension that can only ever hold zero.
	var isos []string
	for _, name := range allIsos {
		if purity[name] > 0 {
			isos = append(isos, name)
		}
	}
	if len(isos) == 0 {
		isos = allIsos
	}
	deltas := make([]int, len(isos))
	for i, name := range isos {
		d, err := table.MassDelta(tracerElement, name)
		if err != nil {
			return nil, nil, err
		}
		deltas[i] = d
	}

	// purity slots are inserted immediately before the trailing tracer slot,
	// which is always slotOrder's last entry.
	newOrder := make([]Slot, 0, len(slotOrder)+len(isos))
	newOrder = append(newOrder, slotOrder[:len(slotOrder)-1]...)
	for _, name := range isos {
		newOrder = append(newOrder, Slot{Kind: SlotPurity, Element: tracerElement, Isotope: name})
	}
	newOrder = append(newOrder, slotOrder[len(slotOrder)-1])

	maxMassN := 0
	maxMassN2 := 0
	if d, err := table.MassDelta(tracerElement, compound.Precursor.Tracer.Isotope); err == nil {
		maxMassN = d * compound.Precursor.Tracer.Count
		maxMassN2 = d * compound.Fragment.Tracer.Count
	}

	distCache := make(map[Pair][][]Pair)
	distributionsFor := func(total, totalFragment int) [][]Pair {
		key := Pair{N: total, N2: totalFragment}
		if cached, ok := distCache[key]; ok {
			return cached
		}
		dist := tracerIsotopeDistributions(total, totalFragment, len(isos))
		distCache[key] = dist
		return dist
	}

	out := make([]Combination, 0, len(combinations))
	for _, c := range combinations {
		baseMassN := c.Mass.N - massOfPureTracer(table, tracerElement, compound.Precursor.Tracer.Isotope, c.TracerSlot.N)
		baseMassN2 := c.Mass.N2 - massOfPureTracer(table, tracerElement, compound.Precursor.Tracer.Isotope, c.TracerSlot.N2)

		for _, dist := range distributionsFor(c.TracerSlot.N, c.TracerSlot.N2) {
			purityMassN, purityMassN2 := 0, 0
			for i, p := range dist {
				purityMassN += deltas[i] * p.N
				purityMassN2 += deltas[i] * p.N2
			}
			massN := baseMassN + purityMassN
			massN2 := baseMassN2 + purityMassN2
			if massN > maxMassN || massN2 > maxMassN2 {
				continue
			}

			newSlots := make([]Pair, 0, len(newOrder))
			newSlots = append(newSlots, c.Slots[:len(c.Slots)-1]...)
			newSlots = append(newSlots, dist...)
			newSlots = append(newSlots, c.Slots[len(c.Slots)-1])

			out = append(out, Combination{
				Slots:      newSlots,
				TracerSlot: c.TracerSlot,
				Mass:       chem.NnKey{N: massN, N2: massN2},
			})
		}
	}

	return newOrder, out, nil
}

// massOfPureTracer is the mass contribution of treating count labeled
// positions as entirely the tracer isotope — the baseline §4.2.4 combination
// assumed this before purity was known to be imperfect.
func massOfPureTracer(table *isotope.Table, element, tracerIsotope string, count int) int {
	delta, err := table.MassDelta(element, tracerIsotope)
	if err != nil {
		return 0
	}
	return delta * count
}

// tracerIsotopeDistributions enumerates every assignment of total labeled
// precursor positions and totalFragment labeled fragment positions across
// isotopeCount isotopes (order matches the caller's isotope list) such that
// the per-isotope counts sum exactly to total and totalFragment, each
// individual count satisfies the §4.2.1 conservation shape relative to the
// combined budget, and n_i≤N_i.
func tracerIsotopeDistributions(total, totalFragment, isotopeCount int) [][]Pair {
	candidates := tracerPairs(total, totalFragment)
	lists := make([][]Pair, isotopeCount)
	for i := range lists {
		lists[i] = candidates
	}
	prune := func(partial []Pair) bool {
		sumN, sumN2, _, _ := sumPairs(partial, nil)
		return sumN <= total && sumN2 <= totalFragment
	}
	final := func(full []Pair) bool {
		sumN, sumN2, _, _ := sumPairs(full, nil)
		return sumN == total && sumN2 == totalFragment
	}
	return productWithFilter(lists, prune, final)
}

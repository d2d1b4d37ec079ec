package enumerate

import "github.com/bebop-bio/isocor/chem"

// stage is one step of the §4.2.4 cross-element merge: a slot-kind tag, the
// element it belongs to, and that element's already-filtered §4.2.3 merge.
type stage struct {
	kind    SlotKind
	element string
	merge   elementMerge
}

// crossElementMerge combines every stage's records by Cartesian product,
// filtering after each stage rather than materializing the full product
// first (§5): cumulative non-tracer mass is capped against the tracer's own
// mass budget as soon as a non-tracer element is folded in, and the
// natural-abundance-on-tracer budget is checked against the tracer slot as
// soon as it is reached (the tracer stage is always last).
func crossElementMerge(stages []stage, tracerNMax, tracerN2Max, deltaMTracer int) ([]Slot, []Combination) {
	var slotOrder []Slot
	for _, s := range stages {
		for _, name := range s.merge.isotopeNames {
			slotOrder = append(slotOrder, Slot{Kind: s.kind, Element: s.element, Isotope: name})
		}
	}

	type building struct {
		slots             []Pair
		massN, massN2     int // total summed mass offset so far (bucket)
		nonTracerMassN    int // mass contributed by SlotNatAb stages only
		nonTracerMassN2   int
		natAbTracerSumN   int // sum of N across SlotNatAbTracer stages
		natAbTracerSumN2  int
		tracerSlot        Pair
	}

	acc := []building{{}}
	for _, s := range stages {
		var next []building
		for _, b := range acc {
			for _, rec := range s.merge.records {
				sumN, sumN2, massN, massN2 := sumPairs(rec, s.merge.deltas)
				nb := building{
					slots:            append(append([]Pair{}, b.slots...), rec...),
					massN:            b.massN + massN,
					massN2:           b.massN2 + massN2,
					nonTracerMassN:   b.nonTracerMassN,
					nonTracerMassN2:  b.nonTracerMassN2,
					natAbTracerSumN:  b.natAbTracerSumN,
					natAbTracerSumN2: b.natAbTracerSumN2,
					tracerSlot:       b.tracerSlot,
				}
				switch s.kind {
				case SlotNatAb:
					nb.nonTracerMassN += massN
					nb.nonTracerMassN2 += massN2
					if nb.nonTracerMassN > deltaMTracer*tracerNMax || nb.nonTracerMassN2 > deltaMTracer*tracerN2Max {
						continue
					}
				case SlotNatAbTracer:
					nb.natAbTracerSumN += sumN
					nb.natAbTracerSumN2 += sumN2
				case SlotTracer:
					tracerP := rec[0]
					if nb.natAbTracerSumN+tracerP.N > tracerNMax || nb.natAbTracerSumN2+tracerP.N2 > tracerN2Max {
						continue
					}
					nb.tracerSlot = tracerP
				}
				next = append(next, nb)
			}
		}
		acc = next
	}

	combinations := make([]Combination, 0, len(acc))
	for _, b := range acc {
		combinations = append(combinations, Combination{
			Slots:      b.slots,
			TracerSlot: b.tracerSlot,
			Mass:       chem.NnKey{N: b.massN, N2: b.massN2},
		})
	}
	return slotOrder, combinations
}

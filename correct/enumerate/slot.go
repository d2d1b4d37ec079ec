// Package enumerate is the combination enumerator (component C2): given
// precursor/fragment atom counts per element plus tracer atom counts, it
// produces the finite set of valid (N,n) distribution vectors across all
// isotopes, pruned by conservation and tracer-mass caps (§4.2).
package enumerate

import "github.com/bebop-bio/isocor/chem"

// SlotKind tags which of the three enumerator alternatives a Slot
// represents, or the mandatory trailing tracer slot. This is the typed
// stand-in for the string-keyed "tracer" / "nat_ab_tracer_X" / "purity_X"
// slot-name dispatch a dynamically-typed implementation would use.
type SlotKind int

const (
	// SlotNatAb is one non-lightest isotope of a non-tracer element.
	SlotNatAb SlotKind = iota
	// SlotNatAbTracer is natural-abundance variation among the tracer
	// element's own atoms, independent of the deliberate label.
	SlotNatAbTracer
	// SlotPurity is one isotope of the tracer element, present only when a
	// purity descriptor expands the trailing tracer slot.
	SlotPurity
	// SlotTracer is the final, always-present slot: the tracer isotope
	// itself, whose (N,n) indexes the correction-matrix column.
	SlotTracer
)

func (k SlotKind) String() string {
	switch k {
	case SlotNatAb:
		return "nat_ab"
	case SlotNatAbTracer:
		return "nat_ab_tracer"
	case SlotPurity:
		return "purity"
	case SlotTracer:
		return "tracer"
	default:
		return "unknown"
	}
}

// Slot describes one position in a Combination's Slots vector. Slot order is
// identical across every Combination produced by a single Enumerate call,
// and deterministic run-to-run for identical element/isotope names (§4.2.4).
type Slot struct {
	Kind    SlotKind
	Element string
	Isotope string // the isotope this slot tracks, never empty: non-lightest for SlotNatAb/SlotNatAbTracer, any tracer-element isotope for SlotPurity, the tracer isotope for SlotTracer
}

// Pair is an (N,n) distribution: N labeled positions on the precursor side,
// n on the fragment side, in units of the relevant mass delta.
type Pair struct{ N, N2 int }

// Combination is one enumerated isotope-distribution combination (§3).
type Combination struct {
	// Slots holds one (N,n) pair per entry of the shared SlotOrder.
	Slots []Pair
	// TracerSlot is the pre-purity-expansion tracer (N,n) budget. It never
	// changes across a base combination's purity-expansion children, and is
	// what maps to the correction-matrix column (§4.4.1).
	TracerSlot Pair
	// Mass is the combination's summed mass offset (ΣNΔm, ΣnΔm), i.e. the
	// correction-matrix row bucket it lands in.
	Mass chem.NnKey
	// Prob is filled in by the probability engine (package probability);
	// zero until then.
	Prob float64
}

// Options controls the optional enumerator stages of §4.2.
type Options struct {
	// NaturalAbundanceOnTracer enables the "natural abundance on tracer
	// atoms" slot set: background natural-isotope variation among the
	// atoms nominally reserved for the deliberate label.
	NaturalAbundanceOnTracer bool
	// Purity, if non-nil, triggers the §4.2.5 purity expansion.
	Purity chem.Purity
}

// Result is the enumerator's full output.
type Result struct {
	// SlotOrder is the slot descriptor vector shared by every Combination.
	SlotOrder []Slot
	// Combinations is the enumerated, filtered combination set.
	Combinations []Combination
	// TracerPairs is the tracer (M,m) pair set of §4.2.2, in increasing
	// labeled count (N, then n). The correction matrix is indexed by
	// measurement input order, which equals this order only when the
	// measurements are listed the same way.
	TracerPairs []Pair
	// Buckets maps a (ΣNΔm, ΣnΔm) mass-offset bucket to the indices into
	// Combinations that land in it (§3's derived lookup).
	Buckets map[chem.NnKey][]int
}

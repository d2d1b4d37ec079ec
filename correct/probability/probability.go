package probability

import (
	"math"

	"github.com/bebop-bio/isocor/chem"
	"github.com/bebop-bio/isocor/correct/enumerate"
	"github.com/bebop-bio/isocor/isotope"
)

// elementGroup accumulates one element's non-lightest-isotope slots in slot
// order, ready for elementProbability.
type elementGroup struct {
	intensities []float64
	ns, ns2     []int
}

// elementInput is the per-element probability computation input of §4.3: an
// atom-count budget on each side plus, in slot order, the natural relative
// intensity and (N,n) pair of every non-lightest isotope.
type elementInput struct {
	P, F              int
	LightestIntensity float64
	Intensities       []float64
	Ns, Ns2           []int
}

// Combination computes the probability of one enumerated combination, per
// §4.3: the product over every non-tracer element of its multinomial/
// hypergeometric term, the optional natural-abundance-on-tracer term, and
// the optional purity correction. purity may be nil when the combination was
// not purity-expanded.
func Combination(table *isotope.Table, compound chem.Compound, purity chem.Purity, slotOrder []enumerate.Slot, c enumerate.Combination, cache *Cache) (float64, error) {
	groups := make(map[string]*elementGroup)
	var natAbTracer *elementGroup
	var purityIsos []string
	var purityNs, purityNs2 []int

	for i, s := range slotOrder {
		pair := c.Slots[i]
		switch s.Kind {
		case enumerate.SlotNatAb:
			g := groups[s.Element]
			if g == nil {
				g = &elementGroup{}
				groups[s.Element] = g
			}
			intensity, err := table.RelativeIntensity(s.Element, s.Isotope)
			if err != nil {
				return 0, err
			}
			g.intensities = append(g.intensities, intensity)
			g.ns = append(g.ns, pair.N)
			g.ns2 = append(g.ns2, pair.N2)
		case enumerate.SlotNatAbTracer:
			if natAbTracer == nil {
				natAbTracer = &elementGroup{}
			}
			intensity, err := table.RelativeIntensity(s.Element, s.Isotope)
			if err != nil {
				return 0, err
			}
			natAbTracer.intensities = append(natAbTracer.intensities, intensity)
			natAbTracer.ns = append(natAbTracer.ns, pair.N)
			natAbTracer.ns2 = append(natAbTracer.ns2, pair.N2)
		case enumerate.SlotPurity:
			purityIsos = append(purityIsos, s.Isotope)
			purityNs = append(purityNs, pair.N)
			purityNs2 = append(purityNs2, pair.N2)
		case enumerate.SlotTracer:
			// Deterministic when purity is absent; handled below when present.
		}
	}

	prob := 1.0
	for el, g := range groups {
		P, ok := compound.Precursor.Elements[el]
		if !ok {
			continue
		}
		F := compound.Fragment.Elements[el]
		lightest, err := table.Lightest(el)
		if err != nil {
			return 0, err
		}
		lightestIntensity, err := table.RelativeIntensity(el, lightest)
		if err != nil {
			return 0, err
		}
		key := elementPatternKey(el, P, F, g.ns, g.ns2)
		if v, ok := cache.lookupPattern(key); ok {
			prob *= v
			continue
		}
		v := elementProbability(cache, elementInput{
			P: P, F: F,
			LightestIntensity: lightestIntensity,
			Intensities:       g.intensities,
			Ns:                g.ns, Ns2: g.ns2,
		})
		cache.storePattern(key, v)
		prob *= v
	}

	if natAbTracer != nil {
		tracerElement := compound.Precursor.Tracer.Element
		lightest, err := table.Lightest(tracerElement)
		if err != nil {
			return 0, err
		}
		lightestIntensity, err := table.RelativeIntensity(tracerElement, lightest)
		if err != nil {
			return 0, err
		}
		v := elementProbability(cache, elementInput{
			P: compound.Precursor.Tracer.Count - c.TracerSlot.N,
			F: compound.Fragment.Tracer.Count - c.TracerSlot.N2,
			LightestIntensity: lightestIntensity,
			Intensities:       natAbTracer.intensities,
			Ns:                natAbTracer.ns, Ns2: natAbTracer.ns2,
		})
		prob *= v
	}

	if len(purityIsos) > 0 {
		prob *= purityProbability(purity, purityIsos, c.TracerSlot.N, c.TracerSlot.N2, purityNs, purityNs2, cache)
	}

	return prob, nil
}

// elementProbability computes prob_E of §4.3 for one element-like atom
// pool: the precursor multinomial weighted by natural intensities, the
// fragment multinomial, and the running hypergeometric coupling factor
// (lightest isotope drawn first, then each non-lightest isotope in slot
// order).
func elementProbability(cache *Cache, in elementInput) float64 {
	sumN, sumN2 := 0, 0
	for i := range in.Ns {
		sumN += in.Ns[i]
		sumN2 += in.Ns2[i]
	}
	lightN := in.P - sumN
	lightN2 := in.F - sumN2
	if lightN < 0 || lightN2 < 0 {
		return 0
	}

	remaining := in.P
	coeff := 1.0
	probPow := math.Pow(in.LightestIntensity, float64(lightN))
	for i, n := range in.Ns {
		coeff *= cache.Binomial(remaining, n)
		remaining -= n
		probPow *= math.Pow(in.Intensities[i], float64(n))
	}

	remaining2 := in.F
	coeff2 := 1.0
	for _, n := range in.Ns2 {
		coeff2 *= cache.Binomial(remaining2, n)
		remaining2 -= n
	}

	Ns := make([]int, 0, len(in.Ns)+1)
	ns := make([]int, 0, len(in.Ns2)+1)
	Ns = append(Ns, lightN)
	ns = append(ns, lightN2)
	Ns = append(Ns, in.Ns...)
	ns = append(ns, in.Ns2...)

	remainingP := in.P
	hyper := 1.0
	for idx := range Ns {
		N, n := Ns[idx], ns[idx]
		for s := 0; s < n; s++ {
			if remainingP <= 0 {
				return 0
			}
			hyper *= float64(N-s) / float64(remainingP)
			remainingP--
		}
	}

	return coeff * probPow * coeff2 * hyper
}

// purityProbability applies the §4.3 purity correction: the parent
// combination's tracer budget (baseN, baseN2) is partitioned across the
// purity isotopes; each partition contributes purity_i^{N_i} weighted by a
// sequential binomial coefficient on each side, then a running
// hypergeometric coupling factor is applied over the fragment draws in
// reverse slot order against the shrinking precursor-side free count.
func purityProbability(purity chem.Purity, isos []string, baseN, baseN2 int, ns, ns2 []int, cache *Cache) float64 {
	coeff := 1.0
	remainingN, remainingN2 := baseN, baseN2
	for i, name := range isos {
		coeff *= math.Pow(purity[name], float64(ns[i]))
		coeff *= cache.Binomial(remainingN, ns[i])
		coeff *= cache.Binomial(remainingN2, ns2[i])
		remainingN -= ns[i]
		remainingN2 -= ns2[i]
	}

	hyper := 1.0
	remaining := baseN
	for i := len(isos) - 1; i >= 0; i-- {
		N, n := ns[i], ns2[i]
		for s := 0; s < n; s++ {
			if remaining <= 0 {
				return 0
			}
			hyper *= float64(N-s) / float64(remaining)
			remaining--
		}
	}

	return coeff * hyper
}

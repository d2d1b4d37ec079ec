package probability

import (
	"math"
	"testing"

	"github.com/bebop-bio/isocor/chem"
	"github.com/bebop-bio/isocor/correct/enumerate"
	"github.com/bebop-bio/isocor/isotope"
)

func testTable(t *testing.T) *isotope.Table {
	t.Helper()
	table, err := isotope.New(map[string][]isotope.Isotope{
		"C": {
			{Name: "C12", MassNumber: 12, RelativeIntensity: 0.9893},
			{Name: "C13", MassNumber: 13, RelativeIntensity: 0.0107},
		},
		"H": {
			{Name: "H1", MassNumber: 1, RelativeIntensity: 0.999885},
			{Name: "H2", MassNumber: 2, RelativeIntensity: 0.000115},
		},
	})
	if err != nil {
		t.Fatalf("isotope.New: %v", err)
	}
	return table
}

func TestCacheBinomialMatchesKnownValues(t *testing.T) {
	cache := NewCache()
	cases := []struct{ n, k int; want float64 }{
		{5, 0, 1}, {5, 5, 1}, {5, 2, 10}, {6, 3, 20}, {10, 4, 210},
	}
	for _, c := range cases {
		if got := cache.Binomial(c.n, c.k); got != c.want {
			t.Errorf("Binomial(%d,%d) = %v, want %v", c.n, c.k, got, c.want)
		}
	}
	if got := cache.Binomial(5, 7); got != 0 {
		t.Errorf("Binomial(5,7) = %v, want 0", got)
	}
	if got := cache.Binomial(5, -1); got != 0 {
		t.Errorf("Binomial(5,-1) = %v, want 0", got)
	}
}

func TestElementProbabilityAllLightestSumsToWeightOne(t *testing.T) {
	cache := NewCache()
	// No non-lightest slots: the entire population is the lightest isotope,
	// so probability collapses to 1 (only one possible outcome).
	in := elementInput{P: 6, F: 6, LightestIntensity: 1.0}
	got := elementProbability(cache, in)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("all-lightest probability = %v, want 1", got)
	}
}

func TestElementProbabilityMatchesBinomialForSingleIsotope(t *testing.T) {
	cache := NewCache()
	// Single non-lightest isotope, isotopologue (F=P, n=N): this degenerates
	// to a plain binomial(P,N) * p^N * (1-p)^(P-N).
	P, N := 4, 2
	p := 0.0107
	in := elementInput{
		P: P, F: P,
		LightestIntensity: 1 - p,
		Intensities:       []float64{p},
		Ns:                []int{N}, Ns2: []int{N},
	}
	got := elementProbability(cache, in)
	want := cache.Binomial(P, N) * math.Pow(p, float64(N)) * math.Pow(1-p, float64(P-N))
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("elementProbability = %v, want %v", got, want)
	}
}

func TestElementProbabilityNegativeLightestIsZero(t *testing.T) {
	cache := NewCache()
	in := elementInput{P: 2, F: 2, Ns: []int{3}, Ns2: []int{1}, Intensities: []float64{0.01}}
	if got := elementProbability(cache, in); got != 0 {
		t.Errorf("expected 0 when ΣN > P, got %v", got)
	}
}

func TestCombinationProbabilitiesSumToOneIsotopologue(t *testing.T) {
	table := testTable(t)
	compound := chem.Compound{
		Name: "test",
		Precursor: chem.Side{
			Tracer:   chem.Tracer{Element: "C", Isotope: "C13", Count: 2},
			Elements: map[string]int{"H": 4},
		},
		Fragment: chem.Side{
			Tracer:   chem.Tracer{Element: "C", Isotope: "C13", Count: 2},
			Elements: map[string]int{"H": 4},
		},
	}
	result, err := enumerate.Enumerate(table, compound, enumerate.Options{})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	cache := NewCache()
	totals := make(map[enumerate.Pair]float64)
	for _, c := range result.Combinations {
		p, err := Combination(table, compound, nil, result.SlotOrder, c, cache)
		if err != nil {
			t.Fatalf("Combination: %v", err)
		}
		if p < 0 || p > 1+1e-9 {
			t.Errorf("probability out of range: %v", p)
		}
		totals[c.TracerSlot] += p
	}
	// For one tracer slot (one correction-matrix column) the combinations
	// partition the non-tracer outcome space exactly once, so their
	// probabilities must sum to 1 for every tracer slot.
	for slot, total := range totals {
		if math.Abs(total-1.0) > 1e-6 {
			t.Errorf("tracer slot %+v: total probability = %v, want ~1", slot, total)
		}
	}
}

func TestCombinationWithPurityStaysInRange(t *testing.T) {
	table := testTable(t)
	compound := chem.Compound{
		Name: "test",
		Precursor: chem.Side{
			Tracer:   chem.Tracer{Element: "C", Isotope: "C13", Count: 2},
			Elements: map[string]int{"H": 2},
		},
		Fragment: chem.Side{
			Tracer:   chem.Tracer{Element: "C", Isotope: "C13", Count: 2},
			Elements: map[string]int{"H": 2},
		},
	}
	purity := chem.Purity{"C12": 0.02, "C13": 0.98}
	result, err := enumerate.Enumerate(table, compound, enumerate.Options{Purity: purity})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	cache := NewCache()
	for _, c := range result.Combinations {
		p, err := Combination(table, compound, purity, result.SlotOrder, c, cache)
		if err != nil {
			t.Fatalf("Combination: %v", err)
		}
		if p < 0 || p > 1+1e-9 {
			t.Errorf("probability out of range: %v", p)
		}
	}
}

package enumerate

import (
	"testing"

	"github.com/bebop-bio/isocor/chem"
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
		"N": {
			{Name: "N14", MassNumber: 14, RelativeIntensity: 1.0},
		},
	})
	if err != nil {
		t.Fatalf("isotope.New: %v", err)
	}
	return table
}

func isotopologueCompound() chem.Compound {
	return chem.Compound{
		Name: "test",
		Precursor: chem.Side{
			Tracer:   chem.Tracer{Element: "C", Isotope: "C13", Count: 3},
			Elements: map[string]int{"H": 6, "N": 1},
		},
		Fragment: chem.Side{
			Tracer:   chem.Tracer{Element: "C", Isotope: "C13", Count: 3},
			Elements: map[string]int{"H": 6, "N": 1},
		},
	}
}

func fragmentedCompound() chem.Compound {
	return chem.Compound{
		Name: "test",
		Precursor: chem.Side{
			Tracer:   chem.Tracer{Element: "C", Isotope: "C13", Count: 5},
			Elements: map[string]int{"H": 10},
		},
		Fragment: chem.Side{
			Tracer:   chem.Tracer{Element: "C", Isotope: "C13", Count: 3},
			Elements: map[string]int{"H": 10},
		},
	}
}

func TestEnumerateIsotopologueTracerPairs(t *testing.T) {
	table := testTable(t)
	result, err := Enumerate(table, isotopologueCompound(), Options{})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	// isotopologue: N must equal n for every tracer pair (P==F==3).
	for _, p := range result.TracerPairs {
		if p.N != p.N2 {
			t.Errorf("isotopologue tracer pair has N=%d n=%d, want equal", p.N, p.N2)
		}
	}
	if len(result.TracerPairs) != 4 { // (0,0),(1,1),(2,2),(3,3)
		t.Errorf("got %d tracer pairs, want 4", len(result.TracerPairs))
	}
}

func TestEnumerateFragmentedTracerPairRange(t *testing.T) {
	table := testTable(t)
	result, err := Enumerate(table, fragmentedCompound(), Options{})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	// P=5, F=3: 0<=n<=N<=5 and (5-3)+n>=N i.e. n>=N-2.
	var want []Pair
	for N := 0; N <= 5; N++ {
		for n := 0; n <= 3 && n <= N; n++ {
			if n >= N-2 {
				want = append(want, Pair{N: N, N2: n})
			}
		}
	}
	if len(result.TracerPairs) != len(want) {
		t.Fatalf("got %d tracer pairs, want %d (%v vs %v)", len(result.TracerPairs), len(want), result.TracerPairs, want)
	}
}

func TestEnumerateSlotOrderDeterministic(t *testing.T) {
	table := testTable(t)
	compound := isotopologueCompound()
	r1, err := Enumerate(table, compound, Options{})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	r2, err := Enumerate(table, compound, Options{})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(r1.SlotOrder) != len(r2.SlotOrder) {
		t.Fatalf("slot order length differs across runs: %d vs %d", len(r1.SlotOrder), len(r2.SlotOrder))
	}
	for i := range r1.SlotOrder {
		if r1.SlotOrder[i] != r2.SlotOrder[i] {
			t.Errorf("slot %d differs: %+v vs %+v", i, r1.SlotOrder[i], r2.SlotOrder[i])
		}
	}
	// H contributes an H2 slot; N is inert (single isotope) and contributes none.
	found := false
	for _, s := range r1.SlotOrder {
		if s.Element == "H" && s.Isotope == "H2" {
			found = true
		}
		if s.Element == "N" {
			t.Errorf("inert element N should not appear in slot order, got %+v", s)
		}
	}
	if !found {
		t.Errorf("expected an H/H2 slot in slot order, got %+v", r1.SlotOrder)
	}
}

func TestEnumerateCombinationsRespectMassCap(t *testing.T) {
	table := testTable(t)
	compound := isotopologueCompound()
	result, err := Enumerate(table, compound, Options{})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	deltaMTracer, _ := table.MassDelta("C", "C13")
	precursorTracerN := compound.Precursor.Tracer.Count
	fragmentTracerN := compound.Fragment.Tracer.Count
	// The cap bounds the non-tracer mass; the tracer slot's own mass comes on
	// top of it.
	for i, c := range result.Combinations {
		nonTracerN := c.Mass.N - deltaMTracer*c.TracerSlot.N
		nonTracerN2 := c.Mass.N2 - deltaMTracer*c.TracerSlot.N2
		if nonTracerN > deltaMTracer*precursorTracerN {
			t.Errorf("combination %d: non-tracer mass.N=%d exceeds cap %d", i, nonTracerN, deltaMTracer*precursorTracerN)
		}
		if nonTracerN2 > deltaMTracer*fragmentTracerN {
			t.Errorf("combination %d: non-tracer mass.N2=%d exceeds cap %d", i, nonTracerN2, deltaMTracer*fragmentTracerN)
		}
	}
	if len(result.Combinations) == 0 {
		t.Fatal("expected at least one combination")
	}
}

func TestEnumerateBucketsCoverAllCombinations(t *testing.T) {
	table := testTable(t)
	result, err := Enumerate(table, isotopologueCompound(), Options{})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	total := 0
	for _, idxs := range result.Buckets {
		total += len(idxs)
	}
	if total != len(result.Combinations) {
		t.Errorf("buckets cover %d combinations, want %d", total, len(result.Combinations))
	}
	for key, idxs := range result.Buckets {
		for _, i := range idxs {
			if result.Combinations[i].Mass != key {
				t.Errorf("combination %d has mass %+v, bucketed under %+v", i, result.Combinations[i].Mass, key)
			}
		}
	}
}

func TestEnumerateNaturalAbundanceOnTracer(t *testing.T) {
	table := testTable(t)
	compound := isotopologueCompound()
	withoutNatAb, err := Enumerate(table, compound, Options{})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	withNatAb, err := Enumerate(table, compound, Options{NaturalAbundanceOnTracer: true})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(withNatAb.SlotOrder) <= len(withoutNatAb.SlotOrder) {
		t.Errorf("expected NaturalAbundanceOnTracer to add slots: without=%d with=%d",
			len(withoutNatAb.SlotOrder), len(withNatAb.SlotOrder))
	}
	found := false
	for _, s := range withNatAb.SlotOrder {
		if s.Kind == SlotNatAbTracer {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a SlotNatAbTracer slot, got %+v", withNatAb.SlotOrder)
	}
}

func TestEnumeratePurityExpansion(t *testing.T) {
	table := testTable(t)
	compound := isotopologueCompound()
	purity := chem.Purity{"C12": 0.02, "C13": 0.98}
	result, err := Enumerate(table, compound, Options{Purity: purity})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	found := false
	for _, s := range result.SlotOrder {
		if s.Kind == SlotPurity {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SlotPurity entries in slot order, got %+v", result.SlotOrder)
	}
	// Every combination must carry one (N,n) pair per entry of the expanded
	// slot order.
	for i, c := range result.Combinations {
		if len(c.Slots) != len(result.SlotOrder) {
			t.Errorf("combination %d has %d slots, want %d matching SlotOrder", i, len(c.Slots), len(result.SlotOrder))
		}
	}
}

func TestEnumerateRejectsUnknownElement(t *testing.T) {
	table := testTable(t)
	compound := isotopologueCompound()
	compound.Precursor.Elements["Xx"] = 2
	compound.Fragment.Elements["Xx"] = 2
	if _, err := Enumerate(table, compound, Options{}); err == nil {
		t.Error("expected error for unknown element, got nil")
	}
}

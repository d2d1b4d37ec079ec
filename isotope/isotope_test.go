package isotope

import (
	"testing"
)

func TestDefaultTableSumsToOne(t *testing.T) {
	table := Default()
	for _, symbol := range table.Elements() {
		isos, err := table.IsotopesOf(symbol)
		if err != nil {
			t.Fatalf("IsotopesOf(%q): %v", symbol, err)
		}
		sum := 0.0
		for _, name := range isos {
			ri, err := table.RelativeIntensity(symbol, name)
			if err != nil {
				t.Fatalf("RelativeIntensity(%q, %q): %v", symbol, name, err)
			}
			if ri < 0 || ri > 1 {
				t.Errorf("%s: relative intensity %v out of [0,1]", name, ri)
			}
			sum += ri
		}
		if diff := sum - 1; diff < -Tolerance || diff > Tolerance {
			t.Errorf("element %q: intensities sum to %v, want 1±%v", symbol, sum, Tolerance)
		}
	}
}

func TestLightestIsFirstAndZeroDelta(t *testing.T) {
	table := Default()
	for _, symbol := range table.Elements() {
		lightest, err := table.Lightest(symbol)
		if err != nil {
			t.Fatalf("Lightest(%q): %v", symbol, err)
		}
		delta, err := table.MassDelta(symbol, lightest)
		if err != nil {
			t.Fatalf("MassDelta(%q, %q): %v", symbol, lightest, err)
		}
		if delta != 0 {
			t.Errorf("lightest isotope %s of %s has nonzero mass delta %d", lightest, symbol, delta)
		}
	}
}

func TestMassDeltaRelativeToLightest(t *testing.T) {
	table := Default()
	delta, err := table.MassDelta("C", "C13")
	if err != nil {
		t.Fatal(err)
	}
	if delta != 1 {
		t.Errorf("MassDelta(C, C13) = %d, want 1", delta)
	}
}

func TestInert(t *testing.T) {
	table := Default()
	inert, err := table.Inert("P")
	if err != nil {
		t.Fatal(err)
	}
	if !inert {
		t.Errorf("P has a single known isotope and should be inert")
	}
	inert, err = table.Inert("C")
	if err != nil {
		t.Fatal(err)
	}
	if inert {
		t.Errorf("C has two known isotopes and should not be inert")
	}
}

func TestUnknownElementIsFatal(t *testing.T) {
	table := Default()
	if _, err := table.Lightest("Xx"); err == nil {
		t.Errorf("expected error for unknown element")
	}
	if _, err := table.IsotopesOf("Xx"); err == nil {
		t.Errorf("expected error for unknown element")
	}
}

func TestUnknownIsotopeIsFatal(t *testing.T) {
	table := Default()
	if _, err := table.MassDelta("C", "C14"); err == nil {
		t.Errorf("expected error for unknown isotope")
	}
}

func TestNewRenormalizesSlightlyOffSums(t *testing.T) {
	table, err := New(map[string][]Isotope{
		"X": {
			{Name: "X1", MassNumber: 1, RelativeIntensity: 0.9},
			{Name: "X2", MassNumber: 2, RelativeIntensity: 0.1107}, // sums to 1.0107
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	sum := 0.0
	for _, name := range []string{"X1", "X2"} {
		ri, err := table.RelativeIntensity("X", name)
		if err != nil {
			t.Fatal(err)
		}
		sum += ri
	}
	if diff := sum - 1; diff < -1e-12 || diff > 1e-12 {
		t.Errorf("renormalized sum = %v, want exactly 1", sum)
	}
}

func TestNewRejectsNegativeIntensity(t *testing.T) {
	_, err := New(map[string][]Isotope{
		"X": {
			{Name: "X1", MassNumber: 1, RelativeIntensity: -0.1},
			{Name: "X2", MassNumber: 2, RelativeIntensity: 1.1},
		},
	})
	if err == nil {
		t.Errorf("expected error for negative relative intensity")
	}
}

func TestNewRejectsGrosslyWrongSum(t *testing.T) {
	_, err := New(map[string][]Isotope{
		"X": {
			{Name: "X1", MassNumber: 1, RelativeIntensity: 0.2},
			{Name: "X2", MassNumber: 2, RelativeIntensity: 0.2},
		},
	})
	if err == nil {
		t.Errorf("expected error for sum far from 1")
	}
}

package chem

import (
	"errors"
	"testing"

	"github.com/bebop-bio/isocor/isotope"
)

func glucoseIsotopologue() Compound {
	tracer := Tracer{Isotope: "C13", Element: "C", Count: 6}
	side := Side{Tracer: tracer, Elements: map[string]int{"H": 12, "O": 6}}
	return Compound{Name: "glucose", Precursor: side, Fragment: side}
}

func TestIsIsotopologue(t *testing.T) {
	if !glucoseIsotopologue().IsIsotopologue() {
		t.Errorf("identical precursor/fragment should be an isotopologue")
	}

	c := glucoseIsotopologue()
	c.Fragment.Tracer.Count = 3
	c.Fragment.Elements = map[string]int{"H": 6, "O": 3}
	if c.IsIsotopologue() {
		t.Errorf("fragmented compound should not be an isotopologue")
	}
}

func TestValidateAcceptsIsotopologue(t *testing.T) {
	if err := glucoseIsotopologue().Validate(isotope.Default()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsMismatchedElements(t *testing.T) {
	c := glucoseIsotopologue()
	c.Fragment.Elements = map[string]int{"H": 12} // missing O
	err := c.Validate(isotope.Default())
	if !errors.Is(err, ErrMismatchedElements) {
		t.Errorf("got %v, want ErrMismatchedElements", err)
	}
}

func TestValidateRejectsFragmentExceedingPrecursor(t *testing.T) {
	c := glucoseIsotopologue()
	c.Fragment.Elements = map[string]int{"H": 20, "O": 6}
	err := c.Validate(isotope.Default())
	if !errors.Is(err, ErrFragmentExceedsPrecur) {
		t.Errorf("got %v, want ErrFragmentExceedsPrecur", err)
	}
}

func TestValidateRejectsTracerMismatch(t *testing.T) {
	c := glucoseIsotopologue()
	c.Fragment.Tracer.Element = "N"
	c.Fragment.Tracer.Isotope = "N15"
	err := c.Validate(isotope.Default())
	if !errors.Is(err, ErrTracerMismatch) {
		t.Errorf("got %v, want ErrTracerMismatch", err)
	}
}

func TestValidateRejectsInertTracer(t *testing.T) {
	c := glucoseIsotopologue()
	c.Precursor.Tracer.Element = "P"
	c.Precursor.Tracer.Isotope = "P31"
	c.Fragment.Tracer.Element = "P"
	c.Fragment.Tracer.Isotope = "P31"
	err := c.Validate(isotope.Default())
	if !errors.Is(err, ErrTracerInert) {
		t.Errorf("got %v, want ErrTracerInert", err)
	}
}

func TestPurityValidate(t *testing.T) {
	p := Purity{"C13": 0.99, "C12": 0.01}
	if err := p.Validate(isotope.Default(), "C"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := Purity{"C13": 0.5, "C12": 0.4}
	if err := bad.Validate(isotope.Default(), "C"); !errors.Is(err, ErrBadPuritySum) {
		t.Errorf("got %v, want ErrBadPuritySum", err)
	}

	wrongElement := Purity{"N15": 1.0}
	if err := wrongElement.Validate(isotope.Default(), "C"); !errors.Is(err, ErrPurityNotTracer) {
		t.Errorf("got %v, want ErrPurityNotTracer", err)
	}
}

func TestMeasurementSetKeysAndValues(t *testing.T) {
	ms := MeasurementSet{
		{N: 0, N2: 0, Value: 100},
		{N: 1, N2: 1, Value: 5},
	}
	keys := ms.Keys()
	if len(keys) != 2 || keys[0] != (NnKey{0, 0}) || keys[1] != (NnKey{1, 1}) {
		t.Errorf("Keys() = %v, unexpected", keys)
	}
	values := ms.Values()
	if len(values) != 2 || values[0] != 100 || values[1] != 5 {
		t.Errorf("Values() = %v, unexpected", values)
	}
}

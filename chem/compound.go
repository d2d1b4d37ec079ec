// Package chem holds the shared compound/measurement data model (§3): the
// types the enumerator, probability engine and solver all operate on, kept
// free of any dependency on them so each can import chem without a cycle.
package chem

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bebop-bio/isocor/isotope"
)

// Sentinel errors for the fatal conditions of §7. Callers can errors.Is
// against these; the wrapped detail explains which compound/element/table
// triggered it.
var (
	ErrMismatchedElements     = errors.New("isocor: precursor and fragment element sets do not match")
	ErrFragmentExceedsPrecur  = errors.New("isocor: fragment atom count exceeds precursor atom count")
	ErrTracerMismatch         = errors.New("isocor: tracer element/isotope differs between precursor and fragment")
	ErrTracerInert            = errors.New("isocor: tracer element has only one known isotope")
	ErrBadAbundanceSum        = errors.New("isocor: natural abundance intensities do not sum to 1")
	ErrMeasurementKeyMismatch = errors.New("isocor: measurement (N,n) keys do not match the tracer pair set")
	ErrBadPuritySum           = errors.New("isocor: purity fractions do not sum to 1")
	ErrPurityNotTracer        = errors.New("isocor: purity table references a non-tracer element")
	ErrZeroPivot              = errors.New("isocor: zero pivot encountered while solving the correction matrix")
)

// Tracer identifies the deliberately-labeled atom species on one side of a
// Compound, and how many such atoms are present on that side.
type Tracer struct {
	Isotope string // e.g. "C13"
	Element string // e.g. "C"
	Count   int
}

// Side is one half (precursor or fragment) of a Compound: its tracer budget
// plus the atom count of every other element present.
type Side struct {
	Tracer   Tracer
	Elements map[string]int // non-tracer element symbol -> atom count
}

// Compound is a labeled biochemical compound as observed by tandem mass
// spectrometry: an intact Precursor and, unless it is an isotopologue, a
// fragment remnant.
type Compound struct {
	Name      string
	Precursor Side
	Fragment  Side
}

// IsIsotopologue reports whether precursor and fragment have identical
// atomic composition (no fragmentation occurred), including the tracer.
func (c Compound) IsIsotopologue() bool {
	if c.Precursor.Tracer.Count != c.Fragment.Tracer.Count {
		return false
	}
	for el, n := range c.Precursor.Elements {
		if c.Fragment.Elements[el] != n {
			return false
		}
	}
	return true
}

// Validate enforces the invariants of §3: tracer identity across sides,
// identical non-tracer element sets, precursor counts ≥ fragment counts, and
// a tracer element with more than one known isotope.
func (c Compound) Validate(table *isotope.Table) error {
	if c.Precursor.Tracer.Element != c.Fragment.Tracer.Element || c.Precursor.Tracer.Isotope != c.Fragment.Tracer.Isotope {
		return fmt.Errorf("%w: precursor tracer %s/%s, fragment tracer %s/%s",
			ErrTracerMismatch, c.Precursor.Tracer.Element, c.Precursor.Tracer.Isotope,
			c.Fragment.Tracer.Element, c.Fragment.Tracer.Isotope)
	}
	if c.Precursor.Tracer.Count < c.Fragment.Tracer.Count {
		return fmt.Errorf("%w: tracer element %s, precursor=%d fragment=%d",
			ErrFragmentExceedsPrecur, c.Precursor.Tracer.Element, c.Precursor.Tracer.Count, c.Fragment.Tracer.Count)
	}

	inert, err := table.Inert(c.Precursor.Tracer.Element)
	if err != nil {
		return err
	}
	if inert {
		return fmt.Errorf("%w: %s", ErrTracerInert, c.Precursor.Tracer.Element)
	}

	precursorElements := elementSet(c.Precursor.Elements)
	fragmentElements := elementSet(c.Fragment.Elements)
	if !setsEqual(precursorElements, fragmentElements) {
		return fmt.Errorf("%w: precursor has %v, fragment has %v",
			ErrMismatchedElements, sortedKeys(c.Precursor.Elements), sortedKeys(c.Fragment.Elements))
	}
	for _, el := range precursorElements {
		p, f := c.Precursor.Elements[el], c.Fragment.Elements[el]
		if p < f {
			return fmt.Errorf("%w: element %s, precursor=%d fragment=%d", ErrFragmentExceedsPrecur, el, p, f)
		}
	}
	return nil
}

func elementSet(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]int) []string { return elementSet(m) }

func setsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Measurement is one measured intensity at precursor tracer-mass offset N
// (M+N) and fragment tracer-mass offset N2 (m+N2, called "n" in §3).
type Measurement struct {
	N, N2 int
	Value float64
}

// MeasurementSet is the ordered measured-intensity vector of §3, keyed
// uniquely by (N,n).
type MeasurementSet []Measurement

// Keys returns the (N,n) pairs of the set, in input order.
func (ms MeasurementSet) Keys() []NnKey {
	out := make([]NnKey, len(ms))
	for i, m := range ms {
		out[i] = NnKey{N: m.N, N2: m.N2}
	}
	return out
}

// Values returns the measured intensities, in input order.
func (ms MeasurementSet) Values() []float64 {
	out := make([]float64, len(ms))
	for i, m := range ms {
		out[i] = m.Value
	}
	return out
}

// NnKey is a precursor/fragment tracer mass-offset pair (N,n), used both as
// a measurement key and as a mass-offset bucket key.
type NnKey struct {
	N, N2 int
}

// Purity is a tracer-purity descriptor: the isotopic composition of the
// tracer reagent, keyed by isotope name of the tracer element.
type Purity map[string]float64

// Validate checks that purity references only isotopes of tracerElement and
// that its fractions sum to 1 within isotope.Tolerance, per §7.
func (p Purity) Validate(table *isotope.Table, tracerElement string) error {
	isos, err := table.IsotopesOf(tracerElement)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(isos))
	for _, name := range isos {
		known[name] = true
	}
	sum := 0.0
	for name, frac := range p {
		if !known[name] {
			return fmt.Errorf("%w: %q is not an isotope of tracer element %q", ErrPurityNotTracer, name, tracerElement)
		}
		if frac < 0 || frac > 1 {
			return fmt.Errorf("isocor: purity fraction for %s out of [0,1]: %v", name, frac)
		}
		sum += frac
	}
	if diff := sum - 1; diff < -isotope.Tolerance || diff > isotope.Tolerance {
		return fmt.Errorf("%w: sum=%v", ErrBadPuritySum, sum)
	}
	return nil
}

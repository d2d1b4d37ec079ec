// Package isotope is the natural-isotope lookup table (component C1 of the
// isotope correction engine): per element, the set of isotopes, their mass
// numbers, and their natural relative intensities.
package isotope

import (
	"fmt"
	"sort"
)

// Isotope is one isotopic species of an element, e.g. "C13".
type Isotope struct {
	Name              string  // element symbol + mass number, e.g. "C13"
	Element           string  // element symbol, e.g. "C"
	MassNumber        int     // absolute mass number (protons + neutrons)
	RelativeIntensity float64 // natural relative abundance, 0..1

	// massDelta is MassNumber minus the mass number of the element's
	// lightest isotope. Filled in by Table construction, not by callers.
	massDelta int
}

// Table is a validated natural-isotope lookup table, scoped to the elements
// it was built from. It is read-only after construction.
type Table struct {
	elements map[string]*element
}

type element struct {
	symbol   string
	isotopes []string // deterministic order, lightest first
	byName   map[string]*Isotope
}

// Tolerance is the allowed deviation from 1 of a caller-supplied purity
// descriptor's summed fractions. A Table's renormalized per-element
// intensities sum to 1 well within it.
const Tolerance = 1e-8

// New builds a Table from per-element isotope lists. isotopes must already
// be grouped by element; within an element, the first entry is taken to be
// the lightest isotope. Intensities are renormalized to sum to exactly 1 per
// element (Open Question (d): built-in tables are occasionally published
// with sums slightly off 1, e.g. 1.0107; carrying that excess through the
// combinatorics would bias every downstream probability).
//
// New fails if an element's isotopes have any negative intensity, if the
// pre-normalization sum is zero or differs from 1 by more than 0.05, or if
// an element name is empty.
func New(byElement map[string][]Isotope) (*Table, error) {
	t := &Table{elements: make(map[string]*element, len(byElement))}
	for symbol, isos := range byElement {
		if symbol == "" {
			return nil, fmt.Errorf("isotope: empty element symbol")
		}
		if len(isos) == 0 {
			return nil, fmt.Errorf("isotope: element %q has no isotopes", symbol)
		}
		sum := 0.0
		for _, iso := range isos {
			if iso.RelativeIntensity < 0 {
				return nil, fmt.Errorf("isotope: %s has negative relative intensity %v", iso.Name, iso.RelativeIntensity)
			}
			sum += iso.RelativeIntensity
		}
		if sum == 0 {
			return nil, fmt.Errorf("isotope: element %q has all-zero relative intensities", symbol)
		}
		if diff := sum - 1; diff < -0.05 || diff > 0.05 {
			// Loud failure for grossly wrong tables (off by more than 0.05);
			// smaller drift is renormalized below.
			return nil, fmt.Errorf("isotope: element %q relative intensities sum to %v, too far from 1", symbol, sum)
		}

		lightest := isos[0].MassNumber
		el := &element{symbol: symbol, byName: make(map[string]*Isotope, len(isos))}
		for _, iso := range isos {
			copied := iso
			copied.Element = symbol
			copied.RelativeIntensity = iso.RelativeIntensity / sum
			copied.massDelta = iso.MassNumber - lightest
			el.isotopes = append(el.isotopes, copied.Name)
			stored := copied
			el.byName[copied.Name] = &stored
		}
		t.elements[symbol] = el
	}
	return t, nil
}

// Elements returns the element symbols known to the table, sorted.
func (t *Table) Elements() []string {
	out := make([]string, 0, len(t.elements))
	for symbol := range t.elements {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

func (t *Table) element(symbol string) (*element, error) {
	el, ok := t.elements[symbol]
	if !ok {
		return nil, fmt.Errorf("isotope: unknown element %q", symbol)
	}
	return el, nil
}

// Lightest returns the name of the lightest isotope of element.
func (t *Table) Lightest(element string) (string, error) {
	el, err := t.element(element)
	if err != nil {
		return "", err
	}
	return el.isotopes[0], nil
}

// IsotopesOf returns the isotope names of element in deterministic order,
// lightest first.
func (t *Table) IsotopesOf(element string) ([]string, error) {
	el, err := t.element(element)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(el.isotopes))
	copy(out, el.isotopes)
	return out, nil
}

// IsotopeCount returns the number of isotopes of element.
func (t *Table) IsotopeCount(element string) (int, error) {
	el, err := t.element(element)
	if err != nil {
		return 0, err
	}
	return len(el.isotopes), nil
}

// Inert reports whether element has exactly one known isotope, meaning it
// contributes nothing to combination enumeration.
func (t *Table) Inert(element string) (bool, error) {
	n, err := t.IsotopeCount(element)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (t *Table) isotope(name, element string) (*Isotope, error) {
	el, err := t.element(element)
	if err != nil {
		return nil, err
	}
	iso, ok := el.byName[name]
	if !ok {
		return nil, fmt.Errorf("isotope: unknown isotope %q of element %q", name, element)
	}
	return iso, nil
}

// MassDelta returns the mass-number difference between isotope and the
// lightest isotope of its element.
func (t *Table) MassDelta(element, isotope string) (int, error) {
	iso, err := t.isotope(isotope, element)
	if err != nil {
		return 0, err
	}
	return iso.massDelta, nil
}

// RelativeIntensity returns the (renormalized) natural relative intensity
// of isotope.
func (t *Table) RelativeIntensity(element, isotope string) (float64, error) {
	iso, err := t.isotope(isotope, element)
	if err != nil {
		return 0, err
	}
	return iso.RelativeIntensity, nil
}

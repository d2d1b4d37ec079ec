// Package checks compiles the element/isotope naming patterns used to
// validate text read by the io/* collaborators before it ever reaches the
// correction core.
package checks

import "regexp"

var (
	elementSymbolPattern = regexp.MustCompile(`^[A-Z][a-z]?$`)
	isotopeNamePattern   = regexp.MustCompile(`^([A-Z][a-z]?)(0*[1-9][0-9]*)$`)
)

// ElementSymbol reports whether s is a well-formed element symbol: one
// upper-case letter, optionally followed by one lower-case letter (§3).
func ElementSymbol(s string) bool {
	return elementSymbolPattern.MatchString(s)
}

// IsotopeName reports whether s is a well-formed isotope name: an element
// symbol concatenated with a positive mass number, e.g. "C13".
func IsotopeName(s string) bool {
	return isotopeNamePattern.MatchString(s)
}

// SplitIsotopeName splits a well-formed isotope name into its element
// symbol and mass number string. ok is false if name is not well-formed.
func SplitIsotopeName(name string) (element, massNumber string, ok bool) {
	groups := isotopeNamePattern.FindStringSubmatch(name)
	if groups == nil {
		return "", "", false
	}
	return groups[1], groups[2], true
}

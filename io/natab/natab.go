// Package natab parses natural-isotope abundance tables into an
// isotope.Table: the flat text grammar of spec.md §6, and (htmltable.go) an
// HTML table scrape for published reference data.
package natab

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bebop-bio/isocor/isotope"
)

// Load reads and parses a flat natural-abundance table file at path.
func Load(path string) (*isotope.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("io/natab: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a flat natural-abundance table from r: one line per element,
// a whitespace-separated list of isotope names (lightest first), a colon,
// then the matching whitespace-separated list of relative intensities.
func Parse(r io.Reader) (*isotope.Table, error) {
	byElement := make(map[string][]isotope.Isotope)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("io/natab: line %d: missing ':' separating isotope names from intensities", lineNo)
		}
		names := strings.Fields(parts[0])
		values := strings.Fields(parts[1])
		if len(names) != len(values) || len(names) == 0 {
			return nil, fmt.Errorf("io/natab: line %d: %d isotope names but %d intensities", lineNo, len(names), len(values))
		}
		isos := make([]isotope.Isotope, 0, len(names))
		var element string
		for i, name := range names {
			el, mass, err := splitIsotopeName(name)
			if err != nil {
				return nil, fmt.Errorf("io/natab: line %d: %w", lineNo, err)
			}
			if i == 0 {
				element = el
			}
			v, err := strconv.ParseFloat(values[i], 64)
			if err != nil {
				return nil, fmt.Errorf("io/natab: line %d: malformed intensity %q: %w", lineNo, values[i], err)
			}
			isos = append(isos, isotope.Isotope{
				Name:              name,
				Element:           el,
				MassNumber:        mass,
				RelativeIntensity: v,
			})
		}
		byElement[element] = isos
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("io/natab: %w", err)
	}
	return isotope.New(byElement)
}

// splitIsotopeName splits "C13" into element "C" and mass number 13,
// mirroring isotope.splitIsotopeName (unexported across the core boundary).
func splitIsotopeName(name string) (element string, mass int, err error) {
	i := 0
	for i < len(name) && (name[i] < '0' || name[i] > '9') {
		i++
	}
	if i == 0 || i > 2 {
		return "", 0, fmt.Errorf("invalid isotope name %q", name)
	}
	mass, err = strconv.Atoi(name[i:])
	if err != nil || mass <= 0 {
		return "", 0, fmt.Errorf("invalid mass number in isotope name %q", name)
	}
	return name[:i], mass, nil
}

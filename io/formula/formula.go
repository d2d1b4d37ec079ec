// Package formula parses compound-formula tables: the text description of
// precursor/fragment atomic composition that feeds isocor.Compound (§6).
// This is an external collaborator — the core never parses text itself.
package formula

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bebop-bio/isocor/checks"
	"github.com/bebop-bio/isocor/chem"
)

// Grammar: one compound per non-blank, non-'#' line:
//
//	name  tracer=<isotope>:<count>  Elem1:count1  Elem2:count2 ...
//
// followed by a "fragment:" continuation line with the same grammar for the
// fragment side. A compound with no fragment line is treated as an
// isotopologue (fragment side identical to precursor).

// Load reads and parses a compound-formula file at path.
func Load(path string) ([]chem.Compound, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("io/formula: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads compound-formula records from r.
func Parse(r io.Reader) ([]chem.Compound, error) {
	var compounds []chem.Compound
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "fragment:") {
			if len(compounds) == 0 {
				return nil, fmt.Errorf("io/formula: line %d: fragment line with no preceding compound", lineNo)
			}
			side, err := parseSide(strings.TrimSpace(strings.TrimPrefix(line, "fragment:")))
			if err != nil {
				return nil, fmt.Errorf("io/formula: line %d: %w", lineNo, err)
			}
			compounds[len(compounds)-1].Fragment = side
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("io/formula: line %d: expected a name and at least a tracer token", lineNo)
		}
		side, err := parseSide(strings.Join(fields[1:], " "))
		if err != nil {
			return nil, fmt.Errorf("io/formula: line %d: %w", lineNo, err)
		}
		compounds = append(compounds, chem.Compound{
			Name:      fields[0],
			Precursor: side,
			Fragment:  side, // overwritten by a following "fragment:" line, if any
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("io/formula: %w", err)
	}
	return compounds, nil
}

func parseSide(tokens string) (chem.Side, error) {
	var side chem.Side
	side.Elements = make(map[string]int)
	haveTracer := false
	for _, tok := range strings.Fields(tokens) {
		if strings.HasPrefix(tok, "tracer=") {
			tracer, err := parseTracer(strings.TrimPrefix(tok, "tracer="))
			if err != nil {
				return chem.Side{}, err
			}
			side.Tracer = tracer
			haveTracer = true
			continue
		}
		element, count, ok := checks.FormulaToken(tok)
		if !ok {
			return chem.Side{}, fmt.Errorf("malformed element token %q", tok)
		}
		side.Elements[element] = count
	}
	if !haveTracer {
		return chem.Side{}, fmt.Errorf("missing tracer= token")
	}
	return side, nil
}

// parseTracer parses "<isotope>:<count>", e.g. "C13:5".
func parseTracer(s string) (chem.Tracer, error) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return chem.Tracer{}, fmt.Errorf("malformed tracer token %q, want isotope:count", s)
	}
	isotopeName, countStr := s[:i], s[i+1:]
	element, _, ok := checks.SplitIsotopeName(isotopeName)
	if !ok {
		return chem.Tracer{}, fmt.Errorf("malformed tracer isotope %q", isotopeName)
	}
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 0 {
		return chem.Tracer{}, fmt.Errorf("malformed tracer count %q", countStr)
	}
	return chem.Tracer{Element: element, Isotope: isotopeName, Count: count}, nil
}

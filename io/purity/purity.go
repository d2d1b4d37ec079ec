// Package purity parses the single-line tracer-purity descriptor of
// spec.md §6: "isotopes : purity values", e.g. "C12 C13 : 0.01 0.99".
package purity

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bebop-bio/isocor/chem"
)

// Load reads and parses a purity descriptor file at path.
func Load(path string) (chem.Purity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("io/purity: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the first non-blank, non-'#' line of r as a purity
// descriptor. A file with no such line yields a nil Purity (no purity
// correction).
func Parse(r io.Reader) (chem.Purity, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sepIdx := strings.IndexByte(line, ':')
		if sepIdx < 0 {
			return nil, fmt.Errorf("io/purity: line %d: expected 'isotopes : values'", lineNo)
		}
		names := strings.Fields(line[:sepIdx])
		values := strings.Fields(line[sepIdx+1:])
		if len(names) != len(values) {
			return nil, fmt.Errorf("io/purity: line %d: %d isotope names but %d values", lineNo, len(names), len(values))
		}
		purity := make(chem.Purity, len(names))
		for i, name := range names {
			v, err := strconv.ParseFloat(values[i], 64)
			if err != nil {
				return nil, fmt.Errorf("io/purity: line %d: malformed value %q for %q: %w", lineNo, values[i], name, err)
			}
			purity[name] = v
		}
		return purity, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("io/purity: %w", err)
	}
	return nil, nil
}

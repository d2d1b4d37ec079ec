// Package measurements parses the measured-intensity table of spec.md §6:
// one line per (N,n) row, a compound-name prefix, then one value per
// experiment column. This is an external collaborator — the core only
// ever sees a validated chem.MeasurementSet per experiment column.
package measurements

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bebop-bio/isocor/chem"
)

// Load reads and parses a measurement table file at path. isotopologue
// reports, per compound name, whether its line prefix is (name, N) — with
// n implicitly equal to N — or (name, N, n); this must come from the
// already-parsed compound description (io/formula), since the table text
// alone can't disambiguate a two-column numeric prefix from a one-column
// prefix followed by the first experiment value.
func Load(path string, isotopologue map[string]bool) (map[string][]chem.MeasurementSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("io/measurements: %w", err)
	}
	defer f.Close()
	return Parse(f, isotopologue)
}

// Parse reads measurement rows from r, grouping them by compound name. The
// result maps a compound name to one chem.MeasurementSet per experiment
// column, each in the row order the rows appeared in r. Rows missing a
// trailing numeric value for a column default that value to zero.
func Parse(r io.Reader, isotopologue map[string]bool) (map[string][]chem.MeasurementSet, error) {
	type row struct {
		n, n2  int
		values []float64
	}
	rowsByName := make(map[string][]row)
	var order []string
	seenName := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("io/measurements: line %d: expected a name and at least N", lineNo)
		}
		name := fields[0]
		idx := 1
		n, err := strconv.Atoi(fields[idx])
		if err != nil {
			return nil, fmt.Errorf("io/measurements: line %d: malformed N %q: %w", lineNo, fields[idx], err)
		}
		idx++

		n2 := n
		if !isotopologue[name] {
			if idx >= len(fields) {
				return nil, fmt.Errorf("io/measurements: line %d: compound %q is fragmented, expected an n column", lineNo, name)
			}
			n2, err = strconv.Atoi(fields[idx])
			if err != nil {
				return nil, fmt.Errorf("io/measurements: line %d: malformed n %q: %w", lineNo, fields[idx], err)
			}
			idx++
		}

		values := make([]float64, 0, len(fields)-idx)
		for _, tok := range fields[idx:] {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("io/measurements: line %d: malformed value %q: %w", lineNo, tok, err)
			}
			values = append(values, v)
		}

		if !seenName[name] {
			seenName[name] = true
			order = append(order, name)
		}
		rowsByName[name] = append(rowsByName[name], row{n: n, n2: n2, values: values})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("io/measurements: %w", err)
	}

	result := make(map[string][]chem.MeasurementSet, len(order))
	for _, name := range order {
		rows := rowsByName[name]
		maxCols := 0
		for _, r := range rows {
			if len(r.values) > maxCols {
				maxCols = len(r.values)
			}
		}
		sets := make([]chem.MeasurementSet, maxCols)
		for col := 0; col < maxCols; col++ {
			set := make(chem.MeasurementSet, len(rows))
			for i, r := range rows {
				v := 0.0
				if col < len(r.values) {
					v = r.values[col]
				}
				set[i] = chem.Measurement{N: r.n, N2: r.n2, Value: v}
			}
			sets[col] = set
		}
		result[name] = sets
	}
	return result, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bebop-bio/isocor"
	"github.com/bebop-bio/isocor/chem"
	"github.com/bebop-bio/isocor/io/formula"
	"github.com/bebop-bio/isocor/io/measurements"
	"github.com/bebop-bio/isocor/io/natab"
	"github.com/bebop-bio/isocor/io/purity"
	"github.com/bebop-bio/isocor/io/report"
	"github.com/bebop-bio/isocor/isotope"
)

// correctCommand wires the io/* collaborators into isocor.Correct, once per
// compound and once per measurement experiment column, mirroring the
// teacher's convert/hash commands' per-file concurrency-free dispatch.
func correctCommand(c *cli.Context) error {
	compounds, err := formula.Load(c.String("formula"))
	if err != nil {
		return err
	}

	table := isotope.Default()
	if path := c.String("natab"); path != "" {
		table, err = natab.Load(path)
		if err != nil {
			return err
		}
	}

	isotopologue := make(map[string]bool, len(compounds))
	byName := make(map[string]chem.Compound, len(compounds))
	for _, compound := range compounds {
		isotopologue[compound.Name] = compound.IsIsotopologue()
		byName[compound.Name] = compound
	}

	sets, err := measurements.Load(c.String("measurements"), isotopologue)
	if err != nil {
		return err
	}

	var purityDescriptor chem.Purity
	if path := c.String("purity"); path != "" {
		purityDescriptor, err = purity.Load(path)
		if err != nil {
			return err
		}
	}

	var expectedSets map[string][]chem.MeasurementSet
	if path := c.String("expected"); path != "" {
		expectedSets, err = measurements.Load(path, isotopologue)
		if err != nil {
			return err
		}
	}

	hashAlgorithm, err := parseHashAlgorithm(c.String("hash"))
	if err != nil {
		return err
	}

	baseOpts := isocor.Options{
		NaturalAbundanceOnTracer: c.Bool("natural-abundance-on-tracer"),
		Purity:                   purityDescriptor,
		HashAlgorithm:            hashAlgorithm,
	}

	out := os.Stdout
	if path := c.String("o"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	for name, columns := range sets {
		compound, ok := byName[name]
		if !ok {
			return fmt.Errorf("isocor: measurements reference unknown compound %q", name)
		}
		opts := baseOpts
		if cols, ok := expectedSets[name]; ok && len(cols) > 0 {
			// The expected-result table carries one reference vector per
			// compound, reused across every measurement experiment column.
			opts.Expected = cols[0]
		}
		for col, measurementSet := range columns {
			result, err := isocor.Correct(table, compound, measurementSet, opts)
			if err != nil {
				return fmt.Errorf("isocor: %s (column %d): %w", name, col, err)
			}
			fmt.Fprintf(out, "# compound: %s, experiment column: %d\n", name, col)
			if err := report.WriteTable(out, result); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseHashAlgorithm maps a CLI flag value to an isocor.HashAlgorithm,
// mirroring the teacher's flagSwitchHash multi-algorithm switch.
func parseHashAlgorithm(name string) (isocor.HashAlgorithm, error) {
	switch name {
	case "", "blake3":
		return isocor.BLAKE3, nil
	case "md5":
		return isocor.MD5, nil
	case "sha1":
		return isocor.SHA1, nil
	case "sha256":
		return isocor.SHA256, nil
	case "sha384":
		return isocor.SHA384, nil
	case "sha512":
		return isocor.SHA512, nil
	case "ripemd160":
		return isocor.RIPEMD160, nil
	case "sha3_256":
		return isocor.SHA3_256, nil
	case "sha3_512":
		return isocor.SHA3_512, nil
	case "blake2s_256":
		return isocor.BLAKE2s_256, nil
	case "blake2b_256":
		return isocor.BLAKE2b_256, nil
	default:
		return 0, fmt.Errorf("isocor: unknown hash algorithm %q", name)
	}
}

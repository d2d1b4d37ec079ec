/*
cmd/isocor is the command line entry point for the isotope correction
engine. Argument parsing and app definition are done through
"github.com/urfave/cli/v2", the same way the teacher's cmd/poly app is
built: a top-level *cli.App with nested per-command flags and an
Action func(c *cli.Context) error.
*/
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	run(os.Args)
}

// run is separated from main for testability, mirroring cmd/poly.
func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

func application() *cli.App {
	return &cli.App{
		Name:  "isocor",
		Usage: "Correct tandem mass spectrometry intensities for natural isotope abundance.",
		Commands: []*cli.Command{
			{
				Name:    "correct",
				Aliases: []string{"c"},
				Usage:   "Run the correction pipeline for every compound in a formula file.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "formula",
						Aliases:  []string{"f"},
						Usage:    "Path to a compound formula table (io/formula grammar).",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "natab",
						Aliases: []string{"n"},
						Usage:   "Path to a natural-abundance table (io/natab flat grammar). Defaults to the built-in table.",
					},
					&cli.StringFlag{
						Name:     "measurements",
						Aliases:  []string{"m"},
						Usage:    "Path to a measured-intensity table (io/measurements grammar).",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "purity",
						Aliases: []string{"p"},
						Usage:   "Path to a tracer-purity descriptor (io/purity grammar). Omit to skip purity correction.",
					},
					&cli.StringFlag{
						Name:    "expected",
						Aliases: []string{"e"},
						Usage:   "Path to an expected-corrected-vector table (io/measurements grammar). Mismatches beyond tolerance surface as warnings rather than failing the run.",
					},
					&cli.BoolFlag{
						Name:  "natural-abundance-on-tracer",
						Usage: "Model background natural-isotope variation among tracer-label atoms.",
					},
					&cli.StringFlag{
						Name:  "hash",
						Value: "blake3",
						Usage: "Provenance hash algorithm. One of: blake3, md5, sha1, sha256, sha384, sha512, ripemd160, sha3_256, sha3_512, blake2s_256, blake2b_256.",
					},
					&cli.StringFlag{
						Name:  "o",
						Usage: "Write output to this path instead of stdout.",
					},
				},
				Action: func(c *cli.Context) error {
					return correctCommand(c)
				},
			},
		},
	}
}

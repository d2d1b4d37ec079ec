package isocor

import (
	"crypto"
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	_ "golang.org/x/crypto/blake2b"
	_ "golang.org/x/crypto/blake2s"
	_ "golang.org/x/crypto/ripemd160"
	_ "golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"

	"github.com/bebop-bio/isocor/chem"
	"github.com/bebop-bio/isocor/isotope"
)

// HashAlgorithm selects the content-hash function used for Result.Provenance
// (EXPANSION-2). Where each comes from:
//
//	BLAKE3       lukechampine.com/blake3
//	MD5          crypto/md5
//	SHA1         crypto/sha1
//	SHA256       crypto/sha256
//	SHA384       crypto/sha512
//	SHA512       crypto/sha512
//	RIPEMD160    golang.org/x/crypto/ripemd160
//	SHA3_256     golang.org/x/crypto/sha3
//	SHA3_512     golang.org/x/crypto/sha3
//	BLAKE2s_256  golang.org/x/crypto/blake2s
//	BLAKE2b_256  golang.org/x/crypto/blake2b
type HashAlgorithm int

const (
	BLAKE3 HashAlgorithm = iota
	MD5
	SHA1
	SHA256
	SHA384
	SHA512
	RIPEMD160
	SHA3_256
	SHA3_512
	BLAKE2s_256
	BLAKE2b_256
)

// cryptoHash maps an HashAlgorithm to its stdlib crypto.Hash registration.
// BLAKE3 has no such registration; it is handled separately.
func (h HashAlgorithm) cryptoHash() (crypto.Hash, bool) {
	switch h {
	case MD5:
		return crypto.MD5, true
	case SHA1:
		return crypto.SHA1, true
	case SHA256:
		return crypto.SHA256, true
	case SHA384:
		return crypto.SHA384, true
	case SHA512:
		return crypto.SHA512, true
	case RIPEMD160:
		return crypto.RIPEMD160, true
	case SHA3_256:
		return crypto.SHA3_256, true
	case SHA3_512:
		return crypto.SHA3_512, true
	case BLAKE2s_256:
		return crypto.BLAKE2s_256, true
	case BLAKE2b_256:
		return crypto.BLAKE2b_256, true
	default:
		return 0, false
	}
}

// ComputeProvenance hashes the normalized inputs of a Correct call: the
// compound, the natural-abundance table restricted to the elements the
// compound actually uses, the measurement vector, and the purity
// descriptor if any. Normalization (sorted element/isotope/measurement
// ordering) makes the fingerprint independent of caller-supplied slice and
// map iteration order.
func ComputeProvenance(table *isotope.Table, compound chem.Compound, measurements chem.MeasurementSet, opts Options) (string, error) {
	canonical := canonicalizeInputs(table, compound, measurements, opts)

	if opts.HashAlgorithm == BLAKE3 {
		sum := blake3.Sum256([]byte(canonical))
		return hex.EncodeToString(sum[:]), nil
	}

	cryptoHash, ok := opts.HashAlgorithm.cryptoHash()
	if !ok {
		return "", fmt.Errorf("isocor: unknown hash algorithm %d", opts.HashAlgorithm)
	}
	if !cryptoHash.Available() {
		return "", fmt.Errorf("isocor: hash algorithm %d not available", opts.HashAlgorithm)
	}
	h := cryptoHash.New()
	h.Write([]byte(canonical))
	return hex.EncodeToString(h.Sum(nil)), nil
}

func canonicalizeInputs(table *isotope.Table, compound chem.Compound, measurements chem.MeasurementSet, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "compound:%s\n", compound.Name)
	writeSide(&b, "precursor", compound.Precursor)
	writeSide(&b, "fragment", compound.Fragment)

	elements := compoundElements(compound)
	for _, el := range elements {
		isos, err := table.IsotopesOf(el)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "element:%s\n", el)
		for _, iso := range isos {
			intensity, _ := table.RelativeIntensity(el, iso)
			fmt.Fprintf(&b, "  %s=%.12g\n", iso, intensity)
		}
	}

	type keyedMeasurement struct {
		key   chem.NnKey
		value float64
	}
	keys := measurements.Keys()
	values := measurements.Values()
	keyed := make([]keyedMeasurement, len(keys))
	for i := range keys {
		keyed[i] = keyedMeasurement{key: keys[i], value: values[i]}
	}
	sort.Slice(keyed, func(i, j int) bool {
		if keyed[i].key.N != keyed[j].key.N {
			return keyed[i].key.N < keyed[j].key.N
		}
		return keyed[i].key.N2 < keyed[j].key.N2
	})
	for _, km := range keyed {
		fmt.Fprintf(&b, "measurement:%d,%d=%.12g\n", km.key.N, km.key.N2, km.value)
	}

	if opts.Purity != nil {
		names := make([]string, 0, len(opts.Purity))
		for name := range opts.Purity {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "purity:%s=%.12g\n", name, opts.Purity[name])
		}
	}
	fmt.Fprintf(&b, "naturalAbundanceOnTracer:%v\n", opts.NaturalAbundanceOnTracer)

	return b.String()
}

func writeSide(b *strings.Builder, label string, side chem.Side) {
	fmt.Fprintf(b, "%s.tracer:%s/%s=%d\n", label, side.Tracer.Element, side.Tracer.Isotope, side.Tracer.Count)
	keys := make([]string, 0, len(side.Elements))
	for el := range side.Elements {
		keys = append(keys, el)
	}
	sort.Strings(keys)
	for _, el := range keys {
		fmt.Fprintf(b, "%s.element:%s=%d\n", label, el, side.Elements[el])
	}
}

func compoundElements(compound chem.Compound) []string {
	set := make(map[string]bool)
	set[compound.Precursor.Tracer.Element] = true
	for el := range compound.Precursor.Elements {
		set[el] = true
	}
	out := make([]string, 0, len(set))
	for el := range set {
		out = append(out, el)
	}
	sort.Strings(out)
	return out
}

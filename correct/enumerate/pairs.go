package enumerate

// isotopePairs enumerates the per-isotope pair set of §4.2.1: all (N,n) with
// 0≤n≤F, 0≤N≤P, n≤N, (P-F)+n≥N, and each side's mass contribution (delta*N,
// delta*n) not exceeding the tracer's own mass cap on that side.
func isotopePairs(P, F, delta, tracerNMax, tracerN2Max, deltaMTracer int) []Pair {
	var out []Pair
	for N := 0; N <= P; N++ {
		if delta > 0 && delta*N > deltaMTracer*tracerNMax {
			break // delta*N is non-decreasing in N
		}
		upperN2 := F
		if N < upperN2 {
			upperN2 = N
		}
		for n := 0; n <= upperN2; n++ {
			if (P-F)+n < N {
				continue
			}
			if delta*n > deltaMTracer*tracerN2Max {
				continue
			}
			out = append(out, Pair{N: N, N2: n})
		}
	}
	return out
}

// tracerPairs enumerates the tracer (M,m) pairs of §4.2.2: the same
// conservation shape as isotopePairs, specialized to the tracer element's
// own precursor/fragment atom budget (no mass cap — the tracer isotope's own
// mass delta trivially bounds it to the problem size).
func tracerPairs(tracerN, tracerN2 int) []Pair {
	var out []Pair
	for N := 0; N <= tracerN; N++ {
		upperN2 := tracerN2
		if N < upperN2 {
			upperN2 = N
		}
		for n := 0; n <= upperN2; n++ {
			if (tracerN-tracerN2)+n < N {
				continue
			}
			out = append(out, Pair{N: N, N2: n})
		}
	}
	return out
}

// productWithFilter computes the Cartesian product of lists, pruning after
// every stage with prune (a necessary, monotonic condition safe to check on
// partial records) and, once a record is complete, with final. This is the
// streaming pipeline §5 calls for: filters are applied after each stage
// rather than only once the full product has been materialized.
func productWithFilter(lists [][]Pair, prune func(partial []Pair) bool, final func(full []Pair) bool) [][]Pair {
	acc := [][]Pair{{}}
	for _, list := range lists {
		var next [][]Pair
		for _, partial := range acc {
			for _, p := range list {
				candidate := make([]Pair, len(partial)+1)
				copy(candidate, partial)
				candidate[len(partial)] = p
				if prune == nil || prune(candidate) {
					next = append(next, candidate)
				}
			}
		}
		acc = next
	}
	if final == nil {
		return acc
	}
	out := acc[:0]
	for _, rec := range acc {
		if final(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func sumPairs(pairs []Pair, deltas []int) (sumN, sumN2, massN, massN2 int) {
	for i, p := range pairs {
		sumN += p.N
		sumN2 += p.N2
		if deltas != nil {
			massN += deltas[i] * p.N
			massN2 += deltas[i] * p.N2
		}
	}
	return
}

package molgraph

// Fragments partitions bonded atom pairs into connected groups.
//
// Each fragment starts with the first pair not yet assigned and grows by
// repeatedly sweeping the remaining pairs in order, absorbing every pair
// that shares an atom with the fragment, until a sweep adds nothing. Pair
// order inside a fragment is therefore absorption order, which callers
// rely on: the first atom of a fragment's first pair and the last atom of
// its last pair serve as link points between fragments.
func Fragments(pairs []Pair) [][]Pair {
	switch len(pairs) {
	case 0:
		return nil
	case 1:
		return [][]Pair{{pairs[0]}}
	}

	var fragments [][]Pair
	rest := pairs
	for len(rest) > 0 {
		var connected []Pair
		connected, rest = splitConnected(rest)
		fragments = append(fragments, connected)
	}
	return fragments
}

// splitConnected separates the pairs reachable from pairs[0] from the rest.
func splitConnected(pairs []Pair) (connected, rest []Pair) {
	first := pairs[0]
	atoms := map[int]bool{first[0]: true, first[1]: true}
	connected = []Pair{first}
	rest = pairs[1:]

	for {
		var unconnected []Pair
		for _, p := range rest {
			if atoms[p[0]] || atoms[p[1]] {
				atoms[p[0]] = true
				atoms[p[1]] = true
				connected = append(connected, p)
			} else {
				unconnected = append(unconnected, p)
			}
		}
		if len(unconnected) == len(rest) {
			return connected, unconnected
		}
		rest = unconnected
	}
}

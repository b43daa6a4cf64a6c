package molgraph

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrAtomIndex is returned by [Graph.AddAtom] when the atom's Index does
	// not equal the number of atoms already in the graph. Indices are dense.
	ErrAtomIndex = errors.New("atom index out of sequence")

	// ErrUnknownAtom is returned by [Graph.AddBond] and [Graph.Validate] when
	// a bond or neighbor list references an atom that doesn't exist.
	ErrUnknownAtom = errors.New("unknown atom")

	// ErrSelfBond is returned by [Graph.AddBond] when both ends are the same atom.
	ErrSelfBond = errors.New("bond connects an atom to itself")

	// ErrDuplicateBond is returned by [Graph.AddBond] when the atom pair is
	// already bonded, in either orientation.
	ErrDuplicateBond = errors.New("duplicate bond")

	// ErrInvalidOrder is returned by [Graph.AddBond] for orders outside 1..4.
	ErrInvalidOrder = errors.New("bond order must be 1, 2, 3 or 4")

	// ErrInvalidRing is returned by [Graph.AddRing] when the ring is empty or
	// references a bond position that doesn't exist.
	ErrInvalidRing = errors.New("invalid ring")

	// ErrNeighborMismatch is returned by [Graph.Validate] when an atom lists a
	// neighbor it shares no bond with.
	ErrNeighborMismatch = errors.New("neighbor without bond")

	// ErrMissingNeighbor is returned by [Graph.Validate] when a bond is absent
	// from one of its endpoints' neighbor lists.
	ErrMissingNeighbor = errors.New("bond missing from neighbor list")
)

// Order is the valence of a bond. Aromatic bonds use [OrderAromatic].
type Order int

const (
	OrderSingle   Order = 1
	OrderDouble   Order = 2
	OrderTriple   Order = 3
	OrderAromatic Order = 4
)

// Valid reports whether o is one of the four supported orders.
func (o Order) Valid() bool {
	return o >= OrderSingle && o <= OrderAromatic
}

// Stereo is the stereo annotation of a bond as drawn in the source.
type Stereo int

const (
	StereoNone Stereo = iota
	StereoUp
	StereoDown
	StereoEither
	StereoCis
	StereoTrans
)

var stereoNames = [...]string{"none", "up", "down", "either", "cis", "trans"}

// String returns the lowercase stereo name.
func (s Stereo) String() string {
	if s < 0 || int(s) >= len(stereoNames) {
		return fmt.Sprintf("Stereo(%d)", int(s))
	}
	return stereoNames[s]
}

// ParseStereo parses a stereo name. The empty string means [StereoNone].
func ParseStereo(name string) (Stereo, error) {
	if name == "" {
		return StereoNone, nil
	}
	for i, n := range stereoNames {
		if strings.EqualFold(n, name) {
			return Stereo(i), nil
		}
	}
	return StereoNone, fmt.Errorf("unknown stereo %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Stereo) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stereo) UnmarshalText(text []byte) error {
	v, err := ParseStereo(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Atom is a single atom with 2D coordinates.
//
// The zero Element means carbon. HydrogenErr is set instead of Hydrogens
// when the source could not determine the implicit hydrogen count.
type Atom struct {
	Index       int
	Element     string
	X, Y        float64
	Hydrogens   int
	HydrogenErr string
	Charge      int
	Radical     int   // number of radical electrons
	Neighbors   []int // neighbor indices, in source order
}

// Symbol returns the element symbol, defaulting to "C".
func (a Atom) Symbol() string {
	if a.Element == "" {
		return "C"
	}
	return a.Element
}

// Bond connects two atoms. Start and End follow the drawing direction
// of the source, which matters for stereo bonds.
type Bond struct {
	Start, End int
	Order      Order
	Stereo     Stereo
	Aromatic   bool
}

// IsAromatic reports whether the bond belongs to an aromatic system,
// either by flag or by order.
func (b Bond) IsAromatic() bool {
	return b.Aromatic || b.Order == OrderAromatic
}

// Pair returns the bond's atom indices in drawing direction.
func (b Bond) Pair() Pair {
	return Pair{b.Start, b.End}
}

// Ring lists the positions (into [Graph.Bonds]) of the bonds forming one
// ring of the smallest set of smallest rings.
type Ring []int

// Pair is an ordered pair of atom indices.
type Pair [2]int

// Reverse returns the pair with its ends swapped.
func (p Pair) Reverse() Pair {
	return Pair{p[1], p[0]}
}

// Graph is an ordered collection of atoms, bonds and rings.
//
// Graphs are built once and then treated as read-only by the renderer.
// They are not safe for concurrent mutation.
type Graph struct {
	Atoms []Atom
	Bonds []Bond
	Rings []Ring
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddAtom appends an atom. Its Index must equal the current atom count.
func (g *Graph) AddAtom(a Atom) error {
	if a.Index != len(g.Atoms) {
		return fmt.Errorf("%w: got %d, want %d", ErrAtomIndex, a.Index, len(g.Atoms))
	}
	a.Neighbors = slices.Clone(a.Neighbors)
	g.Atoms = append(g.Atoms, a)
	return nil
}

// AddBond appends a bond between two existing atoms.
func (g *Graph) AddBond(b Bond) error {
	if !g.hasAtom(b.Start) {
		return fmt.Errorf("%w: %d", ErrUnknownAtom, b.Start)
	}
	if !g.hasAtom(b.End) {
		return fmt.Errorf("%w: %d", ErrUnknownAtom, b.End)
	}
	if b.Start == b.End {
		return fmt.Errorf("%w: %d", ErrSelfBond, b.Start)
	}
	if !b.Order.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidOrder, b.Order)
	}
	if g.BondIndex(b.Start, b.End) >= 0 {
		return fmt.Errorf("%w: %d-%d", ErrDuplicateBond, b.Start, b.End)
	}
	g.Bonds = append(g.Bonds, b)
	return nil
}

// AddRing appends a ring given as bond positions.
func (g *Graph) AddRing(r Ring) error {
	if len(r) == 0 {
		return fmt.Errorf("%w: no bonds", ErrInvalidRing)
	}
	for _, pos := range r {
		if pos < 0 || pos >= len(g.Bonds) {
			return fmt.Errorf("%w: bond position %d", ErrInvalidRing, pos)
		}
	}
	g.Rings = append(g.Rings, slices.Clone(r))
	return nil
}

// DeriveNeighbors rebuilds every atom's neighbor list from the bonds, in
// bond order.
func (g *Graph) DeriveNeighbors() {
	for i := range g.Atoms {
		g.Atoms[i].Neighbors = nil
	}
	for _, b := range g.Bonds {
		g.Atoms[b.Start].Neighbors = append(g.Atoms[b.Start].Neighbors, b.End)
		g.Atoms[b.End].Neighbors = append(g.Atoms[b.End].Neighbors, b.Start)
	}
}

// BondIndex returns the position of the bond joining a and b in either
// orientation, or -1.
func (g *Graph) BondIndex(a, b int) int {
	for i, bond := range g.Bonds {
		if (bond.Start == a && bond.End == b) || (bond.Start == b && bond.End == a) {
			return i
		}
	}
	return -1
}

// Pairs returns the atom pairs of all bonds, in bond order.
func (g *Graph) Pairs() []Pair {
	pairs := make([]Pair, len(g.Bonds))
	for i, b := range g.Bonds {
		pairs[i] = b.Pair()
	}
	return pairs
}

// RingIsAromatic reports whether every bond of r is aromatic.
func (g *Graph) RingIsAromatic(r Ring) bool {
	for _, pos := range r {
		if !g.Bonds[pos].IsAromatic() {
			return false
		}
	}
	return true
}

// Unbonded returns the indices of atoms that take part in no bond, in
// ascending order.
func (g *Graph) Unbonded() []int {
	bonded := make(map[int]bool, len(g.Atoms))
	for _, b := range g.Bonds {
		bonded[b.Start] = true
		bonded[b.End] = true
	}
	var out []int
	for i := range g.Atoms {
		if !bonded[i] {
			out = append(out, i)
		}
	}
	return out
}

// Validate checks structural integrity: dense indices, bond endpoints,
// bond orders, ring positions and neighbor lists that agree with bonds
// in both directions.
func (g *Graph) Validate() error {
	for i, a := range g.Atoms {
		if a.Index != i {
			return fmt.Errorf("atom %d: %w: index %d", i, ErrAtomIndex, a.Index)
		}
		for _, n := range a.Neighbors {
			if !g.hasAtom(n) {
				return fmt.Errorf("atom %d: %w: neighbor %d", i, ErrUnknownAtom, n)
			}
			if g.BondIndex(i, n) < 0 {
				return fmt.Errorf("atom %d: %w: %d", i, ErrNeighborMismatch, n)
			}
		}
	}
	seen := make(map[Pair]bool, len(g.Bonds))
	for i, b := range g.Bonds {
		if !g.hasAtom(b.Start) || !g.hasAtom(b.End) {
			return fmt.Errorf("bond %d: %w", i, ErrUnknownAtom)
		}
		if b.Start == b.End {
			return fmt.Errorf("bond %d: %w", i, ErrSelfBond)
		}
		if !b.Order.Valid() {
			return fmt.Errorf("bond %d: %w", i, ErrInvalidOrder)
		}
		if seen[b.Pair()] || seen[b.Pair().Reverse()] {
			return fmt.Errorf("bond %d: %w", i, ErrDuplicateBond)
		}
		if !slices.Contains(g.Atoms[b.Start].Neighbors, b.End) {
			return fmt.Errorf("bond %d: %w: atom %d lacks %d", i, ErrMissingNeighbor, b.Start, b.End)
		}
		if !slices.Contains(g.Atoms[b.End].Neighbors, b.Start) {
			return fmt.Errorf("bond %d: %w: atom %d lacks %d", i, ErrMissingNeighbor, b.End, b.Start)
		}
		seen[b.Pair()] = true
	}
	for i, r := range g.Rings {
		if len(r) == 0 {
			return fmt.Errorf("ring %d: %w: no bonds", i, ErrInvalidRing)
		}
		for _, pos := range r {
			if pos < 0 || pos >= len(g.Bonds) {
				return fmt.Errorf("ring %d: %w: bond position %d", i, ErrInvalidRing, pos)
			}
		}
	}
	return nil
}

func (g *Graph) hasAtom(i int) bool {
	return i >= 0 && i < len(g.Atoms)
}

package chemfig

import (
	"math"
	"slices"

	"github.com/matzehuels/molfig/pkg/errors"
	"github.com/matzehuels/molfig/pkg/molgraph"
)

// Molecule is a molecule arranged as a bond spanning tree and rendered
// to chemfig lines. Build it with [Build]; it is immutable afterwards.
type Molecule struct {
	opts  Options
	atoms []*Atom

	// bonds holds every bond in both orientations; order lists the keys
	// in insertion order.
	bonds map[molgraph.Pair]*Bond
	order []molgraph.Pair
	pairs []molgraph.Pair

	graph *molgraph.Graph

	entry, exit *Atom
	root        *Bond
	exitBond    *Bond

	seenAtoms map[int]bool
	seenBonds map[molgraph.Pair]bool

	scale float64
	lines []string
}

// Build arranges g into a bond tree according to opts and renders it.
//
// Errors carry codes from the errors package: INVALID_OPTION for bad
// options, INVALID_INPUT for graphs that fail validation, INVALID_ATOM for entry or exit atoms that don't exist,
// INVALID_BOND for crossing bonds missing from the tree, and
// TOOLKIT_ERROR for hydrogen counts the source could not determine in
// strict mode.
func Build(g *molgraph.Graph, opts Options) (*Molecule, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(g.Atoms) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "molecule has no atoms")
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid molecule")
	}

	m := &Molecule{
		opts:      opts,
		graph:     g,
		bonds:     make(map[molgraph.Pair]*Bond, 2*len(g.Bonds)),
		seenAtoms: make(map[int]bool, len(g.Atoms)),
		seenBonds: make(map[molgraph.Pair]bool, len(g.Bonds)),
		scale:     1,
	}
	if err := m.parseAtoms(); err != nil {
		return nil, err
	}
	m.parseBonds()

	// Angles are collected before fragments are linked, so invisible link
	// bonds never push hydrogens or charges around.
	for _, p := range m.order {
		m.atoms[p[0]].BondAngles = append(m.atoms[p[0]].BondAngles, m.bonds[p].Angle)
	}
	m.connectFragments()

	if err := m.pickEntryExit(); err != nil {
		return nil, err
	}
	m.root = m.parseTree()
	if err := m.checkReached(); err != nil {
		return nil, err
	}

	crossing, err := m.resolveCrossBonds()
	if err != nil {
		return nil, err
	}

	if len(m.atoms) > 1 {
		if m.exit == nil {
			m.exitBond = m.defaultExitBond()
			m.exit = m.exitBond.End
		}
		if m.entry != m.exit {
			for b := m.exitBond; b.End != m.entry; b = b.Parent {
				b.IsTrunk = true
			}
		}
		m.processCrossBonds(crossing)
		m.scaleBonds()
		m.annotateRings()
	}

	for _, a := range m.atoms {
		a.scoreAngles()
	}
	m.lines = m.render()
	return m, nil
}

func (m *Molecule) parseAtoms() error {
	m.atoms = make([]*Atom, len(m.graph.Atoms))
	for i, src := range m.graph.Atoms {
		hydrogens := src.Hydrogens
		if src.HydrogenErr != "" {
			if m.opts.Strict {
				return &errors.HydrogenError{Atom: i + 1, Reason: src.HydrogenErr}
			}
			hydrogens = 0
		}
		m.atoms[i] = newAtom(&m.opts, src, hydrogens)
	}
	return nil
}

func (m *Molecule) parseBonds() {
	for _, src := range m.graph.Bonds {
		start, end := m.atoms[src.Start], m.atoms[src.End]
		b := newBond(&m.opts, start, end, kindForOrder(src.Order), src.Stereo)
		p := src.Pair()
		m.store(p, b)
		m.store(p.Reverse(), b.invert())
		m.pairs = append(m.pairs, p)
	}
}

func (m *Molecule) store(p molgraph.Pair, b *Bond) {
	if _, ok := m.bonds[p]; !ok {
		m.order = append(m.order, p)
	}
	m.bonds[p] = b
}

// connectFragments joins disconnected fragments and isolated atoms with
// invisible link bonds.
func (m *Molecule) connectFragments() {
	fragments := molgraph.Fragments(m.pairs)
	for i := 1; i < len(fragments); i++ {
		head, tail := fragments[i-1], fragments[i]
		m.linkAtoms(head[len(head)-1][1], tail[0][0])
	}

	unbonded := m.graph.Unbonded()
	if len(unbonded) == 0 {
		return
	}
	var anchor int
	if len(fragments) > 0 {
		last := fragments[len(fragments)-1]
		anchor = last[len(last)-1][1]
	} else {
		anchor, unbonded = unbonded[0], unbonded[1:]
	}
	for _, a := range unbonded {
		m.linkAtoms(anchor, a)
	}
}

func (m *Molecule) linkAtoms(x, y int) {
	start, end := m.atoms[x], m.atoms[y]
	b := newBond(&m.opts, start, end, KindSingle, molgraph.StereoNone)
	b.setLink()
	m.store(molgraph.Pair{x, y}, b)
	m.store(molgraph.Pair{y, x}, b.invert())
	start.Neighbors = append(start.Neighbors, y)
	end.Neighbors = append(end.Neighbors, x)
}

// pickEntryExit resolves the entry and exit atoms. Without an explicit
// entry atom, the first atom with the fewest neighbors is used so that
// only one angle in the output is absolute.
func (m *Molecule) pickEntryExit() error {
	if n := m.opts.EntryAtom; n != 0 {
		if n < 1 || n > len(m.atoms) {
			return errors.New(errors.ErrCodeInvalidAtom, "invalid entry atom number %d", n)
		}
		m.entry = m.atoms[n-1]
	} else {
		m.entry = m.atoms[0]
		for _, a := range m.atoms[1:] {
			if len(a.Neighbors) < len(m.entry.Neighbors) {
				m.entry = a
			}
		}
	}

	if n := m.opts.ExitAtom; n != 0 {
		if n < 1 || n > len(m.atoms) {
			return errors.New(errors.ErrCodeInvalidAtom, "invalid exit atom number %d", n)
		}
		m.exit = m.atoms[n-1]
	}
	return nil
}

// parseTree walks the molecule depth-first from the entry atom and
// returns the root of the bond tree. Bonds back to atoms already in the
// tree close rings and render their end atom as a phantom.
func (m *Molecule) parseTree() *Bond {
	root := newRootBond(m.entry)
	m.seenAtoms[m.entry.Index] = true
	if m.entry == m.exit {
		m.exitBond = root
	}

	type frame struct {
		bond *Bond
		from int // index of the atom the bond came from, -1 for the root
		next int // position in the end atom's neighbor list
	}
	stack := []*frame{{bond: root, from: -1}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		atom := f.bond.End
		if f.next >= len(atom.Neighbors) {
			stack = stack[:len(stack)-1]
			continue
		}
		n := atom.Neighbors[f.next]
		f.next++
		if n == f.from {
			continue
		}

		p := molgraph.Pair{atom.Index, n}
		if m.seenBonds[p] || m.seenBonds[p.Reverse()] {
			continue
		}
		m.seenBonds[p] = true
		b := m.bonds[p]
		b.Parent = f.bond
		f.bond.Descendants = append(f.bond.Descendants, b)

		if m.seenAtoms[n] {
			b.ToPhantom = true
			continue
		}
		m.seenAtoms[n] = true
		if b.End == m.exit {
			m.exitBond = b
		}
		stack = append(stack, &frame{bond: b, from: atom.Index})
	}
	return root
}

// checkReached fails when the traversal left atoms out of the tree. Fragments
// are linked beforehand, so this only happens when neighbor lists disagree
// with the bonds.
func (m *Molecule) checkReached() error {
	for _, a := range m.atoms {
		if !m.seenAtoms[a.Index] {
			return errors.New(errors.ErrCodeInvalidInput, "atom %d is not reachable from entry atom %d", a.Number(), m.entry.Number())
		}
	}
	return nil
}

// defaultExitBond picks the bond ending farthest from the entry atom,
// preferring more descendants and, on a full tie, the later bond.
func (m *Molecule) defaultExitBond() *Bond {
	var best *Bond
	bestDepth, bestDesc := -1, -1
	for _, b := range m.treeBonds() {
		if b.ToPhantom {
			continue
		}
		depth := 0
		for t := b; t != nil && t.End != m.entry; t = t.Parent {
			depth++
		}
		desc := len(b.Descendants)
		if depth > bestDepth || (depth == bestDepth && desc >= bestDesc) {
			best, bestDepth, bestDesc = b, depth, desc
		}
	}
	return best
}

// treeBonds lists the tree in pre-order, without the root.
func (m *Molecule) treeBonds() []*Bond {
	var out []*Bond
	m.Walk(func(b *Bond, _ int) bool {
		if b.Variant == VariantRegular {
			out = append(out, b)
		}
		return true
	})
	return out
}

// treeBond returns the orientation of the bond between a and b that
// made it into the tree, or nil.
func (m *Molecule) treeBond(a, b int) *Bond {
	p := molgraph.Pair{a, b}
	if m.seenBonds[p] {
		return m.bonds[p]
	}
	if m.seenBonds[p.Reverse()] {
		return m.bonds[p.Reverse()]
	}
	return nil
}

// scaleBonds applies the configured bond scaling to every tree bond.
func (m *Molecule) scaleBonds() {
	bonds := m.treeBonds()
	switch m.opts.BondScale {
	case ScaleNormalize:
		if mode := m.commonLength(bonds); mode > 0 {
			m.scale = m.opts.BondStretch / mode
		}
	case ScaleFixed:
		m.scale = m.opts.BondStretch
	}
	for _, b := range bonds {
		b.Length *= m.scale
	}
}

// commonLength returns the most frequent rounded bond length. Among
// equally frequent lengths, the one seen last wins.
func (m *Molecule) commonLength(bonds []*Bond) float64 {
	counts := make(map[float64]int)
	var seen []float64
	for _, b := range bonds {
		l := roundTo(b.Length, m.opts.BondRound)
		if counts[l] == 0 {
			seen = append(seen, l)
		}
		counts[l]++
	}
	var mode float64
	best := 0
	for _, l := range seen {
		if counts[l] >= best {
			mode, best = l, counts[l]
		}
	}
	return mode
}

// annotateRings orients ring bonds, or replaces alternating double bonds
// with a circle in symmetric aromatic rings. Aromatic rings go first so
// shared bonds take their orientation from the aromatic ring.
func (m *Molecule) annotateRings() {
	type ringRef struct {
		key      int
		aromatic bool
	}
	refs := make([]ringRef, len(m.graph.Rings))
	for i, r := range m.graph.Rings {
		refs[i] = ringRef{key: i, aromatic: m.graph.RingIsAromatic(r)}
	}
	slices.SortFunc(refs, func(a, b ringRef) int {
		if a.aromatic != b.aromatic {
			if a.aromatic {
				return -1
			}
			return 1
		}
		return b.key - a.key
	})
	for _, r := range refs {
		m.annotateRing(m.graph.Rings[r.key], r.aromatic)
	}
}

// maxRingSize bounds the rings that get annotated; large rings are rarely
// regular polygons.
const maxRingSize = 8

// ringTolerance is the relative spread allowed for a ring to count as a
// regular polygon.
const ringTolerance = 0.05

func (m *Molecule) annotateRing(ring molgraph.Ring, aromatic bool) {
	var bonds []*Bond
	var atoms []*Atom
	seen := make(map[int]bool)
	for _, pos := range ring {
		src := m.graph.Bonds[pos]
		b := m.treeBond(src.Start, src.End)
		if b == nil {
			return
		}
		bonds = append(bonds, b)
		for _, a := range []*Atom{b.Start, b.End} {
			if !seen[a.Index] {
				seen[a.Index] = true
				atoms = append(atoms, a)
			}
		}
	}
	if len(bonds) > maxRingSize {
		return
	}

	lengths := make([]float64, len(bonds))
	for i, b := range bonds {
		lengths[i] = b.Length
	}
	blSpread := spread(lengths)

	var cx, cy float64
	for _, a := range atoms {
		cx += a.X
		cy += a.Y
	}
	cx /= float64(len(atoms))
	cy /= float64(len(atoms))

	distances := make([]float64, len(atoms))
	centerAngles := make([]float64, len(atoms))
	for i, a := range atoms {
		distances[i], centerAngles[i] = comparePositions(a.X, a.Y, cx, cy)
	}
	symmetric := spread(distances) <= ringTolerance && blSpread <= ringTolerance

	if aromatic && symmetric && m.opts.AromaticCircles {
		m.aromatizeRing(bonds, cx, cy)
		// BondAngles already carry the rotation.
		for i, a := range atoms {
			a.BondAngles = append(a.BondAngles, mod360(centerAngles[i]+m.opts.Rotate))
		}
		return
	}
	for _, b := range bonds {
		b.setOrientation(&m.opts, cx, cy)
	}
}

// spread is (max-min)/max, or 0 for an all-zero input.
func spread(values []float64) float64 {
	hi, lo := slices.Max(values), slices.Min(values)
	if hi == 0 {
		return 0
	}
	return (hi - lo) / hi
}

// aromatizeRing draws all ring bonds as single strokes and hangs a circle
// off the last ring bond.
func (m *Molecule) aromatizeRing(bonds []*Bond, cx, cy float64) {
	for _, b := range bonds {
		b.Kind = KindAromatic
	}
	anchor := bonds[len(bonds)-1]
	atom := anchor.End

	outerR, angle := comparePositions(atom.X, atom.Y, cx, cy)
	circle := newRingCircle(anchor, angle+m.opts.Rotate, outerR*m.scale, len(bonds))
	anchor.Descendants = append(anchor.Descendants, circle)
}

// Dimensions returns the approximate width and height of the drawing in
// chemfig bond-length units.
func (m *Molecule) Dimensions() (width, height float64) {
	alpha := m.opts.Rotate * math.Pi / 180
	sin, cos := math.Sin(alpha), math.Cos(alpha)

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, a := range m.atoms {
		xt := a.X*cos - a.Y*sin
		yt := a.X*sin + a.Y*cos
		minX, maxX = min(minX, xt), max(maxX, xt)
		minY, maxY = min(minY, yt), max(maxY, yt)
	}
	return (maxX - minX) * m.scale, (maxY - minY) * m.scale
}

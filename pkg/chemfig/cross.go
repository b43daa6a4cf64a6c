package chemfig

import (
	"github.com/matzehuels/molfig/pkg/errors"
)

// resolveCrossBonds looks up every requested crossing bond in the tree
// before anything is modified, so a bad request leaves no partial result.
func (m *Molecule) resolveCrossBonds() ([]*Bond, error) {
	bonds := make([]*Bond, 0, len(m.opts.CrossBonds))
	for _, c := range m.opts.CrossBonds {
		var b *Bond
		if c.Start <= len(m.atoms) && c.End <= len(m.atoms) {
			b = m.treeBond(c.Start-1, c.End-1)
		}
		if b == nil {
			return nil, errors.New(errors.ErrCodeInvalidBond, "bond %d-%d doesn't exist", c.Start, c.End)
		}
		bonds = append(bonds, b)
	}
	return bonds, nil
}

// processCrossBonds re-routes each crossing bond so it is drawn last,
// on top of everything it crosses:
//
//  1. the bond in the tree becomes an invisible link
//  2. an invisible pseudo bond moves the pen from the exit atom to the
//     bond's start atom
//  3. a drawn copy of the bond follows, ending in a phantom
//
// Both new bonds hang off the exit bond as a branch.
func (m *Molecule) processCrossBonds(bonds []*Bond) {
	for _, b := range bonds {
		if n := len(m.exitBond.Descendants); n > 0 && m.exitBond.Descendants[n-1] == b {
			// already rendered last
			b.setCross(true)
			continue
		}

		cp := b.clone()
		b.setLink()

		cp.setCross(false)
		cp.ToPhantom = true
		cp.Descendants = nil

		if cp.Start != m.exit {
			pseudo := newBond(&m.opts, m.exit, cp.Start, KindSingle, 0)
			pseudo.setLink()
			pseudo.ToPhantom = true

			cp.Parent = pseudo
			pseudo.Descendants = append(pseudo.Descendants, cp)

			pseudo.Parent = m.exitBond
			m.exitBond.Descendants = append(m.exitBond.Descendants, pseudo)
		} else {
			cp.Parent = m.exitBond
			m.exitBond.Descendants = append(m.exitBond.Descendants, cp)
		}
	}
}

package chemfig

import "github.com/matzehuels/molfig/pkg/molgraph"

// Walk visits the bond tree in pre-order, starting with the root, and
// passes each node with its depth. Returning false skips the node's
// descendants.
func (m *Molecule) Walk(fn func(b *Bond, depth int) bool) {
	var walk func(b *Bond, depth int)
	walk = func(b *Bond, depth int) {
		if !fn(b, depth) {
			return
		}
		for _, d := range b.Descendants {
			walk(d, depth+1)
		}
	}
	walk(m.root, 0)
}

// render lays the tree out as chemfig lines. The trunk is rendered
// inline and every other descendant as a parenthesized branch; below the
// exit bond everything is a branch.
func (m *Molecule) render() []string {
	var out []string
	m.renderBond(&out, m.root, 0)
	return out
}

func (m *Molecule) renderBond(out *[]string, b *Bond, level int) {
	for {
		*out = append(*out, b.render(&m.opts, level))
		if len(b.Descendants) == 0 {
			return
		}
		if b == m.exitBond {
			m.renderBranches(out, level+1, b.Descendants)
			return
		}

		first := 0
		for i, d := range b.Descendants {
			if d.IsTrunk {
				first = i
				break
			}
		}
		branches := make([]*Bond, 0, len(b.Descendants)-1)
		branches = append(branches, b.Descendants[:first]...)
		branches = append(branches, b.Descendants[first+1:]...)

		m.renderBranches(out, level+1, branches)
		b = b.Descendants[first]
	}
}

func (m *Molecule) renderBranches(out *[]string, level int, bonds []*Bond) {
	for _, b := range bonds {
		*out = append(*out, rjust("(", level*m.opts.Indent+bondCodeWidth))
		m.renderBond(out, b, level)
		*out = append(*out, rjust(")", level*m.opts.Indent+bondCodeWidth))
	}
}

// Lines returns the rendered chemfig lines before output formatting.
func (m *Molecule) Lines() []string {
	return append([]string(nil), m.lines...)
}

// Root returns the synthetic root of the bond tree.
func (m *Molecule) Root() *Bond { return m.root }

// ExitBond returns the bond whose descendants are all rendered as
// branches.
func (m *Molecule) ExitBond() *Bond { return m.exitBond }

// Entry returns the atom the drawing starts at.
func (m *Molecule) Entry() *Atom { return m.entry }

// Exit returns the atom the trunk ends at.
func (m *Molecule) Exit() *Atom { return m.exit }

// Atoms returns the atoms in index order.
func (m *Molecule) Atoms() []*Atom { return m.atoms }

// BondScale returns the factor applied to source bond lengths.
func (m *Molecule) BondScale() float64 { return m.scale }

// Options returns the options the molecule was built with.
func (m *Molecule) Options() Options { return m.opts }

// Graph returns the source graph.
func (m *Molecule) Graph() *molgraph.Graph { return m.graph }

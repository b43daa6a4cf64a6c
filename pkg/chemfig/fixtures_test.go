package chemfig

import (
	"strings"
	"testing"

	"github.com/matzehuels/molfig/pkg/molgraph"
)

// graph assembles a molecule graph and derives neighbor lists.
func graph(t *testing.T, atoms []molgraph.Atom, bonds []molgraph.Bond, rings ...molgraph.Ring) *molgraph.Graph {
	t.Helper()
	g := molgraph.New()
	for i, a := range atoms {
		a.Index = i
		if err := g.AddAtom(a); err != nil {
			t.Fatalf("AddAtom(%d): %v", i, err)
		}
	}
	for _, b := range bonds {
		if b.Order == 0 {
			b.Order = molgraph.OrderSingle
		}
		if err := g.AddBond(b); err != nil {
			t.Fatalf("AddBond(%d-%d): %v", b.Start, b.End, err)
		}
	}
	for _, r := range rings {
		if err := g.AddRing(r); err != nil {
			t.Fatalf("AddRing: %v", err)
		}
	}
	g.DeriveNeighbors()
	return g
}

// underivedPair is two bonded atoms whose neighbor lists were never filled.
func underivedPair(t *testing.T) *molgraph.Graph {
	t.Helper()
	g := molgraph.New()
	for i := range 2 {
		if err := g.AddAtom(molgraph.Atom{Index: i, X: float64(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddBond(molgraph.Bond{Start: 0, End: 1, Order: molgraph.OrderSingle}); err != nil {
		t.Fatal(err)
	}
	return g
}

// oneSidedPair lists the bond under atom 0 but not under atom 1.
func oneSidedPair(t *testing.T) *molgraph.Graph {
	g := underivedPair(t)
	g.Atoms[0].Neighbors = []int{1}
	g.Atoms[1].Neighbors = []int{}
	return g
}

func propane(t *testing.T) *molgraph.Graph {
	return graph(t, []molgraph.Atom{
		{X: 0, Y: 0, Hydrogens: 3},
		{X: 0.866, Y: 0.5, Hydrogens: 2},
		{X: 1.732, Y: 0, Hydrogens: 3},
	}, []molgraph.Bond{{Start: 0, End: 1}, {Start: 1, End: 2}})
}

func ethanol(t *testing.T) *molgraph.Graph {
	return graph(t, []molgraph.Atom{
		{X: 0, Y: 0, Hydrogens: 3},
		{X: 0.866, Y: 0.5, Hydrogens: 2},
		{Element: "O", X: 1.732, Y: 0, Hydrogens: 1},
	}, []molgraph.Bond{{Start: 0, End: 1}, {Start: 1, End: 2}})
}

func aceticAcid(t *testing.T) *molgraph.Graph {
	return graph(t, []molgraph.Atom{
		{X: 0, Y: 0, Hydrogens: 3},
		{X: 0.866, Y: 0.5},
		{Element: "O", X: 0.866, Y: 1.5},
		{Element: "O", X: 1.732, Y: 0, Hydrogens: 1},
	}, []molgraph.Bond{
		{Start: 0, End: 1},
		{Start: 1, End: 2, Order: molgraph.OrderDouble},
		{Start: 1, End: 3},
	})
}

func ammonium(t *testing.T) *molgraph.Graph {
	return graph(t, []molgraph.Atom{{Element: "N", Hydrogens: 4, Charge: 1}}, nil)
}

func sodiumChloride(t *testing.T) *molgraph.Graph {
	return graph(t, []molgraph.Atom{
		{Element: "Na", Charge: 1},
		{Element: "Cl", X: 2, Charge: -1},
	}, nil)
}

// hexagon returns six CH atoms on a regular hexagon, starting at the top
// and running clockwise.
func hexagon(hydrogens ...int) []molgraph.Atom {
	xy := [][2]float64{{0, 1}, {0.866, 0.5}, {0.866, -0.5}, {0, -1}, {-0.866, -0.5}, {-0.866, 0.5}}
	atoms := make([]molgraph.Atom, 6)
	for i, p := range xy {
		atoms[i] = molgraph.Atom{X: p[0], Y: p[1], Hydrogens: hydrogens[i]}
	}
	return atoms
}

func benzene(t *testing.T) *molgraph.Graph {
	var bonds []molgraph.Bond
	for i := range 6 {
		order := molgraph.OrderSingle
		if i%2 == 0 {
			order = molgraph.OrderDouble
		}
		bonds = append(bonds, molgraph.Bond{Start: i, End: (i + 1) % 6, Order: order, Aromatic: true})
	}
	return graph(t, hexagon(1, 1, 1, 1, 1, 1), bonds, molgraph.Ring{0, 1, 2, 3, 4, 5})
}

func cyclohexene(t *testing.T) *molgraph.Graph {
	bonds := []molgraph.Bond{{Start: 0, End: 1, Order: molgraph.OrderDouble}}
	for i := 1; i < 6; i++ {
		bonds = append(bonds, molgraph.Bond{Start: i, End: (i + 1) % 6})
	}
	return graph(t, hexagon(1, 1, 2, 2, 2, 2), bonds, molgraph.Ring{0, 1, 2, 3, 4, 5})
}

// methylPropane is 2-methylpropane drawn as a chain with a wedged methyl.
func methylPropane(t *testing.T) *molgraph.Graph {
	return graph(t, []molgraph.Atom{
		{X: 0, Y: 0, Hydrogens: 3},
		{X: 0.866, Y: 0.5, Hydrogens: 2},
		{X: 1.732, Y: 0, Hydrogens: 2},
		{X: 2.598, Y: 0.5, Hydrogens: 3},
		{X: 0.866, Y: 1.5, Hydrogens: 3},
	}, []molgraph.Bond{
		{Start: 0, End: 1},
		{Start: 1, End: 2},
		{Start: 2, End: 3},
		{Start: 1, End: 4, Stereo: molgraph.StereoUp},
	})
}

func radicalAmide(t *testing.T) *molgraph.Graph {
	return graph(t, []molgraph.Atom{
		{X: 0, Y: 0, Hydrogens: 3},
		{X: 1, Y: 0, Hydrogens: 2, Radical: 1},
		{Element: "N", X: 2, Y: 0, Hydrogens: 2, Charge: -1},
	}, []molgraph.Bond{{Start: 0, End: 1}, {Start: 1, End: 2}})
}

func chloropropene(t *testing.T) *molgraph.Graph {
	return graph(t, []molgraph.Atom{
		{X: 0, Y: 0, Hydrogens: 2},
		{X: 0.866, Y: 0.5, Hydrogens: 1},
		{X: 1.732, Y: 0, Hydrogens: 3},
		{Element: "Cl", X: 0.866, Y: 1.5},
	}, []molgraph.Bond{
		{Start: 0, End: 1, Order: molgraph.OrderDouble},
		{Start: 1, End: 2},
		{Start: 1, End: 3},
	})
}

func fluoroButyne(t *testing.T) *molgraph.Graph {
	return graph(t, []molgraph.Atom{
		{X: 0, Y: 0, Hydrogens: 1},
		{X: 1, Y: 0},
		{X: 2, Y: 0},
		{X: 2.866, Y: 0.5, Hydrogens: 3},
		{Element: "F", X: 2.866, Y: -0.5},
	}, []molgraph.Bond{
		{Start: 0, End: 1, Order: molgraph.OrderTriple},
		{Start: 1, End: 2},
		{Start: 2, End: 3, Stereo: molgraph.StereoEither},
		{Start: 2, End: 4, Stereo: molgraph.StereoDown},
	})
}

func uncountedOxygen(t *testing.T) *molgraph.Graph {
	return graph(t, []molgraph.Atom{
		{Element: "O", HydrogenErr: "valence"},
		{X: 1, Hydrogens: 3},
	}, []molgraph.Bond{{Start: 0, End: 1}})
}

// build renders g with opts applied on top of the defaults.
func build(t *testing.T, g *molgraph.Graph, edit func(o *Options)) *Molecule {
	t.Helper()
	opts := DefaultOptions()
	if edit != nil {
		edit(&opts)
	}
	m, err := Build(g, opts)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return m
}

// trimmed returns the rendered lines without surrounding whitespace.
func trimmed(m *Molecule) []string {
	lines := m.Lines()
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

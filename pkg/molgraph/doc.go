// Package molgraph provides the read-only molecule model consumed by the
// chemfig renderer.
//
// # Overview
//
// A [Graph] is an ordered list of atoms, an ordered list of bonds and the
// smallest set of smallest rings (SSSR) expressed as bond positions. Atom
// indices are dense and zero-based; the order of atoms, bonds and of each
// atom's neighbor list is significant because the renderer walks them in
// exactly that order.
//
// # Basic Usage
//
// Build a graph with [New], [Graph.AddAtom], [Graph.AddBond] and
// [Graph.AddRing], or decode one from a file with the io package:
//
//	g := molgraph.New()
//	_ = g.AddAtom(molgraph.Atom{X: 0, Y: 0})
//	_ = g.AddAtom(molgraph.Atom{Element: "O", X: 0.866, Y: 0.5, Hydrogens: 1})
//	_ = g.AddBond(molgraph.Bond{Start: 0, End: 1, Order: molgraph.OrderSingle})
//	g.DeriveNeighbors()
//
// Use [Graph.Validate] before handing a decoded graph to the renderer.
//
// # Fragments
//
// Molecules may consist of several disconnected fragments (salts, for
// instance). [Fragments] partitions bonded atom pairs into connected groups
// using the same sweep order the renderer relies on when it links
// fragments together with invisible bonds.
package molgraph

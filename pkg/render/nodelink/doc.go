// Package nodelink draws the bond spanning tree of a molecule as a
// node-link diagram.
//
// # Overview
//
// chemfig output is hard to debug by reading it: which bond closes a
// ring, which path became the trunk and where fragments were stitched
// together are all implicit in the nesting. This package makes them
// visible. Atoms are nodes labelled with element and number, tree bonds
// are arrows from the atom drawn first, and:
//
//   - trunk bonds (entry to exit atom) are bold
//   - ring closures pointing at a phantom atom are dashed
//   - invisible link bonds between fragments are dotted
//   - aromatic ring circles are small double circles
//
// # Usage
//
//	mol, _ := chemfig.Build(g, chemfig.DefaultOptions())
//	dot := nodelink.ToDOT(mol, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process; no external binaries are required.
package nodelink

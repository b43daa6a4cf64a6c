// Package chemfig converts a molecule graph into chemfig code for the
// LaTeX chemfig package.
//
// # Overview
//
// chemfig describes a molecule as a path: each bond is written relative to
// the atom before it, and side chains are enclosed in parentheses. Turning
// a molecule with arbitrary rings and fragments into that form means
// choosing a spanning tree over its bonds, deciding which path through the
// tree is the main chain, and working out how each atom's hydrogens and
// charge should be placed so they don't collide with its bonds.
//
// [Build] does all of this in one pass:
//
//  1. Atoms are copied from the graph, flipped as requested, and their
//     implicit hydrogens checked.
//  2. Bonds are measured, and disconnected fragments are joined by
//     invisible link bonds.
//  3. A depth-first walk from the entry atom produces the bond tree. Bonds
//     that close a ring become short stubs pointing at a phantom of the
//     atom already drawn.
//  4. The path from the entry atom to the exit atom is marked as the trunk,
//     which is rendered without parentheses.
//  5. Bond lengths are scaled, rings are annotated with double bond
//     orientations and, optionally, aromatic circles.
//  6. Every atom scores the directions around it to place hydrogens and
//     charges, and the tree is rendered line by line.
//
// # Output
//
// [Molecule.Lines] returns the indented, commented lines. Each line right
// aligns the bond code so the atoms form a readable column; the comment
// carries the 1-based atom number. Wrapping the lines into a \chemfig
// command or a submol definition is left to the latex renderer.
//
// # Options
//
// [Options] mirrors the command line of mol2chemfig: rotation and flips,
// relative angles, rounding, aromatic circles, fancy bonds, carbon and
// methyl display, atom numbers, bond scaling, entry and exit atoms,
// markers and crossing bonds. Start from [DefaultOptions].
package chemfig

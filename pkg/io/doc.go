// Package io provides JSON and TOML import and export for molecule graphs.
//
// # Overview
//
// A molecule document carries everything the renderer needs from a
// chemistry toolkit: atoms with 2D coordinates and implicit hydrogen
// counts, bonds with orders, stereo and aromatic flags, and the smallest
// set of smallest rings. Producing such a document is the toolkit's job;
// this package only moves it in and out of [molgraph.Graph].
//
// # JSON Format
//
//	{
//	  "atoms": [
//	    {"index": 0, "element": "C", "x": 0, "y": 0, "hydrogens": 3},
//	    {"index": 1, "element": "O", "x": 0.866, "y": 0.5, "hydrogens": 1}
//	  ],
//	  "bonds": [
//	    {"start": 0, "end": 1, "order": 1, "stereo": "none"}
//	  ],
//	  "rings": []
//	}
//
// # Atom Fields
//
// All fields are optional:
//   - index: must equal the array position when present
//   - element: symbol, defaults to carbon
//   - x, y: 2D coordinates in bond units
//   - hydrogens: implicit hydrogen count
//   - hydrogen_error: set instead of hydrogens when the toolkit could not
//     count them; strict rendering turns this into an error
//   - charge, radical: formal charge and number of radical electrons
//   - neighbors: neighbor indices in toolkit order; derived from the
//     bonds when no atom lists any
//
// # Bond Fields
//
//   - start, end: atom indices, in drawing direction
//   - order: 1, 2, 3 or 4 (aromatic), defaults to 1
//   - stereo: none, up, down, either, cis or trans
//   - aromatic: toolkit aromaticity flag
//
// Rings are lists of bond positions, i.e. indexes into "bonds".
//
// # TOML
//
// [ReadTOML] and [WriteTOML] use the same field names, with atoms and
// bonds as arrays of tables. This is handy for hand-written test
// molecules.
//
// # Import and Export
//
//	g, err := io.Import("caffeine.json") // or .toml
//	err = io.ExportJSON(g, "copy.json")
//
// Exported documents list every index and neighbor list, so they
// re-import identically.
package io

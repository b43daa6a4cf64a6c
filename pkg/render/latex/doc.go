// Package latex packages rendered chemfig lines into LaTeX source.
//
// # Overview
//
// The chemfig package produces a list of indented, commented lines. This
// package turns that list into text that can be pasted into a document or
// pulled in with \input:
//
//   - the common indentation is removed and replaced by a fixed indent
//   - the lines are optionally wrapped in \definesubmol{name}{...} or
//     \chemfig{...}
//   - in terse mode, comments and whitespace are stripped and the code is
//     packed into lines of at most [TerseLineWidth] characters, each ended
//     by a % so TeX ignores the line break
//
// # Usage
//
//	mol, err := chemfig.Build(g, chemfig.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	tex, err := latex.Format(mol.Lines(), latex.Options{
//	    Indent:         4,
//	    ChemfigCommand: true,
//	})
package latex

// Package render groups the output renderers for molecules.
//
// # Overview
//
// Every renderer consumes the result of [chemfig.Build] or its source graph:
//
//   - [latex] packages the chemfig lines: dedent, re-indent, wrap in
//     \chemfig{} or \definesubmol{}, and the terse single-stream form
//   - [nodelink] draws the bond tree as a Graphviz diagram (DOT, SVG, PNG),
//     which shows how the molecule was traversed
//   - [preview] sketches the molecule from its input coordinates as a PNG
//
// The [latex] output is what ends up in a document; the other two exist to
// understand and debug the generated code.
//
//	m, err := chemfig.Build(g, chemfig.DefaultOptions())
//	code, err := latex.Format(m.Lines(), latex.Options{ChemfigCommand: true})
//	svg, err := nodelink.RenderSVG(nodelink.ToDOT(m, nodelink.Options{}))
//	png, err := preview.RenderPNG(g, preview.Options{})
//
// [chemfig.Build]: github.com/matzehuels/molfig/pkg/chemfig.Build
// [latex]: github.com/matzehuels/molfig/pkg/render/latex
// [nodelink]: github.com/matzehuels/molfig/pkg/render/nodelink
// [preview]: github.com/matzehuels/molfig/pkg/render/preview
package render

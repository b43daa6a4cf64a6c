package pipeline

import (
	"bytes"

	"github.com/matzehuels/molfig/pkg/chemfig"
	"github.com/matzehuels/molfig/pkg/errors"
	molio "github.com/matzehuels/molfig/pkg/io"
	"github.com/matzehuels/molfig/pkg/render/latex"
	"github.com/matzehuels/molfig/pkg/render/nodelink"
	"github.com/matzehuels/molfig/pkg/render/preview"
)

// Render generates output artifacts in all requested formats.
func Render(m *chemfig.Molecule, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(m, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates a single output artifact.
func RenderFormat(m *chemfig.Molecule, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatTeX:
		code, err := latex.Format(m.Lines(), opts.LatexOptions())
		if err != nil {
			return nil, err
		}
		return []byte(code), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(m, treeOptions(opts))), nil
	case FormatSVG:
		return nodelink.RenderSVG(nodelink.ToDOT(m, treeOptions(opts)))
	case FormatPNG:
		return nodelink.RenderPNG(nodelink.ToDOT(m, treeOptions(opts)))
	case FormatPreview:
		return preview.RenderPNG(m.Graph(), previewOptions(m, opts))
	case FormatJSON:
		var buf bytes.Buffer
		if err := molio.WriteJSON(m.Graph(), &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

func treeOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.DetailedTree}
}

// previewOptions highlights the entry and exit atoms.
func previewOptions(m *chemfig.Molecule, opts Options) preview.Options {
	p := preview.Options{
		Rotate:         opts.Rotate,
		FlipHorizontal: opts.FlipHorizontal,
		FlipVertical:   opts.FlipVertical,
		AtomNumbers:    opts.AtomNumbers,
	}
	if a := m.Entry(); a != nil {
		p.Highlight = append(p.Highlight, a.Number())
	}
	if a := m.Exit(); a != nil && a != m.Entry() {
		p.Highlight = append(p.Highlight, a.Number())
	}
	return p
}

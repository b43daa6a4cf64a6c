package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/molfig/pkg/errors"
	"github.com/matzehuels/molfig/pkg/molgraph"
)

const (
	// DefaultBondLength is the on-screen length of an average bond in pixels.
	DefaultBondLength = 40.0
	// DefaultMaxSize caps the longer image side in pixels.
	DefaultMaxSize = 1200

	margin = 24.0
)

// Options configures a preview.
type Options struct {
	BondLength     float64
	MaxSize        int
	Rotate         float64
	FlipHorizontal bool
	FlipVertical   bool
	// AtomNumbers labels every atom with its 1-based number.
	AtomNumbers bool
	// Highlight lists 1-based atom numbers drawn with a ring around them,
	// typically the entry and exit atoms.
	Highlight []int
}

func (o *Options) setDefaults() {
	if o.BondLength <= 0 {
		o.BondLength = DefaultBondLength
	}
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}
}

type point struct{ X, Y float64 }

// frame maps molecule coordinates to pixels.
type frame struct {
	points        []point
	scale         float64
	width, height int
}

func newFrame(g *molgraph.Graph, opts Options) frame {
	alpha := opts.Rotate * math.Pi / 180
	sin, cos := math.Sin(alpha), math.Cos(alpha)

	pts := make([]point, len(g.Atoms))
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, a := range g.Atoms {
		x, y := a.X, a.Y
		if opts.FlipHorizontal {
			x = -x
		}
		if opts.FlipVertical {
			y = -y
		}
		pts[i] = point{x*cos - y*sin, x*sin + y*cos}
		minX, maxX = min(minX, pts[i].X), max(maxX, pts[i].X)
		minY, maxY = min(minY, pts[i].Y), max(maxY, pts[i].Y)
	}

	scale := opts.BondLength / averageBondLength(g)
	rx, ry := maxX-minX, maxY-minY
	if longest := max(rx, ry) * scale; longest > float64(opts.MaxSize)-2*margin {
		scale *= (float64(opts.MaxSize) - 2*margin) / longest
	}

	f := frame{
		points: pts,
		scale:  scale,
		width:  pixels(rx*scale + 2*margin),
		height: pixels(ry*scale + 2*margin),
	}
	// Image y grows downwards.
	for i, p := range pts {
		f.points[i] = point{
			X: margin + (p.X-minX)*scale,
			Y: float64(f.height) - margin - (p.Y-minY)*scale,
		}
	}
	return f
}

// pixels rounds up, ignoring floating point noise.
func pixels(v float64) int {
	return int(math.Ceil(v - 1e-9))
}

func averageBondLength(g *molgraph.Graph) float64 {
	var sum float64
	n := 0
	for _, b := range g.Bonds {
		s, e := g.Atoms[b.Start], g.Atoms[b.End]
		if d := math.Hypot(e.X-s.X, e.Y-s.Y); d > 0 {
			sum += d
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return sum / float64(n)
}

// Draw sketches g into an image.
func Draw(g *molgraph.Graph, opts Options) (image.Image, error) {
	if g == nil || len(g.Atoms) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "molecule has no atoms")
	}
	opts.setDefaults()
	f := newFrame(g, opts)

	dc := gg.NewContext(f.width, f.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	labels := make([]string, len(g.Atoms))
	for i, a := range g.Atoms {
		labels[i] = atomLabel(a, !hasBond(g, i))
		if opts.AtomNumbers {
			labels[i] += strconv.Itoa(i + 1)
		}
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1.5)
	for _, b := range g.Bonds {
		p1 := clip(f.points[b.Start], f.points[b.End], labels[b.Start] != "")
		p2 := clip(f.points[b.End], f.points[b.Start], labels[b.End] != "")
		drawBond(dc, b, p1, p2)
	}

	for i, label := range labels {
		if label == "" {
			continue
		}
		p := f.points[i]
		dc.SetRGB(0.8, 0.1, 0.1)
		if g.Atoms[i].Symbol() == "C" || g.Atoms[i].Symbol() == "H" {
			dc.SetRGB(0, 0, 0)
		}
		dc.DrawStringAnchored(label, p.X, p.Y, 0.5, 0.35)
	}

	dc.SetRGB(0.2, 0.4, 0.9)
	dc.SetLineWidth(1)
	for _, n := range opts.Highlight {
		if n < 1 || n > len(f.points) {
			return nil, errors.New(errors.ErrCodeInvalidAtom, "invalid atom number %d", n)
		}
		p := f.points[n-1]
		dc.DrawCircle(p.X, p.Y, 10)
		dc.Stroke()
	}
	return dc.Image(), nil
}

// RenderPNG sketches g and encodes it as PNG.
func RenderPNG(g *molgraph.Graph, opts Options) ([]byte, error) {
	img, err := Draw(g, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func hasBond(g *molgraph.Graph, i int) bool {
	for _, b := range g.Bonds {
		if b.Start == i || b.End == i {
			return true
		}
	}
	return false
}

// atomLabel is empty for carbons that sit inside the skeleton.
func atomLabel(a molgraph.Atom, isolated bool) string {
	sym := a.Symbol()
	if sym == "C" && a.Charge == 0 && !isolated {
		return ""
	}
	label := sym
	if a.Hydrogens == 1 {
		label += "H"
	} else if a.Hydrogens > 1 {
		label += "H" + strconv.Itoa(a.Hydrogens)
	}
	switch {
	case a.Charge == 1:
		label += "+"
	case a.Charge == -1:
		label += "-"
	case a.Charge > 1:
		label += strconv.Itoa(a.Charge) + "+"
	case a.Charge < -1:
		label += strconv.Itoa(-a.Charge) + "-"
	}
	return label
}

// clip pulls the end of a bond at p back from a label at p.
func clip(p, toward point, labeled bool) point {
	if !labeled {
		return p
	}
	const pad = 9.0
	dx, dy := toward.X-p.X, toward.Y-p.Y
	d := math.Hypot(dx, dy)
	if d <= 2*pad {
		return p
	}
	return point{p.X + dx/d*pad, p.Y + dy/d*pad}
}

func drawBond(dc *gg.Context, b molgraph.Bond, p1, p2 point) {
	rad := math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
	const gap = 4.0
	ox, oy := math.Sin(rad)*gap, -math.Cos(rad)*gap

	line := func(d float64) {
		dc.DrawLine(p1.X+ox*d, p1.Y+oy*d, p2.X+ox*d, p2.Y+oy*d)
		dc.Stroke()
	}

	switch {
	case b.Stereo == molgraph.StereoUp:
		dc.MoveTo(p1.X, p1.Y)
		dc.LineTo(p2.X+ox, p2.Y+oy)
		dc.LineTo(p2.X-ox, p2.Y-oy)
		dc.ClosePath()
		dc.Fill()
	case b.Stereo == molgraph.StereoDown:
		for i := 1; i <= 6; i++ {
			t := float64(i) / 6
			x, y := p1.X+(p2.X-p1.X)*t, p1.Y+(p2.Y-p1.Y)*t
			dc.DrawLine(x+ox*t, y+oy*t, x-ox*t, y-oy*t)
			dc.Stroke()
		}
	case b.Stereo == molgraph.StereoEither:
		dc.SetDash(3, 2)
		line(0)
		dc.SetDash()
	case b.Order == molgraph.OrderDouble:
		line(0.5)
		line(-0.5)
	case b.Order == molgraph.OrderTriple:
		line(0)
		line(1)
		line(-1)
	case b.Order == molgraph.OrderAromatic:
		line(0)
		dc.SetDash(3, 2)
		line(1)
		dc.SetDash()
	default:
		line(0)
	}
}

package chemfig

import (
	"maps"
	"math"
	"strconv"

	"github.com/matzehuels/molfig/pkg/molgraph"
)

// Orientation records on which side of a ring bond the ring center lies.
// It only affects double bonds in rings drawn without aromatic circles.
type Orientation int

const (
	OrientationUnset Orientation = 0
	Clockwise        Orientation = 1
	CounterClockwise Orientation = -1
)

// Variant distinguishes the three kinds of tree nodes.
type Variant int

const (
	// VariantRegular is a bond between two atoms.
	VariantRegular Variant = iota
	// VariantRoot is the synthetic node that renders the entry atom alone.
	VariantRoot
	// VariantRingCircle draws the circle inside an aromatic ring.
	VariantRingCircle
)

// Bond is a node of the bond spanning tree. Regular bonds connect two
// atoms; the root and ring-circle variants have no start atom.
type Bond struct {
	Variant Variant
	Start   *Atom
	End     *Atom
	Kind    BondKind

	// Length is in source units until scaling, then in chemfig units.
	Length float64
	// Angle is the drawing direction in degrees, rotation applied. It is
	// meaningless for the root.
	Angle float64

	Parent      *Bond
	Descendants []*Bond

	IsTrunk     bool
	ToPhantom   bool
	IsLast      bool
	Orientation Orientation
	Marker      string

	styles map[string]bool
	values map[string]int

	// radius of the ring circle
	radius float64
}

// kindForOrder maps a bond order to its rendering kind.
func kindForOrder(order molgraph.Order) BondKind {
	switch order {
	case molgraph.OrderDouble:
		return KindDouble
	case molgraph.OrderTriple:
		return KindTriple
	case molgraph.OrderAromatic:
		return KindAromatic
	default:
		return KindSingle
	}
}

func newBond(o *Options, start, end *Atom, kind BondKind, stereo molgraph.Stereo) *Bond {
	if stereo == molgraph.StereoUp || stereo == molgraph.StereoDown {
		// mirroring once swaps wedge and hash
		if o.FlipVertical != o.FlipHorizontal {
			if stereo == molgraph.StereoUp {
				stereo = molgraph.StereoDown
			} else {
				stereo = molgraph.StereoUp
			}
		}
	}
	switch stereo {
	case molgraph.StereoUp:
		kind = KindUpTo
	case molgraph.StereoDown:
		kind = KindDownTo
	case molgraph.StereoEither:
		kind = KindEither
	}

	length, angle := comparePositions(start.X, start.Y, end.X, end.Y)
	b := &Bond{
		Variant: VariantRegular,
		Start:   start,
		End:     end,
		Kind:    kind,
		Length:  length,
		Angle:   mod360(angle + o.Rotate),
	}
	if o.Markers != "" {
		lo, hi := start.Number(), end.Number()
		if lo > hi {
			lo, hi = hi, lo
		}
		b.Marker = o.Markers + strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
	}
	return b
}

func newRootBond(entry *Atom) *Bond {
	return &Bond{Variant: VariantRoot, End: entry}
}

// invert returns the same bond seen from the other end. Inverting twice
// yields the original kind, angle and atoms.
func (b *Bond) invert() *Bond {
	c := b.clone()
	c.Start, c.End = b.End, b.Start
	c.Angle = mod360(b.Angle + 180)
	switch b.Kind {
	case KindUpTo:
		c.Kind = KindUpFrom
	case KindDownTo:
		c.Kind = KindDownFrom
	case KindUpFrom:
		c.Kind = KindUpTo
	case KindDownFrom:
		c.Kind = KindDownTo
	}
	return c
}

// clone copies the bond and its style maps. Descendants are shared until
// the caller replaces them.
func (b *Bond) clone() *Bond {
	c := *b
	c.styles = maps.Clone(b.styles)
	c.values = maps.Clone(b.values)
	return &c
}

// setLink turns the bond into an invisible pen move.
func (b *Bond) setLink() {
	b.Kind = KindLink
	b.styles = nil
	b.values = nil
	b.Marker = ""
}

func (b *Bond) addStyle(name string) {
	if b.styles == nil {
		b.styles = make(map[string]bool)
	}
	b.styles[name] = true
}

func (b *Bond) setValue(name string, v int) {
	if b.values == nil {
		b.values = make(map[string]int)
	}
	b.values[name] = v
}

// setOrientation records which side of the bond a ring center lies on.
// The first ring to claim a bond wins.
func (b *Bond) setOrientation(o *Options, cx, cy float64) {
	if b.Orientation != OrientationUnset {
		return
	}
	_, centerAngle := comparePositions(b.End.X, b.End.Y, cx, cy)
	kink := mod360(centerAngle + o.Rotate - b.Angle)
	if kink > 180 {
		b.Orientation = Clockwise
	} else {
		b.Orientation = CounterClockwise
	}
}

// sides holds the narrowest angles between a bond and its neighbors at
// one end, on the left and on the right. ok is false when no other bond
// attaches there.
type sides struct {
	left, right int
	ok          bool
}

func (s sides) min() int {
	return min(s.left, s.right)
}

// adjoiningAngles returns the smallest and largest counter-clockwise
// angles from this bond to the other bonds at atom.
func (b *Bond) adjoiningAngles(atom *Atom, inversion float64) (first, last int, ok bool) {
	raw := make([]int, 0, len(atom.BondAngles))
	for _, a := range atom.BondAngles {
		raw = append(raw, modInt(roundInt(a), 360))
	}
	ref := modInt(roundInt(b.Angle-inversion), 360)
	for i, a := range raw {
		if a == ref {
			raw = append(raw[:i], raw[i+1:]...)
			break
		}
	}
	if len(raw) == 0 {
		return 0, 0, false
	}

	first, last = 360, -1
	for _, a := range raw {
		rel := modInt(a-ref, 360)
		first = min(first, rel)
		last = max(last, rel)
	}
	return first, last, true
}

// upstream returns the angles at the start atom.
func (b *Bond) upstream() sides {
	first, last, ok := b.adjoiningAngles(b.Start, 0)
	return sides{left: first, right: 360 - last, ok: ok}
}

// downstream returns the angles at the end atom.
func (b *Bond) downstream() sides {
	first, last, ok := b.adjoiningAngles(b.End, 180)
	return sides{left: 360 - last, right: first, ok: ok}
}

// crossGap is the background gap left at one end of a crossing bond.
const minCrossGap = 10

func crossGap(s sides) int {
	if !s.ok {
		return minCrossGap
	}
	return max(minCrossGap, cotan100(float64(s.min())))
}

// setCross makes the bond draw over the bonds it crosses, leaving a gap
// in the background at both ends.
func (b *Bond) setCross(last bool) {
	b.addStyle("cross")
	b.setValue("bgstart", crossGap(b.upstream()))
	b.setValue("bgend", crossGap(b.downstream()))
	b.IsLast = last
}

func anglePenalty(a int, ok bool) float64 {
	if !ok {
		return 0
	}
	d := float64(a - 105)
	return d * d
}

// shortenStroke returns by how much to shorten the second stroke of a
// double bond at one end.
func shortenStroke(same, other int, ok bool) int {
	if !ok {
		return 0
	}
	var angle float64
	switch {
	case same <= 180:
		angle = 0.5 * float64(same)
	case 210 < same && same < 270:
		angle = float64(same - 180)
	case 210 < other && other < 270:
		angle = float64(other - 180)
	default:
		angle = 90
	}
	return cotan100(angle)
}

func inHexagonRange(a int) bool {
	a = abs(a)
	return a >= 90 && a <= 135
}

// fancyDouble works out the side and stroke shortening for a decorated
// double bond. ok is false when the bond should stay symmetric.
func (b *Bond) fancyDouble() (side string, start, end int, ok bool) {
	up, down := b.upstream(), b.downstream()

	if b.Orientation == OrientationUnset && (b.Start.Explicit || b.End.Explicit) {
		switch {
		case b.Start.Explicit && b.End.Explicit:
			return "", 0, 0, false
		case b.Start.Explicit && (!down.ok || (inHexagonRange(down.left) && inHexagonRange(down.right))):
			return "", 0, 0, false
		case b.End.Explicit && (!up.ok || (inHexagonRange(up.left) && inHexagonRange(up.right))):
			return "", 0, 0, false
		}
	}

	switch b.Orientation {
	case CounterClockwise:
		side = "left"
	case Clockwise:
		side = "right"
	default:
		leftPenalty := anglePenalty(up.left, up.ok) + anglePenalty(down.left, down.ok)
		rightPenalty := anglePenalty(up.right, up.ok) + anglePenalty(down.right, down.ok)
		switch {
		case leftPenalty < rightPenalty:
			side = "left"
		case rightPenalty < leftPenalty:
			side = "right"
		case circularDistance(b.Angle, 44.5) < 90:
			side = "left"
		default:
			side = "right"
		}
	}

	if !b.Start.Explicit {
		if side == "left" {
			start = shortenStroke(up.left, up.right, up.ok)
		} else {
			start = shortenStroke(up.right, up.left, up.ok)
		}
	}
	if !b.End.Explicit {
		if side == "left" {
			end = shortenStroke(down.left, down.right, down.ok)
		} else {
			end = shortenStroke(down.right, down.left, down.ok)
		}
	}
	return side, start, end, true
}

// fancyTriple works out the stroke shortening for a decorated triple bond.
func (b *Bond) fancyTriple() (start, end int) {
	if !b.Start.Explicit {
		if up := b.upstream(); up.ok {
			start = cotan100(0.5 * float64(up.min()))
		}
	}
	if !b.End.Explicit {
		if down := b.downstream(); down.ok {
			end = cotan100(0.5 * float64(down.min()))
		}
	}
	return start, end
}

// parentAngle returns the direction of the parent bond, if it has one.
func (b *Bond) parentAngle() *float64 {
	if b.Parent == nil || b.Parent.Variant == VariantRoot {
		return nil
	}
	a := b.Parent.Angle
	return &a
}

// spec assembles the formatting inputs, including fancy decorations.
// The bond itself is not modified.
func (b *Bond) spec(o *Options) bondSpec {
	angle := b.Angle
	s := bondSpec{
		angle:       &angle,
		parentAngle: b.parentAngle(),
		kind:        b.Kind,
		orientation: b.Orientation,
		isLast:      b.IsLast,
		length:      b.Length,
		departure:   b.Start.stringPos,
		arrival:     b.End.stringPos,
		marker:      b.Marker,
		values:      maps.Clone(b.values),
	}
	if b.ToPhantom {
		s.arrival = b.End.phantomPos
	}
	for name := range b.styles {
		s.styles = append(s.styles, name)
	}

	if o.FancyBonds {
		switch b.Kind {
		case KindDouble:
			if side, start, end, ok := b.fancyDouble(); ok {
				s.styles = append(s.styles, "double", side)
				s.values = withValues(s.values, start, end)
				s.kind = kindDecorated
			}
		case KindTriple:
			start, end := b.fancyTriple()
			s.styles = append(s.styles, "triple")
			s.values = withValues(s.values, start, end)
			s.kind = kindDecorated
		}
	}
	return s
}

func withValues(values map[string]int, start, end int) map[string]int {
	if values == nil {
		values = make(map[string]int, 2)
	}
	values["start"] = start
	values["end"] = end
	return values
}

// render produces the output line for this tree node at the given level.
func (b *Bond) render(o *Options, level int) string {
	switch b.Variant {
	case VariantRoot:
		code, comment := b.End.render(o)
		return indentLine(o, level, "", code, comment)
	case VariantRingCircle:
		var parent *float64
		if b.Parent != nil {
			a := b.Parent.Angle
			parent = &a
		}
		bondCode, circle, comment := formatRingCircle(o, b.Angle, parent, b.Length, b.radius)
		return indentLine(o, level, bondCode, circle, comment)
	}

	var code, comment string
	if b.ToPhantom {
		code, comment = b.End.renderPhantom(o)
	} else {
		code, comment = b.End.render(o)
	}
	return indentLine(o, level, formatBond(o, b.spec(o)), code, comment)
}

// ringCircleScale matches the ring size chemfig uses for \mcfcringle.
const ringCircleScale = 1.5

// newRingCircle builds the circle node hanging off anchor. outerR is the
// scaled distance from the anchor's end atom to the ring center.
func newRingCircle(anchor *Bond, angle, outerR float64, ringSize int) *Bond {
	innerR := math.Sin(math.Pi/2-math.Pi/float64(ringSize)) * outerR
	return &Bond{
		Variant: VariantRingCircle,
		Kind:    KindLink,
		Angle:   mod360(roundTo(angle, 1)),
		Length:  roundTo(outerR, 2),
		Parent:  anchor,
		radius:  roundTo(ringCircleScale*innerR, 2),
	}
}

package chemfig

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/molfig/pkg/molgraph"
)

// Quadrant is a compass direction around an atom used for placing
// hydrogens and radical electrons.
type Quadrant string

const (
	East  Quadrant = "east"
	West  Quadrant = "west"
	South Quadrant = "south"
	North Quadrant = "north"
)

// ChargePosition is a slot around an atom where a detached charge sign
// may be placed.
type ChargePosition string

const (
	TopRight     ChargePosition = "top_right"
	TopLeft      ChargePosition = "top_left"
	TopCenter    ChargePosition = "top_center"
	BottomCenter ChargePosition = "bottom_center"
	BottomRight  ChargePosition = "bottom_right"
	BottomLeft   ChargePosition = "bottom_left"
)

// slot is a candidate position with a tie-breaking priority.
type slot struct {
	priority int
	angle    float64
	name     string
}

var quadrantSlots = []slot{
	{0, 0, string(East)},
	{1, 180, string(West)},
	{2, 270, string(South)},
	{3, 90, string(North)},
}

var chargeSlots = []slot{
	{0, 15, string(TopRight)},
	{1, 165, string(TopLeft)},
	{2, 90, string(TopCenter)},
	{3, 270, string(BottomCenter)},
	{4, 345, string(BottomRight)},
	{5, 195, string(BottomLeft)},
}

// Angular clearance, in degrees, each kind of attachment wants on either
// side of its slot.
const (
	quadrantTurf = 80
	chargeTurf   = 50
)

// hydrogenLefties carry their hydrogens on the left when they stand alone.
var hydrogenLefties = map[string]bool{
	"O": true, "S": true, "Se": true, "Te": true,
	"F": true, "Cl": true, "Br": true, "I": true, "At": true,
}

// Atom is a renderable atom: the source attributes plus everything the
// renderer works out about where hydrogens and charges go.
type Atom struct {
	Index     int
	Element   string
	X, Y      float64
	Hydrogens int
	Charge    int
	Radical   int
	Neighbors []int

	// BondAngles lists the directions of all attached bonds, including
	// directions reserved by an aromatic ring circle.
	BondAngles []float64

	FirstQuadrant  Quadrant
	SecondQuadrant Quadrant
	ChargePosition ChargePosition

	// Explicit is set after rendering when the atom prints visible text.
	Explicit bool

	marker     string
	rendered   bool
	code       string
	stringPos  int
	phantom    string
	phantomPos int
}

func newAtom(o *Options, src molgraph.Atom, hydrogens int) *Atom {
	a := &Atom{
		Index:     src.Index,
		Element:   src.Symbol(),
		X:         src.X,
		Y:         src.Y,
		Hydrogens: hydrogens,
		Charge:    src.Charge,
		Radical:   src.Radical,
		Neighbors: slices.Clone(src.Neighbors),
	}
	if o.FlipHorizontal {
		a.X = -a.X
	}
	if o.FlipVertical {
		a.Y = -a.Y
	}
	if o.Markers != "" {
		a.marker = o.Markers + strconv.Itoa(a.Index+1)
	}
	return a
}

// Number is the 1-based atom number used in comments and options.
func (a *Atom) Number() int {
	return a.Index + 1
}

// scoreAngle penalizes a bond at angle b for crowding slot angle a.
func scoreAngle(a, b, turf float64) float64 {
	d := max(0, turf-circularDistance(a, b))
	return d * d
}

// rankSlots orders slots by total crowding, then by priority.
func rankSlots(slots []slot, bondAngles []float64, turf float64) []string {
	type scored struct {
		score    float64
		priority int
		name     string
	}
	aux := make([]scored, len(slots))
	for i, s := range slots {
		var total float64
		for _, b := range bondAngles {
			total += scoreAngle(s.angle, b, turf)
		}
		aux[i] = scored{total, s.priority, s.name}
	}
	slices.SortFunc(aux, func(x, y scored) int {
		switch {
		case x.score < y.score:
			return -1
		case x.score > y.score:
			return 1
		}
		return x.priority - y.priority
	})
	names := make([]string, len(aux))
	for i, s := range aux {
		names[i] = s.name
	}
	return names
}

// scoreAngles picks the hydrogen quadrants and the charge position.
func (a *Atom) scoreAngles() {
	if len(a.BondAngles) > 0 {
		q := rankSlots(quadrantSlots, a.BondAngles, quadrantTurf)
		a.FirstQuadrant, a.SecondQuadrant = Quadrant(q[0]), Quadrant(q[1])
	} else if hydrogenLefties[a.Element] {
		a.FirstQuadrant, a.SecondQuadrant = West, East
	} else {
		a.FirstQuadrant, a.SecondQuadrant = East, West
	}
	a.ChargePosition = ChargePosition(rankSlots(chargeSlots, a.BondAngles, chargeTurf)[0])
}

// render returns the atom code (marker included) and the line comment.
// The result is computed once; bonds read stringPos and phantom after.
func (a *Atom) render(o *Options) (code, comment string) {
	if !a.rendered {
		f := formatAtom(o, a)
		a.code, a.stringPos, a.phantom, a.phantomPos = f.code, f.stringPos, f.phantom, f.phantomPos
		a.Explicit = strings.ContainsFunc(a.code, isExplicitChar)
		a.rendered = true
	}
	comment = atomComment(o, a.Number())
	markerCode := formatMarker(a.marker)
	if markerCode != "" {
		comment = " "
	}
	return markerCode + a.code, comment
}

// renderPhantom returns the code for a ring closure or crossing bond
// arriving at an atom that was already drawn.
func (a *Atom) renderPhantom(o *Options) (code, comment string) {
	if !a.rendered {
		a.render(o)
	}
	return a.phantom, closureComment(o, a.Number())
}

func isExplicitChar(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

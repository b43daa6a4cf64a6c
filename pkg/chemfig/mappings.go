package chemfig

import (
	"slices"
	"strconv"
	"strings"
)

// bondCodeWidth is the column the bond code is right-aligned to before
// the output is dedented.
const bondCodeWidth = 50

// Macros provided by the mol2chemfig LaTeX package.
const (
	macroPlus          = `\mcfplus`
	macroMinus         = `\mcfminus`
	circleBondTemplate = `-[<angle>,<length>,,,draw=none]`
	circleTemplate     = `\mcfcringle{<radius>}`
)

// BondKind is the rendering category of a bond.
type BondKind string

const (
	KindSingle   BondKind = "single"
	KindDouble   BondKind = "double"
	KindTriple   BondKind = "triple"
	KindAromatic BondKind = "aromatic"
	KindUpTo     BondKind = "upto"
	KindDownTo   BondKind = "downto"
	KindUpFrom   BondKind = "upfrom"
	KindDownFrom BondKind = "downfrom"
	KindEither   BondKind = "either"
	KindLink     BondKind = "link"

	// kindDecorated marks a fancy double or triple bond whose strokes are
	// drawn by a TikZ style rather than by the chemfig bond symbol.
	kindDecorated BondKind = "decorated"
)

var bondSymbols = map[BondKind]string{
	KindDouble:   "=",
	KindTriple:   "~",
	KindUpTo:     "<",
	KindDownTo:   "<:",
	KindUpFrom:   ">",
	KindDownFrom: ">:",
}

var kindTikz = map[BondKind]string{
	KindLink:   "draw=none",
	KindEither: "mcfwavy",
}

// styleTemplates are keyed by the sorted style names joined with "_".
var styleTemplates = map[string]string{
	"cross":              `mcfx={<bgstart>}{<bgend>}`,
	"double_left":        `dbl={<start>}{<end>}`,
	"double_right":       `dbr={<start>}{<end>}`,
	"triple":             `trpl={<start>}{<end>}`,
	"cross_double_left":  `dblx={<start>}{<end>}{<bgstart>}{<bgend>}`,
	"cross_double_right": `dbrx={<start>}{<end>}{<bgstart>}{<bgend>}`,
	"cross_triple":       `trplx={<start>}{<end>}{<bgstart>}{<bgend>}`,
}

// styleShortcuts abbreviate common double bond styles in hexagons.
var styleShortcuts = map[string]string{
	"dbr={58}{58}": "drh",
	"dbl={58}{58}": "dlh",
	"dbr={0}{58}":  "drhe",
	"dbl={0}{58}":  "dlhe",
	"dbr={58}{0}":  "drhs",
	"dbl={58}{0}":  "dlhs",
	"dbr={0}{0}":   "drn",
	"dbl={0}{0}":   "dln",
}

// atomTemplate is a fill-in template and the index of the character
// bonds should attach to.
type atomTemplate struct {
	text string
	pos  int
}

var radicalTemplates = map[Quadrant]string{
	East:  `\lewis{0<dots>,<element>}`,
	North: `\lewis{2<dots>,<element>}`,
	West:  `\lewis{4<dots>,<element>}`,
	South: `\lewis{6<dots>,<element>}`,
}

var atomNumberEmpty = atomTemplate{`\mcfatomno{<number>}`, 0}

var atomNumberTemplates = map[Quadrant]atomTemplate{
	East:  {`\mcfright{<element>}{\mcfatomno{<number>}}`, 0},
	West:  {`\mcfleft{\mcfatomno{<number>}}{<element>}`, 0},
	North: {`\mcfabove{<element>}{\mcfatomno{<number>}}`, 0},
	South: {`\mcfbelow{<element>}{\mcfatomno{<number>}}`, 0},
}

var neutralOneH = map[Quadrant]atomTemplate{
	East:  {`<element>H`, 1},
	West:  {`H<element>`, 2},
	North: {`\mcfabove{<element>}{H}`, 0},
	South: {`\mcfbelow{<element>}{H}`, 0},
}

var neutralMoreH = map[Quadrant]atomTemplate{
	East:  {`<element>H_<hydrogens>`, 1},
	West:  {`H_<hydrogens><element>`, 2},
	North: {`\mcfabove{<element>}{\mcfright{H}{_<hydrogens>}}`, 0},
	South: {`\mcfbelow{<element>}{\mcfright{H}{_<hydrogens>}}`, 0},
}

var chargedNoH = map[ChargePosition]atomTemplate{
	TopRight:     {`\mcfright{<element>}{^{<charge>}}`, 0},
	TopLeft:      {`^{<charge>}<element>`, 2},
	TopCenter:    {`\mcfabove{<element>}{_{<charge>}}`, 0},
	BottomRight:  {`\mcfright{<element>}{_{<charge>}}`, 0},
	BottomLeft:   {`_{<charge>}<element>`, 2},
	BottomCenter: {`\mcfbelow{<element>}{^{<charge>}}`, 0},
}

var chargedOneH = map[Quadrant]atomTemplate{
	East:  {`<element>H^{<charge>}`, 1},
	West:  {`^{<charge>}H<element>`, 3},
	North: {`\mcfaboveright{<element>}{H}{^{<charge>}}`, 0},
	South: {`\mcfbelowright{<element>}{H}{^{<charge>}}`, 0},
}

var chargedMoreH = map[Quadrant]atomTemplate{
	East:  {`<element>H_<hydrogens>^{<charge>}`, 1},
	West:  {`^{<charge>}H_<hydrogens><element>`, 3},
	North: {`\mcfaboveright{<element>}{H}{^{<charge>}_<hydrogens>}`, 0},
	South: {`\mcfbelowright{<element>}{H}{^{<charge>}_<hydrogens>}`, 0},
}

// fill substitutes <name> placeholders in template.
func fill(template string, values map[string]string) string {
	pairs := make([]string, 0, 2*len(values))
	for k, v := range values {
		pairs = append(pairs, "<"+k+">", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func phantomOf(s string) string {
	return `\phantom{` + s + `}`
}

// atomFragment is the rendered form of one atom.
type atomFragment struct {
	code       string
	stringPos  int
	phantom    string
	phantomPos int
}

func fillAtom(t atomTemplate, values map[string]string, phantom string) atomFragment {
	return atomFragment{code: fill(t.text, values), stringPos: t.pos, phantom: phantom}
}

// formatAtom renders an atom with its hydrogens, charge and radical.
func formatAtom(o *Options, a *Atom) atomFragment {
	number := strconv.Itoa(a.Number())

	element := a.Element
	if a.Radical != 0 {
		dots := ":"
		if a.Radical == 1 {
			dots = "."
		}
		q := a.FirstQuadrant
		if a.Hydrogens > 0 {
			q = a.SecondQuadrant
		}
		element = fill(radicalTemplates[q], map[string]string{"dots": dots, "element": a.Element})
	}

	values := map[string]string{
		"number":    number,
		"hydrogens": strconv.Itoa(a.Hydrogens),
		"element":   element,
	}
	elementPhantom := phantomOf(element)

	if o.AtomNumbers {
		if a.Element == "C" && !o.ShowCarbons {
			return fillAtom(atomNumberEmpty, values, phantomOf(number))
		}
		return fillAtom(atomNumberTemplates[a.FirstQuadrant], values, elementPhantom)
	}

	if a.Charge == 0 {
		if element == "C" && !o.ShowCarbons && (!o.ShowMethyls || a.Hydrogens < 3) {
			return atomFragment{}
		}
		switch a.Hydrogens {
		case 0:
			return atomFragment{code: element, phantom: elementPhantom}
		case 1:
			return fillAtom(neutralOneH[a.FirstQuadrant], values, elementPhantom)
		default:
			return fillAtom(neutralMoreH[a.FirstQuadrant], values, elementPhantom)
		}
	}

	charge := macroPlus
	if a.Charge < 0 {
		charge = macroMinus
	}
	if abs(a.Charge) > 1 {
		charge = strconv.Itoa(abs(a.Charge)) + charge
	}
	values["charge"] = charge

	switch a.Hydrogens {
	case 0:
		return fillAtom(chargedNoH[a.ChargePosition], values, elementPhantom)
	case 1:
		return fillAtom(chargedOneH[a.FirstQuadrant], values, elementPhantom)
	default:
		return fillAtom(chargedMoreH[a.FirstQuadrant], values, elementPhantom)
	}
}

func atomComment(o *Options, number int) string {
	if o.Terse {
		return ""
	}
	return strconv.Itoa(number)
}

func closureComment(o *Options, number int) string {
	if o.Terse {
		return ""
	}
	return "-> " + strconv.Itoa(number)
}

func formatMarker(marker string) string {
	if marker == "" {
		return ""
	}
	return "@{" + marker + "}"
}

// formatAngle renders the angle specifier, relative to the parent bond
// when relative angles are enabled and a parent angle exists.
func formatAngle(o *Options, angle float64, parent *float64) string {
	prefix := ":"
	if o.RelativeAngles && parent != nil {
		angle -= *parent
		prefix = "::"
	}
	return prefix + formatNum(mod360(roundTo(angle, o.AngleRound)))
}

// specifierDefault blanks a specifier that equals its chemfig default.
func specifierDefault(val, def string) string {
	if val == def {
		return ""
	}
	return val
}

// bondSpec carries everything needed to format one bond code.
type bondSpec struct {
	angle       *float64
	parentAngle *float64
	kind        BondKind
	orientation Orientation
	isLast      bool
	length      float64
	departure   int
	arrival     int
	styles      []string
	values      map[string]int
	marker      string
}

// formatBond renders the chemfig bond code without the trailing atom.
func formatBond(o *Options, s bondSpec) string {
	if s.angle == nil {
		return ""
	}

	angle := specifierDefault(formatAngle(o, *s.angle, s.parentAngle), ":0")
	length := specifierDefault(formatNum(roundTo(s.length, o.BondRound)), "1")
	departure := specifierDefault(strconv.Itoa(s.departure), "0")
	arrival := specifierDefault(strconv.Itoa(s.arrival), "0")

	symbol, ok := bondSymbols[s.kind]
	if !ok {
		symbol = "-"
	}

	var tikz []string
	if t, ok := kindTikz[s.kind]; ok {
		tikz = append(tikz, t)
	}
	if len(s.styles) > 0 {
		styles := slices.Clone(s.styles)
		slices.Sort(styles)
		key := strings.Join(styles, "_")

		values := make(map[string]string, len(s.values))
		for k, v := range s.values {
			values[k] = strconv.Itoa(v)
		}
		tikz = append(tikz, fill(styleTemplates[key], values))

		// the departure atom is empty or a phantom here
		if strings.Contains(key, "cross") && !s.isLast {
			departure = ""
		}
	}
	style := strings.Join(tikz, ",")
	if short, ok := styleShortcuts[style]; ok {
		style = short
	}

	specifiers := strings.TrimRight(strings.Join([]string{angle, length, departure, arrival, style}, ","), ",")
	specifiers = formatMarker(s.marker) + specifiers
	if specifiers != "" {
		specifiers = "[" + specifiers + "]"
	}

	modifier := ""
	if s.kind == KindDouble {
		switch s.orientation {
		case Clockwise:
			modifier = "_"
		case CounterClockwise:
			modifier = "^"
		}
	}

	return symbol + modifier + specifiers
}

// formatRingCircle renders the invisible bond and the circle drawn
// inside an aromatic ring.
func formatRingCircle(o *Options, angle float64, parent *float64, length, radius float64) (bondCode, circle, comment string) {
	bondCode = fill(circleBondTemplate, map[string]string{
		"angle":  formatAngle(o, angle, parent),
		"length": specifierDefault(formatNum(length), "1"),
	})
	circle = fill(circleTemplate, map[string]string{"radius": formatNum(radius)})
	if !o.Terse {
		comment = "(o)"
	}
	return bondCode, circle, comment
}

// indentLine lays out one output line: level indentation, the bond code
// right-aligned in a fixed-width column, the atom and an optional comment.
func indentLine(o *Options, level int, bondCode, atomCode, comment string) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", o.Indent*level))
	b.WriteString(rjust(bondCode, bondCodeWidth))
	b.WriteString(atomCode)
	if comment != "" {
		b.WriteString("% ")
		b.WriteString(comment)
	}
	return strings.TrimRight(b.String(), " \t")
}

func rjust(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

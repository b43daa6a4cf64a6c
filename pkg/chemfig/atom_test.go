package chemfig

import (
	"slices"
	"testing"
)

func TestScoreAnglesQuadrants(t *testing.T) {
	tests := []struct {
		name          string
		element       string
		angles        []float64
		first, second Quadrant
		charge        ChargePosition
	}{
		{"solitary carbon", "C", nil, East, West, TopRight},
		{"solitary oxygen", "O", nil, West, East, TopRight},
		{"solitary chlorine", "Cl", nil, West, East, TopRight},
		{"bond to the east", "N", []float64{0}, West, South, TopLeft},
		{"bond to the west", "N", []float64{180}, East, South, TopRight},
		{"horizontal chain", "C", []float64{0, 180}, South, North, TopCenter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Atom{Element: tt.element, BondAngles: tt.angles}
			a.scoreAngles()
			if a.FirstQuadrant != tt.first || a.SecondQuadrant != tt.second {
				t.Errorf("quadrants = %v, %v; want %v, %v", a.FirstQuadrant, a.SecondQuadrant, tt.first, tt.second)
			}
			if a.ChargePosition != tt.charge {
				t.Errorf("charge position = %v, want %v", a.ChargePosition, tt.charge)
			}
		})
	}
}

func TestScoreAnglesFullTurnInvariant(t *testing.T) {
	base := []float64{30, 150, 275}
	shifted := []float64{390, -210, 635}

	a := &Atom{Element: "N", BondAngles: base}
	b := &Atom{Element: "N", BondAngles: shifted}
	a.scoreAngles()
	b.scoreAngles()
	if a.FirstQuadrant != b.FirstQuadrant || a.SecondQuadrant != b.SecondQuadrant || a.ChargePosition != b.ChargePosition {
		t.Errorf("360 degree offsets changed placement: %v/%v/%v vs %v/%v/%v",
			a.FirstQuadrant, a.SecondQuadrant, a.ChargePosition,
			b.FirstQuadrant, b.SecondQuadrant, b.ChargePosition)
	}
}

func TestRankSlotsRotationInvariant(t *testing.T) {
	rotate := func(slots []slot, offset float64) []slot {
		out := make([]slot, len(slots))
		for i, s := range slots {
			s.angle += offset
			out[i] = s
		}
		return out
	}
	shift := func(angles []float64, offset float64) []float64 {
		out := make([]float64, len(angles))
		for i, a := range angles {
			out[i] = a + offset
		}
		return out
	}

	tests := []struct {
		name   string
		slots  []slot
		turf   float64
		angles []float64
	}{
		{"quadrants", quadrantSlots, quadrantTurf, []float64{30, 150, 275}},
		{"quadrants single bond", quadrantSlots, quadrantTurf, []float64{10}},
		{"charge positions", chargeSlots, chargeTurf, []float64{30, 150, 275}},
		{"charge positions crowded top", chargeSlots, chargeTurf, []float64{20, 95, 170}},
	}

	for _, tt := range tests {
		want := rankSlots(tt.slots, tt.angles, tt.turf)
		for _, offset := range []float64{37.5, 101.25, -64, 212.75} {
			t.Run(tt.name, func(t *testing.T) {
				got := rankSlots(rotate(tt.slots, offset), shift(tt.angles, offset), tt.turf)
				if !slices.Equal(got, want) {
					t.Errorf("offset %v: ranking = %v, want %v", offset, got, want)
				}
			})
		}
	}
}

func TestFormatAtom(t *testing.T) {
	tests := []struct {
		name  string
		atom  Atom
		edit  func(*Options)
		code  string
		pos   int
		ghost string
	}{
		{"hidden carbon", Atom{Element: "C", Hydrogens: 2, FirstQuadrant: East}, nil, "", 0, ""},
		{"methyl shown", Atom{Element: "C", Hydrogens: 3, FirstQuadrant: West}, func(o *Options) { o.ShowMethyls = true }, "H_3C", 2, `\phantom{C}`},
		{"bare oxygen", Atom{Element: "O"}, nil, "O", 0, `\phantom{O}`},
		{"hydroxyl east", Atom{Element: "O", Hydrogens: 1, FirstQuadrant: East}, nil, "OH", 1, `\phantom{O}`},
		{"hydroxyl west", Atom{Element: "O", Hydrogens: 1, FirstQuadrant: West}, nil, "HO", 2, `\phantom{O}`},
		{"amine north", Atom{Element: "N", Hydrogens: 2, FirstQuadrant: North}, nil, `\mcfabove{N}{\mcfright{H}{_2}}`, 0, `\phantom{N}`},
		{"dication", Atom{Element: "Ca", Charge: 2, ChargePosition: TopLeft}, nil, `^{2\mcfplus}Ca`, 2, `\phantom{Ca}`},
		{"anion bottom", Atom{Element: "S", Charge: -1, ChargePosition: BottomCenter}, nil, `\mcfbelow{S}{^{\mcfminus}}`, 0, `\phantom{S}`},
		{"charged one H west", Atom{Element: "O", Hydrogens: 1, Charge: 1, FirstQuadrant: West}, nil, `^{\mcfplus}HO`, 3, `\phantom{O}`},
		{"charged more H south", Atom{Element: "N", Hydrogens: 3, Charge: 1, FirstQuadrant: South}, nil, `\mcfbelowright{N}{H}{^{\mcfplus}_3}`, 0, `\phantom{N}`},
		{"radical no H", Atom{Element: "O", Radical: 2, FirstQuadrant: West, SecondQuadrant: East}, nil, `\lewis{4:,O}`, 0, `\phantom{\lewis{4:,O}}`},
		{"numbered carbon", Atom{Index: 6, Element: "C"}, func(o *Options) { o.AtomNumbers = true }, `\mcfatomno{7}`, 0, `\phantom{7}`},
		{"numbered oxygen", Atom{Index: 2, Element: "O", FirstQuadrant: North}, func(o *Options) { o.AtomNumbers = true }, `\mcfabove{O}{\mcfatomno{3}}`, 0, `\phantom{O}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			if tt.edit != nil {
				tt.edit(&o)
			}
			a := tt.atom
			f := formatAtom(&o, &a)
			if f.code != tt.code || f.stringPos != tt.pos || f.phantom != tt.ghost {
				t.Errorf("formatAtom() = %q, %d, %q; want %q, %d, %q", f.code, f.stringPos, f.phantom, tt.code, tt.pos, tt.ghost)
			}
		})
	}
}

func TestAtomRenderExplicit(t *testing.T) {
	o := DefaultOptions()
	carbon := &Atom{Element: "C", Hydrogens: 2, FirstQuadrant: East}
	carbon.render(&o)
	if carbon.Explicit {
		t.Error("hidden carbon marked explicit")
	}
	oxygen := &Atom{Element: "O", Hydrogens: 1, FirstQuadrant: East}
	oxygen.render(&o)
	if !oxygen.Explicit {
		t.Error("hydroxyl not marked explicit")
	}
}

func TestAtomRenderComments(t *testing.T) {
	o := DefaultOptions()
	a := &Atom{Index: 4, Element: "O"}
	if _, c := a.render(&o); c != "5" {
		t.Errorf("comment = %q, want 5", c)
	}
	if code, c := a.renderPhantom(&o); code != `\phantom{O}` || c != "-> 5" {
		t.Errorf("renderPhantom() = %q, %q", code, c)
	}

	o.Terse = true
	if _, c := a.render(&o); c != "" {
		t.Errorf("terse comment = %q, want empty", c)
	}
}

package chemfig

import (
	"testing"

	"github.com/matzehuels/molfig/pkg/molgraph"
)

func TestInvertIsInvolution(t *testing.T) {
	o := DefaultOptions()
	a := &Atom{Index: 0}
	b := &Atom{Index: 1, X: 0.866, Y: 0.5}

	for _, stereo := range []molgraph.Stereo{molgraph.StereoNone, molgraph.StereoUp, molgraph.StereoDown, molgraph.StereoEither} {
		bond := newBond(&o, a, b, KindSingle, stereo)
		back := bond.invert().invert()
		if back.Start != bond.Start || back.End != bond.End {
			t.Errorf("%v: atoms not restored", stereo)
		}
		if back.Kind != bond.Kind {
			t.Errorf("%v: kind = %v, want %v", stereo, back.Kind, bond.Kind)
		}
		if !near(back.Angle, bond.Angle, 1e-9) {
			t.Errorf("%v: angle = %v, want %v", stereo, back.Angle, bond.Angle)
		}
	}
}

func TestInvertFlipsStereoDirection(t *testing.T) {
	o := DefaultOptions()
	a, b := &Atom{Index: 0}, &Atom{Index: 1, X: 1}
	if got := newBond(&o, a, b, KindSingle, molgraph.StereoUp).invert().Kind; got != KindUpFrom {
		t.Errorf("inverted up kind = %v, want %v", got, KindUpFrom)
	}
	if got := newBond(&o, a, b, KindSingle, molgraph.StereoDown).invert().Kind; got != KindDownFrom {
		t.Errorf("inverted down kind = %v, want %v", got, KindDownFrom)
	}
}

func TestStereoSwapOnSingleFlip(t *testing.T) {
	a, b := &Atom{Index: 0}, &Atom{Index: 1, X: 1}
	tests := []struct {
		h, v bool
		want BondKind
	}{
		{false, false, KindUpTo},
		{true, false, KindDownTo},
		{false, true, KindDownTo},
		{true, true, KindUpTo},
	}
	for _, tt := range tests {
		o := DefaultOptions()
		o.FlipHorizontal, o.FlipVertical = tt.h, tt.v
		if got := newBond(&o, a, b, KindSingle, molgraph.StereoUp).Kind; got != tt.want {
			t.Errorf("flip h=%v v=%v: kind = %v, want %v", tt.h, tt.v, got, tt.want)
		}
	}
}

func TestSetLinkClearsDecoration(t *testing.T) {
	o := DefaultOptions()
	o.Markers = "m"
	bond := newBond(&o, &Atom{Index: 0}, &Atom{Index: 1, X: 1}, KindDouble, 0)
	bond.addStyle("cross")
	bond.setValue("bgstart", 10)
	bond.setLink()
	if bond.Kind != KindLink || bond.Marker != "" || len(bond.styles) != 0 || len(bond.values) != 0 {
		t.Errorf("setLink left %+v", bond)
	}
}

func TestCloneDoesNotShareStyles(t *testing.T) {
	o := DefaultOptions()
	bond := newBond(&o, &Atom{Index: 0}, &Atom{Index: 1, X: 1}, KindSingle, 0)
	bond.addStyle("cross")
	cp := bond.clone()
	cp.addStyle("triple")
	if bond.styles["triple"] {
		t.Error("clone shares style set with original")
	}
}

func TestAdjoiningAngles(t *testing.T) {
	// Atom with bonds at 0, 90 and 210 degrees; measure from the 0 bond.
	atom := &Atom{BondAngles: []float64{0, 90, 210}}
	bond := &Bond{Start: atom, End: &Atom{}, Angle: 0}
	first, last, ok := bond.adjoiningAngles(atom, 0)
	if !ok || first != 90 || last != 210 {
		t.Errorf("adjoiningAngles = %d, %d, %v; want 90, 210, true", first, last, ok)
	}
	up := bond.upstream()
	if up.left != 90 || up.right != 150 {
		t.Errorf("upstream = %+v, want left 90 right 150", up)
	}

	lone := &Atom{BondAngles: []float64{45}}
	bond = &Bond{Start: lone, End: &Atom{}, Angle: 45}
	if _, _, ok := bond.adjoiningAngles(lone, 0); ok {
		t.Error("adjoiningAngles on terminal atom reported neighbors")
	}
}

func TestShortenStroke(t *testing.T) {
	tests := []struct {
		same, other int
		ok          bool
		want        int
	}{
		{0, 0, false, 0},
		{120, 240, true, 58},
		{240, 120, true, 58},
		{200, 240, true, 58},
		{300, 60, true, 0},
	}
	for _, tt := range tests {
		if got := shortenStroke(tt.same, tt.other, tt.ok); got != tt.want {
			t.Errorf("shortenStroke(%d, %d, %v) = %d, want %d", tt.same, tt.other, tt.ok, got, tt.want)
		}
	}
}

func TestOrientation(t *testing.T) {
	o := DefaultOptions()
	// Bond heading east with the center below it.
	b := newBond(&o, &Atom{Index: 0}, &Atom{Index: 1, X: 1}, KindDouble, 0)
	b.setOrientation(&o, 0.5, -1)
	if b.Orientation != Clockwise {
		t.Errorf("center below: orientation = %v, want clockwise", b.Orientation)
	}
	b.setOrientation(&o, 0.5, 1)
	if b.Orientation != Clockwise {
		t.Error("second ring overrode the first orientation")
	}

	b = newBond(&o, &Atom{Index: 0}, &Atom{Index: 1, X: 1}, KindDouble, 0)
	b.setOrientation(&o, 0.5, 1)
	if b.Orientation != CounterClockwise {
		t.Errorf("center above: orientation = %v, want counter-clockwise", b.Orientation)
	}
}

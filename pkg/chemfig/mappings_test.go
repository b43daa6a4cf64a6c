package chemfig

import (
	"strings"
	"testing"
)

func ptr(f float64) *float64 { return &f }

func TestFormatBond(t *testing.T) {
	tests := []struct {
		name string
		spec bondSpec
		edit func(*Options)
		want string
	}{
		{"no angle", bondSpec{}, nil, ""},
		{"plain east", bondSpec{angle: ptr(0), kind: KindSingle, length: 1}, nil, "-"},
		{"angled", bondSpec{angle: ptr(30), kind: KindSingle, length: 1}, nil, "-[:30]"},
		{"stretched", bondSpec{angle: ptr(30), kind: KindSingle, length: 1.5}, nil, "-[:30,1.5]"},
		{"departure", bondSpec{angle: ptr(330), kind: KindSingle, length: 1, departure: 1}, nil, "-[:330,,1]"},
		{"arrival", bondSpec{angle: ptr(330), kind: KindSingle, length: 1, arrival: 1}, nil, "-[:330,,,1]"},
		{"double clockwise", bondSpec{angle: ptr(90), kind: KindDouble, length: 1, orientation: Clockwise}, nil, "=_[:90]"},
		{"double counter-clockwise", bondSpec{angle: ptr(90), kind: KindDouble, length: 1, orientation: CounterClockwise}, nil, "=^[:90]"},
		{"triple", bondSpec{angle: ptr(0), kind: KindTriple, length: 1}, nil, "~"},
		{"wedge", bondSpec{angle: ptr(210), kind: KindUpTo, length: 1}, nil, "<[:210]"},
		{"hash", bondSpec{angle: ptr(210), kind: KindDownFrom, length: 1}, nil, ">:[:210]"},
		{"link", bondSpec{angle: ptr(30), kind: KindLink, length: 1}, nil, "-[:30,,,,draw=none]"},
		{"wavy", bondSpec{angle: ptr(30), kind: KindEither, length: 1}, nil, "-[:30,,,,mcfwavy]"},
		{
			"hexagon shortcut",
			bondSpec{angle: ptr(0), kind: kindDecorated, length: 1, styles: []string{"double_right"}, values: map[string]int{"start": 58, "end": 58}},
			nil, "-[,,,,drh]",
		},
		{
			"cross drops departure",
			bondSpec{angle: ptr(30), kind: KindSingle, length: 1, departure: 1, styles: []string{"cross"}, values: map[string]int{"bgstart": 10, "bgend": 10}},
			nil, "-[:30,,,,mcfx={10}{10}]",
		},
		{
			"cross keeps departure on last bond",
			bondSpec{angle: ptr(30), kind: KindSingle, length: 1, departure: 1, isLast: true, styles: []string{"cross"}, values: map[string]int{"bgstart": 10, "bgend": 10}},
			nil, "-[:30,,1,,mcfx={10}{10}]",
		},
		{
			"cross double",
			bondSpec{angle: ptr(30), kind: kindDecorated, length: 1, styles: []string{"double_left", "cross"}, values: map[string]int{"start": 0, "end": 58, "bgstart": 10, "bgend": 10}},
			nil, "-[:30,,,,dblx={0}{58}{10}{10}]",
		},
		{"marker", bondSpec{angle: ptr(30), kind: KindSingle, length: 1, marker: "b1"}, nil, "-[@{b1}:30]"},
		{"marker only", bondSpec{angle: ptr(0), kind: KindSingle, length: 1, marker: "b1"}, nil, "-[@{b1}]"},
		{
			"relative angle",
			bondSpec{angle: ptr(90), parentAngle: ptr(30), kind: KindSingle, length: 1},
			func(o *Options) { o.RelativeAngles = true }, "-[::60]",
		},
		{
			"relative without parent",
			bondSpec{angle: ptr(90), kind: KindSingle, length: 1},
			func(o *Options) { o.RelativeAngles = true }, "-[:90]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			if tt.edit != nil {
				tt.edit(&o)
			}
			if got := formatBond(&o, tt.spec); got != tt.want {
				t.Errorf("formatBond() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatRingCircle(t *testing.T) {
	o := DefaultOptions()
	bond, circle, comment := formatRingCircle(&o, 30, nil, 0.87, 0.75)
	if bond != "-[:30,0.87,,,draw=none]" {
		t.Errorf("bond = %q", bond)
	}
	if circle != `\mcfcringle{0.75}` {
		t.Errorf("circle = %q", circle)
	}
	if comment != "(o)" {
		t.Errorf("comment = %q", comment)
	}

	o.Terse = true
	if _, _, comment := formatRingCircle(&o, 30, nil, 1, 0.75); comment != "" {
		t.Errorf("terse comment = %q", comment)
	}
}

func TestIndentLine(t *testing.T) {
	o := DefaultOptions()
	got := indentLine(&o, 1, "-[:30]", "O", "2")
	want := strings.Repeat(" ", 48) + "-[:30]O% 2"
	if got != want {
		t.Errorf("indentLine() = %q, want %q", got, want)
	}

	if got := indentLine(&o, 0, "", "", ""); got != "" {
		t.Errorf("empty line = %q, want empty", got)
	}
}

func TestFill(t *testing.T) {
	got := fill(`<element>H_<hydrogens>`, map[string]string{"element": "N", "hydrogens": "2"})
	if got != "NH_2" {
		t.Errorf("fill() = %q", got)
	}
}

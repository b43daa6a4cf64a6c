package latex

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/molfig/pkg/errors"
)

func pad(n int) string { return strings.Repeat(" ", n) }

// aceticAcid is the raw line list rendered for CH3-C(=O)-OH.
var aceticAcid = []string{
	pad(50) + "% 1",
	pad(44) + "-[:30]% 2",
	pad(53) + "(",
	pad(48) + "=[:90]O% 3",
	pad(53) + ")",
	pad(39) + "-[:330,,,1]OH% 4",
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		opts  Options
		want  string
	}{
		{
			name:  "plain",
			lines: aceticAcid,
			opts:  Options{Indent: 4},
			want: strings.Join([]string{
				pad(15) + "% 1",
				pad(9) + "-[:30]% 2",
				pad(18) + "(",
				pad(13) + "=[:90]O% 3",
				pad(18) + ")",
				pad(4) + "-[:330,,,1]OH% 4",
			}, "\n"),
		},
		{
			name:  "chemfig command",
			lines: aceticAcid[:2],
			opts:  Options{Indent: 2, ChemfigCommand: true},
			want:  "\\chemfig{\n" + pad(8) + "% 1\n" + pad(2) + "-[:30]% 2\n}",
		},
		{
			name:  "submol wins over command",
			lines: aceticAcid[:2],
			opts:  Options{SubmolName: "acid", ChemfigCommand: true},
			want:  "\\definesubmol{acid}{\n" + pad(6) + "% 1\n-[:30]% 2\n}",
		},
		{
			name:  "terse chemfig",
			lines: aceticAcid,
			opts:  Options{Indent: 4, ChemfigCommand: true, Terse: true},
			want:  `\chemfig{-[:30](=[:90]O)-[:330,,,1]OH}`,
		},
		{
			name:  "terse bare",
			lines: []string{pad(20) + "-[:30]", pad(15) + "-[:330,,,1]OH"},
			opts:  Options{Terse: true},
			want:  "-[:30]-[:330,,,1]OH",
		},
		{
			name:  "no lines",
			lines: nil,
			opts:  Options{Indent: 4},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.lines, tt.opts)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Format() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestFormatErrors(t *testing.T) {
	if _, err := Format(aceticAcid, Options{Indent: -1}); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("negative indent: got %v", err)
	}
	if _, err := Format(aceticAcid, Options{SubmolName: "a{b"}); !errors.Is(err, errors.ErrCodeInvalidSubmol) {
		t.Errorf("bad submol name: got %v", err)
	}
}

func TestDedent(t *testing.T) {
	got := Dedent([]string{"    a", "", "  \t", "      b", "  c"})
	want := []string{"  a", "", "", "    b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedent() = %q, want %q", got, want)
	}

	// mixed tabs and spaces share no margin
	got = Dedent([]string{"\ta", "  b"})
	want = []string{"\ta", "  b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedent() = %q, want %q", got, want)
	}
}

func TestStrip(t *testing.T) {
	x20 := strings.Repeat("x", 20)
	lines := []string{x20 + "% 1", "  " + x20, x20, x20 + " % c", x20}
	got := Strip(lines)
	want := []string{strings.Repeat("x", 60), strings.Repeat("x", 40)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Strip() = %q, want %q", got, want)
	}

	long := strings.Repeat("y", TerseLineWidth+5)
	got = Strip([]string{long, "z"})
	if !reflect.DeepEqual(got, []string{long, "z"}) {
		t.Errorf("Strip(long) = %q", got)
	}

	if got := Strip([]string{"% only a comment"}); got != nil {
		t.Errorf("Strip(comment) = %q, want nil", got)
	}
}

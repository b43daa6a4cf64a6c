package chemfig

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/molfig/pkg/errors"
)

// ScaleMode selects how bond lengths are scaled before rendering.
type ScaleMode string

const (
	// ScaleNormalize divides by the most common bond length, then stretches.
	ScaleNormalize ScaleMode = "normalize"
	// ScaleKeep uses the source lengths unchanged.
	ScaleKeep ScaleMode = "keep"
	// ScaleFixed multiplies every length by the stretch factor.
	ScaleFixed ScaleMode = "scale"
)

// ValidScaleModes is the set of supported bond scaling modes.
var ValidScaleModes = map[ScaleMode]bool{
	ScaleNormalize: true,
	ScaleKeep:      true,
	ScaleFixed:     true,
}

// Default values for [Options].
const (
	DefaultIndent      = 4
	DefaultBondRound   = 3
	DefaultAngleRound  = 1
	DefaultBondStretch = 1.0
	DefaultBondScale   = ScaleNormalize
)

// CrossBond names a bond, by 1-based atom numbers, that should be drawn
// as crossing over the bonds it intersects.
type CrossBond struct {
	Start, End int
}

// String returns the "start-end" form.
func (c CrossBond) String() string {
	return fmt.Sprintf("%d-%d", c.Start, c.End)
}

// Options controls every aspect of the generated chemfig code.
//
// The zero value is not meaningful; start from [DefaultOptions].
type Options struct {
	Rotate          float64   `json:"rotate" toml:"rotate"`
	FlipHorizontal  bool      `json:"flip_horizontal" toml:"flip_horizontal"`
	FlipVertical    bool      `json:"flip_vertical" toml:"flip_vertical"`
	RelativeAngles  bool      `json:"relative_angles" toml:"relative_angles"`
	BondRound       int       `json:"bond_round" toml:"bond_round"`
	AngleRound      int       `json:"angle_round" toml:"angle_round"`
	Indent          int       `json:"indent" toml:"indent"`
	AromaticCircles bool      `json:"aromatic_circles" toml:"aromatic_circles"`
	FancyBonds      bool      `json:"fancy_bonds" toml:"fancy_bonds"`
	ShowCarbons     bool      `json:"show_carbons" toml:"show_carbons"`
	ShowMethyls     bool      `json:"show_methyls" toml:"show_methyls"`
	AtomNumbers     bool      `json:"atom_numbers" toml:"atom_numbers"`
	BondScale       ScaleMode `json:"bond_scale" toml:"bond_scale"`
	BondStretch     float64   `json:"bond_stretch" toml:"bond_stretch"`

	// EntryAtom and ExitAtom are 1-based; 0 selects automatically.
	EntryAtom int `json:"entry_atom,omitempty" toml:"entry_atom"`
	ExitAtom  int `json:"exit_atom,omitempty" toml:"exit_atom"`

	// Markers is the prefix for @{...} atom and bond markers; empty disables them.
	Markers    string      `json:"markers,omitempty" toml:"markers"`
	CrossBonds []CrossBond `json:"cross_bonds,omitempty" toml:"-"`

	// Terse drops comments and whitespace at output time; atom and ring
	// comments are suppressed already during rendering.
	Terse bool `json:"terse" toml:"terse"`

	// Strict turns hydrogen counting failures into errors instead of zero.
	Strict bool `json:"strict" toml:"strict"`
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		BondRound:   DefaultBondRound,
		AngleRound:  DefaultAngleRound,
		Indent:      DefaultIndent,
		BondScale:   DefaultBondScale,
		BondStretch: DefaultBondStretch,
		Strict:      true,
	}
}

// Validate checks option ranges.
func (o *Options) Validate() error {
	if o.Indent < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "indent must not be negative, got %d", o.Indent)
	}
	if o.BondRound < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "bond_round must not be negative, got %d", o.BondRound)
	}
	if o.AngleRound < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "angle_round must not be negative, got %d", o.AngleRound)
	}
	if !ValidScaleModes[o.BondScale] {
		return errors.New(errors.ErrCodeInvalidOption, "invalid bond_scale: %q (must be one of: normalize, keep, scale)", o.BondScale)
	}
	if o.BondStretch <= 0 {
		return errors.New(errors.ErrCodeInvalidOption, "bond_stretch must be positive, got %v", o.BondStretch)
	}
	if o.EntryAtom < 0 {
		return errors.New(errors.ErrCodeInvalidAtom, "invalid entry atom number %d", o.EntryAtom)
	}
	if o.ExitAtom < 0 {
		return errors.New(errors.ErrCodeInvalidAtom, "invalid exit atom number %d", o.ExitAtom)
	}
	if o.Markers != "" {
		if err := errors.ValidateMarkerPrefix(o.Markers); err != nil {
			return err
		}
	}
	for _, c := range o.CrossBonds {
		if c.Start < 1 || c.End < 1 {
			return errors.New(errors.ErrCodeInvalidBond, "invalid cross bond %s", c)
		}
	}
	return nil
}

// ParseCrossBonds parses a comma-separated list of "start-end" atom
// number pairs, e.g. "5-6,2-3".
func ParseCrossBonds(s string) ([]CrossBond, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []CrossBond
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		lo, hi, ok := strings.Cut(field, "-")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidRange, "cross bond %q must be start-end", field)
		}
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil || start < 1 {
			return nil, errors.New(errors.ErrCodeInvalidRange, "cross bond %q: invalid start atom", field)
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil || end < 1 {
			return nil, errors.New(errors.ErrCodeInvalidRange, "cross bond %q: invalid end atom", field)
		}
		out = append(out, CrossBond{Start: start, End: end})
	}
	return out, nil
}

// ParseRange expands a 1-based atom range list such as "1-3,7" into
// sorted, de-duplicated atom numbers.
func ParseRange(s string) ([]int, error) {
	seen := make(map[int]bool)
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		lo, hi, isSpan := strings.Cut(field, "-")
		first, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil || first < 1 {
			return nil, errors.New(errors.ErrCodeInvalidRange, "invalid range element %q", field)
		}
		last := first
		if isSpan {
			last, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil || last < first {
				return nil, errors.New(errors.ErrCodeInvalidRange, "invalid range element %q", field)
			}
		}
		for n := first; n <= last; n++ {
			seen[n] = true
		}
	}
	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.Sort(out)
	return out, nil
}

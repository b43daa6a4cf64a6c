package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/molfig/pkg/chemfig"
	"github.com/matzehuels/molfig/pkg/pipeline"
)

// optionFlags holds the command-line flags shared by render, tree and
// inspect. Values are collected into a scratch Options and copied over the
// configured Options only where the user set the flag, so a config file
// keeps any setting not given on the command line.
type optionFlags struct {
	config    string
	formats   string
	bondScale string
	flags     pipeline.Options
}

// register adds the molecule option flags to cmd.
func (f *optionFlags) register(cmd *cobra.Command, withFormats bool) {
	def := pipeline.DefaultOptions()
	o := &f.flags
	fs := cmd.Flags()

	fs.StringVar(&f.config, "config", "", "TOML file with default options")

	// Orientation
	fs.Float64VarP(&o.Rotate, "rotate", "a", def.Rotate, "rotate the molecule counterclockwise (degrees)")
	fs.BoolVar(&o.FlipHorizontal, "flip", false, "flip the molecule horizontally")
	fs.BoolVar(&o.FlipVertical, "flop", false, "flip the molecule vertically")
	fs.IntVarP(&o.EntryAtom, "entry", "e", 0, "number of the first atom to render (1-based)")
	fs.IntVarP(&o.ExitAtom, "exit", "x", 0, "number of the last atom to render (1-based)")
	fs.StringVarP(&o.CrossBondSpec, "cross-bonds", "k", "", "bonds drawn across others, e.g. 5-6,2-3")

	// Bonds
	fs.BoolVar(&o.RelativeAngles, "relative-angles", false, "use relative bond angles")
	fs.IntVar(&o.BondRound, "bond-round", def.BondRound, "decimal places for bond lengths")
	fs.IntVar(&o.AngleRound, "angle-round", def.AngleRound, "decimal places for bond angles")
	fs.StringVar(&f.bondScale, "bond-scale", string(def.BondScale), "bond length scaling: normalize, keep or scale")
	fs.Float64Var(&o.BondStretch, "bond-stretch", def.BondStretch, "bond length stretch factor")
	fs.BoolVarP(&o.FancyBonds, "fancy-bonds", "f", false, "draw double and triple bonds with shortened strokes")
	fs.BoolVar(&o.AromaticCircles, "aromatic-circles", false, "draw circles inside aromatic rings")

	// Atoms
	fs.BoolVar(&o.ShowCarbons, "show-carbons", false, "show carbon symbols")
	fs.BoolVar(&o.ShowMethyls, "show-methyls", false, "show methyl groups")
	fs.BoolVarP(&o.AtomNumbers, "atom-numbers", "n", false, "show atom numbers")
	fs.StringVarP(&o.Markers, "markers", "m", "", "prefix for atom and bond markers")
	fs.BoolVar(&o.Strict, "strict", def.Strict, "fail when hydrogens cannot be counted")

	// Packaging
	fs.IntVarP(&o.Indent, "indent", "i", def.Indent, "spaces per indentation level")
	fs.BoolVarP(&o.Terse, "terse", "z", false, "strip comments and whitespace")
	fs.StringVarP(&o.SubmolName, "submol", "l", "", "wrap the code in \\definesubmol with this name")
	fs.BoolVarP(&o.ChemfigCommand, "chemfig", "c", false, "wrap the code in \\chemfig{}")

	if withFormats {
		fs.StringVar(&f.formats, "formats", "", "output formats: tex, dot, svg, png, preview, json (comma-separated)")
		fs.BoolVar(&o.DetailedTree, "detailed", false, "show atom details in bond tree diagrams")
	}
}

// flagFields maps each flag to the Options field it sets.
var flagFields = map[string]func(dst, src *pipeline.Options){
	"rotate":           func(d, s *pipeline.Options) { d.Rotate = s.Rotate },
	"flip":             func(d, s *pipeline.Options) { d.FlipHorizontal = s.FlipHorizontal },
	"flop":             func(d, s *pipeline.Options) { d.FlipVertical = s.FlipVertical },
	"entry":            func(d, s *pipeline.Options) { d.EntryAtom = s.EntryAtom },
	"exit":             func(d, s *pipeline.Options) { d.ExitAtom = s.ExitAtom },
	"cross-bonds":      func(d, s *pipeline.Options) { d.CrossBondSpec = s.CrossBondSpec },
	"relative-angles":  func(d, s *pipeline.Options) { d.RelativeAngles = s.RelativeAngles },
	"bond-round":       func(d, s *pipeline.Options) { d.BondRound = s.BondRound },
	"angle-round":      func(d, s *pipeline.Options) { d.AngleRound = s.AngleRound },
	"bond-stretch":     func(d, s *pipeline.Options) { d.BondStretch = s.BondStretch },
	"fancy-bonds":      func(d, s *pipeline.Options) { d.FancyBonds = s.FancyBonds },
	"aromatic-circles": func(d, s *pipeline.Options) { d.AromaticCircles = s.AromaticCircles },
	"show-carbons":     func(d, s *pipeline.Options) { d.ShowCarbons = s.ShowCarbons },
	"show-methyls":     func(d, s *pipeline.Options) { d.ShowMethyls = s.ShowMethyls },
	"atom-numbers":     func(d, s *pipeline.Options) { d.AtomNumbers = s.AtomNumbers },
	"markers":          func(d, s *pipeline.Options) { d.Markers = s.Markers },
	"strict":           func(d, s *pipeline.Options) { d.Strict = s.Strict },
	"indent":           func(d, s *pipeline.Options) { d.Indent = s.Indent },
	"terse":            func(d, s *pipeline.Options) { d.Terse = s.Terse },
	"submol":           func(d, s *pipeline.Options) { d.SubmolName = s.SubmolName },
	"chemfig":          func(d, s *pipeline.Options) { d.ChemfigCommand = s.ChemfigCommand },
	"detailed":         func(d, s *pipeline.Options) { d.DetailedTree = s.DetailedTree },
}

// options resolves the final Options: defaults, then the config file, then
// every flag the user set explicitly.
func (f *optionFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if f.config != "" {
		if err := pipeline.LoadConfig(f.config, &opts); err != nil {
			return opts, err
		}
	}

	fs := cmd.Flags()
	for name, set := range flagFields {
		if fs.Changed(name) {
			set(&opts, &f.flags)
		}
	}
	if fs.Changed("bond-scale") {
		opts.BondScale = chemfig.ScaleMode(strings.ToLower(f.bondScale))
	}
	if fs.Changed("formats") {
		opts.Formats = parseFormats(f.formats)
	}
	return opts, nil
}

// describe renders the options that differ from the defaults, for debug logs.
func describe(opts pipeline.Options) string {
	def := pipeline.DefaultOptions()
	var parts []string
	if opts.Rotate != def.Rotate {
		parts = append(parts, fmt.Sprintf("rotate=%v", opts.Rotate))
	}
	if opts.EntryAtom != 0 || opts.ExitAtom != 0 {
		parts = append(parts, fmt.Sprintf("entry=%d exit=%d", opts.EntryAtom, opts.ExitAtom))
	}
	if opts.BondScale != def.BondScale {
		parts = append(parts, fmt.Sprintf("scale=%s", opts.BondScale))
	}
	if opts.CrossBondSpec != "" {
		parts = append(parts, "cross="+opts.CrossBondSpec)
	}
	if len(parts) == 0 {
		return "defaults"
	}
	return strings.Join(parts, " ")
}

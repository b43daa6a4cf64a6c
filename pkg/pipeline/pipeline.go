// Package pipeline provides the decode → build → render pipeline for molfig.
//
// This package is shared by the CLI and the HTTP server. By centralizing
// option defaults, validation, caching and rendering here, every entry point
// produces the same output for the same molecule and options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Read a molecule document (JSON or TOML) into a [molgraph.Graph]
//  2. Build: Arrange the molecule as a bond tree and render chemfig lines
//  3. Render: Package the lines and produce every requested format
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.ChemfigCommand = true
//	opts.Formats = []string{pipeline.FormatTeX, pipeline.FormatSVG}
//	result, err := runner.ExecuteFile(ctx, "caffeine.json", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tex := result.Artifacts[pipeline.FormatTeX]
package pipeline

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/molfig/pkg/chemfig"
	"github.com/matzehuels/molfig/pkg/errors"
	"github.com/matzehuels/molfig/pkg/molgraph"
	"github.com/matzehuels/molfig/pkg/render/latex"
)

// Format constants for output formats.
const (
	FormatTeX     = "tex"     // chemfig code, packaged
	FormatDOT     = "dot"     // bond tree as Graphviz DOT
	FormatSVG     = "svg"     // bond tree rendered by Graphviz
	FormatPNG     = "png"     // bond tree rendered by Graphviz
	FormatPreview = "preview" // PNG sketch of the input coordinates
	FormatJSON    = "json"    // normalized molecule document
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatTeX:     true,
	FormatDOT:     true,
	FormatSVG:     true,
	FormatPNG:     true,
	FormatPreview: true,
	FormatJSON:    true,
}

// FormatExtensions maps formats to file extensions.
var FormatExtensions = map[string]string{
	FormatTeX:     ".tex",
	FormatDOT:     ".dot",
	FormatSVG:     ".svg",
	FormatPNG:     ".png",
	FormatPreview: ".preview.png",
	FormatJSON:    ".json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
//
// The embedded chemfig options control the generated code; the remaining
// fields control packaging and output formats. Options supports JSON for
// server requests and TOML for config files.
type Options struct {
	chemfig.Options

	// CrossBondSpec is the textual form of CrossBonds, e.g. "5-6,2-3". It
	// is parsed during validation when CrossBonds is empty.
	CrossBondSpec string `json:"cross_bonds,omitempty" toml:"cross_bonds"`

	// Packaging options
	SubmolName     string `json:"submol_name,omitempty" toml:"submol_name"`
	ChemfigCommand bool   `json:"chemfig_command" toml:"chemfig_command"`

	// Render options
	Formats      []string `json:"formats,omitempty" toml:"formats"`
	DetailedTree bool     `json:"detailed_tree,omitempty" toml:"detailed_tree"`
	Refresh      bool     `json:"-" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the decoded molecule.
	Graph *molgraph.Graph

	// GraphHash is the content hash of the normalized molecule document.
	GraphHash string

	// Molecule is the built bond tree.
	Molecule *chemfig.Molecule

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Atoms      int
	Bonds      int
	Rings      int
	Width      float64 // in chemfig bond lengths
	Height     float64
	DecodeTime time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for rendered artifacts.
type CacheInfo struct {
	Hits      int  // Number of formats served from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// DefaultOptions returns the default options: chemfig defaults and TeX output.
func DefaultOptions() Options {
	return Options{
		Options: chemfig.DefaultOptions(),
		Formats: []string{FormatTeX},
	}
}

// SetDefaults fills fields whose zero value is not meaningful. Fields where
// zero is a valid setting, like BondRound, are left alone; start from
// [DefaultOptions] to get their defaults.
func (o *Options) SetDefaults() {
	if o.BondScale == "" {
		o.BondScale = chemfig.DefaultBondScale
	}
	if o.BondStretch == 0 {
		o.BondStretch = chemfig.DefaultBondStretch
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatTeX}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks every option.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if len(o.CrossBonds) == 0 && o.CrossBondSpec != "" {
		cross, err := chemfig.ParseCrossBonds(o.CrossBondSpec)
		if err != nil {
			return err
		}
		o.CrossBonds = cross
	}
	if err := o.Options.Validate(); err != nil {
		return err
	}
	if o.SubmolName != "" {
		if err := errors.ValidateSubmolName(o.SubmolName); err != nil {
			return err
		}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	o.validated = true
	return nil
}

// LatexOptions returns the packaging options for TeX output.
func (o *Options) LatexOptions() latex.Options {
	return latex.Options{
		Indent:         o.Indent,
		SubmolName:     o.SubmolName,
		ChemfigCommand: o.ChemfigCommand,
		Terse:          o.Terse,
	}
}

// keyOptions returns the options that determine an artifact of format, for
// use in cache keys. Formats that ignore the chemfig options share one
// entry across all of them.
func (o *Options) keyOptions(format string) any {
	switch format {
	case FormatTeX:
		return struct {
			chemfig.Options
			Latex latex.Options
		}{o.Options, o.LatexOptions()}
	case FormatDOT, FormatSVG, FormatPNG:
		return struct {
			chemfig.Options
			Detailed bool
		}{o.Options, o.DetailedTree}
	case FormatPreview:
		return struct {
			Rotate         float64
			FlipHorizontal bool
			FlipVertical   bool
			AtomNumbers    bool
			EntryAtom      int
			ExitAtom       int
		}{o.Rotate, o.FlipHorizontal, o.FlipVertical, o.AtomNumbers, o.EntryAtom, o.ExitAtom}
	default:
		return nil
	}
}

// String summarizes the options for logging.
func (o *Options) String() string {
	return fmt.Sprintf("formats=%v rotate=%v scale=%s indent=%d terse=%t", o.Formats, o.Rotate, o.BondScale, o.Indent, o.Terse)
}

package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/molfig/pkg/errors"
	"github.com/matzehuels/molfig/pkg/molgraph"
)

// ReadJSON decodes a JSON molecule document from r.
//
// The input must be an object with an "atoms" array and optional "bonds"
// and "rings" arrays:
//
//	{
//	  "atoms": [{"element": "O", "x": 0, "y": 0, "hydrogens": 2}],
//	  "bonds": [],
//	  "rings": []
//	}
//
// Atom indices default to the array position. Bond orders default to 1.
// Neighbor lists are derived from the bonds unless at least one atom
// carries its own.
//
// ReadJSON returns an INVALID_FORMAT error for malformed JSON and an
// INVALID_ATOM, INVALID_BOND or INVALID_INPUT error for structural
// problems. Structural errors wrap the molgraph sentinel errors, so
// errors.Is(err, molgraph.ErrUnknownAtom) and friends work.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*molgraph.Graph, error) {
	var d document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON")
	}
	return d.toGraph()
}

// ReadTOML decodes a TOML molecule document from r. The layout mirrors
// the JSON form, with atoms and bonds as arrays of tables:
//
//	[[atoms]]
//	element = "O"
//	hydrogens = 2
//
// Unknown keys are rejected so typos in hand-written files surface.
func ReadTOML(r io.Reader) (*molgraph.Graph, error) {
	var d document
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
	}
	return d.toGraph()
}

// ImportJSON reads a JSON molecule document from the file at path.
func ImportJSON(path string) (*molgraph.Graph, error) {
	return importFile(path, ReadJSON)
}

// ImportTOML reads a TOML molecule document from the file at path.
func ImportTOML(path string) (*molgraph.Graph, error) {
	return importFile(path, ReadTOML)
}

// Import reads a molecule document, choosing the decoder by file
// extension: .json or .toml.
func Import(path string) (*molgraph.Graph, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ImportJSON(path)
	case ".toml":
		return ImportTOML(path)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported input format: %q (must be .json or .toml)", filepath.Ext(path))
	}
}

func importFile(path string, read func(io.Reader) (*molgraph.Graph, error)) (*molgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	g, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

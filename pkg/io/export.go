package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/molfig/pkg/molgraph"
)

// WriteJSON encodes g as an indented JSON molecule document. The output
// lists every atom index and neighbor list, so it re-imports unchanged
// with [ReadJSON].
func WriteJSON(g *molgraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes g as a TOML molecule document.
func WriteTOML(g *molgraph.Graph, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(fromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *molgraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

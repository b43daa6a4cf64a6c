package io

import (
	"github.com/matzehuels/molfig/pkg/errors"
	"github.com/matzehuels/molfig/pkg/molgraph"
)

type document struct {
	Atoms []atom  `json:"atoms" toml:"atoms"`
	Bonds []bond  `json:"bonds" toml:"bonds"`
	Rings [][]int `json:"rings,omitempty" toml:"rings,omitempty"`
}

type atom struct {
	Index         *int    `json:"index,omitempty" toml:"index,omitempty"`
	Element       string  `json:"element,omitempty" toml:"element,omitempty"`
	X             float64 `json:"x" toml:"x"`
	Y             float64 `json:"y" toml:"y"`
	Hydrogens     int     `json:"hydrogens,omitempty" toml:"hydrogens,omitempty"`
	HydrogenError string  `json:"hydrogen_error,omitempty" toml:"hydrogen_error,omitempty"`
	Charge        int     `json:"charge,omitempty" toml:"charge,omitempty"`
	Radical       int     `json:"radical,omitempty" toml:"radical,omitempty"`
	Neighbors     []int   `json:"neighbors,omitempty" toml:"neighbors,omitempty"`
}

type bond struct {
	Start    int             `json:"start" toml:"start"`
	End      int             `json:"end" toml:"end"`
	Order    molgraph.Order  `json:"order,omitempty" toml:"order,omitempty"`
	Stereo   molgraph.Stereo `json:"stereo,omitempty" toml:"stereo,omitempty"`
	Aromatic bool            `json:"aromatic,omitempty" toml:"aromatic,omitempty"`
}

// toGraph builds and validates a graph from a decoded document. Neighbor
// lists are derived from the bonds when no atom lists any.
func (d *document) toGraph() (*molgraph.Graph, error) {
	if len(d.Atoms) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document has no atoms")
	}

	g := molgraph.New()
	derive := true
	for i, a := range d.Atoms {
		idx := i
		if a.Index != nil {
			idx = *a.Index
		}
		if a.Neighbors != nil {
			derive = false
		}
		err := g.AddAtom(molgraph.Atom{
			Index:       idx,
			Element:     a.Element,
			X:           a.X,
			Y:           a.Y,
			Hydrogens:   a.Hydrogens,
			HydrogenErr: a.HydrogenError,
			Charge:      a.Charge,
			Radical:     a.Radical,
			Neighbors:   a.Neighbors,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidAtom, err, "atom %d", i)
		}
	}
	for i, b := range d.Bonds {
		order := b.Order
		if order == 0 {
			order = molgraph.OrderSingle
		}
		err := g.AddBond(molgraph.Bond{
			Start:    b.Start,
			End:      b.End,
			Order:    order,
			Stereo:   b.Stereo,
			Aromatic: b.Aromatic,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBond, err, "bond %d (%d-%d)", i, b.Start, b.End)
		}
	}
	for i, r := range d.Rings {
		if err := g.AddRing(r); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "ring %d", i)
		}
	}

	if derive {
		g.DeriveNeighbors()
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid molecule")
	}
	return g, nil
}

// fromGraph converts a graph into its document form.
func fromGraph(g *molgraph.Graph) document {
	d := document{
		Atoms: make([]atom, len(g.Atoms)),
		Bonds: make([]bond, len(g.Bonds)),
	}
	for i, a := range g.Atoms {
		idx := a.Index
		d.Atoms[i] = atom{
			Index:         &idx,
			Element:       a.Element,
			X:             a.X,
			Y:             a.Y,
			Hydrogens:     a.Hydrogens,
			HydrogenError: a.HydrogenErr,
			Charge:        a.Charge,
			Radical:       a.Radical,
			Neighbors:     a.Neighbors,
		}
	}
	for i, b := range g.Bonds {
		d.Bonds[i] = bond{Start: b.Start, End: b.End, Order: b.Order, Stereo: b.Stereo, Aromatic: b.Aromatic}
	}
	for _, r := range g.Rings {
		d.Rings = append(d.Rings, []int(r))
	}
	return d
}

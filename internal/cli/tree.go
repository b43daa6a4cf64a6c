package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/molfig/pkg/chemfig"
)

// treeCommand prints the bond tree that the chemfig code is generated from.
func (c *CLI) treeCommand() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Show the bond tree of a molecule",
		Long: `Show the bond tree the chemfig code is generated from.

The trunk runs from the entry to the exit atom and is rendered inline; every
other subtree becomes a parenthesized branch. Ring closures point back to an
atom that was already drawn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			opts.Logger = c.Logger
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			g, err := runner.Decode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			m, err := runner.Build(cmd.Context(), g, opts)
			if err != nil {
				return err
			}
			return printTree(cmd.OutOrStdout(), m)
		},
	}

	flags.register(cmd, false)
	return cmd
}

// printTree writes m's bond tree using lipgloss/tree.
func printTree(w io.Writer, m *chemfig.Molecule) error {
	_, err := fmt.Fprintln(w, bondTree(m).String())
	return err
}

// bondTree converts the molecule's bond tree into a lipgloss tree. Walk
// visits in pre-order, so the parent of a node at depth d is the last node
// seen at depth d-1.
func bondTree(m *chemfig.Molecule) *tree.Tree {
	var stack []*tree.Tree
	exit := m.ExitBond()

	m.Walk(func(b *chemfig.Bond, depth int) bool {
		node := tree.Root(bondLabel(b, b == exit)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(StyleDim)
		stack = append(stack[:depth], node)
		if depth > 0 {
			stack[depth-1].Child(node)
		}
		return true
	})
	return stack[0]
}

// bondLabel describes one tree node: the bond drawn and the atom it reaches.
func bondLabel(b *chemfig.Bond, exit bool) string {
	var tags []string
	var text string

	switch b.Variant {
	case chemfig.VariantRoot:
		text = atomName(b.End)
		tags = append(tags, "entry")
	case chemfig.VariantRingCircle:
		text = "○ aromatic circle"
	default:
		text = bondSymbol(b.Kind) + " " + atomName(b.End)
		if b.Kind != chemfig.KindSingle {
			tags = append(tags, string(b.Kind))
		}
		tags = append(tags, strconv.FormatFloat(math.Round(b.Angle*10)/10, 'f', -1, 64)+"°")
		if b.ToPhantom {
			tags = append(tags, "ring closure")
		}
		if b.IsTrunk {
			tags = append(tags, "trunk")
		}
	}
	if exit {
		tags = append(tags, "exit")
	}
	if len(tags) == 0 {
		return text
	}
	return text + " " + StyleDim.Render("("+strings.Join(tags, ", ")+")")
}

func atomName(a *chemfig.Atom) string {
	return elementStyle(a.Element).Render(a.Element) + StyleNumber.Render(strconv.Itoa(a.Number()))
}

// bondSymbol mirrors the chemfig bond characters.
func bondSymbol(kind chemfig.BondKind) string {
	switch kind {
	case chemfig.KindDouble:
		return "="
	case chemfig.KindTriple:
		return "≡"
	case chemfig.KindAromatic:
		return "⇢"
	case chemfig.KindLink:
		return "·"
	case chemfig.KindUpTo, chemfig.KindUpFrom, chemfig.KindDownTo, chemfig.KindDownFrom, chemfig.KindEither:
		return ">"
	default:
		return "-"
	}
}

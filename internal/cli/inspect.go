package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/molfig/pkg/chemfig"
	"github.com/matzehuels/molfig/pkg/pipeline"
)

// atomHeaders are the columns of the atom table.
var atomHeaders = []string{"#", "Element", "X", "Y", "H", "Charge", "Bonded to", "H side", "Role"}

// atomRow is one atom as shown by inspect and the picker.
type atomRow struct {
	Number    int
	Element   string
	X, Y      float64
	Hydrogens int
	Charge    int
	Neighbors int
	Bonded    string
	Quadrant  string
	Role      string
}

func (r atomRow) cells() []string {
	charge := ""
	if r.Charge != 0 {
		charge = fmt.Sprintf("%+d", r.Charge)
	}
	role := r.Role
	if role != "" {
		role = StyleWarning.Render(role)
	}
	return []string{
		strconv.Itoa(r.Number),
		r.Element,
		strconv.FormatFloat(r.X, 'f', 3, 64),
		strconv.FormatFloat(r.Y, 'f', 3, 64),
		strconv.Itoa(r.Hydrogens),
		charge,
		r.Bonded,
		r.Quadrant,
		role,
	}
}

// atomRows lists m's atoms in input order. Coordinates are the ones the
// code was generated from, with flips applied.
func atomRows(m *chemfig.Molecule) []atomRow {
	rows := make([]atomRow, 0, len(m.Atoms()))
	for _, a := range m.Atoms() {
		bonded := make([]string, len(a.Neighbors))
		for i, n := range a.Neighbors {
			bonded[i] = strconv.Itoa(n + 1)
		}
		var roles []string
		if a == m.Entry() {
			roles = append(roles, "entry")
		}
		if a == m.Exit() {
			roles = append(roles, "exit")
		}
		rows = append(rows, atomRow{
			Number:    a.Number(),
			Element:   a.Element,
			X:         a.X,
			Y:         a.Y,
			Hydrogens: a.Hydrogens,
			Charge:    a.Charge,
			Neighbors: len(a.Neighbors),
			Bonded:    strings.Join(bonded, " "),
			Quadrant:  string(a.FirstQuadrant),
			Role:      strings.Join(roles, ", "),
		})
	}
	return rows
}

// atomTable renders rows as a lipgloss table.
func atomTable(rows []atomRow) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.cells()
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(atomHeaders...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case rows[row].Role != "":
				return style.Foreground(colorYellow)
			case col == 1:
				return style.Inherit(elementStyle(rows[row].Element))
			case col == 0:
				return style.Foreground(colorCyan)
			}
			return style
		}).
		Render()
}

// inspectCommand lists the atoms of a molecule, and with --pick lets the
// user choose entry and exit atoms interactively.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags optionFlags
	var pick bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "List the atoms of a molecule",
		Long: `List the atoms of a molecule with their numbers, coordinates, hydrogens and
the side their hydrogens are drawn on.

Atom numbers are the ones accepted by --entry, --exit and --cross-bonds. With
--pick, choose the entry and exit atoms interactively and print the code.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runInspect(cmd, args[0], opts, pick)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "choose entry and exit atoms interactively")
	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, input string, opts pipeline.Options, pick bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	g, err := runner.Decode(ctx, input)
	if err != nil {
		return err
	}
	m, err := runner.Build(ctx, g, opts)
	if err != nil {
		return err
	}

	if !pick {
		return printInspect(out, m)
	}

	model, err := tea.NewProgram(NewAtomPickerModel(atomRows(m)), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("atom picker: %w", err)
	}
	picked := model.(AtomPickerModel)
	if picked.Cancelled {
		printInfo("No atoms selected")
		return nil
	}

	opts = withSelection(opts, picked.Selection)
	m, err = runner.Build(ctx, g, opts)
	if err != nil {
		return err
	}
	artifacts, err := pipeline.Render(m, opts)
	if err != nil {
		return err
	}

	printSuccess("Entry atom %d, exit atom %d", m.Entry().Number(), exitNumber(m))
	printDetail("flags: %s", selectionFlags(picked.Selection))
	_, err = fmt.Fprintln(out, string(artifacts[pipeline.FormatTeX]))
	return err
}

// printInspect writes a summary line and the atom table.
func printInspect(w io.Writer, m *chemfig.Molecule) error {
	width, height := m.Dimensions()
	g := m.Graph()
	summary := fmt.Sprintf("%s atoms · %s bonds · %s rings · %s × %s",
		StyleNumber.Render(strconv.Itoa(len(g.Atoms))),
		StyleNumber.Render(strconv.Itoa(len(g.Bonds))),
		StyleNumber.Render(strconv.Itoa(len(g.Rings))),
		StyleHighlight.Render(strconv.FormatFloat(width, 'f', 3, 64)),
		StyleHighlight.Render(strconv.FormatFloat(height, 'f', 3, 64)))
	_, err := fmt.Fprintf(w, "%s\n%s\n", summary, atomTable(atomRows(m)))
	return err
}

// withSelection applies a picker result. Entry and exit are validated
// again by the build, so a stale selection fails with INVALID_ATOM.
func withSelection(opts pipeline.Options, sel AtomSelection) pipeline.Options {
	opts.EntryAtom = sel.Entry
	opts.ExitAtom = sel.Exit
	opts.Formats = []string{pipeline.FormatTeX}
	return opts
}

func exitNumber(m *chemfig.Molecule) int {
	if a := m.Exit(); a != nil {
		return a.Number()
	}
	return m.Entry().Number()
}

// selectionFlags renders the flags that reproduce a selection.
func selectionFlags(sel AtomSelection) string {
	var parts []string
	if sel.Entry != 0 {
		parts = append(parts, "--entry "+strconv.Itoa(sel.Entry))
	}
	if sel.Exit != 0 {
		parts = append(parts, "--exit "+strconv.Itoa(sel.Exit))
	}
	if len(parts) == 0 {
		return "(none, automatic)"
	}
	return strings.Join(parts, " ")
}

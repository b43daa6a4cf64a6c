package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listPickedStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// AtomPickerModel - Interactive entry/exit atom selection
// =============================================================================

// pickStep is the atom the picker is currently asking for.
type pickStep int

const (
	pickEntry pickStep = iota
	pickExit
	pickDone
)

// AtomSelection holds the chosen atoms as 1-based numbers; 0 means the
// choice was left to the automatic rule.
type AtomSelection struct {
	Entry int
	Exit  int
}

// AtomPickerModel is the bubbletea model that asks for an entry atom and
// then an exit atom.
type AtomPickerModel struct {
	Rows      []atomRow
	Cursor    int
	Offset    int
	Height    int
	Step      pickStep
	Selection AtomSelection
	Cancelled bool
}

// NewAtomPickerModel creates a picker over rows.
func NewAtomPickerModel(rows []atomRow) AtomPickerModel {
	return AtomPickerModel{Rows: rows, Height: 15}
}

func (m AtomPickerModel) Init() tea.Cmd {
	return nil
}

func (m AtomPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "a":
			return m.choose(0)
		case "enter":
			return m.choose(m.Rows[m.Cursor].Number)
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// choose records number for the current step; 0 keeps the automatic choice.
func (m AtomPickerModel) choose(number int) (tea.Model, tea.Cmd) {
	switch m.Step {
	case pickEntry:
		m.Selection.Entry = number
		m.Step = pickExit
		return m, nil
	case pickExit:
		if number != 0 && number == m.Selection.Entry {
			return m, nil
		}
		m.Selection.Exit = number
		m.Step = pickDone
	}
	return m, tea.Quit
}

func (m AtomPickerModel) View() string {
	var b strings.Builder

	title := "Select Entry Atom"
	if m.Step != pickEntry {
		title = "Select Exit Atom"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  a automatic  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, m.Rows[i].cells()...))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(append([]string{""}, atomHeaders...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case m.Rows[idx].Number == m.Selection.Entry:
				return listPickedStyle
			case m.Rows[idx].Neighbors > 1:
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	status := fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))
	if m.Step == pickExit {
		entry := "automatic"
		if m.Selection.Entry != 0 {
			entry = fmt.Sprintf("atom %d", m.Selection.Entry)
		}
		status += "  entry: " + entry
	}
	b.WriteString(listDimStyle.Render(status))

	return b.String()
}

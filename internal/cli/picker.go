package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/maxclique/pkg/suite"
)

// errPickAborted is returned when the user quits the picker.
var errPickAborted = errors.New("instance selection aborted")

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// InstancePickerModel - Interactive instance selection
// =============================================================================

// InstancePickerModel is the bubbletea model for choosing which suite
// instances to run.
type InstancePickerModel struct {
	Instances []suite.Instance
	Cursor    int
	Offset    int
	Height    int
	Chosen    map[int]bool
	Confirmed bool
}

// NewInstancePickerModel creates a picker with nothing chosen.
func NewInstancePickerModel(instances []suite.Instance) InstancePickerModel {
	return InstancePickerModel{
		Instances: instances,
		Height:    15,
		Chosen:    make(map[int]bool),
	}
}

func (m InstancePickerModel) Init() tea.Cmd {
	return nil
}

func (m InstancePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Instances)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			m.Chosen[m.Cursor] = !m.Chosen[m.Cursor]
		case "a":
			all := len(m.Selected()) < len(m.Instances)
			for i := range m.Instances {
				m.Chosen[i] = all
			}
		case "enter":
			if len(m.Instances) == 0 {
				return m, tea.Quit
			}
			if len(m.Selected()) == 0 {
				m.Chosen[m.Cursor] = true
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

// Selected returns the chosen instance names in suite order.
func (m InstancePickerModel) Selected() []string {
	var names []string
	for i, in := range m.Instances {
		if m.Chosen[i] {
			names = append(names, in.Name)
		}
	}
	return names
}

func (m InstancePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Instances"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ run  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Instances))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		in := m.Instances[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Chosen[i] {
			mark = "[" + iconSuccess + "]"
		}
		best := "-"
		if in.KnownBest > 0 {
			best = fmt.Sprint(in.KnownBest)
		}
		rows = append(rows, []string{cursor, mark, in.Name, in.File, best})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Instance", "File", "Best").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			base := lipgloss.NewStyle()
			switch {
			case idx == m.Cursor && m.Chosen[idx]:
				return base.Foreground(colorGreen).Bold(true)
			case idx == m.Cursor:
				return base.Foreground(colorCyan).Bold(true)
			case m.Chosen[idx]:
				return base.Foreground(colorGreen)
			case col == 3:
				return base.Foreground(colorDim)
			default:
				return base.Foreground(colorWhite)
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected", m.Cursor+1, len(m.Instances), len(m.Selected()))))

	return b.String()
}

// pickInstances runs the picker on stderr and returns the chosen names.
func pickInstances(s *suite.Suite) ([]string, error) {
	p := tea.NewProgram(NewInstancePickerModel(s.Instances), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}
	m, ok := final.(InstancePickerModel)
	if !ok || !m.Confirmed {
		return nil, errPickAborted
	}
	return m.Selected(), nil
}

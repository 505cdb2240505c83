// Package review implements the interactive terminal review flow: pick a
// source, fetch its postings, and browse everything against what is new.
package review

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobtrack/internal/config"
)

var (
	pickerTitle  = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(1, 0, 1, 2)
	pickerRow    = lipgloss.NewStyle().Padding(0, 0, 0, 4)
	pickerCursor = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 0, 0, 2)
	pickerHint   = lipgloss.NewStyle().Foreground(dimmed).Padding(1, 0, 0, 2)
)

const (
	pickQuit = -2
	pickNone = -1
)

type pickerModel struct {
	rows   []string
	cursor int
	chosen int
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		m.chosen = pickQuit
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.rows)-1)
	case "enter":
		m.chosen = m.cursor
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitle.Render("Posting Review — Select a source"))
	b.WriteByte('\n')

	for i, label := range m.rows {
		if i == m.cursor {
			b.WriteString(pickerCursor.Render("> " + label))
		} else {
			b.WriteString(pickerRow.Render(label))
		}
		b.WriteByte('\n')
	}

	b.WriteString(pickerHint.Render("↑/↓/j/k navigate  enter select  q quit"))
	return b.String()
}

// RunSourcePicker shows an interactive source selector. Row 0 is a combined
// "All sources" entry; row i selects sources[i-1]. Returns the chosen row,
// or a negative value if the user quit.
func RunSourcePicker(sources []config.SourceConfig) (int, error) {
	rows := make([]string, 0, len(sources)+1)
	rows = append(rows, "All sources")
	for _, src := range sources {
		rows = append(rows, src.Name+" ("+src.Kind.String()+")")
	}

	m := pickerModel{rows: rows, chosen: pickNone}

	p := tea.NewProgram(m)
	out, err := p.Run()
	if err != nil {
		return pickNone, err
	}
	return out.(pickerModel).chosen, nil
}

package review

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobtrack/internal/model"
)

// fetchTimeout bounds one interactive fetch, generous enough for the
// combined all-sources pull.
const fetchTimeout = 2 * time.Minute

type fetchDoneMsg struct {
	postings []model.Posting
	err      error
}

type loaderModel struct {
	label   string
	fetchFn func(ctx context.Context) ([]model.Posting, error)
	spin    spinner.Model
	result  []model.Posting
	err     error
	done    bool
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.spin.Tick)
}

func (m loaderModel) fetch() tea.Cmd {
	fetchFn := m.fetchFn
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		postings, err := fetchFn(ctx)
		return fetchDoneMsg{postings: postings, err: err}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		m.result = msg.postings
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = fmt.Errorf("fetch interrupted")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s Fetching postings from %s...\n", m.spin.View(), m.label)
}

// RunLoader drives fetchFn while a spinner animates next to label. Inline
// render, not the alt screen, so the picker stays visible above it.
func RunLoader(label string, fetchFn func(ctx context.Context) ([]model.Posting, error)) ([]model.Posting, error) {
	m := loaderModel{
		label:   label,
		fetchFn: fetchFn,
		spin: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(accent)),
		),
	}

	p := tea.NewProgram(m)
	out, err := p.Run()
	if err != nil {
		return nil, err
	}
	lm := out.(loaderModel)
	return lm.result, lm.err
}

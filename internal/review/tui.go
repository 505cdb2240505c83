package review

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobtrack/internal/model"
)

// Rows per posting in a pane: title, meta line, blank separator.
const linesPerItem = 3

type uiMode int

const (
	modeList uiMode = iota
	modeDetail
)

// Shared palette for the review screens.
var (
	accent    = lipgloss.Color("36")
	dimmed    = lipgloss.Color("240")
	bright    = lipgloss.Color("231")
	faint     = lipgloss.Color("245")
	highlight = lipgloss.Color("30")
)

var (
	borderActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent)

	borderIdle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimmed)

	titleActive = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(accent)
	titleIdle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(dimmed)

	statusStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("235"))

	itemTitleStyle = lipgloss.NewStyle().Bold(true)
	itemMetaStyle  = lipgloss.NewStyle().Foreground(faint)

	cursorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(bright).Background(highlight)
	cursorMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(highlight)

	labelStyle       = lipgloss.NewStyle().Bold(true).Foreground(accent).Width(14)
	screenTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(bright).MarginBottom(1)
)

// pane is one scrollable posting list, either all postings or only new ones.
type pane struct {
	title    string
	postings []model.Posting
	vp       viewport.Model
	cursor   int
}

func (pn *pane) scrollToCursor() {
	top := pn.cursor * linesPerItem
	bottom := top + linesPerItem - 1
	if top < pn.vp.YOffset {
		pn.vp.SetYOffset(top)
	} else if bottom >= pn.vp.YOffset+pn.vp.Height {
		pn.vp.SetYOffset(bottom - pn.vp.Height + 1)
	}
}

type reviewModel struct {
	panes  [2]pane
	focus  int // index into panes
	newIDs map[string]struct{}

	width  int
	height int
	ready  bool

	mode     uiMode
	detail   model.Posting
	detailVP viewport.Model

	wantQuit bool
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		if m.mode == modeDetail {
			m.detailVP.Width = m.width - 4
			m.detailVP.Height = m.height - 4
			m.detailVP.SetContent(m.detailBody())
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeDetail {
			return m.detailKeys(msg)
		}
		return m.listKeys(msg)
	}

	return m, nil
}

func (m reviewModel) listKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "b":
		return m, tea.Quit
	case "tab", "left", "right":
		m.focus = 1 - m.focus
		m.refresh()
		return m, nil
	case "up", "k":
		m.move(-1)
		return m, nil
	case "down", "j":
		m.move(1)
		return m, nil
	case "enter":
		return m.inspect()
	}

	// Everything else (pgup, pgdn, home, end) scrolls the focused pane.
	var cmd tea.Cmd
	m.panes[m.focus].vp, cmd = m.panes[m.focus].vp.Update(msg)
	return m, cmd
}

func (m reviewModel) detailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = modeList
		return m, nil
	case "o":
		if m.detail.URL != "" {
			openURL(m.detail.URL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailVP, cmd = m.detailVP.Update(msg)
	return m, cmd
}

func (m *reviewModel) move(delta int) {
	pn := &m.panes[m.focus]
	pn.cursor = min(max(pn.cursor+delta, 0), max(len(pn.postings)-1, 0))
	m.refresh()
	pn.scrollToCursor()
}

func (m reviewModel) inspect() (tea.Model, tea.Cmd) {
	pn := m.panes[m.focus]
	if len(pn.postings) == 0 {
		return m, nil
	}

	m.mode = modeDetail
	m.detail = pn.postings[pn.cursor]
	m.detailVP = viewport.New(m.width-4, m.height-4)
	m.detailVP.SetContent(m.detailBody())
	return m, nil
}

func (m *reviewModel) layout() {
	// Two bordered panes side by side with a one-column gap.
	w := max((m.width-5)/2, 20)
	// Pane titles, borders and the status bar take four rows.
	h := max(m.height-4, 5)

	for i := range m.panes {
		if !m.ready {
			m.panes[i].vp = viewport.New(w, h)
		} else {
			m.panes[i].vp.Width = w
			m.panes[i].vp.Height = h
		}
	}
	m.ready = true
	m.refresh()
}

func (m *reviewModel) refresh() {
	for i := range m.panes {
		m.panes[i].vp.SetContent(renderItems(m.panes[i].postings, m.panes[i].cursor, i == m.focus))
	}
}

func (m reviewModel) View() string {
	if !m.ready {
		return "loading postings..."
	}
	if m.mode == modeDetail {
		return m.detailScreen()
	}
	return m.listScreen()
}

func (m reviewModel) listScreen() string {
	w := m.panes[0].vp.Width

	var titles, bodies [2]string
	for i, pn := range m.panes {
		label := fmt.Sprintf(" %s (%d)", pn.title, len(pn.postings))
		title, border := titleIdle, borderIdle
		if i == m.focus {
			title, border = titleActive, borderActive
		}
		titles[i] = lipgloss.NewStyle().Width(w + 2).Render(title.Render(label))
		bodies[i] = border.Width(w).Render(pn.vp.View())
	}

	head := lipgloss.JoinHorizontal(lipgloss.Top, titles[0], " ", titles[1])
	body := lipgloss.JoinHorizontal(lipgloss.Top, bodies[0], " ", bodies[1])

	all, fresh := m.panes[0].postings, m.panes[1].postings
	status := fmt.Sprintf(" %d total | %d new | %d previously seen    ←/→/Tab switch  ↑/↓ cursor  Enter detail  Esc back  q quit",
		len(all), len(fresh), len(all)-len(fresh))

	return head + "\n" + body + "\n" + statusStyle.Width(m.width).Render(status)
}

func (m reviewModel) detailScreen() string {
	head := screenTitleStyle.Render("Posting Details")
	body := borderActive.Width(m.width - 2).Render(m.detailVP.View())
	status := " o open URL  esc/backspace back  ↑/↓ scroll  q quit"
	return head + "\n" + body + "\n" + statusStyle.Width(m.width).Render(status)
}

func (m reviewModel) detailBody() string {
	p := m.detail

	seen := "previously seen"
	if _, ok := m.newIDs[p.ID]; ok {
		seen = "new this cycle"
	}

	rows := []struct{ label, value string }{
		{"Title", p.Title},
		{"Company", p.Company},
		{"Location", p.Location},
		{"Posting ID", p.ID},
		{"Source", p.Source},
		{"Status", seen},
	}

	var b strings.Builder
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		b.WriteString(labelStyle.Render(row.label))
		b.WriteString(row.value)
		b.WriteByte('\n')
	}
	if p.URL != "" {
		b.WriteByte('\n')
		b.WriteString(labelStyle.Render("Posting URL"))
		b.WriteString(p.URL)
	}
	return b.String()
}

func renderItems(postings []model.Posting, cursor int, focused bool) string {
	if len(postings) == 0 {
		return "  (no postings)"
	}

	var b strings.Builder
	for i, p := range postings {
		title, meta := itemTitleStyle, itemMetaStyle
		prefix := "  "
		if focused && i == cursor {
			title, meta = cursorTitleStyle, cursorMetaStyle
			prefix = "> "
		}

		fmt.Fprintf(&b, "%s%s\n", prefix, title.Render(p.Title))
		fmt.Fprintf(&b, "%s%s\n", prefix, meta.Render(p.Company+" · "+p.Location+" · "+p.Source))
		if i < len(postings)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// openURL hands url to the platform browser launcher, fire and forget.
func openURL(url string) {
	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name, args = "cmd", []string{"/c", "start"}
	default:
		name = "xdg-open"
	}
	_ = exec.Command(name, append(args, url)...).Start()
}

// RunReviewTUI launches the split-pane review screen, all postings on the
// left and this cycle's new ones on the right, in fetch order. Returns
// wantQuit=true when the user quit outright, false when they backed out
// to the source picker.
func RunReviewTUI(allPostings, newPostings []model.Posting) (bool, error) {
	newIDs := make(map[string]struct{}, len(newPostings))
	for _, p := range newPostings {
		newIDs[p.ID] = struct{}{}
	}

	m := reviewModel{
		panes: [2]pane{
			{title: "All Postings", postings: allPostings},
			{title: "New Postings", postings: newPostings},
		},
		newIDs: newIDs,
	}

	prog := tea.NewProgram(m, tea.WithAltScreen())
	out, err := prog.Run()
	if err != nil {
		return false, err
	}
	return out.(reviewModel).wantQuit, nil
}

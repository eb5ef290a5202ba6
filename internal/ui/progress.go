// Package ui renders live progress of a diag or fix run in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sharplint/internal/driver"
)

// maxRows ограничивает список файлов; завершённые скрываются первыми.
const maxRows = 12

type progressModel struct {
	title   string
	events  <-chan driver.PhaseEvent
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
	failed  int
}

type fileItem struct {
	path   string
	status string
	phase  string
}

type eventMsg driver.PhaseEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file phase
// progress. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.PhaseEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.PhaseEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		model, cmd := m.prog.Update(msg)
		m.prog = model.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	finished := m.finished()
	header := fmt.Sprintf("%s %d/%d", m.title, finished, len(m.items))
	if m.failed > 0 {
		header = fmt.Sprintf("%s, %d failed", header, m.failed)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-4, 20)
	shown := 0
	hideDone := len(m.items) > maxRows
	for _, item := range m.items {
		if hideDone && (item.status == "done" || item.status == "queued") {
			continue
		}
		if shown == maxRows {
			break
		}
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", statusStyled, truncate(item.path, nameWidth))
		shown++
	}
	if hidden := len(m.items) - shown; hideDone && hidden > 0 {
		fmt.Fprintf(&b, "  %12s %d more file(s)\n", "", hidden)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.PhaseEvent) tea.Cmd {
	idx, ok := m.index[ev.Path]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	switch ev.Status {
	case driver.PhaseStart:
		item.phase = ev.Name
		item.status = phaseLabel(ev.Name)
	case driver.PhaseEnd:
		return nil
	case driver.FileDone:
		item.status = "done"
		if ev.Err != nil {
			item.status = "error"
			m.failed++
		}
	}

	total := 0.0
	for _, it := range m.items {
		switch it.status {
		case "done", "error":
			total += 1.0
		default:
			total += progressFromPhase(it.phase)
		}
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func (m *progressModel) finished() int {
	n := 0
	for _, it := range m.items {
		if it.status == "done" || it.status == "error" {
			n++
		}
	}
	return n
}

func progressFromPhase(phase string) float64 {
	switch phase {
	case "parse":
		return 0.2
	case "fix":
		return 0.5
	case "analyze":
		return 0.7
	case "write":
		return 0.9
	default:
		return 0.0
	}
}

func phaseLabel(phase string) string {
	switch phase {
	case "parse":
		return "parsing"
	case "analyze":
		return "analyzing"
	case "fix":
		return "fixing"
	case "write":
		return "writing"
	default:
		return phase
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "queued":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

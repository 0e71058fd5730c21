package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cjsflat/internal/driver"
)

const (
	statusQueued    = "queued"
	statusRewriting = "rewriting"
	statusCached    = "cached"
	statusDone      = "done"
	statusError     = "error"
)

type progressModel struct {
	title     string
	events    <-chan driver.Event
	spinner   spinner.Model
	prog      progress.Model
	items     []fileItem
	index     map[string]int
	phase     string
	finished  int
	width     int
	done      bool
	maxListed int
}

type fileItem struct {
	path   string
	status string
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders rewrite
// progress. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: statusQueued})
		index[file] = i
	}
	return &progressModel{
		title:     title,
		events:    events,
		spinner:   sp,
		prog:      prog,
		items:     items,
		index:     index,
		width:     80,
		maxListed: 20,
	}
}

// ChannelObserver forwards run events to ch. Sends block, so ch should be
// buffered and drained by the progress model.
func ChannelObserver(ch chan<- driver.Event) driver.Observer {
	return func(ev driver.Event) { ch <- ev }
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
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
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s %d/%d", m.title, m.finished, len(m.items))
	if m.phase != "" {
		header = fmt.Sprintf("%s (%s)", header, m.phase)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-16, 20)
	shown := m.items
	if len(m.items) > m.maxListed {
		// завершённые файлы не занимают место в длинных списках
		shown = make([]fileItem, 0, len(m.items)-m.finished)
		for _, item := range m.items {
			if item.status != statusDone && item.status != statusCached {
				shown = append(shown, item)
			}
		}
	}
	for i, item := range shown {
		if i == m.maxListed {
			fmt.Fprintf(&b, "  %12s %d more\n", "", len(shown)-i)
			break
		}
		status := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
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

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	switch ev.Kind {
	case driver.EventPhaseStart:
		m.phase = ev.Phase
		if ev.Phase == "rewrite" {
			for i := range m.items {
				if m.items[i].status == statusQueued {
					m.items[i].status = statusRewriting
				}
			}
		}
		return nil
	case driver.EventPhaseEnd:
		return nil
	}

	idx, ok := m.index[ev.Path]
	if !ok {
		return nil
	}
	if s := m.items[idx].status; s == statusQueued || s == statusRewriting {
		m.finished++
	}
	switch {
	case ev.Failed:
		m.items[idx].status = statusError
	case ev.Cached:
		m.items[idx].status = statusCached
	default:
		m.items[idx].status = statusDone
	}
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case statusDone, statusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case statusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case statusRewriting:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
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
	return runewidth.Truncate(value, width, "...")
}

package ui

import (
	"context"
	"strings"

	"storyviewer/internal/domain/task"
	"storyviewer/internal/viewer"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusPage focusArea = iota
	focusRuns
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	runListWidth  = 42
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	subtitleStyle = lipgloss.NewStyle().Italic(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	audioStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missingStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activeBorder  = lipgloss.Color("62")
)

// runItem adapts a selector option to the bubbles list
type runItem viewer.Option

func (i runItem) Title() string       { return i.Label }
func (i runItem) Description() string { return "" }
func (i runItem) FilterValue() string { return i.Label }

// taskDoneMsg carries a finished task back into the event loop
type taskDoneMsg struct {
	result task.Result
}

// Model is the terminal surface of the viewer. Network work runs as tea.Cmd
// and every result is applied in Update, so the viewer state is only touched
// from the program's event loop.
type Model struct {
	ctx    context.Context
	viewer *viewer.Viewer
	runner *viewer.Runner

	runs  list.Model
	focus focusArea

	width  int
	height int
}

func NewModel(ctx context.Context, v *viewer.Viewer, r *viewer.Runner) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	runs := list.New(nil, delegate, runListWidth, defaultHeight-4)
	runs.Title = "Runs"
	runs.SetShowHelp(false)
	runs.SetShowStatusBar(false)

	return Model{
		ctx:    ctx,
		viewer: v,
		runner: r,
		runs:   runs,
		focus:  focusPage,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

func (m Model) Init() tea.Cmd {
	return m.run(m.viewer.Start())
}

func (m Model) run(t task.Task) tea.Cmd {
	if t == nil {
		return nil
	}
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		return taskDoneMsg{result: runner.Run(ctx, t)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.runs.SetSize(runListWidth, max(msg.Height-4, 3))
		return m, nil

	case taskDoneMsg:
		if msg.result == nil {
			return m, nil
		}
		next := m.viewer.Handle(msg.result)
		syncCmd := m.syncRuns()
		return m, tea.Batch(syncCmd, m.run(next))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.runs, cmd = m.runs.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusRuns && m.runs.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.runs, cmd = m.runs.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.focus == focusPage {
			m.focus = focusRuns
		} else {
			m.focus = focusPage
		}
		return m, nil
	case "r":
		return m, m.run(m.viewer.Catalog.LoadRuns())
	}

	if m.focus == focusRuns {
		if msg.String() == "enter" {
			item, ok := m.runs.SelectedItem().(runItem)
			if !ok {
				return m, nil
			}
			m.focus = focusPage
			return m, m.run(m.viewer.Catalog.Select(item.ID))
		}
		var cmd tea.Cmd
		m.runs, cmd = m.runs.Update(msg)
		return m, cmd
	}

	books := m.viewer.Books
	switch msg.String() {
	case "left", "h", "p":
		books.Previous()
	case "right", "l", "n", " ":
		books.Next()
	case "g", "home":
		books.First()
	case "G", "end":
		books.Last()
	}
	return m, nil
}

// syncRuns mirrors the catalog into the list and highlights the selected run
func (m *Model) syncRuns() tea.Cmd {
	screen := m.viewer.Screen()
	items := make([]list.Item, 0, len(screen.Options))
	selected := 0
	for i, opt := range screen.Options {
		items = append(items, runItem(opt))
		if opt.ID == screen.SelectedRunID {
			selected = i
		}
	}
	cmd := m.runs.SetItems(items)
	if len(items) > 0 {
		m.runs.Select(selected)
	}
	return cmd
}

func (m Model) View() string {
	screen := m.viewer.Screen()

	runsPanel := panelStyle
	pagePanel := panelStyle
	if m.focus == focusRuns {
		runsPanel = runsPanel.BorderForeground(activeBorder)
	} else {
		pagePanel = pagePanel.BorderForeground(activeBorder)
	}

	pageWidth := max(m.width-runListWidth-6, 20)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		runsPanel.Render(m.runs.View()),
		pagePanel.Width(pageWidth).Render(renderPage(screen, pageWidth-2)),
	)

	footer := faintStyle.Render("←/→ page · g/G first/last · tab runs · enter open · r reload · q quit")
	if screen.Status != "" {
		footer = statusStyle.Render(screen.Status) + "\n" + footer
	}
	return body + "\n" + footer
}

func renderPage(screen viewer.Screen, width int) string {
	if !screen.BookVisible {
		return faintStyle.Render("Nothing to show")
	}
	vm := screen.View
	text := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(titleStyle.Render(vm.Title) + "\n")
	if vm.Subtitle != "" {
		b.WriteString(subtitleStyle.Render(vm.Subtitle) + "\n")
	}
	b.WriteString(faintStyle.Render(vm.Languages) + "\n\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(vm.PageTitle) + "  " + faintStyle.Render(vm.Indicator) + "\n")
	if vm.IllustrationURL != "" {
		b.WriteString(faintStyle.Render("🖼 "+vm.IllustrationURL) + "\n")
	}
	b.WriteString("\n" + text.Render(vm.TextPrimary) + "\n")
	b.WriteString(renderAudio(vm.AudioPrimary) + "\n\n")
	b.WriteString(text.Render(vm.TextSecondary) + "\n")
	b.WriteString(renderAudio(vm.AudioSecondary) + "\n\n")

	b.WriteString(navLabel("◀ prev", vm.PrevDisabled) + "   " + navLabel("next ▶", vm.NextDisabled))
	return b.String()
}

// renderAudio shows where the audio lives without fetching it
func renderAudio(slot viewer.AudioSlot) string {
	if !slot.Available {
		return missingStyle.Render(slot.Placeholder)
	}
	return audioStyle.Render("♪ " + slot.URL)
}

func navLabel(label string, disabled bool) string {
	if disabled {
		return faintStyle.Render(label)
	}
	return label
}

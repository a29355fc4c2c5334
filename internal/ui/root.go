// Package ui is the terminal front end. It renders the manager's collections
// and funnels every mutation back through the manager, which owns persistence,
// statistics, and sync.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/todomaster/internal/app"
	"github.com/dori/todomaster/internal/model"
	"github.com/dori/todomaster/internal/ui/theme"
	"github.com/dori/todomaster/internal/ui/views"
)

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView View
	listView    views.ListView
	statsView   views.StatsView
	helpVisible bool

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	theme.Set(theme.Resolve(application.Manager.Theme()))

	return RootModel{
		app:         application,
		keys:        DefaultKeyMap(),
		help:        h,
		currentView: ViewList,
		listView:    views.NewListView(application.Manager).Reload(),
		statsView:   views.NewStatsView(application.Manager).Reload(),
	}
}

// Run starts the TUI event loop. The manager's change callback feeds the
// program so background sync results show up without a keypress.
func Run(application *app.App) error {
	p := tea.NewProgram(NewRootModel(application), tea.WithAltScreen())
	application.Manager.OnChange(func() {
		p.Send(DataChangedMsg{})
	})
	_, err := p.Run()
	return err
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return m.listView.Init()
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header and footer
		contentHeight := m.height - 4
		m.listView = m.listView.SetSize(m.width, contentHeight)
		m.statsView = m.statsView.SetSize(m.width, contentHeight)

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := m.currentView == ViewList && m.listView.IsInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not typing
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if isInputMode {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.ListView):
			m.currentView = ViewList
			m.listView = m.listView.Reload()
			return m, nil
		case key.Matches(msg, m.keys.StatsView):
			m.currentView = ViewStats
			m.statsView = m.statsView.Reload()
			return m, nil

		case key.Matches(msg, m.keys.Sync):
			if !m.app.SyncEnabled() {
				m.statusMsg = "sync is not configured"
				return m, nil
			}
			m.statusMsg = "syncing..."
			return m, m.syncCmd()
		}

	case DataChangedMsg:
		m.listView = m.listView.Reload()
		m.statsView = m.statsView.Reload()
		return m, nil

	case SyncDoneMsg:
		if msg.Err != nil {
			m.errorMsg = fmt.Sprintf("sync failed: %v", msg.Err)
		} else {
			m.statusMsg = "sync complete"
		}
		m.listView = m.listView.Reload()
		m.statsView = m.statsView.Reload()
		return m, nil

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil
	}

	if err, ok := views.ErrorOf(msg); ok {
		m.errorMsg = err.Error()
		return m, nil
	}
	if status, ok := views.StatusOf(msg); ok {
		m.statusMsg = status
		return m, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch m.currentView {
	case ViewList:
		m.listView, cmd = m.listView.Update(msg)
	case ViewStats:
		m.statsView, cmd = m.statsView.Update(msg)
	}
	return m, cmd
}

// syncCmd runs one sync pass off the UI goroutine
func (m RootModel) syncCmd() tea.Cmd {
	mgr := m.app.Manager
	return func() tea.Msg {
		return SyncDoneMsg{Err: mgr.Sync(context.Background())}
	}
}

// cycleTheme flips between light and dark and persists the choice
func (m *RootModel) cycleTheme() {
	next := model.ThemeDark
	if theme.Current.Theme.Name == theme.Dark.Name {
		next = model.ThemeLight
	}
	theme.Set(theme.Resolve(next))
	if err := m.app.Manager.SetTheme(next); err != nil {
		m.errorMsg = err.Error()
		return
	}
	m.statusMsg = fmt.Sprintf("Theme: %s", next)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewList:
			content = m.listView.View()
		case ViewStats:
			content = m.statsView.View()
		}
	}

	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("todomaster")

	sideStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := sideStyle.Render(fmt.Sprintf("[%s]", m.currentView.String()))

	right := sideStyle.Render(fmt.Sprintf("theme: %s", t.Name))
	if m.app.SyncEnabled() {
		if _, inFlight, _ := m.app.Manager.SyncStatus(); inFlight {
			right = sideStyle.Render("⟳ syncing") + right
		}
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders the status and key-hint lines
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles

	hint := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = styles.Error.Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = styles.Info.Render(m.statusMsg)
	}

	var line1, line2 string
	switch m.currentView {
	case ViewList:
		if m.listView.IsInputMode() {
			line1 = hint("enter", "confirm") + sep + hint("esc", "cancel")
		} else {
			line1 = hint("a", "add") + sep +
				hint("tab", "done") + sep +
				hint("d", "del") + sep +
				hint("P", "pin") + sep +
				hint("p", "pomodoro") + sep +
				hint("o", "sort: "+m.listView.SortHint())
			line2 = hint("1/2", "views") + sep +
				hint("s", "sync") + sep +
				hint("ctrl+t", "theme") + sep +
				hint("?", "help")
		}
	case ViewStats:
		line1 = hint("r", "refresh")
		line2 = hint("1/2", "views") + sep +
			hint("ctrl+t", "theme") + sep +
			hint("?", "help")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info).
		MarginTop(1)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(12)
	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	section := func(b *strings.Builder, name string, rows [][]string) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, kv := range rows {
			b.WriteString(keyStyle.Render(kv[0]))
			b.WriteString(descStyle.Render(kv[1]))
			b.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("TodoMaster Help"))
	b.WriteString("\n\n")

	section(&b, "Navigation", [][]string{
		{"↑/k ↓/j", "Navigate up/down"},
		{"g / G", "Go to top/bottom"},
		{"1 / 2", "List / Stats view"},
	})
	section(&b, "Task Actions", [][]string{
		{"a", "Add task (quick-add grammar)"},
		{"tab", "Toggle done/pending"},
		{"d", "Delete task"},
		{"P", "Pin/unpin task"},
		{"p", "Record a completed pomodoro"},
		{"o", "Cycle sort order"},
	})
	section(&b, "System", [][]string{
		{"s", "Sync now"},
		{"ctrl+t", "Toggle light/dark theme"},
		{"q / ctrl+c", "Quit"},
	})

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Quick-add grammar"))
	b.WriteString("\n")
	for _, kv := range [][]string{
		{"@tag", "Attach a tag (created on first use)"},
		{"!high", "Set priority (!low !medium !high)"},
		{"due:fri", "Set due date (today, tomorrow, friday, 2026-01-15)"},
	} {
		b.WriteString(keyStyle.Render(kv[0]))
		b.WriteString(descStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? to close"))
	return b.String()
}

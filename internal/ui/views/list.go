// Package views holds the individual screens composed by the root model.
package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/todomaster/internal/assist"
	"github.com/dori/todomaster/internal/manager"
	"github.com/dori/todomaster/internal/model"
	"github.com/dori/todomaster/internal/ui/theme"
)

var sortOrder = []manager.SortKey{
	manager.SortByDueDate,
	manager.SortByPriority,
	manager.SortByCreationDate,
	manager.SortByTitle,
}

func sortName(key manager.SortKey) string {
	switch key {
	case manager.SortByDueDate:
		return "due date"
	case manager.SortByPriority:
		return "priority"
	case manager.SortByCreationDate:
		return "created"
	default:
		return "title"
	}
}

// ListView is the main task list screen
type ListView struct {
	manager *manager.Manager
	tasks   []model.Task
	cursor  int
	sortKey manager.SortKey

	input     textinput.Model
	inputMode bool

	width  int
	height int
}

// NewListView creates the list view
func NewListView(m *manager.Manager) ListView {
	ti := textinput.New()
	ti.Placeholder = "buy milk @errands !high due:tomorrow"
	ti.CharLimit = 256

	return ListView{
		manager: m,
		sortKey: manager.SortByDueDate,
		input:   ti,
	}
}

// Init loads tasks from the manager
func (v ListView) Init() tea.Cmd {
	return nil
}

// Reload re-reads and re-sorts the task collection
func (v ListView) Reload() ListView {
	v.tasks = v.manager.SortTasks(v.sortKey)
	if v.cursor >= len(v.tasks) {
		v.cursor = len(v.tasks) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	return v
}

// SetSize updates the view dimensions
func (v ListView) SetSize(width, height int) ListView {
	v.width = width
	v.height = height
	v.input.Width = width - 4
	return v
}

// IsInputMode reports whether the quick-add prompt is open
func (v ListView) IsInputMode() bool {
	return v.inputMode
}

// SortHint names the active sort order for the footer
func (v ListView) SortHint() string {
	return sortName(v.sortKey)
}

// Update handles messages
func (v ListView) Update(msg tea.Msg) (ListView, tea.Cmd) {
	if v.inputMode {
		return v.updateInput(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = len(v.tasks) - 1

	case "a":
		v.inputMode = true
		v.input.SetValue("")
		return v, v.input.Focus()

	case "o":
		for i, key := range sortOrder {
			if key == v.sortKey {
				v.sortKey = sortOrder[(i+1)%len(sortOrder)]
				break
			}
		}
		v = v.Reload()

	case "tab":
		if t, ok := v.current(); ok {
			if err := v.manager.ToggleComplete(t.ID); err != nil {
				return v, errCmd(err)
			}
		}
	case "d":
		if t, ok := v.current(); ok {
			if err := v.manager.DeleteTask(t.ID); err != nil {
				return v, errCmd(err)
			}
		}
	case "P":
		if t, ok := v.current(); ok {
			if err := v.manager.TogglePin(t.ID); err != nil {
				return v, errCmd(err)
			}
		}
	case "p":
		if t, ok := v.current(); ok {
			if err := v.manager.RecordPomodoro(t.ID, true); err != nil {
				return v, errCmd(err)
			}
			return v, statusCmd("pomodoro recorded")
		}
	}

	return v, nil
}

func (v ListView) updateInput(msg tea.Msg) (ListView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			v.inputMode = false
			v.input.Blur()
			return v, nil
		case "enter":
			v.inputMode = false
			v.input.Blur()
			return v, v.submit(v.input.Value())
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit parses the quick-add text and creates the task
func (v ListView) submit(text string) tea.Cmd {
	parsed := assist.ParseQuickAdd(text)

	task, err := model.NewTask(parsed.Title)
	if err != nil {
		return errCmd(err)
	}
	task.Priority = parsed.Priority
	task.DueDate = parsed.DueDate

	if err := v.manager.AddTask(task); err != nil {
		return errCmd(err)
	}
	for _, name := range parsed.TagNames {
		if err := v.manager.TagTaskByName(task.ID, name); err != nil {
			return errCmd(err)
		}
	}
	return statusCmd(fmt.Sprintf("added %q", task.Title))
}

func (v ListView) current() (model.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.tasks) {
		return model.Task{}, false
	}
	return v.tasks[v.cursor], true
}

// View renders the task list
func (v ListView) View() string {
	styles := theme.Current.Styles

	if v.inputMode {
		prompt := styles.Title.Render("New task") + "\n" +
			v.input.View() + "\n" +
			styles.Subtle.Render("@tag  !low/!medium/!high  due:tomorrow")
		return prompt
	}

	if len(v.tasks) == 0 {
		return styles.Subtle.Render("  No tasks. Press 'a' to add one.")
	}

	var b strings.Builder
	visible := v.height - 1
	if visible < 1 {
		visible = len(v.tasks)
	}

	start := 0
	if v.cursor >= visible {
		start = v.cursor - visible + 1
	}

	for i := start; i < len(v.tasks) && i < start+visible; i++ {
		b.WriteString(v.renderTask(v.tasks[i], i == v.cursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v ListView) renderTask(t model.Task, selected bool) string {
	styles := theme.Current.Styles

	check := "[ ]"
	if t.IsCompleted {
		check = "[x]"
	}

	marker := lipgloss.NewStyle().
		Foreground(theme.PriorityColor(t.Priority)).
		Render("●")

	title := t.Title
	if t.IsPinned {
		title = "★ " + title
	}

	line := fmt.Sprintf("%s %s %s", check, marker, title)

	if t.Category != nil {
		line += " " + styles.Tag.Render("["+t.Category.Name+"]")
	}
	for _, tag := range t.Tags {
		line += " " + styles.Tag.Render(tag.Name)
	}
	if t.DueDate != nil {
		line += " " + styles.DueDate.Render(t.DueDate.Format("Jan 2"))
	}
	if t.PomodoroCount > 0 {
		line += " " + styles.Subtle.Render(fmt.Sprintf("🍅%d/%d", t.CompletedPomos, t.PomodoroCount))
	}

	switch {
	case selected:
		return styles.TaskSelected.Render(line)
	case t.IsCompleted:
		return styles.TaskDone.Render(line)
	case t.DueDate != nil && !t.IsCompleted && t.DueDate.Before(time.Now()):
		return styles.TaskOverdue.Render(line)
	default:
		return styles.TaskNormal.Render(line)
	}
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return errorMsg{err} }
}

func statusCmd(message string) tea.Cmd {
	return func() tea.Msg { return statusMsg{message} }
}

// The views package keeps its own message types; the root model unwraps
// them through ErrorOf and StatusOf to avoid an import cycle.
type errorMsg struct{ Err error }
type statusMsg struct{ Message string }

// ErrorOf extracts an error from a view message, if it is one
func ErrorOf(msg tea.Msg) (error, bool) {
	if e, ok := msg.(errorMsg); ok {
		return e.Err, true
	}
	return nil, false
}

// StatusOf extracts a status line from a view message, if it is one
func StatusOf(msg tea.Msg) (string, bool) {
	if s, ok := msg.(statusMsg); ok {
		return s.Message, true
	}
	return "", false
}

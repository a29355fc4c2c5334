package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/todomaster/internal/assist"
	"github.com/dori/todomaster/internal/manager"
	"github.com/dori/todomaster/internal/model"
	"github.com/dori/todomaster/internal/ui/theme"
)

// StatsView renders the computed statistics snapshot
type StatsView struct {
	manager *manager.Manager
	stats   model.Statistics

	width  int
	height int
}

// NewStatsView creates the stats view
func NewStatsView(m *manager.Manager) StatsView {
	return StatsView{manager: m}
}

// Init is a no-op; Reload pulls fresh data
func (v StatsView) Init() tea.Cmd {
	return nil
}

// Reload re-reads the statistics snapshot
func (v StatsView) Reload() StatsView {
	v.stats = v.manager.Statistics()
	return v
}

// SetSize updates the view dimensions
func (v StatsView) SetSize(width, height int) StatsView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode is always false; the stats view has no prompts
func (v StatsView) IsInputMode() bool {
	return false
}

// Update handles messages
func (v StatsView) Update(msg tea.Msg) (StatsView, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "r" {
		return v.Reload(), nil
	}
	return v, nil
}

// View renders the statistics panel
func (v StatsView) View() string {
	styles := theme.Current.Styles
	s := v.stats

	var b strings.Builder

	b.WriteString(styles.Title.Render("Statistics"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Total    %d\n", s.TotalTodos))
	b.WriteString(fmt.Sprintf("  Done     %d\n", s.CompletedTodos))
	b.WriteString(fmt.Sprintf("  Pending  %d\n", s.PendingTodos))
	b.WriteString("\n")

	// CompletionRate is already a percentage
	b.WriteString("  Completion   " + bar(s.CompletionRate/100, 20) +
		fmt.Sprintf(" %3.0f%%\n", s.CompletionRate))
	b.WriteString("  Productivity " + bar(s.ProductivityScore/100, 20) +
		fmt.Sprintf(" %3.0f\n", s.ProductivityScore))
	b.WriteString("\n")

	streak := fmt.Sprintf("  Streak: %d day(s)", s.Streak)
	if s.LastCompletionDate != nil {
		streak += styles.Subtle.Render(
			"  (last completion " + s.LastCompletionDate.Format("Jan 2") + ")")
	}
	b.WriteString(streak + "\n")

	if s.AverageMinutes > 0 {
		b.WriteString(fmt.Sprintf("  Average estimate: %.0f min\n", s.AverageMinutes))
	}

	if len(s.TodosByPriority) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Title.Render("  By priority"))
		b.WriteString("\n")
		for _, p := range []model.Priority{
			model.PriorityHigh, model.PriorityMedium, model.PriorityLow, model.PriorityNone,
		} {
			count, ok := s.TodosByPriority[p]
			if !ok || count == 0 {
				continue
			}
			marker := lipgloss.NewStyle().
				Foreground(theme.PriorityColor(p)).
				Render("●")
			b.WriteString(fmt.Sprintf("  %s %-8s %d\n", marker, p.Name(), count))
		}
	}

	if len(s.TodosByCategory) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Title.Render("  By category"))
		b.WriteString("\n")
		names := make([]string, 0, len(s.TodosByCategory))
		for name := range s.TodosByCategory {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(fmt.Sprintf("    %-16s %d\n", name, s.TodosByCategory[name]))
		}
	}

	if ideas := assist.Suggestions(time.Now()); len(ideas) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Subtle.Render("  Ideas: " + strings.Join(ideas, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}

// bar renders a simple unicode progress bar for a 0..1 fraction
func bar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

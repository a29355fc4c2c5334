// Package theme maps the persisted appearance setting to terminal color
// palettes and pre-computed styles.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/todomaster/internal/model"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color

	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	PriorityLow    lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityHigh   lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on a theme
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style

	TaskNormal   lipgloss.Style
	TaskSelected lipgloss.Style
	TaskDone     lipgloss.Style
	TaskOverdue  lipgloss.Style

	Tag     lipgloss.Style
	DueDate lipgloss.Style
	Panel   lipgloss.Style

	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Subtle: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Error: lipgloss.NewStyle().
			Foreground(t.Error),

		Info: lipgloss.NewStyle().
			Foreground(t.Info),

		TaskNormal: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		TaskSelected: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Padding(0, 1),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true).
			Padding(0, 1),

		TaskOverdue: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),

		Tag: lipgloss.NewStyle().
			Foreground(t.Info),

		DueDate: lipgloss.NewStyle().
			Foreground(t.Warning),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Subtle).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Subtle),
	}
}

// Light is the light-background palette
var Light = Theme{
	Name:           "light",
	Background:     lipgloss.Color("#FFFFFF"),
	Foreground:     lipgloss.Color("#1C1C1E"),
	Subtle:         lipgloss.Color("#8E8E93"),
	Highlight:      lipgloss.Color("#D1D1D6"),
	Primary:        lipgloss.Color("#007AFF"),
	Success:        lipgloss.Color("#34C759"),
	Warning:        lipgloss.Color("#FF9500"),
	Error:          lipgloss.Color("#FF3B30"),
	Info:           lipgloss.Color("#5856D6"),
	PriorityLow:    lipgloss.Color("#34C759"),
	PriorityMedium: lipgloss.Color("#FF9500"),
	PriorityHigh:   lipgloss.Color("#FF3B30"),
}

// Dark is the dark-background palette
var Dark = Theme{
	Name:           "dark",
	Background:     lipgloss.Color("#1C1C1E"),
	Foreground:     lipgloss.Color("#F2F2F7"),
	Subtle:         lipgloss.Color("#8E8E93"),
	Highlight:      lipgloss.Color("#3A3A3C"),
	Primary:        lipgloss.Color("#0A84FF"),
	Success:        lipgloss.Color("#30D158"),
	Warning:        lipgloss.Color("#FF9F0A"),
	Error:          lipgloss.Color("#FF453A"),
	Info:           lipgloss.Color("#5E5CE6"),
	PriorityLow:    lipgloss.Color("#30D158"),
	PriorityMedium: lipgloss.Color("#FF9F0A"),
	PriorityHigh:   lipgloss.Color("#FF453A"),
}

// Active holds the current theme and its styles
type Active struct {
	Theme  Theme
	Styles Styles
}

// Current is the active theme. UI code reads it on every render.
var Current = Active{Theme: Dark, Styles: NewStyles(Dark)}

// Set activates a palette
func Set(t Theme) {
	Current = Active{Theme: t, Styles: NewStyles(t)}
}

// Resolve maps the persisted appearance setting to a palette. The system
// setting falls back to dark, which is what most terminals run.
func Resolve(t model.Theme) Theme {
	if t.IsDark() {
		return Dark
	}
	return Light
}

// PriorityColor returns the palette color for a priority marker
func PriorityColor(p model.Priority) lipgloss.Color {
	t := Current.Theme
	switch p {
	case model.PriorityHigh:
		return t.PriorityHigh
	case model.PriorityMedium:
		return t.PriorityMedium
	case model.PriorityLow:
		return t.PriorityLow
	default:
		return t.Subtle
	}
}

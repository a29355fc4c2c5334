package ui

// View represents the current active view
type View int

const (
	ViewList View = iota
	ViewStats
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewList:
		return "List"
	case ViewStats:
		return "Stats"
	default:
		return "Unknown"
	}
}

// Messages for inter-component communication

// DataChangedMsg is sent whenever the manager's collections change, from any
// source: a local mutation, an import, or a background sync pass.
type DataChangedMsg struct{}

// SyncDoneMsg reports the outcome of an explicit sync request
type SyncDoneMsg struct {
	Err error
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

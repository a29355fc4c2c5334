package model

// Snapshot is the full exportable state as one serializable unit. Import
// replaces the entire local state; there is no partial-import path.
type Snapshot struct {
	Todos      []Task     `json:"todos"`
	Categories []Category `json:"categories"`
	Tags       []Tag      `json:"tags"`
	Statistics Statistics `json:"statistics"`
}

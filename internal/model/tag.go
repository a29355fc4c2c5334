package model

import (
	"github.com/google/uuid"
)

// DefaultTagColor is used when a tag arrives from a remote record that only
// carries a name.
const DefaultTagColor = "#000000"

// Tag is a lightweight label attached to tasks. Like Category, a task embeds
// a copy of the tag value; tags on a task are unique by id.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewTag creates a tag with a fresh id
func NewTag(name, color string) Tag {
	return Tag{
		ID:    uuid.New().String(),
		Name:  name,
		Color: color,
	}
}

// Same reports whether two tags are the same logical record (by id)
func (t Tag) Same(other Tag) bool {
	return t.ID == other.ID
}

package model

import (
	"github.com/google/uuid"
)

// Category groups tasks under a named, colored heading.
//
// A task embeds a copy of the category value at assignment time. Editing a
// category in the manager's collection does not retroactively update tasks
// that embedded it; they keep the value they were assigned.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ColorHex string `json:"colorHex"`
	Icon     string `json:"icon"`
}

// ColorOption is a named default color choice for new categories
type ColorOption struct {
	Name string
	Hex  string
}

// DefaultColors are the stock category colors offered by the UI
var DefaultColors = []ColorOption{
	{Name: "Blue", Hex: "#007AFF"},
	{Name: "Green", Hex: "#34C759"},
	{Name: "Orange", Hex: "#FF9500"},
	{Name: "Red", Hex: "#FF3B30"},
	{Name: "Purple", Hex: "#AF52DE"},
	{Name: "Yellow", Hex: "#FFD60A"},
	{Name: "Pink", Hex: "#FF2D55"},
	{Name: "Teal", Hex: "#5AC8FA"},
	{Name: "Indigo", Hex: "#5856D6"},
}

// DefaultCategoryColor is used when a category arrives from a remote record
// that only carries a name.
const DefaultCategoryColor = "#007AFF"

// NewCategory creates a category with a fresh id
func NewCategory(name, colorHex, icon string) Category {
	return Category{
		ID:       uuid.New().String(),
		Name:     name,
		ColorHex: colorHex,
		Icon:     icon,
	}
}

// Same reports whether two categories are the same logical record (by id)
func (c Category) Same(other Category) bool {
	return c.ID == other.ID
}

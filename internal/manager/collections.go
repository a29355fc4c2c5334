package manager

import (
	"github.com/dori/todomaster/internal/model"
	"github.com/dori/todomaster/internal/store"
)

// AddCategory creates a category. The display name is required but not
// necessarily unique.
func (m *Manager) AddCategory(name, colorHex, icon string) (model.Category, error) {
	if name == "" {
		return model.Category{}, ErrEmptyName
	}
	c := model.NewCategory(name, colorHex, icon)

	m.mu.Lock()
	m.categories = append(m.categories, c)
	m.saveLocked(store.KindCategories, m.categories)
	m.mu.Unlock()

	m.notifyChange()
	return c, nil
}

// UpdateCategory replaces a category's fields. Tasks that embedded the old
// value keep it; category is a value copy, not a live reference.
func (m *Manager) UpdateCategory(id, name, colorHex, icon string) error {
	if name == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	found := false
	for i, c := range m.categories {
		if c.ID == id {
			m.categories[i] = model.Category{ID: id, Name: name, ColorHex: colorHex, Icon: icon}
			found = true
			break
		}
	}
	if found {
		m.saveLocked(store.KindCategories, m.categories)
	}
	m.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	m.notifyChange()
	return nil
}

// DeleteCategory removes a category from the collection
func (m *Manager) DeleteCategory(id string) error {
	m.mu.Lock()
	found := false
	for i, c := range m.categories {
		if c.ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			found = true
			break
		}
	}
	if found {
		m.saveLocked(store.KindCategories, m.categories)
	}
	m.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	m.notifyChange()
	return nil
}

// AddTag creates a tag
func (m *Manager) AddTag(name, color string) (model.Tag, error) {
	if name == "" {
		return model.Tag{}, ErrEmptyName
	}
	t := model.NewTag(name, color)

	m.mu.Lock()
	m.tags = append(m.tags, t)
	m.saveLocked(store.KindTags, m.tags)
	m.mu.Unlock()

	m.notifyChange()
	return t, nil
}

// DeleteTag removes a tag from the collection
func (m *Manager) DeleteTag(id string) error {
	m.mu.Lock()
	found := false
	for i, t := range m.tags {
		if t.ID == id {
			m.tags = append(m.tags[:i], m.tags[i+1:]...)
			found = true
			break
		}
	}
	if found {
		m.saveLocked(store.KindTags, m.tags)
	}
	m.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	m.notifyChange()
	return nil
}

// TagTaskByName attaches a tag to a task by name, reusing an existing tag
// whose name matches exactly or creating a new one with the default color.
func (m *Manager) TagTaskByName(taskID, tagName string) error {
	if tagName == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	tag, created := m.getOrCreateTagLocked(tagName)
	if created {
		m.saveLocked(store.KindTags, m.tags)
	}
	m.mu.Unlock()

	return m.mutateTask(taskID, func(t *model.Task) {
		if !t.HasTag(tag.ID) {
			t.Tags = append(t.Tags, tag)
		}
	})
}

// UntagTask removes a tag from a task, leaving the tag collection untouched
func (m *Manager) UntagTask(taskID, tagID string) error {
	return m.mutateTask(taskID, func(t *model.Task) {
		for i, tag := range t.Tags {
			if tag.ID == tagID {
				t.Tags = append(t.Tags[:i], t.Tags[i+1:]...)
				return
			}
		}
	})
}

// SetTheme changes and persists the theme
func (m *Manager) SetTheme(theme model.Theme) error {
	if !theme.Valid() {
		return ErrNotFound
	}
	m.mu.Lock()
	m.theme = theme
	m.saveLocked(store.KindTheme, theme)
	m.mu.Unlock()

	m.notifyChange()
	return nil
}

func (m *Manager) getOrCreateTagLocked(name string) (model.Tag, bool) {
	for _, t := range m.tags {
		if t.Name == name {
			return t, false
		}
	}
	t := model.NewTag(name, model.DefaultTagColor)
	m.tags = append(m.tags, t)
	return t, true
}

package cloud

import (
	"github.com/dori/todomaster/internal/model"
)

// Merge folds a remote task snapshot into the local collection, keyed by id.
//
// Per remote record: unknown ids are inserted; known ids keep the local
// version unless the remote updatedAt is strictly newer, in which case the
// remote record replaces it in place. Local records absent remotely are left
// untouched. Merge is additive and overwriting, never deleting; deletion
// must always be driven by an explicit delete operation.
//
// This is last-writer-wins on wall-clock timestamps and inherits their skew.
func Merge(local, remote []model.Task) []model.Task {
	merged := make([]model.Task, len(local))
	copy(merged, local)

	index := make(map[string]int, len(merged))
	for i, t := range merged {
		index[t.ID] = i
	}

	for _, r := range remote {
		i, ok := index[r.ID]
		if !ok {
			index[r.ID] = len(merged)
			merged = append(merged, r)
			continue
		}
		if r.UpdatedAt.After(merged[i].UpdatedAt) {
			merged[i] = r
		}
	}

	return merged
}

// Resolver turns remote records into local tasks, resolving category and tag
// names against the local collections. An exact name match reuses the
// existing record; otherwise a new one is created with a default appearance
// and remembered, so a name seen twice in one pass yields a single record.
type Resolver struct {
	categories []model.Category
	tags       []model.Tag
}

// NewResolver seeds a resolver with the current local categories and tags
func NewResolver(categories []model.Category, tags []model.Tag) *Resolver {
	r := &Resolver{
		categories: make([]model.Category, len(categories)),
		tags:       make([]model.Tag, len(tags)),
	}
	copy(r.categories, categories)
	copy(r.tags, tags)
	return r
}

// Categories returns the category collection including any created during
// resolution
func (r *Resolver) Categories() []model.Category {
	return r.categories
}

// Tags returns the tag collection including any created during resolution
func (r *Resolver) Tags() []model.Tag {
	return r.tags
}

// Resolve converts remote records into tasks. A record only carries
// lastModified, so both createdAt and updatedAt take that value; fields the
// remote shape does not carry come back at their defaults.
func (r *Resolver) Resolve(records []Record) []model.Task {
	tasks := make([]model.Task, 0, len(records))
	for _, rec := range records {
		t := model.Task{
			ID:          rec.ID,
			Title:       rec.Title,
			Notes:       rec.Notes,
			IsCompleted: rec.IsCompleted,
			Priority:    clampPriority(rec.Priority),
			DueDate:     rec.DueDate,
			CreatedAt:   rec.LastModified,
			UpdatedAt:   rec.LastModified,
			Tags:        []model.Tag{},
		}
		if rec.Category != "" {
			c := r.category(rec.Category)
			t.Category = &c
		}
		for _, name := range rec.Tags {
			t.Tags = append(t.Tags, r.tag(name))
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func (r *Resolver) category(name string) model.Category {
	for _, c := range r.categories {
		if c.Name == name {
			return c
		}
	}
	c := model.NewCategory(name, model.DefaultCategoryColor, "folder")
	r.categories = append(r.categories, c)
	return c
}

func (r *Resolver) tag(name string) model.Tag {
	for _, t := range r.tags {
		if t.Name == name {
			return t
		}
	}
	t := model.NewTag(name, model.DefaultTagColor)
	r.tags = append(r.tags, t)
	return t
}

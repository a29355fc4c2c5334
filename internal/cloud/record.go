// Package cloud talks to the hosted document store and merges its task
// snapshots into the local collection. Merging is last-writer-wins on
// per-record timestamps and never deletes: a record missing remotely stays
// local until an explicit delete says otherwise.
package cloud

import (
	"time"

	"github.com/dori/todomaster/internal/model"
)

// Record is the remote-shaped representation of a task. The remote store
// references categories and tags by name only; resolution back to local
// records happens in the Resolver.
type Record struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Notes        string     `json:"notes"`
	IsCompleted  bool       `json:"isCompleted"`
	Priority     int        `json:"priority"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Category     string     `json:"category,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	LastModified time.Time  `json:"lastModified"`
}

// EncodeTask converts a local task into its remote shape
func EncodeTask(t model.Task) Record {
	r := Record{
		ID:           t.ID,
		Title:        t.Title,
		Notes:        t.Notes,
		IsCompleted:  t.IsCompleted,
		Priority:     int(t.Priority),
		DueDate:      t.DueDate,
		LastModified: t.UpdatedAt,
	}
	if t.Category != nil {
		r.Category = t.Category.Name
	}
	for _, tag := range t.Tags {
		r.Tags = append(r.Tags, tag.Name)
	}
	return r
}

// EncodeTasks converts the whole local collection
func EncodeTasks(tasks []model.Task) []Record {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, EncodeTask(t))
	}
	return records
}

func clampPriority(raw int) model.Priority {
	if raw < int(model.PriorityNone) || raw > int(model.PriorityHigh) {
		return model.PriorityNone
	}
	return model.Priority(raw)
}

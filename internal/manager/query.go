package manager

import (
	"sort"
	"time"

	"github.com/dori/todomaster/internal/model"
)

// Filter is a conjunction of optional criteria; nil fields are not
// constraints. Category and tag match by id.
type Filter struct {
	Priority    *model.Priority
	Category    *model.Category
	Tag         *model.Tag
	IsCompleted *bool
}

// FilterTasks returns the tasks matching every supplied criterion
func (m *Manager) FilterTasks(f Filter) []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Task
	for _, t := range m.tasks {
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		if f.Category != nil && (t.Category == nil || t.Category.ID != f.Category.ID) {
			continue
		}
		if f.Tag != nil && !t.HasTag(f.Tag.ID) {
			continue
		}
		if f.IsCompleted != nil && t.IsCompleted != *f.IsCompleted {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortKey selects the ordering for SortTasks
type SortKey int

const (
	SortByDueDate SortKey = iota
	SortByPriority
	SortByCreationDate
	SortByTitle
)

// SortTasks returns the collection ordered by the given key. Sorting is
// stable on input order; tasks with no due date sort as infinitely far in
// the future, priority sorts high first, creation date newest first, title
// ascending.
func (m *Manager) SortTasks(key SortKey) []model.Task {
	tasks := m.Tasks()

	var distantFuture = time.Unix(1<<62-1, 0)
	dueOf := func(t model.Task) time.Time {
		if t.DueDate == nil {
			return distantFuture
		}
		return *t.DueDate
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		switch key {
		case SortByDueDate:
			return dueOf(tasks[i]).Before(dueOf(tasks[j]))
		case SortByPriority:
			return tasks[i].Priority > tasks[j].Priority
		case SortByCreationDate:
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		default:
			return tasks[i].Title < tasks[j].Title
		}
	})
	return tasks
}

// UpcomingDeadlines returns incomplete tasks due within the next 7 days
func (m *Manager) UpcomingDeadlines() []model.Task {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Task
	for _, t := range m.tasks {
		if !t.IsCompleted && t.DueWithin(now, 7*24*time.Hour) {
			out = append(out, t)
		}
	}
	return out
}

// CompletedToday returns tasks completed with a due date of today
func (m *Manager) CompletedToday() []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Task
	for _, t := range m.tasks {
		if t.IsCompleted && t.IsDueToday() {
			out = append(out, t)
		}
	}
	return out
}

// HighPriorityTasks returns incomplete tasks with high priority
func (m *Manager) HighPriorityTasks() []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Task
	for _, t := range m.tasks {
		if t.Priority == model.PriorityHigh && !t.IsCompleted {
			out = append(out, t)
		}
	}
	return out
}

// CompletionRate returns the completed percentage of the collection, 0-100
func (m *Manager) CompletionRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.tasks) == 0 {
		return 0
	}
	var completed int
	for _, t := range m.tasks {
		if t.IsCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(m.tasks)) * 100
}

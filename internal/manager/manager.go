// Package manager is the sole mutation surface for tasks, categories, and
// tags. Every mutation applies locally first (in-memory collection, slot
// store, statistics recompute) and then fires best-effort side effects:
// reminder scheduling, calendar write-through, and an asynchronous remote
// sync. The caller never blocks on the network for a local mutation.
package manager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dori/todomaster/internal/assist"
	"github.com/dori/todomaster/internal/calendar"
	"github.com/dori/todomaster/internal/cloud"
	"github.com/dori/todomaster/internal/model"
	"github.com/dori/todomaster/internal/notify"
	"github.com/dori/todomaster/internal/stats"
	"github.com/dori/todomaster/internal/store"
)

// ErrNotFound is returned when an operation names an id the collection does
// not contain.
var ErrNotFound = errors.New("no record with that id")

// ErrEmptyName is returned when a category or tag is given an empty name.
var ErrEmptyName = errors.New("name must not be empty")

// ChangeFunc is called after every mutation, outside the manager's lock.
// Rendering layers subscribe to it instead of observing fields directly.
type ChangeFunc func()

// Options wires the manager's collaborators. Store is required; everything
// else is optional and best-effort.
type Options struct {
	Store     *store.Store
	Logger    *slog.Logger
	Remote    cloud.Client    // nil disables sync
	Reminders *notify.Scheduler
	Notifier  *notify.Notifier
	Calendar  calendar.Writer
}

// Manager owns the task, category, and tag collections. All reads return
// copies; all writes replace value records by id.
type Manager struct {
	store     *store.Store
	logger    *slog.Logger
	remote    cloud.Client
	reminders *notify.Scheduler
	notifier  *notify.Notifier
	calendar  calendar.Writer

	mu         sync.Mutex
	tasks      []model.Task
	categories []model.Category
	tags       []model.Tag
	theme      model.Theme
	statistics model.Statistics
	onChange   ChangeFunc

	syncing  atomic.Bool
	syncMu   sync.Mutex
	lastSync time.Time
	syncErr  error
}

// New creates a manager. Call Load to populate it from the store.
func New(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:      opts.Store,
		logger:     logger,
		remote:     opts.Remote,
		reminders:  opts.Reminders,
		notifier:   opts.Notifier,
		calendar:   opts.Calendar,
		theme:      model.ThemeSystem,
		statistics: model.NewStatistics(),
	}
}

// SetCalendar attaches the calendar write-through after construction; the
// calendar client needs an interactive auth flow the manager should not own.
func (m *Manager) SetCalendar(w calendar.Writer) {
	m.mu.Lock()
	m.calendar = w
	m.mu.Unlock()
}

// OnChange registers the collection-changed callback
func (m *Manager) OnChange(fn ChangeFunc) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Load populates the collections from the store and recomputes statistics.
// Missing or corrupt slots come back empty, which is not an error.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Load(store.KindTasks, &m.tasks); err != nil {
		return err
	}
	if err := m.store.Load(store.KindCategories, &m.categories); err != nil {
		return err
	}
	if err := m.store.Load(store.KindTags, &m.tags); err != nil {
		return err
	}
	var theme model.Theme
	if err := m.store.Load(store.KindTheme, &theme); err != nil {
		return err
	}
	if theme.Valid() {
		m.theme = theme
	}
	statistics := model.NewStatistics()
	if err := m.store.Load(store.KindStatistics, &statistics); err != nil {
		return err
	}
	m.statistics = statistics

	m.recomputeLocked()
	return nil
}

// Tasks returns a copy of the task collection
func (m *Manager) Tasks() []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyTasks(m.tasks)
}

// Categories returns a copy of the category collection
func (m *Manager) Categories() []model.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Category, len(m.categories))
	copy(out, m.categories)
	return out
}

// Tags returns a copy of the tag collection
func (m *Manager) Tags() []model.Tag {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Tag, len(m.tags))
	copy(out, m.tags)
	return out
}

// Theme returns the current theme
func (m *Manager) Theme() model.Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme
}

// Statistics returns the current derived metrics
func (m *Manager) Statistics() model.Statistics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statistics
}

// AddTask appends a new task. The task must carry a non-empty title.
func (m *Manager) AddTask(t model.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.tasks = append(m.tasks, t)
	m.persistTasksLocked()
	m.recomputeLocked()
	m.mu.Unlock()

	m.scheduleSideEffects(t)
	m.notifyChange()
	m.kickSync()
	return nil
}

// UpdateTask replaces the record sharing the given task's id with the new
// value and bumps updatedAt.
func (m *Manager) UpdateTask(t model.Task) error {
	if t.Title == "" {
		return model.ErrEmptyTitle
	}

	m.mu.Lock()
	i := m.indexOfLocked(t.ID)
	if i < 0 {
		m.mu.Unlock()
		return ErrNotFound
	}
	old := m.tasks[i]
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = time.Now()
	if err := t.Validate(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.tasks[i] = t
	m.persistTasksLocked()
	m.recomputeLocked()
	m.mu.Unlock()

	m.removeCalendarEvent(old)
	m.scheduleSideEffects(t)
	m.notifyChange()
	m.kickSync()
	return nil
}

// DeleteTask removes a task and cancels its dependent side effects: the
// pending reminder, the calendar event, and the remote record.
func (m *Manager) DeleteTask(id string) error {
	m.mu.Lock()
	i := m.indexOfLocked(id)
	if i < 0 {
		m.mu.Unlock()
		return ErrNotFound
	}
	removed := m.tasks[i]
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	m.persistTasksLocked()
	m.recomputeLocked()
	m.mu.Unlock()

	if m.reminders != nil {
		m.reminders.Cancel(id)
	}
	m.removeCalendarEvent(removed)
	if m.remote != nil {
		go func() {
			if err := m.remote.Delete(context.Background(), id); err != nil {
				m.logger.Warn("remote delete failed",
					slog.String("id", id),
					slog.String("error", err.Error()))
			}
		}()
	}
	m.notifyChange()
	return nil
}

// ToggleComplete flips a task's completion flag
func (m *Manager) ToggleComplete(id string) error {
	return m.mutateTask(id, func(t *model.Task) {
		t.IsCompleted = !t.IsCompleted
	})
}

// TogglePin flips a task's pinned flag
func (m *Manager) TogglePin(id string) error {
	return m.mutateTask(id, func(t *model.Task) {
		t.IsPinned = !t.IsPinned
	})
}

// RecordPomodoro bumps a task's pomodoro counters
func (m *Manager) RecordPomodoro(id string, completed bool) error {
	var title string
	err := m.mutateTask(id, func(t *model.Task) {
		t.PomodoroCount++
		if completed {
			t.CompletedPomos++
		}
		title = t.Title
	})
	if err == nil && completed && m.notifier != nil {
		if nerr := m.notifier.SendPomodoroComplete(title); nerr != nil {
			m.logger.Warn("pomodoro notification failed", slog.String("error", nerr.Error()))
		}
	}
	return err
}

// mutateTask applies fn to the task with the given id, bumps updatedAt,
// persists and recomputes. Used by the small flag-flip operations.
func (m *Manager) mutateTask(id string, fn func(*model.Task)) error {
	m.mu.Lock()
	i := m.indexOfLocked(id)
	if i < 0 {
		m.mu.Unlock()
		return ErrNotFound
	}
	t := m.tasks[i]
	fn(&t)
	t.UpdatedAt = time.Now()
	m.tasks[i] = t
	m.persistTasksLocked()
	m.recomputeLocked()
	m.mu.Unlock()

	m.scheduleSideEffects(t)
	m.notifyChange()
	m.kickSync()
	return nil
}

func (m *Manager) indexOfLocked(id string) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persistTasksLocked writes the task slot. A failed write is logged, never
// surfaced: local mutations do not fail on storage trouble.
func (m *Manager) persistTasksLocked() {
	m.saveLocked(store.KindTasks, m.tasks)
}

// recomputeLocked refreshes statistics from the current collection and
// persists them.
func (m *Manager) recomputeLocked() {
	m.statistics = stats.Compute(m.statistics, m.tasks)
	m.saveLocked(store.KindStatistics, m.statistics)
}

func (m *Manager) saveLocked(kind store.Kind, v any) {
	if err := m.store.Save(kind, v); err != nil {
		m.logger.Warn("dropped failed save",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
	}
}

// scheduleSideEffects arms the reminder and writes the calendar event for a
// task. Both are best effort.
func (m *Manager) scheduleSideEffects(t model.Task) {
	m.armReminder(t)
	if cal := m.calendarWriter(); cal != nil {
		go func() {
			if err := cal.Upsert(context.Background(), t); err != nil {
				m.logger.Warn("calendar write-through failed",
					slog.String("task", t.Title),
					slog.String("error", err.Error()))
			}
		}()
	}
}

// armReminder schedules the reminder for a task. Tasks with a due date but
// no explicit reminder get a derived one.
func (m *Manager) armReminder(t model.Task) {
	if m.reminders == nil {
		return
	}
	if t.ReminderDate == nil && !t.IsCompleted {
		t.ReminderDate = assist.OptimalReminderTime(t)
	}
	m.reminders.Schedule(t)
}

func (m *Manager) removeCalendarEvent(t model.Task) {
	cal := m.calendarWriter()
	if cal == nil {
		return
	}
	go func() {
		if err := cal.Remove(context.Background(), t); err != nil {
			m.logger.Warn("calendar removal failed",
				slog.String("task", t.Title),
				slog.String("error", err.Error()))
		}
	}()
}

func (m *Manager) calendarWriter() calendar.Writer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calendar
}

func (m *Manager) notifyChange() {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func copyTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}

// Export serializes the full state as one human-readable JSON unit
func (m *Manager) Export() ([]byte, error) {
	m.mu.Lock()
	snapshot := model.Snapshot{
		Todos:      copyTasks(m.tasks),
		Categories: append([]model.Category{}, m.categories...),
		Tags:       append([]model.Tag{}, m.tags...),
		Statistics: m.statistics,
	}
	m.mu.Unlock()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// Import replaces the entire local state from an export. All or nothing: a
// malformed export is rejected without touching anything.
func (m *Manager) Import(data []byte) error {
	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("rejecting malformed import: %w", err)
	}

	m.mu.Lock()
	m.tasks = snapshot.Todos
	m.categories = snapshot.Categories
	m.tags = snapshot.Tags
	m.statistics = snapshot.Statistics
	m.persistTasksLocked()
	m.saveLocked(store.KindCategories, m.categories)
	m.saveLocked(store.KindTags, m.tags)
	m.saveLocked(store.KindStatistics, m.statistics)
	m.mu.Unlock()

	// Reminders armed for the replaced collection must not fire; re-arm
	// from the imported tasks instead
	if m.reminders != nil {
		m.reminders.Stop()
		for _, t := range snapshot.Todos {
			m.armReminder(t)
		}
	}

	m.notifyChange()
	return nil
}

// DeleteAllData clears every collection and every persisted slot
func (m *Manager) DeleteAllData() error {
	m.mu.Lock()
	m.tasks = nil
	m.categories = nil
	m.tags = nil
	m.statistics = model.NewStatistics()
	err := m.store.ClearAll()
	m.mu.Unlock()

	if m.reminders != nil {
		m.reminders.Stop()
	}
	m.notifyChange()
	return err
}

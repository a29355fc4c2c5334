package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyTitle is returned when a task is constructed or edited with no title.
var ErrEmptyTitle = errors.New("task title must not be empty")

// Priority represents task priority level, ordered none < low < medium < high
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// Name returns the display name for a priority
func (p Priority) Name() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "None"
	}
}

// Weight returns the productivity-score weight for a priority
func (p Priority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return 1.0
	case PriorityMedium:
		return 0.6
	case PriorityLow:
		return 0.3
	default:
		return 0.1
	}
}

// AttachmentKind classifies an attachment's payload
type AttachmentKind string

const (
	AttachmentImage    AttachmentKind = "image"
	AttachmentDocument AttachmentKind = "document"
	AttachmentAudio    AttachmentKind = "audio"
	AttachmentVideo    AttachmentKind = "video"
)

// Attachment is a binary blob attached to a task
type Attachment struct {
	ID       string         `json:"id"`
	Data     []byte         `json:"data"`
	Filename string         `json:"filename"`
	Kind     AttachmentKind `json:"type"`
}

// Location is an optional geolocation attached to a task
type Location struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// Task is a single to-do record. Tasks are value records: "mutation" means
// replacing the record at an id with a new value through the manager, never
// editing a shared reference in place.
type Task struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Notes            string       `json:"notes"`
	IsCompleted      bool         `json:"isCompleted"`
	DueDate          *time.Time   `json:"dueDate,omitempty"`
	Priority         Priority     `json:"priority"`
	Category         *Category    `json:"category,omitempty"`
	Tags             []Tag        `json:"tags"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
	ReminderDate     *time.Time   `json:"reminderDate,omitempty"`
	IsPinned         bool         `json:"isPinned"`
	EstimatedMinutes *int         `json:"estimatedTime,omitempty"`
	Attachments      []Attachment `json:"attachments"`
	Location         *Location    `json:"location,omitempty"`
	PomodoroCount    int          `json:"pomodoroCount"`
	CompletedPomos   int          `json:"completedPomodoros"`
}

// NewTask creates a task with defaults: no priority, not completed, empty
// collections. The title is required.
func NewTask(title string) (Task, error) {
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	now := time.Now()
	return Task{
		ID:        uuid.New().String(),
		Title:     title,
		Priority:  PriorityNone,
		Tags:      []Tag{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Same reports whether two tasks are the same logical record. Identity is
// defined solely by id; field differences do not matter here.
func (t Task) Same(other Task) bool {
	return t.ID == other.ID
}

// HasTag reports whether the task carries a tag with the given id
func (t Task) HasTag(tagID string) bool {
	for _, tag := range t.Tags {
		if tag.ID == tagID {
			return true
		}
	}
	return false
}

// IsOverdue returns true if the task is past its due date and not done
func (t Task) IsOverdue() bool {
	if t.DueDate == nil || t.IsCompleted {
		return false
	}
	return time.Now().After(*t.DueDate)
}

// IsDueToday returns true if the task is due today
func (t Task) IsDueToday() bool {
	if t.DueDate == nil {
		return false
	}
	now := time.Now()
	return t.DueDate.Year() == now.Year() &&
		t.DueDate.YearDay() == now.YearDay()
}

// DueWithin reports whether the task has a due date on or before now+window
func (t Task) DueWithin(now time.Time, window time.Duration) bool {
	if t.DueDate == nil {
		return false
	}
	return !t.DueDate.After(now.Add(window))
}

// Validate checks the record invariants a task must hold at rest
func (t Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return errors.New("task updatedAt precedes createdAt")
	}
	if t.CompletedPomos > t.PomodoroCount {
		return errors.New("completed pomodoros exceed pomodoro count")
	}
	return nil
}

// Package calendar mirrors tasks into the user's calendar, one event per
// task. The calendar is a write-through side channel: failures are logged by
// the caller and never roll back the local mutation.
package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/dori/todomaster/internal/model"
)

// Writer is the calendar surface the task manager writes through
type Writer interface {
	Upsert(ctx context.Context, task model.Task) error
	Remove(ctx context.Context, task model.Task) error
}

// DecoratedTitle renders the event title for a task: bang markers for
// priority and a [Category] prefix.
func DecoratedTitle(task model.Task) string {
	title := task.Title
	switch task.Priority {
	case model.PriorityHigh:
		title = "!!! " + title
	case model.PriorityMedium:
		title = "!! " + title
	case model.PriorityLow:
		title = "! " + title
	}
	if task.Category != nil {
		title = "[" + task.Category.Name + "] " + title
	}
	return title
}

// GoogleWriter writes task events to a Google Calendar
type GoogleWriter struct {
	srv        *calendar.Service
	calendarID string
}

// NewGoogleWriter creates a writer for the named calendar using an
// authenticated HTTP client (see x/oauth2; token handling belongs to the
// caller's config).
func NewGoogleWriter(ctx context.Context, authed option.ClientOption, calendarName string) (*GoogleWriter, error) {
	srv, err := calendar.NewService(ctx, authed)
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}

	list, err := srv.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list calendars: %w", err)
	}

	var calendarID string
	for _, item := range list.Items {
		if item.Summary == calendarName {
			calendarID = item.Id
			break
		}
	}
	if calendarID == "" {
		return nil, fmt.Errorf("calendar %q not found", calendarName)
	}

	return &GoogleWriter{srv: srv, calendarID: calendarID}, nil
}

// Upsert creates or updates the event for a task, matched through a private
// extended property carrying the task id.
func (w *GoogleWriter) Upsert(ctx context.Context, task model.Task) error {
	event := w.buildEvent(task)

	existing, err := w.findByTaskID(task.ID)
	if err != nil {
		return fmt.Errorf("error searching for event: %w", err)
	}

	if existing != nil {
		_, err = w.srv.Events.Update(w.calendarID, existing.Id, event).Context(ctx).Do()
		return err
	}
	_, err = w.srv.Events.Insert(w.calendarID, event).Context(ctx).Do()
	return err
}

// Remove deletes the events matching a task by title. Title matching is
// unreliable when tasks share a title or were renamed after the event was
// written; Upsert keys by task id, Remove cannot because deleted tasks no
// longer carry their event.
func (w *GoogleWriter) Remove(ctx context.Context, task model.Task) error {
	// Last 30 days through next year
	timeMin := time.Now().AddDate(0, 0, -30).Format(time.RFC3339)
	timeMax := time.Now().AddDate(1, 0, 0).Format(time.RFC3339)

	events, err := w.srv.Events.List(w.calendarID).
		TimeMin(timeMin).TimeMax(timeMax).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to list events for removal: %w", err)
	}

	for _, event := range events.Items {
		if !strings.Contains(event.Summary, task.Title) {
			continue
		}
		if err := w.srv.Events.Delete(w.calendarID, event.Id).Context(ctx).Do(); err != nil {
			return fmt.Errorf("unable to delete event %s: %w", event.Id, err)
		}
	}
	return nil
}

func (w *GoogleWriter) buildEvent(task model.Task) *calendar.Event {
	start := time.Now()
	if task.DueDate != nil {
		start = *task.DueDate
	}
	end := start.Add(time.Hour)

	event := &calendar.Event{
		Summary:     DecoratedTitle(task),
		Description: task.Notes,
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{"todomaster_id": task.ID},
		},
	}

	if task.ReminderDate != nil {
		minutes := int64(start.Sub(*task.ReminderDate).Minutes())
		if minutes > 0 {
			event.Reminders = &calendar.EventReminders{
				UseDefault: false,
				Overrides: []*calendar.EventReminder{
					{Method: "popup", Minutes: minutes},
				},
				ForceSendFields: []string{"UseDefault"},
			}
		}
	}

	return event
}

func (w *GoogleWriter) findByTaskID(taskID string) (*calendar.Event, error) {
	events, err := w.srv.Events.List(w.calendarID).
		PrivateExtendedProperty("todomaster_id=" + taskID).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

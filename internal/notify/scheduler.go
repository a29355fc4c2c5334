package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dori/todomaster/internal/model"
)

// Scheduler fires a desktop reminder at each task's reminderDate. Timers are
// keyed by task id: rescheduling replaces the pending timer, deleting a task
// cancels it. Everything here is best effort and never blocks a mutation.
type Scheduler struct {
	notifier *Notifier
	logger   *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewScheduler creates a reminder scheduler backed by the given notifier
func NewScheduler(notifier *Notifier, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		notifier: notifier,
		logger:   logger,
		timers:   map[string]*time.Timer{},
	}
}

// Schedule arms (or re-arms) the reminder for a task. Tasks without a
// reminder date, with one already in the past, or already completed get any
// pending timer cancelled instead.
func (s *Scheduler) Schedule(task model.Task) {
	s.Cancel(task.ID)

	if task.ReminderDate == nil || task.IsCompleted {
		return
	}
	delay := time.Until(*task.ReminderDate)
	if delay <= 0 {
		return
	}

	title := task.Title
	due := task.DueDate
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[task.ID] = time.AfterFunc(delay, func() {
		var err error
		if due != nil {
			err = s.notifier.SendDueReminder(title, time.Until(*due))
		} else {
			err = s.notifier.SendReminder(title)
		}
		if err != nil {
			s.logger.Warn("reminder notification failed",
				slog.String("task", title),
				slog.String("error", err.Error()))
		}
	})
}

// Pending reports whether a reminder is currently armed for a task id
func (s *Scheduler) Pending(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[taskID]
	return ok
}

// Cancel drops the pending reminder for a task id, if any
func (s *Scheduler) Cancel(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[taskID]; ok {
		timer.Stop()
		delete(s.timers, taskID)
	}
}

// Stop cancels every pending reminder
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

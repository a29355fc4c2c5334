package assist

import (
	"time"

	"github.com/dori/todomaster/internal/model"
)

// Suggestions returns task ideas for the time of day
func Suggestions(now time.Time) []string {
	var suggestions []string
	switch hour := now.Hour(); {
	case hour >= 6 && hour <= 9:
		suggestions = append(suggestions, "Morning routine", "Plan your day")
	case hour >= 12 && hour <= 14:
		suggestions = append(suggestions, "Lunch break", "Afternoon planning")
	case hour >= 17 && hour <= 19:
		suggestions = append(suggestions, "Evening review", "Plan tomorrow")
	}
	return suggestions
}

// PredictCompletionMinutes gives a rough completion estimate from priority.
// Proper prediction needs completion history that is not recorded yet.
func PredictCompletionMinutes(task model.Task) int {
	switch task.Priority {
	case model.PriorityHigh:
		return 60
	case model.PriorityMedium:
		return 120
	case model.PriorityLow:
		return 240
	default:
		return 180
	}
}

// OptimalReminderTime suggests when to remind about a task: an hour before
// the due date, or nothing for tasks without one.
func OptimalReminderTime(task model.Task) *time.Time {
	if task.DueDate == nil {
		return nil
	}
	at := task.DueDate.Add(-time.Hour)
	return &at
}

// WorkSession returns the standard pomodoro work and break lengths
func WorkSession() (work, rest time.Duration) {
	return 25 * time.Minute, 5 * time.Minute
}

// NotificationPriority scores how insistently a task's notification should
// surface, 0 to 1, from urgency of the due date, priority, and completion.
func NotificationPriority(task model.Task, now time.Time) float64 {
	var score float64

	if task.DueDate != nil {
		untilDue := task.DueDate.Sub(now)
		if untilDue < time.Hour {
			score += 1.0
		} else if untilDue < 24*time.Hour {
			score += 0.7
		}
	}

	switch task.Priority {
	case model.PriorityHigh:
		score += 0.8
	case model.PriorityMedium:
		score += 0.5
	case model.PriorityLow:
		score += 0.2
	}

	if !task.IsCompleted {
		score += 0.3
	}

	return min(score, 1.0)
}

// Package stats recomputes derived task metrics. Statistics have no
// incremental update path: every recompute takes the full current collection
// and produces a fresh value, consulting the previous one only for streak
// carry-over.
package stats

import (
	"time"

	"github.com/dori/todomaster/internal/model"
)

// Weights of the productivity score composite
const (
	completionWeight = 0.4
	priorityWeight   = 0.3
	streakWeight     = 0.3
)

// Compute derives a new Statistics value from the task collection.
// prev supplies the running streak and last completion date, which carry
// forward unchanged when the collection has no completed tasks.
func Compute(prev model.Statistics, tasks []model.Task) model.Statistics {
	next := model.NewStatistics()
	next.Streak = prev.Streak
	next.LastCompletionDate = prev.LastCompletionDate

	next.TotalTodos = len(tasks)
	for _, t := range tasks {
		if t.IsCompleted {
			next.CompletedTodos++
		}
		next.TodosByPriority[t.Priority]++
		if t.Category != nil {
			next.TodosByCategory[t.Category.Name]++
		}
	}
	next.PendingTodos = next.TotalTodos - next.CompletedTodos

	if next.TotalTodos > 0 {
		next.CompletionRate = float64(next.CompletedTodos) / float64(next.TotalTodos) * 100
	}

	if latest := latestCompletion(tasks); latest != nil {
		if prev.LastCompletionDate != nil && calendarDaysBetween(*prev.LastCompletionDate, *latest) <= 1 {
			next.Streak = prev.Streak + 1
		} else {
			next.Streak = 1
		}
		next.LastCompletionDate = latest
	}

	streakScore := min(float64(next.Streak)*10, 100)
	next.ProductivityScore = next.CompletionRate*completionWeight +
		priorityScore(tasks)*priorityWeight +
		streakScore*streakWeight

	next.AverageMinutes = averageEstimate(tasks)

	return next
}

// latestCompletion returns the updatedAt of the most recently touched
// completed task, or nil if nothing is completed
func latestCompletion(tasks []model.Task) *time.Time {
	var latest *time.Time
	for _, t := range tasks {
		if !t.IsCompleted {
			continue
		}
		if latest == nil || t.UpdatedAt.After(*latest) {
			u := t.UpdatedAt
			latest = &u
		}
	}
	return latest
}

// priorityScore is the mean priority weight over all tasks, scaled to 0-100
func priorityScore(tasks []model.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	var sum float64
	for _, t := range tasks {
		sum += t.Priority.Weight()
	}
	return sum / float64(len(tasks)) * 100
}

// averageEstimate is the mean estimated duration over completed tasks that
// have one set. Tasks without an estimate are excluded from both the
// numerator and the denominator.
func averageEstimate(tasks []model.Task) float64 {
	var sum float64
	var count int
	for _, t := range tasks {
		if !t.IsCompleted || t.EstimatedMinutes == nil {
			continue
		}
		sum += float64(*t.EstimatedMinutes)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// calendarDaysBetween counts whole calendar days from a to b in local time
func calendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.Local)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.Local)
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}

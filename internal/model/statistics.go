package model

import (
	"time"
)

// Statistics holds metrics derived from the task collection. It is never
// hand-edited: the stats aggregator recomputes the whole value from the
// current collection on every mutation, and the previous value is consulted
// only for streak carry-over.
type Statistics struct {
	TotalTodos         int              `json:"totalTodos"`
	CompletedTodos     int              `json:"completedTodos"`
	PendingTodos       int              `json:"pendingTodos"`
	CompletionRate     float64          `json:"completionRate"`
	Streak             int              `json:"streak"`
	LastCompletionDate *time.Time       `json:"lastCompletionDate,omitempty"`
	TodosByPriority    map[Priority]int `json:"todosByPriority"`
	TodosByCategory    map[string]int   `json:"todosByCategory"`
	ProductivityScore  float64          `json:"productivityScore"`
	AverageMinutes     float64          `json:"averageCompletionTime"`
}

// NewStatistics returns a zero statistics value with allocated tallies
func NewStatistics() Statistics {
	return Statistics{
		TodosByPriority: map[Priority]int{},
		TodosByCategory: map[string]int{},
	}
}

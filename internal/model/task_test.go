package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskDefaults(t *testing.T) {
	task, err := NewTask("write report")
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "write report", task.Title)
	assert.Equal(t, PriorityNone, task.Priority)
	assert.False(t, task.IsCompleted)
	assert.Nil(t, task.DueDate)
	assert.NotNil(t, task.Tags)
	assert.True(t, task.UpdatedAt.Equal(task.CreatedAt))

	_, err = NewTask("")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestTaskIdentityIgnoresFields(t *testing.T) {
	a, _ := NewTask("one")
	b := a
	b.Title = "renamed"
	b.IsCompleted = true

	assert.True(t, a.Same(b))

	c, _ := NewTask("one")
	assert.False(t, a.Same(c), "equal fields, different ids")
}

func TestTaskOverdue(t *testing.T) {
	task, _ := NewTask("late")
	assert.False(t, task.IsOverdue(), "no due date")

	past := time.Now().Add(-time.Hour)
	task.DueDate = &past
	assert.True(t, task.IsOverdue())

	task.IsCompleted = true
	assert.False(t, task.IsOverdue(), "completed tasks are never overdue")

	task.IsCompleted = false
	future := time.Now().Add(time.Hour)
	task.DueDate = &future
	assert.False(t, task.IsOverdue())
}

func TestTaskDueWithin(t *testing.T) {
	now := time.Now()
	task, _ := NewTask("soon")
	assert.False(t, task.DueWithin(now, 7*24*time.Hour))

	in3d := now.Add(3 * 24 * time.Hour)
	task.DueDate = &in3d
	assert.True(t, task.DueWithin(now, 7*24*time.Hour))
	assert.False(t, task.DueWithin(now, 24*time.Hour))

	// Already-overdue tasks still count as within the window
	past := now.Add(-time.Hour)
	task.DueDate = &past
	assert.True(t, task.DueWithin(now, 24*time.Hour))
}

func TestTaskValidate(t *testing.T) {
	task, _ := NewTask("ok")
	assert.NoError(t, task.Validate())

	bad := task
	bad.UpdatedAt = bad.CreatedAt.Add(-time.Second)
	assert.Error(t, bad.Validate())

	bad = task
	bad.PomodoroCount = 1
	bad.CompletedPomos = 2
	assert.Error(t, bad.Validate())
}

func TestPriorityWeightOrdering(t *testing.T) {
	assert.Greater(t, PriorityHigh.Weight(), PriorityMedium.Weight())
	assert.Greater(t, PriorityMedium.Weight(), PriorityLow.Weight())
	assert.Greater(t, PriorityLow.Weight(), PriorityNone.Weight())
	assert.Equal(t, "High", PriorityHigh.Name())
	assert.Equal(t, "None", PriorityNone.Name())
}

func TestTaskJSONShape(t *testing.T) {
	minutes := 30
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	task, _ := NewTask("shaped")
	task.DueDate = &due
	task.EstimatedMinutes = &minutes
	task.IsPinned = true

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"id", "title", "isCompleted", "dueDate", "priority",
		"createdAt", "updatedAt", "isPinned", "estimatedTime",
		"pomodoroCount", "completedPomodoros",
	} {
		assert.Contains(t, raw, key)
	}

	var back Task
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Same(task))
	assert.Equal(t, task.Title, back.Title)
	require.NotNil(t, back.EstimatedMinutes)
	assert.Equal(t, 30, *back.EstimatedMinutes)
}

func TestThemeValidity(t *testing.T) {
	assert.True(t, ThemeDark.Valid())
	assert.True(t, ThemeSystem.Valid())
	assert.False(t, Theme("sepia").Valid())
	assert.True(t, ThemeDark.IsDark())
	assert.True(t, ThemeSystem.IsDark(), "system falls back to dark in a terminal")
	assert.False(t, ThemeLight.IsDark())
}

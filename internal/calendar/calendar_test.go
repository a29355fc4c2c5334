package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dori/todomaster/internal/model"
)

func TestDecoratedTitle(t *testing.T) {
	task, _ := model.NewTask("file taxes")
	assert.Equal(t, "file taxes", DecoratedTitle(task))

	task.Priority = model.PriorityLow
	assert.Equal(t, "! file taxes", DecoratedTitle(task))

	task.Priority = model.PriorityHigh
	assert.Equal(t, "!!! file taxes", DecoratedTitle(task))

	cat := model.NewCategory("Finance", "#007AFF", "banknote")
	task.Category = &cat
	assert.Equal(t, "[Finance] !!! file taxes", DecoratedTitle(task))
}

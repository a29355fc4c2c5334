package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dori/todomaster/internal/model"
)

func TestStatsViewRendersCompletionAsPercentage(t *testing.T) {
	v := StatsView{stats: model.Statistics{
		TotalTodos:        2,
		CompletedTodos:    1,
		PendingTodos:      1,
		CompletionRate:    50,
		ProductivityScore: 35,
	}}

	out := v.View()

	assert.Contains(t, out, "50%")
	assert.NotContains(t, out, "5000")
	// Half the completion bar is filled, not all of it
	assert.Contains(t, out, strings.Repeat("█", 10)+strings.Repeat("░", 10))
}

func TestBarClampsFraction(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 10), bar(-0.5, 10))
	assert.Equal(t, strings.Repeat("█", 5)+strings.Repeat("░", 5), bar(0.5, 10))
	assert.Equal(t, strings.Repeat("█", 10), bar(2.0, 10))
}

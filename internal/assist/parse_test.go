package assist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/todomaster/internal/model"
)

func TestParseQuickAddPlainText(t *testing.T) {
	parsed := ParseQuickAdd("buy milk")

	assert.Equal(t, "buy milk", parsed.Title)
	assert.Equal(t, model.PriorityNone, parsed.Priority)
	assert.Nil(t, parsed.DueDate)
	assert.Empty(t, parsed.TagNames)
}

func TestParseQuickAddFullGrammar(t *testing.T) {
	parsed := ParseQuickAdd("file taxes @finance !high due:tomorrow")

	assert.Equal(t, "file taxes", parsed.Title)
	assert.Equal(t, model.PriorityHigh, parsed.Priority)
	assert.Equal(t, []string{"@finance"}, parsed.TagNames)

	require.NotNil(t, parsed.DueDate)
	wantDay := time.Now().AddDate(0, 0, 1)
	assert.Equal(t, wantDay.Day(), parsed.DueDate.Day())
}

func TestParseQuickAddPriorityAliases(t *testing.T) {
	cases := map[string]model.Priority{
		"!low":    model.PriorityLow,
		"!l":      model.PriorityLow,
		"!medium": model.PriorityMedium,
		"!med":    model.PriorityMedium,
		"!m":      model.PriorityMedium,
		"!high":   model.PriorityHigh,
		"!hi":     model.PriorityHigh,
		"!h":      model.PriorityHigh,
		"!HIGH":   model.PriorityHigh,
	}
	for token, want := range cases {
		parsed := ParseQuickAdd("task " + token)
		assert.Equal(t, want, parsed.Priority, "token %q", token)
		assert.Equal(t, "task", parsed.Title, "token %q", token)
	}
}

func TestParseQuickAddUnknownTokensStayInTitle(t *testing.T) {
	parsed := ParseQuickAdd("read !urgent due:whenever email")

	// Unrecognized priority and date tokens are kept verbatim
	assert.Equal(t, "read !urgent due:whenever email", parsed.Title)
	assert.Equal(t, model.PriorityNone, parsed.Priority)
	assert.Nil(t, parsed.DueDate)
}

func TestParseQuickAddMultipleTags(t *testing.T) {
	parsed := ParseQuickAdd("plan trip @travel @family")

	assert.Equal(t, "plan trip", parsed.Title)
	assert.Equal(t, []string{"@travel", "@family"}, parsed.TagNames)
}

func TestParseQuickAddBareAtSignIsTitle(t *testing.T) {
	parsed := ParseQuickAdd("email @ bob")

	assert.Equal(t, "email @ bob", parsed.Title)
	assert.Empty(t, parsed.TagNames)
}

func TestParseNaturalDateRelative(t *testing.T) {
	now := time.Now()

	today := parseNaturalDate("today")
	require.NotNil(t, today)
	assert.Equal(t, now.Day(), today.Day())
	assert.Equal(t, 23, today.Hour())

	nextweek := parseNaturalDate("nextweek")
	require.NotNil(t, nextweek)
	assert.Equal(t, now.AddDate(0, 0, 7).Day(), nextweek.Day())
}

func TestParseNaturalDateWeekdayIsAlwaysInFuture(t *testing.T) {
	for _, name := range []string{"monday", "tue", "friday", "sun"} {
		got := parseNaturalDate(name)
		require.NotNil(t, got, name)
		assert.True(t, got.After(time.Now()), name)
		// Never more than a week out
		assert.True(t, got.Before(time.Now().AddDate(0, 0, 8)), name)
	}
}

func TestParseNaturalDateExplicitFormats(t *testing.T) {
	got := parseNaturalDate("2026-01-15")
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 15, got.Day())

	// Month/day without a year lands in the current year
	got = parseNaturalDate("jul 4")
	require.NotNil(t, got)
	assert.Equal(t, time.Now().Year(), got.Year())
	assert.Equal(t, time.July, got.Month())
	assert.Equal(t, 4, got.Day())
}

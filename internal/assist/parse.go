// Package assist holds the heuristic helpers: quick-add text parsing and
// read-only suggestion functions over the task collection.
package assist

import (
	"strings"
	"time"

	"github.com/dori/todomaster/internal/model"
)

// ParsedTask is the result of parsing quick-add text
type ParsedTask struct {
	Title    string
	Priority model.Priority
	DueDate  *time.Time
	TagNames []string
}

// ParseQuickAdd parses the quick-add grammar:
//
//	Tags:      @tag          (e.g., @home, @work, @errands)
//	Priority:  !low !medium !high
//	Due date:  due:tomorrow due:friday due:2026-01-15
//
// Unrecognized tokens stay in the title.
func ParseQuickAdd(text string) ParsedTask {
	parsed := ParsedTask{Priority: model.PriorityNone}

	words := strings.Fields(text)
	var titleParts []string

	for _, word := range words {
		switch {
		case strings.HasPrefix(word, "@") && len(word) > 1:
			parsed.TagNames = append(parsed.TagNames, word)

		case strings.HasPrefix(word, "!"):
			switch strings.ToLower(strings.TrimPrefix(word, "!")) {
			case "low", "l":
				parsed.Priority = model.PriorityLow
			case "medium", "med", "m":
				parsed.Priority = model.PriorityMedium
			case "high", "hi", "h":
				parsed.Priority = model.PriorityHigh
			default:
				titleParts = append(titleParts, word)
			}

		case strings.HasPrefix(strings.ToLower(word), "due:"):
			dateStr := strings.TrimPrefix(strings.ToLower(word), "due:")
			if due := parseNaturalDate(dateStr); due != nil {
				parsed.DueDate = due
			} else {
				titleParts = append(titleParts, word)
			}

		default:
			titleParts = append(titleParts, word)
		}
	}

	parsed.Title = strings.Join(titleParts, " ")
	return parsed
}

func parseNaturalDate(s string) *time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	switch strings.ToLower(s) {
	case "today":
		return &today
	case "tomorrow", "tom":
		t := today.AddDate(0, 0, 1)
		return &t
	case "monday", "mon":
		return nextWeekday(time.Monday)
	case "tuesday", "tue":
		return nextWeekday(time.Tuesday)
	case "wednesday", "wed":
		return nextWeekday(time.Wednesday)
	case "thursday", "thu":
		return nextWeekday(time.Thursday)
	case "friday", "fri":
		return nextWeekday(time.Friday)
	case "saturday", "sat":
		return nextWeekday(time.Saturday)
	case "sunday", "sun":
		return nextWeekday(time.Sunday)
	case "nextweek":
		t := today.AddDate(0, 0, 7)
		return &t
	case "nextmonth":
		t := today.AddDate(0, 1, 0)
		return &t
	}

	formats := []string{
		"2006-01-02",
		"01/02/2006",
		"01-02-2006",
		"Jan 2",
		"Jan 2, 2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			// If no year, use current year
			if t.Year() == 0 {
				t = time.Date(now.Year(), t.Month(), t.Day(), 23, 59, 59, 0, now.Location())
			}
			return &t
		}
	}

	return nil
}

func nextWeekday(day time.Weekday) *time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	daysUntil := int(day - now.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}

	t := today.AddDate(0, 0, daysUntil)
	return &t
}

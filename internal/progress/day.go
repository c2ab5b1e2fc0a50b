package progress

import (
	"math"
	"strings"
	"time"

	"skill-daily/internal/model"

	"github.com/google/uuid"
)

// DayInput is one check-in for a single calendar day.
type DayInput struct {
	Date          string
	Tasks         []model.TaskInput
	Mood          string
	FreeformPlans string
}

// Evaluate derives the completion rate and status of a task list. An empty
// list is pending; a non-empty list with nothing done is missed.
func Evaluate(tasks []model.Task) (int, model.DayStatus) {
	if len(tasks) == 0 {
		return 0, model.StatusPending
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	rate := int(math.Round(100 * float64(done) / float64(len(tasks))))
	switch {
	case rate >= 100:
		return 100, model.StatusCompleted
	case rate > 0:
		return rate, model.StatusPartial
	default:
		return 0, model.StatusMissed
	}
}

func ValidateDate(date string) error {
	if len(date) != len(model.DateLayout) {
		return model.Invalid("date", "expected YYYY-MM-DD, got %q", date)
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return model.Invalid("date", "expected YYYY-MM-DD, got %q", date)
	}
	return nil
}

// ParseDateParam accepts a YYYY-MM-DD date or the alias "today".
func ParseDateParam(s string, now time.Time) (string, error) {
	if s == "today" {
		return now.Format(model.DateLayout), nil
	}
	if err := ValidateDate(s); err != nil {
		return "", err
	}
	return s, nil
}

// buildDay validates in and turns it into a DayEntry. Tasks that already
// exist in prev keep their creation time.
func buildDay(in DayInput, prev *model.DayEntry, now time.Time) (model.DayEntry, error) {
	if err := ValidateDate(in.Date); err != nil {
		return model.DayEntry{}, err
	}

	created := map[string]time.Time{}
	if prev != nil {
		for _, t := range prev.Tasks {
			created[t.ID] = t.CreatedAt
		}
	}

	seen := make(map[string]bool, len(in.Tasks))
	tasks := make([]model.Task, 0, len(in.Tasks))
	for i, ti := range in.Tasks {
		text := strings.TrimSpace(ti.Text)
		if text == "" {
			return model.DayEntry{}, model.Invalid("tasks", "task %d has empty text", i)
		}
		id := strings.TrimSpace(ti.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return model.DayEntry{}, model.Invalid("tasks", "duplicate task id %q", id)
		}
		seen[id] = true

		at, ok := created[id]
		if !ok {
			at = now
		}
		tasks = append(tasks, model.Task{ID: id, Text: text, Completed: ti.Completed, CreatedAt: at})
	}

	rate, status := Evaluate(tasks)
	return model.DayEntry{
		Date:           in.Date,
		Tasks:          tasks,
		Mood:           strings.TrimSpace(in.Mood),
		FreeformPlans:  strings.TrimSpace(in.FreeformPlans),
		CompletionRate: rate,
		Status:         status,
		UpdatedAt:      now,
	}, nil
}

package stats

import (
	"testing"
	"time"

	"skill-daily/internal/model"
	"skill-daily/internal/progress"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func entry(date string, done, total int) model.DayEntry {
	ts := make([]model.Task, total)
	for i := range ts {
		ts[i] = model.Task{ID: string(rune('a' + i)), Text: "t", Completed: i < done}
	}
	rate, status := progress.Evaluate(ts)
	return model.DayEntry{Date: date, Tasks: ts, CompletionRate: rate, Status: status}
}

func ledger(days ...model.DayEntry) *model.ProgressLedger {
	l := model.NewLedger(1)
	for _, d := range days {
		l.Days[d.Date] = d
	}
	progress.Apply(l)
	return l
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), "2024-01-08"},   // Monday
		{time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC), "2024-01-08"}, // Sunday
		{time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), "2024-01-08"},
		{time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), "2024-02-26"}, // crosses month
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekStart(tt.in).Format(model.DateLayout), tt.in)
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(model.NewLedger(1), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

	assert.Zero(t, s.TotalDays)
	assert.Zero(t, s.AverageCompletion)
	assert.Len(t, s.WeeklyData, 5)
	for _, w := range s.WeeklyData {
		assert.Zero(t, w.Completed)
	}
}

func TestComputeCounts(t *testing.T) {
	l := ledger(
		entry("2024-01-01", 2, 2),
		entry("2024-01-02", 2, 3),
		entry("2024-01-03", 0, 2),
		entry("2024-01-04", 0, 0),
		entry("2024-01-05", 1, 1),
	)

	s := Compute(l, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 5, s.TotalDays)
	assert.Equal(t, 2, s.CompletedDays)
	assert.Equal(t, 1, s.PartialDays)
	assert.Equal(t, 1, s.MissedDays)
	assert.Equal(t, 1, s.PendingDays)
	// (100 + 67 + 0 + 0 + 100) / 5 = 53.4
	assert.Equal(t, 53, s.AverageCompletion)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	assert.Equal(t, 2, s.TotalCompletedDays)
}

func TestComputeWeeklyData(t *testing.T) {
	l := ledger(
		entry("2023-12-03", 1, 1), // before the window
		entry("2023-12-11", 1, 1), // Monday, oldest week
		entry("2023-12-24", 1, 1), // Sunday closing week of 12-18
		entry("2023-12-25", 1, 1), // Monday starting week of 12-25
		entry("2023-12-26", 1, 2), // partial, not counted
		entry("2024-01-08", 1, 1),
		entry("2024-01-10", 1, 1),
	)

	s := Compute(l, time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC))

	want := []WeekStat{
		{WeekStart: "2023-12-11", Completed: 1},
		{WeekStart: "2023-12-18", Completed: 1},
		{WeekStart: "2023-12-25", Completed: 1},
		{WeekStart: "2024-01-01", Completed: 0},
		{WeekStart: "2024-01-08", Completed: 2},
	}
	if diff := cmp.Diff(want, s.WeeklyData); diff != "" {
		t.Errorf("WeeklyData mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeDoesNotMutate(t *testing.T) {
	l := ledger(entry("2024-01-01", 1, 1))
	before := l.Clone()

	Compute(l, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))

	if diff := cmp.Diff(before, l); diff != "" {
		t.Errorf("ledger mutated (-before +after):\n%s", diff)
	}
}

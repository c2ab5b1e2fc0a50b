package progress

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"skill-daily/internal/model"
	"skill-daily/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tasks(done, total int) []model.Task {
	out := make([]model.Task, total)
	for i := range out {
		out[i] = model.Task{ID: fmt.Sprint(i), Text: "t", Completed: i < done}
	}
	return out
}

func day(date string, done, total int) model.DayEntry {
	ts := tasks(done, total)
	rate, status := Evaluate(ts)
	return model.DayEntry{Date: date, Tasks: ts, CompletionRate: rate, Status: status}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		done       int
		total      int
		wantRate   int
		wantStatus model.DayStatus
	}{
		{"no tasks", 0, 0, 0, model.StatusPending},
		{"none done", 0, 4, 0, model.StatusMissed},
		{"two of three", 2, 3, 67, model.StatusPartial},
		{"one of three", 1, 3, 33, model.StatusPartial},
		{"all done", 2, 2, 100, model.StatusCompleted},
		{"one of two hundred", 1, 200, 1, model.StatusPartial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, status := Evaluate(tasks(tt.done, tt.total))
			assert.Equal(t, tt.wantRate, rate)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestRecomputeStreakAcrossMissedDay(t *testing.T) {
	days := map[string]model.DayEntry{
		"2024-01-05": day("2024-01-05", 1, 1),
		"2024-01-01": day("2024-01-01", 2, 2),
		"2024-01-03": day("2024-01-03", 1, 1),
		"2024-01-02": day("2024-01-02", 3, 3),
		"2024-01-04": day("2024-01-04", 0, 2),
	}

	agg := Recompute(days)

	assert.Equal(t, Aggregates{CurrentStreak: 1, LongestStreak: 3, TotalCompletedDays: 4}, agg)
}

func TestRecomputePartialAndPendingCarryStreak(t *testing.T) {
	days := map[string]model.DayEntry{
		"2024-03-01": day("2024-03-01", 1, 1),
		"2024-03-02": day("2024-03-02", 1, 2),
		"2024-03-03": day("2024-03-03", 0, 0),
		"2024-03-04": day("2024-03-04", 1, 1),
	}

	agg := Recompute(days)

	assert.Equal(t, 2, agg.CurrentStreak)
	assert.Equal(t, 2, agg.LongestStreak)
	assert.Equal(t, 2, agg.TotalCompletedDays)
}

func TestRecomputeEmpty(t *testing.T) {
	assert.Equal(t, Aggregates{}, Recompute(nil))
}

func TestRecomputeIsIdempotent(t *testing.T) {
	days := map[string]model.DayEntry{}
	for i := 1; i <= 28; i++ {
		date := fmt.Sprintf("2024-02-%02d", i)
		days[date] = day(date, i%3, 2)
	}

	first := Recompute(days)
	second := Recompute(days)

	assert.Equal(t, first, second)
}

func TestRecomputeTreatsMalformedAsPending(t *testing.T) {
	forged := day("2024-01-02", 0, 2)
	forged.Status = model.StatusCompleted // does not match its tasks

	days := map[string]model.DayEntry{
		"2024-01-01": day("2024-01-01", 1, 1),
		"2024-01-02": forged,
		"2024-01-03": {Date: "2024-01-03", CompletionRate: 150, Status: model.StatusCompleted},
		"not-a-date": day("not-a-date", 0, 1),
		"2024-01-04": day("2024-01-04", 1, 1),
	}

	agg := Recompute(days)

	assert.Equal(t, 2, agg.TotalCompletedDays)
	assert.Equal(t, 2, agg.CurrentStreak)
	rate, status := Effective("2024-01-02", forged)
	assert.Equal(t, 0, rate)
	assert.Equal(t, model.StatusPending, status)
}

func TestParseDateParam(t *testing.T) {
	now := time.Date(2024, 5, 6, 22, 0, 0, 0, time.UTC)

	got, err := ParseDateParam("today", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", got)

	for _, bad := range []string{"2024-5-06", "2024/05/06", "2024-02-30", "", "tomorrow"} {
		_, err := ParseDateParam(bad, now)
		assert.ErrorIs(t, err, model.ErrValidation, bad)
	}
}

func newService(t *testing.T) *Service {
	t.Helper()
	s := NewService(store.NewMemory())
	s.SetClock(func() time.Time { return time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC) })
	return s
}

func TestUpsertDay(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	d, err := s.UpsertDay(ctx, 1, DayInput{
		Date: "2024-01-01",
		Tasks: []model.TaskInput{
			{Text: " read chapter 3 ", Completed: true},
			{ID: "b", Text: "practice", Completed: true},
			{ID: "c", Text: "review"},
		},
		Mood: "curious",
	})
	require.NoError(t, err)

	assert.Equal(t, 67, d.CompletionRate)
	assert.Equal(t, model.StatusPartial, d.Status)
	assert.Equal(t, "read chapter 3", d.Tasks[0].Text)
	assert.NotEmpty(t, d.Tasks[0].ID)
	assert.Equal(t, "curious", d.Mood)

	l, err := s.Ledger(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", l.LastCheckinDate)
	assert.Equal(t, 0, l.CurrentStreak)
	assert.Equal(t, d, l.Days["2024-01-01"])
}

func TestUpsertDayOverwriteRecomputes(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	first := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return first })
	_, err := s.UpsertDay(ctx, 1, DayInput{Date: "2024-01-01", Tasks: []model.TaskInput{{ID: "a", Text: "drill"}}})
	require.NoError(t, err)

	s.SetClock(func() time.Time { return first.Add(10 * time.Hour) })
	d, err := s.UpsertDay(ctx, 1, DayInput{Date: "2024-01-01", Tasks: []model.TaskInput{
		{ID: "a", Text: "drill", Completed: true},
		{ID: "n", Text: "new", Completed: true},
	}})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCompleted, d.Status)
	assert.Equal(t, first, d.Tasks[0].CreatedAt)
	assert.Equal(t, first.Add(10*time.Hour), d.Tasks[1].CreatedAt)

	l, err := s.Ledger(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, l.Days, 1)
	assert.Equal(t, 1, l.CurrentStreak)
	assert.Equal(t, 1, l.TotalCompletedDays)
}

func TestUpsertDayBackfillSetsLastCheckin(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	for _, date := range []string{"2024-01-03", "2024-01-01", "2024-01-02"} {
		_, err := s.UpsertDay(ctx, 1, DayInput{Date: date, Tasks: []model.TaskInput{{Text: "x", Completed: true}}})
		require.NoError(t, err)
	}

	l, err := s.Ledger(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", l.LastCheckinDate)
	assert.Equal(t, 3, l.CurrentStreak)
	assert.Equal(t, 3, l.LongestStreak)
}

func TestUpsertDayValidation(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	tests := []struct {
		name   string
		userID int
		in     DayInput
	}{
		{"bad date", 1, DayInput{Date: "01-01-2024"}},
		{"impossible date", 1, DayInput{Date: "2024-13-01"}},
		{"empty task text", 1, DayInput{Date: "2024-01-01", Tasks: []model.TaskInput{{Text: "  "}}}},
		{"duplicate ids", 1, DayInput{Date: "2024-01-01", Tasks: []model.TaskInput{{ID: "a", Text: "x"}, {ID: "a", Text: "y"}}}},
		{"no user", 0, DayInput{Date: "2024-01-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpsertDay(ctx, tt.userID, tt.in)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}

	_, err := s.Day(ctx, 1, "2024-01-01")
	assert.ErrorIs(t, err, model.ErrNotFound, "rejected writes must not create entries")
}

func TestLedgerCreatedOnFirstAccess(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	l, err := s.Ledger(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, l.UserID)
	assert.Empty(t, l.Days)
	assert.Zero(t, l.CurrentStreak+l.LongestStreak+l.TotalCompletedDays)

	_, err = s.Day(ctx, 42, "2024-01-01")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDayUnknownUser(t *testing.T) {
	_, err := newService(t).Day(context.Background(), 9, "2024-01-01")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpsertDayConcurrentSameUser(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	var wg sync.WaitGroup
	for i := 1; i <= 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			date := fmt.Sprintf("2024-04-%02d", i)
			_, err := s.UpsertDay(ctx, 7, DayInput{Date: date, Tasks: []model.TaskInput{{Text: "x", Completed: true}}})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	l, err := s.Ledger(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, l.Days, 30)
	assert.Equal(t, 30, l.CurrentStreak)
	assert.Equal(t, 30, l.TotalCompletedDays)
	assert.Equal(t, Recompute(l.Days), Aggregates{l.CurrentStreak, l.LongestStreak, l.TotalCompletedDays})
}

// Package stats derives read-only summaries from a progress ledger.
package stats

import (
	"math"
	"time"

	"skill-daily/internal/model"
	"skill-daily/internal/progress"
)

const weeksShown = 5

type Stats struct {
	TotalDays          int        `json:"total_days"`
	CompletedDays      int        `json:"completed_days"`
	PartialDays        int        `json:"partial_days"`
	MissedDays         int        `json:"missed_days"`
	PendingDays        int        `json:"pending_days"`
	AverageCompletion  int        `json:"average_completion"`
	CurrentStreak      int        `json:"current_streak"`
	LongestStreak      int        `json:"longest_streak"`
	TotalCompletedDays int        `json:"total_completed_days"`
	WeeklyData         []WeekStat `json:"weekly_data"`
}

type WeekStat struct {
	WeekStart string `json:"week_start"`
	Completed int    `json:"completed"`
}

// Compute summarizes l as of now. Weekly buckets start on Monday and run
// from four weeks before the current week up to the current week.
func Compute(l *model.ProgressLedger, now time.Time) Stats {
	s := Stats{
		TotalDays:          len(l.Days),
		CurrentStreak:      l.CurrentStreak,
		LongestStreak:      l.LongestStreak,
		TotalCompletedDays: l.TotalCompletedDays,
	}

	current := WeekStart(now)
	weeks := make([]WeekStat, weeksShown)
	starts := make([]time.Time, weeksShown)
	for i := range weeks {
		starts[i] = current.AddDate(0, 0, -7*(weeksShown-1-i))
		weeks[i].WeekStart = starts[i].Format(model.DateLayout)
	}

	sum := 0
	for date, d := range l.Days {
		rate, status := progress.Effective(date, d)
		sum += rate

		switch status {
		case model.StatusCompleted:
			s.CompletedDays++
		case model.StatusPartial:
			s.PartialDays++
		case model.StatusMissed:
			s.MissedDays++
		default:
			s.PendingDays++
		}
		if status != model.StatusCompleted {
			continue
		}

		t, err := time.Parse(model.DateLayout, date)
		if err != nil {
			continue
		}
		for i, start := range starts {
			if !t.Before(start) && t.Before(start.AddDate(0, 0, 7)) {
				weeks[i].Completed++
				break
			}
		}
	}

	if s.TotalDays > 0 {
		s.AverageCompletion = int(math.Round(float64(sum) / float64(s.TotalDays)))
	}
	s.WeeklyData = weeks
	return s
}

// WeekStart returns midnight UTC of the Monday on or before t's calendar day.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

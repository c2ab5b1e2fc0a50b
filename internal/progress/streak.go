package progress

import (
	"sort"
	"time"

	"skill-daily/internal/logger"
	"skill-daily/internal/model"
)

type Aggregates struct {
	CurrentStreak      int
	LongestStreak      int
	TotalCompletedDays int
}

// Recompute walks every recorded day in date order. Completed days extend the
// running streak, missed days reset it, and partial or pending days leave it
// unchanged. The current streak is the running value after the last day.
func Recompute(days map[string]model.DayEntry) Aggregates {
	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var agg Aggregates
	temp := 0
	for _, date := range dates {
		_, status := Effective(date, days[date])
		switch status {
		case model.StatusCompleted:
			temp++
			agg.TotalCompletedDays++
			agg.LongestStreak = max(agg.LongestStreak, temp)
		case model.StatusMissed:
			temp = 0
		}
	}
	agg.CurrentStreak = temp
	return agg
}

// Apply overwrites the ledger's aggregates with a fresh Recompute.
func Apply(l *model.ProgressLedger) {
	agg := Recompute(l.Days)
	l.CurrentStreak = agg.CurrentStreak
	l.LongestStreak = agg.LongestStreak
	l.TotalCompletedDays = agg.TotalCompletedDays
}

// Effective returns the stored rate and status of a day. Entries that are not
// internally consistent count as pending with a zero rate and are logged.
func Effective(key string, d model.DayEntry) (int, model.DayStatus) {
	if reason := malformed(key, d); reason != "" {
		logger.Warn("progress.day.malformed", "date", key, "reason", reason)
		return 0, model.StatusPending
	}
	return d.CompletionRate, d.Status
}

func malformed(key string, d model.DayEntry) string {
	if _, err := time.Parse(model.DateLayout, key); err != nil || len(key) != len(model.DateLayout) {
		return "bad date key"
	}
	if d.Date != "" && d.Date != key {
		return "date mismatch"
	}
	if d.CompletionRate < 0 || d.CompletionRate > 100 {
		return "rate out of range"
	}
	rate, status := Evaluate(d.Tasks)
	if rate != d.CompletionRate || status != d.Status {
		return "status does not match tasks"
	}
	return ""
}

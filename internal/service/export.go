package service

import (
	"fmt"
	"io"
	"sort"

	"skill-daily/internal/model"
	"skill-daily/internal/progress"
	"skill-daily/internal/stats"

	"github.com/xuri/excelize/v2"
)

const (
	daysSheet    = "Days"
	summarySheet = "Summary"
)

var dayHeader = []interface{}{"Date", "Status", "Completion %", "Done", "Total", "Mood", "Plans"}

// WriteLedgerXLSX writes one row per recorded day, oldest first, plus a
// summary sheet of st.
func WriteLedgerXLSX(w io.Writer, l *model.ProgressLedger, st stats.Stats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", daysSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(daysSheet, "A1", &dayHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	keys := make([]string, 0, len(l.Days))
	for k := range l.Days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		d := l.Days[k]
		rate, status := progress.Effective(k, d)
		done := 0
		for _, t := range d.Tasks {
			if t.Completed {
				done++
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{k, string(status), rate, done, len(d.Tasks), d.Mood, d.FreeformPlans}
		if err := f.SetSheetRow(daysSheet, cell, &row); err != nil {
			return fmt.Errorf("write day %s: %w", k, err)
		}
	}
	_ = f.SetColWidth(daysSheet, "A", "B", 12)
	_ = f.SetColWidth(daysSheet, "F", "G", 40)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	summary := [][]interface{}{
		{"Total days", st.TotalDays},
		{"Completed days", st.CompletedDays},
		{"Partial days", st.PartialDays},
		{"Missed days", st.MissedDays},
		{"Pending days", st.PendingDays},
		{"Average completion %", st.AverageCompletion},
		{"Current streak", st.CurrentStreak},
		{"Longest streak", st.LongestStreak},
		{"Last check-in", l.LastCheckinDate},
	}
	for _, wk := range st.WeeklyData {
		summary = append(summary, []interface{}{"Week of " + wk.WeekStart, wk.Completed})
	}
	for i := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &summary[i]); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 24)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

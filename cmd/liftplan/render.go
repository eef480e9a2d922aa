package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/meltforce/liftplan/internal/coach"
	"github.com/meltforce/liftplan/internal/push"
	"github.com/meltforce/liftplan/internal/routinegen"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	memoStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func prescriptionTable(items []routinegen.Prescription) string {
	t := newTable("#", "운동", "부위", "세트", "횟수")
	for i, p := range items {
		t.Row(strconv.Itoa(i+1), p.Exercise, p.Category, strconv.Itoa(p.Sets), p.Reps)
	}
	return t.Render()
}

func renderRoutine(r routinegen.GeneratedRoutine) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Name))
	b.WriteString("\n")
	b.WriteString(memoStyle.Render(fmt.Sprintf("%s · 주 %d회", r.Memo, r.Profile.Frequency)))
	b.WriteString("\n")
	if r.Empty() {
		b.WriteString("(no exercises)")
		return b.String()
	}
	b.WriteString(prescriptionTable(r.Items))
	return b.String()
}

func renderTemplate(row routinegen.TemplateRow) string {
	title := fmt.Sprintf("%s / %s", row.Goal.Label(), row.Experience.Label())
	return titleStyle.Render(title) + "\n" + prescriptionTable(row.Items)
}

func renderHistory(records []push.Record) string {
	t := newTable("pushed at", "name", "routine id")
	for _, rec := range records {
		t.Row(rec.PushedAt.Local().Format("2006-01-02 15:04"), rec.Name, rec.RoutineID)
	}
	return t.Render()
}

func renderCoachReport(rep *coach.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Coach %s ~ %s", rep.Start, rep.End)))
	b.WriteString("\n")

	vol := newTable("week", "volume", "days")
	for i, w := range rep.Metrics.WeeklyVolume {
		days := ""
		if i < len(rep.Metrics.WeeklyFrequency) {
			days = strconv.Itoa(rep.Metrics.WeeklyFrequency[i].Days)
		}
		vol.Row(w.Week, strconv.FormatFloat(w.Volume, 'f', -1, 64), days)
	}
	b.WriteString(vol.Render())
	b.WriteString("\n")

	if len(rep.Recommendations) == 0 {
		b.WriteString(memoStyle.Render("no recommendations"))
		return b.String()
	}
	recs := newTable("priority", "recommendation", "action")
	for _, rec := range rep.Recommendations {
		recs.Row(string(rec.Priority), rec.Title, rec.Action)
	}
	b.WriteString(recs.Render())
	return b.String()
}

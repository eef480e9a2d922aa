// Package coach turns a window of logged workouts into training metrics and
// rule-based recommendations.
package coach

import (
	"fmt"
	"time"

	"github.com/meltforce/liftplan/internal/models"
)

// Window bounds, in days.
const (
	MinDays     = 7
	MaxDays     = 180
	DefaultDays = 30
)

// insufficientWorkouts is the entry count below which a report is flagged
// as based on too little data. Recommendations are still computed.
const insufficientWorkouts = 6

// WeekVolume is the summed volume of one ISO week ("2025-W14").
type WeekVolume struct {
	Week   string  `json:"week"`
	Volume float64 `json:"volume"`
}

// WeekFrequency is the number of distinct training days in one ISO week.
type WeekFrequency struct {
	Week string `json:"week"`
	Days int    `json:"days"`
}

// PRChange compares the first and last estimated 1RM of an exercise in the
// window.
type PRChange struct {
	Exercise  string  `json:"exercise"`
	First     float64 `json:"first"`
	Last      float64 `json:"last"`
	ChangePct float64 `json:"change_pct"`
}

// Metrics are the inputs the rules look at.
type Metrics struct {
	WeeklyVolume    []WeekVolume    `json:"weekly_volume"`
	WeeklyFrequency []WeekFrequency `json:"weekly_frequency"`
	PRTrend         []PRChange      `json:"pr_trend"`
}

// Priority of a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is one coaching suggestion.
type Recommendation struct {
	Title    string   `json:"title"`
	Reason   string   `json:"reason"`
	Action   string   `json:"action"`
	Priority Priority `json:"priority"`
}

// Report is the coach output for one window.
type Report struct {
	Days             int              `json:"days"`
	Start            string           `json:"start"`
	End              string           `json:"end"`
	InsufficientData bool             `json:"insufficient_data"`
	Metrics          Metrics          `json:"metrics"`
	Recommendations  []Recommendation `json:"recommendations"`
}

// ValidateDays rejects windows outside [MinDays, MaxDays].
func ValidateDays(days int) error {
	if days < MinDays || days > MaxDays {
		return fmt.Errorf("days must be between %d and %d", MinDays, MaxDays)
	}
	return nil
}

// Window returns the inclusive calendar-day range of length days ending on
// latest.
func Window(latest time.Time, days int) (start, end time.Time) {
	end = time.Date(latest.Year(), latest.Month(), latest.Day(), 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, 0, -(days - 1)), end
}

// Recommend picks the window ending on the most recent workout (or on now
// when there are none) and analyzes the workouts inside it.
func Recommend(workouts []models.WorkoutRow, days int, now time.Time) Report {
	latest := now
	if len(workouts) > 0 {
		latest = workouts[0].Date
		for _, w := range workouts[1:] {
			if w.Date.After(latest) {
				latest = w.Date
			}
		}
	}
	start, end := Window(latest, days)

	in := make([]models.WorkoutRow, 0, len(workouts))
	for _, w := range workouts {
		if !w.Date.Before(start) && !w.Date.After(end) {
			in = append(in, w)
		}
	}
	return Analyze(in, days, start, end)
}

// Analyze computes metrics and recommendations for workouts already
// restricted to [start, end].
func Analyze(workouts []models.WorkoutRow, days int, start, end time.Time) Report {
	vols, freq := weeklyMetrics(workouts)
	m := Metrics{
		WeeklyVolume:    vols,
		WeeklyFrequency: freq,
		PRTrend:         prTrend(workouts),
	}

	return Report{
		Days:             days,
		Start:            start.Format(models.DateLayout),
		End:              end.Format(models.DateLayout),
		InsufficientData: len(workouts) < insufficientWorkouts,
		Metrics:          m,
		Recommendations:  analyzeRules(m),
	}
}

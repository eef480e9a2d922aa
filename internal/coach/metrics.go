package coach

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/meltforce/liftplan/internal/models"
)

// EpleyOneRM estimates a one-rep max as weight × (1 + reps/30). Non-positive
// inputs give 0.
func EpleyOneRM(weightKg float64, reps int) float64 {
	if weightKg <= 0 || reps <= 0 {
		return 0
	}
	return weightKg * (1 + float64(reps)/30)
}

// BestOneRM is the highest Epley estimate over sets.
func BestOneRM(sets []models.SetRecord) float64 {
	var best float64
	for _, s := range sets {
		best = max(best, EpleyOneRM(s.WeightKg, s.Reps))
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// isoWeek formats the ISO year and week, e.g. "2025-W04".
func isoWeek(w models.WorkoutRow) string {
	year, week := w.Date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func weeklyMetrics(workouts []models.WorkoutRow) ([]WeekVolume, []WeekFrequency) {
	volume := map[string]float64{}
	days := map[string]map[string]struct{}{}
	for _, w := range workouts {
		week := isoWeek(w)
		if days[week] == nil {
			days[week] = map[string]struct{}{}
		}
		days[week][w.DateString()] = struct{}{}
		volume[week] += w.Volume()
	}

	weeks := make([]string, 0, len(days))
	for week := range days {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)

	vols := make([]WeekVolume, len(weeks))
	freq := make([]WeekFrequency, len(weeks))
	for i, week := range weeks {
		vols[i] = WeekVolume{Week: week, Volume: round2(volume[week])}
		freq[i] = WeekFrequency{Week: week, Days: len(days[week])}
	}
	return vols, freq
}

// prTrend compares, per exercise with at least two dated estimates, the best
// 1RM on its first and last day. Flattest changes come first.
func prTrend(workouts []models.WorkoutRow) []PRChange {
	byExercise := map[string]map[string]float64{}
	for _, w := range workouts {
		ex := strings.TrimSpace(w.Exercise)
		best := BestOneRM(w.Sets)
		if ex == "" || best <= 0 {
			continue
		}
		if byExercise[ex] == nil {
			byExercise[ex] = map[string]float64{}
		}
		d := w.DateString()
		byExercise[ex][d] = max(byExercise[ex][d], best)
	}

	trend := []PRChange{}
	for ex, byDate := range byExercise {
		if len(byDate) < 2 {
			continue
		}
		dates := make([]string, 0, len(byDate))
		for d := range byDate {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		first, last := byDate[dates[0]], byDate[dates[len(dates)-1]]
		trend = append(trend, PRChange{
			Exercise:  ex,
			First:     round2(first),
			Last:      round2(last),
			ChangePct: round2((last - first) / first * 100),
		})
	}
	sort.Slice(trend, func(i, j int) bool {
		ai, aj := math.Abs(trend[i].ChangePct), math.Abs(trend[j].ChangePct)
		if ai != aj {
			return ai < aj
		}
		return trend[i].Exercise < trend[j].Exercise
	})
	return trend
}

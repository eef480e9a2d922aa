package storage

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Volume buckets for VolumeByPeriod.
const (
	BucketWeek  = "week"
	BucketMonth = "month"
)

// PeriodVolume is the summed weight × reps of one week (keyed by its Monday,
// YYYY-MM-DD) or month (YYYY-MM).
type PeriodVolume struct {
	Period string  `json:"period"`
	Volume float64 `json:"volume"`
}

// CategoryVolume is the summed volume of one muscle category.
type CategoryVolume struct {
	Category string  `json:"category"`
	Volume   float64 `json:"volume"`
}

// ExerciseDay is one day of an exercise's history.
type ExerciseDay struct {
	Date      string  `json:"date"`
	Volume    float64 `json:"volume"`
	TopWeight float64 `json:"top_weight"`
}

// OneRMPoint is the best estimated one-rep max of an exercise on one day.
type OneRMPoint struct {
	Date  string  `json:"date"`
	OneRM float64 `json:"one_rm"`
}

// dateBound turns a zero time into NULL so the range side is open.
func dateBound(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// VolumeByPeriod sums volume per week or month over all of the user's
// workouts, oldest first.
func (db *DB) VolumeByPeriod(ctx context.Context, userID int, bucket string) ([]PeriodVolume, error) {
	layout := "2006-01-02"
	switch bucket {
	case BucketWeek:
	case BucketMonth:
		layout = "2006-01"
	default:
		return nil, fmt.Errorf("unknown volume bucket %q", bucket)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($2, w.date::timestamp)::date AS period,
		        COALESCE(SUM(s.weight_kg * s.reps), 0)
		 FROM workouts w
		 LEFT JOIN workout_sets s ON s.workout_id = w.id
		 WHERE w.user_id = $1
		 GROUP BY period
		 ORDER BY period`,
		userID, bucket)
	if err != nil {
		return nil, fmt.Errorf("querying %sly volume: %w", bucket, err)
	}
	defer rows.Close()

	result := []PeriodVolume{}
	for rows.Next() {
		var period time.Time
		var v PeriodVolume
		if err := rows.Scan(&period, &v.Volume); err != nil {
			return nil, fmt.Errorf("scanning volume: %w", err)
		}
		v.Period = period.Format(layout)
		v.Volume = round2(v.Volume)
		result = append(result, v)
	}
	return result, rows.Err()
}

// MuscleVolume sums volume per category for start <= date <= end. A zero
// bound leaves that side open.
func (db *DB) MuscleVolume(ctx context.Context, userID int, start, end time.Time) ([]CategoryVolume, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT w.category, COALESCE(SUM(s.weight_kg * s.reps), 0) AS volume
		 FROM workouts w
		 LEFT JOIN workout_sets s ON s.workout_id = w.id
		 WHERE w.user_id = $1
		   AND ($2::date IS NULL OR w.date >= $2::date)
		   AND ($3::date IS NULL OR w.date <= $3::date)
		 GROUP BY w.category
		 ORDER BY volume DESC, w.category`,
		userID, dateBound(start), dateBound(end))
	if err != nil {
		return nil, fmt.Errorf("querying muscle volume: %w", err)
	}
	defer rows.Close()

	result := []CategoryVolume{}
	for rows.Next() {
		var v CategoryVolume
		if err := rows.Scan(&v.Category, &v.Volume); err != nil {
			return nil, fmt.Errorf("scanning muscle volume: %w", err)
		}
		v.Volume = round2(v.Volume)
		result = append(result, v)
	}
	return result, rows.Err()
}

// ExerciseDetail returns per-day volume and heaviest set for one exercise,
// oldest first.
func (db *DB) ExerciseDetail(ctx context.Context, userID int, exercise string, start, end time.Time) ([]ExerciseDay, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT w.date,
		        COALESCE(SUM(s.weight_kg * s.reps), 0),
		        COALESCE(MAX(s.weight_kg), 0)
		 FROM workouts w
		 LEFT JOIN workout_sets s ON s.workout_id = w.id
		 WHERE w.user_id = $1 AND w.exercise = $2
		   AND ($3::date IS NULL OR w.date >= $3::date)
		   AND ($4::date IS NULL OR w.date <= $4::date)
		 GROUP BY w.date
		 ORDER BY w.date`,
		userID, exercise, dateBound(start), dateBound(end))
	if err != nil {
		return nil, fmt.Errorf("querying exercise detail: %w", err)
	}
	defer rows.Close()

	result := []ExerciseDay{}
	for rows.Next() {
		var date time.Time
		var d ExerciseDay
		if err := rows.Scan(&date, &d.Volume, &d.TopWeight); err != nil {
			return nil, fmt.Errorf("scanning exercise detail: %w", err)
		}
		d.Date = date.Format("2006-01-02")
		d.Volume = round2(d.Volume)
		d.TopWeight = round2(max(d.TopWeight, 0))
		result = append(result, d)
	}
	return result, rows.Err()
}

// PRTrend returns the best Epley estimate (weight × (1 + reps/30)) per day
// for one exercise, oldest first. Days without a positive set are left out.
func (db *DB) PRTrend(ctx context.Context, userID int, exercise string, start, end time.Time) ([]OneRMPoint, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT w.date, MAX(s.weight_kg * (1 + s.reps::float8 / 30))
		 FROM workouts w
		 JOIN workout_sets s ON s.workout_id = w.id
		 WHERE w.user_id = $1 AND w.exercise = $2
		   AND s.weight_kg > 0 AND s.reps > 0
		   AND ($3::date IS NULL OR w.date >= $3::date)
		   AND ($4::date IS NULL OR w.date <= $4::date)
		 GROUP BY w.date
		 ORDER BY w.date`,
		userID, exercise, dateBound(start), dateBound(end))
	if err != nil {
		return nil, fmt.Errorf("querying PR trend: %w", err)
	}
	defer rows.Close()

	result := []OneRMPoint{}
	for rows.Next() {
		var date time.Time
		var p OneRMPoint
		if err := rows.Scan(&date, &p.OneRM); err != nil {
			return nil, fmt.Errorf("scanning PR trend: %w", err)
		}
		p.Date = date.Format("2006-01-02")
		p.OneRM = round2(p.OneRM)
		result = append(result, p)
	}
	return result, rows.Err()
}

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/meltforce/liftplan/internal/coach"
)

// LatestWorkoutDate returns the date of the user's most recent workout.
// ok is false when the user has none.
func (db *DB) LatestWorkoutDate(ctx context.Context, userID int) (date time.Time, ok bool, err error) {
	var latest *time.Time
	if err := db.Pool.QueryRow(ctx,
		`SELECT MAX(date) FROM workouts WHERE user_id = $1`, userID,
	).Scan(&latest); err != nil {
		return time.Time{}, false, fmt.Errorf("querying latest workout: %w", err)
	}
	if latest == nil {
		return time.Time{}, false, nil
	}
	return *latest, true, nil
}

// CoachReport analyzes the days-long window ending on the user's latest
// workout, or on today when there is none.
func (db *DB) CoachReport(ctx context.Context, userID, days int) (*coach.Report, error) {
	if err := coach.ValidateDays(days); err != nil {
		return nil, err
	}
	latest, ok, err := db.LatestWorkoutDate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		latest = time.Now().UTC()
	}

	start, end := coach.Window(latest, days)
	workouts, err := db.QueryWorkouts(ctx, userID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	report := coach.Analyze(workouts, days, start, end)
	return &report, nil
}

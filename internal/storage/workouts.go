package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftplan/internal/models"
)

const workoutColumns = `id, user_id, date, category, exercise, type, notes,
	 cardio_minutes, cardio_distance_km, created_at`

// InsertWorkout stores a workout entry and its sets in one transaction.
func (db *DB) InsertWorkout(ctx context.Context, w *models.WorkoutRow) error {
	var minutes, distance *float64
	if w.Cardio != nil {
		minutes = &w.Cardio.Minutes
		distance = w.Cardio.DistanceKm
	}

	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO workouts (id, user_id, date, category, exercise, type, notes,
			 cardio_minutes, cardio_distance_km)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			 RETURNING created_at`,
			w.ID, w.UserID, w.Date, w.Category, w.Exercise, w.Type, w.Notes, minutes, distance,
		).Scan(&w.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting workout: %w", err)
		}

		if len(w.Sets) == 0 {
			return nil
		}
		rows := make([][]any, len(w.Sets))
		for i, s := range w.Sets {
			rows[i] = []any{w.ID, i + 1, s.WeightKg, s.Reps}
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"workout_sets"},
			[]string{"workout_id", "set_number", "weight_kg", "reps"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("inserting workout sets: %w", err)
		}
		return nil
	})
}

// QueryWorkouts retrieves workouts with start <= date < end, newest first.
func (db *DB) QueryWorkouts(ctx context.Context, userID int, start, end time.Time) ([]models.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+`
		 FROM workouts
		 WHERE user_id = $1 AND date >= $2 AND date < $3
		 ORDER BY date DESC, created_at DESC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	return db.collectWorkouts(ctx, rows)
}

// WorkoutsOnDate returns every workout logged on the given calendar day.
func (db *DB) WorkoutsOnDate(ctx context.Context, userID int, date time.Time) ([]models.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+`
		 FROM workouts
		 WHERE user_id = $1 AND date = $2
		 ORDER BY created_at ASC`,
		userID, date)
	if err != nil {
		return nil, fmt.Errorf("querying workouts on %s: %w", date.Format(models.DateLayout), err)
	}
	return db.collectWorkouts(ctx, rows)
}

// LastWorkoutForExercise returns the most recent entry for an exercise, or
// ErrNotFound.
func (db *DB) LastWorkoutForExercise(ctx context.Context, userID int, exercise string) (*models.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+`
		 FROM workouts
		 WHERE user_id = $1 AND exercise = $2
		 ORDER BY date DESC, created_at DESC
		 LIMIT 1`,
		userID, exercise)
	if err != nil {
		return nil, fmt.Errorf("querying last workout: %w", err)
	}
	list, err := db.collectWorkouts(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return &list[0], nil
}

// DeleteWorkout removes a workout owned by the user. Sets cascade.
func (db *DB) DeleteWorkout(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DailySummary counts sets and sums weight × reps over one calendar day.
func (db *DB) DailySummary(ctx context.Context, userID int, date time.Time) (*models.DailySummary, error) {
	s := &models.DailySummary{Date: date.Format(models.DateLayout)}
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(s.set_number), COALESCE(SUM(s.weight_kg * s.reps), 0)
		 FROM workouts w
		 JOIN workout_sets s ON s.workout_id = w.id
		 WHERE w.user_id = $1 AND w.date = $2`,
		userID, date,
	).Scan(&s.SetsCount, &s.Volume)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("summarizing %s: %w", s.Date, err)
	}
	return s, nil
}

// collectWorkouts scans workout rows and loads their sets.
func (db *DB) collectWorkouts(ctx context.Context, rows pgx.Rows) ([]models.WorkoutRow, error) {
	defer rows.Close()

	result := []models.WorkoutRow{}
	for rows.Next() {
		var w models.WorkoutRow
		var minutes, distance *float64
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.Category, &w.Exercise, &w.Type, &w.Notes,
			&minutes, &distance, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		if minutes != nil {
			w.Cardio = &models.CardioRecord{Minutes: *minutes, DistanceKm: distance}
		}
		w.Sets = []models.SetRecord{}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(result) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(result))
	index := make(map[uuid.UUID]int, len(result))
	for i, w := range result {
		ids[i] = w.ID
		index[w.ID] = i
	}

	setRows, err := db.Pool.Query(ctx,
		`SELECT workout_id, weight_kg, reps
		 FROM workout_sets
		 WHERE workout_id = ANY($1)
		 ORDER BY workout_id, set_number ASC`,
		ids)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var id uuid.UUID
		var s models.SetRecord
		if err := setRows.Scan(&id, &s.WeightKg, &s.Reps); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		i := index[id]
		result[i].Sets = append(result[i].Sets, s)
	}
	return result, setRows.Err()
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/liftplan/internal/models"
)

// InsertRoutine stores a routine and its items in one transaction.
// CreatedAt is filled in from the database.
func (db *DB) InsertRoutine(ctx context.Context, r *models.RoutineRow) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO routines (id, user_id, name, memo, source, goal, experience, frequency)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			 RETURNING created_at`,
			r.ID, r.UserID, r.Name, r.Memo, r.Source, r.Goal, r.Experience, r.Frequency,
		).Scan(&r.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting routine: %w", err)
		}

		if len(r.Items) == 0 {
			return nil
		}
		rows := make([][]any, len(r.Items))
		for i, it := range r.Items {
			rows[i] = []any{r.ID, i, it.Exercise, it.Category, it.Sets, it.Reps}
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"routine_items"},
			[]string{"routine_id", "position", "exercise", "category", "sets", "reps"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("inserting routine items: %w", err)
		}
		return nil
	})
}

// ListRoutines returns the user's routines, newest first, with items.
func (db *DB) ListRoutines(ctx context.Context, userID int) ([]models.RoutineRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, memo, source, goal, experience, frequency, created_at
		 FROM routines
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying routines: %w", err)
	}
	defer rows.Close()

	result := []models.RoutineRow{}
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.attachRoutineItems(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetRoutine returns one routine owned by the user, or ErrNotFound.
func (db *DB) GetRoutine(ctx context.Context, id uuid.UUID, userID int) (*models.RoutineRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, memo, source, goal, experience, frequency, created_at
		 FROM routines
		 WHERE id = $1 AND user_id = $2`,
		id, userID)

	r, err := scanRoutine(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	list := []models.RoutineRow{r}
	if err := db.attachRoutineItems(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// DeleteRoutine removes a routine owned by the user. Items cascade.
func (db *DB) DeleteRoutine(ctx context.Context, id uuid.UUID, userID int) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM routines WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting routine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRoutine(row pgx.Row) (models.RoutineRow, error) {
	var r models.RoutineRow
	var frequency *int16
	err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.Memo, &r.Source,
		&r.Goal, &r.Experience, &frequency, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("scanning routine: %w", err)
	}
	if frequency != nil {
		f := int(*frequency)
		r.Frequency = &f
	}
	r.Items = []models.RoutineItemRow{}
	return r, nil
}

// attachRoutineItems loads items for all routines in one query, keeping
// their stored order.
func (db *DB) attachRoutineItems(ctx context.Context, routines []models.RoutineRow) error {
	if len(routines) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(routines))
	index := make(map[uuid.UUID]int, len(routines))
	for i, r := range routines {
		ids[i] = r.ID
		index[r.ID] = i
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT routine_id, exercise, category, sets, reps
		 FROM routine_items
		 WHERE routine_id = ANY($1)
		 ORDER BY routine_id, position ASC`,
		ids)
	if err != nil {
		return fmt.Errorf("querying routine items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var it models.RoutineItemRow
		if err := rows.Scan(&id, &it.Exercise, &it.Category, &it.Sets, &it.Reps); err != nil {
			return fmt.Errorf("scanning routine item: %w", err)
		}
		i := index[id]
		routines[i].Items = append(routines[i].Items, it)
	}
	return rows.Err()
}

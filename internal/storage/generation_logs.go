package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/routinegen"
)

// GenerationLog records one routine generation request.
type GenerationLog struct {
	ID         int64      `json:"id"`
	UserID     int        `json:"user_id"`
	CreatedAt  time.Time  `json:"created_at"`
	Goal       string     `json:"goal"`
	Experience string     `json:"experience"`
	Equipment  []string   `json:"equipment"`
	Frequency  int        `json:"frequency"`
	ItemCount  int        `json:"item_count"`
	Saved      bool       `json:"saved"`
	RoutineID  *uuid.UUID `json:"routine_id"`
}

// NewGenerationLog describes one generate call. saved is the stored routine,
// or nil when the routine was only returned.
func NewGenerationLog(userID int, routine routinegen.GeneratedRoutine, saved *models.RoutineRow) GenerationLog {
	equipment := make([]string, 0, len(routine.Profile.Equipment))
	for _, e := range routine.Profile.Equipment.Sorted() {
		equipment = append(equipment, string(e))
	}
	entry := GenerationLog{
		UserID:     userID,
		Goal:       string(routine.Profile.Goal),
		Experience: string(routine.Profile.Experience),
		Equipment:  equipment,
		Frequency:  routine.Profile.Frequency,
		ItemCount:  len(routine.Items),
	}
	if saved != nil {
		entry.Saved = true
		id := saved.ID
		entry.RoutineID = &id
	}
	return entry
}

// InsertGenerationLog creates a log entry and returns its ID.
func (db *DB) InsertGenerationLog(ctx context.Context, log GenerationLog) (int64, error) {
	if log.Equipment == nil {
		log.Equipment = []string{}
	}
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO generation_logs (user_id, goal, experience, equipment, frequency, item_count, saved, routine_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING id`,
		log.UserID, log.Goal, log.Experience, log.Equipment, log.Frequency, log.ItemCount,
		log.Saved, log.RoutineID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting generation log: %w", err)
	}
	return id, nil
}

// QueryGenerationLogs returns the most recent generation logs for a user.
func (db *DB) QueryGenerationLogs(ctx context.Context, userID, limit int) ([]GenerationLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, created_at, goal, experience, equipment, frequency, item_count, saved, routine_id
		 FROM generation_logs
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying generation logs: %w", err)
	}
	defer rows.Close()

	logs := []GenerationLog{}
	for rows.Next() {
		var l GenerationLog
		var frequency int16
		if err := rows.Scan(&l.ID, &l.UserID, &l.CreatedAt, &l.Goal, &l.Experience, &l.Equipment,
			&frequency, &l.ItemCount, &l.Saved, &l.RoutineID); err != nil {
			return nil, fmt.Errorf("scanning generation log: %w", err)
		}
		l.Frequency = int(frequency)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

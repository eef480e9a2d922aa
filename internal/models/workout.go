package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// SetRecord is one strength set.
type SetRecord struct {
	WeightKg float64 `json:"weight_kg"`
	Reps     int     `json:"reps"`
}

// CardioRecord holds the cardio part of a workout entry.
type CardioRecord struct {
	Minutes    float64  `json:"minutes"`
	DistanceKm *float64 `json:"distance_km"`
}

// WorkoutRow is a logged workout entry for one exercise on one day.
type WorkoutRow struct {
	ID        uuid.UUID     `json:"id"`
	UserID    int           `json:"-"`
	Date      time.Time     `json:"-"`
	Category  string        `json:"category"`
	Exercise  string        `json:"exercise"`
	Type      string        `json:"type"`
	Sets      []SetRecord   `json:"sets"`
	Cardio    *CardioRecord `json:"cardio"`
	Notes     *string       `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
}

// DateString returns the workout date in DateLayout.
func (w WorkoutRow) DateString() string {
	return w.Date.Format(DateLayout)
}

// MarshalJSON adds the date in DateLayout.
func (w WorkoutRow) MarshalJSON() ([]byte, error) {
	type row WorkoutRow
	return json.Marshal(struct {
		Date string `json:"date"`
		row
	}{w.DateString(), row(w)})
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (w *WorkoutRow) UnmarshalJSON(data []byte) error {
	type row WorkoutRow
	var aux struct {
		Date string `json:"date"`
		*row
	}
	aux.row = (*row)(w)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Date == "" {
		w.Date = time.Time{}
		return nil
	}
	date, err := time.Parse(DateLayout, aux.Date)
	if err != nil {
		return fmt.Errorf("workout date: %w", err)
	}
	w.Date = date
	return nil
}

// Volume is the sum of weight × reps over all sets.
func (w WorkoutRow) Volume() float64 {
	var v float64
	for _, s := range w.Sets {
		v += s.WeightKg * float64(s.Reps)
	}
	return v
}

// WorkoutInput is the request body for logging a workout.
type WorkoutInput struct {
	Date     string        `json:"date"`
	Category string        `json:"category"`
	Exercise string        `json:"exercise"`
	Type     string        `json:"type"`
	Sets     []SetRecord   `json:"sets"`
	Cardio   *CardioRecord `json:"cardio"`
	Notes    *string       `json:"notes"`
}

// ToRow validates the input and builds a row with a fresh ID.
func (in WorkoutInput) ToRow(userID int) (WorkoutRow, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(in.Date))
	if err != nil {
		return WorkoutRow{}, errors.New("date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(in.Exercise) == "" {
		return WorkoutRow{}, errors.New("exercise is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return WorkoutRow{}, errors.New("category is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return WorkoutRow{}, errors.New("type is required")
	}
	sets := make([]SetRecord, 0, len(in.Sets))
	for _, s := range in.Sets {
		if s.Reps < 0 || s.WeightKg < 0 {
			return WorkoutRow{}, errors.New("sets must not be negative")
		}
		sets = append(sets, SetRecord{WeightKg: s.WeightKg, Reps: s.Reps})
	}
	return WorkoutRow{
		ID:       uuid.New(),
		UserID:   userID,
		Date:     date,
		Category: strings.TrimSpace(in.Category),
		Exercise: strings.TrimSpace(in.Exercise),
		Type:     strings.TrimSpace(in.Type),
		Sets:     sets,
		Cardio:   in.Cardio,
		Notes:    in.Notes,
	}, nil
}

// DailySummary aggregates a calendar day.
type DailySummary struct {
	Date      string  `json:"date"`
	SetsCount int     `json:"sets_count"`
	Volume    float64 `json:"volume"`
}

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/routinegen"
)

// Routine sources.
const (
	SourceManual    = "manual"
	SourceGenerated = "generated"
)

// RoutineRow is a routine with its ordered items, as stored in the
// routines and routine_items tables.
type RoutineRow struct {
	ID         uuid.UUID        `json:"id"`
	UserID     int              `json:"-"`
	Name       string           `json:"name"`
	Memo       *string          `json:"memo"`
	Source     string           `json:"source"`
	Goal       *string          `json:"goal,omitempty"`
	Experience *string          `json:"experience,omitempty"`
	Frequency  *int             `json:"frequency,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	Items      []RoutineItemRow `json:"items"`
}

// RoutineItemRow is one prescription inside a routine.
type RoutineItemRow struct {
	Exercise string `json:"exercise"`
	Category string `json:"category"`
	Sets     int    `json:"sets"`
	Reps     string `json:"reps"`
}

// RoutineInput is the request body for creating a routine. Source and the
// profile fields are optional; a routine pushed from the CLI carries them to
// keep its provenance.
type RoutineInput struct {
	Name       string           `json:"name"`
	Memo       *string          `json:"memo"`
	Items      []RoutineItemRow `json:"items"`
	Source     string           `json:"source,omitempty"`
	Goal       *string          `json:"goal,omitempty"`
	Experience *string          `json:"experience,omitempty"`
	Frequency  *int             `json:"frequency,omitempty"`
}

// Validate checks the fields a stored routine cannot do without.
func (in RoutineInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}
	switch in.Source {
	case "", SourceManual, SourceGenerated:
	default:
		return fmt.Errorf("unknown source %q", in.Source)
	}
	if in.Frequency != nil && (*in.Frequency < routinegen.MinFrequency || *in.Frequency > routinegen.MaxFrequency) {
		return fmt.Errorf("frequency must be between %d and %d", routinegen.MinFrequency, routinegen.MaxFrequency)
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.Exercise) == "" {
			return fmt.Errorf("items[%d]: exercise is required", i)
		}
		if it.Sets <= 0 {
			return fmt.Errorf("items[%d]: sets must be positive", i)
		}
	}
	return nil
}

// NewRoutine builds a row with a fresh ID from a validated input. An empty
// source means manual.
func NewRoutine(userID int, in RoutineInput) RoutineRow {
	items := in.Items
	if items == nil {
		items = []RoutineItemRow{}
	}
	source := in.Source
	if source == "" {
		source = SourceManual
	}
	return RoutineRow{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       strings.TrimSpace(in.Name),
		Memo:       in.Memo,
		Source:     source,
		Goal:       in.Goal,
		Experience: in.Experience,
		Frequency:  in.Frequency,
		Items:      items,
	}
}

// GeneratedInput converts generator output into a routine input, keeping the
// normalized profile it was generated for.
func GeneratedInput(r routinegen.GeneratedRoutine) RoutineInput {
	items := make([]RoutineItemRow, len(r.Items))
	for i, p := range r.Items {
		items[i] = RoutineItemRow{Exercise: p.Exercise, Category: p.Category, Sets: p.Sets, Reps: p.Reps}
	}
	memo := r.Memo
	goal := string(r.Profile.Goal)
	experience := string(r.Profile.Experience)
	frequency := r.Profile.Frequency
	return RoutineInput{
		Name:       r.Name,
		Memo:       &memo,
		Items:      items,
		Source:     SourceGenerated,
		Goal:       &goal,
		Experience: &experience,
		Frequency:  &frequency,
	}
}

// NewGeneratedRoutine converts generator output into a row.
func NewGeneratedRoutine(userID int, r routinegen.GeneratedRoutine) RoutineRow {
	return NewRoutine(userID, GeneratedInput(r))
}

package mcp

import (
	"context"
	"time"

	"github.com/meltforce/liftplan/internal/coach"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	InsertRoutine(ctx context.Context, r *models.RoutineRow) error
	ListRoutines(ctx context.Context, userID int) ([]models.RoutineRow, error)
	QueryWorkouts(ctx context.Context, userID int, start, end time.Time) ([]models.WorkoutRow, error)
	InsertGenerationLog(ctx context.Context, log storage.GenerationLog) (int64, error)

	// Analytics. A zero start or end leaves that side of the range open.
	PRTrend(ctx context.Context, userID int, exercise string, start, end time.Time) ([]storage.OneRMPoint, error)
	VolumeByPeriod(ctx context.Context, userID int, bucket string) ([]storage.PeriodVolume, error)
	MuscleVolume(ctx context.Context, userID int, start, end time.Time) ([]storage.CategoryVolume, error)
	CoachReport(ctx context.Context, userID, days int) (*coach.Report, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

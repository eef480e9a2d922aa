package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/coach"
	lpmcp "github.com/meltforce/liftplan/internal/mcp"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/storage"
	"golang.org/x/time/rate"
)

// Store is the persistence surface the handlers need. *storage.DB
// satisfies it; tests use an in-memory fake.
type Store interface {
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)

	InsertRoutine(ctx context.Context, r *models.RoutineRow) error
	ListRoutines(ctx context.Context, userID int) ([]models.RoutineRow, error)
	GetRoutine(ctx context.Context, id uuid.UUID, userID int) (*models.RoutineRow, error)
	DeleteRoutine(ctx context.Context, id uuid.UUID, userID int) error

	InsertWorkout(ctx context.Context, w *models.WorkoutRow) error
	QueryWorkouts(ctx context.Context, userID int, start, end time.Time) ([]models.WorkoutRow, error)
	WorkoutsOnDate(ctx context.Context, userID int, date time.Time) ([]models.WorkoutRow, error)
	LastWorkoutForExercise(ctx context.Context, userID int, exercise string) (*models.WorkoutRow, error)
	DeleteWorkout(ctx context.Context, id uuid.UUID, userID int) error
	DailySummary(ctx context.Context, userID int, date time.Time) (*models.DailySummary, error)

	InsertGenerationLog(ctx context.Context, log storage.GenerationLog) (int64, error)
	QueryGenerationLogs(ctx context.Context, userID, limit int) ([]storage.GenerationLog, error)

	VolumeByPeriod(ctx context.Context, userID int, bucket string) ([]storage.PeriodVolume, error)
	MuscleVolume(ctx context.Context, userID int, start, end time.Time) ([]storage.CategoryVolume, error)
	ExerciseDetail(ctx context.Context, userID int, exercise string, start, end time.Time) ([]storage.ExerciseDay, error)
	PRTrend(ctx context.Context, userID int, exercise string, start, end time.Time) ([]storage.OneRMPoint, error)
	CoachReport(ctx context.Context, userID, days int) (*coach.Report, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store   Store
	log     *slog.Logger
	apiKey  string
	limiter *rate.Limiter
	whois   WhoIsClient
	mcp     http.Handler
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit limits the generator endpoints to rps requests per second
// with the given burst. Zero rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
		}
	}
}

// WithMCP mounts an MCP HTTP handler at /mcp.
func WithMCP(h http.Handler) Option {
	return func(s *Server) { s.mcp = h }
}

// New creates a new Server with all routes configured.
func New(store Store, apiKey string, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		store:  store,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// SetTailscale switches identity resolution from the dev user to tailnet
// WhoIs lookups. Call before serving.
func (s *Server) SetTailscale(lc WhoIsClient) {
	s.whois = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identify)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)
		r.Get("/config", s.handleConfig)

		// Routine generator
		r.Route("/ai", func(r chi.Router) {
			if s.limiter != nil {
				r.Use(RateLimit(s.limiter))
			}
			r.Get("/templates", s.handleTemplates)
			r.Get("/history", s.handleGenerationHistory)
			r.Post("/routine", s.handleGenerate)
			r.With(APIKeyAuth(s.apiKey)).Post("/routine/save", s.handleGenerateSave)
		})

		r.Get("/routines", s.handleListRoutines)
		r.Get("/routines/{id}", s.handleGetRoutine)
		r.Get("/workouts", s.handleQueryWorkouts)
		r.Get("/workouts/date/{date}", s.handleWorkoutsOnDate)
		r.Get("/workouts/exercise/{exercise}/last", s.handleLastWorkout)
		r.Get("/calendar-summary/{date}", s.handleCalendarSummary)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/weekly-volume", s.handleVolume(storage.BucketWeek))
			r.Get("/monthly-volume", s.handleVolume(storage.BucketMonth))
			r.Get("/muscle-volume-range", s.handleMuscleVolume)
			r.Get("/pr-trend", s.handlePRTrend)
			r.Get("/exercise-detail", s.handleExerciseDetail)
		})
		r.Get("/coach/recommendations", s.handleCoachRecommendations)

		// Writes (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/routines", s.handleCreateRoutine)
			r.Delete("/routines/{id}", s.handleDeleteRoutine)
			r.Post("/workouts", s.handleCreateWorkout)
			r.Delete("/workouts/{id}", s.handleDeleteWorkout)
		})
	})

	// MCP tools can write, so the whole endpoint needs the API key and
	// shares the generator's rate limit.
	if s.mcp != nil {
		s.router.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			if s.limiter != nil {
				r.Use(RateLimit(s.limiter))
			}
			r.Handle("/mcp", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Tool handlers read the caller from their own context key.
				ctx := lpmcp.WithUserID(r.Context(), userIDFromContext(r))
				s.mcp.ServeHTTP(w, r.WithContext(ctx))
			}))
		})
	}
}

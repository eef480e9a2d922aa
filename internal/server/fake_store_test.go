package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/coach"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/storage"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]int
	routines []models.RoutineRow
	workouts []models.WorkoutRow
	logs     []storage.GenerationLog
	err      error

	// Arguments of the last analytics call.
	gotBucket   string
	gotExercise string
	gotStart    time.Time
	gotEnd      time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]int{"local": 1}}
}

func (f *fakeStore) GetOrCreateUser(ctx context.Context, login, displayName string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.users[login]; ok {
		return id, nil
	}
	id := len(f.users) + 1
	f.users[login] = id
	return id, nil
}

func (f *fakeStore) InsertRoutine(ctx context.Context, r *models.RoutineRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	r.CreatedAt = time.Now()
	f.routines = append(f.routines, *r)
	return nil
}

func (f *fakeStore) ListRoutines(ctx context.Context, userID int) ([]models.RoutineRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.RoutineRow{}
	for _, r := range f.routines {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, f.err
}

func (f *fakeStore) GetRoutine(ctx context.Context, id uuid.UUID, userID int) (*models.RoutineRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.routines {
		if r.ID == id && r.UserID == userID {
			return &r, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) DeleteRoutine(ctx context.Context, id uuid.UUID, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.routines {
		if r.ID == id && r.UserID == userID {
			f.routines = append(f.routines[:i], f.routines[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) InsertWorkout(ctx context.Context, w *models.WorkoutRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.CreatedAt = time.Now()
	f.workouts = append(f.workouts, *w)
	return f.err
}

func (f *fakeStore) QueryWorkouts(ctx context.Context, userID int, start, end time.Time) ([]models.WorkoutRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.WorkoutRow{}
	for _, w := range f.workouts {
		if w.UserID == userID && !w.Date.Before(start) && w.Date.Before(end) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) WorkoutsOnDate(ctx context.Context, userID int, date time.Time) ([]models.WorkoutRow, error) {
	return f.QueryWorkouts(ctx, userID, date, date.AddDate(0, 0, 1))
}

func (f *fakeStore) LastWorkoutForExercise(ctx context.Context, userID int, exercise string) (*models.WorkoutRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matches []models.WorkoutRow
	for _, w := range f.workouts {
		if w.UserID == userID && w.Exercise == exercise {
			matches = append(matches, w)
		}
	}
	if len(matches) == 0 {
		return nil, storage.ErrNotFound
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Date.After(matches[j].Date) })
	return &matches[0], nil
}

func (f *fakeStore) DeleteWorkout(ctx context.Context, id uuid.UUID, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, w := range f.workouts {
		if w.ID == id && w.UserID == userID {
			f.workouts = append(f.workouts[:i], f.workouts[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DailySummary(ctx context.Context, userID int, date time.Time) (*models.DailySummary, error) {
	ws, _ := f.WorkoutsOnDate(ctx, userID, date)
	s := &models.DailySummary{Date: date.Format(models.DateLayout)}
	for _, w := range ws {
		s.SetsCount += len(w.Sets)
		s.Volume += w.Volume()
	}
	return s, nil
}

func (f *fakeStore) InsertGenerationLog(ctx context.Context, log storage.GenerationLog) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	log.ID = int64(len(f.logs) + 1)
	f.logs = append(f.logs, log)
	return log.ID, nil
}

func (f *fakeStore) QueryGenerationLogs(ctx context.Context, userID, limit int) ([]storage.GenerationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []storage.GenerationLog{}
	for i := len(f.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if f.logs[i].UserID == userID {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

func (f *fakeStore) VolumeByPeriod(ctx context.Context, userID int, bucket string) ([]storage.PeriodVolume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotBucket = bucket
	return []storage.PeriodVolume{{Period: "2025-01-06", Volume: 1200}}, f.err
}

func (f *fakeStore) MuscleVolume(ctx context.Context, userID int, start, end time.Time) ([]storage.CategoryVolume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotStart, f.gotEnd = start, end
	return []storage.CategoryVolume{{Category: "chest", Volume: 800}}, f.err
}

func (f *fakeStore) ExerciseDetail(ctx context.Context, userID int, exercise string, start, end time.Time) ([]storage.ExerciseDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotExercise, f.gotStart, f.gotEnd = exercise, start, end
	return []storage.ExerciseDay{{Date: "2025-01-06", Volume: 800, TopWeight: 100}}, f.err
}

func (f *fakeStore) PRTrend(ctx context.Context, userID int, exercise string, start, end time.Time) ([]storage.OneRMPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotExercise, f.gotStart, f.gotEnd = exercise, start, end
	return []storage.OneRMPoint{{Date: "2025-01-06", OneRM: 116.67}}, f.err
}

func (f *fakeStore) CoachReport(ctx context.Context, userID, days int) (*coach.Report, error) {
	if err := coach.ValidateDays(days); err != nil {
		return nil, err
	}
	f.mu.Lock()
	var ws []models.WorkoutRow
	for _, w := range f.workouts {
		if w.UserID == userID {
			ws = append(ws, w)
		}
	}
	f.mu.Unlock()
	report := coach.Recommend(ws, days, time.Now())
	return &report, nil
}

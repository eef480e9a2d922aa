package coach

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/meltforce/liftplan/internal/models"
)

func day(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func workout(date, exercise string, weight float64, reps int) models.WorkoutRow {
	return models.WorkoutRow{
		Date:     day(date),
		Category: "가슴",
		Exercise: exercise,
		Type:     "strength",
		Sets:     []models.SetRecord{{WeightKg: weight, Reps: reps}},
	}
}

func titles(r Report) []string {
	out := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		out[i] = rec.Title
	}
	return out
}

func hasTitle(r Report, sub string) bool {
	for _, t := range titles(r) {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// TestEpleyOneRM covers the formula and the non-positive guards.
func TestEpleyOneRM(t *testing.T) {
	tests := []struct {
		weight float64
		reps   int
		want   float64
	}{
		{60, 10, 80},
		{100, 1, 100 * (1 + 1.0/30)},
		{0, 5, 0},
		{100, 0, 0},
		{-20, 5, 0},
	}
	for _, tt := range tests {
		if got := EpleyOneRM(tt.weight, tt.reps); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EpleyOneRM(%v, %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
		}
	}
}

// TestValidateDays verifies the [7, 180] bounds.
func TestValidateDays(t *testing.T) {
	for _, d := range []int{7, 30, 180} {
		if err := ValidateDays(d); err != nil {
			t.Errorf("ValidateDays(%d) = %v", d, err)
		}
	}
	for _, d := range []int{0, 6, 181} {
		if ValidateDays(d) == nil {
			t.Errorf("ValidateDays(%d) accepted", d)
		}
	}
}

// TestInsufficientData verifies a sparse window is flagged but still
// carries metrics.
func TestInsufficientData(t *testing.T) {
	r := Recommend([]models.WorkoutRow{
		workout("2025-03-01", "벤치프레스", 60, 10),
		workout("2025-03-02", "바벨로우", 50, 10),
	}, 30, time.Now())

	if !r.InsufficientData {
		t.Error("expected insufficient data")
	}
	if len(r.Metrics.WeeklyVolume) == 0 {
		t.Error("weekly volume missing")
	}
}

// TestLowFrequencyAndStagnantVolume verifies four flat weeks at one session
// a week trigger both the frequency and the overload rules.
func TestLowFrequencyAndStagnantVolume(t *testing.T) {
	var ws []models.WorkoutRow
	for _, d := range []string{"2025-04-01", "2025-04-08", "2025-04-15", "2025-04-22"} {
		ws = append(ws, workout(d, "벤치프레스", 60, 10))
	}
	r := Recommend(ws, 30, time.Now())

	if len(r.Metrics.WeeklyVolume) != 4 {
		t.Fatalf("weeks = %+v", r.Metrics.WeeklyVolume)
	}
	if !hasTitle(r, "Increase Training Frequency") {
		t.Errorf("titles = %v, want frequency advice", titles(r))
	}
	if !hasTitle(r, "Progressive Overload") {
		t.Errorf("titles = %v, want overload advice", titles(r))
	}
	if r.Recommendations[0].Priority != PriorityHigh {
		t.Errorf("first priority = %s, want high", r.Recommendations[0].Priority)
	}
}

// TestVolumeSpike verifies doubling weekly volume triggers recovery advice.
func TestVolumeSpike(t *testing.T) {
	r := Recommend([]models.WorkoutRow{
		workout("2025-05-01", "벤치프레스", 60, 10),
		workout("2025-05-08", "벤치프레스", 120, 10),
	}, 30, time.Now())

	if !hasTitle(r, "Recovery") {
		t.Fatalf("titles = %v, want recovery advice", titles(r))
	}
	for _, rec := range r.Recommendations {
		if strings.Contains(rec.Title, "Recovery") && !strings.Contains(rec.Reason, "100%") {
			t.Errorf("reason = %q", rec.Reason)
		}
	}
}

// TestPlateau verifies a 1RM change within 2% is reported as a plateau.
func TestPlateau(t *testing.T) {
	r := Recommend([]models.WorkoutRow{
		workout("2025-06-01", "벤치프레스", 80, 5),
		workout("2025-06-15", "벤치프레스", 81, 5),
	}, 30, time.Now())

	if len(r.Metrics.PRTrend) != 1 || r.Metrics.PRTrend[0].ChangePct != 1.25 {
		t.Fatalf("pr trend = %+v", r.Metrics.PRTrend)
	}
	if !hasTitle(r, "Plateau") {
		t.Errorf("titles = %v, want plateau", titles(r))
	}
}

// TestWindowEndsOnLatestWorkout verifies the window is anchored on the most
// recent entry, not on the current time, and excludes older entries.
func TestWindowEndsOnLatestWorkout(t *testing.T) {
	r := Recommend([]models.WorkoutRow{
		workout("2025-03-23", "스쿼트", 100, 5),
		workout("2025-03-24", "스쿼트", 100, 5),
		workout("2025-04-22", "스쿼트", 100, 5),
	}, 30, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	if r.Start != "2025-03-24" || r.End != "2025-04-22" {
		t.Errorf("window = %s..%s", r.Start, r.End)
	}
	var total float64
	for _, w := range r.Metrics.WeeklyVolume {
		total += w.Volume
	}
	if total != 1000 {
		t.Errorf("total volume = %v, want 1000 (two entries)", total)
	}
}

// TestRecommendNoWorkouts verifies an empty history yields an empty,
// flagged report anchored on now.
func TestRecommendNoWorkouts(t *testing.T) {
	now := time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC)
	r := Recommend(nil, 7, now)

	if !r.InsufficientData || len(r.Recommendations) != 0 {
		t.Errorf("report = %+v", r)
	}
	if r.Start != "2025-07-04" || r.End != "2025-07-10" {
		t.Errorf("window = %s..%s", r.Start, r.End)
	}
	if r.Metrics.WeeklyVolume == nil || r.Metrics.PRTrend == nil {
		t.Error("metrics should be empty slices, not nil")
	}
}

// TestPRTrendOrdering verifies single-day exercises are skipped and the
// flattest change is listed first.
func TestPRTrendOrdering(t *testing.T) {
	trend := prTrend([]models.WorkoutRow{
		workout("2025-01-01", "스쿼트", 100, 5),
		workout("2025-01-20", "스쿼트", 120, 5),
		workout("2025-01-01", "벤치프레스", 80, 5),
		workout("2025-01-20", "벤치프레스", 82, 5),
		workout("2025-01-05", "데드리프트", 140, 5),
	})
	if len(trend) != 2 {
		t.Fatalf("trend = %+v", trend)
	}
	if trend[0].Exercise != "벤치프레스" || trend[1].Exercise != "스쿼트" {
		t.Errorf("order = %s, %s", trend[0].Exercise, trend[1].Exercise)
	}
	if trend[1].ChangePct != 20 {
		t.Errorf("squat change = %v, want 20", trend[1].ChangePct)
	}
}

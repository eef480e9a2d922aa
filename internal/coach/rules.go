package coach

import (
	"fmt"
	"math"
	"strconv"
)

// Rule thresholds.
const (
	lowFrequencyDays = 2.0
	stagnantBand     = 0.15
	spikeRatio       = 1.5
	plateauPct       = 2.0
)

func analyzeRules(m Metrics) []Recommendation {
	recs := []Recommendation{}

	if n := len(m.WeeklyFrequency); n > 0 {
		total := 0
		for _, f := range m.WeeklyFrequency {
			total += f.Days
		}
		avg := float64(total) / float64(n)
		if avg < lowFrequencyDays {
			recs = append(recs, Recommendation{
				Title:    "Increase Training Frequency",
				Reason:   fmt.Sprintf("Average weekly sessions is %.1f (< 2).", avg),
				Action:   "Add 1 additional training day per week.",
				Priority: PriorityHigh,
			})
		}
	}

	// Flat volume over the last (up to) four weeks.
	if len(m.WeeklyVolume) >= 3 {
		recent := m.WeeklyVolume[max(0, len(m.WeeklyVolume)-4):]
		lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
		for _, w := range recent {
			lo, hi = min(lo, w.Volume), max(hi, w.Volume)
			sum += w.Volume
		}
		avg := sum / float64(len(recent))
		if avg > 0 && hi-lo <= stagnantBand*avg {
			recs = append(recs, Recommendation{
				Title:    "Apply Progressive Overload",
				Reason:   "Weekly volume has been relatively flat for several weeks.",
				Action:   "Increase load or total reps by 5-10% next week.",
				Priority: PriorityMedium,
			})
		}
	}

	if n := len(m.WeeklyVolume); n >= 2 {
		last, prev := m.WeeklyVolume[n-1].Volume, m.WeeklyVolume[n-2].Volume
		if prev > 0 && last >= spikeRatio*prev {
			recs = append(recs, Recommendation{
				Title:    "Manage Recovery After Volume Spike",
				Reason:   fmt.Sprintf("Last week's volume jumped by %.0f%%.", (last/prev-1)*100),
				Action:   "Add an extra rest day and monitor fatigue; avoid further increases this week.",
				Priority: PriorityMedium,
			})
		}
	}

	// Only the flattest exercise is reported.
	for _, t := range m.PRTrend {
		if math.Abs(t.ChangePct) <= plateauPct {
			recs = append(recs, Recommendation{
				Title:    "Plateau Detected in PR",
				Reason:   fmt.Sprintf("%s 1RM change is %s%% (flat).", t.Exercise, strconv.FormatFloat(t.ChangePct, 'f', -1, 64)),
				Action:   "Consider a deload week or change rep range (e.g., 8-12 to 5-8).",
				Priority: PriorityLow,
			})
			break
		}
	}

	return recs
}

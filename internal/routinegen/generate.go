// Package routinegen builds workout routines from a static rule table.
//
// Generation is a fixed pipeline: the raw profile is normalized, a template
// is selected by goal and experience, prescriptions needing equipment the
// user lacks are removed, and the result is named. Every step is pure, so
// Generate is safe for concurrent use and returns identical output for
// identical input.
package routinegen

import "fmt"

// GeneratedRoutine is the output of Generate. The caller owns it; Items
// never aliases template storage.
type GeneratedRoutine struct {
	Name    string         `json:"name"`
	Memo    string         `json:"memo"`
	Items   []Prescription `json:"items"`
	Profile Profile        `json:"profile"`
}

// Empty reports whether filtering left no compatible exercises.
func (r GeneratedRoutine) Empty() bool { return len(r.Items) == 0 }

// Generate runs the full pipeline for a raw profile.
func Generate(up UserProfile) GeneratedRoutine {
	return generateFor(Normalize(up))
}

// generateFor runs selection, filtering and assembly for an already
// normalized profile.
func generateFor(p Profile) GeneratedRoutine {
	t := Select(p.Goal, p.Experience)
	return Assemble(p, Filter(t.Items, p.Equipment))
}

// Assemble attaches the derived name and memo to the filtered items.
func Assemble(p Profile, items []Prescription) GeneratedRoutine {
	return GeneratedRoutine{
		Name:    RoutineName(p.Goal),
		Memo:    RoutineMemo(p.Experience),
		Items:   items,
		Profile: p,
	}
}

// RoutineName is the display name for a routine generated for goal.
func RoutineName(goal Goal) string {
	label := goal.Label()
	return fmt.Sprintf("%s%s 위한 맞춤 루틴", label, objectParticle(label))
}

// RoutineMemo is the memo for a routine generated for experience.
func RoutineMemo(experience Experience) string {
	return fmt.Sprintf("%s 레벨에 맞춰 자동 생성된 루틴입니다.", experience.Label())
}

// objectParticle picks 을 or 를 from the final syllable of s.
func objectParticle(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return "를"
	}
	last := r[len(r)-1]
	if last < 0xAC00 || last > 0xD7A3 {
		return "를"
	}
	if (last-0xAC00)%28 != 0 {
		return "을"
	}
	return "를"
}

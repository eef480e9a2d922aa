package routinegen

import "fmt"

// Prescription is one exercise entry in a routine.
type Prescription struct {
	Exercise string `json:"exercise"`
	Category string `json:"category"`
	Sets     int    `json:"sets"`
	Reps     string `json:"reps"`
}

// Template is the static, ordered default prescription sequence for a
// goal/experience pair. Templates are shared and must not be modified.
type Template struct {
	Goal  Goal
	Items []Prescription
}

type templateKey struct {
	goal       Goal
	experience Experience
}

// Muscle categories.
const (
	catLower  = "하체"
	catUpper  = "상체"
	catFull   = "전신"
	catCardio = "유산소"
)

func rx(exercise, category string, sets int, reps string) Prescription {
	return Prescription{Exercise: exercise, Category: category, Sets: sets, Reps: reps}
}

var fatLossTemplate = &Template{Goal: GoalFatLoss, Items: []Prescription{
	rx("버피", catFull, 3, "10-15"),
	rx("런닝", catCardio, 1, "30분"),
	rx("마운틴클라이머", catFull, 3, "30초"),
	rx("플랭크", catFull, 3, "30-60초"),
}}

// templates has exactly one row per goal × experience pair. Fat-loss does
// not differ by experience, so all three rows point at one template.
var templates = map[templateKey]*Template{
	{GoalStrength, ExperienceBeginner}: {Goal: GoalStrength, Items: []Prescription{
		rx("스쿼트", catLower, 3, "8-12"),
		rx("덤벨프레스", catUpper, 3, "8-12"),
		rx("랫풀다운", catUpper, 3, "8-12"),
		rx("루마니안 데드리프트", catLower, 3, "8-12"),
	}},
	{GoalStrength, ExperienceIntermediate}: {Goal: GoalStrength, Items: []Prescription{
		rx("데드리프트", catFull, 4, "6-10"),
		rx("벤치프레스", catUpper, 4, "6-10"),
		rx("바벨로우", catUpper, 4, "6-10"),
		rx("스쿼트", catLower, 4, "6-10"),
	}},
	{GoalStrength, ExperienceAdvanced}: {Goal: GoalStrength, Items: []Prescription{
		rx("클린&프레스", catFull, 5, "3-8"),
		rx("오버헤드프레스", catUpper, 5, "3-8"),
		rx("풀업", catUpper, 5, "3-8"),
		rx("프론트 스쿼트", catLower, 5, "3-8"),
	}},

	{GoalFatLoss, ExperienceBeginner}:     fatLossTemplate,
	{GoalFatLoss, ExperienceIntermediate}: fatLossTemplate,
	{GoalFatLoss, ExperienceAdvanced}:     fatLossTemplate,

	{GoalHypertrophy, ExperienceBeginner}: {Goal: GoalHypertrophy, Items: []Prescription{
		rx("덤벨프레스", catUpper, 3, "10-15"),
		rx("레그프레스", catLower, 3, "10-15"),
		rx("덤벨로우", catUpper, 3, "10-15"),
		rx("레그컬", catLower, 3, "10-15"),
	}},
	{GoalHypertrophy, ExperienceIntermediate}: {Goal: GoalHypertrophy, Items: []Prescription{
		rx("벤치프레스", catUpper, 4, "8-12"),
		rx("스쿼트", catLower, 4, "8-12"),
		rx("바벨로우", catUpper, 4, "8-12"),
		rx("루마니안 데드리프트", catLower, 4, "8-12"),
	}},
	{GoalHypertrophy, ExperienceAdvanced}: {Goal: GoalHypertrophy, Items: []Prescription{
		rx("데드리프트", catFull, 5, "6-10"),
		rx("오버헤드프레스", catUpper, 5, "6-10"),
		rx("인클라인 덤벨프레스", catUpper, 5, "6-10"),
		rx("불가리안 스플릿 스쿼트", catLower, 5, "6-10"),
	}},
}

func init() {
	if err := checkTables(); err != nil {
		panic("routinegen: " + err.Error())
	}
}

// checkTables verifies the template table covers every goal × experience
// pair and that every templated exercise has an equipment entry.
func checkTables() error {
	for _, g := range Goals {
		for _, e := range Experiences {
			t, ok := templates[templateKey{g, e}]
			if !ok || t == nil {
				return fmt.Errorf("missing template for %s/%s", g, e)
			}
			if t.Goal != g {
				return fmt.Errorf("template for %s/%s is tagged %s", g, e, t.Goal)
			}
			for _, p := range t.Items {
				if p.Sets <= 0 {
					return fmt.Errorf("%s/%s: %s has %d sets", g, e, p.Exercise, p.Sets)
				}
				if _, ok := requirements[p.Exercise]; !ok {
					return fmt.Errorf("%s/%s: no equipment entry for %q", g, e, p.Exercise)
				}
			}
		}
	}
	if len(templates) != len(Goals)*len(Experiences) {
		return fmt.Errorf("template table has %d rows, want %d", len(templates), len(Goals)*len(Experiences))
	}
	return nil
}

// Select returns the template for the pair. The returned template is shared
// and must be treated as read-only. Both values must come from the closed
// enums; Normalize guarantees that.
func Select(goal Goal, experience Experience) *Template {
	t, ok := templates[templateKey{goal, experience}]
	if !ok {
		panic(fmt.Sprintf("routinegen: no template for %q/%q", goal, experience))
	}
	return t
}

// TemplateRow is one row of the template table, for catalogue listings.
type TemplateRow struct {
	Goal       Goal           `json:"goal"`
	Experience Experience     `json:"experience"`
	Items      []Prescription `json:"items"`
}

// Templates returns a copy of the full table in enum order.
func Templates() []TemplateRow {
	rows := make([]TemplateRow, 0, len(templates))
	for _, g := range Goals {
		for _, e := range Experiences {
			t := Select(g, e)
			rows = append(rows, TemplateRow{
				Goal:       g,
				Experience: e,
				Items:      append([]Prescription(nil), t.Items...),
			})
		}
	}
	return rows
}

package routinegen

import (
	"encoding/json"
	"sort"
	"strings"
)

// Goal is the training goal a routine is generated for.
type Goal string

const (
	GoalStrength    Goal = "strength"
	GoalFatLoss     Goal = "fat-loss"
	GoalHypertrophy Goal = "hypertrophy"
)

// Experience is the lifter's training experience level.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Equipment is a tag for a piece of gear a prescription may need.
type Equipment string

const (
	EquipmentDumbbell      Equipment = "dumbbell"
	EquipmentBarbell       Equipment = "barbell"
	EquipmentMachine       Equipment = "machine"
	EquipmentKettlebell    Equipment = "kettlebell"
	EquipmentBand          Equipment = "band"
	EquipmentBodyweight    Equipment = "bodyweight"
	EquipmentRowingMachine Equipment = "rowing-machine"
	EquipmentCycleMachine  Equipment = "cycle-machine"
)

// Closed enum sets, in display order.
var (
	Goals       = []Goal{GoalStrength, GoalFatLoss, GoalHypertrophy}
	Experiences = []Experience{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
)

// EquipmentTags lists the known equipment tags in display order.
var EquipmentTags = []Equipment{
	EquipmentDumbbell, EquipmentBarbell, EquipmentMachine, EquipmentKettlebell,
	EquipmentBand, EquipmentBodyweight, EquipmentRowingMachine, EquipmentCycleMachine,
}

const (
	DefaultGoal       = GoalStrength
	DefaultExperience = ExperienceBeginner
	DefaultFrequency  = 3
	MinFrequency      = 1
	MaxFrequency      = 7
)

var goalLabels = map[Goal]string{
	GoalStrength:    "근력 향상",
	GoalFatLoss:     "체중 감량",
	GoalHypertrophy: "근육량 증가",
}

var experienceLabels = map[Experience]string{
	ExperienceBeginner:     "초보자",
	ExperienceIntermediate: "중급자",
	ExperienceAdvanced:     "고급자",
}

var equipmentLabels = map[Equipment]string{
	EquipmentDumbbell:      "덤벨",
	EquipmentBarbell:       "바벨",
	EquipmentMachine:       "머신",
	EquipmentKettlebell:    "케틀벨",
	EquipmentBand:          "밴드",
	EquipmentBodyweight:    "체중",
	EquipmentRowingMachine: "로잉머신",
	EquipmentCycleMachine:  "사이클머신",
}

// Label returns the Korean display label of the goal.
func (g Goal) Label() string { return goalLabels[g] }

// Label returns the Korean display label of the experience level.
func (e Experience) Label() string { return experienceLabels[e] }

// Label returns the Korean display label of the tag, or the tag itself when
// it is not one of the known tags.
func (e Equipment) Label() string {
	if l, ok := equipmentLabels[e]; ok {
		return l
	}
	return string(e)
}

// ParseGoal accepts a goal code or its display label.
func ParseGoal(s string) (Goal, bool) {
	s = strings.TrimSpace(s)
	for _, g := range Goals {
		if strings.EqualFold(s, string(g)) || s == g.Label() {
			return g, true
		}
	}
	return "", false
}

// ParseExperience accepts an experience code or its display label.
func ParseExperience(s string) (Experience, bool) {
	s = strings.TrimSpace(s)
	for _, e := range Experiences {
		if strings.EqualFold(s, string(e)) || s == e.Label() {
			return e, true
		}
	}
	return "", false
}

// ParseEquipment maps a code or display label to its tag. Unknown non-empty
// values are returned lower-cased as free-form tags.
func ParseEquipment(s string) (Equipment, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, e := range EquipmentTags {
		if strings.EqualFold(s, string(e)) || s == e.Label() {
			return e, true
		}
	}
	return Equipment(strings.ToLower(s)), true
}

// EquipmentSet is an immutable set of equipment tags.
type EquipmentSet map[Equipment]struct{}

// NewEquipmentSet builds a set from the given tags.
func NewEquipmentSet(tags ...Equipment) EquipmentSet {
	set := make(EquipmentSet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether tag is in the set.
func (s EquipmentSet) Has(tag Equipment) bool {
	_, ok := s[tag]
	return ok
}

// Intersects reports whether the two sets share at least one tag.
func (s EquipmentSet) Intersects(other EquipmentSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for t := range small {
		if large.Has(t) {
			return true
		}
	}
	return false
}

// Sorted returns the tags in lexical order.
func (s EquipmentSet) Sorted() []Equipment {
	out := make([]Equipment, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarshalJSON encodes the set as a sorted array of tags.
func (s EquipmentSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of tags.
func (s *EquipmentSet) UnmarshalJSON(data []byte) error {
	var tags []Equipment
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*s = NewEquipmentSet(tags...)
	return nil
}

// UserProfile is the raw profile as submitted by a client form. Values are
// untrusted and may be empty or outside the known enums.
type UserProfile struct {
	Goal       string   `json:"goal"`
	Experience string   `json:"experience"`
	Equipment  []string `json:"equipment"`
	Frequency  int      `json:"frequency"`
}

// Profile is a normalized UserProfile. Every field holds a defined value.
type Profile struct {
	Goal       Goal         `json:"goal"`
	Experience Experience   `json:"experience"`
	Equipment  EquipmentSet `json:"equipment"`
	Frequency  int          `json:"frequency"`
}

// Normalize defaults unknown goal and experience values, parses equipment
// tags and clamps frequency into [MinFrequency, MaxFrequency]. A zero
// frequency means unset and becomes DefaultFrequency.
func Normalize(up UserProfile) Profile {
	p := Profile{
		Goal:       DefaultGoal,
		Experience: DefaultExperience,
		Equipment:  make(EquipmentSet, len(up.Equipment)),
		Frequency:  clampFrequency(up.Frequency),
	}
	if g, ok := ParseGoal(up.Goal); ok {
		p.Goal = g
	}
	if e, ok := ParseExperience(up.Experience); ok {
		p.Experience = e
	}
	for _, raw := range up.Equipment {
		if tag, ok := ParseEquipment(raw); ok {
			p.Equipment[tag] = struct{}{}
		}
	}
	return p
}

func clampFrequency(f int) int {
	switch {
	case f == 0:
		return DefaultFrequency
	case f < MinFrequency:
		return MinFrequency
	case f > MaxFrequency:
		return MaxFrequency
	}
	return f
}

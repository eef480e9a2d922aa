package routinegen

// requirements maps an exercise name to the equipment it can be done with.
// A prescription survives filtering when the user owns any one of the tags.
// An empty set means no equipment is needed. Keep this in lockstep with the
// template table; checkTables enforces coverage at init.
var requirements = map[string]EquipmentSet{
	// strength
	"스쿼트":        NewEquipmentSet(EquipmentBarbell),
	"덤벨프레스":      NewEquipmentSet(EquipmentDumbbell),
	"랫풀다운":       NewEquipmentSet(EquipmentMachine),
	"루마니안 데드리프트": NewEquipmentSet(EquipmentBarbell, EquipmentDumbbell),
	"데드리프트":      NewEquipmentSet(EquipmentBarbell),
	"벤치프레스":      NewEquipmentSet(EquipmentBarbell),
	"바벨로우":       NewEquipmentSet(EquipmentBarbell),
	"클린&프레스":     NewEquipmentSet(EquipmentBarbell),
	"오버헤드프레스":    NewEquipmentSet(EquipmentBarbell),
	"풀업":         NewEquipmentSet(),
	"프론트 스쿼트":    NewEquipmentSet(EquipmentBarbell),

	// fat loss
	"버피":      NewEquipmentSet(),
	"런닝":      NewEquipmentSet(),
	"마운틴클라이머": NewEquipmentSet(),
	"플랭크":     NewEquipmentSet(),

	// hypertrophy
	"레그프레스":        NewEquipmentSet(EquipmentMachine),
	"덤벨로우":         NewEquipmentSet(EquipmentDumbbell),
	"레그컬":          NewEquipmentSet(EquipmentMachine),
	"인클라인 덤벨프레스":   NewEquipmentSet(EquipmentDumbbell),
	"불가리안 스플릿 스쿼트": NewEquipmentSet(),
}

// Requirement returns the equipment an exercise needs. Unknown exercises
// need nothing.
func Requirement(exercise string) EquipmentSet {
	return requirements[exercise]
}

// Filter returns the prescriptions whose equipment requirement is empty or
// intersects available, in their original order. The input is not modified
// and the result never aliases it. An empty result is valid.
func Filter(items []Prescription, available EquipmentSet) []Prescription {
	out := make([]Prescription, 0, len(items))
	for _, p := range items {
		req := Requirement(p.Exercise)
		if len(req) > 0 && !req.Intersects(available) {
			continue
		}
		out = append(out, p)
	}
	return out
}

package routinegen

// Option is an enum value with its display label.
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// FrequencyRange describes accepted weekly frequencies.
type FrequencyRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// Catalog lists the values a profile form can offer.
type Catalog struct {
	Goals       []Option       `json:"goals"`
	Experiences []Option       `json:"experiences"`
	Equipment   []Option       `json:"equipment"`
	Frequency   FrequencyRange `json:"frequency"`
	Defaults    UserProfile    `json:"defaults"`
}

// NewCatalog builds the catalog in display order.
func NewCatalog() Catalog {
	c := Catalog{
		Goals:       make([]Option, len(Goals)),
		Experiences: make([]Option, len(Experiences)),
		Equipment:   make([]Option, len(EquipmentTags)),
		Frequency:   FrequencyRange{Min: MinFrequency, Max: MaxFrequency, Default: DefaultFrequency},
		Defaults: UserProfile{
			Goal:       string(DefaultGoal),
			Experience: string(DefaultExperience),
			Equipment:  []string{},
			Frequency:  DefaultFrequency,
		},
	}
	for i, g := range Goals {
		c.Goals[i] = Option{Code: string(g), Label: g.Label()}
	}
	for i, e := range Experiences {
		c.Experiences[i] = Option{Code: string(e), Label: e.Label()}
	}
	for i, e := range EquipmentTags {
		c.Equipment[i] = Option{Code: string(e), Label: e.Label()}
	}
	return c
}

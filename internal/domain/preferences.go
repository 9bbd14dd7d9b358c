package domain

// DefaultClassLevel is used until the learner picks one.
const DefaultClassLevel = "10"

// Preferences holds the settings remembered between runs.
type Preferences struct {
	ClassLevel       string `yaml:"class_level" json:"class_level"`
	PreferredPersona string `yaml:"preferred_persona,omitempty" json:"preferred_persona,omitempty"`
	DarkMode         bool   `yaml:"dark_mode" json:"dark_mode"`
}

// DefaultPreferences returns the settings used on first start.
func DefaultPreferences() Preferences {
	return Preferences{
		ClassLevel: DefaultClassLevel,
	}
}

// Package config provides configuration loading and management for specvet.
package config

// Config is the root configuration. It is loaded once at startup and
// never mutated afterwards; all evaluations share it read-only.
type Config struct {
	Scoring   Scoring         `json:"scoring"   mapstructure:"scoring"`
	Retention RetentionPolicy `json:"retention" mapstructure:"retention"`
}

// Scoring holds the externalized word lists the check evaluator matches
// against. Keeping them here rather than inline lets tests assert the
// exact literal lists.
type Scoring struct {
	WeaselPhrases []string `json:"weasel_phrases" mapstructure:"weasel_phrases"`
	VagueVerbs    []string `json:"vague_verbs"    mapstructure:"vague_verbs"`
}

// RetentionPolicy defines how many old evaluations to keep.
type RetentionPolicy struct {
	KeepLast int `json:"keep_last,omitempty" mapstructure:"keep_last"`
	KeepDays int `json:"keep_days,omitempty" mapstructure:"keep_days"`
}

// Default returns the built-in configuration used when no config file
// exists.
func Default() Config {
	return Config{
		Scoring: Scoring{
			WeaselPhrases: []string{
				"as needed",
				"if appropriate",
				"etc.",
				"as necessary",
				"when possible",
				"might",
				"should consider",
				"could potentially",
				"may want to",
			},
			VagueVerbs: []string{"handle", "process", "manage"},
		},
		Retention: RetentionPolicy{
			KeepLast: 50,
			KeepDays: 30,
		},
	}
}

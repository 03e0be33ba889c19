package auditor

// Rules is a keyword rule set the auditor scores text against.
type Rules struct {
	MinWords       int      `json:"min_words"       yaml:"min_words"`
	MaxWords       int      `json:"max_words"       yaml:"max_words"`
	Prohibited     []string `json:"prohibited"      yaml:"prohibited"`
	LowFrequency   []string `json:"low_frequency"   yaml:"low_frequency"`
	HighFrequency  []string `json:"high_frequency"  yaml:"high_frequency"`
	RequiredThemes []string `json:"required_themes" yaml:"required_themes"`
	ActionVerbs    []string `json:"action_verbs"    yaml:"action_verbs"`
}

// Rule set defaults.
const (
	defaultMinWords = 10
	defaultMaxWords = 280
)

// DefaultRules returns the anchor message rule set.
func DefaultRules() Rules {
	return Rules{
		MinWords:   defaultMinWords,
		MaxWords:   defaultMaxWords,
		Prohibited: []string{"hate", "fear", "anger", "division", "blame", "victim"},
		LowFrequency: []string{
			"problem", "crisis", "failure", "impossible", "never",
			"hate", "fear", "anger", "conflict", "division",
			"blame", "victim", "suffer", "pain", "loss",
		},
		HighFrequency: []string{
			"integration", "consciousness", "awareness", "alignment", "manifestation",
			"transformation", "realization", "awakening", "divine", "sacred",
			"energy", "vibration", "frequency", "cosmic", "universal",
			"wisdom", "insight", "clarity", "truth", "unity",
		},
		RequiredThemes: []string{"consciousness", "integration", "awareness", "action", "transformation"},
		ActionVerbs:    []string{"realize", "integrate", "transform", "awaken", "manifest", "align", "embody"},
	}
}

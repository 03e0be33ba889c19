package domain

import "time"

// LunarPhase is the approximate phase of the moon at an instant.
type LunarPhase struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	// Percentage is the fraction of the synodic cycle elapsed, in [0,1).
	Percentage   float64 `json:"percentage"`
	IsAuspicious bool    `json:"is_auspicious"`
}

// WindowType tags what produced a CosmicWindow.
type WindowType string

// WindowType values.
const (
	WindowLunar   WindowType = "lunar"
	WindowEclipse WindowType = "eclipse"
	WindowTransit WindowType = "transit"
)

// CosmicWindow is a time range flagged as favorable for posting.
type CosmicWindow struct {
	Start          time.Time  `json:"start"`
	End            time.Time  `json:"end"`
	Type           WindowType `json:"type"`
	Description    string     `json:"description"`
	Auspiciousness Tier       `json:"auspiciousness"`
}

// TimingRecommendation says whether to post now.
type TimingRecommendation struct {
	ShouldPost bool       `json:"should_post"`
	Reason     string     `json:"reason"`
	NextWindow *time.Time `json:"next_window,omitempty"`
}

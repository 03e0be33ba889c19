package domain

// ContentStatus is the approval state of a stored content item.
type ContentStatus string

// ContentStatus values.
const (
	StatusPending   ContentStatus = "pending"
	StatusApproved  ContentStatus = "approved"
	StatusRejected  ContentStatus = "rejected"
	StatusPublished ContentStatus = "published"
)

var allowedTransitions = map[ContentStatus][]ContentStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusPublished},
}

// ParseStatus validates a status string.
func ParseStatus(s string) (ContentStatus, bool) {
	switch st := ContentStatus(s); st {
	case StatusPending, StatusApproved, StatusRejected, StatusPublished:
		return st, true
	default:
		return "", false
	}
}

// CanTransition reports whether an item may move from s to next.
func (s ContentStatus) CanTransition(next ContentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Slide is one page of a carousel post.
type Slide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CosmicMetadata records the lunar context of an aligned slot.
type CosmicMetadata struct {
	MoonPhase float64 `json:"moon_phase"`
	PhaseName string  `json:"phase_name"`
	IsPeak    bool    `json:"is_peak"`
}

// ContentItem is one scheduled post. Items are created once by the generator
// and not mutated afterwards; alignment and status changes produce copies.
type ContentItem struct {
	ID                  string              `json:"id"`
	Type                string              `json:"type"`
	PageName            string              `json:"page_name"`
	Theme               Theme               `json:"theme"`
	TargetAudience      string              `json:"target_audience"`
	ScheduledDate       string              `json:"scheduled_date"`
	ScheduledTime       string              `json:"scheduled_time"`
	Format              Format              `json:"format"`
	PrimaryText         string              `json:"primary_text"`
	SecondaryText       string              `json:"secondary_text,omitempty"`
	VisualConcept       string              `json:"visual_concept,omitempty"`
	ColorPalette        []string            `json:"color_palette,omitempty"`
	Slides              []Slide             `json:"slides,omitempty"`
	HashtagStrategy     map[string][]string `json:"hashtag_strategy"`
	CallToAction        string              `json:"call_to_action"`
	Disclaimer          string              `json:"disclaimer,omitempty"`
	EngagementQuestions []string            `json:"engagement_questions,omitempty"`
	EngagementGoals     map[string]int      `json:"engagement_goals"`
	ComplianceCheck     AuditResult         `json:"compliance_check"`
	CosmicMetadata      *CosmicMetadata     `json:"cosmic_metadata,omitempty"`
	Status              ContentStatus       `json:"status"`
}

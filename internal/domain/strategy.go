// Package domain holds the planner's data model.
package domain

import (
	"fmt"
	"math"
	"time"
)

// Theme is the content theme a page posts about.
type Theme string

// Theme values.
const (
	ThemeAncientWisdom   Theme = "ancient_wisdom"
	ThemeDharmaTeachings Theme = "dharma_teachings"
	ThemeKarmaStories    Theme = "karma_stories"
	ThemeConsciousness   Theme = "consciousness"
	ThemeCrystalHealing  Theme = "crystal_healing"
	ThemeSacredGeometry  Theme = "sacred_geometry"
	ThemeGlobalUnity     Theme = "global_unity"
)

var knownThemes = map[Theme]struct{}{
	ThemeAncientWisdom:   {},
	ThemeDharmaTeachings: {},
	ThemeKarmaStories:    {},
	ThemeConsciousness:   {},
	ThemeCrystalHealing:  {},
	ThemeSacredGeometry:  {},
	ThemeGlobalUnity:     {},
}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	_, ok := knownThemes[t]
	return ok
}

// Format is the shape of a post.
type Format string

// Format values.
const (
	FormatQuoteImage          Format = "quote_image"
	FormatEducationalCarousel Format = "educational_carousel"
	FormatStoryVideo          Format = "story_video"
	FormatProductShowcase     Format = "product_showcase"
	FormatCommunityEngagement Format = "community_engagement"
	FormatReelsShort          Format = "reels_short"
)

var knownFormats = map[Format]struct{}{
	FormatQuoteImage:          {},
	FormatEducationalCarousel: {},
	FormatStoryVideo:          {},
	FormatProductShowcase:     {},
	FormatCommunityEngagement: {},
	FormatReelsShort:          {},
}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	_, ok := knownFormats[f]
	return ok
}

// FormatWeight is one entry of a ContentMix.
type FormatWeight struct {
	Format Format  `json:"format" yaml:"format"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// ContentMix is an ordered weighted distribution over formats. Weights need not
// sum to 1. Order is significant: format sampling walks entries in order.
type ContentMix []FormatWeight

// TotalWeight returns the sum of all weights.
func (m ContentMix) TotalWeight() float64 {
	var total float64
	for _, fw := range m {
		total += fw.Weight
	}
	return total
}

// ContentStrategy is the immutable posting configuration of one page.
type ContentStrategy struct {
	PageName        string          `json:"page_name"        yaml:"page_name"`
	Theme           Theme           `json:"theme"            yaml:"theme"`
	TargetAudience  string          `json:"target_audience"  yaml:"target_audience"`
	PostingSchedule []string        `json:"posting_schedule" yaml:"posting_schedule"`
	ContentMix      ContentMix      `json:"content_mix"      yaml:"content_mix"`
	EngagementGoals map[string]int  `json:"engagement_goals" yaml:"engagement_goals"`
	ComplianceRules map[string]bool `json:"compliance_rules" yaml:"compliance_rules"`
}

// slotLayout is the HH:MM layout of posting schedule slots.
const slotLayout = "15:04"

// Validate checks the invariants the generator relies on.
func (s ContentStrategy) Validate() error {
	if s.PageName == "" {
		return fmt.Errorf("%w: page_name is required", ErrInvalidStrategy)
	}
	if !s.Theme.Valid() {
		return fmt.Errorf("%w: %s: unknown theme %q", ErrInvalidStrategy, s.PageName, s.Theme)
	}
	if len(s.PostingSchedule) == 0 {
		return fmt.Errorf("%w: %s: posting_schedule is empty", ErrInvalidStrategy, s.PageName)
	}
	seen := make(map[string]struct{}, len(s.PostingSchedule))
	for _, slot := range s.PostingSchedule {
		if _, err := time.Parse(slotLayout, slot); err != nil {
			return fmt.Errorf("%w: %s: slot %q is not HH:MM", ErrInvalidStrategy, s.PageName, slot)
		}
		if _, dup := seen[slot]; dup {
			return fmt.Errorf("%w: %s: slot %q is listed twice", ErrInvalidStrategy, s.PageName, slot)
		}
		seen[slot] = struct{}{}
	}
	if len(s.ContentMix) == 0 {
		return fmt.Errorf("%w: %s: content_mix is empty", ErrInvalidStrategy, s.PageName)
	}
	for _, fw := range s.ContentMix {
		if !fw.Format.Valid() {
			return fmt.Errorf("%w: %s: unknown format %q", ErrInvalidStrategy, s.PageName, fw.Format)
		}
		if math.IsNaN(fw.Weight) || math.IsInf(fw.Weight, 0) {
			return fmt.Errorf("%w: %s: weight for %s is not finite", ErrInvalidStrategy, s.PageName, fw.Format)
		}
		if fw.Weight < 0 {
			return fmt.Errorf("%w: %s: negative weight for %s", ErrInvalidStrategy, s.PageName, fw.Format)
		}
	}
	if s.ContentMix.TotalWeight() <= 0 {
		return fmt.Errorf("%w: %s: content_mix weights sum to zero", ErrInvalidStrategy, s.PageName)
	}
	return nil
}

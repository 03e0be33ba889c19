package strategy

import "github.com/opendev-labs/auto-notion/internal/domain"

// DefaultPage is the strategy used when a lookup misses.
const DefaultPage = "MythicWisdom"

// Builtin returns the built-in page catalog.
func Builtin() []domain.ContentStrategy {
	return []domain.ContentStrategy{
		{
			PageName:        "MythicWisdom",
			Theme:           domain.ThemeAncientWisdom,
			TargetAudience:  "spiritual seekers, philosophy enthusiasts",
			PostingSchedule: []string{"09:00", "14:00", "19:00"},
			ContentMix: domain.ContentMix{
				{Format: domain.FormatQuoteImage, Weight: 0.5},
				{Format: domain.FormatEducationalCarousel, Weight: 0.3},
				{Format: domain.FormatStoryVideo, Weight: 0.2},
			},
			EngagementGoals: map[string]int{"likes": 100, "comments": 15, "shares": 10, "saves": 20},
			ComplianceRules: map[string]bool{
				"age_13plus":        true,
				"business_content":  true,
				"no_prohibited":     true,
				"educational_focus": true,
			},
		},
		{
			PageName:        "DharmaDotes",
			Theme:           domain.ThemeDharmaTeachings,
			TargetAudience:  "buddhists, mindfulness practitioners",
			PostingSchedule: []string{"08:00", "12:00", "18:00"},
			ContentMix: domain.ContentMix{
				{Format: domain.FormatEducationalCarousel, Weight: 0.4},
				{Format: domain.FormatQuoteImage, Weight: 0.4},
				{Format: domain.FormatCommunityEngagement, Weight: 0.2},
			},
			EngagementGoals: map[string]int{"likes": 80, "comments": 20, "shares": 8, "saves": 15},
			ComplianceRules: map[string]bool{
				"age_13plus":            true,
				"religious_sensitivity": true,
				"educational_focus":     true,
			},
		},
		{
			PageName:        "CrystalEnergy",
			Theme:           domain.ThemeCrystalHealing,
			TargetAudience:  "energy healers, crystal collectors",
			PostingSchedule: []string{"10:00", "15:00", "20:00"},
			ContentMix: domain.ContentMix{
				{Format: domain.FormatProductShowcase, Weight: 0.5},
				{Format: domain.FormatEducationalCarousel, Weight: 0.3},
				{Format: domain.FormatQuoteImage, Weight: 0.2},
			},
			EngagementGoals: map[string]int{"likes": 120, "comments": 10, "shares": 5, "saves": 30},
			ComplianceRules: map[string]bool{"age_13plus": true, "no_medical_claims": true, "educational_focus": true},
		},
		{
			PageName:        "KarmaKronicles",
			Theme:           domain.ThemeKarmaStories,
			TargetAudience:  "story lovers, spiritual seekers",
			PostingSchedule: []string{"11:00", "16:00", "21:00"},
			ContentMix: domain.ContentMix{
				{Format: domain.FormatStoryVideo, Weight: 0.5},
				{Format: domain.FormatQuoteImage, Weight: 0.3},
				{Format: domain.FormatCommunityEngagement, Weight: 0.2},
			},
			EngagementGoals: map[string]int{"likes": 150, "comments": 30, "shares": 20, "saves": 10},
			ComplianceRules: map[string]bool{"age_13plus": true, "narrative_quality": true},
		},
		{
			PageName:        "ConsciousQuotes",
			Theme:           domain.ThemeConsciousness,
			TargetAudience:  "modern spiritualists, meditators",
			PostingSchedule: []string{"06:00", "12:00", "18:00"},
			ContentMix: domain.ContentMix{
				{Format: domain.FormatQuoteImage, Weight: 0.7},
				{Format: domain.FormatStoryVideo, Weight: 0.2},
				{Format: domain.FormatCommunityEngagement, Weight: 0.1},
			},
			EngagementGoals: map[string]int{"likes": 300, "comments": 40, "shares": 50, "saves": 60},
			ComplianceRules: map[string]bool{"age_13plus": true, "intellectual_depth": true},
		},
		{
			PageName:        "SacredGeometry",
			Theme:           domain.ThemeSacredGeometry,
			TargetAudience:  "artists, mathematicians, spiritualists",
			PostingSchedule: []string{"09:00", "15:00", "21:00"},
			ContentMix: domain.ContentMix{
				{Format: domain.FormatEducationalCarousel, Weight: 0.5},
				{Format: domain.FormatQuoteImage, Weight: 0.3},
				{Format: domain.FormatStoryVideo, Weight: 0.2},
			},
			EngagementGoals: map[string]int{"likes": 250, "comments": 25, "shares": 30, "saves": 45},
			ComplianceRules: map[string]bool{"age_13plus": true, "visual_excellence": true},
		},
		{
			PageName:        "WeAreOneGlobal",
			Theme:           domain.ThemeGlobalUnity,
			TargetAudience:  "humanitarians, global citizens",
			PostingSchedule: []string{"07:00", "13:00", "21:00"},
			ContentMix: domain.ContentMix{
				{Format: domain.FormatCommunityEngagement, Weight: 0.6},
				{Format: domain.FormatStoryVideo, Weight: 0.3},
				{Format: domain.FormatQuoteImage, Weight: 0.1},
			},
			EngagementGoals: map[string]int{"likes": 200, "comments": 50, "shares": 40, "saves": 20},
			ComplianceRules: map[string]bool{"age_13plus": true, "inclusive_content": true, "community_focus": true},
		},
	}
}

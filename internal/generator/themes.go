package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

// Draft is the theme-specific body of a content item.
type Draft struct {
	Type                string
	PrimaryText         string
	SecondaryText       string
	VisualConcept       string
	ColorPalette        []string
	Slides              []domain.Slide
	HashtagStrategy     map[string][]string
	CallToAction        string
	Disclaimer          string
	EngagementQuestions []string
}

// ThemeFunc produces a draft for one format. rng is owned by the caller for
// the duration of the call.
type ThemeFunc func(format domain.Format, rng *rand.Rand) Draft

func defaultThemes() map[domain.Theme]ThemeFunc {
	return map[domain.Theme]ThemeFunc{
		domain.ThemeAncientWisdom:   wisdomDraft,
		domain.ThemeDharmaTeachings: wisdomDraft,
		domain.ThemeCrystalHealing:  crystalDraft,
		domain.ThemeGlobalUnity:     unityDraft,
	}
}

func genericDraft(format domain.Format, _ *rand.Rand) Draft {
	return Draft{
		Type:         string(format),
		PrimaryText:  "Inspirational content for spiritual growth",
		CallToAction: "Share your thoughts below!",
		HashtagStrategy: map[string][]string{
			"primary": {"#Spiritual", "#Consciousness", "#Growth"},
		},
	}
}

func wisdomDraft(format domain.Format, rng *rand.Rand) Draft {
	q := quotes[rng.IntN(len(quotes))]

	switch format {
	case domain.FormatQuoteImage:
		return Draft{
			Type:          string(format),
			PrimaryText:   q.Text,
			SecondaryText: "— " + q.Author,
			VisualConcept: "ancient_manuscript",
			ColorPalette:  []string{"#4A6572", "#344955", "#F9AA33"},
			HashtagStrategy: map[string][]string{
				"primary":   {"#AncientWisdom", "#Philosophy", "#Truth"},
				"secondary": {"#SpiritualGrowth", "#Mindfulness", "#Enlightenment"},
				"niche":     {"#MythicWisdom", "#WisdomQuotes"},
			},
			CallToAction: "Type 'YES' if you agree.",
		}
	case domain.FormatEducationalCarousel:
		return Draft{
			Type:        string(format),
			PrimaryText: q.Text,
			Slides: []domain.Slide{
				{Title: "The Wisdom", Content: q.Text},
				{Title: "The Meaning", Content: "Deep reflection on the nature of self and universe."},
				{Title: "Modern Application", Content: "Apply this by taking 5 minutes of silence today."},
			},
			CallToAction: "Which slide resonated most?",
			HashtagStrategy: map[string][]string{
				"primary":    {"#WisdomTeachings", "#Philosophy", "#LifeLessons"},
				"engagement": {"#CommentYourThoughts", "#ShareYourWisdom"},
			},
		}
	default:
		return genericDraft(format, rng)
	}
}

func crystalDraft(format domain.Format, rng *rand.Rand) Draft {
	c := crystals[rng.IntN(len(crystals))]

	if format != domain.FormatProductShowcase {
		return genericDraft(format, rng)
	}

	return Draft{
		Type:          string(format),
		PrimaryText:   fmt.Sprintf("Discover the power of %s.", c.Name),
		SecondaryText: c.Description,
		VisualConcept: "crystal_" + strings.ReplaceAll(strings.ToLower(c.Name), " ", "_"),
		CallToAction:  fmt.Sprintf("Have you worked with %s? Share your experience!", c.Name),
		Disclaimer:    "For educational purposes. Consult professionals for healing.",
		HashtagStrategy: map[string][]string{
			"primary":   {"#" + strings.ReplaceAll(c.Name, " ", ""), "#CrystalHealing", "#EnergyWork"},
			"product":   {"#CrystalCollection", "#HealingStones", "#Gemstones"},
			"community": {"#CrystalCommunity", "#CrystalLovers"},
		},
	}
}

func unityDraft(format domain.Format, rng *rand.Rand) Draft {
	msg := unityMessages[rng.IntN(len(unityMessages))]

	if format != domain.FormatCommunityEngagement {
		return genericDraft(format, rng)
	}

	return Draft{
		Type:                string(format),
		PrimaryText:         msg,
		VisualConcept:       "global_connection",
		EngagementQuestions: append([]string(nil), unityQuestions...),
		CallToAction:        "Share your story in comments!",
		HashtagStrategy: map[string][]string{
			"primary":   {"#WeAreOne", "#GlobalUnity", "#OneHumanity"},
			"campaign":  {"#WeAreOneGlobal", "#UnityInDiversity"},
			"community": {"#ShareYourStory", "#CommunityLove"},
		},
	}
}

// Package auditor scores post text against keyword rules and classifies it
// into a frequency tier.
package auditor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

// Score adjustments.
const (
	baseScore            = 100
	tooShortPenalty      = 15
	tooLongPenalty       = 10
	prohibitedPenalty    = 20
	lowFrequencyPenalty  = 5
	noHighFreqPenalty    = 15
	highFreqBonus        = 10
	highFreqBonusMinimum = 3
	missingThemePenalty  = 25
	noActionVerbPenalty  = 10
)

// Tier and pass thresholds.
const (
	passScore            = 70
	highTierScore        = 80
	highTierMinHighFreq  = 2
	mediumTierScore      = 60
	mediumTierMaxLowFreq = 1
	suggestBelowScore    = 80
)

// Audit messages.
const (
	msgTooShort        = "Message too short (%d words, minimum %d)"
	msgTooLong         = "Message too long (%d words, maximum %d)"
	msgProhibited      = "Contains low-frequency words: %s"
	msgConsiderReplace = "Consider replacing: %s"
	msgAddHighFreq     = "Add high-frequency spiritual keywords for amplified resonance"
	msgMissingTheme    = "Missing core spiritual theme (consciousness/integration/awareness)"
	msgAddAction       = "Add action-oriented language to inspire transformation"
)

// Improvement suggestions.
const (
	SuggestElevate    = "Elevate the frequency: Replace problem-focused language with solution-oriented messaging"
	SuggestKeywords   = "Add spiritual keywords: Integration, consciousness, alignment, manifestation"
	SuggestRemoveFear = "Remove fear-based words and replace with empowering alternatives"
	SuggestVerbs      = "Include transformation verbs: realize, integrate, transform, embody"
	SuggestAnchor     = "Anchor the message: Root content in universal wisdom and actionable insight"
)

var transformationVerbPattern = regexp.MustCompile(`(?i)\b(realize|integrate|transform|awaken)\b`)

// Auditor scores text. It holds only immutable compiled state and is safe
// for concurrent use.
type Auditor struct {
	rules          Rules
	prohibited     *keywordSet
	lowFrequency   *keywordSet
	highFrequency  *keywordSet
	requiredThemes *keywordSet
	actionVerbs    *keywordSet
}

// New returns an auditor using DefaultRules.
func New() *Auditor {
	return NewWithRules(DefaultRules())
}

// NewWithRules compiles rules into an auditor.
func NewWithRules(rules Rules) *Auditor {
	return &Auditor{
		rules:          rules,
		prohibited:     newKeywordSet(rules.Prohibited),
		lowFrequency:   newKeywordSet(rules.LowFrequency),
		highFrequency:  newKeywordSet(rules.HighFrequency),
		requiredThemes: newKeywordSet(rules.RequiredThemes),
		actionVerbs:    newKeywordSet(rules.ActionVerbs),
	}
}

// Rules returns the rule set the auditor was built with.
func (a *Auditor) Rules() Rules {
	return a.rules
}

// Audit scores a single text.
func (a *Auditor) Audit(text string) domain.AuditResult {
	violations := make([]string, 0)
	recommendations := make([]string, 0)
	score := baseScore

	wordCount := len(strings.Fields(text))
	if wordCount < a.rules.MinWords {
		violations = append(violations, fmt.Sprintf(msgTooShort, wordCount, a.rules.MinWords))
		score -= tooShortPenalty
	}
	if wordCount > a.rules.MaxWords {
		violations = append(violations, fmt.Sprintf(msgTooLong, wordCount, a.rules.MaxWords))
		score -= tooLongPenalty
	}

	lowered := []byte(fold(text))

	foundProhibited := a.prohibited.find(lowered)
	if len(foundProhibited) > 0 {
		violations = append(violations, fmt.Sprintf(msgProhibited, strings.Join(foundProhibited, ", ")))
		score -= len(foundProhibited) * prohibitedPenalty
	}

	foundLowFreq := without(a.lowFrequency.find(lowered), foundProhibited)
	if len(foundLowFreq) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(msgConsiderReplace, strings.Join(foundLowFreq, ", ")))
		score -= len(foundLowFreq) * lowFrequencyPenalty
	}

	foundHighFreq := a.highFrequency.find(lowered)
	switch {
	case len(foundHighFreq) == 0:
		recommendations = append(recommendations, msgAddHighFreq)
		score -= noHighFreqPenalty
	case len(foundHighFreq) >= highFreqBonusMinimum:
		score += highFreqBonus
	}

	if !a.requiredThemes.any(lowered) {
		violations = append(violations, msgMissingTheme)
		score -= missingThemePenalty
	}

	if !a.actionVerbs.any(lowered) {
		recommendations = append(recommendations, msgAddAction)
		score -= noActionVerbPenalty
	}

	// Tiers and the pass flag are decided on the raw score. Clamping only moves
	// values outside [0,100], which cannot cross any threshold.
	var tier domain.Tier
	switch {
	case score >= highTierScore && len(foundHighFreq) >= highTierMinHighFreq && len(foundLowFreq) == 0:
		tier = domain.TierHigh
	case score >= mediumTierScore && len(foundLowFreq) <= mediumTierMaxLowFreq:
		tier = domain.TierMedium
	default:
		tier = domain.TierLow
	}

	return domain.AuditResult{
		Score:           clamp(score, 0, baseScore),
		Passed:          score >= passScore && len(violations) == 0,
		Violations:      violations,
		Recommendations: recommendations,
		Frequency:       tier,
	}
}

// Report audits a batch of texts and summarizes the results.
func (a *Auditor) Report(texts []string) (domain.ComplianceReport, error) {
	if len(texts) == 0 {
		return domain.ComplianceReport{}, fmt.Errorf("compliance report: %w", domain.ErrEmptyBatch)
	}

	var (
		totalScore int
		passed     int
		tierCounts = make(map[domain.Tier]int, 3)
		seen       = make(map[string]struct{})
		critical   = make([]string, 0)
	)

	for _, text := range texts {
		result := a.Audit(text)
		totalScore += result.Score
		if result.Passed {
			passed++
		}
		tierCounts[result.Frequency]++
		for _, v := range result.Violations {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			critical = append(critical, v)
		}
	}

	n := float64(len(texts))
	average := domain.TierLow
	switch {
	case float64(tierCounts[domain.TierHigh]) >= n/2:
		average = domain.TierHigh
	case float64(tierCounts[domain.TierMedium]) >= n/3:
		average = domain.TierMedium
	}

	return domain.ComplianceReport{
		OverallCompliance:  float64(totalScore) / n,
		PassedCount:        passed,
		FailedCount:        len(texts) - passed,
		AverageFrequency:   average,
		CriticalViolations: critical,
	}, nil
}

// Suggest returns improvement hints for text.
func (a *Auditor) Suggest(text string) []string {
	result := a.Audit(text)
	suggestions := make([]string, 0)

	if result.Frequency == domain.TierLow {
		suggestions = append(suggestions, SuggestElevate, SuggestKeywords)
	}

	for _, v := range result.Violations {
		if strings.Contains(v, "low-frequency") {
			suggestions = append(suggestions, SuggestRemoveFear)
			break
		}
	}

	if !transformationVerbPattern.MatchString(text) {
		suggestions = append(suggestions, SuggestVerbs)
	}

	if result.Score < suggestBelowScore {
		suggestions = append(suggestions, SuggestAnchor)
	}

	return suggestions
}

func without(words, exclude []string) []string {
	if len(exclude) == 0 {
		return words
	}
	out := make([]string, 0, len(words))
	for _, w := range words {
		excluded := false
		for _, e := range exclude {
			if w == e {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, w)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

package auditor_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendev-labs/auto-notion/internal/auditor"
	"github.com/opendev-labs/auto-notion/internal/domain"
)

const (
	highText   = "Awaken your consciousness and integrate divine wisdom into daily life with clarity and truth."
	mediumText = "Every problem becomes wisdom when you awaken your consciousness and integrate divine truth."
	lowText    = "hate fear anger"
)

func TestAudit_EmptyText(t *testing.T) {
	t.Parallel()

	got := auditor.New().Audit("")

	assert.Equal(t, 35, got.Score)
	assert.False(t, got.Passed)
	assert.Equal(t, domain.TierLow, got.Frequency)
	assert.Equal(t, []string{
		"Message too short (0 words, minimum 10)",
		"Missing core spiritual theme (consciousness/integration/awareness)",
	}, got.Violations)
	assert.Equal(t, []string{
		"Add high-frequency spiritual keywords for amplified resonance",
		"Add action-oriented language to inspire transformation",
	}, got.Recommendations)
}

func TestAudit_ProhibitedWordsClampToZero(t *testing.T) {
	t.Parallel()

	got := auditor.New().Audit(lowText)

	assert.Equal(t, 0, got.Score)
	assert.False(t, got.Passed)
	assert.Equal(t, domain.TierLow, got.Frequency)
	assert.Contains(t, got.Violations, "Contains low-frequency words: hate, fear, anger")
	for _, r := range got.Recommendations {
		assert.NotContains(t, r, "Consider replacing", "prohibited words must not be double counted")
	}
}

func TestAudit_HighTier(t *testing.T) {
	t.Parallel()

	got := auditor.New().Audit(highText)

	assert.Equal(t, 100, got.Score)
	assert.True(t, got.Passed)
	assert.Equal(t, domain.TierHigh, got.Frequency)
	assert.Empty(t, got.Violations)
	assert.Empty(t, got.Recommendations)
}

func TestAudit_SingleLowFrequencyWordIsMedium(t *testing.T) {
	t.Parallel()

	got := auditor.New().Audit(mediumText)

	assert.Equal(t, 100, got.Score)
	assert.True(t, got.Passed)
	assert.Equal(t, domain.TierMedium, got.Frequency)
	assert.Equal(t, []string{"Consider replacing: problem"}, got.Recommendations)
}

func TestAudit_SubstringMatching(t *testing.T) {
	t.Parallel()

	got := auditor.New().Audit("Be fearless")

	assert.Contains(t, got.Violations, "Contains low-frequency words: fear")
}

func TestAudit_IgnoresDiacritics(t *testing.T) {
	t.Parallel()

	got := auditor.New().Audit("I hâte this")
	require.NotEmpty(t, got.Violations)
	assert.Contains(t, got.Violations, "Contains low-frequency words: hate")
}

func TestAudit_TooLong(t *testing.T) {
	t.Parallel()

	rules := auditor.DefaultRules()
	rules.MaxWords = 5
	got := auditor.NewWithRules(rules).Audit(highText)

	assert.Contains(t, got.Violations, "Message too long (14 words, maximum 5)")
	assert.False(t, got.Passed)
}

func TestAudit_Concurrent(t *testing.T) {
	t.Parallel()

	a := auditor.New()
	want := a.Audit(highText)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, a.Audit(highText))
		}()
	}
	wg.Wait()
}

func TestReport(t *testing.T) {
	t.Parallel()

	report, err := auditor.New().Report([]string{highText, lowText})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, report.OverallCompliance, 0.0001)
	assert.Equal(t, 1, report.PassedCount)
	assert.Equal(t, 1, report.FailedCount)
	assert.Equal(t, domain.TierHigh, report.AverageFrequency)
	assert.Len(t, report.CriticalViolations, 3)
}

func TestReport_DeduplicatesViolations(t *testing.T) {
	t.Parallel()

	report, err := auditor.New().Report([]string{"", ""})
	require.NoError(t, err)

	assert.Len(t, report.CriticalViolations, 2)
	assert.Equal(t, domain.TierLow, report.AverageFrequency)
	assert.Equal(t, 0, report.PassedCount)
}

func TestReport_EmptyBatch(t *testing.T) {
	t.Parallel()

	_, err := auditor.New().Report(nil)
	if !errors.Is(err, domain.ErrEmptyBatch) {
		t.Fatalf("Report(nil) error = %v, want ErrEmptyBatch", err)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	a := auditor.New()

	assert.Empty(t, a.Suggest(highText))
	assert.Equal(t, []string{
		auditor.SuggestElevate,
		auditor.SuggestKeywords,
		auditor.SuggestRemoveFear,
		auditor.SuggestVerbs,
		auditor.SuggestAnchor,
	}, a.Suggest(lowText))
}

package domain_test

import (
	"errors"
	"math"
	"testing"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

func validStrategy() domain.ContentStrategy {
	return domain.ContentStrategy{
		PageName:        "TestPage",
		Theme:           domain.ThemeAncientWisdom,
		PostingSchedule: []string{"09:00", "18:30"},
		ContentMix: domain.ContentMix{
			{Format: domain.FormatQuoteImage, Weight: 0.7},
			{Format: domain.FormatStoryVideo, Weight: 0.3},
		},
	}
}

func TestContentStrategy_Validate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*domain.ContentStrategy)
		wantErr bool
	}{
		{name: "valid", mutate: func(*domain.ContentStrategy) {}},
		{name: "missing page name", mutate: func(s *domain.ContentStrategy) { s.PageName = "" }, wantErr: true},
		{name: "unknown theme", mutate: func(s *domain.ContentStrategy) { s.Theme = "astrology" }, wantErr: true},
		{name: "empty schedule", mutate: func(s *domain.ContentStrategy) { s.PostingSchedule = nil }, wantErr: true},
		{name: "malformed slot", mutate: func(s *domain.ContentStrategy) { s.PostingSchedule = []string{"9am"} }, wantErr: true},
		{
			name:    "duplicate slot",
			mutate:  func(s *domain.ContentStrategy) { s.PostingSchedule = []string{"09:00", "09:00"} },
			wantErr: true,
		},
		{name: "empty mix", mutate: func(s *domain.ContentStrategy) { s.ContentMix = nil }, wantErr: true},
		{
			name: "negative weight",
			mutate: func(s *domain.ContentStrategy) {
				s.ContentMix = domain.ContentMix{{Format: domain.FormatQuoteImage, Weight: -1}}
			},
			wantErr: true,
		},
		{
			name: "misspelled format",
			mutate: func(s *domain.ContentStrategy) {
				s.ContentMix = domain.ContentMix{{Format: "quote_imgae", Weight: 1}}
			},
			wantErr: true,
		},
		{
			name: "NaN weight",
			mutate: func(s *domain.ContentStrategy) {
				s.ContentMix = domain.ContentMix{
					{Format: domain.FormatQuoteImage, Weight: math.NaN()},
					{Format: domain.FormatStoryVideo, Weight: 1},
				}
			},
			wantErr: true,
		},
		{
			name: "infinite weight",
			mutate: func(s *domain.ContentStrategy) {
				s.ContentMix = domain.ContentMix{{Format: domain.FormatQuoteImage, Weight: math.Inf(1)}}
			},
			wantErr: true,
		},
		{
			name: "zero total weight",
			mutate: func(s *domain.ContentStrategy) {
				s.ContentMix = domain.ContentMix{{Format: domain.FormatQuoteImage, Weight: 0}}
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := validStrategy()
			tc.mutate(&s)

			err := s.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidStrategy) {
				t.Errorf("Validate() error = %v, want wrapping ErrInvalidStrategy", err)
			}
		})
	}
}

func TestContentStatus_CanTransition(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		from, to domain.ContentStatus
		want     bool
	}{
		{domain.StatusPending, domain.StatusApproved, true},
		{domain.StatusPending, domain.StatusRejected, true},
		{domain.StatusPending, domain.StatusPublished, false},
		{domain.StatusApproved, domain.StatusPublished, true},
		{domain.StatusRejected, domain.StatusApproved, false},
		{domain.StatusPublished, domain.StatusPending, false},
	}

	for _, tc := range testCases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	if st, ok := domain.ParseStatus("approved"); !ok || st != domain.StatusApproved {
		t.Errorf("ParseStatus(approved) = %q, %v", st, ok)
	}
	if _, ok := domain.ParseStatus("archived"); ok {
		t.Error("ParseStatus(archived) accepted an unknown status")
	}
}

// Package timing estimates the lunar phase and the posting windows derived
// from it.
package timing

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

// SynodicMonth is the mean length of a lunar cycle in days.
const SynodicMonth = 29.530588853

// MaxWindowDays caps the Windows horizon.
const MaxWindowDays = 365

// referenceNewMoon is a known new moon.
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

const (
	morningStartHour = 5
	morningEndHour   = 7
	eveningStartHour = 18
	eveningEndHour   = 21

	recommendSearchDays = 2
	searchStep          = 30 * time.Minute
	searchHorizon       = 48 * time.Hour
	alignSpacing        = 4 * time.Hour
	peakLow, peakHigh   = 0.45, 0.55
	slotLayout          = "15:04"
	dateLayout          = "2006-01-02"
)

// Window descriptions and recommendation reasons.
const (
	MorningDescription = "Morning Awakening - High Consciousness Window"
	EveningDescription = "Evening Reflection - Integration Window"
	ReasonAligned      = "Current time aligns with cosmic flow - ideal for high-frequency messaging"
	ReasonLowFrequency = "Low-frequency period - content may not resonate at full potential"
)

type phaseBucket struct {
	name       string
	emoji      string
	auspicious bool
}

// phases are eight equal-width buckets of the cycle, starting at new moon.
var phases = [8]phaseBucket{
	{"New Moon", "🌑", true},
	{"Waxing Crescent", "🌒", true},
	{"First Quarter", "🌓", false},
	{"Waxing Gibbous", "🌔", true},
	{"Full Moon", "🌕", true},
	{"Waning Gibbous", "🌖", false},
	{"Last Quarter", "🌗", false},
	{"Waning Crescent", "🌘", false},
}

// Advisor answers timing questions relative to a location's wall clock.
type Advisor struct {
	loc *time.Location
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithLocation sets the zone used for hour-of-day checks and window anchoring.
func WithLocation(loc *time.Location) Option {
	return func(a *Advisor) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// New creates an Advisor. The default location is time.Local.
func New(opts ...Option) *Advisor {
	a := &Advisor{loc: time.Local}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Location returns the advisor's zone.
func (a *Advisor) Location() *time.Location {
	return a.loc
}

// PhaseFraction returns the elapsed fraction of the lunar cycle at t, in [0,1).
func PhaseFraction(t time.Time) float64 {
	days := t.Sub(referenceNewMoon).Hours() / 24
	cycle := math.Mod(days, SynodicMonth)
	if cycle < 0 {
		cycle += SynodicMonth
	}
	fraction := cycle / SynodicMonth
	if fraction >= 1 {
		return 0
	}
	return fraction
}

// Phase returns the lunar phase at now.
func (a *Advisor) Phase(now time.Time) domain.LunarPhase {
	fraction := PhaseFraction(now)
	idx := min(int(fraction*float64(len(phases))), len(phases)-1)
	b := phases[idx]
	return domain.LunarPhase{
		Name:         b.name,
		Emoji:        b.emoji,
		Percentage:   fraction,
		IsAuspicious: b.auspicious,
	}
}

// IsAuspicious reports whether now falls in an auspicious phase or in the
// morning or evening hours.
func (a *Advisor) IsAuspicious(now time.Time) bool {
	if a.Phase(now).IsAuspicious {
		return true
	}
	hour := now.In(a.loc).Hour()
	return (hour >= morningStartHour && hour < morningEndHour) ||
		(hour >= eveningStartHour && hour < eveningEndHour)
}

// Windows returns the posting windows for days calendar days starting on
// now's date, sorted by start. An auspicious phase adds a 24 hour window
// beginning at now.
func (a *Advisor) Windows(now time.Time, days int) ([]domain.CosmicWindow, error) {
	if days <= 0 || days > MaxWindowDays {
		return nil, fmt.Errorf("%w: %d (must be between 1 and %d)", domain.ErrInvalidDays, days, MaxWindowDays)
	}

	local := now.In(a.loc)
	y, m, d := local.Date()
	windows := make([]domain.CosmicWindow, 0, 2*days+1)

	for i := range days {
		windows = append(windows,
			domain.CosmicWindow{
				Start:          time.Date(y, m, d+i, morningStartHour, 0, 0, 0, a.loc),
				End:            time.Date(y, m, d+i, morningEndHour, 0, 0, 0, a.loc),
				Type:           domain.WindowLunar,
				Description:    MorningDescription,
				Auspiciousness: domain.TierHigh,
			},
			domain.CosmicWindow{
				Start:          time.Date(y, m, d+i, eveningStartHour, 0, 0, 0, a.loc),
				End:            time.Date(y, m, d+i, eveningEndHour, 0, 0, 0, a.loc),
				Type:           domain.WindowLunar,
				Description:    EveningDescription,
				Auspiciousness: domain.TierHigh,
			},
		)
	}

	if phase := a.Phase(now); phase.IsAuspicious {
		windows = append(windows, domain.CosmicWindow{
			Start:          local,
			End:            local.Add(24 * time.Hour),
			Type:           domain.WindowLunar,
			Description:    phase.Name + " - Amplified Manifestation Period",
			Auspiciousness: domain.TierHigh,
		})
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})

	return windows, nil
}

// Recommend says whether to post at now and, if not, when the next window
// opens.
func (a *Advisor) Recommend(now time.Time) domain.TimingRecommendation {
	if a.IsAuspicious(now) {
		return domain.TimingRecommendation{ShouldPost: true, Reason: ReasonAligned}
	}

	rec := domain.TimingRecommendation{ShouldPost: false, Reason: ReasonLowFrequency}
	windows, err := a.Windows(now, recommendSearchDays)
	if err != nil {
		return rec
	}
	for _, w := range windows {
		if w.Start.After(now) {
			next := w.Start
			rec.NextWindow = &next
			break
		}
	}
	return rec
}

// NextAuspicious scans forward from from in half-hour steps for up to two
// days and returns the first auspicious instant, or from if there is none.
func (a *Advisor) NextAuspicious(from time.Time) time.Time {
	for t := from; !t.After(from.Add(searchHorizon - searchStep)); t = t.Add(searchStep) {
		if a.IsAuspicious(t) {
			return t
		}
	}
	return from
}

// Align reschedules items onto auspicious instants at least four hours
// apart, starting after from. The input slice is not modified.
func (a *Advisor) Align(items []domain.ContentItem, from time.Time) []domain.ContentItem {
	aligned := make([]domain.ContentItem, len(items))
	last := from

	for i, item := range items {
		at := a.NextAuspicious(last.Add(alignSpacing)).In(a.loc)
		fraction := PhaseFraction(at)

		item.ScheduledDate = at.Format(dateLayout)
		item.ScheduledTime = at.Format(slotLayout)
		item.CosmicMetadata = &domain.CosmicMetadata{
			MoonPhase: math.Round(fraction*10000) / 10000,
			PhaseName: a.Phase(at).Name,
			IsPeak:    fraction > peakLow && fraction < peakHigh,
		}

		aligned[i] = item
		last = at
	}

	return aligned
}

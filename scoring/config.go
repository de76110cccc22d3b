package scoring

import (
	"errors"
	"fmt"
	"time"
)

// TimeOfDay is a civil wall-clock time in the configured zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// minutes flattens a wall-clock time for ordering.
func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// WorkHours is the daily exclusion window in civil time.
type WorkHours struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (w WorkHours) validate() error {
	for _, t := range []TimeOfDay{w.Start, w.End} {
		if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
			return fmt.Errorf("scoring: invalid work-hours time %02d:%02d", t.Hour, t.Minute)
		}
	}
	if w.End.minutes() <= w.Start.minutes() {
		return fmt.Errorf("scoring: work hours must end after they start, got %02d:%02d-%02d:%02d",
			w.Start.Hour, w.Start.Minute, w.End.Hour, w.End.Minute)
	}
	return nil
}

// Weights are points awarded per kilometer, by scoring bucket. Values are
// configuration, never constants: different challenge editions used
// different weight sets.
type Weights struct {
	Run   float64
	Walk  float64
	Cycle float64
}

// Config is the full challenge-window and scoring configuration. Every
// engine call takes it as a parameter; there is no process-wide state.
type Config struct {
	ChallengeStart time.Time
	ExclusionStart time.Time
	WorkHours      WorkHours
	Holidays       map[string]struct{} // civil dates, YYYY-MM-DD
	Location       *time.Location
	Weights        Weights
	TopN           int
}

// Validate rejects configurations that would silently change challenge
// outcomes. Missing weights caused real scoring inconsistencies before the
// engine was consolidated, so they are a hard error rather than a default.
func (c Config) Validate() error {
	if c.Location == nil {
		return errors.New("scoring: config requires a civil time zone")
	}
	if c.ChallengeStart.IsZero() {
		return errors.New("scoring: config requires a challenge start instant")
	}
	if err := c.WorkHours.validate(); err != nil {
		return err
	}
	if c.Weights.Run <= 0 || c.Weights.Walk <= 0 || c.Weights.Cycle <= 0 {
		return fmt.Errorf("scoring: all weights must be positive, got run=%v walk=%v cycle=%v",
			c.Weights.Run, c.Weights.Walk, c.Weights.Cycle)
	}
	if c.TopN <= 0 {
		return errors.New("scoring: topN must be positive")
	}
	return nil
}

// IsHoliday reports whether the instant falls on a configured holiday date
// in the civil zone.
func (c Config) IsHoliday(t time.Time) bool {
	if len(c.Holidays) == 0 {
		return false
	}
	_, ok := c.Holidays[t.In(c.Location).Format("2006-01-02")]
	return ok
}

func (c Config) workWindowOn(day time.Time) (start, end time.Time) {
	y, m, d := day.Date()
	start = time.Date(y, m, d, c.WorkHours.Start.Hour, c.WorkHours.Start.Minute, 0, 0, c.Location)
	end = time.Date(y, m, d, c.WorkHours.End.Hour, c.WorkHours.End.Minute, 0, 0, c.Location)
	return start, end
}

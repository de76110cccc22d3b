package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return Config{
		ChallengeStart: time.Date(2025, 10, 1, 0, 0, 0, 0, loc),
		ExclusionStart: time.Date(2025, 10, 16, 0, 0, 0, 0, loc),
		WorkHours: WorkHours{
			Start: TimeOfDay{Hour: 7, Minute: 30},
			End:   TimeOfDay{Hour: 15, Minute: 45},
		},
		Holidays: map[string]struct{}{
			"2025-10-20": {},
			"2025-10-21": {},
		},
		Location: loc,
		Weights:  Weights{Run: 15, Walk: 14, Cycle: 6},
		TopN:     3,
	}
}

func istActivity(t *testing.T, cfg Config, day time.Time, hour, minute int, durationSec float64) Activity {
	t.Helper()
	return Activity{
		ID:             "a1",
		UserID:         "u1",
		Category:       CategoryRun,
		DistanceMeters: 5000,
		MovingSeconds:  durationSec,
		StartTime:      time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, cfg.Location),
	}
}

func TestEligibleManualAlwaysExcluded(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2025, 10, 18, 12, 0, 0, 0, cfg.Location)
	a := istActivity(t, cfg, time.Date(2025, 10, 18, 0, 0, 0, 0, cfg.Location), 17, 0, 1800)
	a.Manual = true
	assert.False(t, Eligible(a, cfg, now))
}

func TestEligibleChallengeStartCutoff(t *testing.T) {
	cfg := testConfig(t)
	before := istActivity(t, cfg, time.Date(2025, 9, 20, 0, 0, 0, 0, cfg.Location), 17, 0, 1800)

	// Once the challenge has started, older activities are out.
	now := time.Date(2025, 10, 5, 0, 0, 0, 0, cfg.Location)
	assert.False(t, Eligible(before, cfg, now))

	// Before the challenge starts, the cutoff is not enforced yet.
	now = time.Date(2025, 9, 25, 0, 0, 0, 0, cfg.Location)
	assert.True(t, Eligible(before, cfg, now))
}

func TestEligibleBeforeExclusionWindow(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2025, 10, 20, 0, 0, 0, 0, cfg.Location)
	// Weekday during work hours, but before 16 Oct: no exclusion yet.
	a := istActivity(t, cfg, time.Date(2025, 10, 10, 0, 0, 0, 0, cfg.Location), 10, 0, 1800)
	assert.True(t, Eligible(a, cfg, now))
}

func TestEligibleWorkHourExclusion(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2025, 10, 20, 0, 0, 0, 0, cfg.Location)
	friday := time.Date(2025, 10, 17, 0, 0, 0, 0, cfg.Location)

	// Zero-duration activity at 08:00 on a weekday sits inside 07:30-15:45.
	assert.False(t, Eligible(istActivity(t, cfg, friday, 8, 0, 0), cfg, now))

	// Identical activity at 16:00 is clear of the window.
	assert.True(t, Eligible(istActivity(t, cfg, friday, 16, 0, 0), cfg, now))

	// Starting before work but running into it still overlaps.
	assert.False(t, Eligible(istActivity(t, cfg, friday, 7, 0, 3600), cfg, now))

	// Zero-length activity exactly at the window end is ineligible: the
	// boundary instant is inside the closed interval.
	assert.False(t, Eligible(istActivity(t, cfg, friday, 15, 45, 0), cfg, now))

	// One minute past the window end is eligible.
	assert.True(t, Eligible(istActivity(t, cfg, friday, 15, 46, 0), cfg, now))
}

func TestEligibleWeekendExemption(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2025, 10, 20, 0, 0, 0, 0, cfg.Location)
	saturday := time.Date(2025, 10, 18, 0, 0, 0, 0, cfg.Location)
	assert.True(t, Eligible(istActivity(t, cfg, saturday, 9, 0, 1800), cfg, now))

	sunday := time.Date(2025, 10, 19, 0, 0, 0, 0, cfg.Location)
	assert.True(t, Eligible(istActivity(t, cfg, sunday, 10, 0, 1800), cfg, now))
}

func TestEligibleHolidayExemption(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2025, 10, 22, 0, 0, 0, 0, cfg.Location)
	// 20 Oct 2025 is a Monday and a configured holiday.
	holiday := time.Date(2025, 10, 20, 0, 0, 0, 0, cfg.Location)
	assert.True(t, Eligible(istActivity(t, cfg, holiday, 10, 0, 1800), cfg, now))

	// The following Wednesday is a plain workday.
	workday := time.Date(2025, 10, 22, 0, 0, 0, 0, cfg.Location)
	assert.False(t, Eligible(istActivity(t, cfg, workday, 10, 0, 1800), cfg, now))
}

func TestEligibleLockPrecedence(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2025, 10, 20, 0, 0, 0, 0, cfg.Location)
	saturday := time.Date(2025, 10, 18, 0, 0, 0, 0, cfg.Location)

	// All automated rules would pass this one, but the admin said no.
	a := istActivity(t, cfg, saturday, 9, 0, 1800)
	a.Validity = ValidityInvalid
	a.Locked = true
	assert.False(t, Eligible(a, cfg, now))

	// Conversely a locked-valid activity survives rules that would reject it.
	b := istActivity(t, cfg, time.Date(2025, 10, 17, 0, 0, 0, 0, cfg.Location), 10, 0, 1800)
	b.Validity = ValidityValid
	b.Locked = true
	assert.True(t, Eligible(b, cfg, now))

	// Unlocked admin-invalid is still excluded.
	c := istActivity(t, cfg, saturday, 9, 0, 1800)
	c.Validity = ValidityInvalid
	assert.False(t, Eligible(c, cfg, now))
}

func TestEligibleUTCActivityEvaluatedInCivilZone(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2025, 10, 20, 0, 0, 0, 0, cfg.Location)
	// 04:30 UTC on Friday 17 Oct is 10:00 IST, inside work hours.
	a := Activity{
		Category:       CategoryRun,
		DistanceMeters: 5000,
		MovingSeconds:  1800,
		StartTime:      time.Date(2025, 10, 17, 4, 30, 0, 0, time.UTC),
	}
	assert.False(t, Eligible(a, cfg, now))
}

func TestFilterEligiblePreservesOrder(t *testing.T) {
	cfg := testConfig(t)
	now := time.Date(2025, 10, 20, 0, 0, 0, 0, cfg.Location)
	saturday := time.Date(2025, 10, 18, 0, 0, 0, 0, cfg.Location)

	a := istActivity(t, cfg, saturday, 9, 0, 600)
	a.ID = "first"
	b := istActivity(t, cfg, saturday, 17, 0, 600)
	b.ID = "second"
	manual := istActivity(t, cfg, saturday, 11, 0, 600)
	manual.Manual = true

	got := FilterEligible([]Activity{a, manual, b}, cfg, now)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
}

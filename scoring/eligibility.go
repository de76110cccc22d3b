package scoring

import "time"

// Eligible decides whether an activity counts toward challenge scoring.
//
// An admin lock overrides everything: the stored validity flag is
// authoritative and automated refresh must not second-guess it. After that,
// rules apply in order: admin-invalid, manual entry, challenge-start cutoff
// (not enforced before the challenge begins, so testing data passes),
// exclusion-window start, weekend and holiday exemptions, and finally the
// work-hour overlap test in the civil zone.
func Eligible(a Activity, cfg Config, now time.Time) bool {
	if a.Locked {
		return a.Validity != ValidityInvalid
	}
	if a.Validity == ValidityInvalid {
		return false
	}
	if a.Manual {
		return false
	}
	if !now.Before(cfg.ChallengeStart) && a.StartTime.Before(cfg.ChallengeStart) {
		return false
	}
	if a.StartTime.Before(cfg.ExclusionStart) {
		return true
	}

	start := a.StartTime.In(cfg.Location)
	if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return true
	}
	if cfg.IsHoliday(start) {
		return true
	}

	workStart, workEnd := cfg.workWindowOn(start)
	end := a.EndTime().In(cfg.Location)
	// Any overlap with [workStart, workEnd] disqualifies. A zero-length
	// activity exactly on the boundary still counts as overlapping.
	if !start.After(workEnd) && !end.Before(workStart) {
		return false
	}
	return true
}

// FilterEligible returns the eligible subset in input order.
func FilterEligible(activities []Activity, cfg Config, now time.Time) []Activity {
	out := make([]Activity, 0, len(activities))
	for _, a := range activities {
		if Eligible(a, cfg, now) {
			out = append(out, a)
		}
	}
	return out
}

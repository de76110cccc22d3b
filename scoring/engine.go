package scoring

import (
	"math"
	"time"
)

// Result is the outcome of one engine pass: the eligible, classified
// activities and the aggregates computed from them. It is derived data,
// recomputed on every invocation; the engine never mutates its input.
type Result struct {
	Eligible   []Activity
	Aggregates *Aggregates
}

// Evaluate runs the full pipeline: normalize, filter, classify, aggregate.
// It returns an error only for an invalid configuration; malformed records
// are coerced, never fatal.
func Evaluate(raws []RawActivity, profiles map[string]Profile, cfg Config, now time.Time) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	activities := make([]Activity, len(raws))
	for i, raw := range raws {
		activities[i] = Normalize(raw)
	}
	eligible := FilterEligible(activities, cfg, now)
	eligible = ClassifyAll(eligible)
	return &Result{
		Eligible:   eligible,
		Aggregates: Aggregate(eligible, profiles, cfg.Weights),
	}, nil
}

// Round1 rounds a distance for display, one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round0 rounds points for display, whole numbers.
func Round0(v float64) float64 {
	return math.Round(v)
}

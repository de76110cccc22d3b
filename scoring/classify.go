package scoring

import "math"

// ReclassifyPaceMinPerKm is the pace threshold at or above which a run is
// treated as a walk for scoring.
const ReclassifyPaceMinPerKm = 8.5

// distanceEpsilonKm guards the pace division for zero-distance activities.
const distanceEpsilonKm = 1e-9

// Classify returns the effective category of an activity. Only runs are
// subject to reclassification. A previously persisted derived category is
// sticky: it is returned as-is rather than recomputed, so an admin clearing
// it is the only way to undo a reclassification.
func Classify(a Activity) Category {
	if a.DerivedCategory != "" {
		return a.DerivedCategory
	}
	if a.Category != CategoryRun && a.Category != CategoryTrailRun {
		return a.Category
	}
	if Pace(a) >= ReclassifyPaceMinPerKm {
		return CategoryReclassifiedWalk
	}
	return a.Category
}

// Pace returns minutes per kilometer for an activity.
func Pace(a Activity) float64 {
	km := a.DistanceMeters / 1000
	return (a.MovingSeconds / 60) / math.Max(km, distanceEpsilonKm)
}

// ClassifyAll applies Classify to each activity, storing the result in
// DerivedCategory only where it differs from the original category.
func ClassifyAll(activities []Activity) []Activity {
	out := make([]Activity, len(activities))
	for i, a := range activities {
		if c := Classify(a); c != a.Category {
			a.DerivedCategory = c
		}
		out[i] = a
	}
	return out
}

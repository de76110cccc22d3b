package scoring

import (
	"math"
	"time"
)

// Category is the activity type as reported by Strava, plus the derived
// category produced by reclassification.
type Category string

const (
	CategoryRun              Category = "Run"
	CategoryTrailRun         Category = "TrailRun"
	CategoryWalk             Category = "Walk"
	CategoryRide             Category = "Ride"
	CategoryVirtualRide      Category = "VirtualRide"
	CategoryReclassifiedWalk Category = "Reclassified-Walk"
)

// Validity is the admin-controlled state of an activity. Unset means no
// admin decision has been made and automated eligibility applies.
type Validity int

const (
	ValidityUnset Validity = iota
	ValidityValid
	ValidityInvalid
)

// Activity is the canonical record the engine operates on.
type Activity struct {
	ID              string
	UserID          string
	Category        Category
	DerivedCategory Category // empty until reclassified; sticky once set
	DistanceMeters  float64
	MovingSeconds   float64
	StartTime       time.Time
	Manual          bool
	Validity        Validity
	Locked          bool // when set, Validity is authoritative
}

// EffectiveCategory returns the derived category when present, the original
// otherwise. Scoring always buckets by the effective category.
func (a Activity) EffectiveCategory() Category {
	if a.DerivedCategory != "" {
		return a.DerivedCategory
	}
	return a.Category
}

// EndTime is the start plus moving time. Zero-duration activities collapse
// to a single instant.
func (a Activity) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.MovingSeconds * float64(time.Second)))
}

// Profile carries the user metadata needed for aggregation and ranking.
type Profile struct {
	UserID string
	Name   string
	Team   string // empty = no team, excluded from team totals
	Gender string // optional, used for the supplementary leaderboard
}

// RawActivity is an activity as it comes out of the datastore or the Strava
// import, before normalization. Fields mirror the activities table.
type RawActivity struct {
	ID          string
	UserID      string
	Type        string
	DerivedType string
	Distance    float64 // meters
	MovingTime  float64 // seconds
	StartDate   time.Time
	Manual      bool
	Valid       *bool // nil = no admin decision
	ValidLocked bool
}

// Normalize maps a raw record into the canonical Activity shape. The data
// source is not schema-guaranteed, so malformed numeric fields are coerced
// to zero rather than rejected.
func Normalize(raw RawActivity) Activity {
	a := Activity{
		ID:              raw.ID,
		UserID:          raw.UserID,
		Category:        Category(raw.Type),
		DerivedCategory: Category(raw.DerivedType),
		DistanceMeters:  sanitize(raw.Distance),
		MovingSeconds:   sanitize(raw.MovingTime),
		StartTime:       raw.StartDate,
		Manual:          raw.Manual,
		Locked:          raw.ValidLocked,
	}
	switch {
	case raw.Valid == nil:
		a.Validity = ValidityUnset
	case *raw.Valid:
		a.Validity = ValidityValid
	default:
		a.Validity = ValidityInvalid
	}
	return a
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

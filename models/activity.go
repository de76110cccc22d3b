package models

import "time"

// Activity is an imported Strava activity row. IsValid is nullable so that
// "no admin decision" is distinguishable from an explicit verdict; with
// IsValidLocked set, automated refresh must not rewrite it.
type Activity struct {
	ID            int       `json:"id"`
	UserID        string    `json:"user_id"`
	StravaID      int64     `json:"strava_id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	DerivedType   *string   `json:"derived_type,omitempty"`
	Distance      float64   `json:"distance"`    // meters
	MovingTime    float64   `json:"moving_time"` // seconds
	StartDate     time.Time `json:"start_date"`
	Manual        bool      `json:"manual"`
	StravaURL     string    `json:"strava_url"`
	IsValid       *bool     `json:"is_valid"`
	IsValidLocked bool      `json:"is_valid_locked"`
	CreatedAt     time.Time `json:"created_at"`
}

// ActivityWithProfile is an activity joined with its owner for feed views.
type ActivityWithProfile struct {
	Activity
	OwnerName   string  `json:"owner_name"`
	OwnerTeam   *string `json:"owner_team"`
	OwnerGender *string `json:"-"`
}

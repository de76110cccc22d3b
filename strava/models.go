package strava

import (
	"fmt"
	"time"
)

// Activity is the slice of the Strava activity payload the challenge cares
// about. Distances are meters, times seconds.
type Activity struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	SportType  string    `json:"sport_type"`
	Distance   float64   `json:"distance"`
	MovingTime int       `json:"moving_time"`
	StartDate  time.Time `json:"start_date"`
	Manual     bool      `json:"manual"`
}

// URL returns the public Strava page for the activity.
func (a Activity) URL() string {
	return fmt.Sprintf("https://www.strava.com/activities/%d", a.ID)
}

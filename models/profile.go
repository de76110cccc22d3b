package models

import "time"

// Profile is a registered participant. Strava tokens never leave the server.
type Profile struct {
	UserID             string    `json:"user_id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Team               *string   `json:"team"`
	Gender             *string   `json:"gender,omitempty"`
	AvatarObjectID     *string   `json:"avatar_object_id,omitempty"`
	StravaConnected    bool      `json:"strava_connected"`
	StravaAccessToken  *string   `json:"-"`
	StravaRefreshToken *string   `json:"-"`
	StravaExpiresAt    *int64    `json:"-"` // unix seconds
	CreatedAt          time.Time `json:"created_at"`
}

// FullName joins first and last name the way the dashboard displays it.
func (p Profile) FullName() string {
	name := p.FirstName
	if p.LastName != "" {
		if name != "" {
			name += " "
		}
		name += p.LastName
	}
	return name
}

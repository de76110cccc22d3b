package refresh

import "errors"

// ErrNotConnected is returned when a profile has no Strava tokens stored.
var ErrNotConnected = errors.New("profile has no strava connection")

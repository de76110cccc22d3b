package handlers

import (
	"strconv"
	"time"

	"github.com/gokuljawahar87/move-more/initializers"
	"github.com/gokuljawahar87/move-more/models"
	"github.com/gokuljawahar87/move-more/scoring"
)

// listWindowStart bounds the activity query for the read endpoints. Before
// the challenge begins everything imported is visible, matching the
// engine's pre-challenge pass-through; once it starts, history is cut at
// the challenge start.
func listWindowStart(challenge *initializers.ChallengeConfig, now time.Time) time.Time {
	if now.Before(challenge.ChallengeStart) {
		return time.Time{}
	}
	return challenge.ChallengeStart
}

// toEngineInput converts stored activities into the raw form the scoring
// engine consumes, plus the profile map keyed by user id.
func toEngineInput(list []models.ActivityWithProfile) ([]scoring.RawActivity, map[string]scoring.Profile) {
	raws := make([]scoring.RawActivity, 0, len(list))
	profiles := make(map[string]scoring.Profile, len(list))
	for _, a := range list {
		raws = append(raws, toRawActivity(a.Activity))
		if _, ok := profiles[a.UserID]; !ok {
			profiles[a.UserID] = scoring.Profile{
				UserID: a.UserID,
				Name:   a.OwnerName,
				Team:   deref(a.OwnerTeam),
				Gender: deref(a.OwnerGender),
			}
		}
	}
	return raws, profiles
}

func toRawActivity(a models.Activity) scoring.RawActivity {
	return scoring.RawActivity{
		ID:          strconv.FormatInt(a.StravaID, 10),
		UserID:      a.UserID,
		Type:        a.Type,
		DerivedType: deref(a.DerivedType),
		Distance:    a.Distance,
		MovingTime:  a.MovingTime,
		StartDate:   a.StartDate,
		Manual:      a.Manual,
		Valid:       a.IsValid,
		ValidLocked: a.IsValidLocked,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

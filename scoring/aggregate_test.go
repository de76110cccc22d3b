package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProfiles = map[string]Profile{
	"u1": {UserID: "u1", Name: "Asha Nair", Team: "Trailblazers", Gender: "F"},
	"u2": {UserID: "u2", Name: "Rohan Iyer", Team: "Trailblazers", Gender: "M"},
	"u3": {UserID: "u3", Name: "Meera Pillai", Team: "Pacers", Gender: "F"},
	"u4": {UserID: "u4", Name: "Dev Sharma"}, // no team
}

func act(user string, cat Category, km float64) Activity {
	return Activity{
		UserID:         user,
		Category:       cat,
		DistanceMeters: km * 1000,
		MovingSeconds:  km * 360, // 6.0 min/km, never reclassified
		StartTime:      time.Date(2025, 10, 18, 9, 0, 0, 0, time.UTC),
	}
}

func TestAggregateBuckets(t *testing.T) {
	w := Weights{Run: 15, Walk: 14, Cycle: 6}
	acts := []Activity{
		act("u1", CategoryRun, 10),
		act("u1", CategoryWalk, 5),
		act("u1", CategoryRide, 20),
		act("u1", "Swim", 2), // unknown category, no score bucket
	}
	ag := Aggregate(acts, testProfiles, w)

	u1 := ag.User("u1")
	require.NotNil(t, u1)
	assert.InDelta(t, 10, u1.RunKm, 1e-9)
	assert.InDelta(t, 5, u1.WalkKm, 1e-9)
	assert.InDelta(t, 20, u1.CycleKm, 1e-9)
	assert.InDelta(t, 10*15+5*14+20*6, u1.Points, 1e-9)
}

func TestAggregateReclassifiedWalkScoresAsWalk(t *testing.T) {
	w := Weights{Run: 15, Walk: 14, Cycle: 6}
	a := act("u1", CategoryRun, 5)
	a.DerivedCategory = CategoryReclassifiedWalk
	ag := Aggregate([]Activity{a}, testProfiles, w)

	u1 := ag.User("u1")
	require.NotNil(t, u1)
	assert.Zero(t, u1.RunKm)
	assert.InDelta(t, 5, u1.WalkKm, 1e-9)
	assert.InDelta(t, 5*14, u1.Points, 1e-9)
}

func TestAggregateTeamTotals(t *testing.T) {
	w := Weights{Run: 15, Walk: 14, Cycle: 6}
	acts := []Activity{
		act("u1", CategoryRun, 10), // Trailblazers, 150
		act("u2", CategoryWalk, 10), // Trailblazers, 140
		act("u3", CategoryRide, 10), // Pacers, 60
		act("u4", CategoryRun, 10),  // no team, individual only
	}
	ag := Aggregate(acts, testProfiles, w)

	require.Len(t, ag.Teams, 2)
	assert.Equal(t, "Trailblazers", ag.Teams[0].Team)
	assert.InDelta(t, 290, ag.Teams[0].Points, 1e-9)
	assert.Equal(t, "Pacers", ag.Teams[1].Team)
	assert.InDelta(t, 60, ag.Teams[1].Points, 1e-9)

	// The team-less user still has individual totals.
	require.NotNil(t, ag.User("u4"))
	assert.InDelta(t, 150, ag.User("u4").Points, 1e-9)
}

func TestAggregateMonotonicity(t *testing.T) {
	w := Weights{Run: 15, Walk: 14, Cycle: 6}
	base := []Activity{
		act("u1", CategoryRun, 10),
		act("u2", CategoryRun, 8),
	}
	before := Aggregate(base, testProfiles, w)

	after := Aggregate(append(base, act("u1", CategoryRun, 3)), testProfiles, w)

	assert.Greater(t, after.User("u1").RunKm, before.User("u1").RunKm)
	assert.Greater(t, after.User("u1").Points, before.User("u1").Points)
	assert.Equal(t, before.User("u2").Points, after.User("u2").Points)
}

func TestAggregateZeroDistanceContributesNothing(t *testing.T) {
	w := Weights{Run: 15, Walk: 14, Cycle: 6}
	ag := Aggregate([]Activity{act("u1", CategoryRun, 0)}, testProfiles, w)
	u1 := ag.User("u1")
	require.NotNil(t, u1)
	assert.Zero(t, u1.Points)
}
